// Package test holds end-to-end integration tests that exercise Grove
// through its public embedding surface (pkg/vm), the same path a real
// host application would use, rather than any single internal package.
package test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/groveembed/grove/pkg/groveerr"
	"github.com/groveembed/grove/pkg/value"
	"github.com/groveembed/grove/pkg/vm"
)

func newVMWithLog() (*vm.VM, *[]string) {
	v := vm.New()
	out := &[]string{}
	v.RegisterFn("log", func(args []value.Value) (value.Value, error) {
		if len(args) > 0 {
			*out = append(*out, args[0].String())
		}
		return value.Nil, nil
	})
	return v, out
}

func TestEndToEndArithmeticAndLoops(t *testing.T) {
	v, out := newVMWithLog()
	err := v.Eval(`local total = 0
for i = 1, 10 do
  if i % 2 == 0 then
    total = total + i
  end
end
log(total)`)
	require.NoError(t, err)
	require.Equal(t, []string{"30"}, *out)
}

func TestEndToEndBlueprintsAsReusableFunctions(t *testing.T) {
	v, out := newVMWithLog()
	err := v.Eval(`blueprint fib(n)
  if n < 2 then
    return n
  end
  return fib(n - 1) + fib(n - 2)
end
log(fib(10))`)
	require.NoError(t, err)
	require.Equal(t, []string{"55"}, *out)
}

func TestEndToEndVec3Arithmetic(t *testing.T) {
	v, out := newVMWithLog()
	err := v.Eval(`local a = vec3(1, 2, 3)
local b = vec3(4, 5, 6)
local c = a + b
log(c.x)
log(c.y)
log(c.z)
local scaled = a * 2
log(scaled.x)`)
	require.NoError(t, err)
	require.Equal(t, []string{"5", "7", "9", "2"}, *out)
}

func TestEndToEndHostFunctionRoundTrip(t *testing.T) {
	v := vm.New()
	var captured []value.Value
	v.RegisterFn("capture", func(args []value.Value) (value.Value, error) {
		captured = append(captured, args...)
		return value.Number(float64(len(args))), nil
	})
	err := v.Eval(`local n = capture(1, "two", true)`)
	require.NoError(t, err)
	require.Len(t, captured, 3)
}

func TestEndToEndInstructionBudgetStopsRunawayLoop(t *testing.T) {
	v := vm.New()
	v.SetInstructionLimit(200)
	err := v.Eval("while true do\nend")
	require.Error(t, err)
	ge, ok := groveerr.As(err)
	require.True(t, ok)
	require.Equal(t, groveerr.InstructionLimit, ge.Kind)
}

func TestEndToEndUndefinedFunctionIsNameError(t *testing.T) {
	v := vm.New()
	err := v.Eval("totally_undefined_thing(1, 2)")
	require.Error(t, err)
	ge, ok := groveerr.As(err)
	require.True(t, ok)
	require.Equal(t, groveerr.NameError, ge.Kind)
}

func TestEndToEndTypeErrorOnBadArithmetic(t *testing.T) {
	v, _ := newVMWithLog()
	err := v.Eval(`local x = "a" + 1`)
	require.Error(t, err)
	ge, ok := groveerr.As(err)
	require.True(t, ok)
	require.Equal(t, groveerr.Type, ge.Kind)
}

func TestEndToEndArraysAndTablesRoundTrip(t *testing.T) {
	v, out := newVMWithLog()
	err := v.Eval(`local arr = [1, 2, 3]
local t = {x = 1, y = 2}
log(#arr)
log(t.x + t.y)`)
	require.NoError(t, err)
	require.Equal(t, []string{"3", "3"}, *out)
}

func TestEndToEndGlobalsSetByHost(t *testing.T) {
	v, out := newVMWithLog()
	v.SetGlobalNumber("seed", 7)
	err := v.Eval("log(seed * seed)")
	require.NoError(t, err)
	require.Equal(t, []string{"49"}, *out)
}
