package vm

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/groveembed/grove/pkg/groveerr"
	"github.com/groveembed/grove/pkg/value"
)

func withLog(v *VM) *[]string {
	out := &[]string{}
	v.RegisterFn("log", func(args []value.Value) (value.Value, error) {
		if len(args) > 0 {
			*out = append(*out, args[0].String())
		}
		return value.Nil, nil
	})
	return out
}

func TestEvalSuccess(t *testing.T) {
	v := New()
	out := withLog(v)
	err := v.Eval("local x = 10\nlocal y = x * 2 + 5\nlog(y)")
	require.NoError(t, err)
	require.Equal(t, []string{"25"}, *out)
	require.Nil(t, v.LastError())
}

func TestEvalSyntaxErrorSetsLastError(t *testing.T) {
	v := New()
	err := v.Eval("if x then")
	require.Error(t, err)
	last := v.LastError()
	require.NotNil(t, last)
	require.Equal(t, groveerr.Syntax, last.Kind)
	require.Greater(t, v.LastErrorLine(), 0)
}

func TestEvalInstructionLimit(t *testing.T) {
	v := New()
	v.SetInstructionLimit(50)
	err := v.Eval("while true do\nend")
	require.Error(t, err)
	last := v.LastError()
	require.NotNil(t, last)
	require.Equal(t, groveerr.InstructionLimit, last.Kind)
}

func TestSetGlobals(t *testing.T) {
	v := New()
	out := withLog(v)
	v.SetGlobalNumber("my_num", 42)
	v.SetGlobalString("my_str", "hi")
	v.SetGlobalVec3("my_pos", 1, 2, 3)
	err := v.Eval(`log(my_num)
log(my_str)
log(my_pos.x)`)
	require.NoError(t, err)
	require.Equal(t, []string{"42", "hi", "1"}, *out)
}

func TestLastErrorClearedOnSuccessAfterFailure(t *testing.T) {
	v := New()
	_ = v.Eval("if x then")
	require.NotNil(t, v.LastError())

	withLog(v)
	err := v.Eval("log(1)")
	require.NoError(t, err)
	require.Nil(t, v.LastError())
	require.Equal(t, 0, v.LastErrorLine())
}
