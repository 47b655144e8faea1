package groveerr

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorFormatting(t *testing.T) {
	err := SyntaxErr("unexpected token", 3, 7)
	require.Equal(t, "[line 3:7] Syntax: unexpected token", err.Error())
}

func TestInstructionLimitMessageIsFixed(t *testing.T) {
	err := InstructionLimitErr(10, 1)
	require.Equal(t, "instruction limit exceeded", err.Message)
	require.Equal(t, InstructionLimit, err.Kind)
}

func TestAs(t *testing.T) {
	var err error = RuntimeErr("boom", 1, 1)
	ge, ok := As(err)
	require.True(t, ok)
	require.Equal(t, Runtime, ge.Kind)
}

func TestKindStrings(t *testing.T) {
	require.Equal(t, "Syntax", Syntax.String())
	require.Equal(t, "Runtime", Runtime.String())
	require.Equal(t, "Type", Type.String())
	require.Equal(t, "NameError", NameError.String())
	require.Equal(t, "InstructionLimit", InstructionLimit.String())
}
