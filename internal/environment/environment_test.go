package environment

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/groveembed/grove/pkg/value"
)

func TestDefineAndGet(t *testing.T) {
	env := New()
	env.Define("x", value.Number(10))
	v, ok := env.Get("x")
	require.True(t, ok)
	require.True(t, value.Equal(value.Number(10), v))
}

func TestScopeChain(t *testing.T) {
	env := New()
	env.Define("outer", value.Number(1))
	env.PushScope()
	v, ok := env.Get("outer")
	require.True(t, ok)
	require.True(t, value.Equal(value.Number(1), v))
	env.PopScope()
}

func TestSetExisting(t *testing.T) {
	env := New()
	env.Define("x", value.Number(1))
	ok := env.Set("x", value.Number(2))
	require.True(t, ok)
	v, _ := env.Get("x")
	require.True(t, value.Equal(value.Number(2), v))
}

func TestSetNonexistent(t *testing.T) {
	env := New()
	ok := env.Set("missing", value.Number(1))
	require.False(t, ok)
}

func TestShadow(t *testing.T) {
	env := New()
	env.Define("x", value.Number(1))
	env.PushScope()
	env.Define("x", value.Number(2))
	v, _ := env.Get("x")
	require.True(t, value.Equal(value.Number(2), v))
	env.PopScope()
	v, _ = env.Get("x")
	require.True(t, value.Equal(value.Number(1), v))
}

func TestPopScopeNeverRemovesGlobal(t *testing.T) {
	env := New()
	require.Equal(t, 1, env.Depth())
	env.PopScope()
	require.Equal(t, 1, env.Depth())
}

func TestSetWalksOutward(t *testing.T) {
	env := New()
	env.Define("x", value.Number(1))
	env.PushScope()
	env.PushScope()
	ok := env.Set("x", value.Number(99))
	require.True(t, ok)
	v, _ := env.Get("x")
	require.True(t, value.Equal(value.Number(99), v))
}
