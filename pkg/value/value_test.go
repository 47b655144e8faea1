package value

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestTruthiness(t *testing.T) {
	require.False(t, Nil.IsTruthy())
	require.False(t, Bool(false).IsTruthy())
	require.True(t, Bool(true).IsTruthy())
	require.True(t, Number(0).IsTruthy())
	require.True(t, String("").IsTruthy())
}

func TestTypeName(t *testing.T) {
	require.Equal(t, "nil", Nil.TypeName())
	require.Equal(t, "bool", Bool(true).TypeName())
	require.Equal(t, "number", Number(1).TypeName())
	require.Equal(t, "string", String("x").TypeName())
	require.Equal(t, "vec3", MakeVec3(1, 2, 3).TypeName())
	require.Equal(t, "array", MakeArray(nil).TypeName())
	require.Equal(t, "table", MakeTable(nil).TypeName())
	require.Equal(t, "object", MakeObject(1).TypeName())
}

func TestNumberDisplay(t *testing.T) {
	require.Equal(t, "25", Number(25).String())
	require.Equal(t, "3.5", Number(3.5).String())
	require.Equal(t, "-2", Number(-2).String())
}

func TestVec3Display(t *testing.T) {
	require.Equal(t, "vec3(1, 2, 3)", MakeVec3(1, 2, 3).String())
}

func TestArrayDisplay(t *testing.T) {
	arr := MakeArray([]Value{Number(10), Number(20), Number(30)})
	require.Equal(t, "[10, 20, 30]", arr.String())
}

func TestTableDisplaySingleField(t *testing.T) {
	tbl := MakeTable(map[string]Value{"name": String("foo")})
	require.Equal(t, "{name = foo}", tbl.String())
}

func TestObjectDisplay(t *testing.T) {
	require.Equal(t, "<object:7>", MakeObject(7).String())
}

func TestEqualCrossVariantAlwaysFalse(t *testing.T) {
	require.False(t, Equal(Number(1), String("1")))
	require.False(t, Equal(Nil, Bool(false)))
}

func TestEqualNilEqualsNil(t *testing.T) {
	require.True(t, Equal(Nil, Nil))
}

func TestEqualNaNNotEqualToItself(t *testing.T) {
	nan := Number(math.NaN())
	require.False(t, Equal(nan, nan))
}

func TestEqualArrayAndTableNeverEqual(t *testing.T) {
	a1 := MakeArray([]Value{Number(1)})
	a2 := MakeArray([]Value{Number(1)})
	require.False(t, Equal(a1, a1))
	require.False(t, Equal(a1, a2))

	t1 := MakeTable(map[string]Value{"a": Number(1)})
	require.False(t, Equal(t1, t1))
}

func TestEqualVec3Componentwise(t *testing.T) {
	require.True(t, Equal(MakeVec3(1, 2, 3), MakeVec3(1, 2, 3)))
	require.False(t, Equal(MakeVec3(1, 2, 3), MakeVec3(1, 2, 4)))
}

func TestArrayStructuralDiff(t *testing.T) {
	a := MakeArray([]Value{Number(1), String("x")})
	b := MakeArray([]Value{Number(1), String("x")})
	if diff := cmp.Diff(a, b, cmp.AllowUnexported(Value{})); diff != "" {
		t.Errorf("unexpected diff (-want +got):\n%s", diff)
	}
}
