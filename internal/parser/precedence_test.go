package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/groveembed/grove/internal/ast"
)

// exprOf parses a single expression statement and returns its root node.
func exprOf(t *testing.T, src string) ast.Expr {
	t.Helper()
	prog, err := Parse(src)
	require.NoError(t, err)
	require.Len(t, prog.Statements, 1)
	stmt, ok := prog.Statements[0].(*ast.ExprStmt)
	require.True(t, ok)
	return stmt.X
}

// TestPowerRightAssociative pins down the one counter-intuitive entry in
// the binding-power table: Pow's left_bp (16) is greater than its own
// right_bp (15), which is what makes `2^3^2` parse as `2^(3^2)` rather
// than `(2^3)^2`.
func TestPowerRightAssociative(t *testing.T) {
	top := exprOf(t, "2^3^2").(*ast.BinaryOp)
	require.Equal(t, ast.Pow, top.Op)
	left, ok := top.Left.(*ast.NumberLit)
	require.True(t, ok)
	require.Equal(t, 2.0, left.Value)

	right, ok := top.Right.(*ast.BinaryOp)
	require.True(t, ok, "right-associative parse must nest a Pow on the right")
	require.Equal(t, ast.Pow, right.Op)
}

func TestMulBindsTighterThanAdd(t *testing.T) {
	top := exprOf(t, "1 + 2 * 3").(*ast.BinaryOp)
	require.Equal(t, ast.Add, top.Op)
	right, ok := top.Right.(*ast.BinaryOp)
	require.True(t, ok)
	require.Equal(t, ast.Mul, right.Op)
}

func TestAddIsLeftAssociative(t *testing.T) {
	top := exprOf(t, "1 - 2 - 3").(*ast.BinaryOp)
	require.Equal(t, ast.Sub, top.Op)
	left, ok := top.Left.(*ast.BinaryOp)
	require.True(t, ok, "left-associative parse must nest the earlier Sub on the left")
	require.Equal(t, ast.Sub, left.Op)
}

func TestComparisonBindsLooserThanArithmetic(t *testing.T) {
	top := exprOf(t, "1 + 2 < 4 * 5").(*ast.BinaryOp)
	require.Equal(t, ast.Lt, top.Op)
	_, leftOK := top.Left.(*ast.BinaryOp)
	_, rightOK := top.Right.(*ast.BinaryOp)
	require.True(t, leftOK)
	require.True(t, rightOK)
}

func TestAndBindsTighterThanOr(t *testing.T) {
	top := exprOf(t, "true or false and false").(*ast.BinaryOp)
	require.Equal(t, ast.Or, top.Op)
	right, ok := top.Right.(*ast.BinaryOp)
	require.True(t, ok)
	require.Equal(t, ast.And, right.Op)
}

func TestConcatBindsLooserThanAdditive(t *testing.T) {
	top := exprOf(t, `"x" .. 1 + 2`).(*ast.BinaryOp)
	require.Equal(t, ast.Concat, top.Op)
	right, ok := top.Right.(*ast.BinaryOp)
	require.True(t, ok)
	require.Equal(t, ast.Add, right.Op)
}

func TestUnaryBindsTighterThanMul(t *testing.T) {
	top := exprOf(t, "-2 * 3").(*ast.BinaryOp)
	require.Equal(t, ast.Mul, top.Op)
	left, ok := top.Left.(*ast.UnaryOpExpr)
	require.True(t, ok)
	require.Equal(t, ast.Neg, left.Op)
}

func TestParenthesesOverridePrecedence(t *testing.T) {
	top := exprOf(t, "(1 + 2) * 3").(*ast.BinaryOp)
	require.Equal(t, ast.Mul, top.Op)
	left, ok := top.Left.(*ast.BinaryOp)
	require.True(t, ok)
	require.Equal(t, ast.Add, left.Op)
}

func TestCallBindsTighterThanInfix(t *testing.T) {
	top := exprOf(t, "f() + 1").(*ast.BinaryOp)
	require.Equal(t, ast.Add, top.Op)
	_, ok := top.Left.(*ast.Call)
	require.True(t, ok)
}

func TestFieldAccessChainsThroughCall(t *testing.T) {
	x := exprOf(t, "a.b(1).c")
	fa, ok := x.(*ast.FieldAccess)
	require.True(t, ok)
	require.Equal(t, "c", fa.Field)
	call, ok := fa.Object.(*ast.Call)
	require.True(t, ok)
	_, ok = call.Callee.(*ast.FieldAccess)
	require.True(t, ok)
}
