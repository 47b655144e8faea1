package lexer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/groveembed/grove/internal/token"
)

func kinds(t *testing.T, source string) []token.Kind {
	t.Helper()
	toks, err := Tokenize(source)
	require.NoError(t, err)
	out := make([]token.Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func TestBasicTokens(t *testing.T) {
	got := kinds(t, "local x = 5")
	require.Equal(t, []token.Kind{token.Local, token.Ident, token.Assign, token.Number, token.Eof}, got)
}

func TestStringLiterals(t *testing.T) {
	toks, err := Tokenize(`'hello world'`)
	require.NoError(t, err)
	require.Equal(t, token.String, toks[0].Kind)
	require.Equal(t, "hello world", toks[0].Literal)
}

func TestStringEscape(t *testing.T) {
	toks, err := Tokenize(`"hello\tworld\n"`)
	require.NoError(t, err)
	require.Equal(t, "hello\tworld\n", toks[0].Literal)
}

func TestStringUnknownEscapePassesThrough(t *testing.T) {
	toks, err := Tokenize(`'a\zb'`)
	require.NoError(t, err)
	require.Equal(t, `a\zb`, toks[0].Literal)
}

func TestUnterminatedString(t *testing.T) {
	_, err := Tokenize(`'hello`)
	require.Error(t, err)
}

func TestComments(t *testing.T) {
	got := kinds(t, "-- this is a comment\nlocal x\n-- another\n-- and another\nlocal y")
	require.Equal(t, []token.Kind{token.Local, token.Ident, token.Local, token.Ident, token.Eof}, got)
}

func TestOperators(t *testing.T) {
	got := kinds(t, "+ - * / % ^ .. # == ~= < <= > >= =")
	require.Equal(t, []token.Kind{
		token.Plus, token.Minus, token.Star, token.Slash, token.Percent, token.Caret,
		token.DotDot, token.Hash, token.EqualEqual, token.TildeEqual, token.Less,
		token.LessEqual, token.Greater, token.GreaterEqual, token.Assign, token.Eof,
	}, got)
}

func TestBangEqualIsNotEqual(t *testing.T) {
	got := kinds(t, "!=")
	require.Equal(t, []token.Kind{token.NotEqual, token.Eof}, got)
}

func TestKeywords(t *testing.T) {
	got := kinds(t, "local let fn blueprint build end if then elseif else for in do while repeat until return break continue and or not true false nil")
	require.Equal(t, []token.Kind{
		token.Local, token.Let, token.Fn, token.Blueprint, token.Build, token.End,
		token.If, token.Then, token.ElseIf, token.Else, token.For, token.In, token.Do,
		token.While, token.Repeat, token.Until, token.Return, token.Break, token.Continue,
		token.And, token.Or, token.Not, token.True, token.False, token.Nil, token.Eof,
	}, got)
}

func TestLineTracking(t *testing.T) {
	toks, err := Tokenize("local x\nlocal y")
	require.NoError(t, err)
	require.Equal(t, 1, toks[0].Line)
	require.Equal(t, 2, toks[2].Line)
}

func TestFloatNumber(t *testing.T) {
	toks, err := Tokenize("3.14")
	require.NoError(t, err)
	require.Equal(t, token.Number, toks[0].Kind)
	require.InDelta(t, 3.14, toks[0].Number, 1e-9)
}

func TestTrailingDotNotConsumedWithoutDigits(t *testing.T) {
	got := kinds(t, "5..10")
	require.Equal(t, []token.Kind{token.Number, token.DotDot, token.Number, token.Eof}, got)
}

func TestUnexpectedCharacter(t *testing.T) {
	_, err := Tokenize("@")
	require.Error(t, err)
}

func TestHashIsStandaloneToken(t *testing.T) {
	got := kinds(t, "#arr")
	require.Equal(t, []token.Kind{token.Hash, token.Ident, token.Eof}, got)
}
