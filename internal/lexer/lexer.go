// Package lexer turns Grove source text into a stream of tokens.
package lexer

import (
	"strconv"
	"strings"

	"github.com/groveembed/grove/internal/token"
	"github.com/groveembed/grove/pkg/groveerr"
)

// Lexer scans UTF-8 source one rune at a time, tracking line/column
// position for every token it produces.
type Lexer struct {
	input []rune
	pos   int
	line  int
	col   int
}

// New returns a Lexer positioned at the start of source.
func New(source string) *Lexer {
	return &Lexer{
		input: []rune(source),
		pos:   0,
		line:  1,
		col:   1,
	}
}

func (l *Lexer) atEnd() bool {
	return l.pos >= len(l.input)
}

func (l *Lexer) peek() rune {
	if l.atEnd() {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) peekNext() rune {
	if l.pos+1 >= len(l.input) {
		return 0
	}
	return l.input[l.pos+1]
}

// advance consumes and returns the current rune, updating line/column.
// A newline resets column to 1 and bumps line — column tracking otherwise
// increments per rune, matching the original lexer's column semantics.
func (l *Lexer) advance() rune {
	ch := l.input[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return ch
}

// skipWhitespaceAndComments loops skipping ASCII whitespace and `--` line
// comments until neither remains, so consecutive comment lines separated
// only by whitespace are all skipped in one call.
func (l *Lexer) skipWhitespaceAndComments() {
	for {
		skippedSomething := false
		for !l.atEnd() && isSpace(l.peek()) {
			l.advance()
			skippedSomething = true
		}
		if !l.atEnd() && l.peek() == '-' && l.peekNext() == '-' {
			for !l.atEnd() && l.peek() != '\n' {
				l.advance()
			}
			skippedSomething = true
		}
		if !skippedSomething {
			return
		}
	}
}

func isSpace(ch rune) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' || ch == '\v' || ch == '\f'
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isAlpha(ch rune) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isAlphaNumeric(ch rune) bool {
	return isAlpha(ch) || isDigit(ch)
}

// Next produces the next token in the stream. Callers should keep calling
// Next until it returns a token.Eof token.
func (l *Lexer) Next() (token.Token, error) {
	l.skipWhitespaceAndComments()

	line, col := l.line, l.col

	if l.atEnd() {
		return token.Token{Kind: token.Eof, Line: line, Column: col}, nil
	}

	ch := l.peek()

	switch {
	case isDigit(ch):
		return l.readNumber(line, col)
	case ch == '\'' || ch == '"':
		return l.readString(line, col)
	case isAlpha(ch):
		return l.readIdentifier(line, col), nil
	}

	l.advance()

	mk := func(k token.Kind) (token.Token, error) {
		return token.Token{Kind: k, Literal: k.String(), Line: line, Column: col}, nil
	}

	switch ch {
	case '+':
		return mk(token.Plus)
	case '-':
		return mk(token.Minus)
	case '*':
		return mk(token.Star)
	case '/':
		return mk(token.Slash)
	case '%':
		return mk(token.Percent)
	case '^':
		return mk(token.Caret)
	case '#':
		return mk(token.Hash)
	case '(':
		return mk(token.LParen)
	case ')':
		return mk(token.RParen)
	case '[':
		return mk(token.LBracket)
	case ']':
		return mk(token.RBracket)
	case '{':
		return mk(token.LBrace)
	case '}':
		return mk(token.RBrace)
	case ',':
		return mk(token.Comma)
	case ':':
		return mk(token.Colon)
	case '.':
		if l.peek() == '.' {
			l.advance()
			return mk(token.DotDot)
		}
		return mk(token.Dot)
	case '=':
		if l.peek() == '=' {
			l.advance()
			return mk(token.EqualEqual)
		}
		return mk(token.Assign)
	case '~':
		if l.peek() == '=' {
			l.advance()
			return mk(token.TildeEqual)
		}
		return token.Token{}, l.err(line, col, "unexpected character '~'")
	case '!':
		if l.peek() == '=' {
			l.advance()
			return mk(token.NotEqual)
		}
		return token.Token{}, l.err(line, col, "unexpected character '!'")
	case '<':
		if l.peek() == '=' {
			l.advance()
			return mk(token.LessEqual)
		}
		return mk(token.Less)
	case '>':
		if l.peek() == '=' {
			l.advance()
			return mk(token.GreaterEqual)
		}
		return mk(token.Greater)
	}

	return token.Token{}, l.err(line, col, "unexpected character '"+string(ch)+"'")
}

func (l *Lexer) err(line, col int, msg string) error {
	return groveerr.SyntaxErr(msg, line, col)
}

// readNumber accepts a run of digits, optionally followed by a dot that is
// itself followed by more digits (so a bare trailing dot is not consumed as
// part of the number). No exponent notation.
func (l *Lexer) readNumber(line, col int) (token.Token, error) {
	var sb strings.Builder
	for !l.atEnd() && isDigit(l.peek()) {
		sb.WriteRune(l.advance())
	}
	if !l.atEnd() && l.peek() == '.' && isDigit(l.peekNext()) {
		sb.WriteRune(l.advance())
		for !l.atEnd() && isDigit(l.peek()) {
			sb.WriteRune(l.advance())
		}
	}
	text := sb.String()
	n, perr := strconv.ParseFloat(text, 64)
	if perr != nil {
		return token.Token{}, l.err(line, col, "invalid number literal '"+text+"'")
	}
	return token.Token{Kind: token.Number, Literal: text, Number: n, Line: line, Column: col}, nil
}

// readString consumes a quoted string literal, resolving backslash escapes.
// An unrecognized escape passes both the backslash and the following
// character through literally, matching the reference lexer.
func (l *Lexer) readString(line, col int) (token.Token, error) {
	quote := l.advance()
	var sb strings.Builder
	for {
		if l.atEnd() {
			return token.Token{}, l.err(line, col, "unterminated string")
		}
		ch := l.advance()
		if ch == quote {
			break
		}
		if ch == '\\' {
			if l.atEnd() {
				return token.Token{}, l.err(line, col, "unterminated string escape")
			}
			esc := l.advance()
			switch esc {
			case 'n':
				sb.WriteRune('\n')
			case 't':
				sb.WriteRune('\t')
			case '\\':
				sb.WriteRune('\\')
			case '\'':
				sb.WriteRune('\'')
			case '"':
				sb.WriteRune('"')
			default:
				sb.WriteRune('\\')
				sb.WriteRune(esc)
			}
			continue
		}
		sb.WriteRune(ch)
	}
	return token.Token{Kind: token.String, Literal: sb.String(), Line: line, Column: col}, nil
}

func (l *Lexer) readIdentifier(line, col int) token.Token {
	var sb strings.Builder
	for !l.atEnd() && isAlphaNumeric(l.peek()) {
		sb.WriteRune(l.advance())
	}
	text := sb.String()
	return token.Token{Kind: token.Lookup(text), Literal: text, Line: line, Column: col}
}

// Tokenize drains the lexer into a slice, ending with a token.Eof entry.
// Convenient for tests and for the parser, which works over the whole slice.
func Tokenize(source string) ([]token.Token, error) {
	l := New(source)
	var out []token.Token
	for {
		tok, err := l.Next()
		if err != nil {
			return nil, err
		}
		out = append(out, tok)
		if tok.Kind == token.Eof {
			return out, nil
		}
	}
}
