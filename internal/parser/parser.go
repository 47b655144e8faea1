// Package parser implements Grove's recursive-descent statement parser and
// Pratt expression parser.
//
// Statement parsing follows a straightforward dispatch-on-leading-keyword
// shape. Expression parsing is precedence climbing: parseExpression takes
// a minimum binding power, parses a prefix expression, then repeatedly
// extends it with postfix operators (call, field/index access, method
// call — these always continue the loop, independent of the minimum
// binding power) and infix binary operators (which stop the loop once the
// next operator's left binding power falls below the minimum).
package parser

import (
	"fmt"

	"github.com/groveembed/grove/internal/ast"
	"github.com/groveembed/grove/internal/lexer"
	"github.com/groveembed/grove/internal/token"
	"github.com/groveembed/grove/pkg/groveerr"
)

// Parser consumes a pre-lexed token slice. Tokenizing up front (rather
// than streaming from the lexer) keeps lookahead and backtracking simple,
// matching the reference parser's design.
type Parser struct {
	tokens []token.Token
	pos    int
}

// New lexes source in full and returns a Parser over the resulting tokens.
func New(source string) (*Parser, error) {
	toks, err := lexer.Tokenize(source)
	if err != nil {
		return nil, err
	}
	return &Parser{tokens: toks}, nil
}

// Parse consumes the whole token stream and returns the resulting Program.
func Parse(source string) (*ast.Program, error) {
	p, err := New(source)
	if err != nil {
		return nil, err
	}
	return p.ParseProgram()
}

func (p *Parser) current() token.Token {
	return p.tokens[p.pos]
}

func (p *Parser) isAtEnd() bool {
	return p.current().Kind == token.Eof
}

func (p *Parser) advance() token.Token {
	tok := p.current()
	if !p.isAtEnd() {
		p.pos++
	}
	return tok
}

func (p *Parser) check(kind token.Kind) bool {
	return p.current().Kind == kind
}

func (p *Parser) span() ast.Span {
	tok := p.current()
	return ast.Span{Line: tok.Line, Column: tok.Column}
}

func (p *Parser) expect(kind token.Kind) (token.Token, error) {
	if p.check(kind) {
		return p.advance(), nil
	}
	tok := p.current()
	return token.Token{}, groveerr.SyntaxErr(
		fmt.Sprintf("expected %s, got %s", kind, tok.Kind), tok.Line, tok.Column)
}

func (p *Parser) expectIdentifier() (string, ast.Span, error) {
	if !p.check(token.Ident) {
		tok := p.current()
		return "", ast.Span{}, groveerr.SyntaxErr(
			fmt.Sprintf("expected identifier, got %s", tok.Kind), tok.Line, tok.Column)
	}
	tok := p.advance()
	return tok.Literal, ast.Span{Line: tok.Line, Column: tok.Column}, nil
}

// ParseProgram parses statements until end of input.
func (p *Parser) ParseProgram() (*ast.Program, error) {
	prog := &ast.Program{}
	for !p.isAtEnd() {
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		prog.Statements = append(prog.Statements, stmt)
	}
	return prog, nil
}

func isBlockTerminator(k token.Kind) bool {
	switch k {
	case token.End, token.Else, token.ElseIf, token.Until:
		return true
	default:
		return false
	}
}

// blockUntil parses statements until the current token matches one of the
// given terminators, without consuming the terminator itself.
func (p *Parser) blockUntil(terminators ...token.Kind) ([]ast.Stmt, error) {
	var stmts []ast.Stmt
	for {
		if p.isAtEnd() {
			return nil, groveerr.SyntaxErr(
				fmt.Sprintf("unexpected end of input, expected one of %v", terminators),
				p.current().Line, p.current().Column)
		}
		for _, t := range terminators {
			if p.check(t) {
				return stmts, nil
			}
		}
		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}
}

func (p *Parser) statement() (ast.Stmt, error) {
	switch p.current().Kind {
	case token.Local, token.Let:
		return p.localDecl()
	case token.If:
		return p.ifStmt()
	case token.While:
		return p.whileStmt()
	case token.For:
		return p.forStmt()
	case token.Repeat:
		return p.repeatUntil()
	case token.Blueprint, token.Fn:
		return p.blueprintStmt()
	case token.Build:
		return p.buildStmt()
	case token.Return:
		return p.returnStmt()
	case token.Break:
		sp := p.span()
		p.advance()
		return &ast.Break{S: sp}, nil
	case token.Continue:
		sp := p.span()
		p.advance()
		return &ast.Continue{S: sp}, nil
	default:
		return p.exprOrAssignStmt()
	}
}

func (p *Parser) localDecl() (ast.Stmt, error) {
	sp := p.span()
	p.advance() // local|let
	name, _, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	var init ast.Expr
	if p.check(token.Assign) {
		p.advance()
		init, err = p.expression(0)
		if err != nil {
			return nil, err
		}
	}
	return &ast.LocalDecl{S: sp, Name: name, Init: init}, nil
}

func (p *Parser) ifStmt() (ast.Stmt, error) {
	sp := p.span()
	p.advance() // if
	cond, err := p.expression(0)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Then); err != nil {
		return nil, err
	}
	thenBody, err := p.blockUntil(token.ElseIf, token.Else, token.End)
	if err != nil {
		return nil, err
	}
	var elseifs []ast.ElseIfClause
	for p.check(token.ElseIf) {
		p.advance()
		c, err := p.expression(0)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.Then); err != nil {
			return nil, err
		}
		body, err := p.blockUntil(token.ElseIf, token.Else, token.End)
		if err != nil {
			return nil, err
		}
		elseifs = append(elseifs, ast.ElseIfClause{Condition: c, Body: body})
	}
	var elseBody []ast.Stmt
	if p.check(token.Else) {
		p.advance()
		elseBody, err = p.blockUntil(token.End)
		if err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(token.End); err != nil {
		return nil, err
	}
	return &ast.If{S: sp, Condition: cond, ThenBody: thenBody, ElseIfClauses: elseifs, ElseBody: elseBody}, nil
}

func (p *Parser) whileStmt() (ast.Stmt, error) {
	sp := p.span()
	p.advance() // while
	cond, err := p.expression(0)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Do); err != nil {
		return nil, err
	}
	body, err := p.blockUntil(token.End)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.End); err != nil {
		return nil, err
	}
	return &ast.While{S: sp, Condition: cond, Body: body}, nil
}

func (p *Parser) forStmt() (ast.Stmt, error) {
	sp := p.span()
	p.advance() // for
	firstVar, _, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	if p.check(token.Assign) {
		p.advance()
		start, err := p.expression(0)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.Comma); err != nil {
			return nil, err
		}
		limit, err := p.expression(0)
		if err != nil {
			return nil, err
		}
		var step ast.Expr
		if p.check(token.Comma) {
			p.advance()
			step, err = p.expression(0)
			if err != nil {
				return nil, err
			}
		}
		if _, err := p.expect(token.Do); err != nil {
			return nil, err
		}
		body, err := p.blockUntil(token.End)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.End); err != nil {
			return nil, err
		}
		return &ast.NumericFor{S: sp, Var: firstVar, Start: start, Limit: limit, Step: step, Body: body}, nil
	}

	vars := []string{firstVar}
	for p.check(token.Comma) {
		p.advance()
		v, _, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		vars = append(vars, v)
	}
	if _, err := p.expect(token.In); err != nil {
		return nil, err
	}
	iter, err := p.expression(0)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Do); err != nil {
		return nil, err
	}
	body, err := p.blockUntil(token.End)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.End); err != nil {
		return nil, err
	}
	return &ast.GenericFor{S: sp, Vars: vars, Iter: iter, Body: body}, nil
}

func (p *Parser) repeatUntil() (ast.Stmt, error) {
	sp := p.span()
	p.advance() // repeat
	body, err := p.blockUntil(token.Until)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.Until); err != nil {
		return nil, err
	}
	cond, err := p.expression(0)
	if err != nil {
		return nil, err
	}
	return &ast.RepeatUntil{S: sp, Body: body, Condition: cond}, nil
}

func (p *Parser) blueprintStmt() (ast.Stmt, error) {
	sp := p.span()
	p.advance() // blueprint|fn
	name, _, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}
	params, err := p.paramList()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}
	body, err := p.blockUntil(token.End)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.End); err != nil {
		return nil, err
	}
	return &ast.Blueprint{S: sp, Name: name, Params: params, Body: body}, nil
}

func (p *Parser) paramList() ([]string, error) {
	var params []string
	if p.check(token.RParen) {
		return params, nil
	}
	name, _, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	params = append(params, name)
	for p.check(token.Comma) {
		p.advance()
		name, _, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		params = append(params, name)
	}
	return params, nil
}

func (p *Parser) argList() ([]ast.Expr, error) {
	var args []ast.Expr
	if p.check(token.RParen) {
		return args, nil
	}
	first, err := p.expression(0)
	if err != nil {
		return nil, err
	}
	args = append(args, first)
	for p.check(token.Comma) {
		p.advance()
		arg, err := p.expression(0)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}
	return args, nil
}

func (p *Parser) buildStmt() (ast.Stmt, error) {
	sp := p.span()
	p.advance() // build
	name, _, err := p.expectIdentifier()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.LParen); err != nil {
		return nil, err
	}
	args, err := p.argList()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.RParen); err != nil {
		return nil, err
	}
	return &ast.Build{S: sp, Name: name, Args: args}, nil
}

func (p *Parser) returnStmt() (ast.Stmt, error) {
	sp := p.span()
	p.advance() // return
	if p.isAtEnd() || isBlockTerminator(p.current().Kind) {
		return &ast.Return{S: sp}, nil
	}
	val, err := p.expression(0)
	if err != nil {
		return nil, err
	}
	return &ast.Return{S: sp, Value: val}, nil
}

func (p *Parser) exprOrAssignStmt() (ast.Stmt, error) {
	sp := p.span()
	expr, err := p.expression(0)
	if err != nil {
		return nil, err
	}
	if p.check(token.Assign) {
		p.advance()
		value, err := p.expression(0)
		if err != nil {
			return nil, err
		}
		return &ast.Assign{S: sp, Target: expr, Value: value}, nil
	}
	return &ast.ExprStmt{S: sp, X: expr}, nil
}

// ---- Expressions: Pratt / precedence climbing ----

// infixBindingPower returns the operator, left and right binding powers
// for the current token if it is a recognized infix operator.
//
// Pow is deliberately given left_bp=16 > right_bp=15: a lower right bp
// lets the recursive call on the right-hand side accept another Pow at
// the same precedence, producing right-associative parses (2^3^2 parses
// as 2^(3^2)) even though left_bp nominally looks "higher".
func infixBindingPower(k token.Kind) (ast.BinOp, uint8, uint8, bool) {
	switch k {
	case token.Or:
		return ast.Or, 1, 2, true
	case token.And:
		return ast.And, 3, 4, true
	case token.EqualEqual:
		return ast.Eq, 5, 6, true
	case token.NotEqual, token.TildeEqual:
		return ast.NotEq, 5, 6, true
	case token.Less:
		return ast.Lt, 5, 6, true
	case token.LessEqual:
		return ast.LtEq, 5, 6, true
	case token.Greater:
		return ast.Gt, 5, 6, true
	case token.GreaterEqual:
		return ast.GtEq, 5, 6, true
	case token.DotDot:
		return ast.Concat, 7, 8, true
	case token.Plus:
		return ast.Add, 9, 10, true
	case token.Minus:
		return ast.Sub, 9, 10, true
	case token.Star:
		return ast.Mul, 11, 12, true
	case token.Slash:
		return ast.Div, 11, 12, true
	case token.Percent:
		return ast.Mod, 11, 12, true
	case token.Caret:
		return ast.Pow, 16, 15, true
	default:
		return 0, 0, 0, false
	}
}

const unaryBindingPower = 13

func (p *Parser) expression(minBP uint8) (ast.Expr, error) {
	left, err := p.prefix()
	if err != nil {
		return nil, err
	}

	for {
		// Postfix operators always extend the expression regardless of
		// minBP: call, field/index access, and method call bind tighter
		// than any infix operator.
		switch p.current().Kind {
		case token.LParen:
			sp := left.Span()
			p.advance()
			args, err := p.argList()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.RParen); err != nil {
				return nil, err
			}
			left = &ast.Call{S: sp, Callee: left, Args: args}
			continue
		case token.Dot:
			sp := left.Span()
			p.advance()
			field, _, err := p.expectIdentifier()
			if err != nil {
				return nil, err
			}
			left = &ast.FieldAccess{S: sp, Object: left, Field: field}
			continue
		case token.LBracket:
			sp := left.Span()
			p.advance()
			idx, err := p.expression(0)
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.RBracket); err != nil {
				return nil, err
			}
			left = &ast.IndexAccess{S: sp, Object: left, Index: idx}
			continue
		case token.Colon:
			sp := left.Span()
			p.advance()
			method, _, err := p.expectIdentifier()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.LParen); err != nil {
				return nil, err
			}
			args, err := p.argList()
			if err != nil {
				return nil, err
			}
			if _, err := p.expect(token.RParen); err != nil {
				return nil, err
			}
			left = &ast.MethodCall{S: sp, Object: left, Method: method, Args: args}
			continue
		}

		op, leftBP, rightBP, ok := infixBindingPower(p.current().Kind)
		if !ok || leftBP < minBP {
			break
		}
		p.advance()
		right, err := p.expression(rightBP)
		if err != nil {
			return nil, err
		}
		left = &ast.BinaryOp{S: left.Span(), Left: left, Op: op, Right: right}
	}

	return left, nil
}

func (p *Parser) prefix() (ast.Expr, error) {
	tok := p.current()
	sp := ast.Span{Line: tok.Line, Column: tok.Column}

	switch tok.Kind {
	case token.Number:
		p.advance()
		return &ast.NumberLit{S: sp, Value: tok.Number}, nil
	case token.String:
		p.advance()
		return &ast.StringLit{S: sp, Value: tok.Literal}, nil
	case token.True:
		p.advance()
		return &ast.BoolLit{S: sp, Value: true}, nil
	case token.False:
		p.advance()
		return &ast.BoolLit{S: sp, Value: false}, nil
	case token.Nil:
		p.advance()
		return &ast.NilLit{S: sp}, nil
	case token.Ident:
		name, idSpan, err := p.expectIdentifier()
		if err != nil {
			return nil, err
		}
		return &ast.Ident{S: idSpan, Name: name}, nil
	case token.Minus:
		p.advance()
		operand, err := p.expression(unaryBindingPower)
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOpExpr{S: sp, Op: ast.Neg, Operand: operand}, nil
	case token.Not:
		p.advance()
		operand, err := p.expression(unaryBindingPower)
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOpExpr{S: sp, Op: ast.Not, Operand: operand}, nil
	case token.Hash:
		p.advance()
		operand, err := p.expression(unaryBindingPower)
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOpExpr{S: sp, Op: ast.Len, Operand: operand}, nil
	case token.LParen:
		p.advance()
		inner, err := p.expression(0)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.RParen); err != nil {
			return nil, err
		}
		return inner, nil
	case token.LBracket:
		p.advance()
		var elems []ast.Expr
		if !p.check(token.RBracket) {
			first, err := p.expression(0)
			if err != nil {
				return nil, err
			}
			elems = append(elems, first)
			for p.check(token.Comma) {
				p.advance()
				if p.check(token.RBracket) {
					break
				}
				e, err := p.expression(0)
				if err != nil {
					return nil, err
				}
				elems = append(elems, e)
			}
		}
		if _, err := p.expect(token.RBracket); err != nil {
			return nil, err
		}
		return &ast.ArrayLit{S: sp, Elements: elems}, nil
	case token.LBrace:
		p.advance()
		var fields []ast.TableField
		if !p.check(token.RBrace) {
			f, err := p.tableField()
			if err != nil {
				return nil, err
			}
			fields = append(fields, f)
			for p.check(token.Comma) {
				p.advance()
				if p.check(token.RBrace) {
					break
				}
				f, err := p.tableField()
				if err != nil {
					return nil, err
				}
				fields = append(fields, f)
			}
		}
		if _, err := p.expect(token.RBrace); err != nil {
			return nil, err
		}
		return &ast.TableLit{S: sp, Fields: fields}, nil
	default:
		return nil, groveerr.SyntaxErr(fmt.Sprintf("unexpected token %s", tok.Kind), tok.Line, tok.Column)
	}
}

func (p *Parser) tableField() (ast.TableField, error) {
	key, _, err := p.expectIdentifier()
	if err != nil {
		return ast.TableField{}, err
	}
	if _, err := p.expect(token.Assign); err != nil {
		return ast.TableField{}, err
	}
	val, err := p.expression(0)
	if err != nil {
		return ast.TableField{}, err
	}
	return ast.TableField{Key: key, Value: val}, nil
}
