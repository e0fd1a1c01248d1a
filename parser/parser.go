package parser

import (
	"fmt"
	"strconv"

	"github.com/hfeeki/numba/ast"
	"github.com/hfeeki/numba/lexer"
	"github.com/hfeeki/numba/token"
)

type prefixParseFn func() ast.Expression

type Parser struct {
	l      *lexer.Lexer
	errors []*token.CompileError

	curToken  token.Token
	peekToken token.Token

	prefixParseFns map[token.TokenType]prefixParseFn
}

func New(l *lexer.Lexer) *Parser {
	p := &Parser{
		l:      l,
		errors: []*token.CompileError{},
	}

	p.prefixParseFns = make(map[token.TokenType]prefixParseFn)
	p.registerPrefix(token.IDENT, p.parseIdentExpression)
	p.registerPrefix(token.INT, p.parseIntegerLiteral)
	p.registerPrefix(token.FLOAT, p.parseFloatLiteral)
	p.registerPrefix(token.IMAG, p.parseImagLiteral)
	p.registerPrefix(token.SUB, p.parseNegativeLiteral)
	p.registerPrefix(token.TRUE, p.parseBoolean)
	p.registerPrefix(token.FALSE, p.parseBoolean)
	p.registerPrefix(token.NONE, p.parseNone)
	p.registerPrefix(token.TUPLE, p.parseTupleExpression)
	p.registerPrefix(token.LBRACK, p.parseSequenceLiteral)

	// Read two tokens, so curToken and peekToken are both set
	p.nextToken()
	p.nextToken()

	return p
}

func (p *Parser) Errors() []*token.CompileError {
	return p.errors
}

func (p *Parser) registerPrefix(tokenType token.TokenType, fn prefixParseFn) {
	p.prefixParseFns[tokenType] = fn
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) curTokenIs(t token.TokenType) bool {
	return p.curToken.Type == t
}

func (p *Parser) peekTokenIs(t token.TokenType) bool {
	return p.peekToken.Type == t
}

func (p *Parser) expectPeek(t token.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.peekError(t)
	return false
}

func (p *Parser) addError(tok token.Token, format string, args ...any) {
	p.errors = append(p.errors, &token.CompileError{
		Token: tok,
		Msg:   fmt.Sprintf(format, args...),
	})
}

func (p *Parser) peekError(t token.TokenType) {
	p.addError(p.peekToken, "expected next token to be %s, got %s instead", t, p.peekToken.Type)
}

// ParseCall parses a whole signature such as `sum(int32[:], axis=0)`.
// It returns nil when the input is not a single call.
func (p *Parser) ParseCall() *ast.CallExpression {
	if !p.curTokenIs(token.IDENT) {
		p.addError(p.curToken, "expected operation name, got %s", p.curToken.Type)
		return nil
	}
	expr := p.parseIdentExpression()
	call, ok := expr.(*ast.CallExpression)
	if !ok {
		if expr != nil {
			p.addError(expr.Tok(), "expected a call, got %s", expr)
		}
		return nil
	}
	if !p.expectPeek(token.EOF) {
		return nil
	}
	return call
}

// ParseExpression parses one argument-like expression spanning the whole input.
func (p *Parser) ParseExpression() ast.Expression {
	expr := p.parseExpression()
	if expr == nil {
		return nil
	}
	if !p.expectPeek(token.EOF) {
		return nil
	}
	return expr
}

func (p *Parser) parseExpression() ast.Expression {
	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.addError(p.curToken, "no expression can start with %s", p.curToken.Type)
		return nil
	}
	return prefix()
}

// parseIdentExpression handles type names (`float64`, `int32[:, ::1]`) and
// calls (`dot(...)`, `add.reduce(...)`).
func (p *Parser) parseIdentExpression() ast.Expression {
	tok := p.curToken
	switch {
	case p.peekTokenIs(token.LPAREN):
		p.nextToken()
		return p.parseCallExpression(tok, "")
	case p.peekTokenIs(token.PERIOD):
		p.nextToken()
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		method := p.curToken.Literal
		if !p.expectPeek(token.LPAREN) {
			return nil
		}
		return p.parseCallExpression(tok, method)
	case p.peekTokenIs(token.LBRACK):
		p.nextToken()
		return p.parseArrayType(tok)
	}
	return &ast.TypeExpression{Token: tok, Name: tok.Literal}
}

// parseArrayType expects curToken to be the [ after the element name.
func (p *Parser) parseArrayType(name token.Token) ast.Expression {
	te := &ast.TypeExpression{Token: name, Name: name.Literal, IsArray: true, Dims: []ast.Dim{}}
	if p.peekTokenIs(token.RBRACK) {
		p.nextToken()
		return te
	}
	for {
		p.nextToken()
		switch p.curToken.Type {
		case token.COLON:
			te.Dims = append(te.Dims, ast.DimAny)
		case token.DCOLON:
			if !p.expectPeek(token.INT) {
				return nil
			}
			if p.curToken.Literal != "1" {
				p.addError(p.curToken, "only unit strides can be declared contiguous, got ::%s", p.curToken.Literal)
				return nil
			}
			te.Dims = append(te.Dims, ast.DimContiguous)
		default:
			p.addError(p.curToken, "expected dimension marker : or ::1, got %s", p.curToken.Type)
			return nil
		}
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			continue
		}
		if !p.expectPeek(token.RBRACK) {
			return nil
		}
		return te
	}
}

// parseCallExpression expects curToken to be the opening parenthesis.
func (p *Parser) parseCallExpression(name token.Token, method string) ast.Expression {
	call := &ast.CallExpression{
		Token:     name,
		Function:  name.Literal,
		Method:    method,
		Arguments: []ast.Expression{},
		Options:   []*ast.Option{},
	}
	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return call
	}

	for {
		p.nextToken()
		if p.curTokenIs(token.IDENT) && p.peekTokenIs(token.ASSIGN) {
			opt := &ast.Option{Token: p.curToken, Name: p.curToken.Literal}
			p.nextToken()
			p.nextToken()
			opt.Value = p.parseExpression()
			if opt.Value == nil {
				return nil
			}
			call.Options = append(call.Options, opt)
		} else {
			if len(call.Options) > 0 {
				p.addError(p.curToken, "positional argument follows keyword argument in %s", call.Name())
				return nil
			}
			arg := p.parseExpression()
			if arg == nil {
				return nil
			}
			call.Arguments = append(call.Arguments, arg)
		}

		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			continue
		}
		if !p.expectPeek(token.RPAREN) {
			return nil
		}
		return call
	}
}

func (p *Parser) parseTupleExpression() ast.Expression {
	te := &ast.TupleExpression{Token: p.curToken}
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	p.nextToken()
	te.Elem = p.parseExpression()
	if te.Elem == nil {
		return nil
	}
	if !p.expectPeek(token.COMMA) {
		return nil
	}
	if !p.expectPeek(token.INT) {
		return nil
	}
	arity, err := strconv.Atoi(p.curToken.Literal)
	if err != nil || arity <= 0 {
		p.addError(p.curToken, "tuple arity must be a positive integer, got %s", p.curToken.Literal)
		return nil
	}
	te.Arity = arity
	if !p.expectPeek(token.RPAREN) {
		return nil
	}
	return te
}

func (p *Parser) parseSequenceLiteral() ast.Expression {
	sl := &ast.SequenceLiteral{Token: p.curToken, Elements: []ast.Expression{}}
	if p.peekTokenIs(token.RBRACK) {
		p.nextToken()
		return sl
	}
	for {
		p.nextToken()
		elem := p.parseExpression()
		if elem == nil {
			return nil
		}
		sl.Elements = append(sl.Elements, elem)
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			continue
		}
		if !p.expectPeek(token.RBRACK) {
			return nil
		}
		return sl
	}
}

func (p *Parser) parseIntegerLiteral() ast.Expression {
	lit := &ast.IntegerLiteral{Token: p.curToken}

	value, err := strconv.ParseInt(p.curToken.Literal, 10, 64)
	if err != nil {
		p.addError(p.curToken, "could not parse %q as integer", p.curToken.Literal)
		return nil
	}

	lit.Value = value
	return lit
}

func (p *Parser) parseFloatLiteral() ast.Expression {
	lit := &ast.FloatLiteral{Token: p.curToken}

	value, err := strconv.ParseFloat(p.curToken.Literal, 64)
	if err != nil {
		p.addError(p.curToken, "could not parse %q as float", p.curToken.Literal)
		return nil
	}

	lit.Value = value
	return lit
}

func (p *Parser) parseImagLiteral() ast.Expression {
	lit := &ast.ImagLiteral{Token: p.curToken}
	literal := p.curToken.Literal
	value, err := strconv.ParseFloat(literal[:len(literal)-1], 64)
	if err != nil {
		p.addError(p.curToken, "could not parse %q as imaginary number", literal)
		return nil
	}
	lit.Value = value
	return lit
}

// parseNegativeLiteral folds a leading minus into the numeric literal after it.
func (p *Parser) parseNegativeLiteral() ast.Expression {
	minus := p.curToken
	p.nextToken()
	switch p.curToken.Type {
	case token.INT, token.FLOAT, token.IMAG:
	default:
		p.addError(minus, "minus must be followed by a number, got %s", p.curToken.Type)
		return nil
	}
	p.curToken.Literal = "-" + p.curToken.Literal
	p.curToken.Pos = minus.Pos
	return p.prefixParseFns[p.curToken.Type]()
}

func (p *Parser) parseBoolean() ast.Expression {
	return &ast.BooleanLiteral{Token: p.curToken, Value: p.curTokenIs(token.TRUE)}
}

func (p *Parser) parseNone() ast.Expression {
	return &ast.NoneLiteral{Token: p.curToken}
}

// ParseCall parses src as a single signature call.
func ParseCall(src string) (*ast.CallExpression, []*token.CompileError) {
	p := New(lexer.New(src))
	call := p.ParseCall()
	return call, p.Errors()
}

// ParseExpression parses src as a single expression (a type, literal or call).
func ParseExpression(src string) (ast.Expression, []*token.CompileError) {
	p := New(lexer.New(src))
	expr := p.ParseExpression()
	return expr, p.Errors()
}
