package lexer

import "github.com/hfeeki/numba/token"

type Lexer struct {
	input        []rune
	position     int  // current position in input (points to current rune)
	readPosition int  // current reading position in input (after current rune)
	curr         rune // current rune under examination
}

func New(input string) *Lexer {
	l := &Lexer{input: []rune(input)}
	l.readRune()
	return l
}

func (l *Lexer) NextToken() token.Token {
	var tok token.Token

	l.skipWhitespace()
	pos := token.Pos{Column: l.position + 1}

	switch l.curr {
	case '=':
		tok = newToken(token.ASSIGN, l.curr)
	case '-':
		tok = newToken(token.SUB, l.curr)
	case ':':
		if l.peekRune() == ':' {
			l.readRune()
			tok = token.Token{Type: token.DCOLON, Literal: "::"}
		} else {
			tok = newToken(token.COLON, l.curr)
		}
	case ',':
		tok = newToken(token.COMMA, l.curr)
	case '.':
		if isDigit(l.peekRune()) {
			tok = l.readNumber()
			tok.Pos = pos
			return tok
		}
		tok = newToken(token.PERIOD, l.curr)
	case '(':
		tok = newToken(token.LPAREN, l.curr)
	case ')':
		tok = newToken(token.RPAREN, l.curr)
	case '[':
		tok = newToken(token.LBRACK, l.curr)
	case ']':
		tok = newToken(token.RBRACK, l.curr)
	case 0:
		tok.Literal = ""
		tok.Type = token.EOF
	default:
		if isLetter(l.curr) {
			tok.Literal = l.readIdentifier()
			tok.Type = token.LookupIdent(tok.Literal)
			tok.Pos = pos
			return tok
		} else if isDigit(l.curr) {
			tok = l.readNumber()
			tok.Pos = pos
			return tok
		} else {
			tok = newToken(token.ILLEGAL, l.curr)
		}
	}

	tok.Pos = pos
	l.readRune()
	return tok
}

// Tokens lexes the whole input, EOF included.
func (l *Lexer) Tokens() []token.Token {
	var toks []token.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			return toks
		}
	}
}

func (l *Lexer) skipWhitespace() {
	for l.curr == ' ' || l.curr == '\t' || l.curr == '\n' || l.curr == '\r' {
		l.readRune()
	}
}

func (l *Lexer) readRune() {
	if l.readPosition >= len(l.input) {
		l.curr = 0
	} else {
		l.curr = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
}

func (l *Lexer) peekRune() rune {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

func (l *Lexer) readIdentifier() string {
	position := l.position
	for isLetter(l.curr) || isDigit(l.curr) {
		l.readRune()
	}
	return string(l.input[position:l.position])
}

// readNumber reads 12, 1.5, .5, 1e-3 and an optional j suffix for imaginary literals.
func (l *Lexer) readNumber() token.Token {
	position := l.position
	typ := token.INT
	for isDigit(l.curr) {
		l.readRune()
	}
	if l.curr == '.' {
		typ = token.FLOAT
		l.readRune()
		for isDigit(l.curr) {
			l.readRune()
		}
	}
	if l.curr == 'e' || l.curr == 'E' {
		next := l.peekRune()
		if isDigit(next) || next == '-' || next == '+' {
			typ = token.FLOAT
			l.readRune()
			if l.curr == '-' || l.curr == '+' {
				l.readRune()
			}
			for isDigit(l.curr) {
				l.readRune()
			}
		}
	}
	if l.curr == 'j' || l.curr == 'J' {
		typ = token.IMAG
		l.readRune()
	}
	return token.Token{Type: typ, Literal: string(l.input[position:l.position])}
}

func isLetter(ch rune) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z' || ch == '_'
}

func isDigit(ch rune) bool {
	return '0' <= ch && ch <= '9'
}

func newToken(tokenType token.TokenType, curr rune) token.Token {
	return token.Token{Type: tokenType, Literal: string(curr)}
}
