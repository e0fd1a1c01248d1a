package token

import (
	"fmt"
	"strconv"
)

type TokenType int

const (
	ILLEGAL TokenType = iota
	EOF

	literal_beg
	// Identifiers + literals
	IDENT // float64, dot, axis, ...
	INT   // 1343456
	FLOAT // 123.45
	IMAG  // 123.45j
	literal_end

	operator_beg
	// Operators and delimiters
	ASSIGN // =
	SUB    // -
	COLON  // :
	DCOLON // ::

	LPAREN // (
	LBRACK // [
	COMMA  // ,
	PERIOD // .

	RPAREN // )
	RBRACK // ]
	operator_end

	keyword_beg
	NONE  // None
	TRUE  // True
	FALSE // False
	TUPLE // tuple
	keyword_end
)

var tokens = [...]string{
	ILLEGAL: "ILLEGAL",

	EOF: "EOF",

	IDENT: "IDENT",
	INT:   "INT",
	FLOAT: "FLOAT",
	IMAG:  "IMAG",

	ASSIGN: "=",
	SUB:    "-",
	COLON:  ":",
	DCOLON: "::",

	LPAREN: "(",
	LBRACK: "[",
	COMMA:  ",",
	PERIOD: ".",

	RPAREN: ")",
	RBRACK: "]",

	NONE:  "None",
	TRUE:  "True",
	FALSE: "False",
	TUPLE: "tuple",
}

var keywords = map[string]TokenType{
	"None":  NONE,
	"True":  TRUE,
	"False": FALSE,
	"tuple": TUPLE,
}

// LookupIdent maps an identifier to its keyword token, or IDENT.
func LookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return IDENT
}

// Pos is a 1-based column within a single-line signature.
type Pos struct {
	Column int
}

func (p Pos) String() string {
	return strconv.Itoa(p.Column)
}

type Token struct {
	Type    TokenType
	Literal string
	Pos     Pos
}

func (t Token) IsLiteral() bool {
	return literal_beg < t.Type && t.Type < literal_end
}

func (t Token) IsKeyword() bool {
	return keyword_beg < t.Type && t.Type < keyword_end
}

func (t Token) String() string {
	return t.Type.String()
}

func (tokenType TokenType) String() string {
	s := ""
	if 0 <= tokenType && tokenType < TokenType(len(tokens)) {
		s = tokens[tokenType]
	}

	if s == "" {
		s = "token(" + strconv.Itoa(int(tokenType)) + ")"
	}

	return s
}

// CompileError is a lexing or parsing error anchored at a token.
type CompileError struct {
	Token Token
	Msg   string
}

func (ce *CompileError) Error() string {
	return fmt.Sprintf("%d: %s", ce.Token.Pos.Column, ce.Msg)
}
