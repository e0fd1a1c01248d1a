package ast

import (
	"strconv"
	"strings"

	"github.com/hfeeki/numba/token"
)

// The base Node interface
type Node interface {
	Tok() token.Token
	String() string
}

// All argument and option value nodes implement this
type Expression interface {
	Node
	expressionNode()
}

// Dim is one dimension marker inside a type's brackets.
type Dim int

const (
	DimAny        Dim = iota // :
	DimContiguous            // ::1
)

func (d Dim) String() string {
	if d == DimContiguous {
		return "::1"
	}
	return ":"
}

// CallExpression is `dot(a, b)` or `add.reduce(a, axis=0)`.
type CallExpression struct {
	Token     token.Token // the function name token
	Function  string
	Method    string // "" unless the call is qualified: add.reduce
	Arguments []Expression
	Options   []*Option
}

func (ce *CallExpression) expressionNode()  {}
func (ce *CallExpression) Tok() token.Token { return ce.Token }

// Name is the qualified operation name.
func (ce *CallExpression) Name() string {
	if ce.Method == "" {
		return ce.Function
	}
	return ce.Function + "." + ce.Method
}

func (ce *CallExpression) String() string {
	parts := make([]string, 0, len(ce.Arguments)+len(ce.Options))
	for _, a := range ce.Arguments {
		parts = append(parts, a.String())
	}
	for _, o := range ce.Options {
		parts = append(parts, o.String())
	}
	return ce.Name() + "(" + strings.Join(parts, ", ") + ")"
}

// Option is a keyword argument: axis=0, dtype=float64.
type Option struct {
	Token token.Token // the option name token
	Name  string
	Value Expression
}

func (o *Option) String() string {
	return o.Name + "=" + o.Value.String()
}

// TypeExpression names a scalar (`float64`) or an array (`float64[:, ::1]`).
type TypeExpression struct {
	Token   token.Token
	Name    string
	IsArray bool  // brackets were present, even if empty
	Dims    []Dim // one marker per dimension
}

func (te *TypeExpression) expressionNode()  {}
func (te *TypeExpression) Tok() token.Token { return te.Token }
func (te *TypeExpression) String() string {
	if !te.IsArray {
		return te.Name
	}
	dims := make([]string, len(te.Dims))
	for i, d := range te.Dims {
		dims[i] = d.String()
	}
	return te.Name + "[" + strings.Join(dims, ", ") + "]"
}

// TupleExpression is `tuple(int64[::1], 2)`.
type TupleExpression struct {
	Token token.Token
	Elem  Expression
	Arity int
}

func (te *TupleExpression) expressionNode()  {}
func (te *TupleExpression) Tok() token.Token { return te.Token }
func (te *TupleExpression) String() string {
	return "tuple(" + te.Elem.String() + ", " + strconv.Itoa(te.Arity) + ")"
}

// SequenceLiteral is a nested list such as `[[1, 2], [3, 4]]`.
type SequenceLiteral struct {
	Token    token.Token // the [ token
	Elements []Expression
}

func (sl *SequenceLiteral) expressionNode()  {}
func (sl *SequenceLiteral) Tok() token.Token { return sl.Token }
func (sl *SequenceLiteral) String() string {
	parts := make([]string, len(sl.Elements))
	for i, e := range sl.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

type IntegerLiteral struct {
	Token token.Token
	Value int64
}

func (il *IntegerLiteral) expressionNode()  {}
func (il *IntegerLiteral) Tok() token.Token { return il.Token }
func (il *IntegerLiteral) String() string   { return strconv.FormatInt(il.Value, 10) }

type FloatLiteral struct {
	Token token.Token
	Value float64
}

func (fl *FloatLiteral) expressionNode()  {}
func (fl *FloatLiteral) Tok() token.Token { return fl.Token }
func (fl *FloatLiteral) String() string   { return fl.Token.Literal }

// ImagLiteral is a pure imaginary number such as 3j.
type ImagLiteral struct {
	Token token.Token
	Value float64
}

func (il *ImagLiteral) expressionNode()  {}
func (il *ImagLiteral) Tok() token.Token { return il.Token }
func (il *ImagLiteral) String() string   { return il.Token.Literal }

type BooleanLiteral struct {
	Token token.Token
	Value bool
}

func (bl *BooleanLiteral) expressionNode()  {}
func (bl *BooleanLiteral) Tok() token.Token { return bl.Token }
func (bl *BooleanLiteral) String() string {
	if bl.Value {
		return "True"
	}
	return "False"
}

type NoneLiteral struct {
	Token token.Token
}

func (nl *NoneLiteral) expressionNode()  {}
func (nl *NoneLiteral) Tok() token.Token { return nl.Token }
func (nl *NoneLiteral) String() string   { return "None" }
