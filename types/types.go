// Package types is the value-type model shared by inference and lowering:
// scalar kinds, N-dimensional arrays, homogeneous tuples and the literal
// nested sequences accepted by array construction.
package types

import (
	"fmt"
	"strconv"
	"strings"
)

type Kind int

const (
	BoolKind Kind = iota
	IntKind
	UintKind
	FloatKind
	ComplexKind
	ArrayKind
	TupleKind
	SeqKind
)

var kindNames = [...]string{
	BoolKind:    "bool",
	IntKind:     "int",
	UintKind:    "uint",
	FloatKind:   "float",
	ComplexKind: "complex",
	ArrayKind:   "array",
	TupleKind:   "tuple",
	SeqKind:     "sequence",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Type is the interface for all types in the model.
type Type interface {
	String() string
	Kind() Kind
}

// Common scalar types. These are comparable values, so they are safe as map keys.
var (
	Bool Type = Boolean{}
	I8   Type = Int{Width: 8}
	I16  Type = Int{Width: 16}
	I32  Type = Int{Width: 32}
	I64  Type = Int{Width: 64}
	U8   Type = Uint{Width: 8}
	U16  Type = Uint{Width: 16}
	U32  Type = Uint{Width: 32}
	U64  Type = Uint{Width: 64}
	F32  Type = Float{Width: 32}
	F64  Type = Float{Width: 64}
	C64  Type = Complex{Width: 64}
	C128 Type = Complex{Width: 128}
)

// Scalars lists every scalar type in promotion-candidate order: a type
// appears before every type it can be safely cast to.
var Scalars = []Type{Bool, U8, I8, U16, I16, U32, I32, U64, I64, F32, F64, C64, C128}

type Boolean struct{}

func (Boolean) String() string { return "bool" }
func (Boolean) Kind() Kind     { return BoolKind }

// Int is a signed integer of the given bit width.
type Int struct {
	Width uint32 // 8, 16, 32, 64
}

func (i Int) String() string { return fmt.Sprintf("int%d", i.Width) }
func (i Int) Kind() Kind     { return IntKind }

// Uint is an unsigned integer of the given bit width.
type Uint struct {
	Width uint32 // 8, 16, 32, 64
}

func (u Uint) String() string { return fmt.Sprintf("uint%d", u.Width) }
func (u Uint) Kind() Kind     { return UintKind }

// Float is an IEEE floating point type of the given precision.
type Float struct {
	Width uint32 // 32, 64
}

func (f Float) String() string { return fmt.Sprintf("float%d", f.Width) }
func (f Float) Kind() Kind     { return FloatKind }

// Complex is a complex number; Width counts both components (64 or 128).
type Complex struct {
	Width uint32
}

func (c Complex) String() string { return fmt.Sprintf("complex%d", c.Width) }
func (c Complex) Kind() Kind     { return ComplexKind }

// Layout is the memory ordering tag of an array.
type Layout int

const (
	LayoutA Layout = iota // arbitrary strides
	LayoutC               // row-major contiguous
	LayoutF               // column-major contiguous
)

func (l Layout) String() string {
	switch l {
	case LayoutC:
		return "C"
	case LayoutF:
		return "F"
	default:
		return "A"
	}
}

// Array is an N-dimensional array of scalars. Rank 0 is a zero-dimensional
// array, distinct from its element scalar.
type Array struct {
	Elem   Type // always a scalar
	Rank   int
	Layout Layout
}

// String renders numba-style dimension markers: `:` for a strided
// dimension and `::1` for the unit-stride one.
func (a Array) String() string {
	dims := make([]string, a.Rank)
	for i := range dims {
		dims[i] = ":"
	}
	if a.Rank > 0 {
		switch a.Layout {
		case LayoutC:
			dims[a.Rank-1] = "::1"
		case LayoutF:
			dims[0] = "::1"
		}
	}
	return a.Elem.String() + "[" + strings.Join(dims, ", ") + "]"
}

func (a Array) Kind() Kind { return ArrayKind }

// Tuple is a homogeneous fixed-size tuple. Arity is always positive.
type Tuple struct {
	Elem  Type
	Arity int
}

func (t Tuple) String() string {
	return fmt.Sprintf("tuple(%s, %d)", t.Elem, t.Arity)
}

func (t Tuple) Kind() Kind { return TupleKind }

// Seq is the type of a literal nested sequence, e.g. [[1, 2], [3.5, 4]].
// Elements are scalars, arrays or further sequences.
type Seq struct {
	Elems []Type
}

func (s Seq) String() string {
	return "[" + typesStr(s.Elems) + "]"
}

func (s Seq) Kind() Kind { return SeqKind }

// NewArray builds an array type, keeping layouts canonical: a rank-1 array
// that is contiguous in either order is C, and a rank-0 array is always C.
func NewArray(elem Type, rank int, layout Layout) Array {
	if rank == 0 || (rank == 1 && layout == LayoutF) {
		layout = LayoutC
	}
	return Array{Elem: elem, Rank: rank, Layout: layout}
}

// IsScalar reports whether t is one of the scalar kinds.
func IsScalar(t Type) bool {
	switch t.Kind() {
	case BoolKind, IntKind, UintKind, FloatKind, ComplexKind:
		return true
	}
	return false
}

// IsInteger reports whether t is a signed or unsigned integer.
func IsInteger(t Type) bool {
	k := t.Kind()
	return k == IntKind || k == UintKind
}

// Rank is 0 for scalars, the array rank for arrays and -1 otherwise.
func Rank(t Type) int {
	if a, ok := t.(Array); ok {
		return a.Rank
	}
	if IsScalar(t) {
		return 0
	}
	return -1
}

// ElemOf returns the scalar element of an array, or the scalar itself.
func ElemOf(t Type) (Type, bool) {
	if a, ok := t.(Array); ok {
		return a.Elem, true
	}
	if IsScalar(t) {
		return t, true
	}
	return nil, false
}

// Width returns the bit width of a scalar; bool counts as 8.
func Width(t Type) uint32 {
	switch s := t.(type) {
	case Boolean:
		return 8
	case Int:
		return s.Width
	case Uint:
		return s.Width
	case Float:
		return s.Width
	case Complex:
		return s.Width
	default:
		panic(fmt.Sprintf("Width: not a scalar type %s", t))
	}
}

func typesStr(types []Type) string {
	if len(types) == 0 {
		return ""
	}
	var sb strings.Builder
	for i, t := range types {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(t.String())
	}
	return sb.String()
}

// TypesString renders a list of types separated by commas.
func TypesString(types []Type) string {
	return typesStr(types)
}

// EqualTypes checks that two type lists are pairwise structurally equal.
func EqualTypes(left []Type, right []Type) bool {
	if len(left) != len(right) {
		return false
	}

	for i, l := range left {
		if !Equal(l, right[i]) {
			return false
		}
	}

	return true
}

// Equal performs structural equality on types with a dispatcher by Kind,
// avoiding brittle String() comparison.
func Equal(a, b Type) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	if a.Kind() != b.Kind() {
		return false
	}
	cmp := typeComparer(a.Kind())
	return cmp(a, b)
}

func typeComparer(k Kind) func(a, b Type) bool {
	switch k {
	case BoolKind:
		return eqBool
	case IntKind:
		return eqInt
	case UintKind:
		return eqUint
	case FloatKind:
		return eqFloat
	case ComplexKind:
		return eqComplex
	case ArrayKind:
		return eqArray
	case TupleKind:
		return eqTuple
	case SeqKind:
		return eqSeq
	default:
		return func(a, b Type) bool { panic(fmt.Sprintf("Equal: unhandled kind %v", k)) }
	}
}

func eqBool(a, b Type) bool { return true }

func eqInt(a, b Type) bool {
	return a.(Int).Width == b.(Int).Width
}

func eqUint(a, b Type) bool {
	return a.(Uint).Width == b.(Uint).Width
}

func eqFloat(a, b Type) bool {
	return a.(Float).Width == b.(Float).Width
}

func eqComplex(a, b Type) bool {
	return a.(Complex).Width == b.(Complex).Width
}

func eqArray(a, b Type) bool {
	aa := a.(Array)
	ba := b.(Array)
	return aa.Rank == ba.Rank && aa.Layout == ba.Layout && Equal(aa.Elem, ba.Elem)
}

func eqTuple(a, b Type) bool {
	at := a.(Tuple)
	bt := b.(Tuple)
	return at.Arity == bt.Arity && Equal(at.Elem, bt.Elem)
}

func eqSeq(a, b Type) bool {
	return EqualTypes(a.(Seq).Elems, b.(Seq).Elems)
}
