package compiler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/hfeeki/numba/infer"
	"github.com/hfeeki/numba/types"
)

const (
	PREFIX = "$"   // Prefix for operation names and types
	ON     = "$.$" // separates the argument types from the options
)

// Mangle encodes a signature into a stable specialization name:
//
//	$<op> { $<type> } [ $.$ { $<option> } ]
//
// Scalars encode as a kind letter and byte width (b, i4, u8, f8, c16),
// arrays as A<rank><layout><elem>, tuples as T<arity><elem> and literal
// sequences as S<len> followed by their items.
func Mangle(sig infer.Signature) string {
	var sb strings.Builder
	sb.WriteString(PREFIX + sig.Op)
	for _, arg := range sig.Args {
		sb.WriteString(PREFIX)
		mangleType(&sb, arg)
	}
	opts := sig.Options
	if len(opts.Names()) == 0 {
		return sb.String()
	}
	sb.WriteString(ON)
	var parts []string
	if !opts.Axis.IsAll() {
		if idx, ok := opts.Axis.Const(); ok {
			parts = append(parts, "axis"+strconv.Itoa(idx))
		} else {
			parts = append(parts, "axisN")
		}
	}
	if opts.DType != nil {
		parts = append(parts, "dtype"+MangleType(opts.DType))
	}
	if opts.Out != nil {
		parts = append(parts, "out"+MangleType(opts.Out))
	}
	if opts.KeepDims {
		parts = append(parts, "keepdims")
	}
	sb.WriteString(strings.Join(parts, PREFIX))
	return sb.String()
}

// MangleType is the compact code of a single type.
func MangleType(t types.Type) string {
	var sb strings.Builder
	mangleType(&sb, t)
	return sb.String()
}

func mangleType(sb *strings.Builder, t types.Type) {
	switch v := t.(type) {
	case types.Boolean:
		sb.WriteByte('b')
	case types.Int:
		sb.WriteString("i" + strconv.Itoa(int(v.Width/8)))
	case types.Uint:
		sb.WriteString("u" + strconv.Itoa(int(v.Width/8)))
	case types.Float:
		sb.WriteString("f" + strconv.Itoa(int(v.Width/8)))
	case types.Complex:
		sb.WriteString("c" + strconv.Itoa(int(v.Width/8)))
	case types.Array:
		sb.WriteString("A" + strconv.Itoa(v.Rank) + v.Layout.String())
		mangleType(sb, v.Elem)
	case types.Tuple:
		sb.WriteString("T" + strconv.Itoa(v.Arity))
		mangleType(sb, v.Elem)
	case types.Seq:
		sb.WriteString("S" + strconv.Itoa(len(v.Elems)))
		for _, e := range v.Elems {
			mangleType(sb, e)
		}
	default:
		panic(fmt.Sprintf("mangle: unhandled type %s", t))
	}
}
