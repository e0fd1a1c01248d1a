package compiler

import (
	"fmt"

	"github.com/hfeeki/numba/types"
	"tinygo.org/x/go-llvm"
)

// Lowerer maps inferred types to the LLVM types a specialization passes
// them as.
type Lowerer struct {
	Context llvm.Context
}

// Lower returns the LLVM type of t. Arrays lower to a descriptor struct
// { elem*, [rank x i64] shape, [rank x i64] strides }.
func (lw Lowerer) Lower(t types.Type) llvm.Type {
	switch t.Kind() {
	case types.BoolKind:
		return lw.Context.Int1Type()
	case types.IntKind, types.UintKind:
		return lw.intType(types.Width(t))
	case types.FloatKind:
		return lw.floatType(types.Width(t))
	case types.ComplexKind:
		part := lw.floatType(types.Width(t) / 2)
		return lw.Context.StructType([]llvm.Type{part, part}, false)
	case types.ArrayKind:
		a := t.(types.Array)
		dims := llvm.ArrayType(lw.Context.Int64Type(), a.Rank)
		data := llvm.PointerType(lw.Lower(a.Elem), 0)
		return lw.Context.StructType([]llvm.Type{data, dims, dims}, false)
	case types.TupleKind:
		tup := t.(types.Tuple)
		return llvm.ArrayType(lw.Lower(tup.Elem), tup.Arity)
	default:
		panic("unknown type in Lower: " + t.String())
	}
}

func (lw Lowerer) intType(width uint32) llvm.Type {
	switch width {
	case 8:
		return lw.Context.Int8Type()
	case 16:
		return lw.Context.Int16Type()
	case 32:
		return lw.Context.Int32Type()
	case 64:
		return lw.Context.Int64Type()
	default:
		panic(fmt.Sprintf("unsupported int width: %d", width))
	}
}

func (lw Lowerer) floatType(width uint32) llvm.Type {
	switch width {
	case 32:
		return lw.Context.FloatType()
	case 64:
		return lw.Context.DoubleType()
	default:
		panic(fmt.Sprintf("unsupported float width: %d", width))
	}
}
