package infer

import (
	"fmt"

	"github.com/hashicorp/go-set/v3"
	"github.com/hfeeki/numba/types"
)

// Ufunc identifies a binary universal function.
type Ufunc int

const (
	NoUfunc Ufunc = iota
	Add
	Subtract
	Multiply
	TrueDivide
	FloorDivide
	Power
	Maximum
	Minimum
	LogicalAnd
	LogicalOr
	LogicalXor
	BitwiseAnd
	BitwiseOr
	BitwiseXor
)

// ufuncInfo is a ufunc's type rule: which input kinds it has loops for, and
// the output type of its loop for a (promoted) input type.
type ufuncInfo struct {
	name    string
	accepts *set.Set[types.Kind]
	loop    func(in types.Type) types.Type
}

var (
	allKinds     = set.From([]types.Kind{types.BoolKind, types.IntKind, types.UintKind, types.FloatKind, types.ComplexKind})
	numericKinds = set.From([]types.Kind{types.IntKind, types.UintKind, types.FloatKind, types.ComplexKind})
	realKinds    = set.From([]types.Kind{types.BoolKind, types.IntKind, types.UintKind, types.FloatKind})
	bitKinds     = set.From([]types.Kind{types.BoolKind, types.IntKind, types.UintKind})
)

func sameType(in types.Type) types.Type { return in }

func toBool(types.Type) types.Type { return types.Bool }

// boolAsInt8 mirrors the int8 loop that floor_divide and power use for bools.
func boolAsInt8(in types.Type) types.Type {
	if in.Kind() == types.BoolKind {
		return types.I8
	}
	return in
}

// toInexact maps bools and integers to float64 and keeps inexact types.
func toInexact(in types.Type) types.Type {
	switch in.Kind() {
	case types.FloatKind, types.ComplexKind:
		return in
	}
	return types.F64
}

var ufuncs = map[Ufunc]ufuncInfo{
	Add:         {name: "add", accepts: allKinds, loop: sameType},
	Subtract:    {name: "subtract", accepts: numericKinds, loop: sameType},
	Multiply:    {name: "multiply", accepts: allKinds, loop: sameType},
	TrueDivide:  {name: "true_divide", accepts: allKinds, loop: toInexact},
	FloorDivide: {name: "floor_divide", accepts: realKinds, loop: boolAsInt8},
	Power:       {name: "power", accepts: allKinds, loop: boolAsInt8},
	Maximum:     {name: "maximum", accepts: allKinds, loop: sameType},
	Minimum:     {name: "minimum", accepts: allKinds, loop: sameType},
	LogicalAnd:  {name: "logical_and", accepts: allKinds, loop: toBool},
	LogicalOr:   {name: "logical_or", accepts: allKinds, loop: toBool},
	LogicalXor:  {name: "logical_xor", accepts: allKinds, loop: toBool},
	BitwiseAnd:  {name: "bitwise_and", accepts: bitKinds, loop: sameType},
	BitwiseOr:   {name: "bitwise_or", accepts: bitKinds, loop: sameType},
	BitwiseXor:  {name: "bitwise_xor", accepts: bitKinds, loop: sameType},
}

var ufuncNames = func() map[string]Ufunc {
	m := make(map[string]Ufunc, len(ufuncs)+1)
	for u, info := range ufuncs {
		m[info.name] = u
	}
	m["divide"] = TrueDivide
	return m
}()

// LookupUfunc resolves a ufunc by name.
func LookupUfunc(name string) (Ufunc, bool) {
	u, ok := ufuncNames[name]
	return u, ok
}

func (u Ufunc) String() string {
	if info, ok := ufuncs[u]; ok {
		return info.name
	}
	return fmt.Sprintf("ufunc(%d)", int(u))
}

// ResultType is the output element type of u applied to scalars a and b:
// the inputs are promoted, then mapped through the ufunc's loop.
func (u Ufunc) ResultType(a, b types.Type) (types.Type, error) {
	info, ok := ufuncs[u]
	if !ok {
		return nil, fmt.Errorf("unknown ufunc %d", int(u))
	}
	in, ok := types.Promote(a, b)
	if !ok {
		return nil, fmt.Errorf("ufunc %s needs scalar operands, got %s and %s", info.name, a, b)
	}
	if !info.accepts.Contains(in.Kind()) {
		return nil, fmt.Errorf("ufunc %s has no loop for %s", info.name, in)
	}
	return info.loop(in), nil
}
