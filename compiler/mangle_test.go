package compiler

import (
	"testing"

	"github.com/hfeeki/numba/infer"
	"github.com/hfeeki/numba/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMangleType(t *testing.T) {
	tests := []struct {
		name     string
		typ      types.Type
		expected string
	}{
		{"bool", types.Bool, "b"},
		{"int32", types.I32, "i4"},
		{"uint64", types.U64, "u8"},
		{"float64", types.F64, "f8"},
		{"complex128", types.C128, "c16"},
		{"C matrix", types.NewArray(types.F64, 2, types.LayoutC), "A2Cf8"},
		{"F matrix", types.NewArray(types.I8, 3, types.LayoutF), "A3Fi1"},
		{"strided", types.NewArray(types.C64, 1, types.LayoutA), "A1Ac8"},
		{"0-d", types.NewArray(types.Bool, 0, types.LayoutC), "A0Cb"},
		{"tuple", types.Tuple{Elem: types.NewArray(types.I64, 1, types.LayoutC), Arity: 3}, "T3A1Ci8"},
		{"sequence", types.Seq{Elems: []types.Type{types.I64, types.Seq{Elems: []types.Type{types.Bool, types.F32}}}}, "S2i8S2bf4"},
		{"empty sequence", types.Seq{}, "S0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MangleType(tt.typ))
		})
	}
}

func TestMangleSignature(t *testing.T) {
	tests := []struct {
		name     string
		sig      infer.Signature
		expected string
	}{
		{"no args", infer.Signature{Op: "nonzero"}, "$nonzero"},
		{"dot", infer.Signature{Op: "dot", Args: []types.Type{types.NewArray(types.F64, 2, types.LayoutC), types.F32}}, "$dot$A2Cf8$f4"},
		{"axis", infer.Signature{Op: "add.reduce", Args: []types.Type{types.NewArray(types.I64, 2, types.LayoutA)}, Options: infer.Options{Axis: types.AxisAt(1)}}, "$add.reduce$A2Ai8$.$axis1"},
		{"negative axis", infer.Signature{Op: "sum", Args: []types.Type{types.NewArray(types.I64, 2, types.LayoutA)}, Options: infer.Options{Axis: types.AxisAt(-1)}}, "$sum$A2Ai8$.$axis-1"},
		{"all options", infer.Signature{
			Op:   "sum",
			Args: []types.Type{types.NewArray(types.I32, 3, types.LayoutC)},
			Options: infer.Options{
				Axis:     types.AxisDynamic(),
				DType:    types.F64,
				Out:      types.NewArray(types.F64, 3, types.LayoutC),
				KeepDims: true,
			},
		}, "$sum$A3Ci4$.$axisN$dtypef8$outA3Cf8$keepdims"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mangled := Mangle(tt.sig)
			assert.Equal(t, tt.expected, mangled)

			sig, err := Unmangle(mangled)
			require.NoError(t, err)
			assert.Equal(t, tt.sig.Op, sig.Op)
			assert.True(t, types.EqualTypes(tt.sig.Args, sig.Args), "args %v != %v", tt.sig.Args, sig.Args)
			assert.Equal(t, tt.sig.String(), sig.String())
		})
	}
}

func TestMangleDistinguishesOptions(t *testing.T) {
	m := []types.Type{types.NewArray(types.I32, 2, types.LayoutC)}
	names := map[string]bool{}
	for _, opts := range []infer.Options{
		{},
		{Axis: types.AxisAt(0)},
		{Axis: types.AxisAt(1)},
		{Axis: types.AxisDynamic()},
		{KeepDims: true},
		{DType: types.F32},
	} {
		names[Mangle(infer.Signature{Op: "sum", Args: m, Options: opts})] = true
	}
	assert.Len(t, names, 6)
}

func TestUnmangleErrors(t *testing.T) {
	tests := []struct {
		name    string
		mangled string
	}{
		{"missing prefix", "dot$f8"},
		{"empty op", "$$f8"},
		{"unknown tag", "$dot$x8"},
		{"bad width", "$dot$i3"},
		{"missing layout", "$sum$A2"},
		{"bad layout", "$sum$A2Qf8"},
		{"trailing", "$sum$f8f8"},
		{"short sequence", "$array$S3i8"},
		{"unknown option", "$sum$f8$.$bogus"},
		{"bad axis", "$sum$A1Cf8$.$axisx"},
		{"width wraps", "$sum$i536870913"},
		{"odd width", "$sum$f3"},
		{"zero width", "$sum$i0"},
		{"empty tuple", "$array$T0i8"},
		{"F vector", "$sum$A1Ff8"},
		{"strided 0-d", "$sum$A0Af8"},
		{"array of tuples", "$sum$A1CT2i8"},
		{"huge rank", "$sum$A100000000Ci8"},
		{"huge sequence", "$array$S99999999999i8"},
		{"overflowing count", "$array$S99999999999999999999999i8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Unmangle(tt.mangled)
			assert.Error(t, err)
		})
	}
}

func TestUnmangleCanonical(t *testing.T) {
	sig, err := Unmangle("$sum$A1Cf8$A0Cb$T2A2Fi4")
	require.NoError(t, err)
	require.Len(t, sig.Args, 3)
	assert.True(t, types.Equal(types.NewArray(types.F64, 1, types.LayoutC), sig.Args[0]))
	assert.True(t, types.Equal(types.NewArray(types.Bool, 0, types.LayoutC), sig.Args[1]))
	assert.True(t, types.Equal(types.Tuple{Elem: types.NewArray(types.I32, 2, types.LayoutF), Arity: 2}, sig.Args[2]))
}
