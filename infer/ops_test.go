package infer

import (
	"testing"

	"github.com/hfeeki/numba/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOp(t *testing.T) {
	tests := []struct {
		name string
		want Op
		str  string
	}{
		{"dot", Op{Kind: OpDot}, "dot"},
		{"asarray", Op{Kind: OpArray}, "array"},
		{"amax", Op{Kind: OpMax}, "max"},
		{"add", Op{Kind: OpUfuncCall, Ufunc: Add}, "add"},
		{"divide", Op{Kind: OpUfuncCall, Ufunc: TrueDivide}, "true_divide"},
		{"add.reduce", Op{Kind: OpUfuncReduce, Ufunc: Add}, "add.reduce"},
		{"logical_or.accumulate", Op{Kind: OpUfuncAccumulate, Ufunc: LogicalOr}, "logical_or.accumulate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			op, err := ParseOp(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, op)
			assert.Equal(t, tt.str, op.String())
		})
	}

	for _, bad := range []string{"", "reduce", "sum.reduce", "add.", "add.outer.reduce"} {
		_, err := ParseOp(bad)
		assert.True(t, IsUnsupported(err), "%q should be unsupported", bad)
	}
}

// Every variant has a rule, so adding an OpKind without one fails here.
func TestRulesCoverEveryOp(t *testing.T) {
	for k := OpArray; k <= OpUfuncAccumulate; k++ {
		r, ok := rules[k]
		require.True(t, ok, "no rule for %s", Op{Kind: k})
		assert.NotNil(t, r.fn)
		assert.NotNil(t, r.options)
	}
}

func TestUfuncResultType(t *testing.T) {
	tests := []struct {
		u    Ufunc
		a, b types.Type
		want types.Type
	}{
		{Add, types.Bool, types.Bool, types.Bool},
		{Add, types.I8, types.U8, types.I16},
		{Subtract, types.F32, types.I64, types.F64},
		{TrueDivide, types.U64, types.I64, types.F64},
		{TrueDivide, types.C64, types.F32, types.C64},
		{FloorDivide, types.Bool, types.I8, types.I8},
		{Power, types.Bool, types.Bool, types.I8},
		{Minimum, types.U32, types.I32, types.I64},
		{LogicalAnd, types.C128, types.F64, types.Bool},
		{BitwiseXor, types.U16, types.U8, types.U16},
	}

	for _, tt := range tests {
		t.Run(tt.u.String(), func(t *testing.T) {
			got, err := tt.u.ResultType(tt.a, tt.b)
			require.NoError(t, err)
			assert.True(t, types.Equal(tt.want, got), "want %s, got %s", tt.want, got)
		})
	}

	_, err := Subtract.ResultType(types.Bool, types.Bool)
	assert.EqualError(t, err, "ufunc subtract has no loop for bool")
	_, err = Add.ResultType(types.NewArray(types.I8, 1, types.LayoutC), types.I8)
	assert.EqualError(t, err, "ufunc add needs scalar operands, got int8[::1] and int8")
	_, err = NoUfunc.ResultType(types.I8, types.I8)
	assert.Error(t, err)
}

func TestLookupUfunc(t *testing.T) {
	for u, info := range ufuncs {
		got, ok := LookupUfunc(info.name)
		require.True(t, ok)
		assert.Equal(t, u, got)
	}
	_, ok := LookupUfunc("sum")
	assert.False(t, ok)
	assert.Equal(t, "ufunc(0)", NoUfunc.String())
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   types.Type
		elem types.Type
		rank int
	}{
		{"scalar", types.U8, types.U8, 0},
		{"array", types.NewArray(types.F32, 3, types.LayoutF), types.F32, 3},
		{"tuple of arrays", types.Tuple{Elem: types.NewArray(types.I16, 2, types.LayoutC), Arity: 4}, types.I16, 3},
		{"nested", types.Seq{Elems: []types.Type{types.Seq{Elems: []types.Type{types.I8}}, types.Seq{Elems: []types.Type{types.F64}}}}, types.F64, 2},
		{"empty", types.Seq{}, types.F64, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			elem, rank, err := normalize(tt.in)
			require.NoError(t, err)
			assert.True(t, types.Equal(tt.elem, elem), "want %s, got %s", tt.elem, elem)
			assert.Equal(t, tt.rank, rank)
		})
	}
}
