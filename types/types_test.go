package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeString(t *testing.T) {
	tests := []struct {
		name string
		typ  Type
		want string
	}{
		{"bool", Bool, "bool"},
		{"int", I32, "int32"},
		{"uint", U16, "uint16"},
		{"float", F64, "float64"},
		{"complex", C128, "complex128"},
		{"rank 0", NewArray(F64, 0, LayoutC), "float64[]"},
		{"1d any", NewArray(F64, 1, LayoutA), "float64[:]"},
		{"1d C", NewArray(F64, 1, LayoutC), "float64[::1]"},
		{"2d any", NewArray(I32, 2, LayoutA), "int32[:, :]"},
		{"2d C", NewArray(I32, 2, LayoutC), "int32[:, ::1]"},
		{"2d F", NewArray(I32, 2, LayoutF), "int32[::1, :]"},
		{"3d C", NewArray(C64, 3, LayoutC), "complex64[:, :, ::1]"},
		{"tuple", Tuple{Elem: NewArray(I64, 1, LayoutC), Arity: 2}, "tuple(int64[::1], 2)"},
		{"seq", Seq{Elems: []Type{I64, Seq{Elems: []Type{F64}}}}, "[int64, [float64]]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.typ.String())
		})
	}
}

func TestNewArrayCanonicalLayout(t *testing.T) {
	assert.Equal(t, LayoutC, NewArray(F64, 1, LayoutF).Layout)
	assert.Equal(t, LayoutC, NewArray(F64, 0, LayoutF).Layout)
	assert.Equal(t, LayoutC, NewArray(F64, 0, LayoutA).Layout)
	assert.True(t, Equal(NewArray(I32, 0, LayoutA), NewArray(I32, 0, LayoutC)))
	assert.Equal(t, LayoutF, NewArray(F64, 2, LayoutF).Layout)
	assert.Equal(t, LayoutA, NewArray(F64, 1, LayoutA).Layout)
}

func TestEqualIsStructural(t *testing.T) {
	tests := []struct {
		name  string
		a, b  Type
		equal bool
	}{
		{"same scalar", Int{Width: 32}, I32, true},
		{"width differs", I32, I64, false},
		{"signedness differs", I32, U32, false},
		{"float vs complex", F64, C128, false},
		{"array same", NewArray(F64, 2, LayoutC), Array{Elem: Float{Width: 64}, Rank: 2, Layout: LayoutC}, true},
		{"array layout differs", NewArray(F64, 2, LayoutC), NewArray(F64, 2, LayoutF), false},
		{"array rank differs", NewArray(F64, 2, LayoutC), NewArray(F64, 3, LayoutC), false},
		{"array elem differs", NewArray(F64, 1, LayoutC), NewArray(F32, 1, LayoutC), false},
		{"rank 0 array vs scalar", NewArray(F64, 0, LayoutC), F64, false},
		{"tuple arity differs", Tuple{Elem: I64, Arity: 1}, Tuple{Elem: I64, Arity: 2}, false},
		{"tuple same", Tuple{Elem: NewArray(I64, 1, LayoutC), Arity: 3}, Tuple{Elem: NewArray(I64, 1, LayoutC), Arity: 3}, true},
		{"seq same", Seq{Elems: []Type{I64, F64}}, Seq{Elems: []Type{I64, F64}}, true},
		{"seq length differs", Seq{Elems: []Type{I64}}, Seq{Elems: []Type{I64, F64}}, false},
		{"nil vs type", nil, I64, false},
		{"nil vs nil", nil, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.equal, Equal(tt.a, tt.b))
			assert.Equal(t, tt.equal, Equal(tt.b, tt.a))
		})
	}
}

func TestRankAndElem(t *testing.T) {
	assert.Equal(t, 0, Rank(F32))
	assert.Equal(t, 3, Rank(NewArray(F32, 3, LayoutA)))
	assert.Equal(t, -1, Rank(Tuple{Elem: F32, Arity: 1}))

	elem, ok := ElemOf(NewArray(U8, 2, LayoutC))
	require.True(t, ok)
	assert.Equal(t, U8, elem)

	elem, ok = ElemOf(C64)
	require.True(t, ok)
	assert.Equal(t, C64, elem)

	_, ok = ElemOf(Seq{})
	assert.False(t, ok)
}

func TestWidth(t *testing.T) {
	assert.EqualValues(t, 8, Width(Bool))
	assert.EqualValues(t, 16, Width(U16))
	assert.EqualValues(t, 128, Width(C128))
	assert.Panics(t, func() { Width(NewArray(F64, 1, LayoutC)) })
}

func TestLookupScalar(t *testing.T) {
	tests := []struct {
		name       string
		indexWidth uint32
		want       Type
	}{
		{"float64", 64, F64},
		{"double", 64, F64},
		{"single", 64, F32},
		{"intc", 64, I32},
		{"cdouble", 64, C128},
		{"intp", 64, I64},
		{"intp", 32, I32},
		{"npy_intp", 64, I64},
		{"uintp", 32, U32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := LookupScalar(tt.name, tt.indexWidth)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := LookupScalar("float128", 64)
	assert.False(t, ok)
	assert.True(t, IsReservedTypeName("intp"))
	assert.False(t, IsReservedTypeName("tensor"))
	assert.Contains(t, ReservedTypeNames(), "complex128")
}
