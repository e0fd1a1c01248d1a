package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPromoteIsCommutativeAndTotal(t *testing.T) {
	for _, a := range Scalars {
		for _, b := range Scalars {
			ab, ok := Promote(a, b)
			require.True(t, ok, "%s + %s", a, b)
			ba, ok := Promote(b, a)
			require.True(t, ok, "%s + %s", b, a)
			assert.True(t, Equal(ab, ba), "%s + %s: %s vs %s", a, b, ab, ba)
			assert.True(t, CanCast(a, ab), "%s does not cast to %s", a, ab)
			assert.True(t, CanCast(b, ab), "%s does not cast to %s", b, ab)
		}
	}
}

func TestPromoteSameKindIsIdentity(t *testing.T) {
	for _, s := range Scalars {
		got, ok := Promote(s, s)
		require.True(t, ok)
		assert.Equal(t, s, got)
	}
}

func TestPromoteTable(t *testing.T) {
	tests := []struct {
		a, b Type
		want Type
	}{
		{Bool, Bool, Bool},
		{Bool, I8, I8},
		{Bool, F32, F32},
		{I8, I16, I16},
		{I32, I64, I64},
		{U8, U32, U32},
		{U8, I8, I16},
		{U16, I8, I32},
		{U32, I32, I64},
		{U32, I64, I64},
		{U64, I8, F64},
		{U64, I64, F64},
		{U64, U8, U64},
		{I8, F32, F32},
		{I16, F32, F32},
		{U16, F32, F32},
		{I32, F32, F64},
		{I64, F32, F64},
		{I8, F64, F64},
		{F32, F64, F64},
		{F32, C64, C64},
		{F64, C64, C128},
		{I16, C64, C64},
		{I64, C64, C128},
		{U8, C128, C128},
		{C64, C128, C128},
	}

	for _, tt := range tests {
		t.Run(tt.a.String()+"+"+tt.b.String(), func(t *testing.T) {
			got, ok := Promote(tt.a, tt.b)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPromoteNeverNarrowsFloat(t *testing.T) {
	for _, s := range Scalars {
		for _, f := range []Type{F32, F64} {
			got, _ := Promote(s, f)
			if got.Kind() == FloatKind {
				assert.GreaterOrEqual(t, Width(got), Width(f), "%s + %s", s, f)
			}
		}
	}
}

func TestPromoteRejectsNonScalars(t *testing.T) {
	_, ok := Promote(NewArray(F64, 1, LayoutC), F64)
	assert.False(t, ok)
	_, ok = Promote(I32, Tuple{Elem: I32, Arity: 1})
	assert.False(t, ok)
}

func TestPromoteAll(t *testing.T) {
	got, ok := PromoteAll(I8, U8, F32)
	require.True(t, ok)
	assert.Equal(t, F32, got)

	got, ok = PromoteAll(Bool)
	require.True(t, ok)
	assert.Equal(t, Bool, got)

	_, ok = PromoteAll()
	assert.False(t, ok)
	_, ok = PromoteAll(Seq{}, I8)
	assert.False(t, ok)
}

func TestCanCast(t *testing.T) {
	assert.True(t, CanCast(Bool, U8))
	assert.True(t, CanCast(U8, I16))
	assert.False(t, CanCast(U8, I8))
	assert.False(t, CanCast(I8, U64))
	assert.True(t, CanCast(I64, F64))
	assert.False(t, CanCast(I64, F32))
	assert.False(t, CanCast(F64, C64))
	assert.False(t, CanCast(C64, F64))
	assert.False(t, CanCast(F32, I64))
}
