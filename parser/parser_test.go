package parser

import (
	"strings"
	"testing"

	"github.com/hfeeki/numba/ast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParseCall(t *testing.T, src string) *ast.CallExpression {
	t.Helper()
	call, errs := ParseCall(src)
	if len(errs) > 0 {
		msgs := make([]string, len(errs))
		for i, e := range errs {
			msgs[i] = e.Error()
		}
		t.Fatalf("parse %q: %s", src, strings.Join(msgs, ", "))
	}
	require.NotNil(t, call)
	return call
}

func TestParseCallRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"scalar args", "vdot(complex128[:], complex128[:])", "vdot(complex128[:], complex128[:])"},
		{"contiguous dims", "dot(float64[:, ::1],float64[::1])", "dot(float64[:, ::1], float64[::1])"},
		{"fortran dims", "array(int32[::1, :])", "array(int32[::1, :])"},
		{"zero rank", "nonzero(float64[])", "nonzero(float64[])"},
		{"options", "sum(int32[:], axis=-1, dtype=double)", "sum(int32[:], axis=-1, dtype=double)"},
		{"out option", "sum(int64[:, :], out=int32[:])", "sum(int64[:, :], out=int32[:])"},
		{"method", "add.reduce(int64[:, :], axis=1)", "add.reduce(int64[:, :], axis=1)"},
		{"nested call", "array(transpose(int32[:, ::1]))", "array(transpose(int32[:, ::1]))"},
		{"sequence", "array([[1, 2.5], [3j, True]])", "array([[1, 2.5], [3j, True]])"},
		{"empty sequence", "array([])", "array([])"},
		{"none option", "sum(float32[:], axis=None, keepdims=False)", "sum(float32[:], axis=None, keepdims=False)"},
		{"tuple", "where(tuple(int64[::1], 2))", "where(tuple(int64[::1], 2))"},
		{"no args", "where()", "where()"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			call := mustParseCall(t, tt.input)
			assert.Equal(t, tt.want, call.String())
		})
	}
}

func TestParseCallStructure(t *testing.T) {
	call := mustParseCall(t, "add.reduce(int64[:, ::1], axis=-2, dtype=float32)")
	assert.Equal(t, "add", call.Function)
	assert.Equal(t, "reduce", call.Method)
	assert.Equal(t, "add.reduce", call.Name())
	require.Len(t, call.Arguments, 1)
	require.Len(t, call.Options, 2)

	te, ok := call.Arguments[0].(*ast.TypeExpression)
	require.True(t, ok, "argument is %T", call.Arguments[0])
	assert.Equal(t, "int64", te.Name)
	assert.True(t, te.IsArray)
	assert.Equal(t, []ast.Dim{ast.DimAny, ast.DimContiguous}, te.Dims)

	axis, ok := call.Options[0].Value.(*ast.IntegerLiteral)
	require.True(t, ok)
	assert.Equal(t, "axis", call.Options[0].Name)
	assert.EqualValues(t, -2, axis.Value)

	dtype, ok := call.Options[1].Value.(*ast.TypeExpression)
	require.True(t, ok)
	assert.False(t, dtype.IsArray)
	assert.Equal(t, "float32", dtype.Name)
}

func TestParseSequenceLiterals(t *testing.T) {
	expr, errs := ParseExpression("[[1, -2], [3.5, -4j]]")
	require.Empty(t, errs)
	outer, ok := expr.(*ast.SequenceLiteral)
	require.True(t, ok)
	require.Len(t, outer.Elements, 2)

	first := outer.Elements[0].(*ast.SequenceLiteral)
	assert.EqualValues(t, -2, first.Elements[1].(*ast.IntegerLiteral).Value)

	second := outer.Elements[1].(*ast.SequenceLiteral)
	assert.InDelta(t, 3.5, second.Elements[0].(*ast.FloatLiteral).Value, 0)
	assert.InDelta(t, -4, second.Elements[1].(*ast.ImagLiteral).Value, 0)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		errMsg string
	}{
		{"missing paren", "dot(float64[:], float64[:]", "expected next token to be )"},
		{"bad stride", "sum(int32[::2])", "only unit strides"},
		{"bad dim", "sum(int32[1])", "expected dimension marker"},
		{"positional after keyword", "sum(axis=0, int32[:])", "positional argument follows keyword"},
		{"not a call", "float64[:]", "expected a call"},
		{"trailing input", "sum(int32[:]) x", "expected next token to be EOF"},
		{"bad tuple arity", "where(tuple(int64[:], 0))", "tuple arity must be a positive integer"},
		{"dangling minus", "sum(int32[:], axis=-None)", "minus must be followed by a number"},
		{"illegal", "sum(int32[:] $)", "expected next token to be )"},
		{"leading literal", "1(int32[:])", "expected operation name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			call, errs := ParseCall(tt.input)
			assert.Nil(t, call)
			require.NotEmpty(t, errs)
			assert.Contains(t, errs[0].Msg, tt.errMsg)
		})
	}
}

func TestParseErrorPosition(t *testing.T) {
	_, errs := ParseCall("sum(int32[::2])")
	require.Len(t, errs, 1)
	assert.Equal(t, 13, errs[0].Token.Pos.Column)
	assert.Equal(t, "13: only unit strides can be declared contiguous, got ::2", errs[0].Error())
}
