package types

import "fmt"

type axisMode int

const (
	axisAll     axisMode = iota // absent or None: reduce every dimension
	axisConst                   // a known integer
	axisDynamic                 // an integer only known at run time
)

// Axis is the axis option of a reduction. The zero value reduces every
// dimension, like an absent or None axis.
type Axis struct {
	mode  axisMode
	index int
}

// AxisAt is a constant axis; negative values count from the last dimension.
func AxisAt(index int) Axis { return Axis{mode: axisConst, index: index} }

// AxisDynamic is an integer axis whose value is only known at run time.
func AxisDynamic() Axis { return Axis{mode: axisDynamic} }

// IsAll reports whether the axis reduces every dimension.
func (a Axis) IsAll() bool { return a.mode == axisAll }

// Const returns the constant index, if any.
func (a Axis) Const() (int, bool) { return a.index, a.mode == axisConst }

func (a Axis) String() string {
	switch a.mode {
	case axisConst:
		return fmt.Sprint(a.index)
	case axisDynamic:
		return "intp"
	default:
		return "None"
	}
}

// NormalizeAxis resolves a constant axis against rank, mapping negative
// indices from the end. Dynamic and full axes pass through.
func NormalizeAxis(axis Axis, rank int) (Axis, error) {
	idx, ok := axis.Const()
	if !ok {
		return axis, nil
	}
	if idx < -rank || idx >= rank {
		return axis, fmt.Errorf("axis %d is out of bounds for array of dimension %d", idx, rank)
	}
	if idx < 0 {
		idx += rank
	}
	return AxisAt(idx), nil
}

// BroadcastRank is the rank of the broadcast of the operands: the maximum
// operand rank, with scalars counting as rank 0.
func BroadcastRank(ts ...Type) int {
	rank := 0
	for _, t := range ts {
		if r := Rank(t); r > rank {
			rank = r
		}
	}
	return rank
}

// ReduceRank is the rank left after reducing a rank-dimensional array along
// axis. keepDims keeps the reduced dimensions with length one.
func ReduceRank(rank int, axis Axis, keepDims bool) int {
	if keepDims {
		return rank
	}
	if axis.IsAll() {
		return 0
	}
	return rank - 1
}

// ContractRank is the rank of a contraction over one shared dimension, as
// in dot and inner products of two arrays.
func ContractRank(a, b int) int {
	return a + b - 2
}

// ArrayOrScalar returns elem itself for rank 0, else a C array of elem.
func ArrayOrScalar(elem Type, rank int) Type {
	return ArrayOrScalarLayout(elem, rank, LayoutC)
}

func ArrayOrScalarLayout(elem Type, rank int, layout Layout) Type {
	if rank <= 0 {
		return elem
	}
	return NewArray(elem, rank, layout)
}
