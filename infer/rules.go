package infer

import "github.com/hfeeki/numba/types"

// inferArray builds a fresh array from an array-like. A column-major input
// of rank two or more keeps its order; everything else comes out C.
func inferArray(c *call) (types.Type, error) {
	if err := c.arity(1); err != nil {
		return nil, err
	}
	elem, rank, err := c.operand(0)
	if err != nil {
		return nil, err
	}
	if c.opts.DType != nil {
		elem = c.opts.DType
	}
	return types.NewArray(elem, rank, keptLayout(c.args[0])), nil
}

func keptLayout(t types.Type) types.Layout {
	if a, ok := t.(types.Array); ok && a.Layout == types.LayoutF && a.Rank >= 2 {
		return types.LayoutF
	}
	return types.LayoutC
}

// inferNonzero returns one index array per dimension of the operand. A
// scalar is treated as a one-dimensional array.
func inferNonzero(c *call) (types.Type, error) {
	if err := c.arity(1); err != nil {
		return nil, err
	}
	_, rank, err := c.operand(0)
	if err != nil {
		return nil, err
	}
	return types.Tuple{
		Elem:  types.NewArray(c.engine.IndexType(), 1, types.LayoutC),
		Arity: max(rank, 1),
	}, nil
}

func inferWhere(c *call) (types.Type, error) {
	switch len(c.args) {
	case 1:
		return inferNonzero(c)
	case 3:
	default:
		return nil, c.errorf("takes 1 or 3 arguments, got %d", len(c.args))
	}
	_, condRank, err := c.operand(0)
	if err != nil {
		return nil, err
	}
	xe, xr, err := c.operand(1)
	if err != nil {
		return nil, err
	}
	ye, yr, err := c.operand(2)
	if err != nil {
		return nil, err
	}
	elem, err := c.promote(xe, ye)
	if err != nil {
		return nil, err
	}
	return types.NewArray(elem, max(condRank, xr, yr), types.LayoutC), nil
}

// binary normalizes both operands of a two-argument operation.
func (c *call) binary() (ae types.Type, ar int, be types.Type, br int, err error) {
	if err = c.arity(2); err != nil {
		return
	}
	if ae, ar, err = c.operand(0); err != nil {
		return
	}
	be, br, err = c.operand(1)
	return
}

// productRank is the rank of dot and inner: the contraction of two arrays,
// or the other operand's rank when one side is a scalar.
func productRank(ar, br int) int {
	if ar == 0 || br == 0 {
		return ar + br
	}
	return types.ContractRank(ar, br)
}

func inferDot(c *call) (types.Type, error) {
	ae, ar, be, br, err := c.binary()
	if err != nil {
		return nil, err
	}
	elem, err := c.promote(ae, be)
	if err != nil {
		return nil, err
	}
	return types.ArrayOrScalar(elem, productRank(ar, br)), nil
}

// inferVdot flattens both operands, so the result is always a scalar.
func inferVdot(c *call) (types.Type, error) {
	ae, _, be, _, err := c.binary()
	if err != nil {
		return nil, err
	}
	return c.promote(ae, be)
}

// inferInner takes its element type from the first operand only.
func inferInner(c *call) (types.Type, error) {
	ae, ar, _, br, err := c.binary()
	if err != nil {
		return nil, err
	}
	return types.ArrayOrScalar(ae, productRank(ar, br)), nil
}

func inferTranspose(c *call) (types.Type, error) {
	if err := c.arity(1); err != nil {
		return nil, err
	}
	if a, ok := c.args[0].(types.Array); ok {
		switch a.Layout {
		case types.LayoutC:
			return types.NewArray(a.Elem, a.Rank, types.LayoutF), nil
		case types.LayoutF:
			return types.NewArray(a.Elem, a.Rank, types.LayoutC), nil
		}
		return a, nil
	}
	elem, rank, err := c.operand(0)
	if err != nil {
		return nil, err
	}
	// a sequence is materialized C first, so its transpose is F
	return types.ArrayOrScalarLayout(elem, rank, types.LayoutF), nil
}

func inferAstype(c *call) (types.Type, error) {
	if err := c.arity(1); err != nil {
		return nil, err
	}
	if c.opts.DType == nil {
		return nil, c.missing(OptDType)
	}
	_, rank, err := c.operand(0)
	if err != nil {
		return nil, err
	}
	if types.IsScalar(c.args[0]) {
		return c.opts.DType, nil
	}
	return types.NewArray(c.opts.DType, rank, keptLayout(c.args[0])), nil
}
