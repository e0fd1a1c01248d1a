package infer

import "github.com/hfeeki/numba/types"

// reduceWith is the rule of a named reduction (sum, prod, ...) that combines
// elements with ufunc u.
func reduceWith(u Ufunc) ruleFunc {
	return func(c *call) (types.Type, error) {
		return c.reduce(u, false)
	}
}

func inferUfuncReduce(c *call) (types.Type, error) {
	return c.reduce(c.op.Ufunc, true)
}

// reduce applies u along the axis option, or over every dimension when no
// axis is given. An out array is returned as is.
func (c *call) reduce(u Ufunc, needArray bool) (types.Type, error) {
	if err := c.arity(1); err != nil {
		return nil, err
	}
	elem, rank, err := c.operand(0)
	if err != nil {
		return nil, err
	}
	if needArray && rank == 0 {
		return nil, c.errorf("cannot reduce a 0-d operand")
	}
	if out, ok, err := c.out(); ok || err != nil {
		return out, err
	}
	axis, err := c.axis(rank)
	if err != nil {
		return nil, err
	}
	elem, err = c.resultElem(u, elem, elem)
	if err != nil {
		return nil, err
	}
	if c.opts.KeepDims {
		return types.NewArray(elem, rank, types.LayoutC), nil
	}
	return types.ArrayOrScalar(elem, types.ReduceRank(rank, axis, false)), nil
}

// inferUfuncAccumulate keeps every dimension; the axis defaults to 0.
func inferUfuncAccumulate(c *call) (types.Type, error) {
	if err := c.arity(1); err != nil {
		return nil, err
	}
	elem, rank, err := c.operand(0)
	if err != nil {
		return nil, err
	}
	if rank == 0 {
		return nil, c.errorf("cannot accumulate a 0-d operand")
	}
	if out, ok, err := c.out(); ok || err != nil {
		return out, err
	}
	if c.opts.Axis.IsAll() {
		c.opts.Axis = types.AxisAt(0)
	}
	if _, err := c.axis(rank); err != nil {
		return nil, err
	}
	elem, err = c.resultElem(c.op.Ufunc, elem, elem)
	if err != nil {
		return nil, err
	}
	return types.NewArray(elem, rank, types.LayoutC), nil
}

// inferUfuncCall broadcasts two operands through the ufunc's loop.
func inferUfuncCall(c *call) (types.Type, error) {
	ae, ar, be, br, err := c.binary()
	if err != nil {
		return nil, err
	}
	if out, ok, err := c.out(); ok || err != nil {
		return out, err
	}
	elem, err := c.resultElem(c.op.Ufunc, ae, be)
	if err != nil {
		return nil, err
	}
	return types.ArrayOrScalar(elem, max(ar, br)), nil
}

// out returns the out option, which must be an array when present.
func (c *call) out() (types.Type, bool, error) {
	if c.opts.Out == nil {
		return nil, false, nil
	}
	if _, ok := c.opts.Out.(types.Array); !ok {
		return nil, false, c.errorf("out must be an array, got %s", c.opts.Out)
	}
	return c.opts.Out, true, nil
}

func (c *call) axis(rank int) (types.Axis, error) {
	axis := c.opts.Axis
	if !axis.IsAll() && rank == 0 {
		return axis, c.errorf("axis %s is out of bounds for array of dimension 0", axis)
	}
	axis, err := types.NormalizeAxis(axis, rank)
	if err != nil {
		return axis, c.errorf("%v", err)
	}
	return axis, nil
}

// resultElem is the element type u produces for inputs a and b. A dtype
// option replaces it, provided u has a loop for that dtype.
func (c *call) resultElem(u Ufunc, a, b types.Type) (types.Type, error) {
	if c.opts.DType != nil {
		if _, err := u.ResultType(c.opts.DType, c.opts.DType); err != nil {
			return nil, c.errorf("%v", err)
		}
		return c.opts.DType, nil
	}
	elem, err := u.ResultType(a, b)
	if err != nil {
		return nil, c.errorf("%v", err)
	}
	return elem, nil
}
