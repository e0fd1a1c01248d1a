package infer

import (
	"github.com/hfeeki/numba/types"
	"github.com/pkg/errors"
)

// normalize resolves an array-like operand into its element type and rank.
// Scalars have rank 0. Sequences and tuples add one dimension per nesting
// level on top of the rank of their items, which must agree.
func normalize(t types.Type) (types.Type, int, error) {
	switch v := t.(type) {
	case types.Array:
		return v.Elem, v.Rank, nil
	case types.Tuple:
		elem, rank, err := normalize(v.Elem)
		if err != nil {
			return nil, 0, err
		}
		return elem, rank + 1, nil
	case types.Seq:
		return normalizeSeq(v)
	}
	if types.IsScalar(t) {
		return t, 0, nil
	}
	return nil, 0, errors.Errorf("%s is not array-like", t)
}

func normalizeSeq(s types.Seq) (types.Type, int, error) {
	if len(s.Elems) == 0 {
		return types.F64, 1, nil
	}
	elems := make([]types.Type, len(s.Elems))
	rank := -1
	for i, item := range s.Elems {
		elem, r, err := normalize(item)
		if err != nil {
			return nil, 0, errors.Wrapf(err, "item %d", i)
		}
		if rank >= 0 && r != rank {
			return nil, 0, errors.Errorf("ragged sequence %s: items of rank %d and %d", s, rank, r)
		}
		rank = r
		elems[i] = elem
	}
	elem, ok := types.PromoteAll(elems...)
	if !ok {
		return nil, 0, errors.Errorf("cannot promote items of %s", s)
	}
	return elem, rank + 1, nil
}
