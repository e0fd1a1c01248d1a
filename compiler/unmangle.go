package compiler

import (
	"strconv"
	"strings"

	"github.com/hfeeki/numba/infer"
	"github.com/hfeeki/numba/types"
	"github.com/pkg/errors"
)

// MAX_RANK bounds the rank of a decoded array code.
const MAX_RANK = 64

// Unmangle decodes a name produced by Mangle back into its signature.
func Unmangle(s string) (infer.Signature, error) {
	if !strings.HasPrefix(s, PREFIX) {
		return infer.Signature{}, errors.New("invalid mangled string: missing leading '$'")
	}
	body, opts, hasOpts := strings.Cut(s[len(PREFIX):], ON)
	fields := strings.Split(body, PREFIX)
	sig := infer.Signature{Op: fields[0]}
	if sig.Op == "" {
		return infer.Signature{}, errors.Errorf("invalid mangled string %q: empty operation name", s)
	}
	for _, field := range fields[1:] {
		t, rest, err := parseTypeFrom(field)
		if err != nil {
			return infer.Signature{}, errors.Wrapf(err, "unmangle %q", s)
		}
		if rest != "" {
			return infer.Signature{}, errors.Errorf("unmangle %q: trailing %q after %s", s, rest, t)
		}
		sig.Args = append(sig.Args, t)
	}
	if !hasOpts {
		return sig, nil
	}
	for _, opt := range strings.Split(opts, PREFIX) {
		if err := parseOption(&sig.Options, opt); err != nil {
			return infer.Signature{}, errors.Wrapf(err, "unmangle %q", s)
		}
	}
	return sig, nil
}

func parseOption(o *infer.Options, tok string) error {
	switch {
	case tok == "keepdims":
		o.KeepDims = true
	case tok == "axisN":
		o.Axis = types.AxisDynamic()
	case strings.HasPrefix(tok, "axis"):
		idx, err := strconv.Atoi(tok[len("axis"):])
		if err != nil {
			return errors.Errorf("invalid axis in %q", tok)
		}
		o.Axis = types.AxisAt(idx)
	case strings.HasPrefix(tok, "dtype"):
		t, err := parseWhole(tok[len("dtype"):])
		if err != nil {
			return err
		}
		o.DType = t
	case strings.HasPrefix(tok, "out"):
		t, err := parseWhole(tok[len("out"):])
		if err != nil {
			return err
		}
		o.Out = t
	default:
		return errors.Errorf("unknown option token %q", tok)
	}
	return nil
}

func parseWhole(s string) (types.Type, error) {
	t, rest, err := parseTypeFrom(s)
	if err != nil {
		return nil, err
	}
	if rest != "" {
		return nil, errors.Errorf("trailing %q after %s", rest, t)
	}
	return t, nil
}

// parseTypeFrom parses one type code from the front of s and returns the
// unparsed remainder.
func parseTypeFrom(s string) (types.Type, string, error) {
	if s == "" {
		return nil, s, errors.New("parse error: empty type code")
	}
	tag, rest := s[0], s[1:]
	n, rest, err := readCount(rest)
	if err != nil {
		return nil, s, errors.Wrapf(err, "type code %q", s)
	}
	switch tag {
	case 'b':
		// bool carries no width; the count read above must be empty
		return types.Bool, s[1:], nil
	case 'i', 'u', 'f', 'c':
		t, ok := scalarOf(tag, n)
		if !ok {
			return nil, s, errors.Errorf("invalid scalar code %q", s[:len(s)-len(rest)])
		}
		return t, rest, nil
	case 'A':
		if n > MAX_RANK {
			return nil, s, errors.Errorf("array code %q: rank %d exceeds %d", s, n, MAX_RANK)
		}
		if rest == "" {
			return nil, s, errors.Errorf("array code %q missing layout", s)
		}
		var layout types.Layout
		rest0 := rest[0]
		switch rest0 {
		case 'A':
			layout = types.LayoutA
		case 'C':
			layout = types.LayoutC
		case 'F':
			layout = types.LayoutF
		default:
			return nil, s, errors.Errorf("array code %q has unknown layout %c", s, rest0)
		}
		elem, rest, err := parseTypeFrom(rest[1:])
		if err != nil {
			return nil, s, err
		}
		if !types.IsScalar(elem) {
			return nil, s, errors.Errorf("array code %q: element %s is not a scalar", s, elem)
		}
		arr := types.NewArray(elem, n, layout)
		if arr.Layout != layout {
			return nil, s, errors.Errorf("array code %q: layout %c is not canonical for rank %d", s, rest0, n)
		}
		return arr, rest, nil
	case 'T':
		if n == 0 {
			return nil, s, errors.Errorf("tuple code %q: arity must be positive", s)
		}
		elem, rest, err := parseTypeFrom(rest)
		if err != nil {
			return nil, s, err
		}
		return types.Tuple{Elem: elem, Arity: n}, rest, nil
	case 'S':
		// every item takes at least one byte
		if n > len(rest) {
			return nil, s, errors.Errorf("sequence code %q: %d items but only %d bytes left", s, n, len(rest))
		}
		elems := make([]types.Type, n)
		for i := range elems {
			elems[i], rest, err = parseTypeFrom(rest)
			if err != nil {
				return nil, s, err
			}
		}
		return types.Seq{Elems: elems}, rest, nil
	}
	return nil, s, errors.Errorf("unknown type tag %q", tag)
}

// readCount reads the decimal number at the front of s. An absent number
// reads as zero.
func readCount(s string) (int, string, error) {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	if i == 0 {
		return 0, s, nil
	}
	n, err := strconv.Atoi(s[:i])
	if err != nil {
		return 0, s, err
	}
	return n, s[i:], nil
}

// scalarOf returns the scalar for a type tag and a width in bytes.
func scalarOf(tag byte, bytes int) (types.Type, bool) {
	switch bytes {
	case 1, 2, 4, 8, 16:
	default:
		return nil, false
	}
	width := uint32(bytes) * 8
	var t types.Type
	switch tag {
	case 'i':
		t = types.Int{Width: width}
	case 'u':
		t = types.Uint{Width: width}
	case 'f':
		t = types.Float{Width: width}
	case 'c':
		t = types.Complex{Width: width}
	}
	for _, s := range types.Scalars {
		if types.Equal(s, t) {
			return t, true
		}
	}
	return nil, false
}
