package infer

import (
	"fmt"

	"github.com/hashicorp/go-set/v3"
	"github.com/hfeeki/numba/ast"
	"github.com/hfeeki/numba/parser"
	"github.com/hfeeki/numba/token"
	"github.com/hfeeki/numba/types"
	"github.com/pkg/errors"
)

// EvalString parses src as a call such as `dot(float64[:, ::1], float64[::1])`
// and infers its result type.
func (e *Engine) EvalString(src string) (types.Type, error) {
	call, errs := parser.ParseCall(src)
	if len(errs) > 0 {
		return nil, errors.WithStack(&SyntaxError{Src: src, Errs: errs})
	}
	return e.Eval(call)
}

// ParseSignature parses src into a Signature without running inference on
// the outer call. Nested calls in arguments are still inferred.
func (e *Engine) ParseSignature(src string) (Signature, error) {
	call, errs := parser.ParseCall(src)
	if len(errs) > 0 {
		return Signature{}, errors.WithStack(&SyntaxError{Src: src, Errs: errs})
	}
	return e.Signature(call)
}

// ParseType parses src as a single type, e.g. `tuple(int64[::1], 2)`.
func (e *Engine) ParseType(src string) (types.Type, error) {
	expr, errs := parser.ParseExpression(src)
	if len(errs) > 0 {
		return nil, errors.WithStack(&SyntaxError{Src: src, Errs: errs})
	}
	return e.Resolve(expr)
}

// Eval infers the result type of a parsed call.
func (e *Engine) Eval(call *ast.CallExpression) (types.Type, error) {
	sig, err := e.Signature(call)
	if err != nil {
		return nil, err
	}
	return e.Infer(sig)
}

// Signature resolves the arguments and options of a parsed call.
func (e *Engine) Signature(call *ast.CallExpression) (Signature, error) {
	sig := Signature{Op: call.Name(), Args: make([]types.Type, len(call.Arguments))}
	for i, arg := range call.Arguments {
		t, err := e.Resolve(arg)
		if err != nil {
			return Signature{}, err
		}
		sig.Args[i] = t
	}

	// Options cannot record an explicit None or False, so the accepted
	// names are checked against the call as written.
	var accepted *set.Set[string]
	if op, err := ParseOp(sig.Op); err == nil {
		if r, ok := rules[op.Kind]; ok {
			accepted = r.options
		}
	}
	seen := make(map[string]bool, len(call.Options))
	for _, opt := range call.Options {
		if seen[opt.Name] {
			return Signature{}, typeErrorf(sig.Op, sig.Args, "option %s given more than once", opt.Name)
		}
		seen[opt.Name] = true
		if accepted != nil && optionNames.Contains(opt.Name) && !accepted.Contains(opt.Name) {
			return Signature{}, typeErrorf(sig.Op, sig.Args, "unexpected option %s", opt.Name)
		}
		if err := e.setOption(&sig, opt); err != nil {
			return Signature{}, err
		}
	}
	return sig, nil
}

func (e *Engine) setOption(sig *Signature, opt *ast.Option) error {
	if _, ok := opt.Value.(*ast.NoneLiteral); ok {
		switch opt.Name {
		case OptAxis, OptDType, OptOut:
			return nil
		}
	}
	switch opt.Name {
	case OptAxis:
		axis, err := e.resolveAxis(opt.Value)
		if err != nil {
			return typeErrorf(sig.Op, sig.Args, "%v", err)
		}
		sig.Options.Axis = axis
	case OptDType:
		t, err := e.Resolve(opt.Value)
		if err != nil {
			return err
		}
		sig.Options.DType = t
	case OptOut:
		t, err := e.Resolve(opt.Value)
		if err != nil {
			return err
		}
		sig.Options.Out = t
	case OptKeepDims:
		b, ok := opt.Value.(*ast.BooleanLiteral)
		if !ok {
			return typeErrorf(sig.Op, sig.Args, "keepdims must be True or False, got %s", opt.Value)
		}
		sig.Options.KeepDims = b.Value
	default:
		return typeErrorf(sig.Op, sig.Args, "unknown option %s", opt.Name)
	}
	return nil
}

// resolveAxis accepts an integer literal or an integer type, the latter
// standing for an axis only known at run time.
func (e *Engine) resolveAxis(expr ast.Expression) (types.Axis, error) {
	if lit, ok := expr.(*ast.IntegerLiteral); ok {
		return types.AxisAt(int(lit.Value)), nil
	}
	if te, ok := expr.(*ast.TypeExpression); ok && !te.IsArray {
		if t, ok := types.LookupScalar(te.Name, e.cfg.IndexWidth); ok && types.IsInteger(t) {
			return types.AxisDynamic(), nil
		}
	}
	return types.Axis{}, errors.Errorf("axis must be an integer or None, got %s", expr)
}

// Resolve turns a type, literal, sequence or nested call into its type.
func (e *Engine) Resolve(expr ast.Expression) (types.Type, error) {
	switch node := expr.(type) {
	case *ast.TypeExpression:
		return e.resolveTypeExpression(node)
	case *ast.TupleExpression:
		elem, err := e.Resolve(node.Elem)
		if err != nil {
			return nil, err
		}
		return types.Tuple{Elem: elem, Arity: node.Arity}, nil
	case *ast.SequenceLiteral:
		elems := make([]types.Type, len(node.Elements))
		for i, item := range node.Elements {
			t, err := e.Resolve(item)
			if err != nil {
				return nil, err
			}
			elems[i] = t
		}
		return types.Seq{Elems: elems}, nil
	case *ast.CallExpression:
		return e.Eval(node)
	case *ast.IntegerLiteral:
		return types.I64, nil
	case *ast.FloatLiteral:
		return types.F64, nil
	case *ast.ImagLiteral:
		return types.C128, nil
	case *ast.BooleanLiteral:
		return types.Bool, nil
	}
	return nil, resolveError(expr, "%s has no type", expr)
}

func (e *Engine) resolveTypeExpression(te *ast.TypeExpression) (types.Type, error) {
	elem, ok := types.LookupScalar(te.Name, e.cfg.IndexWidth)
	if !ok {
		return nil, resolveError(te, "unknown type %s", te.Name)
	}
	if !te.IsArray {
		return elem, nil
	}
	layout, ok := layoutOf(te.Dims)
	if !ok {
		return nil, resolveError(te, "%s is neither C nor F contiguous nor fully strided", te)
	}
	return types.NewArray(elem, len(te.Dims), layout), nil
}

// layoutOf reads the layout off dimension markers: all `:` is A, a trailing
// `::1` is C and a leading `::1` on two or more dimensions is F.
func layoutOf(dims []ast.Dim) (types.Layout, bool) {
	contiguous := -1
	for i, d := range dims {
		if d == ast.DimContiguous {
			if contiguous >= 0 {
				return types.LayoutA, false
			}
			contiguous = i
		}
	}
	switch {
	case len(dims) == 0:
		return types.LayoutC, true
	case contiguous < 0:
		return types.LayoutA, true
	case contiguous == len(dims)-1:
		return types.LayoutC, true
	case contiguous == 0:
		return types.LayoutF, true
	}
	return types.LayoutA, false
}

func resolveError(expr ast.Expression, format string, a ...any) error {
	ce := &token.CompileError{Token: expr.Tok(), Msg: fmt.Sprintf(format, a...)}
	return errors.WithStack(&SyntaxError{Src: expr.String(), Errs: []*token.CompileError{ce}})
}
