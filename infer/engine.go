// Package infer computes result types of numeric array operations from the
// types of their operands, before any data exists.
//
// An Engine resolves an operation name to one of a closed set of variants and
// applies that variant's rule. Rules are pure functions of the signature: the
// engine holds no mutable state and is safe for concurrent use.
package infer

import (
	"strings"

	"github.com/hfeeki/numba/types"
	"github.com/pkg/errors"
)

// Config holds the platform facts inference depends on.
type Config struct {
	IndexWidth uint32 // bit width of intp; 32 or 64
}

func DefaultConfig() Config {
	return Config{IndexWidth: 64}
}

// Options are the keyword options of an operation. The zero value means
// none were given.
type Options struct {
	Axis     types.Axis // zero value reduces every dimension
	DType    types.Type // nil when absent
	Out      types.Type // nil when absent
	KeepDims bool
}

// Names lists the options that were given, in a fixed order.
func (o Options) Names() []string {
	var names []string
	if !o.Axis.IsAll() {
		names = append(names, OptAxis)
	}
	if o.DType != nil {
		names = append(names, OptDType)
	}
	if o.Out != nil {
		names = append(names, OptOut)
	}
	if o.KeepDims {
		names = append(names, OptKeepDims)
	}
	return names
}

func (o Options) String() string {
	var parts []string
	if !o.Axis.IsAll() {
		parts = append(parts, OptAxis+"="+o.Axis.String())
	}
	if o.DType != nil {
		parts = append(parts, OptDType+"="+o.DType.String())
	}
	if o.Out != nil {
		parts = append(parts, OptOut+"="+o.Out.String())
	}
	if o.KeepDims {
		parts = append(parts, OptKeepDims+"=True")
	}
	return strings.Join(parts, ", ")
}

// Signature is one inference request: an operation name, its positional
// argument types and its options.
type Signature struct {
	Op      string
	Args    []types.Type
	Options Options
}

func (s Signature) String() string {
	args := types.TypesString(s.Args)
	if opts := s.Options.String(); opts != "" {
		if args != "" {
			args += ", "
		}
		args += opts
	}
	return s.Op + "(" + args + ")"
}

type Engine struct {
	cfg  Config
	intp types.Type
}

func NewEngine(cfg Config) *Engine {
	if cfg.IndexWidth == 0 {
		cfg.IndexWidth = DefaultConfig().IndexWidth
	}
	return &Engine{
		cfg:  cfg,
		intp: types.IndexType(cfg.IndexWidth),
	}
}

func (e *Engine) Config() Config {
	return e.cfg
}

// IndexType is the platform index integer (intp).
func (e *Engine) IndexType() types.Type {
	return e.intp
}

// Infer returns the result type of sig.
func (e *Engine) Infer(sig Signature) (types.Type, error) {
	op, err := ParseOp(sig.Op)
	if err != nil {
		return nil, err
	}
	return e.InferOp(op, sig.Args, sig.Options)
}

// InferOp is Infer for an already resolved operation.
func (e *Engine) InferOp(op Op, args []types.Type, opts Options) (types.Type, error) {
	r, ok := rules[op.Kind]
	if !ok {
		return nil, errors.WithStack(&UnsupportedOperationError{Op: op.String()})
	}
	for i, a := range args {
		if a == nil {
			return nil, typeErrorf(op.String(), nil, "argument %d has no type", i+1)
		}
	}
	c := &call{engine: e, op: op, args: args, opts: opts}
	for _, name := range opts.Names() {
		if !r.options.Contains(name) {
			return nil, c.errorf("unexpected option %s", name)
		}
	}
	if opts.DType != nil && !types.IsScalar(opts.DType) {
		return nil, c.errorf("dtype must be a scalar type, got %s", opts.DType)
	}
	return r.fn(c)
}

// call is the state of one rule application.
type call struct {
	engine *Engine
	op     Op
	args   []types.Type
	opts   Options
}

func (c *call) errorf(format string, a ...any) error {
	return typeErrorf(c.op.String(), c.args, format, a...)
}

func (c *call) missing(option string) error {
	return errors.WithStack(&MissingOptionError{Op: c.op.String(), Option: option, Args: c.args})
}

func (c *call) arity(n int) error {
	if len(c.args) != n {
		return c.errorf("takes %d argument(s), got %d", n, len(c.args))
	}
	return nil
}

// operand normalizes argument i into its element type and rank.
func (c *call) operand(i int) (elem types.Type, rank int, err error) {
	elem, rank, err = normalize(c.args[i])
	if err != nil {
		return nil, 0, c.errorf("argument %d: %v", i+1, err)
	}
	return elem, rank, nil
}

func (c *call) promote(a, b types.Type) (types.Type, error) {
	t, ok := types.Promote(a, b)
	if !ok {
		return nil, c.errorf("cannot promote %s and %s", a, b)
	}
	return t, nil
}
