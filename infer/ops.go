package infer

import (
	"strconv"
	"strings"

	"github.com/hashicorp/go-set/v3"
	"github.com/hfeeki/numba/types"
	"github.com/pkg/errors"
)

// OpKind is the closed set of operations the engine has rules for.
type OpKind int

const (
	OpArray OpKind = iota
	OpNonzero
	OpWhere
	OpDot
	OpVdot
	OpInner
	OpTranspose
	OpAstype
	OpSum
	OpProd
	OpMax
	OpMin
	OpMean
	OpUfuncCall
	OpUfuncReduce
	OpUfuncAccumulate
)

// Op is a resolved operation. Ufunc is set for the ufunc variants only.
type Op struct {
	Kind  OpKind
	Ufunc Ufunc
}

var opKindNames = [...]string{
	OpArray:     "array",
	OpNonzero:   "nonzero",
	OpWhere:     "where",
	OpDot:       "dot",
	OpVdot:      "vdot",
	OpInner:     "inner",
	OpTranspose: "transpose",
	OpAstype:    "astype",
	OpSum:       "sum",
	OpProd:      "prod",
	OpMax:       "max",
	OpMin:       "min",
	OpMean:      "mean",
}

// opNames maps every accepted spelling, aliases included, to its variant.
var opNames = func() map[string]OpKind {
	m := map[string]OpKind{
		"asarray": OpArray,
		"amax":    OpMax,
		"amin":    OpMin,
	}
	for k, name := range opKindNames {
		m[name] = OpKind(k)
	}
	return m
}()

var methodNames = map[string]OpKind{
	"reduce":     OpUfuncReduce,
	"accumulate": OpUfuncAccumulate,
}

func (op Op) String() string {
	switch op.Kind {
	case OpUfuncCall:
		return op.Ufunc.String()
	case OpUfuncReduce:
		return op.Ufunc.String() + ".reduce"
	case OpUfuncAccumulate:
		return op.Ufunc.String() + ".accumulate"
	}
	if op.Kind >= 0 && int(op.Kind) < len(opKindNames) {
		return opKindNames[op.Kind]
	}
	return "op(" + strconv.Itoa(int(op.Kind)) + ")"
}

// ParseOp resolves an operation name such as "dot", "add" or "add.reduce".
func ParseOp(name string) (Op, error) {
	fn, method, qualified := strings.Cut(name, ".")
	if qualified {
		u, ok := LookupUfunc(fn)
		if !ok {
			return Op{}, errors.WithStack(&UnsupportedOperationError{Op: name})
		}
		k, ok := methodNames[method]
		if !ok {
			return Op{}, errors.WithStack(&UnsupportedOperationError{Op: name})
		}
		return Op{Kind: k, Ufunc: u}, nil
	}
	if k, ok := opNames[name]; ok {
		return Op{Kind: k}, nil
	}
	if u, ok := LookupUfunc(name); ok {
		return Op{Kind: OpUfuncCall, Ufunc: u}, nil
	}
	return Op{}, errors.WithStack(&UnsupportedOperationError{Op: name})
}

// Option names.
const (
	OptAxis     = "axis"
	OptDType    = "dtype"
	OptOut      = "out"
	OptKeepDims = "keepdims"
)

type ruleFunc func(c *call) (types.Type, error)

// rule pairs an operation's type rule with the options it accepts.
type rule struct {
	fn      ruleFunc
	options *set.Set[string]
}

var (
	optionNames      = set.From([]string{OptAxis, OptDType, OptOut, OptKeepDims})
	noOptions        = set.New[string](0)
	dtypeOnly        = set.From([]string{OptDType})
	reduceOptions    = set.From([]string{OptAxis, OptDType, OptOut, OptKeepDims})
	extremumOptions  = set.From([]string{OptAxis, OptOut, OptKeepDims})
	ufuncCallOptions = set.From([]string{OptDType, OptOut})
	accumOptions     = set.From([]string{OptAxis, OptDType, OptOut})
)

// rules is the immutable dispatch table from operation variant to rule.
var rules = map[OpKind]rule{
	OpArray:     {fn: inferArray, options: dtypeOnly},
	OpNonzero:   {fn: inferNonzero, options: noOptions},
	OpWhere:     {fn: inferWhere, options: noOptions},
	OpDot:       {fn: inferDot, options: noOptions},
	OpVdot:      {fn: inferVdot, options: noOptions},
	OpInner:     {fn: inferInner, options: noOptions},
	OpTranspose: {fn: inferTranspose, options: noOptions},
	OpAstype:    {fn: inferAstype, options: dtypeOnly},

	OpSum:  {fn: reduceWith(Add), options: reduceOptions},
	OpProd: {fn: reduceWith(Multiply), options: reduceOptions},
	OpMax:  {fn: reduceWith(Maximum), options: extremumOptions},
	OpMin:  {fn: reduceWith(Minimum), options: extremumOptions},
	OpMean: {fn: reduceWith(TrueDivide), options: reduceOptions},

	OpUfuncCall:       {fn: inferUfuncCall, options: ufuncCallOptions},
	OpUfuncReduce:     {fn: inferUfuncReduce, options: reduceOptions},
	OpUfuncAccumulate: {fn: inferUfuncAccumulate, options: accumOptions},
}
