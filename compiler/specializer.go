// Package compiler is the boundary between inference and code generation:
// it names specializations, memoizes their result types and declares them
// in an LLVM module.
package compiler

import (
	"sync"

	"github.com/hfeeki/numba/infer"
	"github.com/hfeeki/numba/types"
	"tinygo.org/x/go-llvm"
)

// Func is one specialization of an operation for concrete argument types.
type Func struct {
	Name    string // mangled
	Sig     infer.Signature
	OutType types.Type
}

// Specializer memoizes inference per mangled signature. It is safe for
// concurrent use; failed inferences are not cached.
type Specializer struct {
	Engine *infer.Engine

	mu        sync.Mutex
	funcCache map[string]*Func
}

func NewSpecializer(e *infer.Engine) *Specializer {
	return &Specializer{
		Engine:    e,
		funcCache: make(map[string]*Func),
	}
}

// Specialize returns the cached specialization of sig, inferring it on
// first use.
func (s *Specializer) Specialize(sig infer.Signature) (*Func, error) {
	for _, arg := range sig.Args {
		if arg == nil {
			// no name for an untyped argument; let inference report it
			_, err := s.Engine.Infer(sig)
			return nil, err
		}
	}
	name := Mangle(sig)
	s.mu.Lock()
	fn, ok := s.funcCache[name]
	s.mu.Unlock()
	if ok {
		return fn, nil
	}

	out, err := s.Engine.Infer(sig)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if fn, ok := s.funcCache[name]; ok {
		return fn, nil
	}
	fn = &Func{Name: name, Sig: sig, OutType: out}
	s.funcCache[name] = fn
	return fn, nil
}

// Len is the number of cached specializations.
func (s *Specializer) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.funcCache)
}

// Declare adds fn's prototype to mod, or returns the existing declaration.
// Literal sequence arguments are passed as the array they construct.
func (s *Specializer) Declare(mod llvm.Module, fn *Func) (llvm.Value, error) {
	if existing := mod.NamedFunction(fn.Name); !existing.IsNil() {
		return existing, nil
	}
	lw := Lowerer{Context: mod.Context()}
	params := make([]llvm.Type, len(fn.Sig.Args))
	for i, arg := range fn.Sig.Args {
		if holdsSeq(arg) {
			arr, err := s.Engine.Infer(infer.Signature{Op: "array", Args: []types.Type{arg}})
			if err != nil {
				return llvm.Value{}, err
			}
			arg = arr
		}
		params[i] = lw.Lower(arg)
	}
	fnType := llvm.FunctionType(lw.Lower(fn.OutType), params, false)
	return llvm.AddFunction(mod, fn.Name, fnType), nil
}

// holdsSeq reports whether t is a literal sequence or a tuple of them. Such
// arguments have no LLVM type of their own and are passed as the array they
// normalize to.
func holdsSeq(t types.Type) bool {
	switch t := t.(type) {
	case types.Seq:
		return true
	case types.Tuple:
		return holdsSeq(t.Elem)
	}
	return false
}
