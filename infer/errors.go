package infer

import (
	"fmt"
	"strings"

	"github.com/hfeeki/numba/token"
	"github.com/hfeeki/numba/types"
	"github.com/pkg/errors"
)

// UnsupportedOperationError means no rule is registered for the operation name.
type UnsupportedOperationError struct {
	Op string
}

func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("unsupported operation %q", e.Op)
}

// TypeInferenceError means the arguments are present but statically incompatible.
type TypeInferenceError struct {
	Op     string
	Args   []types.Type
	Reason string
}

func (e *TypeInferenceError) Error() string {
	return fmt.Sprintf("cannot infer %s(%s): %s", e.Op, types.TypesString(e.Args), e.Reason)
}

// MissingOptionError means the operation requires an option that was not given.
type MissingOptionError struct {
	Op     string
	Option string
	Args   []types.Type
}

func (e *MissingOptionError) Error() string {
	return fmt.Sprintf("cannot infer %s(%s): missing required option %s", e.Op, types.TypesString(e.Args), e.Option)
}

// SyntaxError collects the parse errors of a textual signature.
type SyntaxError struct {
	Src  string
	Errs []*token.CompileError
}

func (e *SyntaxError) Error() string {
	msgs := make([]string, len(e.Errs))
	for i, ce := range e.Errs {
		msgs[i] = ce.Error()
	}
	return fmt.Sprintf("parse %q: %s", e.Src, strings.Join(msgs, "; "))
}

func typeErrorf(op string, args []types.Type, format string, a ...any) error {
	return errors.WithStack(&TypeInferenceError{
		Op:     op,
		Args:   args,
		Reason: fmt.Sprintf(format, a...),
	})
}

// IsUnsupported reports whether err wraps an UnsupportedOperationError.
func IsUnsupported(err error) bool {
	var target *UnsupportedOperationError
	return errors.As(err, &target)
}

// IsTypeError reports whether err wraps a TypeInferenceError.
func IsTypeError(err error) bool {
	var target *TypeInferenceError
	return errors.As(err, &target)
}

// IsMissingOption reports whether err wraps a MissingOptionError.
func IsMissingOption(err error) bool {
	var target *MissingOptionError
	return errors.As(err, &target)
}

// IsSyntaxError reports whether err wraps a SyntaxError.
func IsSyntaxError(err error) bool {
	var target *SyntaxError
	return errors.As(err, &target)
}
