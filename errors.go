package fastic

import (
	"errors"
	"fmt"

	"github.com/hupe1980/fastic/internal/engine"
)

var (
	// ErrNilReasoner is returned by New when no base reasoner is given.
	ErrNilReasoner = errors.New("nil base reasoner")

	// ErrMalformedExpression is returned when a class expression cannot be
	// evaluated: missing operands, negative cardinalities, facets compared
	// against incompatible literals or unknown kinds.
	ErrMalformedExpression = errors.New("malformed class expression")
)

// ExpressionError identifies the offending part of a malformed expression.
//
// It matches ErrMalformedExpression with errors.Is. An underlying cause such
// as model.ErrTypeMismatch is matched by errors.Is and errors.As as well.
type ExpressionError struct {
	// Expression is the functional-style rendering of the offending (sub)expression.
	Expression string
	Reason     string
	cause      error
	detail     error // cause of the engine error, nil if none
}

func (e *ExpressionError) Error() string {
	msg := fmt.Sprintf("malformed class expression %s: %s", e.Expression, e.Reason)
	if e.detail != nil {
		msg += ": " + e.detail.Error()
	}
	return msg
}

func (e *ExpressionError) Unwrap() []error { return []error{ErrMalformedExpression, e.cause} }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	var ee *engine.ExpressionError
	if errors.As(err, &ee) {
		out := &ExpressionError{Expression: ee.Expression, Reason: ee.Reason, cause: err}
		for _, c := range ee.Unwrap() {
			if !errors.Is(c, engine.ErrMalformedExpression) {
				out.detail = c
			}
		}
		return out
	}
	if errors.Is(err, engine.ErrMalformedExpression) {
		return fmt.Errorf("%w: %w", ErrMalformedExpression, err)
	}

	// Base reasoner failures pass through unchanged.
	return err
}
