package engine

import (
	"errors"
	"fmt"
)

// ErrMalformedExpression is returned when an expression cannot be evaluated
// because of its shape: missing operands, negative cardinalities, facets
// compared against incompatible literals or unknown kinds.
var ErrMalformedExpression = errors.New("malformed class expression")

// ExpressionError reports the offending (sub)expression of a malformed-expression error.
type ExpressionError struct {
	// Expression is the functional-style rendering of the offending expression.
	Expression string
	Reason     string
	cause      error
}

func (e *ExpressionError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Expression, e.Reason, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Expression, e.Reason)
}

// Unwrap returns ErrMalformedExpression and the underlying cause, if any.
func (e *ExpressionError) Unwrap() []error {
	if e.cause != nil {
		return []error{ErrMalformedExpression, e.cause}
	}
	return []error{ErrMalformedExpression}
}

func malformed(x fmt.Stringer, reason string, cause error) error {
	s := "nil"
	if x != nil {
		s = x.String()
	}
	return &ExpressionError{Expression: s, Reason: reason, cause: cause}
}
