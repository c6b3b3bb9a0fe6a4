package crossmatch

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors
var (
	// ErrEmptyConstraint is returned when a reconciled input constraint has
	// no allowed values.
	ErrEmptyConstraint = errors.New("constraint has no values")

	// ErrUnresolvedOutput is returned when an output placeholder constraint
	// has no matching input constraint to inherit values from.
	ErrUnresolvedOutput = errors.New("unresolved output constraint")

	// ErrAmbiguousValue is returned when an input-only constraint has more
	// than one candidate value.
	ErrAmbiguousValue = errors.New("ambiguous input-only constraint")
)

// ReconcileError represents one or more problems found while reconciling
// input and output constraint sets.
type ReconcileError struct {
	Errors []error
}

// Error implements the error interface.
func (re *ReconcileError) Error() string {
	if len(re.Errors) == 0 {
		return "constraint reconciliation failed"
	}
	if len(re.Errors) == 1 {
		return fmt.Sprintf("constraint reconciliation failed: %v", re.Errors[0])
	}

	var buf strings.Builder
	buf.WriteString(fmt.Sprintf("constraint reconciliation failed with %d errors:\n", len(re.Errors)))
	for i, err := range re.Errors {
		fmt.Fprintf(&buf, "  %d. %v\n", i+1, err)
	}
	return buf.String()
}

// Unwrap returns the underlying errors for use with errors.Is and errors.As.
func (re *ReconcileError) Unwrap() []error {
	return re.Errors
}

// newReconcileError creates a ReconcileError from a slice of errors.
// Returns nil if the slice is empty.
func newReconcileError(errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	return &ReconcileError{Errors: errs}
}
