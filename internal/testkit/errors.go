package testkit

import (
	"fmt"

	"lattice/internal/diag"
	"lattice/internal/syntax"
)

// InvariantError describes a broken tree invariant.
type InvariantError struct {
	Code    diag.Code   // InvBlockStructure or InvTreeShape
	Node    syntax.Node // offending node, may be zero
	Message string
}

func (e *InvariantError) Error() string {
	if e.Node.IsValid() {
		return fmt.Sprintf("%s at %s: %s", e.Code.ID(), e.Node, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code.ID(), e.Message)
}

// Invariant panics with an *InvariantError when cond is false.
func Invariant(cond bool, format string, args ...any) {
	if !cond {
		panic(&InvariantError{Code: diag.InvTreeShape, Message: fmt.Sprintf(format, args...)})
	}
}

// Precondition is Invariant for argument checks at API entry points.
func Precondition(cond bool, format string, args ...any) {
	if !cond {
		panic(&InvariantError{Code: diag.InvTreeShape, Message: "precondition failed: " + fmt.Sprintf(format, args...)})
	}
}
