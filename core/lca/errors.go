package lca

import "fmt"

// InvalidInputError reports an inventory or factor field that fails
// validation. Compute rejects the whole record; no partial result is
// produced.
type InvalidInputError struct {
	Field  string
	Value  any
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input %s=%v: %s", e.Field, e.Value, e.Reason)
}
