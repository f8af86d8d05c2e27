package visitor

import "fmt"

// FieldReductionError reports a field whose raw text could not be converted
// to its typed value.
type FieldReductionError struct {
	Field  string
	Raw    string
	Reason string
}

func (e *FieldReductionError) Error() string {
	return fmt.Sprintf("field %s: cannot reduce %q: %s", e.Field, e.Raw, e.Reason)
}
