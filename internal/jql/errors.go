package jql

import "fmt"

// ValidationError reports a literal that cannot be constructed, such as a
// calendar date that does not exist.
//
// It is only ever returned by constructors. Serialization never fails.
type ValidationError struct {
	Field   string // Literal kind or component (e.g. "date", "date.month")
	Message string
	Err     error // Underlying parse error (optional)
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Field, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
