// internal/ingest/errors.go
package ingest

import (
	"fmt"
	"strings"
)

// MissingColumnsError reports required logical columns that could not be
// located after all heuristic matching attempts. Always fatal for the
// affected input.
type MissingColumnsError struct {
	Input   string
	Missing []string
	Seen    []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("%s: missing required columns [%s], detected columns [%s]",
		e.Input, strings.Join(e.Missing, ", "), strings.Join(e.Seen, ", "))
}

// EmptyInputError reports an input that is empty, or became empty after
// mandatory cleaning. Fatal for that input.
type EmptyInputError struct {
	Input  string
	Reason string
}

func (e *EmptyInputError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%s: input is empty", e.Input)
	}
	return fmt.Sprintf("%s: %s", e.Input, e.Reason)
}
