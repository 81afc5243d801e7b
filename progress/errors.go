package progress

import "fmt"

// ValidationError reports a rejected input field. No state is changed when
// one is returned.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}
