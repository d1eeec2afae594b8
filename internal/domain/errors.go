package domain

import "fmt"

// ValidationError marks a registration-time failure: an unknown
// curriculum/course/room/teacher name, or section creation
// attempted with no rooms registered. Validation errors halt the current
// top-level call; they are distinct from constraint violations, which are
// reported, not raised.
type ValidationError struct {
	Op      string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func validationErrorf(op, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Op: op, Message: fmt.Sprintf(format, args...)}
}
