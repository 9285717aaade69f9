package note

import "fmt"

// ValidationError reports local input that must be fixed before anything is
// sent to the backend.
type ValidationError struct {
	Field   Field
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(f Field, format string, args ...any) error {
	return &ValidationError{Field: f, Message: fmt.Sprintf(format, args...)}
}

// ShapeError reports a backend record that does not match the expected
// schema.
type ShapeError struct {
	Record string
	Field  string
	Reason string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("malformed %s record: %s %s", e.Record, e.Field, e.Reason)
}
