package request

// FieldError ties a validation failure to a single input field so clients
// can render the message inline next to that field.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Message
}

// NewFieldError creates a FieldError for the given field.
func NewFieldError(field, message string) *FieldError {
	return &FieldError{Field: field, Message: message}
}
