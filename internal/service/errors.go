package service

import (
	"errors"
	"fmt"
)

// ServiceError represents an error in the service layer
type ServiceError struct {
	Op  string
	Err error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return e.Op
}

// Unwrap returns the underlying error
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// FieldError is a request problem attributable to one input field
type FieldError struct {
	Field   string
	Message string
}

// InvalidInputError is returned when a request references data that does not
// exist or is otherwise unusable. It is reported to the caller as a 400.
type InvalidInputError struct {
	Fields []FieldError
}

func (e *InvalidInputError) Error() string {
	if len(e.Fields) == 0 {
		return "invalid input"
	}
	return fmt.Sprintf("invalid input: %s: %s", e.Fields[0].Field, e.Fields[0].Message)
}

// IsInvalidInput reports whether err carries an *InvalidInputError
func IsInvalidInput(err error) (*InvalidInputError, bool) {
	var invalid *InvalidInputError
	if errors.As(err, &invalid) {
		return invalid, true
	}
	return nil, false
}
