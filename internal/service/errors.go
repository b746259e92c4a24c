package service

import "fmt"

// ValidationError indicates that the request input breaks a business rule.
type ValidationError struct {
	Message string
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return e.Message
}

func invalidf(format string, args ...any) error {
	return ValidationError{Message: fmt.Sprintf(format, args...)}
}
