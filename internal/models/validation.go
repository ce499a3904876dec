// internal/models/validation.go
package models

import (
	"errors"
	"regexp"
	"strings"
)

var hexColorRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// ValidationError is a client-side rejection that happens before any request
// leaves the console. Message is user facing.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return e.Message
}

func IsValidationError(err error) bool {
	var verr ValidationError
	return errors.As(err, &verr)
}

func IsHexColor(value string) bool {
	return hexColorRegex.MatchString(strings.TrimSpace(value))
}

func required(field, value, message string) error {
	if strings.TrimSpace(value) == "" {
		return ValidationError{Field: field, Message: message}
	}
	return nil
}
