// Package validation implements local precondition checks for user input.
// A validation failure never contacts the network and is always recoverable
// by correcting the input.
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// Error is a local precondition failure. The message is user-facing and is
// surfaced verbatim by the presentation layer.
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Errorf builds an *Error with a formatted user-facing message.
func Errorf(format string, args ...any) *Error {
	return &Error{Message: fmt.Sprintf(format, args...)}
}

// Password length bounds accepted by the login form.
const (
	MinPasswordLength = 6
	MaxPasswordLength = 128
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Email checks that email is present and matches a simple local@domain.tld
// shape.
func Email(email string) error {
	if strings.TrimSpace(email) == "" {
		return &Error{Message: "Email is required"}
	}
	if !emailRe.MatchString(strings.TrimSpace(email)) {
		return &Error{Message: "Please enter a valid email address"}
	}
	return nil
}

// Password checks presence and the [MinPasswordLength, MaxPasswordLength]
// length bounds.
func Password(password string) error {
	if password == "" {
		return &Error{Message: "Password is required"}
	}
	if len(password) < MinPasswordLength {
		return &Error{Message: "Password must be at least 6 characters"}
	}
	if len(password) > MaxPasswordLength {
		return &Error{Message: "Password must be less than 128 characters"}
	}
	return nil
}

// LoginCredentials validates the login form: email first, then password.
func LoginCredentials(email, password string) error {
	if err := Email(email); err != nil {
		return err
	}
	return Password(password)
}
