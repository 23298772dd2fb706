// Package common contains shared sentinel errors and small utility helpers
// used across the wallet client core. Callers should use errors.Is to match
// the sentinel values.
package common

import "errors"

var (
	// ErrUnavailable marks transport-level failures: the endpoint could not
	// be reached, or the path is outside the mocked API surface.
	ErrUnavailable = errors.New("server unavailable")
)
