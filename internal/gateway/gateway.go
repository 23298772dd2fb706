// Package gateway defines the transport contract between the wallet client
// core and the remote API, together with its two implementations: a mock
// gateway synthesizing responses locally and a real HTTP gateway.
package gateway

import (
	"context"
	"encoding/json"
)

// Recognized routes. The mocked API surface is exactly these three
// (path, method) pairs; anything else fails as a transport error.
const (
	LoginPath           = "/auth/login"
	SlidesPath          = "/welcome/slides"
	CardApplicationPath = "/api/card-application"
)

// Request describes a single outgoing API call. Body is marshalled to JSON
// when non-nil.
type Request struct {
	Method string
	Path   string
	Body   any
}

// Response is the success envelope returned by every endpoint.
type Response struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// Error is an explicit endpoint rejection: the server (or the mock standing
// in for it) answered with an HTTP-like status >= 400 and a user-facing
// message. Transport failures are ordinary errors, not *Error.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Gateway performs a single API call. Implementations must honor context
// cancellation. A nil error means the envelope was a success; an *Error means
// the endpoint rejected the request; any other error is a transport failure.
type Gateway interface {
	Do(ctx context.Context, req Request) (*Response, error)
}
