package client

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

var (
	// ErrNotConfigured is returned when a Node is used before an endpoint was configured.
	ErrNotConfigured = errors.New("node endpoint not configured")
	// ErrInvalidEndpoint is returned for endpoints that are not absolute http or https URLs.
	ErrInvalidEndpoint = errors.New("invalid node endpoint")
)

// TransportError is returned when a request did not produce a response: the connection was refused, the name could
// not be resolved or the timeout expired.
type TransportError struct {
	Endpoint string
	Command  string
	Cause    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s request to %s failed: %v", e.Command, e.Endpoint, e.Cause)
}

// Unwrap returns the underlying transport failure.
func (e *TransportError) Unwrap() error {
	return e.Cause
}

// ProtocolError is returned when a node answered with a body that does not match the expected schema.
type ProtocolError struct {
	Endpoint string
	Command  string
	Cause    error
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("malformed %s response from %s: %v", e.Command, e.Endpoint, e.Cause)
}

// Unwrap returns the decoding or validation failure.
func (e *ProtocolError) Unwrap() error {
	return e.Cause
}

// RemoteError is returned when a node explicitly rejected a request.
type RemoteError struct {
	Endpoint   string
	Command    string
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s rejected by %s with status %d: %s", e.Command, e.Endpoint, e.StatusCode, e.Message)
}
