package llm

import "fmt"

// ErrorKind classifies completion failures so callers can decide what to do
// without string-matching messages.
type ErrorKind string

const (
	// KindMalformedRequest means the request body could not be parsed as JSON.
	KindMalformedRequest ErrorKind = "malformed_request"
	// KindMisconfiguredServer means the API credential is absent where it is required.
	KindMisconfiguredServer ErrorKind = "misconfigured_server"
	// KindGatewayFailure covers network errors, timeouts, and unparseable
	// upstream responses.
	KindGatewayFailure ErrorKind = "gateway_failure"
	// KindUpstreamError means the upstream service answered with a non-success
	// status and a structured error body.
	KindUpstreamError ErrorKind = "upstream_error"
)

// Error is a classified completion failure.
type Error struct {
	Kind    ErrorKind
	Status  int // upstream HTTP status when known, else 0
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func newError(kind ErrorKind, status int, msg string, err error) *Error {
	return &Error{Kind: kind, Status: status, Message: msg, Err: err}
}
