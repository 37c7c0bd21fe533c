package services

import "fmt"

// Every failure that crosses the handler boundary is one of the four error
// types below. Raw library errors stay wrapped inside and are logged, never
// returned to the caller.

// ValidationError is a user-correctable request problem: missing upload,
// wrong file type, oversized file, empty chat message.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ExtractionError means an uploaded file could not be read as a PDF.
type ExtractionError struct {
	Document string
	Err      error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to extract text from %s document", e.Document)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

type GatewayErrorKind string

const (
	GatewayTimeout GatewayErrorKind = "timeout"
	GatewayNetwork GatewayErrorKind = "network"
	GatewayRemote  GatewayErrorKind = "remote"
	GatewayUnknown GatewayErrorKind = "unknown"
)

// GatewayError normalizes every failure mode of the remote model call.
type GatewayError struct {
	Kind    GatewayErrorKind
	Message string
	Err     error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("model gateway error (%s): %s", e.Kind, e.Message)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// MalformedResponseError means the model replied but the reply contained no
// parseable JSON object with the required top-level shape. Not user
// correctable; indicates prompt or model drift and is logged for operators.
type MalformedResponseError struct {
	Reason string
	Err    error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed model response: %s", e.Reason)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Err
}
