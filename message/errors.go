package message

import (
	"errors"
	"fmt"
)

// Reserved error-code range. Codes in [-32700, -32000] are protocol-level
// (parse errors, invalid requests, server errors); anything outside is
// application-defined and may carry an opaque data payload.
const (
	ReservedErrorMin = -32700
	ReservedErrorMax = -32000

	// DefaultErrorCode is the generic server-error code used by Fault.
	DefaultErrorCode = -32000
)

// Standard JSON-RPC 2.0 error codes.
const (
	ParseError     = -32700
	InvalidRequest = -32600
	MethodNotFound = -32601
	InvalidParams  = -32602
	InternalError  = -32603
)

// Classification failures that are not server-sent errors.
var (
	// ErrNotMapping reports a decoded response that is not a JSON object.
	ErrNotMapping = errors.New("response is not a mapping")

	// ErrVersionUnsupported reports a response declaring a protocol
	// version newer than 2.0.
	ErrVersionUnsupported = errors.New("jsonrpc version not supported")

	// ErrInvalidResponse reports a response carrying neither a result
	// nor an error key.
	ErrInvalidResponse = errors.New("response has neither result nor error")
)

// ProtocolError is a server-side failure in the reserved code range, or a
// non-standard error shape the classifier could not map to code+message.
// In the latter case Code and Message are zero and Value carries whatever
// the server sent.
type ProtocolError struct {
	Code    int
	Message string
	Value   any
}

func (e *ProtocolError) Error() string {
	if e.Code != 0 || e.Message != "" {
		return fmt.Sprintf("protocol error %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("protocol error: %v", e.Value)
}

// AppError is a server-side failure with a code outside the reserved range.
// Data is the optional, opaque payload from the error object.
type AppError struct {
	Code    int
	Message string
	Data    any
}

func (e *AppError) Error() string {
	return fmt.Sprintf("application error %d: %s", e.Code, e.Message)
}

// ValidationError is a local failure detected before any transport
// activity: a bad parameter shape, a response built without an id, or
// conflicting positional and keyword arguments.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}
