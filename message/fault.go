package message

import (
	"fmt"

	"jrpc/codec"
)

// Fault is the local representation of a server-side error. It satisfies
// the error interface and converts to an error envelope through the same
// builder rules as any other error.
type Fault struct {
	Code    int
	Message string
	ID      any
}

// NewFault creates a Fault, defaulting to code -32000 and a generic
// server-error message.
func NewFault(code int, faultMessage string) *Fault {
	if code == 0 {
		code = DefaultErrorCode
	}
	if faultMessage == "" {
		faultMessage = "Server error"
	}
	return &Fault{Code: code, Message: faultMessage}
}

func (f *Fault) Error() string {
	return fmt.Sprintf("fault %d: %s", f.Code, f.Message)
}

// Envelope renders the fault as an error envelope for the given version.
func (f *Fault) Envelope(version Version) Envelope {
	return NewPayload(f.ID, version).Error(f.Code, f.Message)
}

// Text renders the fault as an error response string.
func (f *Fault) Text(c codec.Codec, version Version) (string, error) {
	return Dumps(c, f, BuildOptions{ID: f.ID, Version: version, Response: true})
}
