// Package message implements the JSON-RPC envelope layer: building request,
// notification, response and error envelopes across protocol versions, and
// classifying decoded responses into results or typed failures.
//
// Envelopes are built as generic values (Envelope is a map) because field
// presence depends on the protocol version — 1.0 spells "no error" as an
// explicit null while 2.0 omits the key entirely. A fixed struct with
// omitempty tags cannot express both shapes.
package message

import "strconv"

// Version selects the JSON-RPC protocol variant an envelope is built for.
// It governs field presence: whether the jsonrpc marker appears, whether
// empty params are serialized, and how notifications spell the missing id.
type Version float64

const (
	V10 Version = 1.0
	V11 Version = 1.1
	V20 Version = 2.0

	// DefaultVersion is used when a Version is left zero.
	DefaultVersion = V20
)

// String renders the version the way it appears in the jsonrpc field ("2.0").
func (v Version) String() string {
	return strconv.FormatFloat(float64(v), 'f', 1, 64)
}

// Envelope is a protocol message in its generic, codec-ready form.
// It is exactly one of: request, notification, response, error.
type Envelope map[string]any
