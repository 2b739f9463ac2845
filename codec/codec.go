// Package codec defines the text codec seam between envelopes and the wire.
//
// The message layer builds envelopes as generic values (maps, slices,
// strings, numbers) and hands them to a Codec to produce the UTF-8 JSON
// text that actually travels over the transport. Keeping the codec behind
// an interface lets tests substitute a deterministic encoder and leaves
// room for alternative JSON libraries without touching the call path.
package codec

// Codec converts between generic values and JSON-RPC wire text.
type Codec interface {
	Encode(v any) (string, error)
	Decode(text string) (any, error)
}

// Marshaller is the optional object-marshalling collaborator. Dump maps a
// typed application value to a JSON-safe generic value before encoding;
// Load reverses it after decoding. It is consulted only when a proxy is
// configured with one.
type Marshaller interface {
	Dump(v any) (any, error)
	Load(v any) (any, error)
}

// Default is used when no codec is specified.
var Default Codec = JSONCodec{}
