package message

import (
	"jrpc/codec"
)

// BuildOptions selects which envelope shape Build produces and under
// which protocol rules.
type BuildOptions struct {
	Method     string
	ID         any
	Version    Version          // zero means DefaultVersion
	Response   bool             // build a response envelope (requires ID)
	Notify     bool             // build a notification envelope
	Marshaller codec.Marshaller // optional object marshalling, applied to params
}

// Build is the envelope orchestrator. A Fault params value short-circuits
// to an error envelope; otherwise Response builds a response (an id is
// mandatory — a response always answers a specific request), Notify builds
// a notification, and the default is a method call request.
//
// Params must be a sequence, a mapping or a Fault; anything else fails
// before an envelope is assembled.
func Build(params any, opt BuildOptions) (Envelope, error) {
	version := opt.Version
	if version == 0 {
		version = DefaultVersion
	}

	if opt.Method != "" && !validParams(params) {
		return nil, &ValidationError{Reason: "params must be a sequence, a mapping or a Fault"}
	}

	payload := NewPayload(opt.ID, version)

	if f, ok := params.(*Fault); ok {
		return payload.Error(f.Code, f.Message), nil
	}

	if opt.Method == "" && !opt.Response {
		return nil, &ValidationError{Reason: "method name must be a string, or Response must be set"}
	}

	if opt.Marshaller != nil {
		var err error
		if params, err = opt.Marshaller.Dump(params); err != nil {
			return nil, err
		}
	}

	if opt.Response {
		if !hasID(opt.ID) {
			return nil, &ValidationError{Reason: "a method response must have an id"}
		}
		return payload.Response(params), nil
	}

	if opt.Notify {
		return payload.Notify(opt.Method, params)
	}
	return payload.Request(opt.Method, params)
}

// Dumps builds an envelope and renders it as wire text.
func Dumps(c codec.Codec, params any, opt BuildOptions) (string, error) {
	env, err := Build(params, opt)
	if err != nil {
		return "", err
	}
	return c.Encode(env)
}

// Loads decodes response text into a generic value, applying the optional
// marshaller. Empty text means no response was expected (a notification)
// and yields nil.
func Loads(c codec.Codec, m codec.Marshaller, text string) (any, error) {
	if text == "" {
		return nil, nil
	}
	v, err := c.Decode(text)
	if err != nil {
		return nil, err
	}
	if m != nil {
		return m.Load(v)
	}
	return v, nil
}
