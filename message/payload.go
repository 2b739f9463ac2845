package message

import (
	"reflect"

	"github.com/google/uuid"
)

// Payload builds the four envelope shapes for one (id, version) pair.
// All methods are pure: they produce an Envelope and touch no I/O.
type Payload struct {
	ID      any
	Version Version
}

// NewPayload creates a builder for the given request id and version.
// A nil or empty id stays unset until Request generates one; a zero
// version falls back to DefaultVersion.
func NewPayload(id any, version Version) *Payload {
	if version == 0 {
		version = DefaultVersion
	}
	return &Payload{ID: id, Version: version}
}

// Request prepares a method call envelope. The id is generated (uuid v4)
// if the builder has none. Empty params are omitted from the envelope on
// version 1.1 and later; 1.0 always carries the params key.
func (p *Payload) Request(method string, params any) (Envelope, error) {
	if method == "" {
		return nil, &ValidationError{Reason: "method name must be a non-empty string"}
	}
	if !hasID(p.ID) {
		p.ID = uuid.NewString()
	}
	if params == nil {
		params = []any{}
	}

	env := Envelope{"id": p.ID, "method": method}
	if !emptyParams(params) || p.Version < V11 {
		env["params"] = params
	}
	if p.Version >= V20 {
		env["jsonrpc"] = p.Version.String()
	}
	return env, nil
}

// Notify prepares a notification envelope: a request with the id removed
// (2.0) or nulled (earlier versions).
func (p *Payload) Notify(method string, params any) (Envelope, error) {
	env, err := p.Request(method, params)
	if err != nil {
		return nil, err
	}
	if p.Version >= V20 {
		delete(env, "id")
	} else {
		env["id"] = nil
	}
	return env, nil
}

// Response prepares a success envelope for the builder's id.
// Versions before 2.0 spell the absent error as an explicit null.
func (p *Payload) Response(result any) Envelope {
	env := Envelope{"result": result, "id": p.ID}
	if p.Version >= V20 {
		env["jsonrpc"] = p.Version.String()
	} else {
		env["error"] = nil
	}
	return env
}

// Error prepares an error envelope. Versions before 2.0 spell the absent
// result as an explicit null.
func (p *Payload) Error(code int, errMessage string) Envelope {
	env := p.Response(nil)
	if p.Version >= V20 {
		delete(env, "result")
	} else {
		env["result"] = nil
	}
	env["error"] = map[string]any{"code": code, "message": errMessage}
	return env
}

func hasID(id any) bool {
	if id == nil {
		return false
	}
	if s, ok := id.(string); ok {
		return s != ""
	}
	return true
}

// emptyParams reports whether params would serialize to an empty
// sequence or mapping.
func emptyParams(params any) bool {
	switch x := params.(type) {
	case nil:
		return true
	case []any:
		return len(x) == 0
	case map[string]any:
		return len(x) == 0
	}
	v := reflect.ValueOf(params)
	switch v.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return v.Len() == 0
	}
	return false
}

// validParams reports whether params is a sequence, a mapping or a Fault —
// the only shapes an envelope accepts.
func validParams(params any) bool {
	if params == nil {
		return true
	}
	if _, ok := params.(*Fault); ok {
		return true
	}
	switch reflect.ValueOf(params).Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return true
	}
	return false
}
