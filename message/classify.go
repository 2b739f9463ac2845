package message

import (
	"fmt"
	"strconv"
)

// Classify inspects a decoded response value and either returns it
// unchanged or reports a typed failure. A nil or empty value means no
// response was expected and passes through.
//
// Rules, first match wins: non-mapping → ErrNotMapping; jsonrpc above 2.0
// → ErrVersionUnsupported; neither result nor error → ErrInvalidResponse;
// a truthy error → *ProtocolError (reserved code range or non-standard
// shape) or *AppError (application code, optional data); otherwise the
// response is a success.
func Classify(v any) (any, error) {
	if !truthy(v) {
		return v, nil
	}

	m, ok := mapping(v)
	if !ok {
		return nil, ErrNotMapping
	}

	if raw, present := m["jsonrpc"]; present {
		version, err := versionNumber(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrVersionUnsupported, raw)
		}
		if version > 2.0 {
			return nil, ErrVersionUnsupported
		}
	}

	_, hasResult := m["result"]
	errValue, hasError := m["error"]
	if !hasResult && !hasError {
		return nil, ErrInvalidResponse
	}

	if hasError && truthy(errValue) {
		return nil, classifyError(errValue)
	}
	return v, nil
}

// classifyError turns the error member of a response into a typed failure.
func classifyError(errValue any) error {
	em, ok := mapping(errValue)
	if ok {
		if rawCode, present := em["code"]; present {
			if code, numeric := intValue(rawCode); numeric {
				errMessage := errorMessage(em)
				if ReservedErrorMin <= code && code <= ReservedErrorMax {
					return &ProtocolError{Code: code, Message: errMessage}
				}
				return &AppError{Code: code, Message: errMessage, Data: em["data"]}
			}
		}
		// Compatibility fallback: some servers send {"reason": ...} style
		// single-entry error objects without a code.
		if len(em) == 1 {
			for _, entry := range em {
				return &ProtocolError{Value: entry}
			}
		}
	}
	return &ProtocolError{Value: errValue}
}

// errorMessage extracts the human-readable message: the message field if
// present, the trace field (jabsorb servers) otherwise, or a placeholder.
func errorMessage(em map[string]any) string {
	if raw, present := em["message"]; present {
		return stringValue(raw)
	}
	if raw, present := em["trace"]; present {
		return stringValue(raw)
	}
	return "<no error message>"
}

// IsBatchResponse reports whether a decoded value is a batch response:
// a non-empty array whose first element is a mapping carrying a jsonrpc
// key that parses as a number of at least 2.0. A jsonrpc value that does
// not parse as a number is an error, not a false.
func IsBatchResponse(v any) (bool, error) {
	seq, ok := v.([]any)
	if !ok || len(seq) < 1 {
		return false, nil
	}
	first, ok := mapping(seq[0])
	if !ok {
		return false, nil
	}
	raw, present := first["jsonrpc"]
	if !present {
		return false, nil
	}
	version, err := versionNumber(raw)
	if err != nil {
		return false, &ProtocolError{Value: fmt.Sprintf("jsonrpc key must be a numeric value: %v", raw)}
	}
	return version >= 2.0, nil
}

// IsNotification reports whether a request envelope is a notification:
// the id key is absent (2.0) or null (1.x).
func IsNotification(req Envelope) bool {
	id, present := req["id"]
	if !present {
		return true
	}
	return id == nil
}

func mapping(v any) (map[string]any, bool) {
	switch x := v.(type) {
	case map[string]any:
		return x, true
	case Envelope:
		return x, true
	}
	return nil, false
}

// truthy mirrors the falsiness of decoded JSON values: nil, false, zero,
// empty strings and empty containers are all "no value".
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case float64:
		return x != 0
	case int:
		return x != 0
	case []any:
		return len(x) > 0
	case map[string]any:
		return len(x) > 0
	case Envelope:
		return len(x) > 0
	}
	return true
}

func versionNumber(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case int:
		return float64(x), nil
	case string:
		return strconv.ParseFloat(x, 64)
	}
	return 0, fmt.Errorf("not a number: %v", v)
}

func intValue(v any) (int, bool) {
	switch x := v.(type) {
	case float64:
		return int(x), true
	case int:
		return x, true
	}
	return 0, false
}

func stringValue(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
