package client

// History records every outbound envelope and inbound response in call
// order, for diagnostics and tests. Entries are never reordered or
// dropped. Like the proxy itself it is not safe for concurrent use.
type History struct {
	requests  []string
	responses []string
}

func NewHistory() *History {
	return &History{}
}

func (h *History) AddRequest(text string) {
	h.requests = append(h.requests, text)
}

func (h *History) AddResponse(text string) {
	h.responses = append(h.responses, text)
}

// Requests returns a copy of the recorded outbound texts, oldest first.
func (h *History) Requests() []string {
	out := make([]string, len(h.requests))
	copy(out, h.requests)
	return out
}

// Responses returns a copy of the recorded inbound texts, oldest first.
func (h *History) Responses() []string {
	out := make([]string, len(h.responses))
	copy(out, h.responses)
	return out
}

// LastRequest returns the most recent outbound text, or "".
func (h *History) LastRequest() string {
	if len(h.requests) == 0 {
		return ""
	}
	return h.requests[len(h.requests)-1]
}

// LastResponse returns the most recent inbound text, or "".
func (h *History) LastResponse() string {
	if len(h.responses) == 0 {
		return ""
	}
	return h.responses[len(h.responses)-1]
}
