package client

import (
	"context"
	"fmt"
	"strings"

	"jrpc/message"
)

// MultiCall collects independent calls and notifications without sending,
// then submits them as one batch exchange. Jobs bind their argument set
// exactly once when appended and are immutable afterwards; envelope
// building is deferred until Run serializes the batch.
//
// Batches are a 2.0 construct: every job is serialized as a version 2.0
// envelope regardless of the proxy's version.
type MultiCall struct {
	proxy *Proxy
	jobs  []batchJob
}

// batchJob is one pending entry: a dotted method path, the single bound
// argument set, and whether it is a notification.
type batchJob struct {
	name   string
	params any
	notify bool
}

// NewMultiCall creates a batch engine over the proxy's exchange path.
func NewMultiCall(p *Proxy) *MultiCall {
	return &MultiCall{proxy: p}
}

// Call appends a request job with positional arguments.
func (mc *MultiCall) Call(method string, args ...any) error {
	return mc.add(method, args, nil, false)
}

// CallNamed appends a request job with keyword-style arguments.
func (mc *MultiCall) CallNamed(method string, kwargs map[string]any) error {
	return mc.add(method, nil, kwargs, false)
}

// Notify appends a notification job. Its position in the response array
// is skipped by the server, like any notification.
func (mc *MultiCall) Notify(method string, args ...any) error {
	return mc.add(method, args, nil, true)
}

// NotifyNamed appends a notification job with keyword-style arguments.
func (mc *MultiCall) NotifyNamed(method string, kwargs map[string]any) error {
	return mc.add(method, nil, kwargs, true)
}

// Add is the general form taking both argument shapes. It validates the
// shape immediately — a conflicting call fails here, long before any
// transport exchange.
func (mc *MultiCall) Add(method string, args []any, kwargs map[string]any, notify bool) error {
	return mc.add(method, args, kwargs, notify)
}

func (mc *MultiCall) add(method string, args []any, kwargs map[string]any, notify bool) error {
	params, err := bindParams(args, kwargs)
	if err != nil {
		return err
	}
	mc.jobs = append(mc.jobs, batchJob{name: method, params: params, notify: notify})
	return nil
}

// Len returns the number of pending jobs.
func (mc *MultiCall) Len() int {
	return len(mc.jobs)
}

// Run serializes every pending job, performs exactly one exchange, clears
// the job list, and returns the positional result view. An empty batch
// performs no exchange and yields an empty view.
func (mc *MultiCall) Run(ctx context.Context) (*BatchResults, error) {
	if len(mc.jobs) == 0 {
		return &BatchResults{}, nil
	}

	bodies := make([]string, len(mc.jobs))
	for i, job := range mc.jobs {
		text, err := message.Dumps(mc.proxy.codec, job.params, message.BuildOptions{
			Method:     job.name,
			Version:    message.V20,
			Notify:     job.notify,
			Marshaller: mc.proxy.marshaller,
		})
		if err != nil {
			return nil, err
		}
		bodies[i] = text
	}

	respText, err := mc.proxy.runRequest(ctx, "["+strings.Join(bodies, ",")+"]")
	if err != nil {
		return nil, err
	}
	mc.jobs = mc.jobs[:0]

	decoded, err := message.Loads(mc.proxy.codec, mc.proxy.marshaller, respText)
	if err != nil {
		return nil, err
	}
	if decoded == nil {
		return &BatchResults{}, nil
	}
	items, ok := decoded.([]any)
	if !ok {
		return nil, &message.ProtocolError{Message: "batch response is not an array"}
	}
	return &BatchResults{items: items}, nil
}

// BatchResults is the positional view over a batch response. Elements are
// classified lazily: a failing element only surfaces its error when that
// index is accessed. Correlation with the batch request is positional, so
// a response array shorter than the request makes the missing indices
// access-time errors, not a construction-time one.
type BatchResults struct {
	items []any
}

// Len returns the number of response elements.
func (r *BatchResults) Len() int {
	return len(r.items)
}

// Get classifies element i at access time and returns its unwrapped
// result. Indexing past the end is a bounds error.
func (r *BatchResults) Get(i int) (any, error) {
	if i < 0 || i >= len(r.items) {
		return nil, fmt.Errorf("batch index %d out of range [0, %d)", i, len(r.items))
	}
	classified, err := message.Classify(r.items[i])
	if err != nil {
		return nil, err
	}
	return resultOf(classified), nil
}
