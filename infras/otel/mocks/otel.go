package mocks

import (
	"context"
	"sync"

	"studiodesk/infras/otel"
)

// Recorder is an otel.Otel that keeps span names, attributes and traced
// errors in memory. Safe for the background goroutines services start.
type Recorder struct {
	mu     sync.Mutex
	Spans  []string
	Attrs  map[string]any
	Errors []error
}

// NewOtel returns an empty Recorder.
func NewOtel() *Recorder {
	return &Recorder{Attrs: map[string]any{}}
}

func (r *Recorder) NewScope(ctx context.Context, _, spanName string) (context.Context, otel.Scope) {
	r.mu.Lock()
	r.Spans = append(r.Spans, spanName)
	r.mu.Unlock()

	return ctx, &scope{recorder: r}
}

// SpanNames returns a copy of the recorded span names in start order.
func (r *Recorder) SpanNames() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]string(nil), r.Spans...)
}

// Traced returns a copy of every error passed to TraceError.
func (r *Recorder) Traced() []error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]error(nil), r.Errors...)
}

// Attribute returns the last value set for key.
func (r *Recorder) Attribute(key string) any {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.Attrs[key]
}

type scope struct {
	recorder *Recorder
}

func (s *scope) End() {}

func (s *scope) AddEvent(_ string) {}

func (s *scope) TraceError(err error) {
	s.recorder.mu.Lock()
	defer s.recorder.mu.Unlock()

	s.recorder.Errors = append(s.recorder.Errors, err)
}

func (s *scope) TraceIfError(err error) {
	if err != nil {
		s.TraceError(err)
	}
}

func (s *scope) SetAttribute(key string, value any) {
	s.recorder.mu.Lock()
	defer s.recorder.mu.Unlock()

	s.recorder.Attrs[key] = value
}

func (s *scope) SetAttributes(attributes map[string]any) {
	for key, value := range attributes {
		s.SetAttribute(key, value)
	}
}

var _ otel.Otel = (*Recorder)(nil)
