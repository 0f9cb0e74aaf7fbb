package gateway

import (
	"context"
	"sync"
)

// FakeBackend replays scripted answers. Tests outside this package use it to
// drive a real Service without network access.
type FakeBackend struct {
	mu        sync.Mutex
	responses []FakeResponse
	requests  []Request
}

// FakeResponse is one scripted answer: raw JSON text or an error.
type FakeResponse struct {
	Text string
	Err  error
}

// NewFakeBackend creates a backend answering with responses in order. The
// last response repeats once the script runs out.
func NewFakeBackend(responses ...FakeResponse) *FakeBackend {
	return &FakeBackend{responses: responses}
}

func (f *FakeBackend) Name() string { return "fake" }

func (f *FakeBackend) Generate(ctx context.Context, req Request) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if err := ctx.Err(); err != nil {
		return "", NetworkFailure(err)
	}
	if len(f.responses) == 0 {
		return "", ParseFailure(nil)
	}
	r := f.responses[0]
	if len(f.responses) > 1 {
		f.responses = f.responses[1:]
	}
	return r.Text, r.Err
}

// Requests returns every request received so far.
func (f *FakeBackend) Requests() []Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Request, len(f.requests))
	copy(out, f.requests)
	return out
}

// Calls returns the number of requests received.
func (f *FakeBackend) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}
