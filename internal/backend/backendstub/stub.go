// Package backendstub provides a programmable backend.Client for unit tests.
package backendstub

import (
	"context"
	"sync"

	"github.com/jonathan/jobpilot/internal/backend"
	"github.com/jonathan/jobpilot/internal/types"
)

var _ backend.Client = (*Stub)(nil)

// Stub implements backend.Client with overridable functions. A nil function
// succeeds with an empty result.
type Stub struct {
	SaveProfileFn       func(ctx context.Context, profile types.Profile) error
	SearchJobsFn        func(ctx context.Context, query string) ([]types.JobListing, error)
	CreateApplicationFn func(ctx context.Context, req types.ApplicationRequest) error
	ListApplicationsFn  func(ctx context.Context, email string) ([]types.Application, error)

	mu    sync.Mutex
	calls map[string]int
}

func (s *Stub) record(method string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.calls == nil {
		s.calls = map[string]int{}
	}
	s.calls[method]++
}

// Calls returns how often method was invoked.
func (s *Stub) Calls(method string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[method]
}

func (s *Stub) SaveProfile(ctx context.Context, profile types.Profile) error {
	s.record("SaveProfile")
	if s.SaveProfileFn == nil {
		return nil
	}
	return s.SaveProfileFn(ctx, profile)
}

func (s *Stub) SearchJobs(ctx context.Context, query string) ([]types.JobListing, error) {
	s.record("SearchJobs")
	if s.SearchJobsFn == nil {
		return []types.JobListing{}, nil
	}
	return s.SearchJobsFn(ctx, query)
}

func (s *Stub) CreateApplication(ctx context.Context, req types.ApplicationRequest) error {
	s.record("CreateApplication")
	if s.CreateApplicationFn == nil {
		return nil
	}
	return s.CreateApplicationFn(ctx, req)
}

func (s *Stub) ListApplications(ctx context.Context, email string) ([]types.Application, error) {
	s.record("ListApplications")
	if s.ListApplicationsFn == nil {
		return []types.Application{}, nil
	}
	return s.ListApplicationsFn(ctx, email)
}

// Gate holds a stubbed call open until the test releases it, so responses can
// be delivered out of order.
type Gate struct {
	entered chan struct{}
	release chan struct{}
	once    sync.Once
}

// NewGate returns a closed gate.
func NewGate() *Gate {
	return &Gate{
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
}

// Wait marks the call as in flight and blocks until Release or ctx is done.
func (g *Gate) Wait(ctx context.Context) error {
	g.once.Do(func() { close(g.entered) })
	select {
	case <-g.release:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Entered is closed once a call has reached Wait.
func (g *Gate) Entered() <-chan struct{} {
	return g.entered
}

// Release lets the held call complete.
func (g *Gate) Release() {
	close(g.release)
}
