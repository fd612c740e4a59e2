// Package backendtest provides an in-memory stand-in for the jobpilot backend
// API, served over httptest for use in tests.
package backendtest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/jobpilot/internal/types"
)

// Route identifies one backend endpoint, in ServeMux pattern form.
type Route string

const (
	RouteSaveProfile       Route = "POST /api/profile"
	RouteSearch            Route = "GET /api/search"
	RouteCreateApplication Route = "POST /api/applications"
	RouteListApplications  Route = "GET /api/applications"
)

// Request is a recorded inbound request.
type Request struct {
	Route  Route
	Query  map[string][]string
	Header http.Header
	Body   []byte
}

type failure struct {
	status int
	body   string
	drop   bool
}

// Server is a fake backend. Profiles and applications live in memory; search
// returns whatever listings were configured.
type Server struct {
	URL string

	srv    *httptest.Server
	logger *zap.Logger

	mu       sync.Mutex
	profiles map[string]types.Profile
	apps     []types.Application
	listings []types.JobListing
	searchFn func(query string) []types.JobListing
	failures map[Route]failure
	requests []Request
}

// New starts a fake backend. Call Close when done.
func New(logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		logger:   logger.Named("backendtest"),
		profiles: map[string]types.Profile{},
		failures: map[Route]failure{},
	}

	mux := http.NewServeMux()
	mux.HandleFunc(string(RouteSaveProfile), s.handleSaveProfile)
	mux.HandleFunc(string(RouteSearch), s.handleSearch)
	mux.HandleFunc(string(RouteCreateApplication), s.handleCreateApplication)
	mux.HandleFunc(string(RouteListApplications), s.handleListApplications)

	s.srv = httptest.NewServer(s.withLogging(s.withFailures(mux)))
	s.URL = s.srv.URL
	return s
}

// Close shuts the server down.
func (s *Server) Close() {
	s.srv.Close()
}

// SetListings sets the results returned for every search query.
func (s *Server) SetListings(listings ...types.JobListing) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listings = listings
	s.searchFn = nil
}

// SetSearch installs a per-query search function.
func (s *Server) SetSearch(fn func(query string) []types.JobListing) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchFn = fn
}

// Fail makes route answer with status until Recover is called.
func (s *Server) Fail(route Route, status int) {
	s.setFailure(route, failure{status: status, body: fmt.Sprintf(`{"error":"injected %d"}`, status)})
}

// Respond makes route answer with a raw status and body until Recover.
func (s *Server) Respond(route Route, status int, body string) {
	s.setFailure(route, failure{status: status, body: body})
}

// Drop makes route close the connection without answering until Recover.
func (s *Server) Drop(route Route) {
	s.setFailure(route, failure{drop: true})
}

// Recover restores normal handling of route.
func (s *Server) Recover(route Route) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.failures, route)
}

func (s *Server) setFailure(route Route, f failure) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[route] = f
}

// SeedApplication stores an application as if it had been queued earlier.
func (s *Server) SeedApplication(app types.Application) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apps = append(s.apps, app)
}

// Calls returns how many requests reached route.
func (s *Server) Calls(route Route) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, r := range s.requests {
		if r.Route == route {
			n++
		}
	}
	return n
}

// LastRequest returns the most recent request to route.
func (s *Server) LastRequest(route Route) (Request, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(s.requests) - 1; i >= 0; i-- {
		if s.requests[i].Route == route {
			return s.requests[i], true
		}
	}
	return Request{}, false
}

// Profile returns the stored profile for email.
func (s *Server) Profile(email string) (types.Profile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[email]
	return p, ok
}

// Applications returns a copy of every stored application.
func (s *Server) Applications() []types.Application {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]types.Application(nil), s.apps...)
}

// withFailures records each request and applies injected failures.
func (s *Server) withFailures(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := Route(r.Method + " " + r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		_ = r.Body.Close()

		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Route:  route,
			Query:  r.URL.Query(),
			Header: r.Header.Clone(),
			Body:   body,
		})
		f, failing := s.failures[route]
		s.mu.Unlock()

		if failing {
			if f.drop {
				s.dropConnection(w)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(f.status)
			_, _ = io.WriteString(w, f.body)
			return
		}

		r.Body = io.NopCloser(bytes.NewReader(body))
		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.logger.Debug("handled request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("request_id", r.Header.Get("X-Request-ID")),
			zap.Duration("elapsed", time.Since(start)))
	})
}

func (s *Server) dropConnection(w http.ResponseWriter) {
	hj, ok := w.(http.Hijacker)
	if !ok {
		s.errorResponse(w, http.StatusInternalServerError, "hijacking not supported")
		return
	}
	conn, _, err := hj.Hijack()
	if err != nil {
		return
	}
	_ = conn.Close()
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("error encoding JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}
