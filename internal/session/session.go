// Package session holds the state shared by the dashboard components: the
// active candidate email, the picked listing, and request sequencing.
package session

import (
	"sync"

	"github.com/google/uuid"

	"github.com/jonathan/jobpilot/internal/types"
)

// EmailReader is the read side of the active email.
type EmailReader interface {
	ActiveEmail() string
}

// EmailWriter is the write side of the active email, held by the profile
// manager only. A save takes a tag with BeginSave and may make its email
// active with CommitSave once the backend accepted it.
type EmailWriter interface {
	EmailReader
	BeginSave() Tag
	IsLatestSave(t Tag) bool
	CommitSave(t Tag, email string) (applied, changed bool)
}

// Session is the single coordinating context of one dashboard run. It is safe
// for concurrent use.
type Session struct {
	ID uuid.UUID

	mu          sync.RWMutex
	activeEmail string
	picked      *types.JobListing
	listeners   []func(email string)

	saves     Sequencer
	searches  Sequencer
	refreshes Sequencer
}

// New creates an empty session. No profile is active until one is saved.
func New() *Session {
	return &Session{ID: uuid.New()}
}

// ActiveEmail returns the email of the last successfully saved profile, or an
// empty string when none has been saved.
func (s *Session) ActiveEmail() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeEmail
}

// Searches sequences job searches.
func (s *Session) Searches() *Sequencer { return &s.searches }

// Refreshes sequences application list refreshes.
func (s *Session) Refreshes() *Sequencer { return &s.refreshes }

// BeginSave issues the tag of a new profile save, superseding earlier ones.
func (s *Session) BeginSave() Tag {
	return s.saves.Next()
}

// IsLatestSave reports whether t belongs to the most recently issued save.
func (s *Session) IsLatestSave(t Tag) bool {
	return s.saves.IsLatest(t)
}

// CommitSave makes email the active email if t is still the latest save.
// The check and the write happen under one lock, so an older save can never
// overwrite the email of a newer one that committed first.
func (s *Session) CommitSave(t Tag, email string) (applied, changed bool) {
	s.mu.Lock()
	if !s.saves.IsLatest(t) {
		s.mu.Unlock()
		return false, false
	}
	return true, s.setActiveEmailLocked(email)
}

// setActiveEmailLocked records email and reports whether it changed. It is
// called with s.mu held and releases it; listeners registered with
// OnActiveEmailChange run after the lock is released, in registration order.
func (s *Session) setActiveEmailLocked(email string) bool {
	if s.activeEmail == email {
		s.mu.Unlock()
		return false
	}
	s.activeEmail = email
	listeners := append([]func(string){}, s.listeners...)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(email)
	}
	return true
}

// OnActiveEmailChange registers fn to be called with the new email whenever
// the active email changes.
func (s *Session) OnActiveEmailChange(fn func(email string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Pick records the listing the user selected for queuing.
func (s *Session) Pick(listing types.JobListing) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.picked = &listing
}

// Picked returns the selected listing, if any.
func (s *Session) Picked() (types.JobListing, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.picked == nil {
		return types.JobListing{}, false
	}
	return *s.picked, true
}

// ClearPicked drops the selection.
func (s *Session) ClearPicked() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.picked = nil
}
