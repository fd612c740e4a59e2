// Package applications keeps the dashboard's view of tracked applications in
// step with the backend.
package applications

import (
	"context"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/jonathan/jobpilot/internal/backend"
	"github.com/jonathan/jobpilot/internal/errors"
	"github.com/jonathan/jobpilot/internal/session"
	"github.com/jonathan/jobpilot/internal/types"
)

// Cache owns the in-memory application list. The list is only ever replaced
// wholesale by a successful Refresh.
type Cache struct {
	backend backend.Client
	session Session
	logger  *zap.Logger

	mu    sync.RWMutex
	apps  []types.Application
	email string
	stale bool
}

// Session is the part of the shared session the cache uses: the active email
// as the default filter and the sequencer that orders refreshes.
type Session interface {
	session.EmailReader
	Refreshes() *session.Sequencer
}

// NewCache creates an empty cache.
func NewCache(client backend.Client, sess Session, logger *zap.Logger) *Cache {
	return &Cache{
		backend: client,
		session: sess,
		logger:  logger.Named("applications"),
		apps:    []types.Application{},
	}
}

// Refresh fetches the applications for activeEmail, or every application when
// activeEmail is empty, and replaces the list with the response. On failure
// the previous list is kept and marked stale. A response that arrives after a
// newer refresh was issued is discarded.
func (c *Cache) Refresh(ctx context.Context, activeEmail string) ([]types.Application, error) {
	tag := c.session.Refreshes().Next()
	log := c.logger.With(zap.String("email", activeEmail), zap.Uint64("tag", uint64(tag)))

	apps, err := c.backend.ListApplications(ctx, activeEmail)

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.session.Refreshes().IsLatest(tag) {
		log.Debug("discarding superseded refresh")
		return nil, errors.Superseded(errors.OpListApplications)
	}

	if err != nil {
		c.stale = true
		log.Warn("refresh failed, keeping previous list",
			zap.Int("kept", len(c.apps)),
			zap.Error(err))
		return nil, err
	}

	c.apps = apps
	c.email = activeEmail
	c.stale = false
	log.Debug("applications refreshed", zap.Int("count", len(apps)))
	return slices.Clone(apps), nil
}

// RefreshActive refreshes the list for the session's active email.
func (c *Cache) RefreshActive(ctx context.Context) ([]types.Application, error) {
	return c.Refresh(ctx, c.session.ActiveEmail())
}

// List returns a copy of the cached applications.
func (c *Cache) List() []types.Application {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.apps)
}

// Email returns the filter used by the refresh that produced the list.
func (c *Cache) Email() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.email
}

// Stale reports whether the most recent refresh failed, leaving an older
// list in place.
func (c *Cache) Stale() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.stale
}

// FindByURL returns the cached application for jobURL.
func (c *Cache) FindByURL(jobURL string) (types.Application, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i := slices.IndexFunc(c.apps, func(a types.Application) bool { return a.JobURL == jobURL })
	if i < 0 {
		return types.Application{}, false
	}
	return c.apps[i], true
}
