// Package coordinator turns a picked job listing into an application request
// on behalf of the active candidate.
package coordinator

import (
	"context"

	"go.uber.org/zap"

	"github.com/jonathan/jobpilot/internal/backend"
	"github.com/jonathan/jobpilot/internal/errors"
	"github.com/jonathan/jobpilot/internal/session"
	"github.com/jonathan/jobpilot/internal/types"
)

// Coordinator queues applications. It never caches what it submits; callers
// refresh the application list after a successful Queue.
type Coordinator struct {
	backend backend.Client
	session Session
	logger  *zap.Logger
}

// Session is the part of the shared session the coordinator uses: it reads
// the active email and owns the picked listing.
type Session interface {
	session.EmailReader
	Pick(listing types.JobListing)
	Picked() (types.JobListing, bool)
	ClearPicked()
}

// New creates a coordinator bound to the session.
func New(client backend.Client, sess Session, logger *zap.Logger) *Coordinator {
	return &Coordinator{
		backend: client,
		session: sess,
		logger:  logger.Named("coordinator"),
	}
}

// Pick records listing as the user's current selection.
func (c *Coordinator) Pick(listing types.JobListing) {
	c.session.Pick(listing)
}

// Queue asks the backend to create an application for listing on behalf of
// activeEmail. Without an active email it fails with a validation error and
// sends nothing. On success the picked listing is cleared; cover letter
// generation is the backend's business and is not awaited.
func (c *Coordinator) Queue(ctx context.Context, listing types.JobListing, activeEmail string) error {
	req := types.NewApplicationRequest(listing, activeEmail)
	if err := req.Validate(); err != nil {
		c.logger.Info("queue rejected: no active profile", zap.String("job_url", listing.URL))
		return errors.MissingProfile(err)
	}

	log := c.logger.With(
		zap.String("job_url", listing.URL),
		zap.String("applicant_email", activeEmail))

	if err := c.backend.CreateApplication(ctx, req); err != nil {
		log.Warn("queue failed", zap.Error(err))
		return err
	}

	c.session.ClearPicked()
	log.Info("application queued", zap.String("job_title", listing.Title))
	return nil
}

// QueuePicked queues the listing currently picked in the session for the
// session's active email.
func (c *Coordinator) QueuePicked(ctx context.Context) error {
	listing, ok := c.session.Picked()
	if !ok {
		return errors.Validation(errors.OpQueueApplication, "no listing picked", nil)
	}
	return c.Queue(ctx, listing, c.session.ActiveEmail())
}
