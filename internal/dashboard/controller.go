// Package dashboard drives the jobpilot workflow: it runs user actions against
// the components without blocking, turns their outcomes into status messages
// and keeps the state the view renders.
package dashboard

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/jobpilot/internal/applications"
	"github.com/jonathan/jobpilot/internal/coordinator"
	"github.com/jonathan/jobpilot/internal/discovery"
	"github.com/jonathan/jobpilot/internal/errors"
	"github.com/jonathan/jobpilot/internal/observability"
	"github.com/jonathan/jobpilot/internal/profile"
	"github.com/jonathan/jobpilot/internal/session"
	"github.com/jonathan/jobpilot/internal/types"
)

// Status messages shown to the user.
const (
	MsgSaved          = "Saved!"
	MsgSaveFailed     = "Error saving profile"
	MsgMissingProfile = "Save your profile first"
	MsgQueued         = "Application queued and cover letter generated!"
	MsgQueueFailed    = "Failed to create application"
	MsgSearchFailed   = "Search failed"
	MsgNoResults      = "No results"
)

// EventKind says which part of the view an Event updates.
type EventKind string

const (
	EventLoading      EventKind = "loading"
	EventProfileSaved EventKind = "profile_saved"
	EventSearched     EventKind = "searched"
	EventQueued       EventKind = "queued"
	EventRefreshed    EventKind = "refreshed"
	EventStatus       EventKind = "status"
	EventView         EventKind = "view"
)

// Event is the outcome of one dispatched command.
type Event struct {
	Kind         EventKind
	Status       string
	Profile      *types.Profile
	Listings     []types.JobListing
	Applications []types.Application
	Err          error

	view func(p *observability.Printer)
}

// Controller coordinates the dashboard components for one session.
type Controller struct {
	emails      session.EmailReader
	profiles    *profile.Manager
	discovery   *discovery.Client
	coordinator *coordinator.Coordinator
	cache       *applications.Cache
	logger      *zap.Logger

	events chan Event
	group  *errgroup.Group
	ctx    context.Context

	mu        sync.Mutex
	form      types.ProfileForm
	saved     *types.Profile
	query     string
	displayed []types.JobListing
	inflight  map[string]int
}

// New wires a controller. Call Start before dispatching commands.
func New(
	sess *session.Session,
	profiles *profile.Manager,
	disc *discovery.Client,
	coord *coordinator.Coordinator,
	cache *applications.Cache,
	logger *zap.Logger,
) *Controller {
	c := &Controller{
		emails:      sess,
		profiles:    profiles,
		discovery:   disc,
		coordinator: coord,
		cache:       cache,
		logger:      logger.Named("dashboard").With(zap.String("session_id", sess.ID.String())),
		events:      make(chan Event, 64),
		form:        types.NewProfileForm(),
		query:       discovery.DefaultQuery,
		inflight:    map[string]int{},
	}
	sess.OnActiveEmailChange(func(email string) {
		c.logger.Debug("active email changed, refreshing applications", zap.String("email", email))
		c.Dispatch(Refresh{})
	})
	return c
}

// Start begins the session and loads the application list.
func (c *Controller) Start(ctx context.Context) {
	c.group, c.ctx = errgroup.WithContext(ctx)
	c.Dispatch(Refresh{})
}

// Events delivers command outcomes in completion order. It is closed by Wait.
func (c *Controller) Events() <-chan Event {
	return c.events
}

// Dispatch runs cmd in the background. Commands of any kind may overlap.
// Commands dispatched before Start are dropped.
func (c *Controller) Dispatch(cmd Command) {
	if c.group == nil {
		c.logger.Debug("controller not started, dropping command", zap.String("command", fmt.Sprintf("%T", cmd)))
		return
	}
	if label := cmd.loading(); label != "" {
		c.emit(Event{Kind: EventLoading, Status: label})
	}
	c.group.Go(func() error {
		ev, ok := cmd.execute(c.ctx, c)
		if ok {
			c.emit(ev)
		}
		// failures are reported through events and never stop the session
		return nil
	})
}

// Wait blocks until every dispatched command has finished, then closes the
// event stream.
func (c *Controller) Wait() error {
	err := c.group.Wait()
	close(c.events)
	return err
}

func (c *Controller) emit(ev Event) {
	c.events <- ev
}

// Loading lists the labels of operations still in flight.
func (c *Controller) Loading() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	var labels []string
	for label, n := range c.inflight {
		if n > 0 {
			labels = append(labels, label)
		}
	}
	slices.Sort(labels)
	return labels
}

func (c *Controller) track(label string) func() {
	c.mu.Lock()
	c.inflight[label]++
	c.mu.Unlock()
	return func() {
		c.mu.Lock()
		c.inflight[label]--
		c.mu.Unlock()
	}
}

// SaveProfile submits form and reports the outcome.
func (c *Controller) SaveProfile(ctx context.Context, form types.ProfileForm) (Event, bool) {
	defer c.track(labelSaving)()

	email, err := c.profiles.Save(ctx, form)
	switch {
	case errors.IsSuperseded(err):
		return Event{}, false
	case err != nil:
		return Event{Kind: EventProfileSaved, Status: MsgSaveFailed, Err: err}, true
	}

	p := profile.Normalize(form)
	c.mu.Lock()
	c.saved = &p
	c.mu.Unlock()

	c.logger.Info("profile saved", zap.String("email", email))
	return Event{Kind: EventProfileSaved, Status: MsgSaved, Profile: &p}, true
}

// Search runs query and replaces the displayed results.
func (c *Controller) Search(ctx context.Context, query string) (Event, bool) {
	defer c.track(labelSearching)()

	res, err := c.discovery.Search(ctx, query)
	if err != nil {
		// superseded by a newer search
		return Event{}, false
	}

	var listings []types.JobListing
	if !res.Failed() {
		listings = res.Listings().Collect()
	}
	c.mu.Lock()
	c.displayed = listings
	c.mu.Unlock()

	ev := Event{Kind: EventSearched, Listings: listings}
	switch res.Outcome {
	case discovery.OutcomeFailed:
		ev.Status = MsgSearchFailed
		ev.Err = res.Err
	case discovery.OutcomeEmpty:
		ev.Status = MsgNoResults
	}
	return ev, true
}

// Queue picks the displayed listing at the 1-based index and queues it for
// the active profile. A successful queue is followed by a refresh.
func (c *Controller) Queue(ctx context.Context, index int) (Event, bool) {
	listing, ok := c.Listing(index)
	if !ok {
		return Event{Kind: EventStatus, Status: fmt.Sprintf("No listing #%d", index)}, true
	}

	defer c.track(labelQueuing)()
	c.coordinator.Pick(listing)

	err := c.coordinator.Queue(ctx, listing, c.emails.ActiveEmail())
	switch {
	case errors.IsMissingProfile(err):
		return Event{Kind: EventQueued, Status: MsgMissingProfile, Err: err}, true
	case err != nil:
		return Event{Kind: EventQueued, Status: MsgQueueFailed, Err: err}, true
	}

	ev := Event{Kind: EventQueued, Status: MsgQueued}
	if apps, err := c.cache.RefreshActive(ctx); err == nil {
		ev.Applications = apps
	} else {
		ev.Applications = c.cache.List()
	}
	return ev, true
}

// Refresh reloads the application list for the active email. Failures are
// not surfaced as a status message; the previous list stays on screen.
func (c *Controller) Refresh(ctx context.Context) (Event, bool) {
	defer c.track(labelRefreshing)()

	apps, err := c.cache.RefreshActive(ctx)
	switch {
	case errors.IsSuperseded(err):
		return Event{}, false
	case err != nil:
		return Event{Kind: EventRefreshed, Applications: c.cache.List(), Err: err}, true
	}
	return Event{Kind: EventRefreshed, Applications: apps}, true
}

// Listing returns the displayed listing at the 1-based index.
func (c *Controller) Listing(index int) (types.JobListing, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if index < 1 || index > len(c.displayed) {
		return types.JobListing{}, false
	}
	return c.displayed[index-1], true
}

// Displayed returns the listings of the last applied search.
func (c *Controller) Displayed() []types.JobListing {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.displayed)
}

// Applications returns the cached application list.
func (c *Controller) Applications() []types.Application {
	return c.cache.List()
}

// SavedProfile returns the last profile saved in this session.
func (c *Controller) SavedProfile() (types.Profile, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.saved == nil {
		return types.Profile{}, false
	}
	return *c.saved, true
}

// Form returns the profile form being edited.
func (c *Controller) Form() types.ProfileForm {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form
}

// Query returns the current search query.
func (c *Controller) Query() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.query
}

// SetQuery replaces the current search query.
func (c *Controller) SetQuery(q string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.query = q
}
