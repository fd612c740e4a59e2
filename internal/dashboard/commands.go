package dashboard

import (
	"context"

	"github.com/jonathan/jobpilot/internal/types"
)

const (
	labelSaving     = "Saving…"
	labelSearching  = "Searching…"
	labelQueuing    = "Queuing…"
	labelRefreshing = "Refreshing…"
)

// Command is a user action the controller can dispatch.
type Command interface {
	// loading is the indicator shown while the command runs, if any.
	loading() string
	execute(ctx context.Context, c *Controller) (Event, bool)
}

// SaveProfile submits the profile form.
type SaveProfile struct {
	Form types.ProfileForm
}

func (SaveProfile) loading() string { return labelSaving }

func (cmd SaveProfile) execute(ctx context.Context, c *Controller) (Event, bool) {
	return c.SaveProfile(ctx, cmd.Form)
}

// Search runs a job search.
type Search struct {
	Query string
}

func (Search) loading() string { return labelSearching }

func (cmd Search) execute(ctx context.Context, c *Controller) (Event, bool) {
	return c.Search(ctx, cmd.Query)
}

// Queue queues the displayed listing at a 1-based index.
type Queue struct {
	Index int
}

func (Queue) loading() string { return "" }

func (cmd Queue) execute(ctx context.Context, c *Controller) (Event, bool) {
	return c.Queue(ctx, cmd.Index)
}

// Refresh reloads the application list.
type Refresh struct{}

func (Refresh) loading() string { return "" }

func (Refresh) execute(ctx context.Context, c *Controller) (Event, bool) {
	return c.Refresh(ctx)
}
