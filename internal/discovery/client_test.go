package discovery

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jonathan/jobpilot/internal/backend"
	"github.com/jonathan/jobpilot/internal/backend/backendstub"
	"github.com/jonathan/jobpilot/internal/backendtest"
	"github.com/jonathan/jobpilot/internal/errors"
	"github.com/jonathan/jobpilot/internal/session"
	"github.com/jonathan/jobpilot/internal/types"
)

func newTestClient(t *testing.T) (*Client, *backendtest.Server) {
	t.Helper()
	srv := backendtest.New(nil)
	t.Cleanup(srv.Close)
	return NewClient(backend.NewWithOptions(srv.URL, nil, nil), session.New(), zap.NewNop()), srv
}

func TestSearch_Found(t *testing.T) {
	c, srv := newTestClient(t)
	srv.SetListings(
		types.JobListing{Title: "Backend Engineer", URL: "https://x.co/jobs/1"},
		types.JobListing{Title: "SRE", URL: "https://y.io/sre"},
	)

	res, err := c.Search(context.Background(), "backend engineer remote")
	require.NoError(t, err)

	assert.Equal(t, OutcomeFound, res.Outcome)
	assert.Equal(t, 2, res.Len())
	assert.Same(t, res, c.Current())

	req, ok := srv.LastRequest(backendtest.RouteSearch)
	require.True(t, ok)
	assert.Equal(t, []string{"backend engineer remote"}, req.Query["q"])
}

func TestSearch_LenMatchesBackendCountForDistinctURLs(t *testing.T) {
	c, srv := newTestClient(t)
	listings := make([]types.JobListing, 25)
	for i := range listings {
		listings[i] = types.JobListing{Title: fmt.Sprintf("Job %d", i), URL: fmt.Sprintf("https://x.co/jobs/%d", i)}
	}
	srv.SetListings(listings...)

	res, err := c.Search(context.Background(), "go")
	require.NoError(t, err)

	assert.Equal(t, len(listings), res.Len())
	assert.Len(t, res.Listings().Collect(), len(listings))
}

func TestSearch_EmptyIsNotFailure(t *testing.T) {
	c, _ := newTestClient(t)

	res, err := c.Search(context.Background(), "nothing matches")
	require.NoError(t, err)

	assert.Equal(t, OutcomeEmpty, res.Outcome)
	assert.False(t, res.Failed())
	assert.Equal(t, 0, res.Len())
	assert.NoError(t, res.Err)
}

func TestSearch_FailureYieldsEmptySequence(t *testing.T) {
	c, srv := newTestClient(t)
	srv.SetListings(types.JobListing{Title: "SRE", URL: "https://y.io/sre"})

	_, err := c.Search(context.Background(), "sre")
	require.NoError(t, err)

	srv.Fail(backendtest.RouteSearch, http.StatusBadGateway)
	res, err := c.Search(context.Background(), "sre")
	require.NoError(t, err)

	assert.True(t, res.Failed())
	assert.True(t, errors.IsType(res.Err, errors.ErrTypeBackend))
	assert.Equal(t, 0, res.Len())
	assert.Equal(t, 0, c.Current().Len(), "failure replaces the previous set")
	_, ok := res.Listings().Next()
	assert.False(t, ok)
}

func TestSearch_ReplacesPreviousSet(t *testing.T) {
	c, srv := newTestClient(t)
	srv.SetSearch(func(q string) []types.JobListing {
		if q == "first" {
			return []types.JobListing{{Title: "A", URL: "https://a.io"}, {Title: "B", URL: "https://b.io"}}
		}
		return []types.JobListing{{Title: "C", URL: "https://c.io"}}
	})

	_, err := c.Search(context.Background(), "first")
	require.NoError(t, err)
	res, err := c.Search(context.Background(), "second")
	require.NoError(t, err)

	assert.Equal(t, []types.JobListing{{Title: "C", URL: "https://c.io"}}, c.Current().Listings().Collect())
	assert.Equal(t, 1, res.Len())
}

func TestSearch_CleansMarkupAndDuplicates(t *testing.T) {
	stub := &backendstub.Stub{
		SearchJobsFn: func(context.Context, string) ([]types.JobListing, error) {
			return []types.JobListing{
				{Title: "Go &amp; Rust <b>Engineer</b>", Snippet: "Fully <b>remote</b>\n  role", URL: "https://x.co/1"},
				{Title: "Duplicate", URL: "https://x.co/1"},
				{Title: "R&D Lead", Snippet: "plain   text", URL: "https://x.co/2"},
			}, nil
		},
	}
	c := NewClient(stub, session.New(), zap.NewNop())

	res, err := c.Search(context.Background(), "go")
	require.NoError(t, err)

	got := res.Listings().Collect()
	require.Len(t, got, 2)
	assert.Equal(t, "Go & Rust Engineer", got[0].Title)
	assert.Equal(t, "Fully remote role", got[0].Snippet)
	assert.Equal(t, "R&D Lead", got[1].Title)
	assert.Equal(t, "plain text", got[1].Snippet)
}

func TestSearch_StaleResponseDiscarded(t *testing.T) {
	gate := backendstub.NewGate()
	stub := &backendstub.Stub{
		SearchJobsFn: func(ctx context.Context, q string) ([]types.JobListing, error) {
			if q == "slow" {
				if err := gate.Wait(ctx); err != nil {
					return nil, err
				}
				return []types.JobListing{{Title: "Stale", URL: "https://stale.io"}}, nil
			}
			return []types.JobListing{{Title: "Fresh", URL: "https://fresh.io"}}, nil
		},
	}
	c := NewClient(stub, session.New(), zap.NewNop())

	errc := make(chan error, 1)
	go func() {
		_, err := c.Search(context.Background(), "slow")
		errc <- err
	}()
	<-gate.Entered()

	fresh, err := c.Search(context.Background(), "fast")
	require.NoError(t, err)

	gate.Release()
	staleErr := <-errc

	assert.True(t, errors.IsSuperseded(staleErr))
	assert.Same(t, fresh, c.Current())
	assert.Equal(t, "fast", c.Current().Query)
}

func TestListings_SinglePass(t *testing.T) {
	res := newResult("q", []types.JobListing{
		{Title: "A", URL: "https://a.io"},
		{Title: "B", URL: "https://b.io"},
		{Title: "C", URL: "https://c.io"},
	}, nil)
	l := res.Listings()

	first, ok := l.Next()
	require.True(t, ok)
	assert.Equal(t, "A", first.Title)
	assert.Equal(t, 2, l.Remaining())

	var rest []string
	for item := range l.All() {
		rest = append(rest, item.Title)
	}
	assert.Equal(t, []string{"B", "C"}, rest)

	assert.Empty(t, l.Collect(), "a consumed sequence does not restart")
	assert.Equal(t, 3, l.Len())
}

func TestListings_EarlyBreakKeepsPosition(t *testing.T) {
	res := newResult("q", []types.JobListing{{Title: "A", URL: "https://a.io"}, {Title: "B", URL: "https://b.io"}}, nil)

	for range res.Listings().All() {
		break
	}

	next, ok := res.Listings().Next()
	require.True(t, ok)
	assert.Equal(t, "B", next.Title)
}

func TestNewClient_StartsEmpty(t *testing.T) {
	c := NewClient(&backendstub.Stub{}, session.New(), zap.NewNop())

	assert.Equal(t, OutcomeEmpty, c.Current().Outcome)
	assert.Equal(t, 0, c.Current().Len())
}
