// Package discovery runs job searches through the backend and holds the
// result set of the most recent query.
package discovery

import (
	"context"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/jonathan/jobpilot/internal/backend"
	"github.com/jonathan/jobpilot/internal/errors"
	"github.com/jonathan/jobpilot/internal/session"
	"github.com/jonathan/jobpilot/internal/types"
)

// DefaultQuery pre-fills the search box of a fresh dashboard.
const DefaultQuery = `"careers" "apply" "remote" software engineer site:company.com`

// Client searches for listings. Each search replaces the previous result set.
type Client struct {
	backend backend.Client
	session Session
	logger  *zap.Logger

	mu      sync.Mutex
	current *Result
}

// Session supplies the sequencer that orders searches.
type Session interface {
	Searches() *session.Sequencer
}

// NewClient creates a discovery client with an empty result set.
func NewClient(client backend.Client, sess Session, logger *zap.Logger) *Client {
	return &Client{
		backend: client,
		session: sess,
		logger:  logger.Named("discovery"),
		current: newResult("", nil, nil),
	}
}

// Search sends query verbatim to the backend and replaces the current result
// set with the outcome. A failed request is reported in the Result, not as an
// error; the returned error is only set when a newer search was issued before
// this one completed, in which case nothing was replaced.
func (c *Client) Search(ctx context.Context, query string) (*Result, error) {
	tag := c.session.Searches().Next()
	log := c.logger.With(zap.String("query", query), zap.Uint64("tag", uint64(tag)))
	log.Debug("searching")

	listings, err := c.backend.SearchJobs(ctx, query)

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.session.Searches().IsLatest(tag) {
		log.Info("discarding superseded search response")
		return nil, errors.Superseded(errors.OpSearchJobs)
	}

	if err != nil {
		log.Warn("search failed", zap.Error(err))
		c.current = newResult(query, nil, err)
		return c.current, nil
	}

	cleaned := clean(listings)
	log.Info("search completed",
		zap.Int("listings", len(cleaned)),
		zap.Int("dropped", len(listings)-len(cleaned)))
	c.current = newResult(query, cleaned, nil)
	return c.current, nil
}

// Current returns the result of the latest applied search.
func (c *Client) Current() *Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// clean strips markup from titles and snippets and drops repeated URLs,
// keeping the first occurrence.
func clean(listings []types.JobListing) []types.JobListing {
	seen := make(map[string]bool, len(listings))
	out := make([]types.JobListing, 0, len(listings))
	for _, l := range listings {
		if seen[l.URL] {
			continue
		}
		seen[l.URL] = true
		l.Title = plainText(l.Title)
		l.Snippet = plainText(l.Snippet)
		out = append(out, l)
	}
	return out
}

// plainText reduces an HTML fragment such as a highlighted search snippet to
// single-spaced text.
func plainText(s string) string {
	if strings.ContainsAny(s, "<&") {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
		if err == nil {
			s = doc.Text()
		}
	}
	return strings.Join(strings.Fields(s), " ")
}
