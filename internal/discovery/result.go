package discovery

import (
	"iter"
	"sync"

	"github.com/jonathan/jobpilot/internal/types"
)

// Outcome classifies a completed search.
type Outcome string

const (
	OutcomeFound  Outcome = "found"
	OutcomeEmpty  Outcome = "empty"
	OutcomeFailed Outcome = "failed"
)

// Result is the outcome of one search. A failed search carries its error and
// no listings, so an empty result and a failure stay distinguishable.
type Result struct {
	Query   string
	Outcome Outcome
	Err     error

	listings *Listings
}

func newResult(query string, items []types.JobListing, err error) *Result {
	r := &Result{Query: query, listings: &Listings{items: items}}
	switch {
	case err != nil:
		r.Outcome = OutcomeFailed
		r.Err = err
		r.listings.items = nil
	case len(items) == 0:
		r.Outcome = OutcomeEmpty
	default:
		r.Outcome = OutcomeFound
	}
	return r
}

// Listings returns the result's listing sequence.
func (r *Result) Listings() *Listings {
	return r.listings
}

// Len returns the number of listings the search produced.
func (r *Result) Len() int {
	return r.listings.Len()
}

// Failed reports whether the search request failed.
func (r *Result) Failed() bool {
	return r.Outcome == OutcomeFailed
}

// Listings is a finite, single-pass sequence of search hits. Once consumed it
// cannot be replayed; run the search again instead.
type Listings struct {
	mu    sync.Mutex
	items []types.JobListing
	pos   int
}

// Next returns the next listing, or false when the sequence is exhausted.
func (l *Listings) Next() (types.JobListing, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.pos >= len(l.items) {
		return types.JobListing{}, false
	}
	item := l.items[l.pos]
	l.pos++
	return item, true
}

// All yields the remaining listings, consuming them.
func (l *Listings) All() iter.Seq[types.JobListing] {
	return func(yield func(types.JobListing) bool) {
		for {
			item, ok := l.Next()
			if !ok || !yield(item) {
				return
			}
		}
	}
}

// Collect drains the remaining listings into a slice.
func (l *Listings) Collect() []types.JobListing {
	out := make([]types.JobListing, 0, l.Remaining())
	for item := range l.All() {
		out = append(out, item)
	}
	return out
}

// Len returns the total number of listings, consumed or not.
func (l *Listings) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items)
}

// Remaining returns how many listings have not been consumed yet.
func (l *Listings) Remaining() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.items) - l.pos
}
