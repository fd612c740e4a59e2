package session

import "sync/atomic"

// Tag identifies one issued request of a given kind. Tags increase
// monotonically per Sequencer.
type Tag uint64

// Sequencer hands out tags for one kind of request so that only the response
// to the most recently issued request is applied. The zero value is ready to
// use.
type Sequencer struct {
	latest atomic.Uint64
}

// Next issues a new tag, superseding every earlier one.
func (q *Sequencer) Next() Tag {
	return Tag(q.latest.Add(1))
}

// IsLatest reports whether t is the most recently issued tag.
func (q *Sequencer) IsLatest(t Tag) bool {
	return q.latest.Load() == uint64(t)
}
