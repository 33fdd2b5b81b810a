// Package history keeps a bounded stack of whole-surface snapshots for undo.
package history

import (
	"github.com/example/photoedit/internal/raster"
)

// DefaultLimit is the number of snapshots kept when no limit is configured.
const DefaultLimit = 20

// Source yields the current surface contents. ok is false when no surface is
// bound.
type Source interface {
	Extract() (raster.Buffer, bool)
}

// Target accepts a full-surface commit.
type Target interface {
	Commit(raster.Buffer) error
}

// Stack is a fixed-capacity ring of snapshots. Pushing past capacity
// overwrites the oldest entry. It is not safe for concurrent use; the editor
// session serializes access.
type Stack struct {
	entries []raster.Buffer
	head    int // index of the oldest entry
	n       int
}

// New returns a stack holding at most limit entries. Values below 1 use
// DefaultLimit.
func New(limit int) *Stack {
	if limit < 1 {
		limit = DefaultLimit
	}
	return &Stack{entries: make([]raster.Buffer, limit)}
}

// Cap returns the configured capacity.
func (s *Stack) Cap() int { return len(s.entries) }

// Len returns the number of stored snapshots.
func (s *Stack) Len() int { return s.n }

// Push stores an owned copy of b.
func (s *Stack) Push(b raster.Buffer) {
	c := len(s.entries)
	if s.n < c {
		s.entries[(s.head+s.n)%c] = b.Clone()
		s.n++
		return
	}
	s.entries[s.head] = b.Clone()
	s.head = (s.head + 1) % c
}

// Pop removes and returns the newest snapshot.
func (s *Stack) Pop() (raster.Buffer, bool) {
	if s.n == 0 {
		return raster.Buffer{}, false
	}
	i := (s.head + s.n - 1) % len(s.entries)
	b := s.entries[i]
	s.entries[i] = raster.Buffer{}
	s.n--
	return b, true
}

// Capture pushes the current contents of src. A nil source or one without a
// bound surface is ignored.
func (s *Stack) Capture(src Source) {
	if src == nil {
		return
	}
	b, ok := src.Extract()
	if !ok || !b.Valid() {
		return
	}
	s.Push(b)
}

// Undo writes the newest snapshot back to dst. It reports false when the
// stack is empty, dst is nil, or dst rejects the snapshot. A rejected
// snapshot is still consumed.
func (s *Stack) Undo(dst Target) bool {
	if s.n == 0 || dst == nil {
		return false
	}
	b, _ := s.Pop()
	return dst.Commit(b) == nil
}

// Clear drops every snapshot.
func (s *Stack) Clear() {
	for i := range s.entries {
		s.entries[i] = raster.Buffer{}
	}
	s.head = 0
	s.n = 0
}
