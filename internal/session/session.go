// Package session holds the single in-memory document session. There is no
// persistence: the session is created empty at process start and dies with
// the process.
package session

import (
	"sync"

	"xplaindfile/internal/index"
)

// Session is the mutable context for one document lifecycle. A document is
// either fully loaded (index handle present) or absent; the two are one value
// set and cleared together under the lock, so readers can never observe an
// index name without retrieval capability or vice versa.
type Session struct {
	mu     sync.Mutex
	loaded bool
	handle index.Handle
}

// Snapshot is an immutable copy of session state, safe to use without the
// lock after it is taken.
type Snapshot struct {
	Loaded bool
	Handle index.Handle
}

// New returns an empty session.
func New() *Session {
	return &Session{}
}

// Snapshot returns a consistent copy of the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		Loaded: s.loaded,
		Handle: s.handle,
	}
}

// Commit stores the handle of a freshly built index and marks the session
// loaded. It returns false without mutating state when a document is already
// loaded; the caller lost an upload race and owns the cleanup of its own
// index.
func (s *Session) Commit(h index.Handle) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded {
		return false
	}
	s.loaded = true
	s.handle = h
	return true
}

// Clear resets the session to its empty state and returns the handle it
// held, so the caller can tear down the external index outside the lock.
func (s *Session) Clear() index.Handle {
	s.mu.Lock()
	defer s.mu.Unlock()

	prior := s.handle
	s.loaded = false
	s.handle = index.Handle{}
	return prior
}
