// internal/store/memory.go
//
// In-memory registry of live page sessions.
// Sessions are ephemeral by design: nothing here survives a restart, and idle
// sessions are swept once they outlive the configured TTL.
//
// Characteristics:
//   - Stores *session.Session objects keyed by ID in a map.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - ErrNotFound is returned for unknown or swept IDs.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Kurt-jhaive/valentine-puzzle/internal/session"
)

// ErrNotFound is returned by Get for a missing session.
var ErrNotFound = errors.New("session not found")

// Store defines the registry interface for live sessions.
type Store interface {
	// Save adds or replaces a session.
	Save(ctx context.Context, s *session.Session) error

	// Get retrieves a session by ID.
	Get(ctx context.Context, id string) (*session.Session, error)

	// Delete drops a session. Deleting a missing ID is not an error.
	Delete(ctx context.Context, id string) error

	// Sweep drops sessions idle for longer than maxIdle and returns how many it dropped.
	Sweep(ctx context.Context, maxIdle time.Duration) int

	// Len returns the number of live sessions.
	Len() int
}

// memory is an in-memory map-based Store implementation.
type memory struct {
	mu       sync.RWMutex                // guards sessions
	sessions map[string]*session.Session // keyed by Session.ID()
	now      func() time.Time
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return newMemory(time.Now)
}

func newMemory(now func() time.Time) *memory {
	return &memory{sessions: make(map[string]*session.Session), now: now}
}

// Save adds or updates the session in the map.
func (m *memory) Save(ctx context.Context, s *session.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID()] = s
	return nil
}

// Get looks up a session by ID.
func (m *memory) Get(ctx context.Context, id string) (*session.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return nil, ErrNotFound
}

// Delete removes a session by ID.
func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// Sweep removes sessions whose last activity is older than maxIdle.
func (m *memory) Sweep(ctx context.Context, maxIdle time.Duration) int {
	cutoff := m.now().Add(-maxIdle)
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, s := range m.sessions {
		if s.Touched().Before(cutoff) {
			delete(m.sessions, id)
			n++
		}
	}
	return n
}

// Len returns the number of live sessions.
func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Janitor sweeps st every interval until ctx is done.
func Janitor(ctx context.Context, st Store, interval, maxIdle time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := st.Sweep(ctx, maxIdle); n > 0 {
				log.Debug().Int("swept", n).Int("live", st.Len()).Msg("expired sessions")
			}
		}
	}
}
