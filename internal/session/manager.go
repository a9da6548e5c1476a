// Package session keeps one table binding per open dashboard page.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/flavortown/internal/binding"
	"github.com/pkordes/flavortown/internal/domain"
)

// Session is one dashboard page's binding plus its identifier.
type Session struct {
	ID      uuid.UUID
	Binding *binding.Binding

	lastSeen time.Time
}

// Manager creates, looks up, and expires sessions. It is safe for
// concurrent use; each session's binding serializes its own updates.
type Manager struct {
	universe []domain.FeatureRow
	initial  domain.Selection
	ttl      time.Duration
	log      *slog.Logger
	now      func() time.Time

	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock replaces time.Now. Tests use it to drive expiry.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithLogger sets the logger used for session lifecycle events.
func WithLogger(l *slog.Logger) Option {
	return func(m *Manager) { m.log = l }
}

// NewManager returns a Manager whose sessions filter universe and start at
// initial. Sessions idle for longer than ttl are removed by Sweep.
func NewManager(universe []domain.FeatureRow, initial domain.Selection, ttl time.Duration, opts ...Option) *Manager {
	m := &Manager{
		universe: universe,
		initial:  initial.Clone(),
		ttl:      ttl,
		log:      slog.Default(),
		now:      time.Now,
		sessions: make(map[uuid.UUID]*Session),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Create starts a new session at the initial selection.
func (m *Manager) Create() *Session {
	id := uuid.New()
	publish := binding.SinkFunc(func(sel domain.Selection, rows []domain.FeatureRow) {
		m.log.Debug("table published", "session_id", id, "regions", sel.Regions, "seasons", sel.Seasons, "rows", len(rows))
	})
	s := &Session{
		ID:      id,
		Binding: binding.New(m.universe, m.initial, binding.WithSink(publish)),
	}

	m.mu.Lock()
	s.lastSeen = m.now()
	m.sessions[s.ID] = s
	n := len(m.sessions)
	m.mu.Unlock()

	m.log.Debug("session created", "session_id", s.ID, "active", n)
	return s
}

// Get returns the session with the given id and marks it as used.
// Returns domain.ErrNotFound if the session does not exist or has expired.
func (m *Manager) Get(id uuid.UUID) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session.Manager.Get: %w", domain.ErrNotFound)
	}
	s.lastSeen = m.now()
	return s, nil
}

// Update applies sel to the session's binding and returns the result.
func (m *Manager) Update(id uuid.UUID, sel domain.Selection) (binding.Snapshot, error) {
	s, err := m.Get(id)
	if err != nil {
		return binding.Snapshot{}, fmt.Errorf("session.Manager.Update: %w", err)
	}
	return s.Binding.SetSelection(sel), nil
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Sweep removes every session idle for longer than the TTL and returns how
// many were removed.
func (m *Manager) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.now().Add(-m.ttl)
	removed := 0
	for id, s := range m.sessions {
		if s.lastSeen.Before(cutoff) {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

// Run sweeps expired sessions every interval until ctx is cancelled.
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.Sweep(); n > 0 {
				m.log.Info("expired idle sessions", "removed", n, "active", m.Len())
			}
		}
	}
}
