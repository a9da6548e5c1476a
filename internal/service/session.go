package service

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/flavortown/internal/binding"
	"github.com/pkordes/flavortown/internal/domain"
	"github.com/pkordes/flavortown/internal/session"
)

// SessionView is what a caller sees of a dashboard session.
type SessionView struct {
	ID       uuid.UUID
	Snapshot binding.Snapshot
}

// SessionService exposes dashboard sessions to the HTTP layer.
type SessionService struct {
	sessions *session.Manager
}

// NewSessionService constructs a SessionService backed by m.
func NewSessionService(m *session.Manager) *SessionService {
	return &SessionService{sessions: m}
}

// Create opens a session at the default selection.
func (s *SessionService) Create() SessionView {
	sess := s.sessions.Create()
	return SessionView{ID: sess.ID, Snapshot: sess.Binding.Snapshot()}
}

// Get returns the current state of a session.
func (s *SessionService) Get(id uuid.UUID) (SessionView, error) {
	sess, err := s.sessions.Get(id)
	if err != nil {
		return SessionView{}, fmt.Errorf("service.SessionService.Get: %w", err)
	}
	return SessionView{ID: sess.ID, Snapshot: sess.Binding.Snapshot()}, nil
}

// Select applies new dropdown values to a session. This is the dashboard's
// reactive callback: the table rows in the returned view are the only rows
// the page may show for this session.
func (s *SessionService) Select(id uuid.UUID, sel domain.Selection) (SessionView, error) {
	snap, err := s.sessions.Update(id, sel)
	if err != nil {
		return SessionView{}, fmt.Errorf("service.SessionService.Select: %w", err)
	}
	return SessionView{ID: id, Snapshot: snap}, nil
}
