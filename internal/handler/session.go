package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/flavortown/internal/domain"
	"github.com/pkordes/flavortown/internal/service"
)

// SessionResponse is the JSON view of a dashboard session: the dropdown
// values and every row they select.
type SessionResponse struct {
	ID        uuid.UUID        `json:"id"`
	Selection domain.Selection `json:"selection"`
	Columns   []string         `json:"columns"`
	Data      []map[string]any `json:"data"`
	Revision  uint64           `json:"revision"`
}

func (s *Server) sessionResponse(v service.SessionView) SessionResponse {
	sel := v.Snapshot.Selection
	if sel.Regions == nil {
		sel.Regions = []string{}
	}
	if sel.Seasons == nil {
		sel.Seasons = []int{}
	}
	columns := s.dashboard.Columns()
	return SessionResponse{
		ID:        v.ID,
		Selection: sel,
		Columns:   columns,
		Data:      records(columns, v.Snapshot.Rows),
		Revision:  v.Snapshot.Revision,
	}
}

// sessionID parses the {id} path parameter.
func sessionID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid session id", domain.ErrValidation)
	}
	return id, nil
}

// CreateSession handles POST /api/sessions.
func (s *Server) CreateSession(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusCreated, s.sessionResponse(s.sessions.Create()))
}

// GetSession handles GET /api/sessions/{id}.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	v, err := s.sessions.Get(id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.sessionResponse(v))
}

// PutSelection handles PUT /api/sessions/{id}/selection. It is the
// dashboard's table callback: the response carries the recomputed rows.
func (s *Server) PutSelection(w http.ResponseWriter, r *http.Request) {
	id, err := sessionID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	sel, err := decodeSelection(r.Body)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	v, err := s.sessions.Select(id, sel)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, s.sessionResponse(v))
}

// decodeSelection reads a {"regions":[...],"seasons":[...]} body.
// A body over the size limit keeps its *http.MaxBytesError so it maps to 413.
func decodeSelection(body io.Reader) (domain.Selection, error) {
	var sel domain.Selection
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&sel); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			return domain.Selection{}, err
		case errors.Is(err, io.EOF):
			return domain.Selection{}, fmt.Errorf("%w: request body is required", domain.ErrValidation)
		default:
			return domain.Selection{}, fmt.Errorf("%w: invalid request body: %v", domain.ErrValidation, err)
		}
	}
	return sel, nil
}
