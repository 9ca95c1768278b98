package web

import (
	"net/http"

	"github.com/closetd/closetd/internal/domain"
)

func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	var (
		events []domain.PlannedEvent
		err    error
	)
	if date := r.URL.Query().Get("date"); date != "" {
		events, err = s.wardrobe.EventsForDate(r.Context(), date)
	} else {
		events, err = s.wardrobe.ListEvents(r.Context())
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if events == nil {
		events = []domain.PlannedEvent{}
	}
	s.writeJSON(w, http.StatusOK, events)
}

func (s *Server) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	var event domain.PlannedEvent
	if err := decodeJSON(r, &event); err != nil {
		s.writeError(w, r, err)
		return
	}
	created, err := s.wardrobe.CreateEvent(r.Context(), event)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleGetEvent(w http.ResponseWriter, r *http.Request) {
	event, err := s.wardrobe.GetEvent(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, event)
}

func (s *Server) handleUpdateEvent(w http.ResponseWriter, r *http.Request) {
	var event domain.PlannedEvent
	if err := decodeJSON(r, &event); err != nil {
		s.writeError(w, r, err)
		return
	}
	updated, err := s.wardrobe.UpdateEvent(r.Context(), r.PathValue("id"), event)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	if err := s.wardrobe.DeleteEvent(r.Context(), r.PathValue("id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
