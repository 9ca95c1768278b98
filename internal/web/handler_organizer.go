package web

import (
	"net/http"

	"github.com/closetd/closetd/internal/organizer"
)

func (s *Server) handleSuggestions(w http.ResponseWriter, r *http.Request) {
	suggestions, err := s.wardrobe.Suggestions(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if suggestions == nil {
		suggestions = []organizer.Suggestion{}
	}
	s.writeJSON(w, http.StatusOK, suggestions)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.wardrobe.Stats(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, stats)
}
