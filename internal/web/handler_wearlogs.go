package web

import (
	"net/http"

	"github.com/closetd/closetd/internal/domain"
)

func (s *Server) handleListWearLogs(w http.ResponseWriter, r *http.Request) {
	var (
		logs []domain.WearLogEntry
		err  error
	)
	if date := r.URL.Query().Get("date"); date != "" {
		logs, err = s.wardrobe.WearLogsForDate(r.Context(), date)
	} else {
		logs, err = s.wardrobe.ListWearLogs(r.Context())
	}
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if logs == nil {
		logs = []domain.WearLogEntry{}
	}
	s.writeJSON(w, http.StatusOK, logs)
}

func (s *Server) handleCreateWearLog(w http.ResponseWriter, r *http.Request) {
	var entry domain.WearLogEntry
	if err := decodeJSON(r, &entry); err != nil {
		s.writeError(w, r, err)
		return
	}
	created, err := s.wardrobe.CreateWearLog(r.Context(), entry)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateWearLog(w http.ResponseWriter, r *http.Request) {
	var entry domain.WearLogEntry
	if err := decodeJSON(r, &entry); err != nil {
		s.writeError(w, r, err)
		return
	}
	updated, err := s.wardrobe.UpdateWearLog(r.Context(), r.PathValue("id"), entry)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteWearLog(w http.ResponseWriter, r *http.Request) {
	if err := s.wardrobe.DeleteWearLog(r.Context(), r.PathValue("id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
