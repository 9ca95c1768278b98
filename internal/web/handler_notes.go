package web

import (
	"net/http"

	"github.com/closetd/closetd/internal/domain"
)

func (s *Server) handleListNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := s.wardrobe.ListNotes(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if notes == nil {
		notes = []domain.Note{}
	}
	s.writeJSON(w, http.StatusOK, notes)
}

func (s *Server) handleCreateNote(w http.ResponseWriter, r *http.Request) {
	var note domain.Note
	if err := decodeJSON(r, &note); err != nil {
		s.writeError(w, r, err)
		return
	}
	created, err := s.wardrobe.CreateNote(r.Context(), note)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleGetNote(w http.ResponseWriter, r *http.Request) {
	note, err := s.wardrobe.GetNote(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, note)
}

func (s *Server) handleUpdateNote(w http.ResponseWriter, r *http.Request) {
	var note domain.Note
	if err := decodeJSON(r, &note); err != nil {
		s.writeError(w, r, err)
		return
	}
	updated, err := s.wardrobe.UpdateNote(r.Context(), r.PathValue("id"), note)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	if err := s.wardrobe.DeleteNote(r.Context(), r.PathValue("id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
