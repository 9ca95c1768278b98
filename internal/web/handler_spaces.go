package web

import (
	"net/http"

	"github.com/closetd/closetd/internal/domain"
)

func (s *Server) handleListSpaces(w http.ResponseWriter, r *http.Request) {
	spaces, err := s.wardrobe.ListStorageSpaces(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if spaces == nil {
		spaces = []domain.StorageSpace{}
	}
	s.writeJSON(w, http.StatusOK, spaces)
}

func (s *Server) handleCreateSpace(w http.ResponseWriter, r *http.Request) {
	var space domain.StorageSpace
	if err := decodeJSON(r, &space); err != nil {
		s.writeError(w, r, err)
		return
	}
	created, err := s.wardrobe.CreateStorageSpace(r.Context(), space)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleGetSpace(w http.ResponseWriter, r *http.Request) {
	space, err := s.wardrobe.GetStorageSpace(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, space)
}

func (s *Server) handleUpdateSpace(w http.ResponseWriter, r *http.Request) {
	var space domain.StorageSpace
	if err := decodeJSON(r, &space); err != nil {
		s.writeError(w, r, err)
		return
	}
	updated, err := s.wardrobe.UpdateStorageSpace(r.Context(), r.PathValue("id"), space)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteSpace(w http.ResponseWriter, r *http.Request) {
	if err := s.wardrobe.DeleteStorageSpace(r.Context(), r.PathValue("id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSpaceStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.wardrobe.SpaceStats(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, stats)
}
