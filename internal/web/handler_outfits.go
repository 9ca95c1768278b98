package web

import (
	"net/http"

	"github.com/closetd/closetd/internal/domain"
)

func (s *Server) handleListOutfits(w http.ResponseWriter, r *http.Request) {
	outfits, err := s.wardrobe.ListOutfits(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if outfits == nil {
		outfits = []domain.Outfit{}
	}
	s.writeJSON(w, http.StatusOK, outfits)
}

func (s *Server) handleCreateOutfit(w http.ResponseWriter, r *http.Request) {
	var outfit domain.Outfit
	if err := decodeJSON(r, &outfit); err != nil {
		s.writeError(w, r, err)
		return
	}
	created, err := s.wardrobe.CreateOutfit(r.Context(), outfit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleGetOutfit(w http.ResponseWriter, r *http.Request) {
	outfit, err := s.wardrobe.GetOutfit(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, outfit)
}

func (s *Server) handleUpdateOutfit(w http.ResponseWriter, r *http.Request) {
	var outfit domain.Outfit
	if err := decodeJSON(r, &outfit); err != nil {
		s.writeError(w, r, err)
		return
	}
	updated, err := s.wardrobe.UpdateOutfit(r.Context(), r.PathValue("id"), outfit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteOutfit(w http.ResponseWriter, r *http.Request) {
	if err := s.wardrobe.DeleteOutfit(r.Context(), r.PathValue("id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
