package web

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/closetd/closetd/internal/service"
)

// maxImportSize bounds the backup upload; backups carry every image
// inline so they can be large.
const maxImportSize = 500 * 1024 * 1024

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	doc, err := s.backup.Export(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	filename := fmt.Sprintf("wardrobe-backup-%s.json", time.Now().UTC().Format("2006-01-02"))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	s.writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(io.LimitReader(r.Body, maxImportSize))
	if err != nil {
		s.writeError(w, r, fmt.Errorf("failed to read import body: %w", err))
		return
	}

	result, err := s.backup.Import(r.Context(), data)
	if err != nil {
		s.writeError(w, r, fmt.Errorf("%w: %v", service.ErrInvalid, err))
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}
