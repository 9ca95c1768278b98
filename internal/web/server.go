// Package web exposes the wardrobe as a JSON API.
package web

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/closetd/closetd/internal/backup"
	"github.com/closetd/closetd/internal/service"
)

type Server struct {
	wardrobe *service.WardrobeService
	chat     *service.ChatService
	backup   *backup.Service
	mux      *http.ServeMux
	logger   *slog.Logger
}

func NewServer(wardrobe *service.WardrobeService, chat *service.ChatService, bk *backup.Service, logger *slog.Logger) *Server {
	s := &Server{
		wardrobe: wardrobe,
		chat:     chat,
		backup:   bk,
		mux:      http.NewServeMux(),
		logger:   logger,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /api/items", s.handleListItems)
	s.mux.HandleFunc("POST /api/items", s.handleCreateItem)
	s.mux.HandleFunc("GET /api/items/{id}", s.handleGetItem)
	s.mux.HandleFunc("PUT /api/items/{id}", s.handleUpdateItem)
	s.mux.HandleFunc("DELETE /api/items/{id}", s.handleDeleteItem)
	s.mux.HandleFunc("GET /api/items/{id}/image", s.handleItemImage)
	s.mux.HandleFunc("GET /api/items/{id}/thumbnail", s.handleItemThumbnail)
	s.mux.HandleFunc("POST /api/items/{id}/image", s.handleReplaceItemImage)
	s.mux.HandleFunc("POST /api/items/assign", s.handleAssignItems)

	s.mux.HandleFunc("GET /api/outfits", s.handleListOutfits)
	s.mux.HandleFunc("POST /api/outfits", s.handleCreateOutfit)
	s.mux.HandleFunc("GET /api/outfits/{id}", s.handleGetOutfit)
	s.mux.HandleFunc("PUT /api/outfits/{id}", s.handleUpdateOutfit)
	s.mux.HandleFunc("DELETE /api/outfits/{id}", s.handleDeleteOutfit)

	s.mux.HandleFunc("GET /api/wear-logs", s.handleListWearLogs)
	s.mux.HandleFunc("POST /api/wear-logs", s.handleCreateWearLog)
	s.mux.HandleFunc("PUT /api/wear-logs/{id}", s.handleUpdateWearLog)
	s.mux.HandleFunc("DELETE /api/wear-logs/{id}", s.handleDeleteWearLog)

	s.mux.HandleFunc("GET /api/notes", s.handleListNotes)
	s.mux.HandleFunc("POST /api/notes", s.handleCreateNote)
	s.mux.HandleFunc("GET /api/notes/{id}", s.handleGetNote)
	s.mux.HandleFunc("PUT /api/notes/{id}", s.handleUpdateNote)
	s.mux.HandleFunc("DELETE /api/notes/{id}", s.handleDeleteNote)

	s.mux.HandleFunc("GET /api/spaces", s.handleListSpaces)
	s.mux.HandleFunc("POST /api/spaces", s.handleCreateSpace)
	s.mux.HandleFunc("GET /api/spaces/{id}", s.handleGetSpace)
	s.mux.HandleFunc("PUT /api/spaces/{id}", s.handleUpdateSpace)
	s.mux.HandleFunc("DELETE /api/spaces/{id}", s.handleDeleteSpace)
	s.mux.HandleFunc("GET /api/spaces/{id}/stats", s.handleSpaceStats)

	s.mux.HandleFunc("GET /api/events", s.handleListEvents)
	s.mux.HandleFunc("POST /api/events", s.handleCreateEvent)
	s.mux.HandleFunc("GET /api/events/{id}", s.handleGetEvent)
	s.mux.HandleFunc("PUT /api/events/{id}", s.handleUpdateEvent)
	s.mux.HandleFunc("DELETE /api/events/{id}", s.handleDeleteEvent)

	s.mux.HandleFunc("GET /api/suggestions", s.handleSuggestions)
	s.mux.HandleFunc("GET /api/stats", s.handleStats)

	s.mux.HandleFunc("GET /api/export", s.handleExport)
	s.mux.HandleFunc("POST /api/import", s.handleImport)

	s.mux.HandleFunc("GET /api/conversations", s.handleListConversations)
	s.mux.HandleFunc("POST /api/conversations", s.handleCreateConversation)
	s.mux.HandleFunc("GET /api/conversations/{id}", s.handleGetConversation)
	s.mux.HandleFunc("DELETE /api/conversations/{id}", s.handleDeleteConversation)
	s.mux.HandleFunc("POST /api/conversations/{id}/messages", s.handleSendMessage)
	s.mux.HandleFunc("GET /api/assistant/status", s.handleAssistantStatus)
}

// securityHeaders adds defensive HTTP response headers to every response.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy", "default-src 'none'; img-src 'self' data:")
		next.ServeHTTP(w, r)
	})
}

// statusRecorder wraps http.ResponseWriter to capture the written status code.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestLogger(s.logger, securityHeaders(s.mux)).ServeHTTP(w, r)
}

func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("starting server", "addr", addr)
	srv := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	return srv.ListenAndServe()
}
