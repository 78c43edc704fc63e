package api

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MikeSquared-Agency/backupviewer/internal/loader"
	"github.com/MikeSquared-Agency/backupviewer/internal/store"
)

// Options configures the HTTP surface.
type Options struct {
	Port             int
	AttachmentsDir   string
	AttachmentsMount string
	WebRoot          string
	MaxUploadBytes   int64
}

type Server struct {
	router *chi.Mux
	http   *http.Server
	tmpl   *template.Template
	opts   Options
	store  *store.Store
	loader *loader.Loader
	logger *slog.Logger
}

func NewServer(opts Options, st *store.Store, ld *loader.Loader, logger *slog.Logger) *Server {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 32 << 20
	}
	if opts.WebRoot == "" {
		opts.WebRoot = "/"
	}

	router := chi.NewRouter()
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	s := &Server{
		router: router,
		tmpl:   parseViewerTemplate(opts.WebRoot),
		opts:   opts,
		store:  st,
		loader: ld,
		logger: logger,
	}

	router.Get("/health", s.health)
	router.Get("/api/v1/viewer/status", s.status)

	router.Get("/", s.viewer)
	router.Post("/upload", s.upload)

	router.Route("/api/v1/conversation", func(r chi.Router) {
		r.Get("/", s.getConversation)
		r.Post("/", s.postConversation)
		r.Delete("/", s.deleteConversation)
	})

	if opts.AttachmentsDir != "" && opts.AttachmentsMount != "" {
		router.Handle(opts.AttachmentsMount+"/*", NewAttachmentHandler(opts.AttachmentsDir, opts.AttachmentsMount))
	}

	s.http = &http.Server{
		Addr:              fmt.Sprintf(":%d", opts.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start() error {
	s.logger.Info("API server starting", "addr", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) status(w http.ResponseWriter, r *http.Request) {
	body := map[string]any{
		"agent":  "backupviewer",
		"loaded": false,
	}
	if snap, ok := s.store.Current(); ok {
		body["loaded"] = true
		body["conversation_id"] = snap.ID.String()
		body["source"] = snap.Source
		body["message_count"] = len(snap.Conversation.Messages)
	}
	writeJSON(w, http.StatusOK, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
