package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dgallion1/docform/internal/config"
	"github.com/dgallion1/docform/internal/doctree"
	"github.com/dgallion1/docform/internal/memo"
	"github.com/dgallion1/docform/internal/metrics"
	"github.com/dgallion1/docform/internal/pathstore"
	"github.com/dgallion1/docform/internal/pipeline"
	"github.com/dgallion1/docform/internal/render"
)

// Structurer is the memoized structuring engine.
type Structurer interface {
	Structure(raw doctree.Raw) *doctree.Document
	Stats() memo.Stats
}

// LatencySource reports structuring latency.
type LatencySource interface {
	Snapshot() metrics.Snapshot
}

// Ingester queues upload jobs.
type Ingester interface {
	Submit(job *pipeline.Job) error
	GetJob(id string) *pipeline.Job
	QueueDepth() int
}

// DocumentStore reads and removes stored documents.
type DocumentStore interface {
	GetContent(ctx context.Context, docID string) (*pathstore.Content, error)
	DeleteDocument(ctx context.Context, docID string) error
}

// Server is the HTTP API server for docform.
type Server struct {
	router     chi.Router
	structurer Structurer
	latency    LatencySource
	ingester   Ingester
	docs       DocumentStore
	html       *render.HTMLRenderer
	log        *slog.Logger
	cfg        config.Config
}

// NewServer creates and configures the HTTP server.
func NewServer(structurer Structurer, latency LatencySource, ingester Ingester, docs DocumentStore, log *slog.Logger, cfg config.Config) *Server {
	s := &Server{
		structurer: structurer,
		latency:    latency,
		ingester:   ingester,
		docs:       docs,
		html:       render.NewHTMLRenderer(),
		log:        log,
		cfg:        cfg,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	// Public endpoints.
	r.Get("/health", s.handleHealth)

	// Authenticated endpoints.
	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(s.cfg.DocformAPIKey, s.log))

		r.Post("/api/structure", s.handleStructure)
		r.Post("/api/structure/render", s.handleStructureRender)
		r.Get("/api/stats/structure", s.handleStructureStats)

		r.Post("/api/ingest", s.handleIngest)
		r.Get("/api/ingest/{jobID}/status", s.handleIngestStatus)

		r.Get("/api/documents/{docID}/structured", s.handleGetStructured)
		r.Delete("/api/documents/{docID}", s.handleDeleteDocument)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
