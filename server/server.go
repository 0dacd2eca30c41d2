// Package server provides the HTTP API for finchly.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/chrismlittle123/finchly/enrich"
	"github.com/chrismlittle123/finchly/search"
	"github.com/chrismlittle123/finchly/storage"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Config holds HTTP server settings.
type Config struct {
	Host string
	Port int

	// SigningSecret authenticates chat platform webhooks. With an empty
	// secret the events endpoint rejects everything.
	SigningSecret string

	// ChannelID restricts which chat channel's links get saved. Empty
	// means every channel.
	ChannelID string

	// RequestTimeout bounds request handling.
	RequestTimeout time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Host:           "127.0.0.1",
		Port:           8080,
		RequestTimeout: 60 * time.Second,
	}
}

// Server is the HTTP server for the finchly API.
type Server struct {
	repository storage.LinkRepository
	pipeline   *enrich.Pipeline
	searcher   *search.Searcher
	rag        *search.RAG
	config     *Config
	logger     *slog.Logger
	server     *http.Server
}

// NewServer creates a server with the given dependencies.
func NewServer(
	repository storage.LinkRepository,
	pipeline *enrich.Pipeline,
	searcher *search.Searcher,
	rag *search.RAG,
	config *Config,
) *Server {
	if config == nil {
		config = DefaultConfig()
	}

	return &Server{
		repository: repository,
		pipeline:   pipeline,
		searcher:   searcher,
		rag:        rag,
		config:     config,
		logger:     slog.Default().With("component", "server"),
	}
}

// Router builds the chi router with all routes and middleware.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.config.RequestTimeout))

	r.Get("/health", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/links", s.handleListLinks)
		r.Post("/links", s.handleCreateLink)
		r.Get("/links/{id}", s.handleGetLink)
		r.Delete("/links/{id}", s.handleDeleteLink)
		r.Post("/search", s.handleSearch)
		r.Post("/ask", s.handleAsk)
	})

	r.Post("/events", s.handleEvents)

	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.Router(),
	}
	s.logger.Info("starting server", "addr", addr)
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
