package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ziadkadry99/oopconcepts/internal/registry"
	"github.com/ziadkadry99/oopconcepts/internal/search"
	"github.com/ziadkadry99/oopconcepts/internal/session"
	"github.com/ziadkadry99/oopconcepts/internal/site"
)

// Config holds server configuration.
type Config struct {
	Port     int
	AllowAll bool // allow all CORS origins (dev mode)
}

// Server is the live site: rendered pages, the JSON API and the demo
// websocket.
type Server struct {
	cfg        Config
	holder     *registry.Holder
	renderer   *site.Renderer
	index      *search.Index
	hub        *session.Hub
	router     chi.Router
	httpServer *http.Server
}

// New creates a server. index may be nil, in which case search is not
// mounted.
func New(cfg Config, h *registry.Holder, rd *site.Renderer, index *search.Index, hub *session.Hub) *Server {
	s := &Server{
		cfg:      cfg,
		holder:   h,
		renderer: rd,
		index:    index,
		hub:      hub,
	}

	s.router = s.buildRouter()
	return s
}

// buildRouter creates and configures the chi router with all routes.
func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS
	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	// The websocket outlives any request timeout.
	if s.hub != nil {
		s.hub.RegisterRoutes(r)
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(60 * time.Second))

		r.Get("/healthz", s.healthz)
		registry.RegisterRoutes(r, s.holder)
		if s.index != nil {
			search.RegisterRoutes(r, s.index)
		}
		site.RegisterRoutes(r, s.renderer)
	})

	return r
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	body := map[string]any{
		"status":   "ok",
		"concepts": len(s.holder.Load().Concepts()),
	}
	if s.hub != nil {
		body["sessions"] = s.hub.Count()
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(body)
}

// Router returns the chi router for registering additional routes.
func (s *Server) Router() chi.Router { return s.router }

// Hub returns the websocket session hub.
func (s *Server) Hub() *session.Hub { return s.hub }

// ServerConfig returns the server configuration.
func (s *Server) ServerConfig() Config { return s.cfg }

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Printf("oopconcepts server listening on %s", addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown closes live sessions and gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.hub != nil {
		s.hub.Close()
	}
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}
