// Copyright (c) 2026 Vocaboard. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the composition root of the HTTP transport (chi router).
  - Only this package and cmd/web import net/http server primitives.
  - Protected areas are gated here, from the one area table in [access.Areas].
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/vocaboard/internal/access"
	"github.com/taibuivan/vocaboard/internal/cms"
	"github.com/taibuivan/vocaboard/internal/dashboard"
	"github.com/taibuivan/vocaboard/internal/generate"
	"github.com/taibuivan/vocaboard/internal/learning/bookmark"
	"github.com/taibuivan/vocaboard/internal/learning/category"
	"github.com/taibuivan/vocaboard/internal/learning/exercise"
	"github.com/taibuivan/vocaboard/internal/learning/roadmap"
	"github.com/taibuivan/vocaboard/internal/learning/topic"
	"github.com/taibuivan/vocaboard/internal/platform/config"
	"github.com/taibuivan/vocaboard/internal/platform/constants"
	"github.com/taibuivan/vocaboard/internal/platform/ctxutil"
	"github.com/taibuivan/vocaboard/internal/platform/middleware"
	"github.com/taibuivan/vocaboard/internal/platform/respond"
	"github.com/taibuivan/vocaboard/internal/platform/sec"
	"github.com/taibuivan/vocaboard/internal/users/member"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
type Handlers struct {
	// Liveness is the /health handler; it returns 200 while the process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler; it returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Roles gates the protected areas.
	Roles access.RoleSource

	// Access performs the role redirect behind /dashboard.
	Access *access.Handler

	Category *category.Handler
	Roadmap  *roadmap.Handler
	Topic    *topic.Handler
	Exercise *exercise.Handler
	Bookmark *bookmark.Handler
	Member   *member.Handler
	Generate *generate.Handler
	Content  *cms.Handler
	Board    *dashboard.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(ctx context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(middleware.PanicRecovery(log))
	r.Use(chimw.CleanPath)
	r.Use(middleware.RateLimit(ctx))
	r.Use(middleware.CORS(cfg))
	r.Use(middleware.Authenticate(verifier))

	// # Infrastructure Endpoints
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Pages
	r.Group(func(pages chi.Router) {
		pages.Use(chimw.Timeout(constants.GlobalRequestTimeout))

		pages.Get(constants.HomePath, areaPage("home"))
		pages.Get(constants.DashboardPath, h.Access.Dashboard)

		routes := h.Roles.Routes()
		for _, area := range access.Areas() {
			path := routes.Destination(sec.Role(area.Name))
			if path == constants.HomePath {
				continue
			}

			gate := access.NewGate(h.Roles, area.Allowed...)
			page := areaPage(area.Name)

			pages.With(gate.Handler).Get(path, page)
			pages.With(gate.Handler).Get(path+"/*", page)
		}
	})

	// # Application API
	r.Route("/api/v1", func(api chi.Router) {
		api.Use(middleware.RequireAuth)

		api.Group(func(standard chi.Router) {
			standard.Use(chimw.Timeout(constants.GlobalRequestTimeout))

			standard.Route("/categories", h.Category.RegisterRoutes)
			standard.Route("/roadmaps", h.Roadmap.RegisterRoutes)
			standard.Route("/topics", h.Topic.RegisterRoutes)
			standard.Route("/exercise-results", h.Exercise.RegisterRoutes)
			standard.Route("/bookmarks", h.Bookmark.RegisterRoutes)
			standard.Route("/content", h.Content.RegisterRoutes)
			standard.Route("/board", h.Board.RegisterRoutes)
			standard.Group(h.Member.RegisterRoutes)
		})

		// Generation waits on a slow upstream
		api.With(chimw.Timeout(constants.GenerateRequestTimeout)).Route("/generate", h.Generate.RegisterRoutes)
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// areaPage answers for a protected area once its gate has allowed the request.
// Page composition belongs to the front-end; the portal reports the area and
// the role the gate resolved.
func areaPage(name string) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		role, _ := ctxutil.GetRole(request.Context())
		respond.OK(writer, map[string]string{
			"area":              name,
			constants.FieldRole: role.String(),
			"path":              request.URL.Path,
		})
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
