// Package api exposes the journal over HTTP: Fiber routing, JWT auth
// middleware, rate limiting and the JSON request/response shapes.
package api

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/lajournal/lajournal/internal/services/auth"
	"github.com/lajournal/lajournal/internal/services/entry"
	"github.com/lajournal/lajournal/internal/services/label"
	"github.com/lajournal/lajournal/internal/services/stats"
)

// Server wires the services into a Fiber application.
type Server struct {
	app     *fiber.App
	entries entry.Service
	labels  label.Service
	stats   stats.Service
	auth    auth.Service
}

// Options configures the HTTP server.
type Options struct {
	// RateLimitPerMinute caps requests per client IP. Zero disables
	// the limiter, which tests rely on.
	RateLimitPerMinute int
}

// NewServer builds the Fiber application with all routes registered.
func NewServer(entries entry.Service, labels label.Service, statsSvc stats.Service, authSvc auth.Service, opts Options) *Server {
	s := &Server{
		entries: entries,
		labels:  labels,
		stats:   statsSvc,
		auth:    authSvc,
	}

	s.app = fiber.New(fiber.Config{
		ErrorHandler: errorHandler,
	})

	s.app.Use(recover.New())
	s.app.Use(logger.New())
	if opts.RateLimitPerMinute > 0 {
		s.app.Use(rateLimiter(opts.RateLimitPerMinute))
	}

	s.registerRoutes()
	return s
}

// errorHandler turns service errors into JSON responses. Fiber errors
// keep their code; everything else goes through the sentinel mapping.
func errorHandler(c *fiber.Ctx, err error) error {
	code := statusForError(err)

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}

	if code == fiber.StatusInternalServerError {
		slog.Error("request failed", "method", c.Method(), "path", c.Path(), "error", err)
		return c.Status(code).JSON(fiber.Map{"error": "internal server error"})
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}

func (s *Server) registerRoutes() {
	s.app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	api := s.app.Group("/api")

	api.Post("/auth/register", s.handleRegister)
	api.Post("/token/pair", s.handleTokenPair)
	api.Post("/token/refresh-tokens", s.handleTokenRefresh)
	api.Post("/token/invalidate", s.handleTokenInvalidate)

	protected := api.Group("", s.requireAuth)
	protected.Get("/me", s.handleMe)
	protected.Put("/change-password", s.handleChangePassword)

	entries := protected.Group("/entries")
	entries.Get("", s.handleListEntries)
	entries.Post("", s.handleCreateEntry)
	// Fixed paths before the :id wildcard.
	entries.Get("/stats", s.handleStats)
	entries.Get("/timeline", s.handleTimeline)
	entries.Get("/search", s.handleSearch)
	entries.Get("/:id", s.handleGetEntry)
	entries.Put("/:id", s.handleUpdateEntry)
	entries.Delete("/:id", s.handleDeleteEntry)
	entries.Post("/:id/toggle_bookmark", s.handleToggleBookmark)
	entries.Post("/:id/assign_label", s.handleAssignLabel)
	entries.Post("/:id/remove_label", s.handleRemoveLabel)

	labels := protected.Group("/labels")
	labels.Get("", s.handleListLabels)
	labels.Post("", s.handleCreateLabel)
	labels.Get("/:id", s.handleGetLabel)
	labels.Put("/:id", s.handleUpdateLabel)
	labels.Delete("/:id", s.handleDeleteLabel)
	labels.Get("/:id/paragraphs", s.handleLabelParagraphs)
}

// Listen starts serving on the given address and blocks.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown gracefully drains in-flight requests.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// App exposes the underlying Fiber app for tests.
func (s *Server) App() *fiber.App {
	return s.app
}
