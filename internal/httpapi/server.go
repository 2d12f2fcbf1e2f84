// Package httpapi serves the JSON API and the live WebSocket channel.
package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/alexanderramin/cinder/internal/logging"
	"github.com/alexanderramin/cinder/internal/notify"
	"github.com/alexanderramin/cinder/internal/service"
)

// Config holds server-specific configuration.
type Config struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// Services are the use cases the API exposes.
type Services struct {
	Users    service.UserService
	Activity service.ActivityService
	Burnout  service.BurnoutService
	Patterns service.PatternService
	Import   service.ImportService
}

type Handler struct {
	svc        Services
	ws         *notify.WSHandler
	logger     *slog.Logger
	windowDays int
}

type HandlerOption func(*Handler)

// WithWindowDays sets the default scoring window for requests without a
// days or timeframe parameter.
func WithWindowDays(days int) HandlerOption {
	return func(h *Handler) {
		if days > 0 {
			h.windowDays = days
		}
	}
}

func NewHandler(svc Services, ws *notify.WSHandler, logger *slog.Logger, opts ...HandlerOption) *Handler {
	h := &Handler{svc: svc, ws: ws, logger: logging.OrNop(logger), windowDays: defaultWindowDays}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// NewRouter mounts every route on a chi router.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(h.logger))
	r.Use(middleware.Recoverer)

	r.Get("/health", h.Health)
	r.Get("/ws/{userID}", h.WebSocket)

	r.Route("/api", func(r chi.Router) {
		r.Post("/users", h.CreateUser)
		r.Get("/users/{id}", h.GetUser)

		r.Group(func(r chi.Router) {
			r.Use(h.requireUser)

			r.Route("/burnout", func(r chi.Router) {
				r.Post("/calculate", h.CalculateBurnout)
				r.Get("/metrics", h.BurnoutMetrics)
				r.Get("/history", h.BurnoutHistory)
				r.Get("/trend", h.BurnoutTrend)
				r.Get("/range", h.BurnoutRange)
			})

			r.Route("/work-sessions", func(r chi.Router) {
				r.Post("/", h.CreateWorkSession)
				r.Get("/", h.ListWorkSessions)
				r.Get("/patterns", h.WorkPatterns)
			})

			r.Post("/meetings", h.CreateMeeting)
			r.Get("/meetings/recent", h.RecentMeetings)

			r.Post("/emails", h.CreateEmail)
			r.Get("/emails/recent", h.RecentEmails)

			r.Post("/journal", h.CreateJournalEntry)
			r.Get("/journal/recent", h.RecentJournalEntries)
			r.Get("/journal/{id}", h.GetJournalEntry)

			r.Post("/import", h.Import)
		})
	})

	return r
}

func NewHTTPServer(cfg Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully within
// shutdownTimeout.
func Run(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration, logger *slog.Logger) error {
	logger = logging.OrNop(logger)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
