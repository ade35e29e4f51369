// Package api serves persisted wet-weather standings over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/rainline/internal/health"
	"github.com/yourusername/rainline/internal/metrics"
	"github.com/yourusername/rainline/internal/models"
)

// StandingsReader is the read side the handlers need
type StandingsReader interface {
	GetSeasonAnalysis(ctx context.Context, year int) (*models.SeasonStandings, error)
	GetDriverCareer(ctx context.Context, code string) (*models.DriverCareer, error)
	ListDrivers(ctx context.Context) ([]string, error)
	Season(ctx context.Context, year int) ([]models.Event, error)
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Addr           string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	RequestTimeout time.Duration
	MetricsEnabled bool
	MetricsPath    string
}

// DefaultServerConfig returns default server configuration
func DefaultServerConfig(addr string) ServerConfig {
	return ServerConfig{
		Addr:           addr,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   30 * time.Second,
		IdleTimeout:    60 * time.Second,
		RequestTimeout: 20 * time.Second,
		MetricsPath:    "/metrics",
	}
}

// Server is the HTTP API server
type Server struct {
	router   *mux.Router
	server   *http.Server
	handlers *handlers
	checker  *health.Checker
	config   ServerConfig
	logger   *logrus.Logger
}

// NewServer creates a new API server. checker may be nil.
func NewServer(cfg ServerConfig, reader StandingsReader, checker *health.Checker, logger *logrus.Logger) *Server {
	if logger == nil {
		logger = logrus.New()
	}
	if cfg.MetricsPath == "" {
		cfg.MetricsPath = "/metrics"
	}

	s := &Server{
		router:   mux.NewRouter(),
		handlers: &handlers{reader: reader, logger: logger},
		checker:  checker,
		config:   cfg,
		logger:   logger,
	}
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(s.requestIDMiddleware)
	s.router.Use(s.requestLoggingMiddleware)
	s.router.Use(s.timeoutMiddleware)
	s.router.Use(s.corsMiddleware)

	if s.checker != nil {
		s.checker.Register(s.router)
	}
	if s.config.MetricsEnabled {
		s.router.Handle(s.config.MetricsPath, metrics.Handler()).Methods(http.MethodGet)
	}

	season := s.router.PathPrefix("/api/season").Subrouter()
	season.Use(jsonContentTypeMiddleware)
	season.HandleFunc("", s.handlers.listDrivers).Methods(http.MethodGet, http.MethodOptions)
	season.HandleFunc("/", s.handlers.listDrivers).Methods(http.MethodGet, http.MethodOptions)
	season.HandleFunc("/driver/{code}", s.handlers.driverCareer).Methods(http.MethodGet, http.MethodOptions)
	season.HandleFunc("/{year:[0-9]+}", s.handlers.seasonAnalysis).Methods(http.MethodGet, http.MethodOptions)
	season.HandleFunc("/{year:[0-9]+}/schedule", s.handlers.seasonSchedule).Methods(http.MethodGet, http.MethodOptions)

	s.router.NotFoundHandler = http.HandlerFunc(notFound)
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until Shutdown is called
func (s *Server) Start() error {
	s.logger.WithField("addr", s.config.Addr).Info("Starting API server")
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down API server")
	return s.server.Shutdown(ctx)
}
