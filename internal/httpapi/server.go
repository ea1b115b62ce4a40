package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/rs/cors"
)

type Server struct {
	server  *http.Server
	handler http.Handler
	logger  *slog.Logger
}

type ServerOption func(*serverConfig)

type serverConfig struct {
	addr    string
	origins []string
	logger  *slog.Logger
	metrics *Metrics
}

func WithAddr(addr string) ServerOption {
	return func(c *serverConfig) {
		if addr != "" {
			c.addr = addr
		}
	}
}

func WithAllowedOrigins(origins ...string) ServerOption {
	return func(c *serverConfig) {
		c.origins = origins
	}
}

func WithServerLogger(logger *slog.Logger) ServerOption {
	return func(c *serverConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func WithMetrics(metrics *Metrics) ServerOption {
	return func(c *serverConfig) {
		if metrics != nil {
			c.metrics = metrics
		}
	}
}

func NewServer(controllers []Controller, opts ...ServerOption) *Server {
	cfg := serverConfig{addr: ":8080", origins: []string{"*"}}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	if cfg.metrics == nil {
		cfg.metrics = NewMetrics()
	}

	router := http.NewServeMux()
	router.Handle("GET /healthz", getHealthz())
	router.Handle("GET /metrics", cfg.metrics.Handler())
	for _, controller := range controllers {
		controller.AddRoutes(router)
	}

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.origins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
		},
		ExposedHeaders: []string{
			"Content-Disposition",
		},
		AllowCredentials: false,
		MaxAge:           300,
	})

	handler := c.Handler(cfg.metrics.Middleware(router))
	return &Server{
		server: &http.Server{
			Addr:              cfg.addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		handler: handler,
		logger:  cfg.logger,
	}
}

func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) Addr() string {
	return s.server.Addr
}

// Run blocks until the server stops. A clean Shutdown returns nil.
func (s *Server) Run() error {
	s.logger.Info("http server listening", slog.String("addr", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func getHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ReplyJSONResponse(w, http.StatusOK, map[string]string{"status": "success"})
	}
}
