// Package server exposes the house price widget over HTTP: one widget per
// browser session, rendered server-side by the vanilla renderer.
package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	rendertemplate "github.com/goliatone/go-houseprice/pkg/render/template"
	"github.com/goliatone/go-houseprice/pkg/render/template/gotemplate"
	"github.com/goliatone/go-houseprice/pkg/renderers/vanilla"
)

//go:embed templates/*.tmpl
var pageTemplates embed.FS

const (
	// SessionCookie carries the session id.
	SessionCookie = "houseprice_session"
	// AssetsPrefix is where the widget stylesheet is served.
	AssetsPrefix = "/assets/"
	// FieldsPrefix receives per-field updates.
	FieldsPrefix = "/fields/"
)

// Config holds the HTTP server settings.
type Config struct {
	Addr         string
	Sessions     int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DefaultConfig returns the settings used by `houseprice serve`.
func DefaultConfig() Config {
	return Config{
		Addr:         ":8080",
		Sessions:     1024,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Server is the HTTP front end.
type Server struct {
	server   *http.Server
	config   Config
	sessions *Sessions
	pages    rendertemplate.TemplateRenderer
	logger   *zap.Logger
}

// New builds a server whose sessions are created by factory.
func New(cfg Config, factory WidgetFactory, options ...Option) (*Server, error) {
	defaults := DefaultConfig()
	if cfg.Addr == "" {
		cfg.Addr = defaults.Addr
	}
	if cfg.Sessions <= 0 {
		cfg.Sessions = defaults.Sessions
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = defaults.ReadTimeout
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = defaults.WriteTimeout
	}
	if cfg.IdleTimeout <= 0 {
		cfg.IdleTimeout = defaults.IdleTimeout
	}

	s := &Server{config: cfg, logger: zap.NewNop()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}

	sessions, err := NewSessions(cfg.Sessions, factory, s.logger)
	if err != nil {
		return nil, err
	}
	s.sessions = sessions

	pages, err := gotemplate.New(
		gotemplate.WithFS(pageTemplates),
		gotemplate.WithExtension(".tmpl"),
	)
	if err != nil {
		return nil, fmt.Errorf("server: page templates: %w", err)
	}
	s.pages = pages

	chain := Chain(
		Recovery(s.logger),
		RequestLogger(s.logger),
		SecurityHeaders,
	)

	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      chain(s.routes()),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return s, nil
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleForm)
	mux.HandleFunc("POST /{$}", s.handleSubmit)
	mux.HandleFunc("POST "+FieldsPrefix+"{name}", s.handleField)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("GET "+AssetsPrefix, http.StripPrefix(AssetsPrefix, http.FileServerFS(vanilla.AssetsFS())))
	return mux
}

// Handler exposes the full middleware-wrapped handler.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start listens until Stop is called.
func (s *Server) Start() error {
	s.logger.Info("starting http server", zap.String("addr", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server: listen: %w", err)
	}
	return nil
}

// Stop shuts the server down, waiting for in-flight requests until ctx ends.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	return nil
}

// Addr reports the configured listen address.
func (s *Server) Addr() string {
	return s.server.Addr
}
