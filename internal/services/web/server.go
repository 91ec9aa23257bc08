// Package web hosts the browser-facing signing service.
package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/velumsign/velum/internal/auth/linktoken"
	"github.com/velumsign/velum/internal/pdf"
	"github.com/velumsign/velum/internal/platform/timeouts"
	webapp "github.com/velumsign/velum/internal/services/web/app"
	module "github.com/velumsign/velum/internal/services/web/module"
	"github.com/velumsign/velum/internal/services/web/modules"
	"github.com/velumsign/velum/internal/services/web/platform/httpx"
	"github.com/velumsign/velum/internal/storage"
	"github.com/velumsign/velum/internal/telemetry"
)

// Config defines startup inputs for the web service.
type Config struct {
	HTTPAddr       string
	Store          storage.Store
	Filler         pdf.Filler
	Telemetry      *telemetry.Emitter
	Tokens         *linktoken.Minter
	ResolveOwnerID module.ResolveOwnerID
}

// Server hosts the web HTTP surface and lifecycle.
type Server struct {
	httpAddr   string
	httpServer *http.Server
}

// NewHandler builds a root handler from the default module registry.
func NewHandler(cfg Config) (http.Handler, error) {
	deps := module.Dependencies{
		Store:          cfg.Store,
		Filler:         cfg.Filler,
		Telemetry:      cfg.Telemetry,
		Tokens:         cfg.Tokens,
		ResolveOwnerID: cfg.ResolveOwnerID,
	}
	h, err := webapp.Compose(webapp.ComposeInput{
		Dependencies:  deps,
		PublicModules: modules.DefaultPublicModules(),
		AppModules:    modules.DefaultAppModules(),
	})
	if err != nil {
		return nil, err
	}
	return httpx.Chain(h,
		httpx.RecoverPanic(),
		httpx.RequestID(),
		httpx.RequestLogger(),
	), nil
}

// NewServer validates config and constructs a web server.
func NewServer(cfg Config) (*Server, error) {
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	handler, err := NewHandler(cfg)
	if err != nil {
		return nil, fmt.Errorf("compose web handler: %w", err)
	}
	return &Server{
		httpAddr: httpAddr,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
		},
	}, nil
}

// ListenAndServe serves HTTP traffic until context cancellation or server stop.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("web server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown web http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve web http: %w", err)
	}
}

// Close closes open server resources.
func (s *Server) Close() {
	if s == nil || s.httpServer == nil {
		return
	}
	_ = s.httpServer.Close()
}
