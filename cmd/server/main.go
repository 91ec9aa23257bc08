// Package main starts the Velum web service.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/velumsign/velum/internal/auth/linktoken"
	"github.com/velumsign/velum/internal/pdf"
	"github.com/velumsign/velum/internal/platform/config"
	"github.com/velumsign/velum/internal/platform/otel"
	web "github.com/velumsign/velum/internal/services/web"
	"github.com/velumsign/velum/internal/storage/sqlite"
	"github.com/velumsign/velum/internal/telemetry"
)

// envConfig holds service configuration loaded from the environment.
type envConfig struct {
	HTTPAddr     string `env:"VELUM_HTTP_ADDR" envDefault:":8080"`
	DBPath       string `env:"VELUM_DB_PATH" envDefault:"velum.db"`
	LinkSecret   string `env:"VELUM_LINK_SECRET,required"`
	SpoolDir     string `env:"VELUM_SPOOL_DIR" envDefault:"spool"`
	DefaultOwner string `env:"VELUM_DEFAULT_OWNER" envDefault:"default"`
}

// ownerHeader carries the acting tenant on owner-facing requests.
const ownerHeader = "X-Velum-Owner"

func main() {
	log.SetPrefix("[VELUM] ")

	var cfg envConfig
	if err := config.ParseEnv(&cfg); err != nil {
		config.Exitf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Setup(ctx, "velum-web")
	if err != nil {
		config.Exitf("setup tracing: %v", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Printf("shutdown tracing: %v", err)
		}
	}()

	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		config.Exitf("open storage: %v", err)
	}
	defer func() { _ = store.Close() }()

	filler, err := pdf.NewSpoolFiller(cfg.SpoolDir)
	if err != nil {
		config.Exitf("open pdf spool: %v", err)
	}

	tokens, err := linktoken.NewMinter(cfg.LinkSecret)
	if err != nil {
		config.Exitf("configure link tokens: %v", err)
	}

	server, err := web.NewServer(web.Config{
		HTTPAddr:       cfg.HTTPAddr,
		Store:          store,
		Filler:         filler,
		Telemetry:      telemetry.NewEmitter(store),
		Tokens:         tokens,
		ResolveOwnerID: resolveOwner(cfg.DefaultOwner),
	})
	if err != nil {
		config.Exitf("configure server: %v", err)
	}
	defer server.Close()

	log.Printf("listening on %s", cfg.HTTPAddr)
	if err := server.ListenAndServe(ctx); err != nil {
		config.Exitf("serve: %v", err)
	}
}

func resolveOwner(fallback string) func(*http.Request) string {
	return func(r *http.Request) string {
		if r == nil {
			return fallback
		}
		if owner := strings.TrimSpace(r.Header.Get(ownerHeader)); owner != "" {
			return owner
		}
		return fallback
	}
}
