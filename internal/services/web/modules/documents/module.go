// Package documents serves signing request and template management for
// owners: creation, progress tracking, and final document population.
package documents

import (
	"fmt"
	"net/http"

	module "github.com/velumsign/velum/internal/services/web/module"
	"github.com/velumsign/velum/internal/services/web/routepath"
)

// Module is the documents feature module.
type Module struct{}

// New creates the documents module.
func New() *Module {
	return &Module{}
}

// ID identifies the module in composition errors.
func (*Module) ID() string {
	return "documents"
}

// Mount builds the module route handler.
func (m *Module) Mount(deps module.Dependencies) (module.Mount, error) {
	if deps.Store == nil {
		return module.Mount{}, fmt.Errorf("documents module requires a store")
	}
	svc := service{
		store:     deps.Store,
		filler:    deps.Filler,
		telemetry: deps.Telemetry,
		clock:     deps.Now,
	}
	h := handlers{service: svc, deps: deps}
	mux := http.NewServeMux()
	registerRoutes(mux, h)
	return module.Mount{Prefix: routepath.AppDocumentsPrefix, Handler: mux}, nil
}
