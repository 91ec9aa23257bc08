// Package links serves share link management and visit analytics for
// owners.
package links

import (
	"fmt"
	"net/http"

	module "github.com/velumsign/velum/internal/services/web/module"
	"github.com/velumsign/velum/internal/services/web/routepath"
)

// Module is the share links feature module.
type Module struct{}

// New creates the links module.
func New() *Module {
	return &Module{}
}

// ID identifies the module in composition errors.
func (*Module) ID() string {
	return "links"
}

// Mount builds the module route handler.
func (m *Module) Mount(deps module.Dependencies) (module.Mount, error) {
	if deps.Store == nil {
		return module.Mount{}, fmt.Errorf("links module requires a store")
	}
	svc := service{store: deps.Store, clock: deps.Now}
	h := handlers{service: svc, deps: deps}
	mux := http.NewServeMux()
	registerRoutes(mux, h)
	return module.Mount{Prefix: routepath.AppLinksPrefix, Handler: mux}, nil
}
