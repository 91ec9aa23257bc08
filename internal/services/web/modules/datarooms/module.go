// Package datarooms serves owner data room management: ordered template
// collections shared as a single unit.
package datarooms

import (
	"fmt"
	"net/http"

	module "github.com/velumsign/velum/internal/services/web/module"
	"github.com/velumsign/velum/internal/services/web/routepath"
)

// Module is the data rooms feature module.
type Module struct{}

// New creates the data rooms module.
func New() *Module {
	return &Module{}
}

// ID identifies the module in composition errors.
func (*Module) ID() string {
	return "datarooms"
}

// Mount builds the module route handler.
func (m *Module) Mount(deps module.Dependencies) (module.Mount, error) {
	if deps.Store == nil {
		return module.Mount{}, fmt.Errorf("datarooms module requires a store")
	}
	svc := service{store: deps.Store, clock: deps.Now}
	h := handlers{service: svc, deps: deps}
	mux := http.NewServeMux()
	registerRoutes(mux, h)
	return module.Mount{Prefix: routepath.AppDataRoomsPrefix, Handler: mux}, nil
}
