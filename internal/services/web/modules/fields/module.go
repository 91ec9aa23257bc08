// Package fields serves owner-defined reusable custom field definitions.
package fields

import (
	"fmt"
	"net/http"

	module "github.com/velumsign/velum/internal/services/web/module"
	"github.com/velumsign/velum/internal/services/web/routepath"
)

// Module is the custom fields feature module.
type Module struct{}

// New creates the fields module.
func New() *Module {
	return &Module{}
}

// ID identifies the module in composition errors.
func (*Module) ID() string {
	return "fields"
}

// Mount builds the module route handler.
func (m *Module) Mount(deps module.Dependencies) (module.Mount, error) {
	if deps.Store == nil {
		return module.Mount{}, fmt.Errorf("fields module requires a store")
	}
	svc := service{store: deps.Store, clock: deps.Now}
	h := handlers{service: svc, deps: deps}
	mux := http.NewServeMux()
	registerRoutes(mux, h)
	return module.Mount{Prefix: routepath.AppFieldsPrefix, Handler: mux}, nil
}
