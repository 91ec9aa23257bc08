// Package settings serves per-owner document security preferences.
package settings

import (
	"fmt"
	"net/http"

	module "github.com/velumsign/velum/internal/services/web/module"
	"github.com/velumsign/velum/internal/services/web/routepath"
)

// Module is the security settings feature module.
type Module struct{}

// New creates the settings module.
func New() *Module {
	return &Module{}
}

// ID identifies the module in composition errors.
func (*Module) ID() string {
	return "settings"
}

// Mount builds the module route handler.
func (m *Module) Mount(deps module.Dependencies) (module.Mount, error) {
	if deps.Store == nil {
		return module.Mount{}, fmt.Errorf("settings module requires a store")
	}
	h := handlers{deps: deps}
	mux := http.NewServeMux()
	registerRoutes(mux, h)
	return module.Mount{Prefix: routepath.AppSettingsPrefix, Handler: mux}, nil
}
