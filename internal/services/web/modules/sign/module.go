// Package sign serves the public surfaces: token-addressed signer pages and
// slug-addressed share links. Possession of a valid token or slug is the
// only credential.
package sign

import (
	"fmt"
	"net/http"

	module "github.com/velumsign/velum/internal/services/web/module"
)

// Module is the public signing and sharing module.
type Module struct{}

// New creates the sign module.
func New() *Module {
	return &Module{}
}

// ID identifies the module in composition errors.
func (*Module) ID() string {
	return "sign"
}

// Mount builds the module route handler. The module owns the root prefix so
// it can serve both /sign/ and /l/ routes.
func (m *Module) Mount(deps module.Dependencies) (module.Mount, error) {
	if deps.Store == nil {
		return module.Mount{}, fmt.Errorf("sign module requires a store")
	}
	if deps.Tokens == nil {
		return module.Mount{}, fmt.Errorf("sign module requires a token minter")
	}
	svc := service{
		store:     deps.Store,
		tokens:    deps.Tokens,
		telemetry: deps.Telemetry,
		clock:     deps.Now,
	}
	h := handlers{service: svc}
	mux := http.NewServeMux()
	registerRoutes(mux, h)
	return module.Mount{Prefix: "/", Handler: mux}, nil
}
