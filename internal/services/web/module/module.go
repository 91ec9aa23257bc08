// Package module defines the feature contract used by web composition.
package module

import (
	"net/http"
	"time"

	"github.com/velumsign/velum/internal/auth/linktoken"
	"github.com/velumsign/velum/internal/pdf"
	"github.com/velumsign/velum/internal/storage"
	"github.com/velumsign/velum/internal/telemetry"
)

// ResolveOwnerID resolves the acting tenant for a request.
type ResolveOwnerID func(*http.Request) string

// Dependencies carries the shared services a module may consume.
type Dependencies struct {
	Store          storage.Store
	Filler         pdf.Filler
	Telemetry      *telemetry.Emitter
	Tokens         *linktoken.Minter
	ResolveOwnerID ResolveOwnerID
	Clock          func() time.Time
}

// Now returns the dependency clock, defaulting to wall time.
func (d Dependencies) Now() time.Time {
	if d.Clock == nil {
		return time.Now().UTC()
	}
	return d.Clock().UTC()
}

// OwnerID resolves the acting tenant, empty when unresolvable.
func (d Dependencies) OwnerID(r *http.Request) string {
	if d.ResolveOwnerID == nil {
		return ""
	}
	return d.ResolveOwnerID(r)
}

// Mount describes a module route mount.
type Mount struct {
	Prefix  string
	Handler http.Handler
}

// Module declares the minimum contract required by web composition.
type Module interface {
	ID() string
	Mount(Dependencies) (Mount, error)
}
