// Package modules declares the stable web module registry.
package modules

import (
	module "github.com/velumsign/velum/internal/services/web/module"
	"github.com/velumsign/velum/internal/services/web/modules/datarooms"
	"github.com/velumsign/velum/internal/services/web/modules/documents"
	"github.com/velumsign/velum/internal/services/web/modules/fields"
	"github.com/velumsign/velum/internal/services/web/modules/links"
	"github.com/velumsign/velum/internal/services/web/modules/settings"
	"github.com/velumsign/velum/internal/services/web/modules/sign"
)

// DefaultPublicModules lists modules serving signer and share traffic.
func DefaultPublicModules() []module.Module {
	return []module.Module{
		sign.New(),
	}
}

// DefaultAppModules lists owner-facing modules mounted under /app/.
func DefaultAppModules() []module.Module {
	return []module.Module{
		documents.New(),
		links.New(),
		datarooms.New(),
		fields.New(),
		settings.New(),
	}
}
