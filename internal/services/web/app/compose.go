// Package app wires feature modules onto the root web mux.
package app

import (
	"fmt"
	"net/http"
	"strings"

	module "github.com/velumsign/velum/internal/services/web/module"
	"github.com/velumsign/velum/internal/services/web/routepath"
)

// ComposeInput carries module groups and their shared dependencies.
type ComposeInput struct {
	Dependencies  module.Dependencies
	PublicModules []module.Module
	AppModules    []module.Module
}

// Compose builds a root HTTP handler from module groups. Public modules
// serve signer and share traffic; app modules must mount under /app/.
func Compose(input ComposeInput) (http.Handler, error) {
	root := http.NewServeMux()
	seen := make(map[string]string)

	for _, feature := range input.PublicModules {
		prefix, mount, err := resolveMount(feature, input.Dependencies)
		if err != nil {
			return nil, err
		}
		if strings.HasPrefix(prefix, routepath.AppPrefix) {
			return nil, fmt.Errorf("module %q has app prefix %q in public group", feature.ID(), prefix)
		}
		if err := claimPrefix(seen, feature, prefix); err != nil {
			return nil, err
		}
		root.Handle(prefix, mount.Handler)
	}

	for _, feature := range input.AppModules {
		prefix, mount, err := resolveMount(feature, input.Dependencies)
		if err != nil {
			return nil, err
		}
		if !strings.HasPrefix(prefix, routepath.AppPrefix) {
			return nil, fmt.Errorf("module %q must mount under %s, got %q", feature.ID(), routepath.AppPrefix, prefix)
		}
		if err := claimPrefix(seen, feature, prefix); err != nil {
			return nil, err
		}
		root.Handle(prefix, mount.Handler)
	}

	return root, nil
}

func claimPrefix(seen map[string]string, feature module.Module, prefix string) error {
	if previous, ok := seen[prefix]; ok {
		return fmt.Errorf("module %q duplicates prefix %q owned by module %q", feature.ID(), prefix, previous)
	}
	seen[prefix] = feature.ID()
	return nil
}

func resolveMount(feature module.Module, deps module.Dependencies) (string, module.Mount, error) {
	if feature == nil {
		return "", module.Mount{}, fmt.Errorf("module is nil")
	}
	mount, err := feature.Mount(deps)
	if err != nil {
		return "", module.Mount{}, fmt.Errorf("mount module %q: %w", feature.ID(), err)
	}
	prefix := normalizePrefix(mount.Prefix)
	if prefix == "" {
		return "", module.Mount{}, fmt.Errorf("mount module %q: prefix is required", feature.ID())
	}
	if mount.Handler == nil {
		return "", module.Mount{}, fmt.Errorf("mount module %q: handler is required", feature.ID())
	}
	return prefix, mount, nil
}

func normalizePrefix(prefix string) string {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return ""
	}
	if !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return prefix
}
