package app

import (
	"net/http"
	"net/http/httptest"
	"testing"

	module "github.com/velumsign/velum/internal/services/web/module"
)

type fakeModule struct {
	id     string
	prefix string
}

func (m fakeModule) ID() string { return m.id }

func (m fakeModule) Mount(module.Dependencies) (module.Mount, error) {
	return module.Mount{
		Prefix: m.prefix,
		Handler: http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("X-Module", m.id)
		}),
	}, nil
}

func TestComposeRoutesByPrefix(t *testing.T) {
	handler, err := Compose(ComposeInput{
		PublicModules: []module.Module{fakeModule{id: "sign", prefix: "/sign/"}},
		AppModules:    []module.Module{fakeModule{id: "documents", prefix: "/app/documents/"}},
	})
	if err != nil {
		t.Fatalf("compose: %v", err)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sign/abc", nil))
	if got := rec.Header().Get("X-Module"); got != "sign" {
		t.Fatalf("module = %q, want sign", got)
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/app/documents/doc-1", nil))
	if got := rec.Header().Get("X-Module"); got != "documents" {
		t.Fatalf("module = %q, want documents", got)
	}
}

func TestComposeNormalizesPrefix(t *testing.T) {
	handler, err := Compose(ComposeInput{
		PublicModules: []module.Module{fakeModule{id: "sign", prefix: "sign"}},
	})
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/sign/abc", nil))
	if got := rec.Header().Get("X-Module"); got != "sign" {
		t.Fatalf("module = %q, want sign", got)
	}
}

func TestComposeRejectsDuplicatePrefix(t *testing.T) {
	_, err := Compose(ComposeInput{
		AppModules: []module.Module{
			fakeModule{id: "one", prefix: "/app/links/"},
			fakeModule{id: "two", prefix: "/app/links/"},
		},
	})
	if err == nil {
		t.Fatal("expected duplicate prefix error")
	}
}

func TestComposeRejectsAppPrefixInPublicGroup(t *testing.T) {
	_, err := Compose(ComposeInput{
		PublicModules: []module.Module{fakeModule{id: "sneaky", prefix: "/app/documents/"}},
	})
	if err == nil {
		t.Fatal("expected public group prefix error")
	}
}

func TestComposeRequiresAppPrefixForAppModules(t *testing.T) {
	_, err := Compose(ComposeInput{
		AppModules: []module.Module{fakeModule{id: "loose", prefix: "/documents/"}},
	})
	if err == nil {
		t.Fatal("expected app prefix error")
	}
}
