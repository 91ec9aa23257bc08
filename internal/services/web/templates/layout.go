// Package templates renders the web surface as templ components. Components
// are hand-assembled so view models stay plain Go structs.
package templates

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/a-h/templ"

	"github.com/velumsign/velum/internal/services/web/routepath"
)

// PageContext provides shared layout context for pages.
type PageContext struct {
	Lang        string
	Loc         Localizer
	CurrentPath string
	AppName     string
}

type navItem struct {
	labelKey string
	url      string
}

var navItems = []navItem{
	{labelKey: "layout.documents", url: routepath.AppDocuments},
	{labelKey: "layout.links", url: routepath.AppLinks},
	{labelKey: "layout.datarooms", url: routepath.AppDataRooms},
	{labelKey: "layout.fields", url: routepath.AppFields},
	{labelKey: "layout.settings", url: routepath.AppSettings},
}

func (p PageContext) appName() string {
	if p.AppName != "" {
		return p.AppName
	}
	return T(p.Loc, "layout.app_name")
}

// Layout wraps body in the shared page chrome.
func Layout(page PageContext, title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		lang := page.Lang
		if lang == "" {
			lang = "en"
		}
		if _, err := fmt.Fprintf(
			w,
			`<!doctype html><html lang=%q><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>%s | %s</title></head><body><header><nav><strong>%s</strong>`,
			templ.EscapeString(lang),
			templ.EscapeString(title),
			templ.EscapeString(page.appName()),
			templ.EscapeString(page.appName()),
		); err != nil {
			return err
		}
		for _, item := range navItems {
			current := ""
			if page.CurrentPath == item.url {
				current = ` aria-current="page"`
			}
			if _, err := fmt.Fprintf(
				w,
				`<a href=%q%s>%s</a>`,
				item.url,
				current,
				templ.EscapeString(T(page.Loc, item.labelKey)),
			); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, `</nav></header><main>`); err != nil {
			return err
		}
		if body != nil {
			if err := body.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</main></body></html>`)
		return err
	})
}

// PublicLayout wraps body in the chrome shown to signers and link visitors.
// It carries no app navigation.
func PublicLayout(page PageContext, title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		lang := page.Lang
		if lang == "" {
			lang = "en"
		}
		if _, err := fmt.Fprintf(
			w,
			`<!doctype html><html lang=%q><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>%s | %s</title></head><body><main>`,
			templ.EscapeString(lang),
			templ.EscapeString(title),
			templ.EscapeString(page.appName()),
		); err != nil {
			return err
		}
		if body != nil {
			if err := body.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</main></body></html>`)
		return err
	})
}

// Write renders a component to the response with the given status code.
func Write(w http.ResponseWriter, r *http.Request, status int, component templ.Component) error {
	if w == nil {
		return fmt.Errorf("response writer is required")
	}
	if component == nil {
		return fmt.Errorf("component is required")
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	ctx := context.Background()
	if r != nil {
		ctx = r.Context()
	}
	return component.Render(ctx, w)
}
