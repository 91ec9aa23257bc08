package settings

import (
	"fmt"
	"net/http"

	webi18n "github.com/velumsign/velum/internal/services/web/i18n"
	module "github.com/velumsign/velum/internal/services/web/module"
	"github.com/velumsign/velum/internal/services/web/platform/httpx"
	"github.com/velumsign/velum/internal/services/web/routepath"
	webtemplates "github.com/velumsign/velum/internal/services/web/templates"
	"github.com/velumsign/velum/internal/storage"
)

type handlers struct {
	deps module.Dependencies
}

func (h handlers) pageContext(w http.ResponseWriter, r *http.Request) webtemplates.PageContext {
	tag, persist := webi18n.ResolveTag(r)
	if persist {
		webi18n.SetLanguageCookie(w, tag)
	}
	return webtemplates.PageContext{
		Lang:        tag.String(),
		Loc:         webi18n.Printer(tag),
		CurrentPath: routepath.AppSettings,
	}
}

func (h handlers) handleShow(w http.ResponseWriter, r *http.Request) {
	current, err := h.deps.Store.GetSecuritySettings(httpx.RequestContext(r), h.deps.OwnerID(r))
	if err != nil {
		httpx.WriteError(w, fmt.Errorf("load security settings: %w", err))
		return
	}
	form := webtemplates.SettingsForm{
		RequireEmail:   current.RequireEmail,
		AllowDownloads: current.AllowDownloads,
		Watermark:      current.Watermark,
		NotifyOnView:   current.NotifyOnView,
		NotifyOnSign:   current.NotifyOnSign,
	}
	page := h.pageContext(w, r)
	if err := webtemplates.Write(w, r, http.StatusOK, webtemplates.SettingsPage(page, form)); err != nil {
		httpx.WriteError(w, err)
	}
}

// handleSave reads the full toggle set from the form. Unchecked boxes are
// absent from the submission, so every toggle is recomputed on each save.
func (h handlers) handleSave(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		httpx.WriteJSONError(w, http.StatusBadRequest, "failed to parse form")
		return
	}
	updated := storage.SecuritySettings{
		OwnerID:        h.deps.OwnerID(r),
		RequireEmail:   r.FormValue("require_email") == "true",
		AllowDownloads: r.FormValue("allow_downloads") == "true",
		Watermark:      r.FormValue("watermark") == "true",
		NotifyOnView:   r.FormValue("notify_on_view") == "true",
		NotifyOnSign:   r.FormValue("notify_on_sign") == "true",
		UpdatedAt:      h.deps.Now(),
	}
	if err := h.deps.Store.PutSecuritySettings(httpx.RequestContext(r), updated); err != nil {
		httpx.WriteError(w, fmt.Errorf("save security settings: %w", err))
		return
	}
	http.Redirect(w, r, routepath.AppSettings, http.StatusFound)
}
