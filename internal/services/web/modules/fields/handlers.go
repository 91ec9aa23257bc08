package fields

import (
	"net/http"
	"strings"

	webi18n "github.com/velumsign/velum/internal/services/web/i18n"
	module "github.com/velumsign/velum/internal/services/web/module"
	"github.com/velumsign/velum/internal/services/web/platform/httpx"
	"github.com/velumsign/velum/internal/services/web/routepath"
	webtemplates "github.com/velumsign/velum/internal/services/web/templates"
)

type handlers struct {
	service service
	deps    module.Dependencies
}

func (h handlers) pageContext(w http.ResponseWriter, r *http.Request) webtemplates.PageContext {
	tag, persist := webi18n.ResolveTag(r)
	if persist {
		webi18n.SetLanguageCookie(w, tag)
	}
	return webtemplates.PageContext{
		Lang:        tag.String(),
		Loc:         webi18n.Printer(tag),
		CurrentPath: routepath.AppFields,
	}
}

func (h handlers) handleList(w http.ResponseWriter, r *http.Request) {
	defs, err := h.service.listFields(httpx.RequestContext(r), h.deps.OwnerID(r))
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	rows := make([]webtemplates.FieldRow, 0, len(defs))
	for _, def := range defs {
		rows = append(rows, webtemplates.FieldRow{
			ID:       def.ID,
			Label:    def.Label,
			Type:     def.Type,
			Required: def.Required,
		})
	}
	page := h.pageContext(w, r)
	if err := webtemplates.Write(w, r, http.StatusOK, webtemplates.FieldsPage(page, rows)); err != nil {
		httpx.WriteError(w, err)
	}
}

func (h handlers) handleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		httpx.WriteJSONError(w, http.StatusBadRequest, "failed to parse form")
		return
	}
	_, err := h.service.createField(
		httpx.RequestContext(r),
		h.deps.OwnerID(r),
		r.FormValue("label"),
		r.FormValue("type"),
		r.FormValue("required") == "true",
	)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	http.Redirect(w, r, routepath.AppFields, http.StatusFound)
}

func (h handlers) handleDelete(w http.ResponseWriter, r *http.Request) {
	fieldID := strings.TrimSpace(r.PathValue("fieldID"))
	if err := h.service.deleteField(httpx.RequestContext(r), fieldID); err != nil {
		httpx.WriteError(w, err)
		return
	}
	http.Redirect(w, r, routepath.AppFields, http.StatusFound)
}
