package links

import (
	"net/http"
	"strings"
	"time"

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
		CurrentPath: routepath.AppLinks,
	}
}

func (h handlers) handleList(w http.ResponseWriter, r *http.Request) {
	links, err := h.service.listLinks(httpx.RequestContext(r), h.deps.OwnerID(r))
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	rows := make([]webtemplates.LinkRow, 0, len(links))
	for _, link := range links {
		rows = append(rows, webtemplates.LinkRow{
			ID:         link.ID,
			Slug:       link.Slug,
			TargetKind: link.TargetKind,
			TargetID:   link.TargetID,
			CreatedAt:  link.CreatedAt.Format("2006-01-02"),
		})
	}
	page := h.pageContext(w, r)
	if err := webtemplates.Write(w, r, http.StatusOK, webtemplates.LinksPage(page, rows)); err != nil {
		httpx.WriteError(w, err)
	}
}

func (h handlers) handleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		httpx.WriteJSONError(w, http.StatusBadRequest, "failed to parse form")
		return
	}
	input := createLinkInput{
		Slug:         r.FormValue("slug"),
		TargetKind:   r.FormValue("target_kind"),
		TargetID:     r.FormValue("target_id"),
		RequireEmail: r.FormValue("require_email") == "true",
		Password:     r.FormValue("password"),
	}
	if raw := strings.TrimSpace(r.FormValue("expires_at")); raw != "" {
		expiresAt, err := time.Parse("2006-01-02", raw)
		if err != nil {
			httpx.WriteJSONError(w, http.StatusBadRequest, "expires_at must be YYYY-MM-DD")
			return
		}
		input.ExpiresAt = expiresAt
	}
	if _, err := h.service.createLink(httpx.RequestContext(r), h.deps.OwnerID(r), input); err != nil {
		httpx.WriteError(w, err)
		return
	}
	http.Redirect(w, r, routepath.AppLinks, http.StatusFound)
}

func (h handlers) handleDelete(w http.ResponseWriter, r *http.Request) {
	linkID := strings.TrimSpace(r.PathValue("linkID"))
	if err := h.service.deleteLink(httpx.RequestContext(r), linkID); err != nil {
		httpx.WriteError(w, err)
		return
	}
	http.Redirect(w, r, routepath.AppLinks, http.StatusFound)
}

func (h handlers) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	linkID := strings.TrimSpace(r.PathValue("linkID"))
	data, err := h.service.analytics(httpx.RequestContext(r), linkID)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	view := webtemplates.LinkAnalyticsView{
		Slug:       data.Link.Slug,
		VisitCount: data.Analytics.VisitCount,
	}
	if data.Analytics.VisitCount > 0 {
		view.LastVisit = data.Analytics.LastVisitAt.Format("2006-01-02 15:04")
	}
	for _, visit := range data.Visits {
		view.Visits = append(view.Visits, webtemplates.LinkVisitView{
			VisitorEmail: visit.VisitorEmail,
			UserAgent:    visit.UserAgent,
			VisitedAt:    visit.VisitedAt.Format("2006-01-02 15:04"),
		})
	}

	page := h.pageContext(w, r)
	if err := webtemplates.Write(w, r, http.StatusOK, webtemplates.LinkAnalyticsPage(page, view)); err != nil {
		httpx.WriteError(w, err)
	}
}
