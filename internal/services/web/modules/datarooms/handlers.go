package datarooms

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
		CurrentPath: routepath.AppDataRooms,
	}
}

func (h handlers) handleList(w http.ResponseWriter, r *http.Request) {
	listings, err := h.service.listRooms(httpx.RequestContext(r), h.deps.OwnerID(r))
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	rows := make([]webtemplates.DataRoomRow, 0, len(listings))
	for _, listing := range listings {
		rows = append(rows, webtemplates.DataRoomRow{
			ID:            listing.Room.ID,
			Name:          listing.Room.Name,
			DocumentCount: listing.TemplateCount,
		})
	}
	page := h.pageContext(w, r)
	if err := webtemplates.Write(w, r, http.StatusOK, webtemplates.DataRoomsPage(page, rows)); err != nil {
		httpx.WriteError(w, err)
	}
}

func (h handlers) handleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		httpx.WriteJSONError(w, http.StatusBadRequest, "failed to parse form")
		return
	}
	room, err := h.service.createRoom(httpx.RequestContext(r), h.deps.OwnerID(r), r.FormValue("name"))
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	http.Redirect(w, r, routepath.AppDataRooms+"/"+room.ID, http.StatusFound)
}

func (h handlers) handleDetail(w http.ResponseWriter, r *http.Request) {
	roomID := strings.TrimSpace(r.PathValue("roomID"))
	detail, err := h.service.detail(httpx.RequestContext(r), roomID)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	view := webtemplates.DataRoomDetail{ID: detail.Room.ID, Name: detail.Room.Name}
	for _, template := range detail.Templates {
		view.Templates = append(view.Templates, webtemplates.TemplateOption{
			ID:   template.ID,
			Name: template.Name,
		})
	}
	page := h.pageContext(w, r)
	if err := webtemplates.Write(w, r, http.StatusOK, webtemplates.DataRoomDetailPage(page, view)); err != nil {
		httpx.WriteError(w, err)
	}
}

func (h handlers) handleSetTemplates(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		httpx.WriteJSONError(w, http.StatusBadRequest, "failed to parse form")
		return
	}
	roomID := strings.TrimSpace(r.PathValue("roomID"))
	templateIDs := parseTemplateLines(r.FormValue("template_ids"))
	if err := h.service.setTemplates(httpx.RequestContext(r), roomID, templateIDs); err != nil {
		httpx.WriteError(w, err)
		return
	}
	http.Redirect(w, r, routepath.AppDataRooms+"/"+roomID, http.StatusFound)
}

func (h handlers) handleDelete(w http.ResponseWriter, r *http.Request) {
	roomID := strings.TrimSpace(r.PathValue("roomID"))
	if err := h.service.deleteRoom(httpx.RequestContext(r), roomID); err != nil {
		httpx.WriteError(w, err)
		return
	}
	http.Redirect(w, r, routepath.AppDataRooms, http.StatusFound)
}
