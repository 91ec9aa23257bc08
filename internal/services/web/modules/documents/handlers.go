package documents

import (
	"net/http"
	"strings"

	apperrors "github.com/velumsign/velum/internal/platform/errors"
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
		CurrentPath: routepath.AppDocuments,
	}
}

func (h handlers) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := httpx.RequestContext(r)
	ownerID := h.deps.OwnerID(r)
	requests, err := h.service.listRequests(ctx, ownerID)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	templates, err := h.service.listTemplates(ctx, ownerID)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	rows := make([]webtemplates.DocumentRow, 0, len(requests))
	for _, request := range requests {
		rows = append(rows, webtemplates.DocumentRow{
			ID:           request.ID,
			Title:        request.Title,
			Status:       string(request.Status),
			SignedCount:  request.SignedCount,
			TotalSigners: request.TotalSigners,
			CreatedAt:    request.CreatedAt.Format("2006-01-02"),
		})
	}
	options := make([]webtemplates.TemplateOption, 0, len(templates))
	for _, template := range templates {
		options = append(options, webtemplates.TemplateOption{ID: template.ID, Name: template.Name})
	}

	page := h.pageContext(w, r)
	if err := webtemplates.Write(w, r, http.StatusOK, webtemplates.DocumentsPage(page, rows, options)); err != nil {
		httpx.WriteError(w, err)
	}
}

func (h handlers) handleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		httpx.WriteJSONError(w, http.StatusBadRequest, "failed to parse form")
		return
	}
	input := createRequestInput{
		Title:      r.FormValue("title"),
		TemplateID: r.FormValue("template_id"),
		Mode:       r.FormValue("mode"),
		Signers:    parseSignerLines(r.FormValue("signers")),
	}
	request, err := h.service.createRequest(httpx.RequestContext(r), h.deps.OwnerID(r), input)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	http.Redirect(w, r, routepath.AppDocuments+"/"+request.ID, http.StatusFound)
}

func (h handlers) handleDetail(w http.ResponseWriter, r *http.Request) {
	requestID := strings.TrimSpace(r.PathValue("documentID"))
	request, signers, err := h.service.requestDetail(httpx.RequestContext(r), requestID)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}

	detail := webtemplates.DocumentDetail{
		ID:          request.ID,
		Title:       request.Title,
		Status:      string(request.Status),
		Mode:        string(request.Mode),
		ArtifactKey: request.ArtifactKey,
	}
	for _, signer := range signers {
		detail.Signers = append(detail.Signers, webtemplates.SignerView{
			Name:   signer.Name,
			Email:  signer.Email,
			Order:  signer.SigningOrder,
			Status: string(signer.Status),
		})
	}

	page := h.pageContext(w, r)
	if err := webtemplates.Write(w, r, http.StatusOK, webtemplates.DocumentDetailPage(page, detail)); err != nil {
		httpx.WriteError(w, err)
	}
}

func (h handlers) handleFinalize(w http.ResponseWriter, r *http.Request) {
	requestID := strings.TrimSpace(r.PathValue("documentID"))
	if _, err := h.service.finalize(httpx.RequestContext(r), requestID); err != nil {
		httpx.WriteError(w, err)
		return
	}
	http.Redirect(w, r, routepath.AppDocuments+"/"+requestID, http.StatusFound)
}

func (h handlers) handleDelete(w http.ResponseWriter, r *http.Request) {
	requestID := strings.TrimSpace(r.PathValue("documentID"))
	if err := h.service.deleteRequest(httpx.RequestContext(r), requestID); err != nil {
		httpx.WriteError(w, err)
		return
	}
	http.Redirect(w, r, routepath.AppDocuments, http.StatusFound)
}

func (h handlers) handleTemplateCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		httpx.WriteJSONError(w, http.StatusBadRequest, "failed to parse form")
		return
	}
	template, err := h.service.createTemplate(
		httpx.RequestContext(r),
		h.deps.OwnerID(r),
		r.FormValue("name"),
		r.FormValue("storage_key"),
		[]byte(r.FormValue("field_schema")),
	)
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, map[string]string{"id": template.ID})
}

func (h handlers) handleTemplateList(w http.ResponseWriter, r *http.Request) {
	templates, err := h.service.listTemplates(httpx.RequestContext(r), h.deps.OwnerID(r))
	if err != nil {
		httpx.WriteError(w, err)
		return
	}
	payload := make([]map[string]string, 0, len(templates))
	for _, template := range templates {
		payload = append(payload, map[string]string{
			"id":          template.ID,
			"name":        template.Name,
			"storage_key": template.StorageKey,
		})
	}
	httpx.WriteJSON(w, http.StatusOK, payload)
}

func (h handlers) handleTemplateDelete(w http.ResponseWriter, r *http.Request) {
	templateID := strings.TrimSpace(r.PathValue("templateID"))
	if templateID == "" {
		httpx.WriteError(w, apperrors.New(apperrors.CodeNotFound, "template not found"))
		return
	}
	if err := h.service.deleteTemplate(httpx.RequestContext(r), templateID); err != nil {
		httpx.WriteError(w, err)
		return
	}
	http.Redirect(w, r, routepath.AppDocuments, http.StatusFound)
}

// parseSignerLines parses one signer per line, "Name <email>" or bare email.
func parseSignerLines(raw string) []signerInput {
	lines := strings.Split(raw, "\n")
	signers := make([]signerInput, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if open := strings.LastIndex(line, "<"); open >= 0 && strings.HasSuffix(line, ">") {
			signers = append(signers, signerInput{
				Name:  strings.TrimSpace(line[:open]),
				Email: strings.TrimSpace(line[open+1 : len(line)-1]),
			})
			continue
		}
		signers = append(signers, signerInput{Email: line})
	}
	return signers
}
