package sign

import (
	"errors"
	"net/http"
	"strings"

	apperrors "github.com/velumsign/velum/internal/platform/errors"
	webi18n "github.com/velumsign/velum/internal/services/web/i18n"
	"github.com/velumsign/velum/internal/services/web/platform/httpx"
	"github.com/velumsign/velum/internal/services/web/routepath"
	webtemplates "github.com/velumsign/velum/internal/services/web/templates"
	"github.com/velumsign/velum/internal/signing"
)

type handlers struct {
	service service
}

func pageContext(w http.ResponseWriter, r *http.Request) webtemplates.PageContext {
	tag, persist := webi18n.ResolveTag(r)
	if persist {
		webi18n.SetLanguageCookie(w, tag)
	}
	return webtemplates.PageContext{
		Lang: tag.String(),
		Loc:  webi18n.Printer(tag),
	}
}

func (h handlers) handleSignView(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimSpace(r.PathValue("token"))
	view, err := h.service.view(httpx.RequestContext(r), token)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	page := pageContext(w, r)
	switch view.Signer.Status {
	case signing.SignerSigned:
		_ = webtemplates.Write(w, r, http.StatusOK, webtemplates.SignDonePage(page, view.Request.Title, "sign.already_signed"))
	case signing.SignerDeclined:
		_ = webtemplates.Write(w, r, http.StatusOK, webtemplates.SignDonePage(page, view.Request.Title, "sign.declined"))
	default:
		signerName := view.Signer.Name
		if signerName == "" {
			signerName = view.Signer.Email
		}
		_ = webtemplates.Write(w, r, http.StatusOK, webtemplates.SignPage(page, webtemplates.SignView{
			Token:        token,
			RequestTitle: view.Request.Title,
			SignerName:   signerName,
		}))
	}
}

func (h handlers) handleSignSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		httpx.WriteJSONError(w, http.StatusBadRequest, "failed to parse form")
		return
	}
	token := strings.TrimSpace(r.PathValue("token"))
	if err := h.service.submit(httpx.RequestContext(r), token, r.FormValue("signature_data")); err != nil {
		h.writeError(w, r, err)
		return
	}
	http.Redirect(w, r, routepath.SignPrefix+token, http.StatusFound)
}

func (h handlers) handleSignDecline(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimSpace(r.PathValue("token"))
	if err := h.service.decline(httpx.RequestContext(r), token); err != nil {
		h.writeError(w, r, err)
		return
	}
	http.Redirect(w, r, routepath.SignPrefix+token, http.StatusFound)
}

func (h handlers) handleShare(w http.ResponseWriter, r *http.Request) {
	slug := strings.TrimSpace(r.PathValue("slug"))
	email := strings.TrimSpace(r.URL.Query().Get("email"))
	view, err := h.service.resolveShare(httpx.RequestContext(r), slug, email, r.UserAgent())
	if err != nil {
		var domainErr *apperrors.Error
		if errors.As(err, &domainErr) && domainErr.Code == apperrors.CodeLinkEmailRequired {
			page := pageContext(w, r)
			_ = webtemplates.Write(w, r, http.StatusOK, webtemplates.ShareEmailPromptPage(page, slug))
			return
		}
		h.writeError(w, r, err)
		return
	}

	page := pageContext(w, r)
	_ = webtemplates.Write(w, r, http.StatusOK, webtemplates.SharePage(page, view.TargetName))
}

// writeError renders a localized error page for page-level failures and
// falls back to plain status text otherwise.
func (h handlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperrors.HTTPStatus(err)
	page := pageContext(w, r)
	messageKey := "error.page_title"
	switch status {
	case http.StatusNotFound:
		messageKey = "error.not_found"
	case http.StatusGone:
		messageKey = "error.link_expired"
	default:
		httpx.WriteError(w, err)
		return
	}
	_ = webtemplates.Write(w, r, status, webtemplates.ErrorPage(page, messageKey))
}
