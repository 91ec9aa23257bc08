package sign

import (
	"net/http"

	"github.com/velumsign/velum/internal/services/web/platform/httpx"
	"github.com/velumsign/velum/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.SignPattern, h.handleSignView)
	mux.HandleFunc(http.MethodPost+" "+routepath.SignPattern, h.handleSignSubmit)
	mux.HandleFunc(http.MethodGet+" "+routepath.SignDeclinePattern, httpx.MethodNotAllowed(http.MethodPost))
	mux.HandleFunc(http.MethodPost+" "+routepath.SignDeclinePattern, h.handleSignDecline)

	mux.HandleFunc(http.MethodGet+" "+routepath.SharePattern, h.handleShare)
}
