package links

import (
	"net/http"

	"github.com/velumsign/velum/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.AppLinks+"/{$}", h.handleList)
	mux.HandleFunc(http.MethodGet+" "+routepath.AppLinks, h.handleList)
	mux.HandleFunc(http.MethodPost+" "+routepath.AppLinks, h.handleCreate)

	mux.HandleFunc(http.MethodGet+" "+routepath.AppLinkAnalyticsPattern, h.handleAnalytics)
	mux.HandleFunc(http.MethodPost+" "+routepath.AppLinkDeletePattern, h.handleDelete)
}
