package fields

import (
	"net/http"

	"github.com/velumsign/velum/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.AppFields+"/{$}", h.handleList)
	mux.HandleFunc(http.MethodGet+" "+routepath.AppFields, h.handleList)
	mux.HandleFunc(http.MethodPost+" "+routepath.AppFields, h.handleCreate)

	mux.HandleFunc(http.MethodPost+" "+routepath.AppFieldDeletePattern, h.handleDelete)
}
