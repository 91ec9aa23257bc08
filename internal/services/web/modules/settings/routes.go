package settings

import (
	"net/http"

	"github.com/velumsign/velum/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.AppSettings+"/{$}", h.handleShow)
	mux.HandleFunc(http.MethodGet+" "+routepath.AppSettings, h.handleShow)
	mux.HandleFunc(http.MethodPost+" "+routepath.AppSettings, h.handleSave)
}
