package documents

import (
	"net/http"

	"github.com/velumsign/velum/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.AppDocuments+"/{$}", h.handleList)
	mux.HandleFunc(http.MethodGet+" "+routepath.AppDocuments, h.handleList)
	mux.HandleFunc(http.MethodPost+" "+routepath.AppDocuments, h.handleCreate)

	mux.HandleFunc(http.MethodGet+" "+routepath.AppTemplates, h.handleTemplateList)
	mux.HandleFunc(http.MethodPost+" "+routepath.AppTemplates, h.handleTemplateCreate)
	mux.HandleFunc(http.MethodPost+" "+routepath.AppTemplateDeletePattern, h.handleTemplateDelete)

	mux.HandleFunc(http.MethodGet+" "+routepath.AppDocumentPattern, h.handleDetail)
	mux.HandleFunc(http.MethodPost+" "+routepath.AppDocumentFinalizePattern, h.handleFinalize)
	mux.HandleFunc(http.MethodPost+" "+routepath.AppDocumentDeletePattern, h.handleDelete)
}
