package datarooms

import (
	"net/http"

	"github.com/velumsign/velum/internal/services/web/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.AppDataRooms+"/{$}", h.handleList)
	mux.HandleFunc(http.MethodGet+" "+routepath.AppDataRooms, h.handleList)
	mux.HandleFunc(http.MethodPost+" "+routepath.AppDataRooms, h.handleCreate)

	mux.HandleFunc(http.MethodGet+" "+routepath.AppDataRoomPattern, h.handleDetail)
	mux.HandleFunc(http.MethodPost+" "+routepath.AppDataRoomMembersPattern, h.handleSetTemplates)
	mux.HandleFunc(http.MethodPost+" "+routepath.AppDataRoomDeletePattern, h.handleDelete)
}
