package handler

import (
	"net/http"

	"utsav/internal/halls/service"
	httputil "utsav/pkg/http"
	"utsav/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

type HallHandler struct {
	service service.HallService
	log     *logger.Logger
}

func NewHallHandler(service service.HallService, log *logger.Logger) *HallHandler {
	return &HallHandler{
		service: service,
		log:     log,
	}
}

func (h *HallHandler) List(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	halls, err := h.service.List(r.Context(), r.URL.Query().Get("city"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "List", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, halls); err != nil {
		h.log.Error("failed to write success response", "handler", "List", "operation", "WriteSuccess", "error", err)
	}
}

func (h *HallHandler) GetByID(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	hall, err := h.service.GetByID(r.Context(), ps.ByName("hallId"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "GetByID", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, hall); err != nil {
		h.log.Error("failed to write success response", "handler", "GetByID", "operation", "WriteSuccess", "error", err)
	}
}

// RegisterRoutes uses the same :hallId wildcard as the availability route.
func (h *HallHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/halls", h.List)
	router.GET("/api/halls/:hallId", h.GetByID)
}
