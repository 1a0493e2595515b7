package handler

import (
	"net/http"
	"strconv"
	"time"

	"utsav/internal/plans/service"
	httputil "utsav/pkg/http"
	"utsav/pkg/logger"
	"utsav/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type PlanHandler struct {
	service    service.PlanService
	log        *logger.Logger
	middleware []func(http.Handler) http.Handler
	now        func() time.Time
}

// NewPlanHandler wraps the generate route with middleware, outermost first.
func NewPlanHandler(service service.PlanService, log *logger.Logger, middleware ...func(http.Handler) http.Handler) *PlanHandler {
	return &PlanHandler{
		service:    service,
		log:        log,
		middleware: middleware,
		now:        time.Now,
	}
}

func (h *PlanHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req model.EventPlanRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Generate", "operation", "DecodeJSON", "error", writeErr)
		}
		return
	}

	plan, err := h.service.Generate(r.Context(), &req)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Generate", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if download, _ := strconv.ParseBool(r.URL.Query().Get("download")); download {
		body := []byte(service.FormatDownload(plan))
		if err := httputil.WriteAttachment(w, service.DownloadFilename(h.now()), "text/plain; charset=utf-8", body); err != nil {
			h.log.Error("failed to write attachment response", "handler", "Generate", "operation", "WriteAttachment", "error", err)
		}
		return
	}

	if err := httputil.WriteSuccess(w, plan); err != nil {
		h.log.Error("failed to write success response", "handler", "Generate", "operation", "WriteSuccess", "error", err)
	}
}

func (h *PlanHandler) RegisterRoutes(router *httprouter.Router) {
	var handler http.Handler = http.HandlerFunc(h.Generate)
	for i := len(h.middleware) - 1; i >= 0; i-- {
		handler = h.middleware[i](handler)
	}
	router.Handler(http.MethodPost, "/api/plans", handler)
}
