package handler

import (
	"net/http"

	"utsav/internal/tickets/service"
	httputil "utsav/pkg/http"
	"utsav/pkg/logger"

	"github.com/julienschmidt/httprouter"
)

type TicketHandler struct {
	issuer service.TicketIssuer
	log    *logger.Logger
}

func NewTicketHandler(issuer service.TicketIssuer, log *logger.Logger) *TicketHandler {
	return &TicketHandler{
		issuer: issuer,
		log:    log,
	}
}

func (h *TicketHandler) Download(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	doc, err := h.issuer.Issue(r.Context(), ps.ByName("bookingId"))
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Download", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteAttachment(w, doc.Filename, doc.ContentType, doc.Body); err != nil {
		h.log.Error("failed to write attachment response", "handler", "Download", "operation", "WriteAttachment", "error", err)
	}
}

func (h *TicketHandler) RegisterRoutes(router *httprouter.Router) {
	router.GET("/api/bookings/:bookingId/ticket", h.Download)
}
