package handler

import (
	"net/http"

	"utsav/internal/auth/service"
	httputil "utsav/pkg/http"
	"utsav/pkg/logger"
	"utsav/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type AuthHandler struct {
	service service.AuthService
	log     *logger.Logger
}

func NewAuthHandler(service service.AuthService, log *logger.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		log:     log,
	}
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.SignupRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Signup", "operation", "DecodeJSON", "error", writeErr)
		}
		return
	}

	resp, err := h.service.Signup(r.Context(), &req)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Signup", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteCreated(w, resp); err != nil {
		h.log.Error("failed to write created response", "handler", "Signup", "operation", "WriteCreated", "error", err)
	}
}

func (h *AuthHandler) Signin(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req model.SigninRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Signin", "operation", "DecodeJSON", "error", writeErr)
		}
		return
	}

	resp, err := h.service.Signin(r.Context(), &req)
	if err != nil {
		if writeErr := httputil.WriteError(w, err); writeErr != nil {
			h.log.Error("failed to write error response", "handler", "Signin", "operation", "WriteError", "error", writeErr)
		}
		return
	}

	if err := httputil.WriteSuccess(w, resp); err != nil {
		h.log.Error("failed to write success response", "handler", "Signin", "operation", "WriteSuccess", "error", err)
	}
}

func (h *AuthHandler) RegisterRoutes(router *httprouter.Router) {
	router.POST("/api/auth/signup", h.Signup)
	router.POST("/api/auth/signin", h.Signin)
}
