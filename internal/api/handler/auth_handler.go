package handler

import (
	"net/http"

	"runboard/internal/api/middleware"
	"runboard/internal/app/service"
	"runboard/internal/common"

	"github.com/go-chi/chi/v5"
)

type AuthHandler struct {
	authService  *service.AuthService
	requireToken Middleware
}

// requireRefresh must admit only refresh tokens.
func NewAuthHandler(authService *service.AuthService, requireRefresh Middleware) *AuthHandler {
	return &AuthHandler{authService: authService, requireToken: requireRefresh}
}

func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/register", h.register)
	r.Post("/login", h.login)
	r.With(h.requireToken).Post("/token/refresh", h.refresh)
}

func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	var req service.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if _, err := h.authService.Register(r.Context(), req); err != nil {
		common.RespondWithDomainError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, common.MessageResponse{Msg: "User registered successfully"})
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	var req service.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	resp, err := h.authService.Login(r.Context(), req)
	if err != nil {
		common.RespondWithDomainError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, resp)
}

func (h *AuthHandler) refresh(w http.ResponseWriter, r *http.Request) {
	username, ok := middleware.GetUsernameFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}
	resp, err := h.authService.Refresh(r.Context(), username)
	if err != nil {
		common.RespondWithDomainError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, resp)
}
