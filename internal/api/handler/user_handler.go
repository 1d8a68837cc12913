package handler

import (
	"fmt"
	"net/http"

	"runboard/internal/api/middleware"
	"runboard/internal/app/service"
	"runboard/internal/common"

	"github.com/go-chi/chi/v5"
)

type UserHandler struct {
	userService *service.UserService
	requireUser Middleware
}

func NewUserHandler(userService *service.UserService, requireUser Middleware) *UserHandler {
	return &UserHandler{userService: userService, requireUser: requireUser}
}

type makeAdminResponse struct {
	Message string `json:"message"`
}

func (h *UserHandler) RegisterRoutes(r chi.Router) {
	r.Use(h.requireUser)
	r.With(middleware.ModeratorOnly).Get("/", h.listUsers)
	r.With(middleware.AdminOnly).Post("/{id}/make_admin", h.makeAdmin)
}

func (h *UserHandler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.ListUsers(r.Context())
	if err != nil {
		common.RespondWithDomainError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, users)
}

func (h *UserHandler) makeAdmin(w http.ResponseWriter, r *http.Request) {
	userID, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	user, err := h.userService.MakeAdmin(r.Context(), userID)
	if err != nil {
		common.RespondWithDomainError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, makeAdminResponse{
		Message: fmt.Sprintf("User %s is now an administrator", user.Username),
	})
}
