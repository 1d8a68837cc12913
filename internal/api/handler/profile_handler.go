package handler

import (
	"errors"
	"net/http"

	"runboard/internal/app/service"
	"runboard/internal/common"

	"github.com/go-chi/chi/v5"
)

const avatarFormField = "avatar"

type ProfileHandler struct {
	profileService *service.ProfileService
	requireUser    Middleware
	avatarMaxBytes int64
}

func NewProfileHandler(profileService *service.ProfileService, requireUser Middleware, avatarMaxBytes int64) *ProfileHandler {
	return &ProfileHandler{profileService: profileService, requireUser: requireUser, avatarMaxBytes: avatarMaxBytes}
}

type avatarResponse struct {
	Msg    string `json:"msg"`
	Avatar string `json:"avatar"`
}

func (h *ProfileHandler) RegisterRoutes(r chi.Router) {
	r.Get("/{username}", h.getProfile)

	r.Group(func(authed chi.Router) {
		authed.Use(h.requireUser)
		authed.Put("/", h.updateProfile)
		authed.Post("/avatar", h.uploadAvatar)
	})
}

func (h *ProfileHandler) getProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.profileService.GetProfile(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		common.RespondWithDomainError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, profile)
}

func (h *ProfileHandler) updateProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req service.UpdateProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if _, err := h.profileService.UpdateProfile(r.Context(), user, req); err != nil {
		common.RespondWithDomainError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, common.MessageResponse{Msg: "Profile updated successfully"})
}

func (h *ProfileHandler) uploadAvatar(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	// Leave headroom for the multipart envelope; the service enforces the file cap.
	r.Body = http.MaxBytesReader(w, r.Body, h.avatarMaxBytes+64<<10)
	file, header, err := r.FormFile(avatarFormField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			common.RespondWithError(w, http.StatusBadRequest, "avatar is too large")
			return
		}
		common.RespondWithError(w, http.StatusBadRequest, "avatar file is required")
		return
	}
	defer file.Close()

	url, err := h.profileService.UploadAvatar(r.Context(), user, header.Filename, file, header.Size)
	if err != nil {
		common.RespondWithDomainError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, avatarResponse{Msg: "Avatar uploaded successfully", Avatar: url})
}
