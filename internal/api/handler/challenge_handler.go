package handler

import (
	"net/http"

	"runboard/internal/api/middleware"
	"runboard/internal/app/service"
	"runboard/internal/common"

	"github.com/go-chi/chi/v5"
)

type ChallengeHandler struct {
	challengeService *service.ChallengeService
	requireUser      Middleware
}

func NewChallengeHandler(challengeService *service.ChallengeService, requireUser Middleware) *ChallengeHandler {
	return &ChallengeHandler{challengeService: challengeService, requireUser: requireUser}
}

func (h *ChallengeHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listChallenges)     // GET /api/challenges
	r.Get("/{slug}", h.getChallenge) // GET /api/challenges/any-percent

	r.Group(func(adminRouter chi.Router) {
		adminRouter.Use(h.requireUser)
		adminRouter.Use(middleware.AdminOnly)
		adminRouter.Post("/", h.createChallenge)
	})
}

func (h *ChallengeHandler) listChallenges(w http.ResponseWriter, r *http.Request) {
	challenges, err := h.challengeService.ListChallenges(r.Context())
	if err != nil {
		common.RespondWithDomainError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, challenges)
}

func (h *ChallengeHandler) getChallenge(w http.ResponseWriter, r *http.Request) {
	challenge, err := h.challengeService.GetChallengeBySlug(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		common.RespondWithDomainError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, challenge)
}

func (h *ChallengeHandler) createChallenge(w http.ResponseWriter, r *http.Request) {
	var req service.CreateChallengeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	challenge, err := h.challengeService.CreateChallenge(r.Context(), req)
	if err != nil {
		common.RespondWithDomainError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, challenge)
}
