package handler

import (
	"net/http"

	"runboard/internal/api/middleware"
	"runboard/internal/app/service"
	"runboard/internal/common"

	"github.com/go-chi/chi/v5"
)

type RunHandler struct {
	runService  *service.RunService
	requireUser Middleware
}

func NewRunHandler(runService *service.RunService, requireUser Middleware) *RunHandler {
	return &RunHandler{runService: runService, requireUser: requireUser}
}

type submitRunResponse struct {
	Msg   string `json:"msg"`
	RunID uint   `json:"run_id"`
}

func (h *RunHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listRuns) // GET /api/runs?limit=N

	r.Group(func(authed chi.Router) {
		authed.Use(h.requireUser)
		authed.Post("/", h.submitRun)
		authed.With(middleware.ModeratorOnly).Post("/{id}/approve", h.approveRun)
	})
}

func (h *RunHandler) listRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := h.runService.ListRecent(r.Context(), limitParam(r))
	if err != nil {
		common.RespondWithDomainError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, runs)
}

func (h *RunHandler) submitRun(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req service.SubmitRunRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	run, err := h.runService.SubmitRun(r.Context(), user, req)
	if err != nil {
		common.RespondWithDomainError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, submitRunResponse{Msg: "Run submitted successfully", RunID: run.ID})
}

func (h *RunHandler) approveRun(w http.ResponseWriter, r *http.Request) {
	runID, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	if _, err := h.runService.ApproveRun(r.Context(), runID); err != nil {
		common.RespondWithDomainError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, common.MessageResponse{Msg: "Run approved"})
}
