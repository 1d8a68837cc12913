package handler

import (
	"net/http"

	"runboard/internal/app/service"
	"runboard/internal/common"

	"github.com/go-chi/chi/v5"
)

type DiscussionHandler struct {
	discussionService *service.DiscussionService
	requireUser       Middleware
}

func NewDiscussionHandler(discussionService *service.DiscussionService, requireUser Middleware) *DiscussionHandler {
	return &DiscussionHandler{discussionService: discussionService, requireUser: requireUser}
}

type createDiscussionResponse struct {
	Msg          string `json:"msg"`
	DiscussionID uint   `json:"discussion_id"`
}

type addCommentResponse struct {
	Msg       string `json:"msg"`
	CommentID uint   `json:"comment_id"`
}

func (h *DiscussionHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listDiscussions)
	r.Get("/{id}", h.getDiscussion)

	r.Group(func(authed chi.Router) {
		authed.Use(h.requireUser)
		authed.Post("/", h.createDiscussion)
		authed.Post("/{id}/comments", h.addComment)
	})
}

func (h *DiscussionHandler) listDiscussions(w http.ResponseWriter, r *http.Request) {
	discussions, err := h.discussionService.ListRecent(r.Context(), limitParam(r))
	if err != nil {
		common.RespondWithDomainError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, discussions)
}

func (h *DiscussionHandler) getDiscussion(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	detail, err := h.discussionService.GetDiscussion(r.Context(), id)
	if err != nil {
		common.RespondWithDomainError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, detail)
}

func (h *DiscussionHandler) createDiscussion(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	var req service.CreateDiscussionRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	discussion, err := h.discussionService.CreateDiscussion(r.Context(), user, req)
	if err != nil {
		common.RespondWithDomainError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, createDiscussionResponse{
		Msg:          "Discussion created successfully",
		DiscussionID: discussion.ID,
	})
}

func (h *DiscussionHandler) addComment(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	discussionID, ok := idParam(w, r, "id")
	if !ok {
		return
	}
	var req service.AddCommentRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	comment, err := h.discussionService.AddComment(r.Context(), user, discussionID, req)
	if err != nil {
		common.RespondWithDomainError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, addCommentResponse{Msg: "Comment added successfully", CommentID: comment.ID})
}
