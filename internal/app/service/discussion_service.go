package service

import (
	"context"
	"errors"
	"fmt"

	"runboard/internal/app/fanout"
	"runboard/internal/common"
	"runboard/internal/domain/model"
	"runboard/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

type DiscussionService struct {
	discussionRepo repository.DiscussionRepository
	notifier       Notifier
}

func NewDiscussionService(discussionRepo repository.DiscussionRepository, notifier Notifier) *DiscussionService {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &DiscussionService{discussionRepo: discussionRepo, notifier: notifier}
}

type CreateDiscussionRequest struct {
	Title   string `json:"title" validate:"required,max=200"`
	Content string `json:"content" validate:"required"`
}

type AddCommentRequest struct {
	Content  string `json:"content" validate:"required"`
	ParentID *uint  `json:"parent_id"`
}

func (s *DiscussionService) CreateDiscussion(ctx context.Context, author *model.User, req CreateDiscussionRequest) (*model.Discussion, error) {
	req.Title = common.PlainText(req.Title)
	req.Content = common.RichText(req.Content)
	if err := common.Validate(req); err != nil {
		return nil, err
	}

	discussion := &model.Discussion{
		Title:    req.Title,
		Content:  req.Content,
		AuthorID: author.ID,
	}
	if err := s.discussionRepo.Create(ctx, discussion); err != nil {
		return nil, fmt.Errorf("failed to create discussion: %w", err)
	}
	return discussion, nil
}

// AddComment attaches a comment to an existing discussion. A parent, when
// given, must be a comment of the same discussion.
func (s *DiscussionService) AddComment(ctx context.Context, author *model.User, discussionID uint, req AddCommentRequest) (*model.Comment, error) {
	req.Content = common.RichText(req.Content)
	if err := common.Validate(req); err != nil {
		return nil, err
	}

	if _, err := s.discussionRepo.FindByID(ctx, discussionID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NewError(common.ErrNotFound, "Discussion not found")
		}
		return nil, fmt.Errorf("failed to load discussion: %w", err)
	}

	if req.ParentID != nil {
		parent, err := s.discussionRepo.FindComment(ctx, *req.ParentID)
		switch {
		case errors.Is(err, common.ErrNotFound):
			return nil, common.NewError(common.ErrValidation, "Parent comment not found")
		case err != nil:
			return nil, fmt.Errorf("failed to load parent comment: %w", err)
		case parent.DiscussionID != discussionID:
			return nil, common.NewError(common.ErrValidation, "Parent comment belongs to another discussion")
		}
	}

	comment := &model.Comment{
		Content:      req.Content,
		AuthorID:     author.ID,
		DiscussionID: discussionID,
		ParentID:     req.ParentID,
	}
	if err := s.discussionRepo.CreateComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	s.notifier.Notify(ctx, fanout.DiscussionRoom(discussionID), fanout.EventNewComment, model.NewCommentEvent{
		DiscussionID: discussionID,
		CommentID:    comment.ID,
		Author:       author.Username,
		Content:      comment.Content,
	})

	logrus.WithFields(logrus.Fields{"discussion_id": discussionID, "comment_id": comment.ID}).Debug("comment added")
	return comment, nil
}

func (s *DiscussionService) ListRecent(ctx context.Context, limit int) ([]model.DiscussionSummary, error) {
	discussions, err := s.discussionRepo.ListRecent(ctx, ClampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list discussions: %w", err)
	}

	ids := make([]uint, 0, len(discussions))
	for _, d := range discussions {
		ids = append(ids, d.ID)
	}
	counts, err := s.discussionRepo.CountComments(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to count comments: %w", err)
	}

	out := make([]model.DiscussionSummary, 0, len(discussions))
	for _, d := range discussions {
		out = append(out, model.DiscussionSummary{
			ID:           d.ID,
			Title:        d.Title,
			Author:       model.AuthorRef{Username: d.Author.Username},
			CreatedAt:    d.CreatedAt,
			CommentCount: counts[d.ID],
		})
	}
	return out, nil
}

func (s *DiscussionService) GetDiscussion(ctx context.Context, id uint) (*model.DiscussionDetail, error) {
	discussion, err := s.discussionRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NewError(common.ErrNotFound, "Discussion not found")
		}
		return nil, fmt.Errorf("failed to load discussion: %w", err)
	}
	comments, err := s.discussionRepo.ListComments(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load comments: %w", err)
	}

	detail := &model.DiscussionDetail{
		ID:        discussion.ID,
		Title:     discussion.Title,
		Content:   discussion.Content,
		Author:    model.AuthorRef{Username: discussion.Author.Username},
		CreatedAt: discussion.CreatedAt,
		Comments:  make([]model.CommentView, 0, len(comments)),
	}
	for _, c := range comments {
		detail.Comments = append(detail.Comments, model.CommentView{
			ID:        c.ID,
			Content:   c.Content,
			Author:    c.Author.Username,
			ParentID:  c.ParentID,
			CreatedAt: c.CreatedAt,
		})
	}
	return detail, nil
}
