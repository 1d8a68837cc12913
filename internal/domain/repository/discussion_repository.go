package repository

import (
	"context"

	"runboard/internal/domain/model"

	"gorm.io/gorm"
)

type DiscussionRepository interface {
	Create(ctx context.Context, discussion *model.Discussion) error
	// FindByID returns the discussion with its author loaded.
	FindByID(ctx context.Context, id uint) (*model.Discussion, error)
	ListRecent(ctx context.Context, limit int) ([]model.Discussion, error)
	ListByAuthor(ctx context.Context, authorID uint) ([]model.Discussion, error)
	CountComments(ctx context.Context, discussionIDs []uint) (map[uint]int64, error)

	CreateComment(ctx context.Context, comment *model.Comment) error
	FindComment(ctx context.Context, id uint) (*model.Comment, error)
	// ListComments returns the thread's comments in creation order with authors loaded.
	ListComments(ctx context.Context, discussionID uint) ([]model.Comment, error)
}

type gormDiscussionRepository struct {
	db *gorm.DB
}

func NewDiscussionRepository(db *gorm.DB) DiscussionRepository {
	return &gormDiscussionRepository{db: db}
}

func (r *gormDiscussionRepository) Create(ctx context.Context, discussion *model.Discussion) error {
	return translate("discussionRepository.Create", r.db.WithContext(ctx).Omit("Author").Create(discussion).Error)
}

func (r *gormDiscussionRepository) FindByID(ctx context.Context, id uint) (*model.Discussion, error) {
	discussion := &model.Discussion{}
	if err := r.db.WithContext(ctx).Preload("Author").First(discussion, id).Error; err != nil {
		return nil, translate("discussionRepository.FindByID", err)
	}
	return discussion, nil
}

func (r *gormDiscussionRepository) ListRecent(ctx context.Context, limit int) ([]model.Discussion, error) {
	var discussions []model.Discussion
	err := r.db.WithContext(ctx).
		Preload("Author").
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&discussions).Error
	if err != nil {
		return nil, translate("discussionRepository.ListRecent", err)
	}
	return discussions, nil
}

func (r *gormDiscussionRepository) ListByAuthor(ctx context.Context, authorID uint) ([]model.Discussion, error) {
	var discussions []model.Discussion
	if err := r.db.WithContext(ctx).Where("author_id = ?", authorID).Order("id").Find(&discussions).Error; err != nil {
		return nil, translate("discussionRepository.ListByAuthor", err)
	}
	return discussions, nil
}

func (r *gormDiscussionRepository) CountComments(ctx context.Context, discussionIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(discussionIDs))
	if len(discussionIDs) == 0 {
		return counts, nil
	}
	var rows []struct {
		DiscussionID uint
		Total        int64
	}
	err := r.db.WithContext(ctx).
		Model(&model.Comment{}).
		Select("discussion_id, COUNT(*) AS total").
		Where("discussion_id IN ?", discussionIDs).
		Group("discussion_id").
		Scan(&rows).Error
	if err != nil {
		return nil, translate("discussionRepository.CountComments", err)
	}
	for _, row := range rows {
		counts[row.DiscussionID] = row.Total
	}
	return counts, nil
}

func (r *gormDiscussionRepository) CreateComment(ctx context.Context, comment *model.Comment) error {
	return translate("discussionRepository.CreateComment", r.db.WithContext(ctx).Omit("Author").Create(comment).Error)
}

func (r *gormDiscussionRepository) FindComment(ctx context.Context, id uint) (*model.Comment, error) {
	comment := &model.Comment{}
	if err := r.db.WithContext(ctx).First(comment, id).Error; err != nil {
		return nil, translate("discussionRepository.FindComment", err)
	}
	return comment, nil
}

func (r *gormDiscussionRepository) ListComments(ctx context.Context, discussionID uint) ([]model.Comment, error) {
	var comments []model.Comment
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("discussion_id = ?", discussionID).
		Order("id").
		Find(&comments).Error
	if err != nil {
		return nil, translate("discussionRepository.ListComments", err)
	}
	return comments, nil
}
