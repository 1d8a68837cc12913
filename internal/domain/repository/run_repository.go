package repository

import (
	"context"
	"time"

	"runboard/internal/domain/model"

	"gorm.io/gorm"
)

type RunRepository interface {
	Create(ctx context.Context, run *model.Run) error
	// FindByID returns the run with its owner and challenge loaded.
	FindByID(ctx context.Context, id uint) (*model.Run, error)
	UpdateStatus(ctx context.Context, id uint, status model.RunStatus, approvedAt *time.Time) error
	ListRecent(ctx context.Context, limit int) ([]model.Run, error)
	ListByUser(ctx context.Context, userID uint) ([]model.Run, error)
}

type gormRunRepository struct {
	db *gorm.DB
}

func NewRunRepository(db *gorm.DB) RunRepository {
	return &gormRunRepository{db: db}
}

func (r *gormRunRepository) Create(ctx context.Context, run *model.Run) error {
	return translate("runRepository.Create", r.db.WithContext(ctx).Omit("User", "Challenge").Create(run).Error)
}

func (r *gormRunRepository) FindByID(ctx context.Context, id uint) (*model.Run, error) {
	run := &model.Run{}
	if err := r.db.WithContext(ctx).Preload("User").Preload("Challenge").First(run, id).Error; err != nil {
		return nil, translate("runRepository.FindByID", err)
	}
	return run, nil
}

// UpdateStatus overwrites status unconditionally; there is no version check.
func (r *gormRunRepository) UpdateStatus(ctx context.Context, id uint, status model.RunStatus, approvedAt *time.Time) error {
	res := r.db.WithContext(ctx).Model(&model.Run{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":      status,
		"approved_at": approvedAt,
	})
	if res.Error != nil {
		return translate("runRepository.UpdateStatus", res.Error)
	}
	if res.RowsAffected == 0 {
		return translate("runRepository.UpdateStatus", gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *gormRunRepository) ListRecent(ctx context.Context, limit int) ([]model.Run, error) {
	var runs []model.Run
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Challenge").
		Order("submitted_at DESC, id DESC").
		Limit(limit).
		Find(&runs).Error
	if err != nil {
		return nil, translate("runRepository.ListRecent", err)
	}
	return runs, nil
}

func (r *gormRunRepository) ListByUser(ctx context.Context, userID uint) ([]model.Run, error) {
	var runs []model.Run
	err := r.db.WithContext(ctx).
		Preload("Challenge").
		Where("user_id = ?", userID).
		Order("id").
		Find(&runs).Error
	if err != nil {
		return nil, translate("runRepository.ListByUser", err)
	}
	return runs, nil
}
