package repository

import (
	"context"

	"runboard/internal/domain/model"

	"gorm.io/gorm"
)

type ChallengeRepository interface {
	Create(ctx context.Context, challenge *model.Challenge) error
	FindByID(ctx context.Context, id uint) (*model.Challenge, error)
	FindBySlug(ctx context.Context, slug string) (*model.Challenge, error)
	List(ctx context.Context) ([]model.Challenge, error)
}

type gormChallengeRepository struct {
	db *gorm.DB
}

func NewChallengeRepository(db *gorm.DB) ChallengeRepository {
	return &gormChallengeRepository{db: db}
}

func (r *gormChallengeRepository) Create(ctx context.Context, challenge *model.Challenge) error {
	return translate("challengeRepository.Create", r.db.WithContext(ctx).Create(challenge).Error)
}

func (r *gormChallengeRepository) FindByID(ctx context.Context, id uint) (*model.Challenge, error) {
	challenge := &model.Challenge{}
	if err := r.db.WithContext(ctx).First(challenge, id).Error; err != nil {
		return nil, translate("challengeRepository.FindByID", err)
	}
	return challenge, nil
}

func (r *gormChallengeRepository) FindBySlug(ctx context.Context, slug string) (*model.Challenge, error) {
	challenge := &model.Challenge{}
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(challenge).Error; err != nil {
		return nil, translate("challengeRepository.FindBySlug", err)
	}
	return challenge, nil
}

func (r *gormChallengeRepository) List(ctx context.Context) ([]model.Challenge, error) {
	var challenges []model.Challenge
	if err := r.db.WithContext(ctx).Order("difficulty, name").Find(&challenges).Error; err != nil {
		return nil, translate("challengeRepository.List", err)
	}
	return challenges, nil
}
