package service

import (
	"context"
	"errors"
	"fmt"

	"runboard/internal/common"
	"runboard/internal/domain/model"
	"runboard/internal/domain/repository"

	"github.com/gosimple/slug"
)

type ChallengeService struct {
	challengeRepo repository.ChallengeRepository
}

func NewChallengeService(challengeRepo repository.ChallengeRepository) *ChallengeService {
	return &ChallengeService{challengeRepo: challengeRepo}
}

type CreateChallengeRequest struct {
	Name       string `json:"name" validate:"required,max=120"`
	Difficulty int    `json:"difficulty" validate:"gte=0"`
	League     string `json:"league" validate:"required,max=64"`
}

func (s *ChallengeService) CreateChallenge(ctx context.Context, req CreateChallengeRequest) (*model.Challenge, error) {
	req.Name = common.PlainText(req.Name)
	req.League = common.PlainText(req.League)
	if err := common.Validate(req); err != nil {
		return nil, err
	}

	challengeSlug := slug.Make(req.Name)
	if challengeSlug == "" {
		return nil, common.NewError(common.ErrValidation, "name must contain letters or digits")
	}

	challenge := &model.Challenge{
		Name:       req.Name,
		Slug:       challengeSlug,
		Difficulty: req.Difficulty,
		League:     req.League,
	}
	if err := s.challengeRepo.Create(ctx, challenge); err != nil {
		if errors.Is(err, common.ErrConflict) {
			return nil, common.NewError(common.ErrConflict, "Challenge already exists")
		}
		return nil, fmt.Errorf("failed to create challenge: %w", err)
	}
	return challenge, nil
}

func (s *ChallengeService) ListChallenges(ctx context.Context) ([]model.Challenge, error) {
	challenges, err := s.challengeRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list challenges: %w", err)
	}
	return challenges, nil
}

func (s *ChallengeService) GetChallengeBySlug(ctx context.Context, challengeSlug string) (*model.Challenge, error) {
	challenge, err := s.challengeRepo.FindBySlug(ctx, challengeSlug)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NewError(common.ErrNotFound, "Challenge not found")
		}
		return nil, fmt.Errorf("failed to load challenge: %w", err)
	}
	return challenge, nil
}
