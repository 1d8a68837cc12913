package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"runboard/internal/app/fanout"
	"runboard/internal/common"
	"runboard/internal/domain/model"
	"runboard/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

const (
	DefaultListLimit = 5
	MaxListLimit     = 100
)

type RunService struct {
	runRepo       repository.RunRepository
	challengeRepo repository.ChallengeRepository
	notifier      Notifier
	announcer     RunAnnouncer
}

// NewRunService wires the run workflow. announcer may be nil.
func NewRunService(
	runRepo repository.RunRepository,
	challengeRepo repository.ChallengeRepository,
	notifier Notifier,
	announcer RunAnnouncer,
) *RunService {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &RunService{
		runRepo:       runRepo,
		challengeRepo: challengeRepo,
		notifier:      notifier,
		announcer:     announcer,
	}
}

type SubmitRunRequest struct {
	ChallengeID uint   `json:"challenge_id" validate:"required"`
	VideoURL    string `json:"video_url" validate:"required,url,max=512"`
	Description string `json:"description" validate:"max=5000"`
}

func (s *RunService) SubmitRun(ctx context.Context, user *model.User, req SubmitRunRequest) (*model.Run, error) {
	if err := common.Validate(req); err != nil {
		return nil, err
	}

	challenge, err := s.challengeRepo.FindByID(ctx, req.ChallengeID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NewError(common.ErrNotFound, "Challenge not found")
		}
		return nil, fmt.Errorf("failed to load challenge: %w", err)
	}

	run := &model.Run{
		UserID:      user.ID,
		ChallengeID: challenge.ID,
		VideoURL:    req.VideoURL,
		Description: common.PlainText(req.Description),
		Status:      model.RunStatusPending,
	}
	if err := s.runRepo.Create(ctx, run); err != nil {
		return nil, fmt.Errorf("failed to create run: %w", err)
	}

	logrus.WithFields(logrus.Fields{"run_id": run.ID, "user_id": user.ID, "challenge_id": challenge.ID}).Info("run submitted")
	return run, nil
}

// ApproveRun moves the run to approved and notifies its owner. Approving an
// already approved run stamps it again and notifies again.
func (s *RunService) ApproveRun(ctx context.Context, runID uint) (*model.Run, error) {
	run, err := s.runRepo.FindByID(ctx, runID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NewError(common.ErrNotFound, "Run not found")
		}
		return nil, fmt.Errorf("failed to load run: %w", err)
	}

	now := time.Now().UTC()
	if err := s.runRepo.UpdateStatus(ctx, run.ID, model.RunStatusApproved, &now); err != nil {
		return nil, fmt.Errorf("failed to approve run: %w", err)
	}
	run.Status = model.RunStatusApproved
	run.ApprovedAt = &now

	s.notifier.Notify(ctx, fanout.UserRoom(run.UserID), fanout.EventRunApproved, model.RunApprovedEvent{
		UserID:    run.UserID,
		RunID:     run.ID,
		Challenge: run.Challenge.Name,
	})
	if s.announcer != nil {
		s.announcer.RunApproved(run.User.Username, run.Challenge.Name, run.VideoURL)
	}

	logrus.WithFields(logrus.Fields{"run_id": run.ID, "user_id": run.UserID}).Info("run approved")
	return run, nil
}

func (s *RunService) ListRecent(ctx context.Context, limit int) ([]model.RunSummary, error) {
	runs, err := s.runRepo.ListRecent(ctx, ClampLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	out := make([]model.RunSummary, 0, len(runs))
	for _, run := range runs {
		out = append(out, model.RunSummary{
			ID:          run.ID,
			Username:    run.User.Username,
			Challenge:   run.Challenge.Name,
			Status:      run.Status,
			SubmittedAt: run.SubmittedAt,
		})
	}
	return out, nil
}

// ClampLimit applies the listing default and bounds.
func ClampLimit(limit int) int {
	switch {
	case limit <= 0:
		return DefaultListLimit
	case limit > MaxListLimit:
		return MaxListLimit
	}
	return limit
}
