package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"runboard/internal/common"
	"runboard/internal/domain/model"
	"runboard/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ObjectStorage stores uploaded files and returns their public URL.
type ObjectStorage interface {
	Put(ctx context.Context, name string, r io.Reader, size int64, contentType string) (string, error)
}

var avatarContentTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
}

type ProfileService struct {
	userRepo       repository.UserRepository
	runRepo        repository.RunRepository
	discussionRepo repository.DiscussionRepository
	storage        ObjectStorage
	avatarMaxBytes int64
}

// NewProfileService wires profile reads and edits. storage may be nil, in
// which case avatar uploads are unavailable.
func NewProfileService(
	userRepo repository.UserRepository,
	runRepo repository.RunRepository,
	discussionRepo repository.DiscussionRepository,
	storage ObjectStorage,
	avatarMaxBytes int64,
) *ProfileService {
	return &ProfileService{
		userRepo:       userRepo,
		runRepo:        runRepo,
		discussionRepo: discussionRepo,
		storage:        storage,
		avatarMaxBytes: avatarMaxBytes,
	}
}

// UpdateProfileRequest fields left nil are unchanged; an empty string clears.
type UpdateProfileRequest struct {
	Bio       *string `json:"bio" validate:"omitempty,max=2000"`
	Telegram  *string `json:"telegram" validate:"omitempty,max=64"`
	Discord   *string `json:"discord" validate:"omitempty,max=64"`
	AvatarURL *string `json:"avatar_url"`
}

func (s *ProfileService) GetProfile(ctx context.Context, username string) (*model.Profile, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NewError(common.ErrNotFound, "User not found")
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	profile, err := s.userRepo.FindProfile(ctx, user.ID)
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	runs, err := s.runRepo.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load runs: %w", err)
	}
	discussions, err := s.discussionRepo.ListByAuthor(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load discussions: %w", err)
	}

	out := &model.Profile{
		Username:    user.Username,
		Runs:        make([]model.ProfileRun, 0, len(runs)),
		Discussions: make([]model.ProfileDiscussion, 0, len(discussions)),
	}
	if profile != nil {
		out.Bio = profile.Bio
		out.Telegram = profile.Telegram
		out.Discord = profile.Discord
		out.Avatar = profile.AvatarURL
	}
	for _, run := range runs {
		out.Runs = append(out.Runs, model.ProfileRun{
			ID:          run.ID,
			Challenge:   run.Challenge.Name,
			Status:      run.Status,
			SubmittedAt: run.SubmittedAt,
		})
	}
	for _, d := range discussions {
		out.Discussions = append(out.Discussions, model.ProfileDiscussion{
			ID:        d.ID,
			Title:     d.Title,
			CreatedAt: d.CreatedAt,
		})
	}
	return out, nil
}

func (s *ProfileService) UpdateProfile(ctx context.Context, user *model.User, req UpdateProfileRequest) (*model.UserProfile, error) {
	if err := common.Validate(req); err != nil {
		return nil, err
	}
	if req.AvatarURL != nil && *req.AvatarURL != "" {
		if err := common.ValidateVar("avatar_url", *req.AvatarURL, "url,max=512"); err != nil {
			return nil, err
		}
	}

	profile, err := s.loadOrNewProfile(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if req.Bio != nil {
		profile.Bio = optionalText(*req.Bio)
	}
	if req.Telegram != nil {
		profile.Telegram = optionalText(*req.Telegram)
	}
	if req.Discord != nil {
		profile.Discord = optionalText(*req.Discord)
	}
	if req.AvatarURL != nil {
		profile.AvatarURL = optionalText(*req.AvatarURL)
	}

	if err := s.userRepo.SaveProfile(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to save profile: %w", err)
	}
	return profile, nil
}

// UploadAvatar stores the image and points the profile at it.
func (s *ProfileService) UploadAvatar(ctx context.Context, user *model.User, filename string, r io.Reader, size int64) (string, error) {
	if s.storage == nil {
		return "", common.NewError(common.ErrServiceUnavailable, "Avatar storage is not configured")
	}
	ext := strings.ToLower(filepath.Ext(filename))
	contentType, ok := avatarContentTypes[ext]
	if !ok {
		return "", common.NewError(common.ErrValidation, "avatar must be a png, jpg, jpeg or gif file")
	}
	if size <= 0 {
		return "", common.NewError(common.ErrValidation, "avatar is empty")
	}
	if s.avatarMaxBytes > 0 && size > s.avatarMaxBytes {
		return "", common.NewError(common.ErrValidation, fmt.Sprintf("avatar is larger than %d bytes", s.avatarMaxBytes))
	}

	profile, err := s.loadOrNewProfile(ctx, user.ID)
	if err != nil {
		return "", err
	}

	objectName := fmt.Sprintf("avatars/%d/%s%s", user.ID, uuid.NewString(), ext)
	url, err := s.storage.Put(ctx, objectName, r, size, contentType)
	if err != nil {
		return "", fmt.Errorf("failed to store avatar: %w", err)
	}

	profile.AvatarURL = &url
	if err := s.userRepo.SaveProfile(ctx, profile); err != nil {
		return "", fmt.Errorf("failed to save profile: %w", err)
	}

	logrus.WithFields(logrus.Fields{"user_id": user.ID, "object": objectName}).Info("avatar uploaded")
	return url, nil
}

func (s *ProfileService) loadOrNewProfile(ctx context.Context, userID uint) (*model.UserProfile, error) {
	profile, err := s.userRepo.FindProfile(ctx, userID)
	if errors.Is(err, common.ErrNotFound) {
		return &model.UserProfile{UserID: userID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return profile, nil
}

func optionalText(s string) *string {
	s = common.PlainText(s)
	if s == "" {
		return nil
	}
	return &s
}
