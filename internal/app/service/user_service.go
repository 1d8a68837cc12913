package service

import (
	"context"
	"errors"
	"fmt"

	"runboard/internal/common"
	"runboard/internal/domain/model"
	"runboard/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// MakeAdmin promotes the target account. The caller's own role is checked by
// the route guard.
func (s *UserService) MakeAdmin(ctx context.Context, userID uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NewError(common.ErrNotFound, "User not found")
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if err := s.userRepo.UpdateRole(ctx, user.ID, model.RoleAdmin); err != nil {
		return nil, fmt.Errorf("failed to update role: %w", err)
	}
	user.Role = model.RoleAdmin

	logrus.WithFields(logrus.Fields{"user_id": user.ID, "username": user.Username}).Info("user promoted to admin")
	return user, nil
}
