package service

import (
	"context"
	"errors"
	"fmt"

	"runboard/internal/common"
	"runboard/internal/common/security"
	"runboard/internal/domain/model"
	"runboard/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	userRepo repository.UserRepository
	tokens   *security.TokenIssuer
}

func NewAuthService(userRepo repository.UserRepository, tokens *security.TokenIssuer) *AuthService {
	return &AuthService{userRepo: userRepo, tokens: tokens}
}

type RegisterRequest struct {
	Username string `json:"username" validate:"required,max=64"`
	Email    string `json:"email" validate:"required,email,max=120"`
	Password string `json:"password" validate:"required,max=72"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,max=72"`
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	Username     string `json:"username"`
	Role         string `json:"role"`
}

type RefreshResponse struct {
	AccessToken string `json:"access_token"`
}

var errInvalidCredentials = common.NewError(common.ErrUnauthorized, "Invalid credentials")

// Register creates the account and its empty profile with the default role.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*model.User, error) {
	if err := common.Validate(req); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.FindByUsername(ctx, req.Username); err == nil {
		return nil, common.NewError(common.ErrConflict, "Username already exists")
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if _, err := s.userRepo.FindByEmail(ctx, req.Email); err == nil {
		return nil, common.NewError(common.ErrConflict, "Email already exists")
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashedPassword, err := security.HashPassword(req.Password)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, common.NewError(common.ErrValidation, "password is longer than 72 bytes")
		}
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hashedPassword,
		Role:         model.RoleUser,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// A concurrent registration can still lose the race on the unique index.
		if errors.Is(err, common.ErrConflict) {
			return nil, common.NewError(common.ErrConflict, "Username or email already exists")
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	logrus.WithFields(logrus.Fields{"user_id": user.ID, "username": user.Username}).Info("user registered")
	return user, nil
}

func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	if err := common.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, errInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if !security.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, errInvalidCredentials
	}

	access, err := s.tokens.GenerateAccessToken(user.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	refresh, err := s.tokens.GenerateRefreshToken(user.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return &LoginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		Username:     user.Username,
		Role:         user.Role,
	}, nil
}

// Refresh exchanges a verified refresh identity for a new access token. The
// account must still exist.
func (s *AuthService) Refresh(ctx context.Context, username string) (*RefreshResponse, error) {
	if _, err := s.CurrentUser(ctx, username); err != nil {
		return nil, err
	}
	access, err := s.tokens.GenerateAccessToken(username)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}
	return &RefreshResponse{AccessToken: access}, nil
}

// CurrentUser resolves the identity asserted by a credential.
func (s *AuthService) CurrentUser(ctx context.Context, username string) (*model.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NewError(common.ErrUnauthorized, "User not found")
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return user, nil
}
