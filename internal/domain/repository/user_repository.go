package repository

import (
	"context"

	"runboard/internal/domain/model"

	"gorm.io/gorm"
)

type UserRepository interface {
	// Create stores the user together with its (possibly empty) profile.
	Create(ctx context.Context, user *model.User) error
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByID(ctx context.Context, id uint) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	UpdateRole(ctx context.Context, id uint, role string) error

	// ListWithApprovedRuns loads every user with approved runs and their
	// challenges, runs ordered by id.
	ListWithApprovedRuns(ctx context.Context) ([]model.User, error)

	FindProfile(ctx context.Context, userID uint) (*model.UserProfile, error)
	SaveProfile(ctx context.Context, profile *model.UserProfile) error
}

type gormUserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &gormUserRepository{db: db}
}

func (r *gormUserRepository) Create(ctx context.Context, user *model.User) error {
	if user.Profile == nil {
		user.Profile = &model.UserProfile{}
	}
	return translate("userRepository.Create", r.db.WithContext(ctx).Create(user).Error)
}

func (r *gormUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, "userRepository.FindByEmail", "email = ?", email)
}

func (r *gormUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.findOne(ctx, "userRepository.FindByUsername", "username = ?", username)
}

func (r *gormUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	return r.findOne(ctx, "userRepository.FindByID", "id = ?", id)
}

func (r *gormUserRepository) findOne(ctx context.Context, op, query string, arg interface{}) (*model.User, error) {
	user := &model.User{}
	if err := r.db.WithContext(ctx).Where(query, arg).First(user).Error; err != nil {
		return nil, translate(op, err)
	}
	return user, nil
}

func (r *gormUserRepository) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Order("id").Find(&users).Error; err != nil {
		return nil, translate("userRepository.List", err)
	}
	return users, nil
}

func (r *gormUserRepository) UpdateRole(ctx context.Context, id uint, role string) error {
	res := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Update("role", role)
	if res.Error != nil {
		return translate("userRepository.UpdateRole", res.Error)
	}
	if res.RowsAffected == 0 {
		return translate("userRepository.UpdateRole", gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *gormUserRepository) ListWithApprovedRuns(ctx context.Context) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).
		Preload("Runs", func(db *gorm.DB) *gorm.DB {
			return db.Where("status = ?", model.RunStatusApproved).Order("id")
		}).
		Preload("Runs.Challenge").
		Order("id").
		Find(&users).Error
	if err != nil {
		return nil, translate("userRepository.ListWithApprovedRuns", err)
	}
	return users, nil
}

func (r *gormUserRepository) FindProfile(ctx context.Context, userID uint) (*model.UserProfile, error) {
	profile := &model.UserProfile{}
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(profile).Error; err != nil {
		return nil, translate("userRepository.FindProfile", err)
	}
	return profile, nil
}

func (r *gormUserRepository) SaveProfile(ctx context.Context, profile *model.UserProfile) error {
	return translate("userRepository.SaveProfile", r.db.WithContext(ctx).Save(profile).Error)
}
