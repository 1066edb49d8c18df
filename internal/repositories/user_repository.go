package repositories

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"jobprep/api/internal/models"
	"jobprep/api/internal/utils"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound = fmt.Errorf("user %w", models.ErrNotFound)
	ErrEmailTaken   = fmt.Errorf("email already registered: %w", models.ErrConflict)
)

type UserRepository struct {
	DB *gorm.DB
}

// Migrate creates or updates the users table.
func (r *UserRepository) Migrate(ctx context.Context) error {
	return r.DB.WithContext(ctx).AutoMigrate(&models.User{})
}

func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	err := r.DB.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrEmailTaken
	}
	return err
}

func (r *UserRepository) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	id, err := parseUserID(userID)
	if err != nil {
		return nil, err
	}
	var user models.User
	err = r.DB.WithContext(ctx).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.DB.WithContext(ctx).Where("email = ?", utils.NormalizeEmail(email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUsersByIDs loads the given users keyed by their string id. Unknown or
// malformed ids are skipped.
func (r *UserRepository) GetUsersByIDs(ctx context.Context, userIDs []string) (map[string]*models.User, error) {
	ids := make([]uint, 0, len(userIDs))
	for _, raw := range userIDs {
		if id, err := parseUserID(raw); err == nil {
			ids = append(ids, id)
		}
	}
	out := make(map[string]*models.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var users []models.User
	if err := r.DB.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	for i := range users {
		out[users[i].IDString()] = &users[i]
	}
	return out, nil
}

// UpdateUser applies column updates. A map is used so that empty strings are written.
func (r *UserRepository) UpdateUser(ctx context.Context, userID string, updates map[string]interface{}) (*models.User, error) {
	user, err := r.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if err := r.DB.WithContext(ctx).Model(user).Updates(updates).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return r.GetUserByID(ctx, userID)
}

// SetAdmin grants or revokes the admin flag for the account registered under email.
func (r *UserRepository) SetAdmin(ctx context.Context, email string, admin bool) (*models.User, error) {
	user, err := r.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if err := r.DB.WithContext(ctx).Model(user).Update("is_admin", admin).Error; err != nil {
		return nil, err
	}
	user.IsAdmin = admin
	return user, nil
}

func parseUserID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, ErrUserNotFound
	}
	return uint(id), nil
}
