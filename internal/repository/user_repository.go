package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Ravichalikanti/Retinal-Analysis/internal/models"
)

// ErrDuplicateUserID is returned by Create when the userid is already taken.
var ErrDuplicateUserID = errors.New("userid already exists")

// UserRepository defines the operations the handlers need against the
// credential store. Find methods return (nil, nil) when no record matches.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByUserID(ctx context.Context, userid string) (*models.User, error)
	FindByPhone(ctx context.Context, phone string) (*models.User, error)
	Save(ctx context.Context, user *models.User) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a gorm-backed UserRepository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create inserts a new user. The unique index on userid makes the insert
// the authoritative existence check, so two concurrent signups for the same
// userid cannot both succeed.
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateUserID
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *userRepository) FindByUserID(ctx context.Context, userid string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("userid = ?", userid).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find user by userid: %w", err)
	}
	return &user, nil
}

// FindByPhone returns the first record matching the phone. Phone carries no
// uniqueness constraint at the storage layer.
func (r *userRepository) FindByPhone(ctx context.Context, phone string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("phone = ?", phone).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find user by phone: %w", err)
	}
	return &user, nil
}

// Save persists the full record, including zero values, so clearing the OTP
// fields (empty string, nil expiry) reaches the store.
func (r *userRepository) Save(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}
