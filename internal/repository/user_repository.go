package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"giftregistry/internal/model"
)

// UserRepository defines user persistence operations.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, id uint, fields map[string]interface{}) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	Search(ctx context.Context, query string) ([]model.User, error)
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) Update(ctx context.Context, id uint, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&model.User{ID: id}).Updates(fields).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Search matches query as a literal, case-insensitive substring of the
// username or the email.
func (r *userRepository) Search(ctx context.Context, query string) ([]model.User, error) {
	pattern := SearchPattern(query)
	var users []model.User
	if err := r.db.WithContext(ctx).
		Where("LOWER(username) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern).
		Order("id").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// EscapeLike escapes LIKE metacharacters so s matches literally.
// Backslash goes first so the escapes added for % and _ are not doubled.
func EscapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

// SearchPattern builds the lower-cased substring pattern used by Search.
func SearchPattern(query string) string {
	return "%" + EscapeLike(strings.ToLower(query)) + "%"
}
