package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"giftregistry/internal/cache"
	apperrors "giftregistry/internal/errors"
	"giftregistry/internal/model"
	"giftregistry/internal/repository"
)

// UserPatch carries the self-editable profile fields; nil means unchanged.
type UserPatch struct {
	Username *string
	Email    *string
	Password *string
	About    *string
	Avatar   *string
}

// UserService exposes profile operations.
type UserService interface {
	GetByID(ctx context.Context, id uint) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	Update(ctx context.Context, id uint, patch UserPatch) (*model.User, error)
	OwnWishes(ctx context.Context, id uint) ([]model.Wish, error)
	UserWishes(ctx context.Context, username string) ([]model.Wish, error)
	Find(ctx context.Context, query string) ([]model.User, error)
}

type userService struct {
	repo     repository.UserRepository
	wishRepo repository.WishRepository
	cache    *cache.Client
}

// NewUserService builds a UserService with repositories and cache.
func NewUserService(repo repository.UserRepository, wishRepo repository.WishRepository, cache *cache.Client) UserService {
	return &userService{repo: repo, wishRepo: wishRepo, cache: cache}
}

func (s *userService) GetByID(ctx context.Context, id uint) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	return cache.Fetch(ctx, s.cache, cache.UserKey(username), func(ctx context.Context) (*model.User, error) {
		user, err := s.repo.FindByUsername(ctx, username)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrUserNotFound
			}
			return nil, err
		}
		return user, nil
	})
}

// Update applies a profile patch. A new password is stored hashed.
func (s *userService) Update(ctx context.Context, id uint, patch UserPatch) (*model.User, error) {
	current, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if patch.Username != nil {
		fields["username"] = *patch.Username
	}
	if patch.Email != nil {
		fields["email"] = *patch.Email
	}
	if patch.About != nil {
		fields["about"] = *patch.About
	}
	if patch.Avatar != nil {
		fields["avatar"] = *patch.Avatar
	}
	if patch.Password != nil {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*patch.Password), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		fields["password_hash"] = string(hashedPassword)
	}

	if len(fields) > 0 {
		if err := s.repo.Update(ctx, id, fields); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil, apperrors.ErrUserAlreadyExists
			}
			return nil, fmt.Errorf("update user: %w", err)
		}
		s.cache.Invalidate(ctx, cache.UserKey(current.Username))
		if patch.Username != nil || patch.Avatar != nil {
			s.invalidateOwnWishes(ctx, id)
		}
	}

	return s.GetByID(ctx, id)
}

// invalidateOwnWishes drops cached wishes that embed the owner's profile.
// Wishes the user only pledged to expire with the wish cache TTL.
func (s *userService) invalidateOwnWishes(ctx context.Context, id uint) {
	wishes, err := s.wishRepo.FindByOwner(ctx, id)
	if err != nil || len(wishes) == 0 {
		return
	}
	keys := make([]string, 0, len(wishes))
	for _, wish := range wishes {
		keys = append(keys, cache.WishKey(wish.ID))
	}
	s.cache.Invalidate(ctx, keys...)
}

func (s *userService) OwnWishes(ctx context.Context, id uint) ([]model.Wish, error) {
	return s.wishRepo.FindByOwner(ctx, id)
}

// UserWishes lists another user's wishes. An unknown username yields an
// empty list rather than an error.
func (s *userService) UserWishes(ctx context.Context, username string) ([]model.Wish, error) {
	user, err := s.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return []model.Wish{}, nil
		}
		return nil, err
	}
	return s.wishRepo.FindByOwner(ctx, user.ID)
}

// Find searches users by a case-insensitive substring of username or email.
func (s *userService) Find(ctx context.Context, query string) ([]model.User, error) {
	return s.repo.Search(ctx, query)
}
