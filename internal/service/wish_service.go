package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"giftregistry/internal/cache"
	apperrors "giftregistry/internal/errors"
	"giftregistry/internal/metrics"
	"giftregistry/internal/model"
	"giftregistry/internal/repository"
)

const (
	lastWishesLimit = 40
	topWishesLimit  = 20
)

// WishInput carries the fields of a new wish.
type WishInput struct {
	Name        string
	Link        string
	Image       string
	Price       decimal.Decimal
	Description string
}

// WishPatch carries the owner-editable fields of a wish; nil means unchanged.
// There is deliberately no Raised field: only pledges move the raised total.
type WishPatch struct {
	Name        *string
	Link        *string
	Image       *string
	Price       *decimal.Decimal
	Description *string
}

func (p WishPatch) fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if p.Name != nil {
		fields["name"] = *p.Name
	}
	if p.Link != nil {
		fields["link"] = *p.Link
	}
	if p.Image != nil {
		fields["image"] = *p.Image
	}
	if p.Price != nil {
		fields["price"] = *p.Price
	}
	if p.Description != nil {
		fields["description"] = *p.Description
	}
	return fields
}

// WishService handles wish operations.
type WishService interface {
	Create(ctx context.Context, ownerID uint, input WishInput) (*model.Wish, error)
	FindByID(ctx context.Context, id uint) (*model.Wish, error)
	FindLast(ctx context.Context) ([]model.Wish, error)
	FindTop(ctx context.Context) ([]model.Wish, error)
	Update(ctx context.Context, id, requesterID uint, patch WishPatch) (*model.Wish, error)
	Remove(ctx context.Context, id, requesterID uint) (*model.Wish, error)
	Copy(ctx context.Context, id, requesterID uint) (*model.Wish, error)
}

type wishService struct {
	repo  repository.WishRepository
	cache *cache.Client
}

// NewWishService creates a new wish service.
func NewWishService(repo repository.WishRepository, cache *cache.Client) WishService {
	return &wishService{
		repo:  repo,
		cache: cache,
	}
}

// Create stores a new wish; raised and copied start at zero.
func (s *wishService) Create(ctx context.Context, ownerID uint, input WishInput) (*model.Wish, error) {
	if !model.ValidMoney(input.Price) {
		return nil, apperrors.ErrInvalidAmount
	}

	wish := &model.Wish{
		Name:        input.Name,
		Link:        input.Link,
		Image:       input.Image,
		Price:       input.Price,
		Raised:      decimal.Zero,
		Description: input.Description,
		OwnerID:     ownerID,
	}
	if err := s.repo.Create(ctx, wish); err != nil {
		return nil, fmt.Errorf("create wish: %w", err)
	}
	return wish, nil
}

// FindByID retrieves a wish with owner and offers, with caching.
func (s *wishService) FindByID(ctx context.Context, id uint) (*model.Wish, error) {
	return cache.Fetch(ctx, s.cache, cache.WishKey(id), func(ctx context.Context) (*model.Wish, error) {
		wish, err := s.repo.FindByIDWithOffers(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperrors.ErrWishNotFound
			}
			return nil, err
		}
		return wish, nil
	})
}

// FindLast lists the newest wishes.
func (s *wishService) FindLast(ctx context.Context) ([]model.Wish, error) {
	return s.repo.FindLast(ctx, lastWishesLimit)
}

// FindTop lists the most copied wishes.
func (s *wishService) FindTop(ctx context.Context) ([]model.Wish, error) {
	return s.repo.FindTop(ctx, topWishesLimit)
}

// Update applies an owner's patch. The row is locked while the funding lock
// is checked so a concurrent pledge cannot slip in between.
func (s *wishService) Update(ctx context.Context, id, requesterID uint, patch WishPatch) (*model.Wish, error) {
	if patch.Price != nil && !model.ValidMoney(*patch.Price) {
		return nil, apperrors.ErrInvalidAmount
	}

	err := s.repo.WithTransaction(ctx, func(ctx context.Context, tx repository.WishRepository) error {
		wish, err := lockOwnedWish(ctx, tx, id, requesterID)
		if err != nil {
			return err
		}
		if patch.Price != nil && wish.FundingStarted() {
			return apperrors.ErrPriceLocked
		}
		return tx.Update(ctx, id, patch.fields())
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, cache.WishKey(id))
	return s.FindByID(ctx, id)
}

// Remove deletes an owner's wish. Its offers and wishlist memberships are
// deleted with it.
func (s *wishService) Remove(ctx context.Context, id, requesterID uint) (*model.Wish, error) {
	var removed *model.Wish

	err := s.repo.WithTransaction(ctx, func(ctx context.Context, tx repository.WishRepository) error {
		if _, err := lockOwnedWish(ctx, tx, id, requesterID); err != nil {
			return err
		}
		wish, err := tx.FindByIDWithOffers(ctx, id)
		if err != nil {
			return fmt.Errorf("load wish: %w", err)
		}
		if err := tx.Delete(ctx, id); err != nil {
			return fmt.Errorf("delete wish: %w", err)
		}
		removed = wish
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx, cache.WishKey(id))
	return removed, nil
}

// Copy duplicates a wish into the requester's registry and bumps the
// source's copy counter. The copy starts unfunded.
func (s *wishService) Copy(ctx context.Context, id, requesterID uint) (*model.Wish, error) {
	source, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrWishNotFound
		}
		return nil, err
	}

	if err := s.repo.IncrementCopied(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrWishNotFound
		}
		return nil, fmt.Errorf("increment copied: %w", err)
	}
	s.cache.Invalidate(ctx, cache.WishKey(id))

	duplicate := &model.Wish{
		Name:        source.Name,
		Link:        source.Link,
		Image:       source.Image,
		Price:       source.Price,
		Raised:      decimal.Zero,
		Description: source.Description,
		OwnerID:     requesterID,
	}
	if err := s.repo.Create(ctx, duplicate); err != nil {
		return nil, fmt.Errorf("create copy: %w", err)
	}

	metrics.RecordCopy()
	return duplicate, nil
}

func lockOwnedWish(ctx context.Context, tx repository.WishRepository, id, requesterID uint) (*model.Wish, error) {
	wish, err := tx.FindByIDForUpdate(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrWishNotFound
		}
		return nil, fmt.Errorf("lock wish: %w", err)
	}
	if wish.OwnerID != requesterID {
		return nil, apperrors.ErrNotOwner
	}
	return wish, nil
}
