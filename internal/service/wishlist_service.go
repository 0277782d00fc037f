package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	apperrors "giftregistry/internal/errors"
	"giftregistry/internal/model"
	"giftregistry/internal/repository"
)

// WishlistInput carries the fields of a new wishlist.
type WishlistInput struct {
	Name    string
	Image   string
	ItemIDs []uint
}

// WishlistPatch carries the editable fields of a wishlist. A nil ItemIDs
// keeps the current membership; a non-nil one replaces it.
type WishlistPatch struct {
	Name    *string
	Image   *string
	ItemIDs []uint
}

// WishlistService handles wishlist operations.
type WishlistService interface {
	Create(ctx context.Context, ownerID uint, input WishlistInput) (*model.Wishlist, error)
	FindAll(ctx context.Context) ([]model.Wishlist, error)
	FindByID(ctx context.Context, id uint) (*model.Wishlist, error)
	Update(ctx context.Context, id, requesterID uint, patch WishlistPatch) (*model.Wishlist, error)
	Remove(ctx context.Context, id, requesterID uint) (*model.Wishlist, error)
}

type wishlistService struct {
	repo     repository.WishlistRepository
	wishRepo repository.WishRepository
}

// NewWishlistService creates a new wishlist service.
func NewWishlistService(repo repository.WishlistRepository, wishRepo repository.WishRepository) WishlistService {
	return &wishlistService{
		repo:     repo,
		wishRepo: wishRepo,
	}
}

// Create stores a wishlist. Item ids with no matching wish are dropped.
func (s *wishlistService) Create(ctx context.Context, ownerID uint, input WishlistInput) (*model.Wishlist, error) {
	items, err := s.wishRepo.FindByIDs(ctx, input.ItemIDs)
	if err != nil {
		return nil, fmt.Errorf("resolve items: %w", err)
	}

	wishlist := &model.Wishlist{
		Name:    input.Name,
		Image:   input.Image,
		OwnerID: ownerID,
		Items:   items,
	}
	if err := s.repo.Create(ctx, wishlist); err != nil {
		return nil, fmt.Errorf("create wishlist: %w", err)
	}

	return s.FindByID(ctx, wishlist.ID)
}

func (s *wishlistService) FindAll(ctx context.Context) ([]model.Wishlist, error) {
	return s.repo.FindAll(ctx)
}

func (s *wishlistService) FindByID(ctx context.Context, id uint) (*model.Wishlist, error) {
	wishlist, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrWishlistNotFound
		}
		return nil, err
	}
	return wishlist, nil
}

// Update merges name and image onto the wishlist and, when item ids are
// supplied, replaces the membership set with the wishes that exist.
func (s *wishlistService) Update(ctx context.Context, id, requesterID uint, patch WishlistPatch) (*model.Wishlist, error) {
	wishlist, err := s.findOwned(ctx, id, requesterID)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if patch.Name != nil {
		fields["name"] = *patch.Name
	}
	if patch.Image != nil {
		fields["image"] = *patch.Image
	}

	var items []model.Wish
	if patch.ItemIDs != nil {
		items, err = s.wishRepo.FindByIDs(ctx, patch.ItemIDs)
		if err != nil {
			return nil, fmt.Errorf("resolve items: %w", err)
		}
	}

	if err := s.repo.Update(ctx, wishlist, fields, items); err != nil {
		return nil, fmt.Errorf("update wishlist: %w", err)
	}

	return s.FindByID(ctx, id)
}

// Remove deletes an owner's wishlist. The member wishes are kept.
func (s *wishlistService) Remove(ctx context.Context, id, requesterID uint) (*model.Wishlist, error) {
	wishlist, err := s.findOwned(ctx, id, requesterID)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Delete(ctx, wishlist); err != nil {
		return nil, fmt.Errorf("delete wishlist: %w", err)
	}
	return wishlist, nil
}

func (s *wishlistService) findOwned(ctx context.Context, id, requesterID uint) (*model.Wishlist, error) {
	wishlist, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if wishlist.OwnerID != requesterID {
		return nil, apperrors.ErrNotOwner
	}
	return wishlist, nil
}
