package repository

import (
	"context"

	"gorm.io/gorm"

	"giftregistry/internal/model"
)

// WishlistRepository defines wishlist persistence operations.
type WishlistRepository interface {
	Create(ctx context.Context, wishlist *model.Wishlist) error
	// Update writes fields and, when items is non-nil, replaces the whole
	// membership set with items.
	Update(ctx context.Context, wishlist *model.Wishlist, fields map[string]interface{}, items []model.Wish) error
	Delete(ctx context.Context, wishlist *model.Wishlist) error
	FindByID(ctx context.Context, id uint) (*model.Wishlist, error)
	FindAll(ctx context.Context) ([]model.Wishlist, error)
}

type wishlistRepository struct {
	db *gorm.DB
}

// NewWishlistRepository creates a new wishlist repository.
func NewWishlistRepository(db *gorm.DB) WishlistRepository {
	return &wishlistRepository{db: db}
}

// Create inserts the wishlist and its membership rows. The member wishes
// themselves are only referenced, never upserted.
func (r *wishlistRepository) Create(ctx context.Context, wishlist *model.Wishlist) error {
	return r.db.WithContext(ctx).Omit("Owner", "Items.*").Create(wishlist).Error
}

func (r *wishlistRepository) Update(ctx context.Context, wishlist *model.Wishlist, fields map[string]interface{}, items []model.Wish) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(fields) > 0 {
			if err := tx.Model(&model.Wishlist{ID: wishlist.ID}).Updates(fields).Error; err != nil {
				return err
			}
		}
		if items == nil {
			return nil
		}
		if err := tx.Exec("DELETE FROM wishlist_items WHERE wishlist_id = ?", wishlist.ID).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		return tx.Table("wishlist_items").Create(membershipRows(wishlist.ID, items)).Error
	})
}

func membershipRows(wishlistID uint, items []model.Wish) []map[string]interface{} {
	rows := make([]map[string]interface{}, 0, len(items))
	for _, item := range items {
		rows = append(rows, map[string]interface{}{
			"wishlist_id": wishlistID,
			"wish_id":     item.ID,
		})
	}
	return rows
}

// Delete clears the membership rows, then the wishlist.
func (r *wishlistRepository) Delete(ctx context.Context, wishlist *model.Wishlist) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM wishlist_items WHERE wishlist_id = ?", wishlist.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Wishlist{}, wishlist.ID).Error
	})
}

// FindByID finds a wishlist with owner, items and item owners.
func (r *wishlistRepository) FindByID(ctx context.Context, id uint) (*model.Wishlist, error) {
	var wishlist model.Wishlist
	if err := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("wishes.id") }).
		Preload("Items.Owner").
		First(&wishlist, id).Error; err != nil {
		return nil, err
	}
	return &wishlist, nil
}

// FindAll lists every wishlist with owner and items.
func (r *wishlistRepository) FindAll(ctx context.Context) ([]model.Wishlist, error) {
	var wishlists []model.Wishlist
	if err := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Items").
		Order("id").
		Find(&wishlists).Error; err != nil {
		return nil, err
	}
	return wishlists, nil
}
