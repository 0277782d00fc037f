package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	apperrors "giftregistry/internal/errors"
	"giftregistry/internal/model"
)

// WishRepository defines wish persistence operations.
type WishRepository interface {
	Create(ctx context.Context, wish *model.Wish) error
	Update(ctx context.Context, id uint, fields map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Wish, error)
	FindByIDWithOffers(ctx context.Context, id uint) (*model.Wish, error)
	FindByIDForUpdate(ctx context.Context, id uint) (*model.Wish, error)
	FindByIDs(ctx context.Context, ids []uint) ([]model.Wish, error)
	FindByOwner(ctx context.Context, ownerID uint) ([]model.Wish, error)
	FindLast(ctx context.Context, limit int) ([]model.Wish, error)
	FindTop(ctx context.Context, limit int) ([]model.Wish, error)
	AddRaised(ctx context.Context, id uint, amount decimal.Decimal) error
	IncrementCopied(ctx context.Context, id uint) error
	// Transaction methods
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo WishRepository) error) error
}

type wishRepository struct {
	db *gorm.DB
}

// NewWishRepository creates a new wish repository.
func NewWishRepository(db *gorm.DB) WishRepository {
	return &wishRepository{db: db}
}

// Create creates a new wish.
func (r *wishRepository) Create(ctx context.Context, wish *model.Wish) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(wish).Error
}

// Update writes only the given columns.
func (r *wishRepository) Update(ctx context.Context, id uint, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(&model.Wish{ID: id}).Updates(fields).Error
}

// Delete removes a wish together with its offers and its wishlist
// memberships. Callers outside a transaction get one of their own.
func (r *wishRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("item_id = ?", id).Delete(&model.Offer{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM wishlist_items WHERE wish_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Wish{}, id).Error
	})
}

// FindByID finds a wish by ID with its owner.
func (r *wishRepository) FindByID(ctx context.Context, id uint) (*model.Wish, error) {
	var wish model.Wish
	if err := r.db.WithContext(ctx).Preload("Owner").First(&wish, id).Error; err != nil {
		return nil, err
	}
	return &wish, nil
}

// FindByIDWithOffers finds a wish with its owner, offers and their pledgers.
func (r *wishRepository) FindByIDWithOffers(ctx context.Context, id uint) (*model.Wish, error) {
	var wish model.Wish
	if err := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Offers", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("Offers.User").
		First(&wish, id).Error; err != nil {
		return nil, err
	}
	return &wish, nil
}

// FindByIDForUpdate finds a wish by ID with a row-level lock. Only
// meaningful inside WithTransaction.
func (r *wishRepository) FindByIDForUpdate(ctx context.Context, id uint) (*model.Wish, error) {
	var wish model.Wish
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&wish, id).Error; err != nil {
		return nil, err
	}
	return &wish, nil
}

// FindByIDs returns the wishes that exist among ids; unknown ids are skipped.
func (r *wishRepository) FindByIDs(ctx context.Context, ids []uint) ([]model.Wish, error) {
	wishes := []model.Wish{}
	if len(ids) == 0 {
		return wishes, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id").Find(&wishes).Error; err != nil {
		return nil, err
	}
	return wishes, nil
}

// FindByOwner lists a user's wishes with their offers.
func (r *wishRepository) FindByOwner(ctx context.Context, ownerID uint) ([]model.Wish, error) {
	var wishes []model.Wish
	if err := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Offers").
		Preload("Offers.User").
		Where("owner_id = ?", ownerID).
		Order("id").
		Find(&wishes).Error; err != nil {
		return nil, err
	}
	return wishes, nil
}

// FindLast lists the newest wishes.
func (r *wishRepository) FindLast(ctx context.Context, limit int) ([]model.Wish, error) {
	var wishes []model.Wish
	if err := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Offers").
		Order("created_at DESC").Order("id DESC").
		Limit(limit).
		Find(&wishes).Error; err != nil {
		return nil, err
	}
	return wishes, nil
}

// FindTop lists the most copied wishes.
func (r *wishRepository) FindTop(ctx context.Context, limit int) ([]model.Wish, error) {
	var wishes []model.Wish
	if err := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Offers").
		Order("copied DESC").Order("id").
		Limit(limit).
		Find(&wishes).Error; err != nil {
		return nil, err
	}
	return wishes, nil
}

// AddRaised adds amount to the raised total only if the result stays within
// the price. It returns ErrOverFunded when the guard rejects the update.
func (r *wishRepository) AddRaised(ctx context.Context, id uint, amount decimal.Decimal) error {
	res := r.db.WithContext(ctx).Model(&model.Wish{}).
		Where("id = ? AND raised + CAST(? AS DECIMAL(12,2)) <= price", id, amount).
		Update("raised", gorm.Expr("raised + CAST(? AS DECIMAL(12,2))", amount))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrOverFunded
	}
	return nil
}

// IncrementCopied bumps the copy counter by one.
func (r *wishRepository) IncrementCopied(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Model(&model.Wish{}).
		Where("id = ?", id).
		UpdateColumn("copied", gorm.Expr("copied + ?", 1))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// WithTransaction executes a function within a database transaction.
func (r *wishRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo WishRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &wishRepository{db: tx}
		return fn(ctx, txRepo)
	})
}
