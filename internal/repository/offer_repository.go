package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"giftregistry/internal/model"
)

// OfferRepository defines offer persistence operations.
type OfferRepository interface {
	Create(ctx context.Context, offer *model.Offer) error
	FindByID(ctx context.Context, id uint) (*model.Offer, error)
	FindByUser(ctx context.Context, userID uint) ([]model.Offer, error)
	// WithTransaction runs fn with offer and wish repositories bound to the
	// same transaction, so a pledge and the raised total commit together.
	WithTransaction(ctx context.Context, fn func(ctx context.Context, offers OfferRepository, wishes WishRepository) error) error
}

type offerRepository struct {
	db *gorm.DB
}

// NewOfferRepository creates a new offer repository.
func NewOfferRepository(db *gorm.DB) OfferRepository {
	return &offerRepository{db: db}
}

// Create creates a new offer record.
func (r *offerRepository) Create(ctx context.Context, offer *model.Offer) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(offer).Error
}

// FindByID finds an offer with its pledger, its wish and the wish owner.
func (r *offerRepository) FindByID(ctx context.Context, id uint) (*model.Offer, error) {
	var offer model.Offer
	if err := r.withRelations(ctx).First(&offer, id).Error; err != nil {
		return nil, err
	}
	return &offer, nil
}

// FindByUser lists the offers a user has pledged.
func (r *offerRepository) FindByUser(ctx context.Context, userID uint) ([]model.Offer, error) {
	var offers []model.Offer
	if err := r.withRelations(ctx).Where("user_id = ?", userID).Order("id").Find(&offers).Error; err != nil {
		return nil, err
	}
	return offers, nil
}

func (r *offerRepository) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("User").Preload("Item").Preload("Item.Owner")
}

// WithTransaction executes a function within a database transaction.
func (r *offerRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, offers OfferRepository, wishes WishRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &offerRepository{db: tx}, &wishRepository{db: tx})
	})
}
