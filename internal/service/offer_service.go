package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"giftregistry/internal/cache"
	apperrors "giftregistry/internal/errors"
	"giftregistry/internal/metrics"
	"giftregistry/internal/model"
	"giftregistry/internal/repository"
)

// OfferService is the funding engine: it accepts pledges toward wishes while
// keeping raised <= price.
type OfferService interface {
	CreateOffer(ctx context.Context, pledgerID, itemID uint, amount decimal.Decimal, hidden bool) (*model.Offer, error)
	FindOwn(ctx context.Context, userID uint) ([]model.Offer, error)
	FindByID(ctx context.Context, id uint) (*model.Offer, error)
}

type offerService struct {
	offerRepo repository.OfferRepository
	recorder  PledgeRecorder
	cache     *cache.Client
	log       zerolog.Logger
}

// NewOfferService creates a new offer service.
func NewOfferService(
	offerRepo repository.OfferRepository,
	recorder PledgeRecorder,
	cache *cache.Client,
	log zerolog.Logger,
) OfferService {
	return &offerService{
		offerRepo: offerRepo,
		recorder:  recorder,
		cache:     cache,
		log:       log,
	}
}

// CreateOffer pledges amount toward a wish. The wish row is locked for the
// whole transaction; the offer insert and the raised increment commit or
// roll back together.
func (s *offerService) CreateOffer(ctx context.Context, pledgerID, itemID uint, amount decimal.Decimal, hidden bool) (*model.Offer, error) {
	if !model.ValidMoney(amount) {
		return nil, apperrors.ErrInvalidAmount
	}

	offer := &model.Offer{
		Amount: amount,
		Hidden: hidden,
		ItemID: itemID,
		UserID: pledgerID,
	}
	var newRaised decimal.Decimal

	err := s.offerRepo.WithTransaction(ctx, func(ctx context.Context, offers repository.OfferRepository, wishes repository.WishRepository) error {
		wish, err := wishes.FindByIDForUpdate(ctx, itemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrWishNotFound
			}
			return fmt.Errorf("lock wish: %w", err)
		}

		if wish.OwnerID == pledgerID {
			return apperrors.ErrSelfFunding
		}

		newRaised = wish.Raised.Add(amount)
		if newRaised.GreaterThan(wish.Price) {
			return apperrors.ErrOverFunded
		}

		if err := offers.Create(ctx, offer); err != nil {
			return fmt.Errorf("create offer: %w", err)
		}
		if err := wishes.AddRaised(ctx, itemID, amount); err != nil {
			return fmt.Errorf("update raised: %w", err)
		}
		return nil
	})

	s.audit(ctx, pledgerID, itemID, amount, err)
	if err != nil {
		s.log.Debug().Err(err).Uint("wish_id", itemID).Uint("user_id", pledgerID).Str("amount", amount.String()).Msg("pledge rejected")
		return nil, err
	}

	s.cache.Invalidate(ctx, cache.WishKey(itemID))
	s.log.Debug().Uint("wish_id", itemID).Uint("user_id", pledgerID).Str("raised", newRaised.String()).Msg("pledge accepted")
	return offer, nil
}

func (s *offerService) audit(ctx context.Context, pledgerID, itemID uint, amount decimal.Decimal, err error) {
	entry := model.PledgeLog{
		WishID: itemID,
		UserID: pledgerID,
		Amount: amount,
		Status: model.PledgeStatusAccepted,
	}
	result := metrics.OfferAccepted

	if err != nil {
		entry.Status = model.PledgeStatusRejected
		entry.Reason = err.Error()
		switch {
		case errors.Is(err, apperrors.ErrSelfFunding):
			result = metrics.OfferSelfFunding
		case errors.Is(err, apperrors.ErrOverFunded):
			result = metrics.OfferOverFunded
		case errors.Is(err, apperrors.ErrWishNotFound):
			result = metrics.OfferNotFound
		default:
			result = metrics.OfferError
		}
	}

	metrics.RecordOffer(result)
	if s.recorder != nil {
		s.recorder.Record(ctx, entry)
	}
}

// FindOwn lists the caller's pledges.
func (s *offerService) FindOwn(ctx context.Context, userID uint) ([]model.Offer, error) {
	return s.offerRepo.FindByUser(ctx, userID)
}

// FindByID retrieves an offer by ID.
func (s *offerService) FindByID(ctx context.Context, id uint) (*model.Offer, error) {
	offer, err := s.offerRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrOfferNotFound
		}
		return nil, err
	}
	return offer, nil
}
