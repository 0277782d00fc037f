package service

import (
	"context"
	"errors"
	"sync"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "giftregistry/internal/errors"
	"giftregistry/internal/model"
	"giftregistry/internal/repository"
)

var errNotSupported = errors.New("not supported by memStore")

// memStore is an in-memory stand-in for the relational store. A
// transaction holds the store lock for its whole duration and restores the
// previous state when the callback fails.
type memStore struct {
	mu          sync.Mutex
	wishes      map[uint]model.Wish
	offers      []model.Offer
	nextOfferID uint
	failRaised  error
}

func newMemStore(wishes ...model.Wish) *memStore {
	s := &memStore{wishes: map[uint]model.Wish{}, nextOfferID: 1}
	for _, w := range wishes {
		s.wishes[w.ID] = w
	}
	return s
}

func (s *memStore) wish(id uint) model.Wish {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.wishes[id]
}

func (s *memStore) offerCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.offers)
}

func (s *memStore) offerTotal(itemID uint) decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := decimal.Zero
	for _, o := range s.offers {
		if o.ItemID == itemID {
			total = total.Add(o.Amount)
		}
	}
	return total
}

type memOfferRepo struct {
	s *memStore
}

func (r memOfferRepo) Create(ctx context.Context, offer *model.Offer) error {
	offer.ID = r.s.nextOfferID
	r.s.nextOfferID++
	r.s.offers = append(r.s.offers, *offer)
	return nil
}

func (r memOfferRepo) FindByID(ctx context.Context, id uint) (*model.Offer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, o := range r.s.offers {
		if o.ID == id {
			found := o
			return &found, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r memOfferRepo) FindByUser(ctx context.Context, userID uint) ([]model.Offer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []model.Offer
	for _, o := range r.s.offers {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r memOfferRepo) WithTransaction(ctx context.Context, fn func(ctx context.Context, offers repository.OfferRepository, wishes repository.WishRepository) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	wishes := make(map[uint]model.Wish, len(r.s.wishes))
	for id, w := range r.s.wishes {
		wishes[id] = w
	}
	offers := append([]model.Offer(nil), r.s.offers...)
	nextOfferID := r.s.nextOfferID

	if err := fn(ctx, r, memWishRepo{s: r.s}); err != nil {
		r.s.wishes = wishes
		r.s.offers = offers
		r.s.nextOfferID = nextOfferID
		return err
	}
	return nil
}

// memWishRepo only backs the calls the funding transaction makes. It
// assumes the caller holds the store lock.
type memWishRepo struct {
	s *memStore
}

func (r memWishRepo) FindByIDForUpdate(ctx context.Context, id uint) (*model.Wish, error) {
	w, ok := r.s.wishes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &w, nil
}

func (r memWishRepo) AddRaised(ctx context.Context, id uint, amount decimal.Decimal) error {
	if r.s.failRaised != nil {
		return r.s.failRaised
	}
	w, ok := r.s.wishes[id]
	if !ok || w.Raised.Add(amount).GreaterThan(w.Price) {
		return apperrors.ErrOverFunded
	}
	w.Raised = w.Raised.Add(amount)
	r.s.wishes[id] = w
	return nil
}

func (r memWishRepo) Create(ctx context.Context, wish *model.Wish) error { return errNotSupported }

func (r memWishRepo) Update(ctx context.Context, id uint, fields map[string]interface{}) error {
	return errNotSupported
}

func (r memWishRepo) Delete(ctx context.Context, id uint) error { return errNotSupported }

func (r memWishRepo) FindByID(ctx context.Context, id uint) (*model.Wish, error) {
	return r.FindByIDForUpdate(ctx, id)
}

func (r memWishRepo) FindByIDWithOffers(ctx context.Context, id uint) (*model.Wish, error) {
	return r.FindByIDForUpdate(ctx, id)
}

func (r memWishRepo) FindByIDs(ctx context.Context, ids []uint) ([]model.Wish, error) {
	return nil, errNotSupported
}

func (r memWishRepo) FindByOwner(ctx context.Context, ownerID uint) ([]model.Wish, error) {
	return nil, errNotSupported
}

func (r memWishRepo) FindLast(ctx context.Context, limit int) ([]model.Wish, error) {
	return nil, errNotSupported
}

func (r memWishRepo) FindTop(ctx context.Context, limit int) ([]model.Wish, error) {
	return nil, errNotSupported
}

func (r memWishRepo) IncrementCopied(ctx context.Context, id uint) error { return errNotSupported }

func (r memWishRepo) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo repository.WishRepository) error) error {
	return fn(ctx, r)
}

// recordingAuditor collects pledge log entries in memory.
type recordingAuditor struct {
	mu      sync.Mutex
	entries []model.PledgeLog
}

func (a *recordingAuditor) Record(ctx context.Context, entry model.PledgeLog) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, entry)
}

func (a *recordingAuditor) statuses() []model.PledgeStatus {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]model.PledgeStatus, 0, len(a.entries))
	for _, e := range a.entries {
		out = append(out, e.Status)
	}
	return out
}
