package service

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"giftregistry/internal/model"
	"giftregistry/internal/repository"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, id uint, fields map[string]interface{}) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) Search(ctx context.Context, query string) ([]model.User, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.User), args.Error(1)
}

// MockWishRepository is a mock implementation of WishRepository.
// WithTransaction runs fn against the mock itself.
type MockWishRepository struct {
	mock.Mock
}

func (m *MockWishRepository) Create(ctx context.Context, wish *model.Wish) error {
	args := m.Called(ctx, wish)
	return args.Error(0)
}

func (m *MockWishRepository) Update(ctx context.Context, id uint, fields map[string]interface{}) error {
	args := m.Called(ctx, id, fields)
	return args.Error(0)
}

func (m *MockWishRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockWishRepository) FindByID(ctx context.Context, id uint) (*model.Wish, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Wish), args.Error(1)
}

func (m *MockWishRepository) FindByIDWithOffers(ctx context.Context, id uint) (*model.Wish, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Wish), args.Error(1)
}

func (m *MockWishRepository) FindByIDForUpdate(ctx context.Context, id uint) (*model.Wish, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Wish), args.Error(1)
}

func (m *MockWishRepository) FindByIDs(ctx context.Context, ids []uint) ([]model.Wish, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Wish), args.Error(1)
}

func (m *MockWishRepository) FindByOwner(ctx context.Context, ownerID uint) ([]model.Wish, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Wish), args.Error(1)
}

func (m *MockWishRepository) FindLast(ctx context.Context, limit int) ([]model.Wish, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Wish), args.Error(1)
}

func (m *MockWishRepository) FindTop(ctx context.Context, limit int) ([]model.Wish, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Wish), args.Error(1)
}

func (m *MockWishRepository) AddRaised(ctx context.Context, id uint, amount decimal.Decimal) error {
	args := m.Called(ctx, id, amount)
	return args.Error(0)
}

func (m *MockWishRepository) IncrementCopied(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockWishRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo repository.WishRepository) error) error {
	return fn(ctx, m)
}

// MockWishlistRepository is a mock implementation of WishlistRepository.
type MockWishlistRepository struct {
	mock.Mock
}

func (m *MockWishlistRepository) Create(ctx context.Context, wishlist *model.Wishlist) error {
	args := m.Called(ctx, wishlist)
	return args.Error(0)
}

func (m *MockWishlistRepository) Update(ctx context.Context, wishlist *model.Wishlist, fields map[string]interface{}, items []model.Wish) error {
	args := m.Called(ctx, wishlist, fields, items)
	return args.Error(0)
}

func (m *MockWishlistRepository) Delete(ctx context.Context, wishlist *model.Wishlist) error {
	args := m.Called(ctx, wishlist)
	return args.Error(0)
}

func (m *MockWishlistRepository) FindByID(ctx context.Context, id uint) (*model.Wishlist, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Wishlist), args.Error(1)
}

func (m *MockWishlistRepository) FindAll(ctx context.Context) ([]model.Wishlist, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Wishlist), args.Error(1)
}

// MockPledgeLogRepository is a mock implementation of PledgeLogRepository.
type MockPledgeLogRepository struct {
	mock.Mock
}

func (m *MockPledgeLogRepository) Create(ctx context.Context, log *model.PledgeLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *MockPledgeLogRepository) CreateBatch(ctx context.Context, logs []model.PledgeLog) error {
	args := m.Called(ctx, logs)
	return args.Error(0)
}
