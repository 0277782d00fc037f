package main

import (
	"context"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "giftregistry/internal/errors"
	"giftregistry/internal/model"
	"giftregistry/internal/service"
)

type fakeAuth struct {
	existing map[string]bool
	nextID   uint
}

func (f *fakeAuth) Signup(ctx context.Context, input service.SignupInput) (*model.User, error) {
	if f.existing[input.Username] {
		return nil, apperrors.ErrUserAlreadyExists
	}
	f.nextID++
	return &model.User{ID: f.nextID, Username: input.Username}, nil
}

func (f *fakeAuth) Signin(ctx context.Context, username, password string) (string, error) {
	return "", apperrors.ErrInvalidCredentials
}

type fakeWishes struct {
	service.WishService
	created []model.Wish
}

func (f *fakeWishes) Create(ctx context.Context, ownerID uint, input service.WishInput) (*model.Wish, error) {
	w := model.Wish{ID: uint(len(f.created) + 1), OwnerID: ownerID, Name: input.Name, Price: input.Price}
	f.created = append(f.created, w)
	return &w, nil
}

func loadTestFixture(t *testing.T) *Fixture {
	t.Helper()
	f, err := os.Open("testdata/fixture.json")
	require.NoError(t, err)
	defer f.Close()

	fixture, err := loadFixture(f)
	require.NoError(t, err)
	return fixture
}

func TestLoadFixture(t *testing.T) {
	fixture := loadTestFixture(t)

	require.Len(t, fixture.Users, 2)
	require.Len(t, fixture.Users[0].Wishes, 2)
	assert.True(t, fixture.Users[0].Wishes[0].Price.Equal(decimal.RequireFromString("249.99")))
	assert.True(t, fixture.Users[0].Wishes[1].Price.Equal(decimal.RequireFromString("12.5")))
}

func TestSeed(t *testing.T) {
	auth := &fakeAuth{existing: map[string]bool{"bob": true}}
	wishes := &fakeWishes{}

	result, err := seed(context.Background(), auth, wishes, loadTestFixture(t), zerolog.Nop())

	require.NoError(t, err)
	assert.Equal(t, Result{UsersCreated: 1, UsersSkipped: 1, WishesAdded: 2}, result)
	require.Len(t, wishes.created, 2)
	assert.Equal(t, uint(1), wishes.created[0].OwnerID)
	assert.Equal(t, "Record brush", wishes.created[1].Name)
}

func TestSeed_RerunSkipsEveryone(t *testing.T) {
	auth := &fakeAuth{existing: map[string]bool{"alice": true, "bob": true}}
	wishes := &fakeWishes{}

	result, err := seed(context.Background(), auth, wishes, loadTestFixture(t), zerolog.Nop())

	require.NoError(t, err)
	assert.Equal(t, 2, result.UsersSkipped)
	assert.Empty(t, wishes.created)
}
