package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "giftregistry/internal/errors"
	"giftregistry/internal/model"
)

func TestUserService_UserWishes(t *testing.T) {
	t.Run("unknown username yields empty list", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockWishes := new(MockWishRepository)
		mockRepo.On("FindByUsername", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)

		svc := NewUserService(mockRepo, mockWishes, nil)
		wishes, err := svc.UserWishes(context.Background(), "ghost")

		require.NoError(t, err)
		assert.NotNil(t, wishes)
		assert.Empty(t, wishes)
		mockWishes.AssertNotCalled(t, "FindByOwner", mock.Anything, mock.Anything)
	})

	t.Run("known username", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockWishes := new(MockWishRepository)
		mockRepo.On("FindByUsername", mock.Anything, "alice").Return(&model.User{ID: 3, Username: "alice"}, nil)
		mockWishes.On("FindByOwner", mock.Anything, uint(3)).Return([]model.Wish{{ID: 1, OwnerID: 3}}, nil)

		svc := NewUserService(mockRepo, mockWishes, nil)
		wishes, err := svc.UserWishes(context.Background(), "alice")

		require.NoError(t, err)
		assert.Len(t, wishes, 1)
		mockWishes.AssertExpectations(t)
	})
}

func TestUserService_GetByUsername_NotFound(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByUsername", mock.Anything, "ghost").Return(nil, gorm.ErrRecordNotFound)

	svc := NewUserService(mockRepo, new(MockWishRepository), nil)
	user, err := svc.GetByUsername(context.Background(), "ghost")

	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	assert.Nil(t, user)
}

func TestUserService_Update(t *testing.T) {
	current := &model.User{ID: 3, Username: "alice", Email: "alice@example.com"}

	t.Run("hashes new password", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, uint(3)).Return(current, nil)
		mockRepo.On("Update", mock.Anything, uint(3), mock.MatchedBy(func(fields map[string]interface{}) bool {
			hash, ok := fields["password_hash"].(string)
			if !ok || fields["about"] != "Hello" {
				return false
			}
			return bcrypt.CompareHashAndPassword([]byte(hash), []byte("s3cret!")) == nil
		})).Return(nil)

		svc := NewUserService(mockRepo, new(MockWishRepository), nil)
		user, err := svc.Update(context.Background(), 3, UserPatch{Password: strPtr("s3cret!"), About: strPtr("Hello")})

		require.NoError(t, err)
		assert.Equal(t, current, user)
		mockRepo.AssertExpectations(t)
	})

	t.Run("taken username", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, uint(3)).Return(current, nil)
		mockRepo.On("Update", mock.Anything, uint(3), map[string]interface{}{"username": "bob"}).Return(gorm.ErrDuplicatedKey)

		svc := NewUserService(mockRepo, new(MockWishRepository), nil)
		user, err := svc.Update(context.Background(), 3, UserPatch{Username: strPtr("bob")})

		assert.ErrorIs(t, err, apperrors.ErrUserAlreadyExists)
		assert.Nil(t, user)
	})

	t.Run("empty patch skips the write", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, uint(3)).Return(current, nil)

		svc := NewUserService(mockRepo, new(MockWishRepository), nil)
		_, err := svc.Update(context.Background(), 3, UserPatch{})

		require.NoError(t, err)
		mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing user", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, uint(9)).Return(nil, gorm.ErrRecordNotFound)

		svc := NewUserService(mockRepo, new(MockWishRepository), nil)
		_, err := svc.Update(context.Background(), 9, UserPatch{About: strPtr("x")})

		assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	})
}

func TestUserService_Find(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("Search", mock.Anything, "100%").Return([]model.User{{ID: 1, Username: "deal100%"}}, nil)

	svc := NewUserService(mockRepo, new(MockWishRepository), nil)
	users, err := svc.Find(context.Background(), "100%")

	require.NoError(t, err)
	assert.Len(t, users, 1)
	mockRepo.AssertExpectations(t)
}
