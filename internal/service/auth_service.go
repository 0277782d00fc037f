package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"giftregistry/internal/auth"
	apperrors "giftregistry/internal/errors"
	"giftregistry/internal/model"
	"giftregistry/internal/repository"
)

const bcryptCost = 10

// SignupInput carries the fields of a registration.
type SignupInput struct {
	Username string
	Email    string
	Password string
	About    string
	Avatar   string
}

// AuthService handles authentication operations.
type AuthService interface {
	Signup(ctx context.Context, input SignupInput) (*model.User, error)
	Signin(ctx context.Context, username, password string) (accessToken string, err error)
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// Signup creates a new user with a hashed password.
func (s *authService) Signup(ctx context.Context, input SignupInput) (*model.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hashedPassword),
		About:        input.About,
		Avatar:       input.Avatar,
	}
	if user.About == "" {
		user.About = model.DefaultAbout
	}
	if user.Avatar == "" {
		user.Avatar = model.DefaultAvatar
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// username and email are unique columns
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrUserAlreadyExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Signin verifies credentials and returns a signed access token.
func (s *authService) Signin(ctx context.Context, username, password string) (string, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.ErrInvalidCredentials
		}
		return "", fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", apperrors.ErrInvalidCredentials
	}

	accessToken, err := s.jwtService.GenerateAccessToken(user.ID, user.Username)
	if err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}
	return accessToken, nil
}
