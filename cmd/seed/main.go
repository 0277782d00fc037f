package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"giftregistry/internal/auth"
	"giftregistry/internal/config"
	"giftregistry/internal/db"
	apperrors "giftregistry/internal/errors"
	"giftregistry/internal/logger"
	"giftregistry/internal/repository"
	"giftregistry/internal/service"
)

// Fixture is the seed file layout.
type Fixture struct {
	Users []SeedUser `json:"users"`
}

// SeedUser is a user together with the wishes created for them.
type SeedUser struct {
	Username string     `json:"username"`
	Email    string     `json:"email"`
	Password string     `json:"password"`
	About    string     `json:"about"`
	Avatar   string     `json:"avatar"`
	Wishes   []SeedWish `json:"wishes"`
}

// SeedWish is a wish in the seed file.
type SeedWish struct {
	Name        string          `json:"name"`
	Link        string          `json:"link"`
	Image       string          `json:"image"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
}

// Result counts what a seed run did.
type Result struct {
	UsersCreated int
	UsersSkipped int
	WishesAdded  int
}

func main() {
	file := flag.String("file", "seed.json", "path to the JSON fixture")
	flag.Parse()

	cfg := config.Load()
	log := logger.New(cfg.AppEnv, cfg.LogLevel)
	log.Info().Str("file", *file).Msg("starting seed")

	f, err := os.Open(*file)
	if err != nil {
		log.Fatal().Err(err).Msg("open fixture")
	}
	defer f.Close()

	fixture, err := loadFixture(f)
	if err != nil {
		log.Fatal().Err(err).Msg("read fixture")
	}

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseDSN, false)
	if err != nil {
		log.Fatal().Err(err).Msg("connect to database")
	}
	if err := db.Migrate(gormDB, false); err != nil {
		log.Fatal().Err(err).Msg("run migrations")
	}

	userRepo := repository.NewUserRepository(gormDB)
	wishRepo := repository.NewWishRepository(gormDB)
	authService := service.NewAuthService(userRepo, auth.NewJWTService(cfg.JWTSecret, cfg.JWTTTL))
	wishService := service.NewWishService(wishRepo, nil)

	result, err := seed(context.Background(), authService, wishService, fixture, log)
	if err != nil {
		log.Fatal().Err(err).Msg("seed")
	}

	log.Info().
		Int("users_created", result.UsersCreated).
		Int("users_skipped", result.UsersSkipped).
		Int("wishes_added", result.WishesAdded).
		Msg("seed completed")
}

func loadFixture(r io.Reader) (*Fixture, error) {
	var fixture Fixture
	if err := json.NewDecoder(r).Decode(&fixture); err != nil {
		return nil, fmt.Errorf("parse JSON: %w", err)
	}
	return &fixture, nil
}

// seed signs up every fixture user and creates their wishes. Users that
// already exist are left untouched, wishes included, so reruns are safe.
func seed(ctx context.Context, accounts service.AuthService, wishes service.WishService, fixture *Fixture, log zerolog.Logger) (Result, error) {
	var result Result

	for _, u := range fixture.Users {
		user, err := accounts.Signup(ctx, service.SignupInput{
			Username: u.Username,
			Email:    u.Email,
			Password: u.Password,
			About:    u.About,
			Avatar:   u.Avatar,
		})
		if errors.Is(err, apperrors.ErrUserAlreadyExists) {
			log.Debug().Str("username", u.Username).Msg("user exists, skipping")
			result.UsersSkipped++
			continue
		}
		if err != nil {
			return result, fmt.Errorf("signup %s: %w", u.Username, err)
		}
		result.UsersCreated++

		for _, w := range u.Wishes {
			if _, err := wishes.Create(ctx, user.ID, service.WishInput{
				Name:        w.Name,
				Link:        w.Link,
				Image:       w.Image,
				Price:       w.Price,
				Description: w.Description,
			}); err != nil {
				return result, fmt.Errorf("create wish %q for %s: %w", w.Name, u.Username, err)
			}
			result.WishesAdded++
		}
	}

	return result, nil
}
