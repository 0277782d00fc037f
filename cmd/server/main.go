package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"

	"giftregistry/docs"
	"giftregistry/internal/auth"
	"giftregistry/internal/cache"
	"giftregistry/internal/config"
	"giftregistry/internal/db"
	"giftregistry/internal/handler"
	"giftregistry/internal/logger"
	"giftregistry/internal/repository"
	"giftregistry/internal/router"
	"giftregistry/internal/service"
)

// @title Gift Registry API
// @version 1.0
// @description Wishes, pledges and wishlists with JWT authentication.
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()
	log := logger.New(cfg.AppEnv, cfg.LogLevel)

	gormDB, err := db.Open(cfg.DBDriver, cfg.DatabaseDSN, cfg.IsDevelopment())
	if err != nil {
		log.Fatal().Err(err).Msg("database init")
	}
	if cfg.ResetDB {
		log.Warn().Msg("RESET_DB=true detected, dropping all tables")
	}
	if err := db.Migrate(gormDB, cfg.ResetDB); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB, cfg.CacheTTL)
	defer cacheClient.Close()
	if err := cacheClient.Ping(context.Background()); err != nil {
		log.Warn().Err(err).Str("addr", cfg.RedisAddr).Msg("redis unavailable, caching disabled until it recovers")
	}
	// Wish entries embed pledger profiles that are not invalidated on profile edits.
	wishCache := cacheClient.WithTTL(cfg.WishCacheTTL)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	wishRepo := repository.NewWishRepository(gormDB)
	offerRepo := repository.NewOfferRepository(gormDB)
	wishlistRepo := repository.NewWishlistRepository(gormDB)
	pledgeLogRepo := repository.NewPledgeLogRepository(gormDB)

	jwtService := auth.NewJWTService(cfg.JWTSecret, cfg.JWTTTL)
	auditor := service.NewPledgeAuditor(pledgeLogRepo, log)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService)
	userService := service.NewUserService(userRepo, wishRepo, cacheClient)
	wishService := service.NewWishService(wishRepo, wishCache)
	offerService := service.NewOfferService(offerRepo, auditor, wishCache, log)
	wishlistService := service.NewWishlistService(wishlistRepo, wishRepo)

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e := echo.New()
	router.Register(e, cfg, log, jwtService, router.Handlers{
		Auth:     handler.NewAuthHandler(authService),
		User:     handler.NewUserHandler(userService),
		Wish:     handler.NewWishHandler(wishService),
		Offer:    handler.NewOfferHandler(offerService),
		Wishlist: handler.NewWishlistHandler(wishlistService),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		addr := ":" + cfg.ServerPort
		log.Info().Str("addr", addr).Str("swagger", "http://"+docs.SwaggerInfo.Host+"/swagger/index.html").Msg("server starting")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server start")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
	auditor.Close()

	if sqlDB, err := gormDB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info().Msg("stopped")
}
