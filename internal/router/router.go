package router

import (
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"golang.org/x/time/rate"

	"giftregistry/internal/auth"
	"giftregistry/internal/config"
	"giftregistry/internal/errors"
	"giftregistry/internal/handler"
	"giftregistry/internal/metrics"
)

// Handlers groups the HTTP handlers served by the API.
type Handlers struct {
	Auth     *handler.AuthHandler
	User     *handler.UserHandler
	Wish     *handler.WishHandler
	Offer    *handler.OfferHandler
	Wishlist *handler.WishlistHandler
}

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	log zerolog.Logger,
	jwtService *auth.JWTService,
	h Handlers,
) {
	e.HideBanner = true
	e.Validator = &CustomValidator{validator: validator.New()}

	e.Use(middleware.RequestID())
	e.Use(requestLogger(log))
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))
	e.Use(metrics.Middleware())

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", metrics.Handler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Public routes
	limited := authRateLimiter(cfg.AuthRateLimit)
	e.POST("/signup", h.Auth.Signup, limited)
	e.POST("/signin", h.Auth.Signin, limited)

	// Secured routes (require JWT authentication)
	secured := e.Group("", jwtMiddleware(jwtService))

	secured.POST("/offers", h.Offer.Create)
	secured.GET("/offers", h.Offer.List)
	secured.GET("/offers/:id", h.Offer.Get)

	secured.POST("/wishes", h.Wish.Create)
	secured.GET("/wishes/last", h.Wish.Last)
	secured.GET("/wishes/top", h.Wish.Top)
	secured.GET("/wishes/:id", h.Wish.Get)
	secured.PATCH("/wishes/:id", h.Wish.Update)
	secured.DELETE("/wishes/:id", h.Wish.Delete)
	secured.POST("/wishes/:id/copy", h.Wish.Copy)

	secured.GET("/wishlistlists", h.Wishlist.List)
	secured.POST("/wishlistlists", h.Wishlist.Create)
	secured.GET("/wishlistlists/:id", h.Wishlist.Get)
	secured.PATCH("/wishlistlists/:id", h.Wishlist.Update)
	secured.DELETE("/wishlistlists/:id", h.Wishlist.Delete)

	secured.GET("/users/me", h.User.Me)
	secured.PATCH("/users/me", h.User.UpdateMe)
	secured.GET("/users/me/wishes", h.User.MyWishes)
	secured.POST("/users/find", h.User.Find)
	secured.GET("/users/:username", h.User.GetByUsername)
	secured.GET("/users/:username/wishes", h.User.UserWishes)
}

// jwtMiddleware verifies bearer tokens with the service that issued them
// and stores the typed claims under handler.ContextKeyClaims.
func jwtMiddleware(jwtService *auth.JWTService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  handler.ContextKeyClaims,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return jwtService.ValidateToken(token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
				Error: "missing or invalid token",
				Code:  "UNAUTHORIZED",
			})
		},
	})
}

// authRateLimiter throttles credential endpoints per client IP.
func authRateLimiter(perSecond float64) echo.MiddlewareFunc {
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
			Rate:      rate.Limit(perSecond),
			Burst:     int(perSecond) + 1,
			ExpiresIn: 3 * time.Minute,
		}),
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return echo.NewHTTPError(http.StatusTooManyRequests, errors.ErrorResponse{
				Error: "too many requests",
				Code:  "RATE_LIMITED",
			})
		},
	})
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			event := log.Info()
			switch {
			case v.Status >= http.StatusInternalServerError:
				event = log.Error().Err(v.Error)
			case v.Error != nil:
				event = log.Warn().Err(v.Error)
			}
			event.
				Str("request_id", v.RequestID).
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
