package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"giftregistry/internal/auth"
	"giftregistry/internal/config"
	"giftregistry/internal/handler"
)

const testSecret = "router-secret"

func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()
	cfg := &config.Config{
		CORSOrigins:   []string{"*"},
		AuthRateLimit: 100,
	}
	jwtService := auth.NewJWTService(testSecret, time.Hour)

	e := echo.New()
	Register(e, cfg, zerolog.Nop(), jwtService, Handlers{
		Auth:     handler.NewAuthHandler(nil),
		User:     handler.NewUserHandler(nil),
		Wish:     handler.NewWishHandler(nil),
		Offer:    handler.NewOfferHandler(nil),
		Wishlist: handler.NewWishlistHandler(nil),
	})
	return e
}

func TestRegister_Routes(t *testing.T) {
	e := newTestServer(t)

	registered := map[string]bool{}
	for _, r := range e.Routes() {
		registered[r.Method+" "+r.Path] = true
	}

	for _, route := range []string{
		"POST /signup",
		"POST /signin",
		"POST /offers",
		"GET /offers",
		"GET /offers/:id",
		"POST /wishes",
		"GET /wishes/last",
		"GET /wishes/top",
		"GET /wishes/:id",
		"PATCH /wishes/:id",
		"DELETE /wishes/:id",
		"POST /wishes/:id/copy",
		"GET /wishlistlists",
		"POST /wishlistlists",
		"GET /wishlistlists/:id",
		"PATCH /wishlistlists/:id",
		"DELETE /wishlistlists/:id",
		"GET /users/me",
		"PATCH /users/me",
		"GET /users/me/wishes",
		"GET /users/:username",
		"GET /users/:username/wishes",
		"POST /users/find",
		"GET /healthz",
		"GET /metrics",
	} {
		assert.True(t, registered[route], "route %s not registered", route)
	}
}

func TestRegister_Healthz(t *testing.T) {
	e := newTestServer(t)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
}

func TestRegister_SecuredRoutesRequireToken(t *testing.T) {
	e := newTestServer(t)
	foreign, err := auth.NewJWTService("other-secret", time.Hour).GenerateAccessToken(1, "alice")
	require.NoError(t, err)
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &auth.Claims{
		Username: "alice",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{name: "no header", header: ""},
		{name: "not bearer", header: "Basic abc"},
		{name: "garbage token", header: "Bearer not-a-jwt"},
		{name: "foreign signature", header: "Bearer " + foreign},
		{name: "expired", header: "Bearer " + expired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/wishes/last", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Contains(t, rec.Body.String(), "UNAUTHORIZED")
		})
	}
}
