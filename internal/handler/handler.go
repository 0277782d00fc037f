package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"giftregistry/internal/auth"
	"giftregistry/internal/errors"
	"giftregistry/internal/model"
)

// ContextKeyClaims is where the JWT middleware stores the caller's claims.
const ContextKeyClaims = "user"

var minAmount = decimal.NewFromInt(1)

// currentUser returns the authenticated caller's id and username.
func currentUser(c echo.Context) (uint, string, error) {
	claims, ok := c.Get(ContextKeyClaims).(*auth.Claims)
	if !ok {
		return 0, "", echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
			Error: "missing or invalid token",
			Code:  "UNAUTHORIZED",
		})
	}
	id, err := claims.UserID()
	if err != nil {
		return 0, "", echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "UNAUTHORIZED",
		})
	}
	return id, claims.Username, nil
}

func paramID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid id",
			Code:  "INVALID_ID",
		})
	}
	return uint(id), nil
}

func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_REQUEST",
		})
	}
	if err := c.Validate(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "VALIDATION_ERROR",
		})
	}
	return nil
}

func checkAmount(field string, v decimal.Decimal) error {
	var msg string
	switch {
	case v.LessThan(minAmount):
		msg = field + " must be at least 1"
	case v.GreaterThan(model.MaxMoney):
		msg = field + " must not exceed " + model.MaxMoney.String()
	case !v.Equal(v.Truncate(model.MoneyScale)):
		msg = field + " must have at most 2 decimal places"
	default:
		return nil
	}
	return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
		Error: msg,
		Code:  "INVALID_AMOUNT",
	})
}

func serviceError(err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}
