package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrUserNotFound is returned when a user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrWishNotFound is returned when a wish is not found.
	ErrWishNotFound = errors.New("wish not found")
	// ErrOfferNotFound is returned when an offer is not found.
	ErrOfferNotFound = errors.New("offer not found")
	// ErrWishlistNotFound is returned when a wishlist is not found.
	ErrWishlistNotFound = errors.New("wishlist not found")

	// ErrSelfFunding is returned when the owner of a wish tries to pledge to it.
	ErrSelfFunding = errors.New("you cannot contribute to your own wish")
	// ErrOverFunded is returned when a pledge would push raised above price.
	ErrOverFunded = errors.New("the total raised amount exceeds the wish price")
	// ErrPriceLocked is returned when the price of a partially funded wish is changed.
	ErrPriceLocked = errors.New("cannot update price when money has been raised")
	// ErrNotOwner is returned when someone other than the owner mutates a resource.
	ErrNotOwner = errors.New("you can only modify your own resources")

	// ErrUserAlreadyExists is returned when username or email is taken.
	ErrUserAlreadyExists = errors.New("user with this email or username already exists")
	// ErrInvalidCredentials is returned when username or password is incorrect.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrInvalidAmount is returned when amount is invalid.
	ErrInvalidAmount = errors.New("invalid amount")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

var mappings = []struct {
	err    error
	status int
	code   string
}{
	{ErrUserNotFound, http.StatusNotFound, "USER_NOT_FOUND"},
	{ErrWishNotFound, http.StatusNotFound, "WISH_NOT_FOUND"},
	{ErrOfferNotFound, http.StatusNotFound, "OFFER_NOT_FOUND"},
	{ErrWishlistNotFound, http.StatusNotFound, "WISHLIST_NOT_FOUND"},
	{ErrSelfFunding, http.StatusForbidden, "SELF_FUNDING"},
	{ErrOverFunded, http.StatusForbidden, "OVER_FUNDED"},
	{ErrPriceLocked, http.StatusForbidden, "PRICE_LOCKED"},
	{ErrNotOwner, http.StatusForbidden, "NOT_OWNER"},
	{ErrUserAlreadyExists, http.StatusConflict, "USER_ALREADY_EXISTS"},
	{ErrInvalidCredentials, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
	{ErrInvalidAmount, http.StatusBadRequest, "INVALID_AMOUNT"},
}

// MapErrorToHTTP maps domain errors, wrapped or not, to HTTP errors.
func MapErrorToHTTP(err error) *HTTPError {
	for _, m := range mappings {
		if errors.Is(err, m.err) {
			return NewHTTPError(m.status, m.err.Error(), m.code)
		}
	}
	return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
}
