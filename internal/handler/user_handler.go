package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"giftregistry/internal/service"
)

// UserHandler handles profile and directory endpoints.
type UserHandler struct {
	svc service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(svc service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// UpdateUserRequest represents a profile patch. Omitted fields are kept.
type UpdateUserRequest struct {
	Username *string `json:"username" validate:"omitempty,min=1,max=64"`
	About    *string `json:"about" validate:"omitempty,max=200"`
	Avatar   *string `json:"avatar" validate:"omitempty,url"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=2"`
}

// FindUsersRequest represents a directory search.
type FindUsersRequest struct {
	Query string `json:"query" validate:"required"`
}

// Me godoc
// @Summary Get own profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} UserProfileResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return err
	}

	user, err := h.svc.GetByID(c.Request().Context(), userID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, newUserProfile(user))
}

// UpdateMe godoc
// @Summary Update own profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateUserRequest true "Profile patch"
// @Success 200 {object} UserProfileResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /users/me [patch]
func (h *UserHandler) UpdateMe(c echo.Context) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return err
	}

	var req UpdateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	user, err := h.svc.Update(c.Request().Context(), userID, service.UserPatch{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		About:    req.About,
		Avatar:   req.Avatar,
	})
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, newUserProfile(user))
}

// MyWishes godoc
// @Summary List own wishes
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} WishResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /users/me/wishes [get]
func (h *UserHandler) MyWishes(c echo.Context) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return err
	}

	wishes, err := h.svc.OwnWishes(c.Request().Context(), userID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, newWishes(wishes, userID))
}

// GetByUsername godoc
// @Summary Get a public profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param username path string true "Username"
// @Success 200 {object} UserPublicResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /users/{username} [get]
func (h *UserHandler) GetByUsername(c echo.Context) error {
	user, err := h.svc.GetByUsername(c.Request().Context(), c.Param("username"))
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, newUserPublic(user))
}

// UserWishes godoc
// @Summary List a user's wishes
// @Tags users
// @Produce json
// @Security BearerAuth
// @Param username path string true "Username"
// @Success 200 {array} WishResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /users/{username}/wishes [get]
func (h *UserHandler) UserWishes(c echo.Context) error {
	viewerID, _, err := currentUser(c)
	if err != nil {
		return err
	}

	wishes, err := h.svc.UserWishes(c.Request().Context(), c.Param("username"))
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, newWishes(wishes, viewerID))
}

// Find godoc
// @Summary Search users by username or email
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body FindUsersRequest true "Search query"
// @Success 200 {array} UserProfileResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /users/find [post]
func (h *UserHandler) Find(c echo.Context) error {
	var req FindUsersRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	users, err := h.svc.Find(c.Request().Context(), req.Query)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, newUserProfiles(users))
}
