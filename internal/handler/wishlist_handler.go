package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"giftregistry/internal/service"
)

// WishlistHandler handles wishlist endpoints.
type WishlistHandler struct {
	wishlistService service.WishlistService
}

// NewWishlistHandler creates a new wishlist handler.
func NewWishlistHandler(wishlistService service.WishlistService) *WishlistHandler {
	return &WishlistHandler{wishlistService: wishlistService}
}

// CreateWishlistRequest represents a new wishlist.
type CreateWishlistRequest struct {
	Name    string `json:"name" validate:"required,max=250"`
	Image   string `json:"image" validate:"required,url"`
	ItemIDs []uint `json:"itemsId" validate:"required,dive,min=1"`
}

// UpdateWishlistRequest represents a wishlist patch. When itemsId is present
// it replaces the membership.
type UpdateWishlistRequest struct {
	Name    *string `json:"name" validate:"omitempty,max=250"`
	Image   *string `json:"image" validate:"omitempty,url"`
	ItemIDs []uint  `json:"itemsId" validate:"omitempty,dive,min=1"`
}

// List godoc
// @Summary List wishlists
// @Tags wishlists
// @Produce json
// @Security BearerAuth
// @Success 200 {array} WishlistResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /wishlistlists [get]
func (h *WishlistHandler) List(c echo.Context) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return err
	}

	wishlists, err := h.wishlistService.FindAll(c.Request().Context())
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, newWishlists(wishlists, userID))
}

// Create godoc
// @Summary Create a wishlist
// @Description Item ids that match no wish are skipped.
// @Tags wishlists
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateWishlistRequest true "Wishlist data"
// @Success 201 {object} WishlistResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /wishlistlists [post]
func (h *WishlistHandler) Create(c echo.Context) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return err
	}

	var req CreateWishlistRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	wishlist, err := h.wishlistService.Create(c.Request().Context(), userID, service.WishlistInput{
		Name:    req.Name,
		Image:   req.Image,
		ItemIDs: req.ItemIDs,
	})
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, newWishlist(wishlist, userID))
}

// Get godoc
// @Summary Get a wishlist
// @Tags wishlists
// @Produce json
// @Security BearerAuth
// @Param id path int true "Wishlist ID"
// @Success 200 {object} WishlistResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /wishlistlists/{id} [get]
func (h *WishlistHandler) Get(c echo.Context) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := paramID(c)
	if err != nil {
		return err
	}

	wishlist, err := h.wishlistService.FindByID(c.Request().Context(), id)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, newWishlist(wishlist, userID))
}

// Update godoc
// @Summary Update own wishlist
// @Tags wishlists
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Wishlist ID"
// @Param request body UpdateWishlistRequest true "Wishlist patch"
// @Success 200 {object} WishlistResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /wishlistlists/{id} [patch]
func (h *WishlistHandler) Update(c echo.Context) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := paramID(c)
	if err != nil {
		return err
	}

	var req UpdateWishlistRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	wishlist, err := h.wishlistService.Update(c.Request().Context(), id, userID, service.WishlistPatch{
		Name:    req.Name,
		Image:   req.Image,
		ItemIDs: req.ItemIDs,
	})
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, newWishlist(wishlist, userID))
}

// Delete godoc
// @Summary Delete own wishlist
// @Tags wishlists
// @Produce json
// @Security BearerAuth
// @Param id path int true "Wishlist ID"
// @Success 200 {object} WishlistResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /wishlistlists/{id} [delete]
func (h *WishlistHandler) Delete(c echo.Context) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := paramID(c)
	if err != nil {
		return err
	}

	wishlist, err := h.wishlistService.Remove(c.Request().Context(), id, userID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, newWishlist(wishlist, userID))
}
