package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"giftregistry/internal/service"
)

// WishHandler handles wish endpoints.
type WishHandler struct {
	wishService service.WishService
}

// NewWishHandler creates a new wish handler.
func NewWishHandler(wishService service.WishService) *WishHandler {
	return &WishHandler{wishService: wishService}
}

// CreateWishRequest represents a new wish.
type CreateWishRequest struct {
	Name        string          `json:"name" validate:"required,min=1,max=250"`
	Link        string          `json:"link" validate:"required,url"`
	Image       string          `json:"image" validate:"required,url"`
	Price       decimal.Decimal `json:"price" swaggertype:"number"`
	Description string          `json:"description" validate:"required,min=1,max=1024"`
}

// UpdateWishRequest represents a wish patch. There is no raised field;
// a raised value in the body is dropped by the decoder.
type UpdateWishRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=250"`
	Link        *string          `json:"link" validate:"omitempty,url"`
	Image       *string          `json:"image" validate:"omitempty,url"`
	Price       *decimal.Decimal `json:"price" swaggertype:"number"`
	Description *string          `json:"description" validate:"omitempty,min=1,max=1024"`
}

// Create godoc
// @Summary Create a wish
// @Tags wishes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateWishRequest true "Wish data"
// @Success 201 {object} WishResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /wishes [post]
func (h *WishHandler) Create(c echo.Context) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return err
	}

	var req CreateWishRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := checkAmount("price", req.Price); err != nil {
		return err
	}

	wish, err := h.wishService.Create(c.Request().Context(), userID, service.WishInput{
		Name:        req.Name,
		Link:        req.Link,
		Image:       req.Image,
		Price:       req.Price,
		Description: req.Description,
	})
	if err != nil {
		return serviceError(err)
	}

	// the owner relation is not loaded on create
	full, err := h.wishService.FindByID(c.Request().Context(), wish.ID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, newWish(full, userID))
}

// Last godoc
// @Summary List the newest wishes
// @Tags wishes
// @Produce json
// @Security BearerAuth
// @Success 200 {array} WishResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /wishes/last [get]
func (h *WishHandler) Last(c echo.Context) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return err
	}

	wishes, err := h.wishService.FindLast(c.Request().Context())
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, newWishes(wishes, userID))
}

// Top godoc
// @Summary List the most copied wishes
// @Tags wishes
// @Produce json
// @Security BearerAuth
// @Success 200 {array} WishResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /wishes/top [get]
func (h *WishHandler) Top(c echo.Context) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return err
	}

	wishes, err := h.wishService.FindTop(c.Request().Context())
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, newWishes(wishes, userID))
}

// Get godoc
// @Summary Get a wish with its offers
// @Tags wishes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Wish ID"
// @Success 200 {object} WishResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /wishes/{id} [get]
func (h *WishHandler) Get(c echo.Context) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := paramID(c)
	if err != nil {
		return err
	}

	wish, err := h.wishService.FindByID(c.Request().Context(), id)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, newWish(wish, userID))
}

// Update godoc
// @Summary Update own wish
// @Description The price cannot change once money has been raised.
// @Tags wishes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Wish ID"
// @Param request body UpdateWishRequest true "Wish patch"
// @Success 200 {object} WishResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /wishes/{id} [patch]
func (h *WishHandler) Update(c echo.Context) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := paramID(c)
	if err != nil {
		return err
	}

	var req UpdateWishRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if req.Price != nil {
		if err := checkAmount("price", *req.Price); err != nil {
			return err
		}
	}

	wish, err := h.wishService.Update(c.Request().Context(), id, userID, service.WishPatch{
		Name:        req.Name,
		Link:        req.Link,
		Image:       req.Image,
		Price:       req.Price,
		Description: req.Description,
	})
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, newWish(wish, userID))
}

// Delete godoc
// @Summary Delete own wish
// @Description Offers made toward the wish are deleted with it.
// @Tags wishes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Wish ID"
// @Success 200 {object} WishResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /wishes/{id} [delete]
func (h *WishHandler) Delete(c echo.Context) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := paramID(c)
	if err != nil {
		return err
	}

	wish, err := h.wishService.Remove(c.Request().Context(), id, userID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, newWish(wish, userID))
}

// Copy godoc
// @Summary Copy a wish into own registry
// @Tags wishes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Wish ID"
// @Success 201 {object} WishResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /wishes/{id}/copy [post]
func (h *WishHandler) Copy(c echo.Context) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := paramID(c)
	if err != nil {
		return err
	}

	wish, err := h.wishService.Copy(c.Request().Context(), id, userID)
	if err != nil {
		return serviceError(err)
	}

	full, err := h.wishService.FindByID(c.Request().Context(), wish.ID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, newWish(full, userID))
}
