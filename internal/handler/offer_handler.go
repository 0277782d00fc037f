package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"giftregistry/internal/service"
)

// OfferHandler handles pledge endpoints.
type OfferHandler struct {
	offerService service.OfferService
}

// NewOfferHandler creates a new offer handler.
func NewOfferHandler(offerService service.OfferService) *OfferHandler {
	return &OfferHandler{offerService: offerService}
}

// CreateOfferRequest represents a pledge toward a wish.
type CreateOfferRequest struct {
	Amount decimal.Decimal `json:"amount" swaggertype:"number"`
	ItemID uint            `json:"itemId" validate:"required,min=1"`
	Hidden bool            `json:"hidden"`
}

// Create godoc
// @Summary Pledge toward a wish
// @Description Fails with 403 for the wish owner or when the pledge would exceed the price.
// @Tags offers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateOfferRequest true "Pledge data"
// @Success 201 {object} OfferResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /offers [post]
func (h *OfferHandler) Create(c echo.Context) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return err
	}

	var req CreateOfferRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if err := checkAmount("amount", req.Amount); err != nil {
		return err
	}

	offer, err := h.offerService.CreateOffer(c.Request().Context(), userID, req.ItemID, req.Amount, req.Hidden)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusCreated, newOffer(offer, userID))
}

// List godoc
// @Summary List own pledges
// @Tags offers
// @Produce json
// @Security BearerAuth
// @Success 200 {array} OfferResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /offers [get]
func (h *OfferHandler) List(c echo.Context) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return err
	}

	offers, err := h.offerService.FindOwn(c.Request().Context(), userID)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, newOffers(offers, userID))
}

// Get godoc
// @Summary Get a pledge
// @Tags offers
// @Produce json
// @Security BearerAuth
// @Param id path int true "Offer ID"
// @Success 200 {object} OfferResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /offers/{id} [get]
func (h *OfferHandler) Get(c echo.Context) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := paramID(c)
	if err != nil {
		return err
	}

	offer, err := h.offerService.FindByID(c.Request().Context(), id)
	if err != nil {
		return serviceError(err)
	}
	return c.JSON(http.StatusOK, newOffer(offer, userID))
}
