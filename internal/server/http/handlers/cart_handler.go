package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/dahorta/freshmarket/internal/domain/errors"
	"github.com/dahorta/freshmarket/internal/server/http/dto"
)

// CartHandler manages cart-related endpoints.
type CartHandler struct {
	facade CartFacade
}

// NewCartHandler constructs CartHandler.
func NewCartHandler(facade CartFacade) *CartHandler {
	return &CartHandler{facade: facade}
}

// View handles GET /api/cart.
func (h *CartHandler) View(c *gin.Context) {
	view := h.facade.Cart(c.Request.Context(), CurrentUserID(c))
	c.JSON(http.StatusOK, toCartResponse(view))
}

// Add handles POST /api/cart/items.
func (h *CartHandler) Add(c *gin.Context) {
	var req dto.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.ProductID) == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	mutation, err := h.facade.AddProduct(c.Request.Context(), CurrentUserID(c), req.ProductID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, toMutationResponse(mutation))
}

// Adjust handles PATCH /api/cart/items.
func (h *CartHandler) Adjust(c *gin.Context) {
	var req dto.AdjustItemRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.ProductID) == "" || req.Delta == 0 {
		c.Status(http.StatusBadRequest)
		return
	}

	mutation, err := h.facade.AdjustQuantity(c.Request.Context(), CurrentUserID(c), req.ProductID, req.Delta)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, toMutationResponse(mutation))
}

// Set handles PUT /api/cart/items.
func (h *CartHandler) Set(c *gin.Context) {
	var req dto.SetItemRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.ProductID) == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	mutation, err := h.facade.SetQuantity(c.Request.Context(), CurrentUserID(c), req.ProductID, req.Quantity)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, toMutationResponse(mutation))
}

// Remove handles DELETE /api/cart/items/:productID.
func (h *CartHandler) Remove(c *gin.Context) {
	productID := c.Param("productID")
	if productID == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.facade.RemoveProduct(c.Request.Context(), CurrentUserID(c), productID); err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Status(http.StatusNoContent)
}

// Clear handles DELETE /api/cart.
func (h *CartHandler) Clear(c *gin.Context) {
	h.facade.ClearCart(c.Request.Context(), CurrentUserID(c))
	c.Status(http.StatusNoContent)
}

// Estimate handles POST /api/cart/estimate. The quote is returned even when
// the cart is below the regional minimum so the client can show the gap.
func (h *CartHandler) Estimate(c *gin.Context) {
	var req dto.EstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	estimate, err := h.facade.EstimateDelivery(c.Request.Context(), CurrentUserID(c), req.Zipcode)
	resp := dto.EstimateResponse{
		DistanceKM:    estimate.DistanceKM,
		EstimatedTime: estimate.EstimatedTime,
		DeliveryFee:   estimate.Fee,
		MinOrderValue: estimate.MinOrderValue,
	}
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidZipcode):
			c.Status(http.StatusUnprocessableEntity)
		case errors.Is(err, domainErrors.ErrBelowMinimumOrder):
			c.JSON(http.StatusUnprocessableEntity, resp)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, resp)
}
