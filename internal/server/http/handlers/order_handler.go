package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/dahorta/freshmarket/internal/domain/errors"
	"github.com/dahorta/freshmarket/internal/domain/model"
	"github.com/dahorta/freshmarket/internal/server/http/dto"
)

// OrderHandler manages the customer-facing order endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Checkout handles POST /api/orders. It submits the current cart.
func (h *OrderHandler) Checkout(c *gin.Context) {
	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	address := model.Address{
		Street:       req.Address.Street,
		Number:       req.Address.Number,
		Complement:   req.Address.Complement,
		Neighborhood: req.Address.Neighborhood,
		City:         req.Address.City,
		State:        req.Address.State,
		Zipcode:      req.Address.Zipcode,
	}
	contact := model.ContactInfo{
		Name:  req.Contact.Name,
		Email: req.Contact.Email,
		Phone: req.Contact.Phone,
	}

	order, err := h.facade.Checkout(c.Request.Context(), CurrentUserID(c), address, contact, req.Notes)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrEmptyCart):
			c.Status(http.StatusBadRequest)
		case errors.Is(err, domainErrors.ErrInvalidZipcode), errors.Is(err, domainErrors.ErrBelowMinimumOrder):
			c.Status(http.StatusUnprocessableEntity)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, toOrderResponse(*order))
}

// List handles GET /api/orders with an optional status filter.
func (h *OrderHandler) List(c *gin.Context) {
	status, ok := statusFilter(c)
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	orders, err := h.facade.Orders(c.Request.Context(), CurrentUserID(c), status)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(orders) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, toOrderResponse(o))
	}
	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/orders/:orderID. Orders belonging to other accounts
// are reported as missing.
func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.facade.Order(c.Request.Context(), c.Param("orderID"))
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	claims := CurrentClaims(c)
	if order.UserID != claims.UserID && !claims.Staff {
		c.Status(http.StatusNotFound)
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(*order))
}
