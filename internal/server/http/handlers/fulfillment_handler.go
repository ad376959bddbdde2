package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/dahorta/freshmarket/internal/domain/errors"
	"github.com/dahorta/freshmarket/internal/domain/model"
	"github.com/dahorta/freshmarket/internal/server/http/dto"
)

// FulfillmentHandler manages the staff-side order endpoints.
type FulfillmentHandler struct {
	facade FulfillmentFacade
}

// NewFulfillmentHandler constructs FulfillmentHandler.
func NewFulfillmentHandler(facade FulfillmentFacade) *FulfillmentHandler {
	return &FulfillmentHandler{facade: facade}
}

// List handles GET /api/admin/orders with an optional status filter.
func (h *FulfillmentHandler) List(c *gin.Context) {
	status, ok := statusFilter(c)
	if !ok {
		c.Status(http.StatusBadRequest)
		return
	}

	orders, err := h.facade.AllOrders(c.Request.Context(), status)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	response := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, toOrderResponse(o))
	}
	c.JSON(http.StatusOK, response)
}

// Transition handles POST /api/admin/orders/:orderID/status.
func (h *FulfillmentHandler) Transition(c *gin.Context) {
	var req dto.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	target, err := model.ParseOrderStatus(req.Status)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	order, err := h.facade.TransitionOrder(c.Request.Context(), c.Param("orderID"), target)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrInvalidTransition), errors.Is(err, domainErrors.ErrPickingIncomplete):
			c.Status(http.StatusConflict)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(*order))
}

// Picking handles GET /api/admin/orders/:orderID/picking.
func (h *FulfillmentHandler) Picking(c *gin.Context) {
	h.respondPicking(c, func(orderID string) (model.PickingProgress, error) {
		return h.facade.PickingProgress(orderID)
	})
}

// TogglePicked handles POST /api/admin/orders/:orderID/picking/toggle.
func (h *FulfillmentHandler) TogglePicked(c *gin.Context) {
	var req dto.PickingToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}
	h.respondPicking(c, func(orderID string) (model.PickingProgress, error) {
		return h.facade.TogglePicked(orderID, req.Line)
	})
}

// MarkAllPicked handles POST /api/admin/orders/:orderID/picking/complete.
func (h *FulfillmentHandler) MarkAllPicked(c *gin.Context) {
	h.respondPicking(c, h.facade.MarkAllPicked)
}

// ResetPicking handles POST /api/admin/orders/:orderID/picking/reset.
func (h *FulfillmentHandler) ResetPicking(c *gin.Context) {
	h.respondPicking(c, h.facade.ResetPicking)
}

func (h *FulfillmentHandler) respondPicking(c *gin.Context, op func(string) (model.PickingProgress, error)) {
	progress, err := op(c.Param("orderID"))
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrInvalidLineIndex):
			c.Status(http.StatusUnprocessableEntity)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}
	c.JSON(http.StatusOK, toPickingResponse(progress))
}

// DeliverBatch handles POST /api/admin/deliveries.
func (h *FulfillmentHandler) DeliverBatch(c *gin.Context) {
	var req dto.DeliverBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.OrderIDs) == 0 {
		c.Status(http.StatusBadRequest)
		return
	}

	result := h.facade.DeliverBatch(c.Request.Context(), req.OrderIDs)
	resp := dto.DeliverBatchResponse{
		Delivered: result.Succeeded,
		Failed:    make([]dto.DeliverFailurePayload, 0, len(result.Failed)),
	}
	if resp.Delivered == nil {
		resp.Delivered = []string{}
	}
	for _, failure := range result.Failed {
		resp.Failed = append(resp.Failed, dto.DeliverFailurePayload{OrderID: failure.OrderID, Reason: failure.Reason})
	}
	c.JSON(http.StatusOK, resp)
}
