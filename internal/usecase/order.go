package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/dahorta/freshmarket/internal/domain/errors"
	"github.com/dahorta/freshmarket/internal/domain/model"
	"github.com/dahorta/freshmarket/internal/domain/repository"
)

// deliveryLeadDays is how far ahead the promised delivery date is set at
// checkout.
const deliveryLeadDays = 3

// StockAdjuster applies a stock delta for a product in the catalog.
type StockAdjuster interface {
	AdjustStock(ctx context.Context, productID string, delta float64) error
}

// CheckoutRequest carries everything needed to place an order from a cart
// snapshot.
type CheckoutRequest struct {
	UserID      int64
	Lines       []model.CartLine
	Address     model.Address
	Contact     model.ContactInfo
	DeliveryFee float64
	Notes       string
}

// OrderUseCase implements checkout and the order status state machine.
// Status changes are written through to storage before being reported.
type OrderUseCase struct {
	orders  repository.OrderRepository
	catalog StockAdjuster
	picking *PickingTracker
	logger  *slog.Logger

	now func() time.Time
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, catalog StockAdjuster, picking *PickingTracker, logger *slog.Logger) *OrderUseCase {
	return &OrderUseCase{
		orders:  orders,
		catalog: catalog,
		picking: picking,
		logger:  logger,
		now:     time.Now,
	}
}

// Checkout turns a cart snapshot into a pending order. Line prices are fixed
// at the effective price current at this moment. Stock is decremented after
// the order is stored; a failed decrement does not fail the order.
func (u *OrderUseCase) Checkout(ctx context.Context, req CheckoutRequest) (*model.Order, error) {
	if len(req.Lines) == 0 {
		return nil, domainErrors.ErrEmptyCart
	}

	now := u.now()
	deliveryDate := now.AddDate(0, 0, deliveryLeadDays)

	order := &model.Order{
		ID:              uuid.NewString(),
		UserID:          req.UserID,
		Number:          newOrderNumber(now),
		ShippingAddress: req.Address,
		Contact:         req.Contact,
		DeliveryFee:     req.DeliveryFee,
		Notes:           req.Notes,
		Status:          model.OrderStatusPending,
		CreatedAt:       now,
		UpdatedAt:       now,
		DeliveryDate:    &deliveryDate,
	}
	for _, line := range req.Lines {
		order.Lines = append(order.Lines, model.OrderLine{
			ProductID: line.ProductID,
			Name:      line.Name,
			Unit:      line.Unit,
			ImageURL:  line.ImageURL,
			Quantity:  line.Quantity,
			UnitPrice: EffectivePrice(line),
		})
		order.Subtotal += LineTotal(line)
	}
	order.Total = order.Subtotal + order.DeliveryFee

	if err := u.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("store order: %w", err)
	}

	for _, line := range req.Lines {
		if err := u.catalog.AdjustStock(ctx, line.ProductID, -line.Quantity); err != nil {
			u.logger.Warn("stock decrement failed after checkout",
				slog.String("order", order.Number),
				slog.String("product", line.ProductID),
				slog.String("error", err.Error()))
		}
	}

	return order, nil
}

// Get returns one order by id.
func (u *OrderUseCase) Get(ctx context.Context, orderID string) (*model.Order, error) {
	return u.orders.GetByID(ctx, orderID)
}

// ListByUser returns the user's orders, optionally filtered by status.
func (u *OrderUseCase) ListByUser(ctx context.Context, userID int64, status *model.OrderStatus) ([]model.Order, error) {
	return u.orders.ListByUser(ctx, userID, status)
}

// ListAll returns every order, optionally filtered by status. Staff only.
func (u *OrderUseCase) ListAll(ctx context.Context, status *model.OrderStatus) ([]model.Order, error) {
	return u.orders.ListAll(ctx, status)
}

// Transition moves an order to the target status, enforcing the state
// machine and the picking gate for preparing to shipped. The stored record
// is updated before the new state is reported.
func (u *OrderUseCase) Transition(ctx context.Context, orderID string, target model.OrderStatus) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !CanTransition(order.Status, target) {
		return nil, fmt.Errorf("%w: %s to %s", domainErrors.ErrInvalidTransition, order.Status, target)
	}
	if order.Status == model.OrderStatusPreparing && target == model.OrderStatusShipped && !u.picking.IsComplete(orderID) {
		return nil, domainErrors.ErrPickingIncomplete
	}

	var deliveryDate *time.Time
	if target == model.OrderStatusDelivered {
		delivered := u.now()
		deliveryDate = &delivered
	}

	updated, err := u.orders.UpdateStatus(ctx, orderID, target, deliveryDate)
	if err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}

	switch {
	case target == model.OrderStatusPreparing:
		u.picking.Begin(orderID, len(updated.Lines))
	case order.Status == model.OrderStatusPreparing:
		u.picking.Discard(orderID)
	}

	return updated, nil
}

// newOrderNumber builds a human-facing order number like PED-2026-483920.
func newOrderNumber(now time.Time) string {
	return fmt.Sprintf("PED-%d-%06d", now.Year(), rand.Intn(1000000))
}
