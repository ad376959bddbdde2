package app

import (
	"context"

	domainErrors "github.com/dahorta/freshmarket/internal/domain/errors"
	"github.com/dahorta/freshmarket/internal/domain/model"
	pkgAuth "github.com/dahorta/freshmarket/internal/pkg/auth"
	"github.com/dahorta/freshmarket/internal/usecase"
)

// FreshFacade aggregates the use cases behind the HTTP surface.
type FreshFacade struct {
	auth    *usecase.AuthUseCase
	carts   *usecase.CartUseCase
	orders  *usecase.OrderUseCase
	picking *usecase.PickingTracker
}

func NewFreshFacade(auth *usecase.AuthUseCase, carts *usecase.CartUseCase, orders *usecase.OrderUseCase, picking *usecase.PickingTracker) *FreshFacade {
	return &FreshFacade{auth: auth, carts: carts, orders: orders, picking: picking}
}

func (f *FreshFacade) Register(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.auth.Register(ctx, login, password)
	return token, err
}

func (f *FreshFacade) Authenticate(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, login, password)
	return token, err
}

func (f *FreshFacade) ParseToken(token string) (pkgAuth.Claims, error) {
	return f.auth.ParseToken(token)
}

func (f *FreshFacade) Cart(ctx context.Context, userID int64) usecase.CartView {
	return f.carts.View(ctx, userID)
}

func (f *FreshFacade) AddProduct(ctx context.Context, userID int64, productID string) (usecase.CartMutation, error) {
	return f.carts.AddProduct(ctx, userID, productID)
}

func (f *FreshFacade) AdjustQuantity(ctx context.Context, userID int64, productID string, delta float64) (usecase.CartMutation, error) {
	return f.carts.ApplyDelta(ctx, userID, productID, delta)
}

func (f *FreshFacade) SetQuantity(ctx context.Context, userID int64, productID string, quantity float64) (usecase.CartMutation, error) {
	return f.carts.SetQuantity(ctx, userID, productID, quantity)
}

func (f *FreshFacade) RemoveProduct(ctx context.Context, userID int64, productID string) error {
	return f.carts.Remove(ctx, userID, productID)
}

func (f *FreshFacade) ClearCart(ctx context.Context, userID int64) {
	f.carts.Clear(ctx, userID)
}

func (f *FreshFacade) EstimateDelivery(ctx context.Context, userID int64, zipcode string) (model.DeliveryEstimate, error) {
	view := f.carts.View(ctx, userID)
	return usecase.EstimateDelivery(zipcode, view.Subtotal)
}

// Checkout quotes delivery for the destination, submits the cart as an order
// and discards the cart on success.
func (f *FreshFacade) Checkout(ctx context.Context, userID int64, address model.Address, contact model.ContactInfo, notes string) (*model.Order, error) {
	lines, err := f.carts.Snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, domainErrors.ErrEmptyCart
	}

	estimate, err := usecase.EstimateDelivery(address.Zipcode, usecase.CartSubtotal(lines))
	if err != nil {
		return nil, err
	}

	order, err := f.orders.Checkout(ctx, usecase.CheckoutRequest{
		UserID:      userID,
		Lines:       lines,
		Address:     address,
		Contact:     contact,
		DeliveryFee: estimate.Fee,
		Notes:       notes,
	})
	if err != nil {
		return nil, err
	}

	f.carts.FinishCheckout(ctx, userID)
	return order, nil
}

func (f *FreshFacade) Orders(ctx context.Context, userID int64, status *model.OrderStatus) ([]model.Order, error) {
	return f.orders.ListByUser(ctx, userID, status)
}

func (f *FreshFacade) Order(ctx context.Context, orderID string) (*model.Order, error) {
	return f.orders.Get(ctx, orderID)
}

func (f *FreshFacade) AllOrders(ctx context.Context, status *model.OrderStatus) ([]model.Order, error) {
	return f.orders.ListAll(ctx, status)
}

func (f *FreshFacade) TransitionOrder(ctx context.Context, orderID string, target model.OrderStatus) (*model.Order, error) {
	return f.orders.Transition(ctx, orderID, target)
}

func (f *FreshFacade) PickingProgress(orderID string) (model.PickingProgress, error) {
	return f.picking.Progress(orderID)
}

func (f *FreshFacade) TogglePicked(orderID string, lineIndex int) (model.PickingProgress, error) {
	return f.picking.Toggle(orderID, lineIndex)
}

func (f *FreshFacade) MarkAllPicked(orderID string) (model.PickingProgress, error) {
	return f.picking.MarkAll(orderID)
}

func (f *FreshFacade) ResetPicking(orderID string) (model.PickingProgress, error) {
	return f.picking.Clear(orderID)
}

func (f *FreshFacade) DeliverBatch(ctx context.Context, orderIDs []string) usecase.BatchResult {
	return f.orders.DeliverMany(ctx, orderIDs)
}
