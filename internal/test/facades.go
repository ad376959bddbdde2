package test

import (
	"context"

	"github.com/dahorta/freshmarket/internal/domain/model"
	pkgAuth "github.com/dahorta/freshmarket/internal/pkg/auth"
	"github.com/dahorta/freshmarket/internal/usecase"
)

// AuthFacadeStub implements handlers.AuthFacade via function overrides.
type AuthFacadeStub struct {
	RegisterFn     func(ctx context.Context, login, password string) (string, error)
	AuthenticateFn func(ctx context.Context, login, password string) (string, error)
	ParseFn        func(token string) (pkgAuth.Claims, error)
}

// Register creates an account and returns a session token.
func (s AuthFacadeStub) Register(ctx context.Context, login, password string) (string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, login, password)
	}
	return "token", nil
}

// Authenticate validates credentials and returns a session token.
func (s AuthFacadeStub) Authenticate(ctx context.Context, login, password string) (string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, login, password)
	}
	return "token", nil
}

// ParseToken resolves claims from a token.
func (s AuthFacadeStub) ParseToken(token string) (pkgAuth.Claims, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return pkgAuth.Claims{UserID: 1}, nil
}

// CartFacadeStub implements handlers.CartFacade via function overrides.
type CartFacadeStub struct {
	CartFn             func(ctx context.Context, userID int64) usecase.CartView
	AddProductFn       func(ctx context.Context, userID int64, productID string) (usecase.CartMutation, error)
	AdjustQuantityFn   func(ctx context.Context, userID int64, productID string, delta float64) (usecase.CartMutation, error)
	SetQuantityFn      func(ctx context.Context, userID int64, productID string, quantity float64) (usecase.CartMutation, error)
	RemoveProductFn    func(ctx context.Context, userID int64, productID string) error
	ClearCartFn        func(ctx context.Context, userID int64)
	EstimateDeliveryFn func(ctx context.Context, userID int64, zipcode string) (model.DeliveryEstimate, error)
}

// Cart returns the current cart view.
func (s CartFacadeStub) Cart(ctx context.Context, userID int64) usecase.CartView {
	if s.CartFn != nil {
		return s.CartFn(ctx, userID)
	}
	return usecase.CartView{}
}

// AddProduct adds a product to the cart.
func (s CartFacadeStub) AddProduct(ctx context.Context, userID int64, productID string) (usecase.CartMutation, error) {
	if s.AddProductFn != nil {
		return s.AddProductFn(ctx, userID, productID)
	}
	return usecase.CartMutation{Kind: usecase.MutationUpdated}, nil
}

// AdjustQuantity changes a line quantity by delta.
func (s CartFacadeStub) AdjustQuantity(ctx context.Context, userID int64, productID string, delta float64) (usecase.CartMutation, error) {
	if s.AdjustQuantityFn != nil {
		return s.AdjustQuantityFn(ctx, userID, productID, delta)
	}
	return usecase.CartMutation{Kind: usecase.MutationUpdated}, nil
}

// SetQuantity replaces a line quantity.
func (s CartFacadeStub) SetQuantity(ctx context.Context, userID int64, productID string, quantity float64) (usecase.CartMutation, error) {
	if s.SetQuantityFn != nil {
		return s.SetQuantityFn(ctx, userID, productID, quantity)
	}
	return usecase.CartMutation{Kind: usecase.MutationUpdated}, nil
}

// RemoveProduct deletes a line from the cart.
func (s CartFacadeStub) RemoveProduct(ctx context.Context, userID int64, productID string) error {
	if s.RemoveProductFn != nil {
		return s.RemoveProductFn(ctx, userID, productID)
	}
	return nil
}

// ClearCart empties the cart.
func (s CartFacadeStub) ClearCart(ctx context.Context, userID int64) {
	if s.ClearCartFn != nil {
		s.ClearCartFn(ctx, userID)
	}
}

// EstimateDelivery quotes delivery for a postal code.
func (s CartFacadeStub) EstimateDelivery(ctx context.Context, userID int64, zipcode string) (model.DeliveryEstimate, error) {
	if s.EstimateDeliveryFn != nil {
		return s.EstimateDeliveryFn(ctx, userID, zipcode)
	}
	return model.DeliveryEstimate{}, nil
}

// OrderFacadeStub implements handlers.OrderFacade via function overrides.
type OrderFacadeStub struct {
	CheckoutFn func(ctx context.Context, userID int64, address model.Address, contact model.ContactInfo, notes string) (*model.Order, error)
	OrdersFn   func(ctx context.Context, userID int64, status *model.OrderStatus) ([]model.Order, error)
	OrderFn    func(ctx context.Context, orderID string) (*model.Order, error)
}

// Checkout submits the current cart as an order.
func (s OrderFacadeStub) Checkout(ctx context.Context, userID int64, address model.Address, contact model.ContactInfo, notes string) (*model.Order, error) {
	if s.CheckoutFn != nil {
		return s.CheckoutFn(ctx, userID, address, contact, notes)
	}
	return &model.Order{ID: "order", UserID: userID}, nil
}

// Orders lists the user's orders.
func (s OrderFacadeStub) Orders(ctx context.Context, userID int64, status *model.OrderStatus) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, userID, status)
	}
	return nil, nil
}

// Order fetches one order by id.
func (s OrderFacadeStub) Order(ctx context.Context, orderID string) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, orderID)
	}
	return &model.Order{ID: orderID, UserID: 1}, nil
}

// FulfillmentFacadeStub implements handlers.FulfillmentFacade via overrides.
type FulfillmentFacadeStub struct {
	AllOrdersFn       func(ctx context.Context, status *model.OrderStatus) ([]model.Order, error)
	TransitionOrderFn func(ctx context.Context, orderID string, target model.OrderStatus) (*model.Order, error)
	PickingProgressFn func(orderID string) (model.PickingProgress, error)
	TogglePickedFn    func(orderID string, lineIndex int) (model.PickingProgress, error)
	MarkAllPickedFn   func(orderID string) (model.PickingProgress, error)
	ResetPickingFn    func(orderID string) (model.PickingProgress, error)
	DeliverBatchFn    func(ctx context.Context, orderIDs []string) usecase.BatchResult
}

// AllOrders lists orders across all accounts.
func (s FulfillmentFacadeStub) AllOrders(ctx context.Context, status *model.OrderStatus) ([]model.Order, error) {
	if s.AllOrdersFn != nil {
		return s.AllOrdersFn(ctx, status)
	}
	return nil, nil
}

// TransitionOrder moves an order to a new status.
func (s FulfillmentFacadeStub) TransitionOrder(ctx context.Context, orderID string, target model.OrderStatus) (*model.Order, error) {
	if s.TransitionOrderFn != nil {
		return s.TransitionOrderFn(ctx, orderID, target)
	}
	return &model.Order{ID: orderID, Status: target}, nil
}

// PickingProgress reads picking state for an order.
func (s FulfillmentFacadeStub) PickingProgress(orderID string) (model.PickingProgress, error) {
	if s.PickingProgressFn != nil {
		return s.PickingProgressFn(orderID)
	}
	return model.PickingProgress{OrderID: orderID}, nil
}

// TogglePicked flips one line's picked mark.
func (s FulfillmentFacadeStub) TogglePicked(orderID string, lineIndex int) (model.PickingProgress, error) {
	if s.TogglePickedFn != nil {
		return s.TogglePickedFn(orderID, lineIndex)
	}
	return model.PickingProgress{OrderID: orderID, Picked: []int{lineIndex}, Total: 1}, nil
}

// MarkAllPicked marks every line picked.
func (s FulfillmentFacadeStub) MarkAllPicked(orderID string) (model.PickingProgress, error) {
	if s.MarkAllPickedFn != nil {
		return s.MarkAllPickedFn(orderID)
	}
	return model.PickingProgress{OrderID: orderID}, nil
}

// ResetPicking clears every picked mark.
func (s FulfillmentFacadeStub) ResetPicking(orderID string) (model.PickingProgress, error) {
	if s.ResetPickingFn != nil {
		return s.ResetPickingFn(orderID)
	}
	return model.PickingProgress{OrderID: orderID}, nil
}

// DeliverBatch delivers several shipped orders.
func (s FulfillmentFacadeStub) DeliverBatch(ctx context.Context, orderIDs []string) usecase.BatchResult {
	if s.DeliverBatchFn != nil {
		return s.DeliverBatchFn(ctx, orderIDs)
	}
	return usecase.BatchResult{Succeeded: orderIDs}
}

// MarketFacadeStub aggregates all facade stubs for router-level tests.
type MarketFacadeStub struct {
	AuthFacadeStub
	CartFacadeStub
	OrderFacadeStub
	FulfillmentFacadeStub
}
