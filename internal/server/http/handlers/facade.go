package handlers

import (
	"context"

	"github.com/dahorta/freshmarket/internal/domain/model"
	pkgAuth "github.com/dahorta/freshmarket/internal/pkg/auth"
	"github.com/dahorta/freshmarket/internal/usecase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, login, password string) (string, error)
	Authenticate(ctx context.Context, login, password string) (string, error)
	ParseToken(token string) (pkgAuth.Claims, error)
}

// CartFacade encapsulates cart operations exposed via HTTP.
type CartFacade interface {
	Cart(ctx context.Context, userID int64) usecase.CartView
	AddProduct(ctx context.Context, userID int64, productID string) (usecase.CartMutation, error)
	AdjustQuantity(ctx context.Context, userID int64, productID string, delta float64) (usecase.CartMutation, error)
	SetQuantity(ctx context.Context, userID int64, productID string, quantity float64) (usecase.CartMutation, error)
	RemoveProduct(ctx context.Context, userID int64, productID string) error
	ClearCart(ctx context.Context, userID int64)
	EstimateDelivery(ctx context.Context, userID int64, zipcode string) (model.DeliveryEstimate, error)
}

// OrderFacade covers checkout and the customer's own order history.
type OrderFacade interface {
	Checkout(ctx context.Context, userID int64, address model.Address, contact model.ContactInfo, notes string) (*model.Order, error)
	Orders(ctx context.Context, userID int64, status *model.OrderStatus) ([]model.Order, error)
	Order(ctx context.Context, orderID string) (*model.Order, error)
}

// FulfillmentFacade provides the staff-side order management operations.
type FulfillmentFacade interface {
	AllOrders(ctx context.Context, status *model.OrderStatus) ([]model.Order, error)
	TransitionOrder(ctx context.Context, orderID string, target model.OrderStatus) (*model.Order, error)
	PickingProgress(orderID string) (model.PickingProgress, error)
	TogglePicked(orderID string, lineIndex int) (model.PickingProgress, error)
	MarkAllPicked(orderID string) (model.PickingProgress, error)
	ResetPicking(orderID string) (model.PickingProgress, error)
	DeliverBatch(ctx context.Context, orderIDs []string) usecase.BatchResult
}

// MarketFacade aggregates the full set of operations used across handlers.
type MarketFacade interface {
	AuthFacade
	CartFacade
	OrderFacade
	FulfillmentFacade
}
