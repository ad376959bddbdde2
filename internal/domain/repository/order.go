package repository

import (
	"context"
	"time"

	"github.com/dahorta/freshmarket/internal/domain/model"
)

// OrderRepository describes persistence operations with orders. A nil status
// filter on the list methods returns orders in every state.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	GetByID(ctx context.Context, id string) (*model.Order, error)
	ListByUser(ctx context.Context, userID int64, status *model.OrderStatus) ([]model.Order, error)
	ListAll(ctx context.Context, status *model.OrderStatus) ([]model.Order, error)
	UpdateStatus(ctx context.Context, id string, status model.OrderStatus, deliveryDate *time.Time) (*model.Order, error)
}
