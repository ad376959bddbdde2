package repository

import (
	"context"

	"github.com/dahorta/freshmarket/internal/domain/model"
)

// CartRepository persists the authoritative remote copy of a customer cart.
// Writes always replace the whole snapshot; there is no merge.
type CartRepository interface {
	Get(ctx context.Context, userID int64) ([]model.CartLine, error)
	Replace(ctx context.Context, userID int64, lines []model.CartLine) error
	Clear(ctx context.Context, userID int64) error
}
