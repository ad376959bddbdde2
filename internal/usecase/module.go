package usecase

import (
	"go.uber.org/fx"

	"github.com/dahorta/freshmarket/internal/config"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	NewAuthUseCase,
	NewCartUseCase,
	NewOrderUseCase,
	NewPickingTracker,
	newQuantityGuard,
)

type guardParams struct {
	fx.In

	Config *config.Config
}

func newQuantityGuard(p guardParams) *QuantityGuard {
	return NewQuantityGuard(p.Config.RemovalConfirmTTL)
}
