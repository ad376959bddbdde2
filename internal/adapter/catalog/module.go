package catalog

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/dahorta/freshmarket/internal/config"
)

// Module exposes catalog client implementation to fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	return NewHTTPClient(p.Config.CatalogAddress, p.Logger)
}
