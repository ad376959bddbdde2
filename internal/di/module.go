package di

import (
	"go.uber.org/fx"

	"github.com/dahorta/freshmarket/internal/adapter/catalog"
	"github.com/dahorta/freshmarket/internal/app"
	"github.com/dahorta/freshmarket/internal/config"
	"github.com/dahorta/freshmarket/internal/logger"
	"github.com/dahorta/freshmarket/internal/pkg/auth"
	"github.com/dahorta/freshmarket/internal/server/http/handlers"
	"github.com/dahorta/freshmarket/internal/server/http/router"
	"github.com/dahorta/freshmarket/internal/storage/postgres"
	"github.com/dahorta/freshmarket/internal/storage/snapshot"
	"github.com/dahorta/freshmarket/internal/usecase"
	"github.com/dahorta/freshmarket/internal/worker"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		snapshot.Module,
		catalog.Module,
		usecase.Module,
		fx.Provide(
			func(client catalog.Client) usecase.ProductSource { return client },
			func(client catalog.Client) usecase.StockAdjuster { return client },
			func(cache *snapshot.Cache) usecase.SnapshotCache { return cache },
			func(syncer *worker.CartSyncer) usecase.Syncer { return syncer },
			func(facade *app.FreshFacade) handlers.MarketFacade { return facade },
		),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
