package di

import (
	"go.uber.org/fx"

	"github.com/ward3d/wardprints/internal/adapter/assets"
	"github.com/ward3d/wardprints/internal/adapter/meshy"
	"github.com/ward3d/wardprints/internal/app"
	"github.com/ward3d/wardprints/internal/config"
	"github.com/ward3d/wardprints/internal/logger"
	"github.com/ward3d/wardprints/internal/pkg/auth"
	"github.com/ward3d/wardprints/internal/server/http/handlers"
	"github.com/ward3d/wardprints/internal/server/http/router"
	"github.com/ward3d/wardprints/internal/storage/postgres"
	"github.com/ward3d/wardprints/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		meshy.Module,
		assets.Module,
		usecase.Module,
		fx.Provide(func(client meshy.Client) usecase.MeshProvider { return client }),
		fx.Provide(func(f *app.StorefrontFacade) handlers.StorefrontFacade { return f }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
