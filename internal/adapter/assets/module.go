package assets

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/ward3d/wardprints/internal/config"
	"github.com/ward3d/wardprints/internal/usecase"
)

var Module = fx.Provide(
	func(cfg *config.Config, logger *slog.Logger) (Store, error) {
		return NewS3Store(context.Background(), cfg, logger)
	},
	func(s Store) usecase.ImageStore { return s },
)
