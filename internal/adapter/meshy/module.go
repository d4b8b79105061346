package meshy

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/ward3d/wardprints/internal/config"
)

// Module exposes the mesh provider client to the fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newClient(p clientParams) (Client, error) {
	return NewHTTPClient(p.Config.MeshProviderAddress, p.Config.MeshProviderAPIKey, p.Logger)
}
