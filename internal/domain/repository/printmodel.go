package repository

import (
	"context"

	"github.com/ward3d/wardprints/internal/domain/model"
)

// PrintModelRepository describes persistence for generated 3D assets.
// Assets are immutable once stored.
type PrintModelRepository interface {
	Create(ctx context.Context, m *model.PrintModel) (*model.PrintModel, error)
	GetByID(ctx context.Context, id string) (*model.PrintModel, error)
	ListByCreator(ctx context.Context, creatorID int64) ([]model.PrintModel, error)
	ListAll(ctx context.Context) ([]model.PrintModel, error)
}
