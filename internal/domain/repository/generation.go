package repository

import (
	"context"

	"github.com/ward3d/wardprints/internal/domain/model"
)

// GenerationRepository tracks mesh-generation tasks awaiting resolution.
type GenerationRepository interface {
	Create(ctx context.Context, g *model.Generation) (*model.Generation, error)
	GetByID(ctx context.Context, id string) (*model.Generation, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]model.Generation, error)
	SelectBatchForPolling(ctx context.Context, limit int) ([]model.Generation, error)
	UpdateProgress(ctx context.Context, id string, status model.GenerationStatus, progress int) error
	Resolve(ctx context.Context, id string, status model.GenerationStatus, modelID *string) error
}
