package usecase

import (
	"context"
	"errors"
	"path"
	"strings"
	"unicode/utf8"

	domainErrors "github.com/ward3d/wardprints/internal/domain/errors"
	"github.com/ward3d/wardprints/internal/domain/model"
	"github.com/ward3d/wardprints/internal/domain/repository"
)

// maxDefaultNameLen caps names derived from prompts.
const maxDefaultNameLen = 60

func truncateName(s string) string {
	if utf8.RuneCountInString(s) <= maxDefaultNameLen {
		return s
	}
	return string([]rune(s)[:maxDefaultNameLen])
}

// MeshProvider opens mesh-generation tasks with the external provider and
// reports their progress.
type MeshProvider interface {
	CreateTextTask(ctx context.Context, prompt string) (string, error)
	CreateImageTask(ctx context.Context, imageURL string) (string, error)
	FetchTask(ctx context.Context, taskID string) (*model.GenerationResult, error)
}

// ImageStore gives the use case access to uploaded source images: resolving
// a stored key into a URL the provider can fetch, and disposing of the image
// once its task has resolved.
type ImageStore interface {
	ResolveURL(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

// GenerationUseCase drives mesh-generation tasks from submission to a stored
// PrintModel.
type GenerationUseCase struct {
	generations repository.GenerationRepository
	models      repository.PrintModelRepository
	provider    MeshProvider
	images      ImageStore
}

// NewGenerationUseCase constructs GenerationUseCase.
func NewGenerationUseCase(generations repository.GenerationRepository, models repository.PrintModelRepository, provider MeshProvider, images ImageStore) *GenerationUseCase {
	return &GenerationUseCase{generations: generations, models: models, provider: provider, images: images}
}

// StartText opens a text-to-3D task and records it as pending. A blank name
// defaults to the prompt itself.
func (u *GenerationUseCase) StartText(ctx context.Context, customerID int64, name, prompt string) (*model.Generation, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, domainErrors.ErrInvalidPrompt
	}
	name = strings.TrimSpace(name)
	if name == "" {
		name = truncateName(prompt)
	}

	taskID, err := u.provider.CreateTextTask(ctx, prompt)
	if err != nil {
		return nil, err
	}

	return u.generations.Create(ctx, &model.Generation{
		ID:         taskID,
		CustomerID: customerID,
		Name:       name,
		SourceKind: model.SourceKindText,
		Prompt:     prompt,
		Status:     model.GenerationStatusPending,
	})
}

// StartImage opens an image-to-3D task for a previously uploaded source
// image. A blank name defaults to the uploaded file's base name.
func (u *GenerationUseCase) StartImage(ctx context.Context, customerID int64, name, imageKey string) (*model.Generation, error) {
	if strings.TrimSpace(imageKey) == "" {
		return nil, domainErrors.ErrInvalidPrompt
	}
	name = strings.TrimSpace(name)
	if name == "" {
		base := path.Base(imageKey)
		name = strings.TrimSuffix(base, path.Ext(base))
	}

	imageURL, err := u.images.ResolveURL(ctx, imageKey)
	if err != nil {
		return nil, err
	}

	taskID, err := u.provider.CreateImageTask(ctx, imageURL)
	if err != nil {
		return nil, err
	}

	return u.generations.Create(ctx, &model.Generation{
		ID:         taskID,
		CustomerID: customerID,
		Name:       name,
		SourceKind: model.SourceKindImage,
		ImageKey:   imageKey,
		Status:     model.GenerationStatusPending,
	})
}

// Get returns a generation owned by the customer; the storefront polls this
// while rendering progress.
func (u *GenerationUseCase) Get(ctx context.Context, customerID int64, id string) (*model.Generation, error) {
	gen, err := u.generations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if gen.CustomerID != customerID {
		return nil, domainErrors.ErrNotFound
	}
	return gen, nil
}

// ListByCustomer returns the customer's generations.
func (u *GenerationUseCase) ListByCustomer(ctx context.Context, customerID int64) ([]model.Generation, error) {
	return u.generations.ListByCustomer(ctx, customerID)
}

// SelectBatchForPolling claims unresolved generations for the worker.
func (u *GenerationUseCase) SelectBatchForPolling(ctx context.Context, limit int) ([]model.Generation, error) {
	return u.generations.SelectBatchForPolling(ctx, limit)
}

// CheckTask queries the provider for current task state.
func (u *GenerationUseCase) CheckTask(ctx context.Context, taskID string) (*model.GenerationResult, error) {
	return u.provider.FetchTask(ctx, taskID)
}

// Apply records a provider result. A completed task produces an immutable
// PrintModel; a fresh asset is created on every completion, never an update.
// The asset ID is derived from the task ID, so a retry after a partial apply
// finds the asset already stored and goes straight to resolving the task.
func (u *GenerationUseCase) Apply(ctx context.Context, gen model.Generation, result *model.GenerationResult) error {
	switch result.Status {
	case model.GenerationStatusCompleted:
		assetID := "model-" + gen.ID
		_, err := u.models.Create(ctx, &model.PrintModel{
			ID:         assetID,
			Name:       gen.Name,
			CreatorID:  gen.CustomerID,
			SourceKind: gen.SourceKind,
			ModelURLs:  result.ModelURLs,
		})
		if err != nil && !errors.Is(err, domainErrors.ErrAlreadyExists) {
			return err
		}
		if err := u.generations.Resolve(ctx, gen.ID, model.GenerationStatusCompleted, &assetID); err != nil {
			return err
		}
		u.discardSourceImage(ctx, gen)
		return nil
	case model.GenerationStatusFailed:
		if err := u.generations.Resolve(ctx, gen.ID, model.GenerationStatusFailed, nil); err != nil {
			return err
		}
		u.discardSourceImage(ctx, gen)
		return nil
	default:
		return u.generations.UpdateProgress(ctx, gen.ID, result.Status, result.Progress)
	}
}

// discardSourceImage removes the uploaded source image once a task has
// resolved. A failed delete only leaves a stray object behind, so it never
// fails the apply.
func (u *GenerationUseCase) discardSourceImage(ctx context.Context, gen model.Generation) {
	if gen.ImageKey == "" {
		return
	}
	_ = u.images.Delete(ctx, gen.ImageKey)
}

// GetModel fetches a stored 3D asset.
func (u *GenerationUseCase) GetModel(ctx context.Context, id string) (*model.PrintModel, error) {
	return u.models.GetByID(ctx, id)
}

// ListModels returns all stored assets for the admin panel.
func (u *GenerationUseCase) ListModels(ctx context.Context) ([]model.PrintModel, error) {
	return u.models.ListAll(ctx)
}
