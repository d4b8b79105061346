package app

import (
	"context"
	"io"

	"github.com/ward3d/wardprints/internal/adapter/assets"
	"github.com/ward3d/wardprints/internal/domain/model"
	"github.com/ward3d/wardprints/internal/usecase"
)

// StorefrontFacade is the application surface consumed by the HTTP layer and
// the generation worker. It delegates to the use cases and keeps handlers
// free of wiring.
type StorefrontFacade struct {
	auth        *usecase.AuthUseCase
	orders      *usecase.OrderUseCase
	generations *usecase.GenerationUseCase
	uploads     assets.Store
}

func NewStorefrontFacade(auth *usecase.AuthUseCase, orders *usecase.OrderUseCase, generations *usecase.GenerationUseCase, uploads assets.Store) *StorefrontFacade {
	return &StorefrontFacade{auth: auth, orders: orders, generations: generations, uploads: uploads}
}

func (f *StorefrontFacade) Register(ctx context.Context, email, name, password string) (*model.Customer, string, error) {
	return f.auth.Register(ctx, email, name, password)
}

func (f *StorefrontFacade) Authenticate(ctx context.Context, email, password string) (*model.Customer, string, error) {
	return f.auth.Authenticate(ctx, email, password)
}

func (f *StorefrontFacade) ParseToken(token string) (int64, error) {
	return f.auth.ParseToken(token)
}

func (f *StorefrontFacade) Customer(ctx context.Context, id int64) (*model.Customer, error) {
	return f.auth.GetByID(ctx, id)
}

func (f *StorefrontFacade) Customers(ctx context.Context) ([]model.Customer, error) {
	return f.auth.ListCustomers(ctx)
}

func (f *StorefrontFacade) DisableCustomer(ctx context.Context, id int64) error {
	return f.auth.Disable(ctx, id)
}

func (f *StorefrontFacade) PlaceOrder(ctx context.Context, customerID int64, modelID string, size model.Size, color model.Color, scale float64, paymentMethod, shippingAddress string) (*model.Order, error) {
	if _, err := f.generations.GetModel(ctx, modelID); err != nil {
		return nil, err
	}
	return f.orders.Place(ctx, customerID, modelID, size, color, scale, paymentMethod, shippingAddress)
}

func (f *StorefrontFacade) Orders(ctx context.Context, customerID int64) ([]model.Order, error) {
	return f.orders.ListByCustomer(ctx, customerID)
}

func (f *StorefrontFacade) TrackOrder(ctx context.Context, orderID string, customerID int64) (*model.Order, error) {
	return f.orders.Track(ctx, orderID, customerID)
}

func (f *StorefrontFacade) AdjustOrderScale(ctx context.Context, orderID string, customerID int64, scale float64) (*model.Order, error) {
	return f.orders.AdjustScale(ctx, orderID, customerID, scale)
}

func (f *StorefrontFacade) AllOrders(ctx context.Context) ([]model.Order, error) {
	return f.orders.ListAll(ctx)
}

func (f *StorefrontFacade) ChangeOrderStatus(ctx context.Context, orderID string, next model.OrderStatus, actorID int64) (*model.Order, error) {
	return f.orders.Transition(ctx, orderID, next, actorID)
}

func (f *StorefrontFacade) OverrideOrderStatus(ctx context.Context, orderID string, target model.OrderStatus, actorID int64) (*model.Order, error) {
	return f.orders.Override(ctx, orderID, target, actorID)
}

func (f *StorefrontFacade) OrderAudit(ctx context.Context, orderID string) ([]model.StatusAudit, error) {
	return f.orders.Audit(ctx, orderID)
}

func (f *StorefrontFacade) QueueStats(ctx context.Context) (*model.QueueStats, error) {
	return f.orders.Stats(ctx)
}

func (f *StorefrontFacade) StartTextGeneration(ctx context.Context, customerID int64, name, prompt string) (*model.Generation, error) {
	return f.generations.StartText(ctx, customerID, name, prompt)
}

func (f *StorefrontFacade) StartImageGeneration(ctx context.Context, customerID int64, name, imageKey string) (*model.Generation, error) {
	return f.generations.StartImage(ctx, customerID, name, imageKey)
}

func (f *StorefrontFacade) Generation(ctx context.Context, customerID int64, id string) (*model.Generation, error) {
	return f.generations.Get(ctx, customerID, id)
}

func (f *StorefrontFacade) Generations(ctx context.Context, customerID int64) ([]model.Generation, error) {
	return f.generations.ListByCustomer(ctx, customerID)
}

func (f *StorefrontFacade) Models(ctx context.Context) ([]model.PrintModel, error) {
	return f.generations.ListModels(ctx)
}

func (f *StorefrontFacade) UploadImage(ctx context.Context, filename, contentType string, body io.Reader) (string, error) {
	return f.uploads.Upload(ctx, filename, contentType, body)
}

func (f *StorefrontFacade) GenerationsForPolling(ctx context.Context, limit int) ([]model.Generation, error) {
	return f.generations.SelectBatchForPolling(ctx, limit)
}

func (f *StorefrontFacade) CheckGenerationTask(ctx context.Context, taskID string) (*model.GenerationResult, error) {
	return f.generations.CheckTask(ctx, taskID)
}

func (f *StorefrontFacade) ApplyGenerationResult(ctx context.Context, gen model.Generation, result *model.GenerationResult) error {
	return f.generations.Apply(ctx, gen, result)
}
