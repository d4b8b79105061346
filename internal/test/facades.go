package test

import (
	"context"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ward3d/wardprints/internal/domain/model"
)

// TokenParserStub implements middleware token parsing contract.
type TokenParserStub struct {
	ID      int64
	Err     error
	ParseFn func(string) (int64, error)
}

// ParseToken either delegates to override or returns predefined result.
func (s TokenParserStub) ParseToken(token string) (int64, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	if s.Err != nil {
		return 0, s.Err
	}
	return s.ID, nil
}

// CustomerDirectoryStub resolves customers for authorization middleware.
type CustomerDirectoryStub struct {
	CustomerFn func(context.Context, int64) (*model.Customer, error)
	Staff      bool
}

// Customer returns a configured or default account.
func (s CustomerDirectoryStub) Customer(ctx context.Context, id int64) (*model.Customer, error) {
	if s.CustomerFn != nil {
		return s.CustomerFn(ctx, id)
	}
	return &model.Customer{ID: id, Email: "stub@example.com", Staff: s.Staff}, nil
}

// AuthFacadeStub simulates authentication facade interactions.
type AuthFacadeStub struct {
	RegisterFn     func(context.Context, string, string, string) (*model.Customer, string, error)
	AuthenticateFn func(context.Context, string, string) (*model.Customer, string, error)
	ParseFn        func(string) (int64, error)
	CustomerFn     func(context.Context, int64) (*model.Customer, error)
}

// Register returns a customer and token for successful signup scenarios.
func (s AuthFacadeStub) Register(ctx context.Context, email, name, password string) (*model.Customer, string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, email, name, password)
	}
	return &model.Customer{ID: 1, Email: email, Name: name}, "token", nil
}

// Authenticate returns a customer and token for successful login scenarios.
func (s AuthFacadeStub) Authenticate(ctx context.Context, email, password string) (*model.Customer, string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, email, password)
	}
	return &model.Customer{ID: 1, Email: email}, "token", nil
}

// ParseToken returns stored identifier for the authenticated customer.
func (s AuthFacadeStub) ParseToken(token string) (int64, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return 1, nil
}

// Customer resolves an account by identifier.
func (s AuthFacadeStub) Customer(ctx context.Context, id int64) (*model.Customer, error) {
	if s.CustomerFn != nil {
		return s.CustomerFn(ctx, id)
	}
	return &model.Customer{ID: id, Email: "stub@example.com"}, nil
}

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	PlaceFn  func(context.Context, int64, string, model.Size, model.Color, float64, string, string) (*model.Order, error)
	OrdersFn func(context.Context, int64) ([]model.Order, error)
	TrackFn  func(context.Context, string, int64) (*model.Order, error)
	AdjustFn func(context.Context, string, int64, float64) (*model.Order, error)
}

// PlaceOrder delegates to the override or returns a default pending order.
func (s OrderFacadeStub) PlaceOrder(ctx context.Context, customerID int64, modelID string, size model.Size, color model.Color, scale float64, paymentMethod, shippingAddress string) (*model.Order, error) {
	if s.PlaceFn != nil {
		return s.PlaceFn(ctx, customerID, modelID, size, color, scale, paymentMethod, shippingAddress)
	}
	pos := 1
	return &model.Order{
		ID:              "WD-1000",
		CustomerID:      customerID,
		ModelID:         modelID,
		Size:            size,
		Color:           color,
		ScaleAdjustment: scale,
		Status:          model.OrderStatusPending,
		QueuePosition:   &pos,
		CreatedAt:       time.Unix(0, 0),
	}, nil
}

// Orders returns predefined orders for given customer.
func (s OrderFacadeStub) Orders(ctx context.Context, customerID int64) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, customerID)
	}
	return []model.Order{{ID: "WD-1000", CustomerID: customerID, Status: model.OrderStatusPending}}, nil
}

// TrackOrder resolves a single order for the tracking view.
func (s OrderFacadeStub) TrackOrder(ctx context.Context, orderID string, customerID int64) (*model.Order, error) {
	if s.TrackFn != nil {
		return s.TrackFn(ctx, orderID, customerID)
	}
	return &model.Order{ID: orderID, CustomerID: customerID, Status: model.OrderStatusPending}, nil
}

// AdjustOrderScale applies a scale change to a pending order.
func (s OrderFacadeStub) AdjustOrderScale(ctx context.Context, orderID string, customerID int64, scale float64) (*model.Order, error) {
	if s.AdjustFn != nil {
		return s.AdjustFn(ctx, orderID, customerID, scale)
	}
	return &model.Order{ID: orderID, CustomerID: customerID, ScaleAdjustment: scale, Status: model.OrderStatusPending}, nil
}

// GenerationFacadeStub simulates generation and upload operations.
type GenerationFacadeStub struct {
	StartTextFn   func(context.Context, int64, string, string) (*model.Generation, error)
	StartImageFn  func(context.Context, int64, string, string) (*model.Generation, error)
	GenerationFn  func(context.Context, int64, string) (*model.Generation, error)
	GenerationsFn func(context.Context, int64) ([]model.Generation, error)
	UploadFn      func(context.Context, string, string, io.Reader) (string, error)
}

// StartTextGeneration opens a text-to-3D task.
func (s GenerationFacadeStub) StartTextGeneration(ctx context.Context, customerID int64, name, prompt string) (*model.Generation, error) {
	if s.StartTextFn != nil {
		return s.StartTextFn(ctx, customerID, name, prompt)
	}
	return &model.Generation{ID: "task-1", CustomerID: customerID, Name: name, SourceKind: model.SourceKindText, Status: model.GenerationStatusPending}, nil
}

// StartImageGeneration opens an image-to-3D task.
func (s GenerationFacadeStub) StartImageGeneration(ctx context.Context, customerID int64, name, imageKey string) (*model.Generation, error) {
	if s.StartImageFn != nil {
		return s.StartImageFn(ctx, customerID, name, imageKey)
	}
	return &model.Generation{ID: "task-1", CustomerID: customerID, Name: name, SourceKind: model.SourceKindImage, Status: model.GenerationStatusPending}, nil
}

// Generation returns the polling view of one task.
func (s GenerationFacadeStub) Generation(ctx context.Context, customerID int64, id string) (*model.Generation, error) {
	if s.GenerationFn != nil {
		return s.GenerationFn(ctx, customerID, id)
	}
	return &model.Generation{ID: id, CustomerID: customerID, Status: model.GenerationStatusProcessing, Progress: 50}, nil
}

// Generations lists tasks of one customer.
func (s GenerationFacadeStub) Generations(ctx context.Context, customerID int64) ([]model.Generation, error) {
	if s.GenerationsFn != nil {
		return s.GenerationsFn(ctx, customerID)
	}
	return []model.Generation{{ID: "task-1", CustomerID: customerID}}, nil
}

// UploadImage stores a source image and returns its key.
func (s GenerationFacadeStub) UploadImage(ctx context.Context, filename, contentType string, body io.Reader) (string, error) {
	if s.UploadFn != nil {
		return s.UploadFn(ctx, filename, contentType, body)
	}
	return "uploads/stub.png", nil
}

// AdminFacadeStub covers the staff-only surface.
type AdminFacadeStub struct {
	AllOrdersFn  func(context.Context) ([]model.Order, error)
	ChangeFn     func(context.Context, string, model.OrderStatus, int64) (*model.Order, error)
	OverrideFn   func(context.Context, string, model.OrderStatus, int64) (*model.Order, error)
	AuditFn      func(context.Context, string) ([]model.StatusAudit, error)
	CustomersFn  func(context.Context) ([]model.Customer, error)
	DisableFn    func(context.Context, int64) error
	ModelsFn     func(context.Context) ([]model.PrintModel, error)
	QueueStatsFn func(context.Context) (*model.QueueStats, error)
}

// AllOrders returns every order in the system.
func (s AdminFacadeStub) AllOrders(ctx context.Context) ([]model.Order, error) {
	if s.AllOrdersFn != nil {
		return s.AllOrdersFn(ctx)
	}
	return []model.Order{{ID: "WD-1000", Status: model.OrderStatusPending}}, nil
}

// ChangeOrderStatus moves an order along the lifecycle.
func (s AdminFacadeStub) ChangeOrderStatus(ctx context.Context, orderID string, next model.OrderStatus, actorID int64) (*model.Order, error) {
	if s.ChangeFn != nil {
		return s.ChangeFn(ctx, orderID, next, actorID)
	}
	return &model.Order{ID: orderID, Status: next}, nil
}

// OverrideOrderStatus applies an audited status jump.
func (s AdminFacadeStub) OverrideOrderStatus(ctx context.Context, orderID string, target model.OrderStatus, actorID int64) (*model.Order, error) {
	if s.OverrideFn != nil {
		return s.OverrideFn(ctx, orderID, target, actorID)
	}
	return &model.Order{ID: orderID, Status: target}, nil
}

// OrderAudit reads the status history of one order.
func (s AdminFacadeStub) OrderAudit(ctx context.Context, orderID string) ([]model.StatusAudit, error) {
	if s.AuditFn != nil {
		return s.AuditFn(ctx, orderID)
	}
	return []model.StatusAudit{{OrderID: orderID, From: model.OrderStatusPending, To: model.OrderStatusCrafting, ActorID: 1}}, nil
}

// Customers lists all accounts.
func (s AdminFacadeStub) Customers(ctx context.Context) ([]model.Customer, error) {
	if s.CustomersFn != nil {
		return s.CustomersFn(ctx)
	}
	return []model.Customer{{ID: 1, Email: "stub@example.com"}}, nil
}

// DisableCustomer blocks an account.
func (s AdminFacadeStub) DisableCustomer(ctx context.Context, id int64) error {
	if s.DisableFn != nil {
		return s.DisableFn(ctx, id)
	}
	return nil
}

// Models lists the generated print model catalog.
func (s AdminFacadeStub) Models(ctx context.Context) ([]model.PrintModel, error) {
	if s.ModelsFn != nil {
		return s.ModelsFn(ctx)
	}
	return []model.PrintModel{{ID: "model-1", CreatorID: 1, SourceKind: model.SourceKindText}}, nil
}

// QueueStats reports printer load.
func (s AdminFacadeStub) QueueStats(ctx context.Context) (*model.QueueStats, error) {
	if s.QueueStatsFn != nil {
		return s.QueueStatsFn(ctx)
	}
	return &model.QueueStats{InFlight: 2, Capacity: 5, Utilization: 40}, nil
}

// StorefrontFacadeStub aggregates facade dependencies for HTTP layer tests.
type StorefrontFacadeStub struct {
	AuthFacadeStub
	OrderFacadeStub
	GenerationFacadeStub
	AdminFacadeStub
}

// GenerationResolution stores information about ApplyGenerationResult invocations.
type GenerationResolution struct {
	GenerationID string
	Result       *model.GenerationResult
}

// WorkerFacadeStub mimics worker interactions with the storefront facade.
type WorkerFacadeStub struct {
	Batches       [][]model.Generation
	BatchesFn     func(context.Context, int) ([]model.Generation, error)
	CheckFn       func(context.Context, string) (*model.GenerationResult, error)
	ApplyFn       func(context.Context, model.Generation, *model.GenerationResult) error
	Applied    []GenerationResolution
	mu         sync.Mutex
	batchCalls int32
}

// Lock exposes internal mutex for external synchronization.
func (s *WorkerFacadeStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *WorkerFacadeStub) Unlock() { s.mu.Unlock() }

// GenerationsForPolling returns batches from the configured queue.
func (s *WorkerFacadeStub) GenerationsForPolling(ctx context.Context, limit int) ([]model.Generation, error) {
	if s.BatchesFn != nil {
		return s.BatchesFn(ctx, limit)
	}
	call := atomic.AddInt32(&s.batchCalls, 1)
	if int(call) <= len(s.Batches) {
		return s.Batches[call-1], nil
	}
	time.Sleep(10 * time.Millisecond)
	return nil, nil
}

// CheckGenerationTask returns configured task state.
func (s *WorkerFacadeStub) CheckGenerationTask(ctx context.Context, taskID string) (*model.GenerationResult, error) {
	if s.CheckFn != nil {
		return s.CheckFn(ctx, taskID)
	}
	return &model.GenerationResult{TaskID: taskID, Status: model.GenerationStatusCompleted, Progress: 100}, nil
}

// ApplyGenerationResult records resolution requests.
func (s *WorkerFacadeStub) ApplyGenerationResult(ctx context.Context, gen model.Generation, result *model.GenerationResult) error {
	if s.ApplyFn != nil {
		return s.ApplyFn(ctx, gen, result)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Applied = append(s.Applied, GenerationResolution{GenerationID: gen.ID, Result: result})
	return nil
}
