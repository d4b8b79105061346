package test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	domainErrors "github.com/ward3d/wardprints/internal/domain/errors"
	"github.com/ward3d/wardprints/internal/domain/model"
	"github.com/ward3d/wardprints/internal/domain/repository"
)

// printQueueCapacity mirrors the production admission cap.
const printQueueCapacity = 5

// CustomerRepositoryStub stores customers in-memory for tests.
type CustomerRepositoryStub struct {
	ByEmail map[string]*model.Customer
	ByID    map[int64]*model.Customer
	Next    int64
	Err     error
}

// NewCustomerRepositoryStub constructs stub repository with initialized maps.
func NewCustomerRepositoryStub() *CustomerRepositoryStub {
	return &CustomerRepositoryStub{
		ByEmail: make(map[string]*model.Customer),
		ByID:    make(map[int64]*model.Customer),
		Next:    1,
	}
}

// Create registers a customer unless the email is taken.
func (s *CustomerRepositoryStub) Create(ctx context.Context, email, name, passwordHash string) (*model.Customer, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if _, exists := s.ByEmail[email]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	customer := &model.Customer{ID: s.Next, Email: email, Name: name, PasswordHash: passwordHash, CreatedAt: time.Now()}
	s.Next++
	s.ByEmail[email] = customer
	s.ByID[customer.ID] = customer
	return customer, nil
}

// GetByEmail fetches a customer by email or returns not found.
func (s *CustomerRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.Customer, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if c, ok := s.ByEmail[email]; ok {
		return c, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches a customer by identifier or returns not found.
func (s *CustomerRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Customer, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if c, ok := s.ByID[id]; ok {
		return c, nil
	}
	return nil, domainErrors.ErrNotFound
}

// List returns all customers ordered by ID.
func (s *CustomerRepositoryStub) List(ctx context.Context) ([]model.Customer, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	result := make([]model.Customer, 0, len(s.ByID))
	for _, c := range s.ByID {
		result = append(result, *c)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// Disable marks a customer as soft-disabled.
func (s *CustomerRepositoryStub) Disable(ctx context.Context, id int64) error {
	if s.Err != nil {
		return s.Err
	}
	c, ok := s.ByID[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	now := time.Now()
	c.DisabledAt = &now
	return nil
}

// OrderRepositoryStub is an in-memory order store that mirrors the storage
// layer's semantics: serialized admission at capacity, dense queue-position
// ranking, optimistic transition guard, and audit records.
type OrderRepositoryStub struct {
	mu     sync.Mutex
	seq    int
	clock  time.Time
	byID   map[string]*model.Order
	Audits []model.StatusAudit

	// FailNextApplies makes the next N ApplyStatusChange calls lose the
	// optimistic race, for retry tests.
	FailNextApplies int
	Err             error
}

// NewOrderRepositoryStub constructs an empty in-memory order store.
func NewOrderRepositoryStub() *OrderRepositoryStub {
	return &OrderRepositoryStub{
		byID:  make(map[string]*model.Order),
		clock: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (s *OrderRepositoryStub) tick() time.Time {
	s.clock = s.clock.Add(time.Millisecond)
	return s.clock
}

func (s *OrderRepositoryStub) inFlightLocked() []*model.Order {
	var result []*model.Order
	for _, o := range s.byID {
		if o.Status.InFlight() {
			result = append(result, o)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result
}

func (s *OrderRepositoryStub) rerankLocked() {
	for _, o := range s.byID {
		if !o.Status.InFlight() {
			o.QueuePosition = nil
		}
	}
	for i, o := range s.inFlightLocked() {
		pos := i + 1
		o.QueuePosition = &pos
	}
}

func cloneOrder(o *model.Order) *model.Order {
	copied := *o
	if o.QueuePosition != nil {
		pos := *o.QueuePosition
		copied.QueuePosition = &pos
	}
	if o.TrackingNumber != nil {
		tn := *o.TrackingNumber
		copied.TrackingNumber = &tn
	}
	if o.EstimatedDelivery != nil {
		eta := *o.EstimatedDelivery
		copied.EstimatedDelivery = &eta
	}
	return &copied
}

// Create admits an order if the in-flight set is below capacity.
func (s *OrderRepositoryStub) Create(ctx context.Context, order repository.NewOrder) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	inFlight := len(s.inFlightLocked())
	if inFlight >= printQueueCapacity {
		return nil, domainErrors.ErrQueueFull
	}

	s.seq++
	now := s.tick()
	pos := inFlight + 1
	created := &model.Order{
		ID:              fmt.Sprintf("WD-%04d", s.seq),
		CustomerID:      order.CustomerID,
		ModelID:         order.ModelID,
		Size:            order.Size,
		Color:           order.Color,
		ScaleAdjustment: order.ScaleAdjustment,
		Price:           order.Price,
		Status:          model.OrderStatusPending,
		QueuePosition:   &pos,
		PaymentMethod:   order.PaymentMethod,
		ShippingAddress: order.ShippingAddress,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	s.byID[created.ID] = created
	return cloneOrder(created), nil
}

// GetByID returns a copy of the stored order.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, id string) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	o, ok := s.byID[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return cloneOrder(o), nil
}

// ListByCustomer returns the customer's orders by creation time.
func (s *OrderRepositoryStub) ListByCustomer(ctx context.Context, customerID int64) ([]model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []model.Order
	for _, o := range s.byID {
		if o.CustomerID == customerID {
			result = append(result, *cloneOrder(o))
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

// ListAll returns every order by creation time.
func (s *OrderRepositoryStub) ListAll(ctx context.Context) ([]model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []model.Order
	for _, o := range s.byID {
		result = append(result, *cloneOrder(o))
	}
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })
	return result, nil
}

// CountInFlight counts orders occupying queue slots.
func (s *OrderRepositoryStub) CountInFlight(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	return len(s.inFlightLocked()), nil
}

// ApplyStatusChange applies a transition with the optimistic guard and
// re-ranks the in-flight set.
func (s *OrderRepositoryStub) ApplyStatusChange(ctx context.Context, change repository.StatusChange) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}

	o, ok := s.byID[change.OrderID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	if s.FailNextApplies > 0 {
		s.FailNextApplies--
		return nil, domainErrors.ErrConcurrentModification
	}
	if !o.UpdatedAt.Equal(change.ExpectedUpdatedAt) {
		return nil, domainErrors.ErrConcurrentModification
	}

	o.Status = change.To
	o.UpdatedAt = s.tick()
	if change.TrackingNumber != nil {
		o.TrackingNumber = change.TrackingNumber
	}
	if change.EstimatedDelivery != nil {
		o.EstimatedDelivery = change.EstimatedDelivery
	}
	s.rerankLocked()

	s.Audits = append(s.Audits, model.StatusAudit{
		ID:       int64(len(s.Audits) + 1),
		OrderID:  change.OrderID,
		From:     change.From,
		To:       change.To,
		ActorID:  change.ActorID,
		Override: change.Override,
		At:       o.UpdatedAt,
	})
	return cloneOrder(o), nil
}

// UpdateScale updates scale and price of a customer's order.
func (s *OrderRepositoryStub) UpdateScale(ctx context.Context, orderID string, customerID int64, scale, price float64) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.byID[orderID]
	if !ok || o.CustomerID != customerID {
		return nil, domainErrors.ErrNotFound
	}
	o.ScaleAdjustment = scale
	o.Price = price
	o.UpdatedAt = s.tick()
	return cloneOrder(o), nil
}

// ListAudit returns recorded status changes for one order.
func (s *OrderRepositoryStub) ListAudit(ctx context.Context, orderID string) ([]model.StatusAudit, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []model.StatusAudit
	for _, a := range s.Audits {
		if a.OrderID == orderID {
			result = append(result, a)
		}
	}
	return result, nil
}

// PrintModelRepositoryStub stores generated assets in-memory.
type PrintModelRepositoryStub struct {
	mu     sync.Mutex
	Models map[string]*model.PrintModel
	Err    error
}

// NewPrintModelRepositoryStub constructs the stub with an initialized map.
func NewPrintModelRepositoryStub() *PrintModelRepositoryStub {
	return &PrintModelRepositoryStub{Models: make(map[string]*model.PrintModel)}
}

// Create stores an asset, rejecting duplicates.
func (s *PrintModelRepositoryStub) Create(ctx context.Context, m *model.PrintModel) (*model.PrintModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if _, exists := s.Models[m.ID]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	stored := *m
	stored.CreatedAt = time.Now()
	s.Models[m.ID] = &stored
	return &stored, nil
}

// GetByID fetches an asset or returns not found.
func (s *PrintModelRepositoryStub) GetByID(ctx context.Context, id string) (*model.PrintModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m, ok := s.Models[id]; ok {
		return m, nil
	}
	return nil, domainErrors.ErrNotFound
}

// ListByCreator returns assets created by one customer.
func (s *PrintModelRepositoryStub) ListByCreator(ctx context.Context, creatorID int64) ([]model.PrintModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []model.PrintModel
	for _, m := range s.Models {
		if m.CreatorID == creatorID {
			result = append(result, *m)
		}
	}
	return result, nil
}

// ListAll returns every stored asset.
func (s *PrintModelRepositoryStub) ListAll(ctx context.Context) ([]model.PrintModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []model.PrintModel
	for _, m := range s.Models {
		result = append(result, *m)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

// GenerationRepositoryStub stores generation tasks in-memory.
type GenerationRepositoryStub struct {
	mu          sync.Mutex
	Generations map[string]*model.Generation
	Err         error
	ResolveErr  error
}

// NewGenerationRepositoryStub constructs the stub with an initialized map.
func NewGenerationRepositoryStub() *GenerationRepositoryStub {
	return &GenerationRepositoryStub{Generations: make(map[string]*model.Generation)}
}

// Create stores a generation task.
func (s *GenerationRepositoryStub) Create(ctx context.Context, g *model.Generation) (*model.Generation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	stored := *g
	now := time.Now()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	s.Generations[g.ID] = &stored
	return &stored, nil
}

// GetByID fetches a generation or returns not found.
func (s *GenerationRepositoryStub) GetByID(ctx context.Context, id string) (*model.Generation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if g, ok := s.Generations[id]; ok {
		copied := *g
		return &copied, nil
	}
	return nil, domainErrors.ErrNotFound
}

// ListByCustomer returns the customer's generations.
func (s *GenerationRepositoryStub) ListByCustomer(ctx context.Context, customerID int64) ([]model.Generation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []model.Generation
	for _, g := range s.Generations {
		if g.CustomerID == customerID {
			result = append(result, *g)
		}
	}
	return result, nil
}

// SelectBatchForPolling returns unresolved generations up to limit.
func (s *GenerationRepositoryStub) SelectBatchForPolling(ctx context.Context, limit int) ([]model.Generation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.Generation
	for _, g := range s.Generations {
		if !g.Status.Resolved() && len(result) < limit {
			result = append(result, *g)
		}
	}
	return result, nil
}

// UpdateProgress records provider-reported progress.
func (s *GenerationRepositoryStub) UpdateProgress(ctx context.Context, id string, status model.GenerationStatus, progress int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.Generations[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	g.Status = status
	g.Progress = progress
	g.UpdatedAt = time.Now()
	return nil
}

// Resolve finalizes a generation, optionally linking the produced asset.
func (s *GenerationRepositoryStub) Resolve(ctx context.Context, id string, status model.GenerationStatus, modelID *string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ResolveErr != nil {
		return s.ResolveErr
	}
	g, ok := s.Generations[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	g.Status = status
	g.ModelID = modelID
	g.UpdatedAt = time.Now()
	return nil
}
