package usecase

import (
	"context"
	"errors"
	"testing"

	domainErrors "github.com/ward3d/wardprints/internal/domain/errors"
	"github.com/ward3d/wardprints/internal/domain/model"
	testhelpers "github.com/ward3d/wardprints/internal/test"
)

func placeOrder(t *testing.T, uc *OrderUseCase, customerID int64) *model.Order {
	t.Helper()
	order, err := uc.Place(context.Background(), customerID, "model-1", model.SizeMedium, model.ColorBlue, 1.0, "card", "123 Main St")
	if err != nil {
		t.Fatalf("unexpected place error: %v", err)
	}
	return order
}

func verifyDensePositions(t *testing.T, uc *OrderUseCase) {
	t.Helper()
	orders, err := uc.ListAll(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	seen := make(map[int]string)
	count := 0
	for _, o := range orders {
		if o.Status.InFlight() {
			count++
			if o.QueuePosition == nil {
				t.Fatalf("in-flight order %s has no queue position", o.ID)
			}
			if prev, dup := seen[*o.QueuePosition]; dup {
				t.Fatalf("orders %s and %s share queue position %d", prev, o.ID, *o.QueuePosition)
			}
			seen[*o.QueuePosition] = o.ID
		} else if o.QueuePosition != nil {
			t.Fatalf("order %s left the queue but kept position %d", o.ID, *o.QueuePosition)
		}
	}
	for pos := 1; pos <= count; pos++ {
		if _, ok := seen[pos]; !ok {
			t.Fatalf("queue ranking has a gap at position %d (in-flight=%d)", pos, count)
		}
	}
}

func TestPlaceValidatesSelections(t *testing.T) {
	uc := NewOrderUseCase(testhelpers.NewOrderRepositoryStub())
	ctx := context.Background()

	if _, err := uc.Place(ctx, 1, "m", "enormous", model.ColorRed, 1, "card", "addr"); !errors.Is(err, domainErrors.ErrInvalidSize) {
		t.Fatalf("expected invalid size, got %v", err)
	}
	if _, err := uc.Place(ctx, 1, "m", model.SizeSmall, "magenta", 1, "card", "addr"); !errors.Is(err, domainErrors.ErrInvalidColor) {
		t.Fatalf("expected invalid color, got %v", err)
	}
	if _, err := uc.Place(ctx, 1, "m", model.SizeSmall, model.ColorRed, -2, "card", "addr"); !errors.Is(err, domainErrors.ErrInvalidScale) {
		t.Fatalf("expected invalid scale, got %v", err)
	}
}

func TestPlaceDefaultsScaleAndPrices(t *testing.T) {
	uc := NewOrderUseCase(testhelpers.NewOrderRepositoryStub())
	order, err := uc.Place(context.Background(), 1, "model-1", model.SizeLarge, model.ColorClear, 0, "paypal", "addr")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.ScaleAdjustment != 1.0 {
		t.Fatalf("expected default scale 1.0, got %v", order.ScaleAdjustment)
	}
	if order.Price != 50.00 {
		t.Fatalf("expected price 50.00, got %v", order.Price)
	}
	if order.Status != model.OrderStatusPending {
		t.Fatalf("expected pending, got %s", order.Status)
	}
	if order.QueuePosition == nil || *order.QueuePosition != 1 {
		t.Fatalf("expected queue position 1, got %v", order.QueuePosition)
	}
}

func TestAdmissionEndToEnd(t *testing.T) {
	repo := testhelpers.NewOrderRepositoryStub()
	uc := NewOrderUseCase(repo)
	ctx := context.Background()

	var orders []*model.Order
	for i := 0; i < 5; i++ {
		orders = append(orders, placeOrder(t, uc, int64(i+1)))
	}

	// Sixth submission hits the capacity gate.
	if _, err := uc.Place(ctx, 6, "model-1", model.SizeSmall, model.ColorRed, 1, "card", "addr"); !errors.Is(err, domainErrors.ErrQueueFull) {
		t.Fatalf("expected queue full, got %v", err)
	}

	// Shipping the first order frees a slot and collapses positions.
	first := orders[0]
	for _, next := range []model.OrderStatus{model.OrderStatusCrafting, model.OrderStatusProcessing, model.OrderStatusShipped} {
		if _, err := uc.Transition(ctx, first.ID, next, 99); err != nil {
			t.Fatalf("transition to %s failed: %v", next, err)
		}
	}

	shipped, err := uc.Track(ctx, first.ID, first.CustomerID)
	if err != nil {
		t.Fatalf("track failed: %v", err)
	}
	if shipped.QueuePosition != nil {
		t.Fatalf("shipped order kept queue position %d", *shipped.QueuePosition)
	}
	if shipped.TrackingNumber == nil || shipped.EstimatedDelivery == nil {
		t.Fatal("shipped order missing tracking number or delivery estimate")
	}

	for i, o := range orders[1:] {
		got, err := uc.Track(ctx, o.ID, o.CustomerID)
		if err != nil {
			t.Fatalf("track failed: %v", err)
		}
		if got.QueuePosition == nil || *got.QueuePosition != i+1 {
			t.Fatalf("order %s: expected position %d, got %v", o.ID, i+1, got.QueuePosition)
		}
	}

	// Four in flight again: the gate admits exactly one more.
	if _, err := uc.Place(ctx, 7, "model-1", model.SizeSmall, model.ColorRed, 1, "card", "addr"); err != nil {
		t.Fatalf("expected admission after slot freed, got %v", err)
	}
	if _, err := uc.Place(ctx, 8, "model-1", model.SizeSmall, model.ColorRed, 1, "card", "addr"); !errors.Is(err, domainErrors.ErrQueueFull) {
		t.Fatalf("expected queue full at capacity, got %v", err)
	}
	verifyDensePositions(t, uc)
}

func TestQueuePositionsStayDense(t *testing.T) {
	repo := testhelpers.NewOrderRepositoryStub()
	uc := NewOrderUseCase(repo)
	ctx := context.Background()

	a := placeOrder(t, uc, 1)
	b := placeOrder(t, uc, 2)
	c := placeOrder(t, uc, 3)

	steps := []struct {
		id   string
		next model.OrderStatus
	}{
		{b.ID, model.OrderStatusCrafting},
		{a.ID, model.OrderStatusCancelled},
		{b.ID, model.OrderStatusProcessing},
		{c.ID, model.OrderStatusCrafting},
		{b.ID, model.OrderStatusShipped},
		{c.ID, model.OrderStatusRefunded},
	}
	for _, step := range steps {
		if _, err := uc.Transition(ctx, step.id, step.next, 99); err != nil {
			t.Fatalf("transition %s -> %s failed: %v", step.id, step.next, err)
		}
		verifyDensePositions(t, uc)
	}
}

func TestTransitionIdempotentNoOp(t *testing.T) {
	repo := testhelpers.NewOrderRepositoryStub()
	uc := NewOrderUseCase(repo)
	ctx := context.Background()

	order := placeOrder(t, uc, 1)
	again, err := uc.Transition(ctx, order.ID, model.OrderStatusPending, 99)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !again.UpdatedAt.Equal(order.UpdatedAt) {
		t.Fatal("no-op transition must not stamp updatedAt")
	}
	if len(repo.Audits) != 0 {
		t.Fatalf("no-op transition must not be audited, got %d entries", len(repo.Audits))
	}
}

func TestTransitionRejectsIllegalEdges(t *testing.T) {
	uc := NewOrderUseCase(testhelpers.NewOrderRepositoryStub())
	ctx := context.Background()

	order := placeOrder(t, uc, 1)
	if _, err := uc.Transition(ctx, order.ID, model.OrderStatusShipped, 99); !errors.Is(err, domainErrors.ErrInvalidTransition) {
		t.Fatalf("expected invalid transition for pending -> shipped, got %v", err)
	}
	if _, err := uc.Transition(ctx, order.ID, "misplaced", 99); !errors.Is(err, domainErrors.ErrInvalidStatus) {
		t.Fatalf("expected invalid status, got %v", err)
	}
}

func TestTransitionMissingOrderLeavesOthersUntouched(t *testing.T) {
	repo := testhelpers.NewOrderRepositoryStub()
	uc := NewOrderUseCase(repo)
	ctx := context.Background()

	order := placeOrder(t, uc, 1)
	if _, err := uc.Transition(ctx, "WD-9999", model.OrderStatusCrafting, 99); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	got, err := uc.Track(ctx, order.ID, 1)
	if err != nil {
		t.Fatalf("track failed: %v", err)
	}
	if got.Status != model.OrderStatusPending || !got.UpdatedAt.Equal(order.UpdatedAt) {
		t.Fatal("failed transition must not mutate other orders")
	}
}

func TestOverrideJumpsAndAudits(t *testing.T) {
	repo := testhelpers.NewOrderRepositoryStub()
	uc := NewOrderUseCase(repo)
	ctx := context.Background()

	order := placeOrder(t, uc, 1)
	updated, err := uc.Override(ctx, order.ID, model.OrderStatusShipped, 42)
	if err != nil {
		t.Fatalf("override failed: %v", err)
	}
	if updated.Status != model.OrderStatusShipped {
		t.Fatalf("expected shipped, got %s", updated.Status)
	}
	if updated.QueuePosition != nil {
		t.Fatal("override to shipped must null the queue position")
	}

	audits, err := uc.Audit(ctx, order.ID)
	if err != nil {
		t.Fatalf("audit failed: %v", err)
	}
	if len(audits) != 1 || !audits[0].Override || audits[0].ActorID != 42 {
		t.Fatalf("expected one override audit entry by actor 42, got %+v", audits)
	}
}

func TestTransitionRetriesLostRaces(t *testing.T) {
	repo := testhelpers.NewOrderRepositoryStub()
	uc := NewOrderUseCase(repo)
	ctx := context.Background()
	order := placeOrder(t, uc, 1)

	repo.FailNextApplies = 2
	if _, err := uc.Transition(ctx, order.ID, model.OrderStatusCrafting, 99); err != nil {
		t.Fatalf("expected retry to recover, got %v", err)
	}

	second := placeOrder(t, uc, 2)
	repo.FailNextApplies = transitionRetries
	if _, err := uc.Transition(ctx, second.ID, model.OrderStatusCrafting, 99); !errors.Is(err, domainErrors.ErrConcurrentModification) {
		t.Fatalf("expected concurrent modification after exhausted retries, got %v", err)
	}
}

func TestAdjustScale(t *testing.T) {
	repo := testhelpers.NewOrderRepositoryStub()
	uc := NewOrderUseCase(repo)
	ctx := context.Background()

	order := placeOrder(t, uc, 1)
	updated, err := uc.AdjustScale(ctx, order.ID, 1, 2.0)
	if err != nil {
		t.Fatalf("adjust failed: %v", err)
	}
	if updated.Price != 60.00 {
		t.Fatalf("expected repriced 60.00 for medium at 2.0, got %v", updated.Price)
	}

	if _, err := uc.AdjustScale(ctx, order.ID, 2, 1.5); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("foreign order must look absent, got %v", err)
	}

	if _, err := uc.Transition(ctx, order.ID, model.OrderStatusCrafting, 99); err != nil {
		t.Fatalf("transition failed: %v", err)
	}
	if _, err := uc.AdjustScale(ctx, order.ID, 1, 1.5); !errors.Is(err, domainErrors.ErrOrderNotEditable) {
		t.Fatalf("expected not editable after pending, got %v", err)
	}
}

func TestStats(t *testing.T) {
	repo := testhelpers.NewOrderRepositoryStub()
	uc := NewOrderUseCase(repo)

	placeOrder(t, uc, 1)
	placeOrder(t, uc, 2)

	stats, err := uc.Stats(context.Background())
	if err != nil {
		t.Fatalf("stats failed: %v", err)
	}
	if stats.InFlight != 2 || stats.Capacity != PrintQueueCapacity {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if stats.Utilization != 40 {
		t.Fatalf("expected utilization 40%%, got %v", stats.Utilization)
	}
}
