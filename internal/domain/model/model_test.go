package model

import (
	"testing"
	"time"
)

func TestCanTransitionLinearEdges(t *testing.T) {
	cases := []struct {
		from, to OrderStatus
		want     bool
	}{
		{OrderStatusPending, OrderStatusCrafting, true},
		{OrderStatusCrafting, OrderStatusProcessing, true},
		{OrderStatusProcessing, OrderStatusShipped, true},
		{OrderStatusShipped, OrderStatusDelivered, true},
		{OrderStatusPending, OrderStatusShipped, false},
		{OrderStatusPending, OrderStatusProcessing, false},
		{OrderStatusCrafting, OrderStatusPending, false},
		{OrderStatusDelivered, OrderStatusShipped, false},
		{OrderStatusShipped, OrderStatusCrafting, false},
	}
	for _, c := range cases {
		if got := c.from.CanTransition(c.to); got != c.want {
			t.Errorf("%s -> %s: expected %v, got %v", c.from, c.to, c.want, got)
		}
	}
}

func TestCanTransitionCancellation(t *testing.T) {
	for _, from := range []OrderStatus{OrderStatusPending, OrderStatusCrafting, OrderStatusProcessing, OrderStatusShipped} {
		if !from.CanTransition(OrderStatusCancelled) {
			t.Errorf("%s should allow cancellation", from)
		}
		if !from.CanTransition(OrderStatusRefunded) {
			t.Errorf("%s should allow refund", from)
		}
	}
	for _, from := range []OrderStatus{OrderStatusDelivered, OrderStatusCancelled, OrderStatusRefunded} {
		if from.CanTransition(OrderStatusCancelled) {
			t.Errorf("terminal %s should not allow further transitions", from)
		}
	}
}

func TestInFlight(t *testing.T) {
	inFlight := []OrderStatus{OrderStatusPending, OrderStatusCrafting, OrderStatusProcessing}
	for _, s := range inFlight {
		if !s.InFlight() {
			t.Errorf("%s should be in flight", s)
		}
	}
	for _, s := range []OrderStatus{OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled, OrderStatusRefunded} {
		if s.InFlight() {
			t.Errorf("%s should not be in flight", s)
		}
	}
}

func TestValidOrderStatus(t *testing.T) {
	if ValidOrderStatus("teleported") {
		t.Fatal("unexpected status accepted")
	}
	if !ValidOrderStatus(OrderStatusCrafting) {
		t.Fatal("crafting should be valid")
	}
}

func TestValidSizeAndColor(t *testing.T) {
	if !ValidSize(SizeMedium) || ValidSize("huge") {
		t.Fatal("size validation broken")
	}
	if !ValidColor(ColorClear) || ValidColor("magenta") {
		t.Fatal("color validation broken")
	}
}

func TestCustomerDisabled(t *testing.T) {
	c := &Customer{}
	if c.Disabled() {
		t.Fatal("fresh customer should not be disabled")
	}
	now := time.Now()
	c.DisabledAt = &now
	if !c.Disabled() {
		t.Fatal("customer with DisabledAt should report disabled")
	}
}

func TestGenerationStatusResolved(t *testing.T) {
	if GenerationStatusPending.Resolved() || GenerationStatusProcessing.Resolved() {
		t.Fatal("unresolved statuses reported as resolved")
	}
	if !GenerationStatusCompleted.Resolved() || !GenerationStatusFailed.Resolved() {
		t.Fatal("final statuses should be resolved")
	}
}
