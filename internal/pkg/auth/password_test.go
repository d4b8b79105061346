package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestNewBcryptHasherCost(t *testing.T) {
	if h := NewBcryptHasher(0); h.cost != bcrypt.DefaultCost {
		t.Fatalf("unexpected cost: %d", h.cost)
	}
	if h := NewBcryptHasher(-3); h.cost != bcrypt.DefaultCost {
		t.Fatalf("unexpected cost: %d", h.cost)
	}
	if h := NewBcryptHasher(bcrypt.MinCost); h.cost != bcrypt.MinCost {
		t.Fatalf("unexpected cost: %d", h.cost)
	}
}

func TestBcryptHasherRoundTrip(t *testing.T) {
	hasher := NewBcryptHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("correct horse")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "" || hash == "correct horse" {
		t.Fatalf("unexpected hash: %q", hash)
	}

	if err := hasher.Compare(hash, "correct horse"); err != nil {
		t.Fatalf("compare: %v", err)
	}
	if err := hasher.Compare(hash, "battery staple"); err == nil {
		t.Fatal("expected mismatch error")
	}
}

func TestBcryptHasherInvalidCost(t *testing.T) {
	hasher := &BcryptHasher{cost: bcrypt.MaxCost + 1}
	if _, err := hasher.Hash("password"); err == nil {
		t.Fatal("expected error for out-of-range cost")
	}
}
