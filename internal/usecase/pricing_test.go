package usecase

import (
	"errors"
	"testing"

	domainErrors "github.com/ward3d/wardprints/internal/domain/errors"
	"github.com/ward3d/wardprints/internal/domain/model"
)

func TestComputePriceBaseTable(t *testing.T) {
	cases := []struct {
		size model.Size
		want float64
	}{
		{model.SizeSmall, 15.00},
		{model.SizeMedium, 30.00},
		{model.SizeLarge, 50.00},
	}
	for _, c := range cases {
		got, err := ComputePrice(c.size, 1.0)
		if err != nil {
			t.Fatalf("unexpected error for %s: %v", c.size, err)
		}
		if got != c.want {
			t.Errorf("%s at scale 1.0: expected %.2f, got %.2f", c.size, c.want, got)
		}
	}
}

func TestComputePriceScaling(t *testing.T) {
	if got, _ := ComputePrice(model.SizeSmall, 2.0); got != 30.00 {
		t.Errorf("small at 2.0: expected 30.00, got %.2f", got)
	}
	if got, _ := ComputePrice(model.SizeLarge, 0.5); got != 25.00 {
		t.Errorf("large at 0.5: expected 25.00, got %.2f", got)
	}
}

func TestComputePriceRoundsHalfUp(t *testing.T) {
	// 15 * 1.2345 = 18.5175 -> 18.52
	got, err := ComputePrice(model.SizeSmall, 1.2345)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 18.52 {
		t.Errorf("expected 18.52, got %v", got)
	}
}

func TestComputePriceMonotonicInScale(t *testing.T) {
	for _, size := range []model.Size{model.SizeSmall, model.SizeMedium, model.SizeLarge} {
		prev := 0.0
		for scale := 0.1; scale <= 3.0; scale += 0.1 {
			price, err := ComputePrice(size, scale)
			if err != nil {
				t.Fatalf("unexpected error at %s scale %v: %v", size, scale, err)
			}
			if price < prev {
				t.Fatalf("price decreased for %s: %.2f at scale %v after %.2f", size, price, scale, prev)
			}
			prev = price
		}
	}
}

func TestComputePriceDeterministic(t *testing.T) {
	a, _ := ComputePrice(model.SizeMedium, 1.7)
	b, _ := ComputePrice(model.SizeMedium, 1.7)
	if a != b {
		t.Fatalf("same inputs produced different prices: %v vs %v", a, b)
	}
}

func TestComputePriceRejectsInvalidInput(t *testing.T) {
	if _, err := ComputePrice("gigantic", 1.0); !errors.Is(err, domainErrors.ErrInvalidSize) {
		t.Fatalf("expected invalid size error, got %v", err)
	}
	for _, scale := range []float64{0, -1} {
		if _, err := ComputePrice(model.SizeSmall, scale); !errors.Is(err, domainErrors.ErrInvalidScale) {
			t.Fatalf("expected invalid scale error for %v, got %v", scale, err)
		}
	}
}
