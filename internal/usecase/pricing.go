package usecase

import (
	"math"

	domainErrors "github.com/ward3d/wardprints/internal/domain/errors"
	"github.com/ward3d/wardprints/internal/domain/model"
)

// basePrices is the fixed price table per size tier. Adding a tier means
// extending this table.
var basePrices = map[model.Size]float64{
	model.SizeSmall:  15.00,
	model.SizeMedium: 30.00,
	model.SizeLarge:  50.00,
}

// ComputePrice returns the order price for a size tier and scale adjustment:
// base price multiplied by scale, rounded half-up to cents. Pure and
// deterministic so historical order prices stay reproducible.
func ComputePrice(size model.Size, scale float64) (float64, error) {
	base, ok := basePrices[size]
	if !ok {
		return 0, domainErrors.ErrInvalidSize
	}
	if scale <= 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		return 0, domainErrors.ErrInvalidScale
	}
	return math.Floor(base*scale*100+0.5) / 100, nil
}
