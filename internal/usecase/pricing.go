package usecase

import (
	"math"

	"github.com/dahorta/freshmarket/internal/domain/model"
)

// EffectivePrice returns the unit price actually charged for a line: the
// promotional price while the promotion is active, the base price otherwise.
// Missing or NaN price inputs count as zero.
func EffectivePrice(line model.CartLine) float64 {
	if line.IsPromo && sanePrice(line.PromoPrice) > 0 {
		return sanePrice(line.PromoPrice)
	}
	return sanePrice(line.BasePrice)
}

// LineTotal is the effective price multiplied by the line quantity.
func LineTotal(line model.CartLine) float64 {
	return EffectivePrice(line) * line.Quantity
}

// CartSubtotal sums line totals across the cart.
func CartSubtotal(lines []model.CartLine) float64 {
	var subtotal float64
	for _, line := range lines {
		subtotal += LineTotal(line)
	}
	return subtotal
}

// CartSavings sums the promotional discount across the cart. Zero when no
// line is promotional.
func CartSavings(lines []model.CartLine) float64 {
	var savings float64
	for _, line := range lines {
		if discount := sanePrice(line.BasePrice) - EffectivePrice(line); discount > 0 {
			savings += discount * line.Quantity
		}
	}
	return savings
}

func sanePrice(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	return v
}
