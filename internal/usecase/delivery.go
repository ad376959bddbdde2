package usecase

import (
	"fmt"
	"strconv"
	"strings"

	domainErrors "github.com/dahorta/freshmarket/internal/domain/errors"
	"github.com/dahorta/freshmarket/internal/domain/model"
)

// EstimateDelivery derives a delivery quote from an 8-digit postal code and
// the cart subtotal. Distance is simulated from the last three digits of the
// code, mapped onto 5 to 55 km. Returns ErrBelowMinimumOrder when the
// subtotal does not meet the regional minimum.
func EstimateDelivery(zipcode string, subtotal float64) (model.DeliveryEstimate, error) {
	digits := digitsOnly(zipcode)
	if len(digits) != 8 {
		return model.DeliveryEstimate{}, domainErrors.ErrInvalidZipcode
	}

	last, err := strconv.Atoi(digits[len(digits)-3:])
	if err != nil {
		return model.DeliveryEstimate{}, domainErrors.ErrInvalidZipcode
	}
	distance := last*50/1000 + 5

	var fee, minOrderValue float64
	switch {
	case distance <= 10:
		fee, minOrderValue = 0, 100
	case distance <= 20:
		fee, minOrderValue = 15, 150
	case distance <= 30:
		fee, minOrderValue = 25, 200
	default:
		fee, minOrderValue = 35, 250
	}

	estimate := model.DeliveryEstimate{
		DistanceKM:    distance,
		EstimatedTime: travelTime(distance),
		Fee:           fee,
		MinOrderValue: minOrderValue,
	}
	if subtotal < minOrderValue {
		return estimate, fmt.Errorf("%w: minimum for this region is %.2f", domainErrors.ErrBelowMinimumOrder, minOrderValue)
	}
	return estimate, nil
}

// travelTime formats the travel duration at 20 km/h.
func travelTime(distanceKM int) string {
	hours := distanceKM / 20
	minutes := distanceKM % 20 * 60 / 20
	if hours > 0 {
		return fmt.Sprintf("%dh %dmin", hours, minutes)
	}
	return fmt.Sprintf("%d minutos", minutes)
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
