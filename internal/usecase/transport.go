package usecase

import (
	"context"

	"github.com/dahorta/freshmarket/internal/domain/model"
)

// BatchFailure records one order that could not be delivered in a batch.
type BatchFailure struct {
	OrderID string
	Reason  string
}

// BatchResult summarizes a bulk delivery confirmation.
type BatchResult struct {
	Succeeded []string
	Failed    []BatchFailure
}

// DeliverMany confirms delivery for a set of shipped orders. Each order is
// transitioned independently; one failure does not abort the rest.
// Duplicate ids are processed once.
func (u *OrderUseCase) DeliverMany(ctx context.Context, orderIDs []string) BatchResult {
	var result BatchResult
	seen := make(map[string]struct{}, len(orderIDs))
	for _, id := range orderIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		if _, err := u.Transition(ctx, id, model.OrderStatusDelivered); err != nil {
			result.Failed = append(result.Failed, BatchFailure{OrderID: id, Reason: err.Error()})
			continue
		}
		result.Succeeded = append(result.Succeeded, id)
	}
	return result
}
