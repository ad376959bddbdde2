package usecase

import "github.com/dahorta/freshmarket/internal/domain/model"

// transitions enumerates the allowed next states for each order status.
// Terminal states map to an empty set, except delivered which still admits
// a refund.
var transitions = map[model.OrderStatus][]model.OrderStatus{
	model.OrderStatusPending:   {model.OrderStatusConfirmed, model.OrderStatusCancelled},
	model.OrderStatusConfirmed: {model.OrderStatusPreparing, model.OrderStatusCancelled},
	model.OrderStatusPreparing: {model.OrderStatusShipped, model.OrderStatusCancelled},
	model.OrderStatusShipped:   {model.OrderStatusDelivered, model.OrderStatusCancelled},
	model.OrderStatusDelivered: {model.OrderStatusRefunded},
	model.OrderStatusCancelled: {},
	model.OrderStatusRefunded:  {},
}

// CanTransition reports whether an order may move from one status to another.
func CanTransition(from, to model.OrderStatus) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// NextStatuses returns the statuses reachable from the given one.
func NextStatuses(from model.OrderStatus) []model.OrderStatus {
	next := transitions[from]
	out := make([]model.OrderStatus, len(next))
	copy(out, next)
	return out
}

// IsTerminal reports whether no further transitions leave the status.
func IsTerminal(status model.OrderStatus) bool {
	return len(transitions[status]) == 0
}
