package model

import "fmt"

// OrderStatus describes the fulfillment lifecycle stage of an order.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
	OrderStatusRefunded  OrderStatus = "refunded"
)

// statusSynonyms maps legacy status names still emitted by older clients and
// rows written before the rename. Normalization happens once, at the
// storage/DTO boundary.
var statusSynonyms = map[string]OrderStatus{
	"pending":       OrderStatusPending,
	"pendente":      OrderStatusPending,
	"processando":   OrderStatusPending,
	"confirmed":     OrderStatusConfirmed,
	"confirmado":    OrderStatusConfirmed,
	"preparing":     OrderStatusPreparing,
	"em_preparacao": OrderStatusPreparing,
	"shipped":       OrderStatusShipped,
	"em_transporte": OrderStatusShipped,
	"delivered":     OrderStatusDelivered,
	"concluido":     OrderStatusDelivered,
	"cancelled":     OrderStatusCancelled,
	"cancelado":     OrderStatusCancelled,
	"refunded":      OrderStatusRefunded,
	"reembolsado":   OrderStatusRefunded,
}

// ParseOrderStatus resolves a raw status string, accepting legacy synonyms.
func ParseOrderStatus(raw string) (OrderStatus, error) {
	if status, ok := statusSynonyms[raw]; ok {
		return status, nil
	}
	return "", fmt.Errorf("unknown order status %q", raw)
}

func (s OrderStatus) String() string {
	return string(s)
}
