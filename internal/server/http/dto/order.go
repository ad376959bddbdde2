package dto

import "time"

// AddressPayload is the delivery destination collected at checkout.
type AddressPayload struct {
	Street       string `json:"street"`
	Number       string `json:"number"`
	Complement   string `json:"complement,omitempty"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
	Zipcode      string `json:"zipcode"`
}

// ContactPayload identifies who receives the order.
type ContactPayload struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// CheckoutRequest submits the current cart as an order.
type CheckoutRequest struct {
	Address AddressPayload `json:"address"`
	Contact ContactPayload `json:"contact"`
	Notes   string         `json:"notes,omitempty"`
}

// OrderLineResponse is one priced line frozen at submission time.
type OrderLineResponse struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Unit      string  `json:"unit"`
	Image     string  `json:"image,omitempty"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"price"`
}

// OrderResponse is the full order representation.
type OrderResponse struct {
	ID           string              `json:"id"`
	Number       string              `json:"number"`
	Status       string              `json:"status"`
	Items        []OrderLineResponse `json:"items"`
	Address      AddressPayload      `json:"address"`
	Contact      ContactPayload      `json:"contact"`
	Subtotal     float64             `json:"subtotal"`
	DeliveryFee  float64             `json:"delivery_fee"`
	Total        float64             `json:"total"`
	Notes        string              `json:"notes,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
	DeliveryDate *time.Time          `json:"delivery_date,omitempty"`
}

// TransitionRequest moves an order to a new fulfillment status.
type TransitionRequest struct {
	Status string `json:"status"`
}

// PickingToggleRequest flips the picked mark of one order line.
type PickingToggleRequest struct {
	Line int `json:"line"`
}

// PickingProgressResponse reports which lines have been gathered.
type PickingProgressResponse struct {
	OrderID  string `json:"order_id"`
	Picked   []int  `json:"picked"`
	Total    int    `json:"total"`
	Complete bool   `json:"complete"`
}

// DeliverBatchRequest closes a set of shipped orders in one call.
type DeliverBatchRequest struct {
	OrderIDs []string `json:"order_ids"`
}

// DeliverFailurePayload names one order a batch could not deliver.
type DeliverFailurePayload struct {
	OrderID string `json:"order_id"`
	Reason  string `json:"reason"`
}

// DeliverBatchResponse summarizes a bulk delivery outcome.
type DeliverBatchResponse struct {
	Delivered []string                `json:"delivered"`
	Failed    []DeliverFailurePayload `json:"failed"`
}
