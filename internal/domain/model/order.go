package model

import "time"

// OrderLine is a price-and-quantity snapshot taken from the cart at
// submission time. It does not track live product price or stock.
type OrderLine struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Unit      string  `json:"unit"`
	ImageURL  string  `json:"image,omitempty"`
	Quantity  float64 `json:"quantity"`
	UnitPrice float64 `json:"price"`
}

// Address is the delivery destination collected at checkout.
type Address struct {
	Street       string `json:"street"`
	Number       string `json:"number"`
	Complement   string `json:"complement,omitempty"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
	Zipcode      string `json:"zipcode"`
}

// ContactInfo identifies who receives the order.
type ContactInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Order is created once with immutable line contents; afterwards only the
// status and timestamps change.
type Order struct {
	ID              string
	UserID          int64
	Number          string
	Lines           []OrderLine
	ShippingAddress Address
	Contact         ContactInfo
	Subtotal        float64
	DeliveryFee     float64
	Total           float64
	Notes           string
	Status          OrderStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
	DeliveryDate    *time.Time
}

// PickingProgress reports which order lines have been physically gathered
// while the order is being prepared. Scratch state: it tolerates loss.
type PickingProgress struct {
	OrderID string `json:"order_id"`
	Picked  []int  `json:"picked"`
	Total   int    `json:"total"`
}

// DeliveryEstimate is the regional shipping quote computed from a postal
// code before checkout.
type DeliveryEstimate struct {
	DistanceKM    int     `json:"distance_km"`
	EstimatedTime string  `json:"estimated_time"`
	Fee           float64 `json:"delivery_fee"`
	MinOrderValue float64 `json:"min_order_value"`
}
