package dto

// CartItemResponse is one cart line with derived pricing.
type CartItemResponse struct {
	ProductID      string  `json:"product_id"`
	Name           string  `json:"name"`
	Unit           string  `json:"unit"`
	Category       string  `json:"category,omitempty"`
	Image          string  `json:"image,omitempty"`
	Quantity       float64 `json:"quantity"`
	UnitPrice      float64 `json:"price"`
	PromoPrice     float64 `json:"promo_price,omitempty"`
	IsPromo        bool    `json:"is_promo,omitempty"`
	EffectivePrice float64 `json:"effective_price"`
	LineTotal      float64 `json:"line_total"`
	MinOrder       float64 `json:"min_order"`
	Stock          float64 `json:"stock"`
	PendingRemoval bool    `json:"pending_removal,omitempty"`
}

// CartResponse is the full cart view returned to the client.
type CartResponse struct {
	Items      []CartItemResponse `json:"items"`
	TotalItems float64            `json:"total_items"`
	Subtotal   float64            `json:"subtotal"`
	Savings    float64            `json:"savings"`
}

// AddItemRequest adds one minimum-order step of a product.
type AddItemRequest struct {
	ProductID string `json:"product_id"`
}

// AdjustItemRequest changes a line quantity by a signed delta.
type AdjustItemRequest struct {
	ProductID string  `json:"product_id"`
	Delta     float64 `json:"delta"`
}

// SetItemRequest replaces a line quantity with a typed-in value.
type SetItemRequest struct {
	ProductID string  `json:"product_id"`
	Quantity  float64 `json:"quantity"`
}

// MutationResponse reports the outcome of a cart quantity operation.
type MutationResponse struct {
	Result  string            `json:"result"`
	Warning string            `json:"warning,omitempty"`
	Clamped string            `json:"clamped,omitempty"`
	Item    *CartItemResponse `json:"item,omitempty"`
}

// EstimateRequest asks for a regional delivery quote.
type EstimateRequest struct {
	Zipcode string `json:"zipcode"`
}

// EstimateResponse is the regional delivery quote.
type EstimateResponse struct {
	DistanceKM    int     `json:"distance_km"`
	EstimatedTime string  `json:"estimated_time"`
	DeliveryFee   float64 `json:"delivery_fee"`
	MinOrderValue float64 `json:"min_order_value"`
}
