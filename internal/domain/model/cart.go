package model

// CartLine is one product entry in a cart with its own quantity and pricing.
// Prices are unit prices; the promotional price applies only while IsPromo is
// set. Quantities are fractional because produce is sold by weight.
type CartLine struct {
	ProductID  string  `json:"product_id"`
	Name       string  `json:"name"`
	Unit       string  `json:"unit"`
	Category   string  `json:"category,omitempty"`
	ImageURL   string  `json:"image,omitempty"`
	BasePrice  float64 `json:"price"`
	PromoPrice float64 `json:"promo_price,omitempty"`
	IsPromo    bool    `json:"is_promo,omitempty"`
	MinOrder   float64 `json:"min_order"`
	Stock      float64 `json:"stock"`
	Quantity   float64 `json:"quantity"`
}

// MinimumOrder returns the smallest allowed quantity for the line, treating
// unset values as one unit.
func (l CartLine) MinimumOrder() float64 {
	if l.MinOrder < 1 {
		return 1
	}
	return l.MinOrder
}

// Cart is an ordered collection of lines keyed by product id, unique per
// product. Mutated only through the cart use case.
type Cart struct {
	UserID int64
	Lines  []CartLine
}

// Find returns a pointer to the line for productID, or nil.
func (c *Cart) Find(productID string) *CartLine {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			return &c.Lines[i]
		}
	}
	return nil
}

// Remove deletes the line for productID preserving order of the rest.
// Reports whether a line was removed.
func (c *Cart) Remove(productID string) bool {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return true
		}
	}
	return false
}

// Snapshot returns a defensive copy of the lines.
func (c *Cart) Snapshot() []CartLine {
	if len(c.Lines) == 0 {
		return nil
	}
	lines := make([]CartLine, len(c.Lines))
	copy(lines, c.Lines)
	return lines
}

// TotalItems sums quantities across all lines.
func (c *Cart) TotalItems() float64 {
	var total float64
	for _, l := range c.Lines {
		total += l.Quantity
	}
	return total
}
