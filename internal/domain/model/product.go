package model

// Product is the catalog view of an item: current price, promotion and stock
// level. Product data is owned by the catalog service; this is a read model.
type Product struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Unit       string  `json:"unit"`
	Category   string  `json:"category,omitempty"`
	ImageURL   string  `json:"image,omitempty"`
	Price      float64 `json:"price"`
	PromoPrice float64 `json:"promo_price,omitempty"`
	IsPromo    bool    `json:"is_promo,omitempty"`
	MinOrder   float64 `json:"min_order"`
	Stock      float64 `json:"stock"`
}

// CartLine builds a new cart line from the catalog snapshot with the given
// starting quantity.
func (p Product) CartLine(quantity float64) CartLine {
	return CartLine{
		ProductID:  p.ID,
		Name:       p.Name,
		Unit:       p.Unit,
		Category:   p.Category,
		ImageURL:   p.ImageURL,
		BasePrice:  p.Price,
		PromoPrice: p.PromoPrice,
		IsPromo:    p.IsPromo,
		MinOrder:   p.MinOrder,
		Stock:      p.Stock,
		Quantity:   quantity,
	}
}
