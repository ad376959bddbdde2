package test

import (
	"context"

	"github.com/dahorta/freshmarket/internal/adapter/catalog"
	domainErrors "github.com/dahorta/freshmarket/internal/domain/errors"
	"github.com/dahorta/freshmarket/internal/domain/model"
)

// CatalogClientStub serves catalog reads and stock writes from memory.
type CatalogClientStub struct {
	ProductsByID map[string]*model.Product
	StockDeltas  map[string]float64
	Err          error
}

// Product returns the configured product or not found.
func (s *CatalogClientStub) Product(ctx context.Context, id string) (*model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if p, ok := s.ProductsByID[id]; ok {
		return p, nil
	}
	return nil, domainErrors.ErrNotFound
}

// Products lists every configured product.
func (s *CatalogClientStub) Products(ctx context.Context, filter catalog.Filter) ([]model.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]model.Product, 0, len(s.ProductsByID))
	for _, p := range s.ProductsByID {
		out = append(out, *p)
	}
	return out, nil
}

// AdjustStock records the applied delta.
func (s *CatalogClientStub) AdjustStock(ctx context.Context, productID string, delta float64) error {
	if s.Err != nil {
		return s.Err
	}
	if s.StockDeltas == nil {
		s.StockDeltas = make(map[string]float64)
	}
	s.StockDeltas[productID] += delta
	return nil
}

var _ catalog.Client = (*CatalogClientStub)(nil)
