package port

import (
	"context"

	"github.com/galaxyshop/shop/internal/core/domain"
)

// ProductCache is a read cache in front of the catalog store. A cached
// product may lag a concurrent catalog update by one read; the price is
// captured into the cart line at mutation time, so that staleness is
// acceptable.
type ProductCache interface {
	// GetByID returns (nil, nil) on a cache miss.
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	GetBySlug(ctx context.Context, slug string) (*domain.Product, error)

	Set(ctx context.Context, p domain.Product) error
	Invalidate(ctx context.Context, id, slug string) error
}
