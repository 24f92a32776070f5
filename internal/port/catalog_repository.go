package port

import (
	"context"

	"github.com/galaxyshop/shop/internal/core/domain"
)

// CatalogRepository is the persistence boundary for catalog records.
// Lookups return (nil, nil) when the record does not exist.
type CatalogRepository interface {
	CreateBrand(ctx context.Context, b domain.Brand) error
	CreateSubCategory(ctx context.Context, sc domain.SubCategory) error
	CreateCategory(ctx context.Context, c domain.Category) error
	CreateProduct(ctx context.Context, p domain.Product) error

	// UpdateProduct writes the mutable product fields (price, availability).
	UpdateProduct(ctx context.Context, p domain.Product) error

	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error)

	// ListAvailableProducts returns only products with the availability
	// flag set, newest first.
	ListAvailableProducts(ctx context.Context) ([]domain.Product, error)
	ListProductsByCategory(ctx context.Context, categorySlug string) ([]domain.Product, error)

	ListBrands(ctx context.Context) ([]domain.Brand, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
}
