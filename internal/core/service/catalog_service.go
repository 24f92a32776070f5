package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/galaxyshop/shop/internal/core/domain"
	"github.com/galaxyshop/shop/internal/port"
)

var ErrProductNotFound = errors.New("product not found")

// CatalogService serves catalog reads through a cache-aside Redis layer
// and routes writes straight to the store, invalidating the cached entry.
type CatalogService struct {
	repo  port.CatalogRepository
	cache port.ProductCache
}

func NewCatalogService(repo port.CatalogRepository, cache port.ProductCache) *CatalogService {
	return &CatalogService{repo: repo, cache: cache}
}

func (s *CatalogService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	if s.cache != nil {
		if p, err := s.cache.GetByID(ctx, id); err == nil && p != nil {
			return p, nil
		}
	}

	p, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	if p == nil {
		return nil, ErrProductNotFound
	}

	if s.cache != nil {
		// best effort: a failed cache fill only costs the next read
		_ = s.cache.Set(ctx, *p)
	}
	return p, nil
}

func (s *CatalogService) GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	if s.cache != nil {
		if p, err := s.cache.GetBySlug(ctx, slug); err == nil && p != nil {
			return p, nil
		}
	}

	p, err := s.repo.GetProductBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("get product by slug: %w", err)
	}
	if p == nil {
		return nil, ErrProductNotFound
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, *p)
	}
	return p, nil
}

func (s *CatalogService) AddProduct(ctx context.Context, p domain.Product) error {
	if err := s.repo.CreateProduct(ctx, p); err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

// UpdateProduct writes the mutable fields (price, availability) and drops
// the cached copy so the next read sees the new values.
func (s *CatalogService) UpdateProduct(ctx context.Context, p domain.Product) error {
	if err := s.repo.UpdateProduct(ctx, p); err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, p.ID, p.Slug)
	}
	return nil
}

func (s *CatalogService) ListAvailableProducts(ctx context.Context) ([]domain.Product, error) {
	return s.repo.ListAvailableProducts(ctx)
}

func (s *CatalogService) ListProductsByCategory(ctx context.Context, categorySlug string) ([]domain.Product, error) {
	return s.repo.ListProductsByCategory(ctx, categorySlug)
}

func (s *CatalogService) ListBrands(ctx context.Context) ([]domain.Brand, error) {
	return s.repo.ListBrands(ctx)
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.repo.ListCategories(ctx)
}
