package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
)

var ErrNegativePrice = errors.New("price must not be negative")

type Brand struct {
	ID   string
	Name string
}

func NewBrand(name string) Brand {
	return Brand{
		ID:   uuid.NewString(),
		Name: name,
	}
}

type SubCategory struct {
	ID   string
	Name string
	Slug string
}

func NewSubCategory(name string) SubCategory {
	return SubCategory{
		ID:   uuid.NewString(),
		Name: name,
		Slug: MakeSlug(name),
	}
}

type Category struct {
	ID             string
	Name           string
	Slug           string
	SubCategoryIDs []string
}

func NewCategory(name string, subCategoryIDs ...string) Category {
	return Category{
		ID:             uuid.NewString(),
		Name:           name,
		Slug:           MakeSlug(name),
		SubCategoryIDs: subCategoryIDs,
	}
}

type Product struct {
	ID            string
	CategoryID    string
	SubCategoryID string
	BrandID       string
	Title         string
	Slug          string
	Description   string
	VideoURL      string
	Price         decimal.Decimal
	Available     bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func NewProduct(categoryID, subCategoryID, brandID, title string, price decimal.Decimal) (Product, error) {
	if price.IsNegative() {
		return Product{}, ErrNegativePrice
	}

	now := time.Now()
	return Product{
		ID:            uuid.NewString(),
		CategoryID:    categoryID,
		SubCategoryID: subCategoryID,
		BrandID:       brandID,
		Title:         title,
		Slug:          MakeSlug(title),
		Price:         price,
		Available:     true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// MakeSlug derives a URL-safe slug from a name. Deterministic: the same
// name always yields the same slug, so it is computed at construction
// instead of in a persistence hook.
func MakeSlug(name string) string {
	return slug.Make(name)
}
