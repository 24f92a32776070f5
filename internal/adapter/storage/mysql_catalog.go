package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/galaxyshop/shop/internal/core/domain"
)

type MySQLCatalogStore struct {
	db *sql.DB
}

func NewMySQLCatalogStore(db *sql.DB) *MySQLCatalogStore {
	return &MySQLCatalogStore{db: db}
}

func (s *MySQLCatalogStore) CreateBrand(ctx context.Context, b domain.Brand) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO brands (id, name) VALUES (?, ?)`, b.ID, b.Name)
	if err != nil {
		return fmt.Errorf("insert brand: %w", err)
	}
	return nil
}

func (s *MySQLCatalogStore) CreateSubCategory(ctx context.Context, sc domain.SubCategory) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO subcategories (id, name, slug) VALUES (?, ?, ?)`,
		sc.ID, sc.Name, sc.Slug)
	if err != nil {
		return fmt.Errorf("insert subcategory: %w", err)
	}
	return nil
}

func (s *MySQLCatalogStore) CreateCategory(ctx context.Context, c domain.Category) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO categories (id, name, slug) VALUES (?, ?, ?)`,
		c.ID, c.Name, c.Slug)
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}

	for _, subID := range c.SubCategoryIDs {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO category_subcategories (category_id, subcategory_id) VALUES (?, ?)`,
			c.ID, subID)
		if err != nil {
			return fmt.Errorf("link subcategory: %w", err)
		}
	}

	return tx.Commit()
}

func (s *MySQLCatalogStore) CreateProduct(ctx context.Context, p domain.Product) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO products
			(id, category_id, subcategory_id, brand_id, title, slug,
			 description, video_url, price, available, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.CategoryID, p.SubCategoryID, p.BrandID, p.Title, p.Slug,
		p.Description, p.VideoURL, p.Price, p.Available, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (s *MySQLCatalogStore) UpdateProduct(ctx context.Context, p domain.Product) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE products SET price = ?, available = ?, updated_at = NOW()
		WHERE id = ?`,
		p.Price, p.Available, p.ID,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("update product: no row for id %s", p.ID)
	}
	return nil
}

const productColumns = `id, category_id, subcategory_id, brand_id, title, slug,
	description, video_url, price, available, created_at, updated_at`

func scanProduct(row interface{ Scan(...interface{}) error }) (domain.Product, error) {
	var p domain.Product
	err := row.Scan(&p.ID, &p.CategoryID, &p.SubCategoryID, &p.BrandID,
		&p.Title, &p.Slug, &p.Description, &p.VideoURL,
		&p.Price, &p.Available, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

func (s *MySQLCatalogStore) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE id = ?`, id)

	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query product: %w", err)
	}
	return &p, nil
}

func (s *MySQLCatalogStore) GetProductBySlug(ctx context.Context, slug string) (*domain.Product, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE slug = ?`, slug)

	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query product by slug: %w", err)
	}
	return &p, nil
}

func (s *MySQLCatalogStore) ListAvailableProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+productColumns+` FROM products WHERE available = 1 ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

func (s *MySQLCatalogStore) ListProductsByCategory(ctx context.Context, categorySlug string) ([]domain.Product, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT p.id, p.category_id, p.subcategory_id, p.brand_id, p.title, p.slug,
			p.description, p.video_url, p.price, p.available, p.created_at, p.updated_at
		FROM products p
		JOIN categories c ON c.id = p.category_id
		WHERE c.slug = ? AND p.available = 1
		ORDER BY p.created_at DESC`, categorySlug)
	if err != nil {
		return nil, fmt.Errorf("query products by category: %w", err)
	}
	defer rows.Close()

	return collectProducts(rows)
}

func collectProducts(rows *sql.Rows) ([]domain.Product, error) {
	var products []domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}
	return products, nil
}

func (s *MySQLCatalogStore) ListBrands(ctx context.Context) ([]domain.Brand, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name FROM brands ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query brands: %w", err)
	}
	defer rows.Close()

	var brands []domain.Brand
	for rows.Next() {
		var b domain.Brand
		if err := rows.Scan(&b.ID, &b.Name); err != nil {
			return nil, fmt.Errorf("scan brand: %w", err)
		}
		brands = append(brands, b)
	}
	return brands, rows.Err()
}

func (s *MySQLCatalogStore) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, slug FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var categories []domain.Category
	index := make(map[string]int)
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name, &c.Slug); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		index[c.ID] = len(categories)
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}

	linkRows, err := s.db.QueryContext(ctx,
		`SELECT category_id, subcategory_id FROM category_subcategories`)
	if err != nil {
		return nil, fmt.Errorf("query category links: %w", err)
	}
	defer linkRows.Close()

	for linkRows.Next() {
		var categoryID, subID string
		if err := linkRows.Scan(&categoryID, &subID); err != nil {
			return nil, fmt.Errorf("scan category link: %w", err)
		}
		if i, ok := index[categoryID]; ok {
			categories[i].SubCategoryIDs = append(categories[i].SubCategoryIDs, subID)
		}
	}
	return categories, linkRows.Err()
}
