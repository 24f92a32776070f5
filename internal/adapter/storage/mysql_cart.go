package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/galaxyshop/shop/internal/core/domain"
)

type MySQLCartStore struct {
	db *sql.DB
}

func NewMySQLCartStore(db *sql.DB) *MySQLCartStore {
	return &MySQLCartStore{db: db}
}

func (s *MySQLCartStore) CreateCart(ctx context.Context, cart *domain.Cart) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO carts (id, cart_total, created_at, updated_at)
		VALUES (?, ?, ?, ?)`,
		cart.ID, cart.CartTotal, cart.CreatedAt, cart.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert cart: %w", err)
	}
	return nil
}

func (s *MySQLCartStore) GetCart(ctx context.Context, cartID string) (*domain.Cart, error) {
	var cart domain.Cart
	err := s.db.QueryRowContext(ctx, `
		SELECT id, cart_total, created_at, updated_at
		FROM carts WHERE id = ?`, cartID,
	).Scan(&cart.ID, &cart.CartTotal, &cart.CreatedAt, &cart.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query cart: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, cart_id, product_id, qty, item_total
		FROM cart_items WHERE cart_id = ?`, cartID)
	if err != nil {
		return nil, fmt.Errorf("query cart items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item domain.CartItem
		if err := rows.Scan(&item.ID, &item.CartID, &item.ProductID, &item.Qty, &item.ItemTotal); err != nil {
			return nil, fmt.Errorf("scan cart item: %w", err)
		}
		cart.Items = append(cart.Items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cart items: %w", err)
	}

	return &cart, nil
}

// SaveCart writes the whole aggregate in one transaction: the cart row,
// upserts for every current line, and deletion of lines no longer in the
// aggregate. Concurrent writers to the same cart serialize on the cart row.
func (s *MySQLCartStore) SaveCart(ctx context.Context, cart *domain.Cart) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		UPDATE carts SET cart_total = ?, updated_at = ? WHERE id = ?`,
		cart.CartTotal, time.Now(), cart.ID,
	)
	if err != nil {
		return fmt.Errorf("update cart: %w", err)
	}

	if len(cart.Items) == 0 {
		if _, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE cart_id = ?`, cart.ID); err != nil {
			return fmt.Errorf("clear cart items: %w", err)
		}
		return tx.Commit()
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(cart.Items)), ",")
	args := make([]interface{}, 0, len(cart.Items)+1)
	args = append(args, cart.ID)
	for _, item := range cart.Items {
		args = append(args, item.ID)
	}
	_, err = tx.ExecContext(ctx,
		`DELETE FROM cart_items WHERE cart_id = ? AND id NOT IN (`+placeholders+`)`, args...)
	if err != nil {
		return fmt.Errorf("prune cart items: %w", err)
	}

	for _, item := range cart.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO cart_items (id, cart_id, product_id, qty, item_total)
			VALUES (?, ?, ?, ?, ?)
			ON DUPLICATE KEY UPDATE qty = VALUES(qty), item_total = VALUES(item_total)`,
			item.ID, item.CartID, item.ProductID, item.Qty, item.ItemTotal,
		)
		if err != nil {
			return fmt.Errorf("upsert cart item: %w", err)
		}
	}

	return tx.Commit()
}
