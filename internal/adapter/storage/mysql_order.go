package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/galaxyshop/shop/internal/core/domain"
)

type MySQLOrderStore struct {
	db *sql.DB
}

func NewMySQLOrderStore(db *sql.DB) *MySQLOrderStore {
	return &MySQLOrderStore{db: db}
}

func (s *MySQLOrderStore) CreateOrder(ctx context.Context, order domain.Order) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders
			(id, user_id, total, first_name, last_name, phone, address,
			 comments, buying_type, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		order.ID, order.UserID, order.Total,
		order.Contact.FirstName, order.Contact.LastName, order.Contact.Phone,
		order.Contact.Address, order.Contact.Comments,
		order.BuyingType, order.Status, order.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for _, cartID := range order.CartIDs {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO order_carts (order_id, cart_id) VALUES (?, ?)`,
			order.ID, cartID)
		if err != nil {
			return fmt.Errorf("link cart: %w", err)
		}
	}

	return tx.Commit()
}

func (s *MySQLOrderStore) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	var order domain.Order
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, total, first_name, last_name, phone, address,
			comments, buying_type, status, created_at
		FROM orders WHERE id = ?`, orderID,
	).Scan(&order.ID, &order.UserID, &order.Total,
		&order.Contact.FirstName, &order.Contact.LastName, &order.Contact.Phone,
		&order.Contact.Address, &order.Contact.Comments,
		&order.BuyingType, &order.Status, &order.CreatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query order: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT cart_id FROM order_carts WHERE order_id = ?`, orderID)
	if err != nil {
		return nil, fmt.Errorf("query order carts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var cartID string
		if err := rows.Scan(&cartID); err != nil {
			return nil, fmt.Errorf("scan order cart: %w", err)
		}
		order.CartIDs = append(order.CartIDs, cartID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order carts: %w", err)
	}

	return &order, nil
}

func (s *MySQLOrderStore) UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus) error {
	result, err := s.db.ExecContext(ctx,
		`UPDATE orders SET status = ? WHERE id = ?`, status, orderID)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("update order status: no row for id %s", orderID)
	}
	return nil
}
