package storage

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"

	"github.com/galaxyshop/shop/internal/core/domain"
)

func newMockDB(t *testing.T) (*MySQLCartStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewMySQLCartStore(db), mock
}

func TestGetCart_WithItems(t *testing.T) {
	store, mock := newMockDB(t)
	now := time.Now()

	mock.ExpectQuery(`SELECT id, cart_total, created_at, updated_at\s+FROM carts`).
		WithArgs("cart-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "cart_total", "created_at", "updated_at"}).
			AddRow("cart-1", "22.50", now, now))

	mock.ExpectQuery(`SELECT id, cart_id, product_id, qty, item_total\s+FROM cart_items`).
		WithArgs("cart-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "cart_id", "product_id", "qty", "item_total"}).
			AddRow("item-1", "cart-1", "p-1", 4, "20.00").
			AddRow("item-2", "cart-1", "p-2", 1, "2.50"))

	cart, err := store.GetCart(context.Background(), "cart-1")
	if err != nil {
		t.Fatalf("GetCart failed: %v", err)
	}
	if cart == nil {
		t.Fatal("expected cart, got nil")
	}

	if !cart.CartTotal.Equal(decimal.RequireFromString("22.50")) {
		t.Errorf("expected cart_total 22.50, got %s", cart.CartTotal)
	}
	if len(cart.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(cart.Items))
	}
	if cart.Items[0].Qty != 4 || !cart.Items[0].ItemTotal.Equal(decimal.RequireFromString("20.00")) {
		t.Errorf("item 1 scanned wrong: qty=%d total=%s", cart.Items[0].Qty, cart.Items[0].ItemTotal)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestGetCart_NotFound(t *testing.T) {
	store, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT id, cart_total, created_at, updated_at\s+FROM carts`).
		WithArgs("nope").
		WillReturnRows(sqlmock.NewRows([]string{"id", "cart_total", "created_at", "updated_at"}))

	cart, err := store.GetCart(context.Background(), "nope")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cart != nil {
		t.Error("expected nil for missing cart")
	}
}

func TestSaveCart_TransactionShape(t *testing.T) {
	store, mock := newMockDB(t)

	cart := &domain.Cart{
		ID:        "cart-1",
		CartTotal: decimal.RequireFromString("20.00"),
		Items: []*domain.CartItem{
			{ID: "item-1", CartID: "cart-1", ProductID: "p-1", Qty: 4,
				ItemTotal: decimal.RequireFromString("20.00")},
		},
	}

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE carts SET cart_total`).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "cart-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM cart_items WHERE cart_id = \? AND id NOT IN`).
		WithArgs("cart-1", "item-1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO cart_items`).
		WithArgs("item-1", "cart-1", "p-1", 4, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := store.SaveCart(context.Background(), cart); err != nil {
		t.Fatalf("SaveCart failed: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestSaveCart_EmptyCartClearsItems(t *testing.T) {
	store, mock := newMockDB(t)

	cart := &domain.Cart{ID: "cart-1", CartTotal: decimal.Zero}

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE carts SET cart_total`).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "cart-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM cart_items WHERE cart_id = \?`).
		WithArgs("cart-1").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	if err := store.SaveCart(context.Background(), cart); err != nil {
		t.Fatalf("SaveCart failed: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestCreateCart(t *testing.T) {
	store, mock := newMockDB(t)
	cart := domain.NewCart()

	mock.ExpectExec(`INSERT INTO carts`).
		WithArgs(cart.ID, sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := store.CreateCart(context.Background(), cart); err != nil {
		t.Fatalf("CreateCart failed: %v", err)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}
