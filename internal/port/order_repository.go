package port

import (
	"context"

	"github.com/galaxyshop/shop/internal/core/domain"
)

type OrderRepository interface {
	// CreateOrder persists the order and its cart references in a single
	// transaction.
	CreateOrder(ctx context.Context, order domain.Order) error

	// GetOrder returns (nil, nil) when the order does not exist.
	GetOrder(ctx context.Context, orderID string) (*domain.Order, error)

	// UpdateStatus moves the order to another value of the closed status
	// set. Transitions themselves are driven externally.
	UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus) error
}
