package port

import (
	"context"

	"github.com/galaxyshop/shop/internal/core/domain"
)

type CartRepository interface {
	CreateCart(ctx context.Context, cart *domain.Cart) error

	// GetCart loads the cart with all of its items. Returns (nil, nil)
	// when the cart does not exist.
	GetCart(ctx context.Context, cartID string) (*domain.Cart, error)

	// SaveCart persists the whole aggregate (cart row plus item rows,
	// including removals) in a single transaction.
	SaveCart(ctx context.Context, cart *domain.Cart) error
}
