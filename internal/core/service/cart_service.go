package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/galaxyshop/shop/internal/core/domain"
	"github.com/galaxyshop/shop/internal/port"
)

var (
	ErrCartNotFound    = errors.New("cart not found")
	ErrItemNotFound    = errors.New("cart item not found")
	ErrInvalidQuantity = errors.New("quantity must be positive")
)

// ProductResolver is the slice of the catalog the cart engine needs.
type ProductResolver interface {
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
}

// CartService is the cart engine. Every mutation loads the cart aggregate,
// applies the change, re-derives the cart total as a full sum over the
// lines, and saves the whole aggregate in one transaction. A failed
// mutation leaves the last persisted state untouched.
type CartService struct {
	carts    port.CartRepository
	products ProductResolver
}

func NewCartService(carts port.CartRepository, products ProductResolver) *CartService {
	return &CartService{carts: carts, products: products}
}

func (s *CartService) Create(ctx context.Context) (*domain.Cart, error) {
	cart := domain.NewCart()
	if err := s.carts.CreateCart(ctx, cart); err != nil {
		return nil, fmt.Errorf("create cart: %w", err)
	}
	return cart, nil
}

func (s *CartService) Get(ctx context.Context, cartID string) (*domain.Cart, error) {
	return s.loadCart(ctx, cartID)
}

// AddItem puts the product into the cart as a qty-1 line priced at the
// product's current price. Adding a product already in the cart changes
// nothing.
func (s *CartService) AddItem(ctx context.Context, cartID, productID string) (*domain.Cart, error) {
	product, err := s.products.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}

	cart, err := s.loadCart(ctx, cartID)
	if err != nil {
		return nil, err
	}

	cart.AddItem(*product)
	return s.save(ctx, cart)
}

// RemoveItem drops the product's line from the cart. Removing a product
// that is not in the cart is a no-op, not an error.
func (s *CartService) RemoveItem(ctx context.Context, cartID, productID string) (*domain.Cart, error) {
	cart, err := s.loadCart(ctx, cartID)
	if err != nil {
		return nil, err
	}

	if !cart.RemoveProduct(productID) {
		return cart, nil
	}
	return s.save(ctx, cart)
}

// ChangeQuantity sets the line's quantity and re-derives its total from
// the product's current price using decimal arithmetic. The item must
// belong to the addressed cart.
func (s *CartService) ChangeQuantity(ctx context.Context, cartID, itemID string, qty int) (*domain.Cart, error) {
	if qty <= 0 {
		return nil, ErrInvalidQuantity
	}

	cart, err := s.loadCart(ctx, cartID)
	if err != nil {
		return nil, err
	}

	item := cart.ItemByID(itemID)
	if item == nil {
		return nil, ErrItemNotFound
	}

	product, err := s.products.GetProduct(ctx, item.ProductID)
	if err != nil {
		return nil, err
	}

	item.Qty = qty
	item.ItemTotal = product.Price.Mul(decimal.NewFromInt(int64(qty)))
	return s.save(ctx, cart)
}

func (s *CartService) loadCart(ctx context.Context, cartID string) (*domain.Cart, error) {
	cart, err := s.carts.GetCart(ctx, cartID)
	if err != nil {
		return nil, fmt.Errorf("get cart: %w", err)
	}
	if cart == nil {
		return nil, ErrCartNotFound
	}
	return cart, nil
}

// save recomputes the cart total and persists the aggregate. Recomputing
// here, on every mutation path, is what keeps cart_total from ever going
// stale relative to the lines.
func (s *CartService) save(ctx context.Context, cart *domain.Cart) (*domain.Cart, error) {
	cart.RecomputeTotal()
	if err := s.carts.SaveCart(ctx, cart); err != nil {
		return nil, fmt.Errorf("save cart: %w", err)
	}
	return cart, nil
}
