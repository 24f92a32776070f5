package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/galaxyshop/shop/internal/core/domain"
	"github.com/galaxyshop/shop/internal/port"
)

var (
	ErrNoCarts           = errors.New("checkout requires at least one cart")
	ErrInvalidBuyingType = errors.New("invalid buying type")
	ErrInvalidStatus     = errors.New("invalid order status")
	ErrOrderNotFound     = errors.New("order not found")
)

// CheckoutService assembles finalized carts into an immutable order.
type CheckoutService struct {
	carts  port.CartRepository
	orders port.OrderRepository
}

func NewCheckoutService(carts port.CartRepository, orders port.OrderRepository) *CheckoutService {
	return &CheckoutService{carts: carts, orders: orders}
}

// Checkout creates the order referencing the given carts, with the total
// taken as the sum of their cart totals and status set to the initial
// "received" value. The creation timestamp is never written again.
func (s *CheckoutService) Checkout(ctx context.Context, userID string, cartIDs []string, contact domain.ContactInfo, buyingType domain.BuyingType) (*domain.Order, error) {
	if len(cartIDs) == 0 {
		return nil, ErrNoCarts
	}
	if !buyingType.Valid() {
		return nil, ErrInvalidBuyingType
	}

	total := decimal.Zero
	for _, cartID := range cartIDs {
		cart, err := s.carts.GetCart(ctx, cartID)
		if err != nil {
			return nil, fmt.Errorf("get cart: %w", err)
		}
		if cart == nil {
			return nil, ErrCartNotFound
		}
		total = total.Add(cart.CartTotal)
	}

	order := domain.Order{
		ID:         uuid.NewString(),
		UserID:     userID,
		CartIDs:    cartIDs,
		Total:      total,
		Contact:    contact,
		BuyingType: buyingType,
		Status:     domain.OrderStatusReceived,
		CreatedAt:  time.Now(),
	}

	if err := s.orders.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	return &order, nil
}

func (s *CheckoutService) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}
	return order, nil
}

// SetStatus records an externally driven status transition. Values outside
// the closed status set are rejected.
func (s *CheckoutService) SetStatus(ctx context.Context, orderID string, status domain.OrderStatus) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}

	order, err := s.orders.GetOrder(ctx, orderID)
	if err != nil {
		return fmt.Errorf("get order: %w", err)
	}
	if order == nil {
		return ErrOrderNotFound
	}

	if err := s.orders.UpdateStatus(ctx, orderID, status); err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	return nil
}
