package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartItem is one product line within a single cart. Items are owned by
// their cart: the (CartID, ProductID) pair is unique and an item is never
// shared between carts.
type CartItem struct {
	ID        string
	CartID    string
	ProductID string
	Qty       int
	ItemTotal decimal.Decimal
}

type Cart struct {
	ID        string
	Items     []*CartItem
	CartTotal decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewCart() *Cart {
	now := time.Now()
	return &Cart{
		ID:        uuid.NewString(),
		CartTotal: decimal.Zero,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (c *Cart) ItemForProduct(productID string) *CartItem {
	for _, item := range c.Items {
		if item.ProductID == productID {
			return item
		}
	}
	return nil
}

func (c *Cart) ItemByID(itemID string) *CartItem {
	for _, item := range c.Items {
		if item.ID == itemID {
			return item
		}
	}
	return nil
}

// AddItem adds a line for the product with qty 1 and the product's current
// price. Adding a product already in the cart returns the existing line
// unchanged.
func (c *Cart) AddItem(p Product) *CartItem {
	if item := c.ItemForProduct(p.ID); item != nil {
		return item
	}

	item := &CartItem{
		ID:        uuid.NewString(),
		CartID:    c.ID,
		ProductID: p.ID,
		Qty:       1,
		ItemTotal: p.Price,
	}
	c.Items = append(c.Items, item)
	return item
}

// RemoveProduct drops every line matching the product. Returns false if
// the product was not in the cart.
func (c *Cart) RemoveProduct(productID string) bool {
	removed := false
	kept := c.Items[:0]
	for _, item := range c.Items {
		if item.ProductID == productID {
			removed = true
			continue
		}
		kept = append(kept, item)
	}
	c.Items = kept
	return removed
}

// RecomputeTotal re-derives CartTotal as the full sum of item totals.
// Always a complete re-sum, never an incremental adjustment, so the total
// cannot drift from the lines.
func (c *Cart) RecomputeTotal() {
	total := decimal.Zero
	for _, item := range c.Items {
		total = total.Add(item.ItemTotal)
	}
	c.CartTotal = total
}
