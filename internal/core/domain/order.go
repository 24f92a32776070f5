package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusReceived   OrderStatus = "received"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusPaid       OrderStatus = "paid"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusReceived, OrderStatusProcessing, OrderStatusPaid:
		return true
	}
	return false
}

type BuyingType string

const (
	BuyingTypePickup   BuyingType = "pickup"
	BuyingTypeDelivery BuyingType = "delivery"
)

func (b BuyingType) Valid() bool {
	return b == BuyingTypePickup || b == BuyingTypeDelivery
}

type ContactInfo struct {
	FirstName string
	LastName  string
	Phone     string
	Address   string
	Comments  string
}

// Order is an immutable snapshot of one checkout. Status is the only field
// written after creation, and only to values of the closed OrderStatus set.
type Order struct {
	ID         string
	UserID     string
	CartIDs    []string
	Total      decimal.Decimal
	Contact    ContactInfo
	BuyingType BuyingType
	Status     OrderStatus
	CreatedAt  time.Time
}
