package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus describes order lifecycle.
type OrderStatus string

const (
	OrderStatusCreated   OrderStatus = "CREATED"
	OrderStatusPaid      OrderStatus = "PAID"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// Valid reports whether status is a known lifecycle value.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusCreated, OrderStatusPaid, OrderStatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no transition may leave the status.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusPaid || s == OrderStatusCancelled
}

// CanTransition validates a status change. Writing the current status again
// is allowed so repeated deliveries converge.
func CanTransition(from, to OrderStatus) bool {
	if !from.Valid() || !to.Valid() {
		return false
	}
	if from == to {
		return true
	}
	return from == OrderStatusCreated && to != OrderStatusCreated
}

// LineItem is a single ordered product.
type LineItem struct {
	Product  string `json:"product"`
	Quantity int    `json:"quantity"`
}

// Order describes a registered sheet.
type Order struct {
	Sheet     int64
	Client    string
	Items     []LineItem
	Discount  decimal.Decimal
	Total     decimal.Decimal
	Status    OrderStatus
	CreatedAt time.Time
}
