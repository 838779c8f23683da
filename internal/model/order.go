package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// FulfillmentStatus is the lifecycle state of an order.
type FulfillmentStatus string

const (
	StatusPending    FulfillmentStatus = "PENDING"
	StatusProcessing FulfillmentStatus = "PROCESSING"
	StatusShipped    FulfillmentStatus = "SHIPPED"
	StatusDelivered  FulfillmentStatus = "DELIVERED"
	StatusCancelled  FulfillmentStatus = "CANCELLED"
)

// Valid reports whether s is one of the known fulfillment states.
func (s FulfillmentStatus) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Order represents a customer order. TotalAmount is derived: after every
// successful write it equals the sum of unit_price * quantity over the
// order's items, and it is never accepted from caller input.
type Order struct {
	ID                uuid.UUID         `json:"id" db:"id"`
	CustomerID        *uuid.UUID        `json:"customerId,omitempty" db:"customer_id"`
	ShippingAddress   string            `json:"shippingAddress" db:"shipping_address"`
	FulfillmentStatus FulfillmentStatus `json:"fulfillmentStatus" db:"fulfillment_status"`
	TotalAmount       decimal.Decimal   `json:"totalAmount" db:"total_amount"`
	PlacedAt          time.Time         `json:"placedAt" db:"placed_at"`
}

// OrderItem is one product-quantity pairing within an order. UnitPrice is
// frozen at write time; if the product is later deleted SKU becomes nil but
// the item and its price survive.
type OrderItem struct {
	ID        uuid.UUID       `json:"id" db:"id"`
	OrderID   uuid.UUID       `json:"orderId" db:"order_id"`
	SKU       *string         `json:"sku,omitempty" db:"sku"`
	Quantity  int             `json:"quantity" db:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice" db:"unit_price"`
}

// LineTotal returns unit_price * quantity for this item.
func (i *OrderItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// ItemDirective is one proposed line change in a reconcile batch.
//
//   - Delete set with ItemID: remove the item.
//   - ItemID set: update the item (SKU swaps the product, Quantity changes
//     the count; either may be omitted).
//   - SKU set without ItemID: create a new item.
//   - Neither ItemID nor SKU: a blank form row, skipped.
type ItemDirective struct {
	ItemID   *uuid.UUID `json:"itemId,omitempty"`
	SKU      *string    `json:"sku,omitempty"`
	Quantity *int       `json:"quantity,omitempty"`
	Delete   bool       `json:"delete,omitempty"`
}

// Blank reports whether the directive carries no product reference at all.
func (d *ItemDirective) Blank() bool {
	return !d.Delete && d.ItemID == nil && (d.SKU == nil || *d.SKU == "")
}

// CreateOrderRequest is the payload for creating an order together with its
// initial item directives.
type CreateOrderRequest struct {
	CustomerID      *uuid.UUID        `json:"customerId,omitempty"`
	ShippingAddress string            `json:"shippingAddress"`
	Status          FulfillmentStatus `json:"fulfillmentStatus,omitempty"`
	Items           []ItemDirective   `json:"items"`
}

// UpdateOrderRequest updates order header fields. Items are changed through
// the reconcile endpoint, and TotalAmount is never writable.
type UpdateOrderRequest struct {
	CustomerID      *uuid.UUID         `json:"customerId,omitempty"`
	ShippingAddress *string            `json:"shippingAddress,omitempty"`
	Status          *FulfillmentStatus `json:"fulfillmentStatus,omitempty"`
}

// ReconcileRequest is a batch of item directives for one order.
type ReconcileRequest struct {
	Items []ItemDirective `json:"items"`
}

// OrderResponse is the post-write view of an order: the recomputed total,
// the surviving items, and the indexes of any directives that were skipped
// (blank rows or lines referencing missing products).
type OrderResponse struct {
	Order        Order       `json:"order"`
	Items        []OrderItem `json:"items"`
	SkippedLines []int       `json:"skippedLines,omitempty"`
}

// OrderFilter narrows an order listing. Results are ordered by placed_at
// descending with the order ID as tiebreak.
type OrderFilter struct {
	Status     *FulfillmentStatus
	CustomerID *uuid.UUID
	PlacedFrom *time.Time
	PlacedTo   *time.Time
	Limit      int
	Offset     int
}
