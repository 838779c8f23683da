package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cart belongs either to a customer or to an anonymous session key.
// Unlike order items, cart lines carry no frozen price: totals are always
// computed from the current catalog price.
type Cart struct {
	ID         uuid.UUID  `json:"id" db:"id"`
	CustomerID *uuid.UUID `json:"customerId,omitempty" db:"customer_id"`
	SessionKey *string    `json:"sessionKey,omitempty" db:"session_key"`
	CreatedAt  time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time  `json:"updatedAt" db:"updated_at"`
}

// CartItem is one product line in a cart, unique per (cart, sku).
type CartItem struct {
	ID       uuid.UUID `json:"id" db:"id"`
	CartID   uuid.UUID `json:"cartId" db:"cart_id"`
	SKU      string    `json:"sku" db:"sku"`
	Quantity int       `json:"quantity" db:"quantity"`
	AddedAt  time.Time `json:"addedAt" db:"added_at"`
}

// CartItemView joins a cart item with live catalog pricing.
type CartItemView struct {
	ID        uuid.UUID       `json:"id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

// CartResponse is the full cart view returned by cart endpoints.
type CartResponse struct {
	ID         uuid.UUID       `json:"id"`
	Items      []CartItemView  `json:"items"`
	TotalItems int             `json:"totalItems"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

// CartAddRequest adds quantity of a product to the cart. Quantity defaults
// to 1 when omitted.
type CartAddRequest struct {
	SKU      string `json:"sku"`
	Quantity int    `json:"quantity,omitempty"`
}

// CartUpdateRequest sets the absolute quantity of a cart item. A quantity of
// zero or less removes the item.
type CartUpdateRequest struct {
	Quantity int `json:"quantity"`
}

// Wishlist holds a customer's saved products.
type Wishlist struct {
	ID         uuid.UUID `json:"id" db:"id"`
	CustomerID uuid.UUID `json:"customerId" db:"customer_id"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}

// WishlistItemView joins a wishlist entry with catalog data.
type WishlistItemView struct {
	ID      uuid.UUID       `json:"id"`
	SKU     string          `json:"sku"`
	Name    string          `json:"name"`
	Price   decimal.Decimal `json:"price"`
	AddedAt time.Time       `json:"addedAt"`
}

// WishlistAddRequest adds a product to a customer's wishlist.
type WishlistAddRequest struct {
	SKU string `json:"sku"`
}
