package service

import (
	"context"

	"auroramart/internal/model"

	"github.com/google/uuid"
)

// ProductService defines operations for catalog management.
type ProductService interface {
	// List retrieves products matching the filter.
	List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error)

	// GetBySKU retrieves a single product, or nil when it does not exist.
	GetBySKU(ctx context.Context, sku string) (*model.Product, error)

	// Create adds a new product to the catalog.
	Create(ctx context.Context, req *model.ProductRequest) (*model.Product, error)

	// Update rewrites an existing product.
	Update(ctx context.Context, sku string, req *model.ProductRequest) (*model.Product, error)

	// Delete removes a product from the catalog.
	Delete(ctx context.Context, sku string) error
}

// CustomerService defines operations for customer management. When a request
// leaves the preferred category empty the service asks the category predictor
// for one; an unavailable predictor leaves it unset.
type CustomerService interface {
	// List retrieves customers with pagination.
	List(ctx context.Context, limit, offset int) ([]model.Customer, error)

	// GetByID retrieves a single customer, or nil when it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Customer, error)

	// Create registers a new customer.
	Create(ctx context.Context, req *model.CustomerRequest) (*model.Customer, error)

	// Update rewrites an existing customer.
	Update(ctx context.Context, id uuid.UUID, req *model.CustomerRequest) (*model.Customer, error)

	// Delete removes a customer. Their orders survive with the customer link
	// cleared.
	Delete(ctx context.Context, id uuid.UUID) error
}

// OrderService defines operations for order management. All item writes go
// through ReconcileItems, which is the only code path allowed to change an
// order's total.
type OrderService interface {
	// Create creates a new order and applies its initial item directives in
	// the same transaction.
	Create(ctx context.Context, req *model.CreateOrderRequest) (*model.OrderResponse, error)

	// GetByID retrieves an order with its items, or nil when it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*model.OrderResponse, error)

	// List retrieves orders matching the filter, newest first.
	List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error)

	// UpdateHeader updates the order's header fields. The total is untouched.
	UpdateHeader(ctx context.Context, id uuid.UUID, req *model.UpdateOrderRequest) (*model.OrderResponse, error)

	// Delete removes an order and its items.
	Delete(ctx context.Context, id uuid.UUID) error

	// ReconcileItems applies a batch of item directives to an order as one
	// transaction and recomputes the stored total from the surviving items.
	ReconcileItems(ctx context.Context, id uuid.UUID, directives []model.ItemDirective) (*model.OrderResponse, error)
}

// CartService defines operations for carts and wishlists. A cart is resolved
// by customer ID or, for anonymous shoppers, by session key.
type CartService interface {
	// GetCart retrieves the cart with live pricing, creating it on first use.
	GetCart(ctx context.Context, customerID *uuid.UUID, sessionKey *string) (*model.CartResponse, error)

	// AddItem adds quantity of a product to the cart.
	AddItem(ctx context.Context, customerID *uuid.UUID, sessionKey *string, req *model.CartAddRequest) (*model.CartResponse, error)

	// UpdateItem sets the absolute quantity of a cart line. A quantity of
	// zero or less removes the line.
	UpdateItem(ctx context.Context, customerID *uuid.UUID, sessionKey *string, itemID uuid.UUID, req *model.CartUpdateRequest) (*model.CartResponse, error)

	// RemoveItem removes one cart line.
	RemoveItem(ctx context.Context, customerID *uuid.UUID, sessionKey *string, itemID uuid.UUID) (*model.CartResponse, error)

	// GetWishlist retrieves the customer's wishlist entries.
	GetWishlist(ctx context.Context, customerID uuid.UUID) ([]model.WishlistItemView, error)

	// AddToWishlist adds a product to the customer's wishlist.
	AddToWishlist(ctx context.Context, customerID uuid.UUID, sku string) error

	// RemoveFromWishlist removes a product from the customer's wishlist.
	RemoveFromWishlist(ctx context.Context, customerID uuid.UUID, sku string) error
}

// DashboardService assembles the admin dashboard aggregate.
type DashboardService interface {
	// Summary returns entity counts, low-stock products, top customer
	// segments, and the prediction model status.
	Summary(ctx context.Context) (*model.DashboardSummary, error)
}
