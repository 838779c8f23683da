package repository

import (
	"context"

	"auroramart/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// ProductRepository defines the interface for catalog data access.
type ProductRepository interface {
	// List retrieves products matching the filter with deterministic
	// ordering (sort key plus SKU tiebreak).
	List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error)

	// GetBySKU retrieves a single product, or nil when it does not exist.
	GetBySKU(ctx context.Context, sku string) (*model.Product, error)

	// GetBySKUTx retrieves a product within the provided transaction, so a
	// reconcile batch reads prices from its own transactional snapshot.
	GetBySKUTx(ctx context.Context, tx pgx.Tx, sku string) (*model.Product, error)

	// Create inserts a new product.
	Create(ctx context.Context, product *model.Product) error

	// Update rewrites all mutable fields of an existing product.
	Update(ctx context.Context, product *model.Product) error

	// Delete removes a product. Order items referencing it keep their frozen
	// unit price and lose the SKU link.
	Delete(ctx context.Context, sku string) error

	// LowStock retrieves products at or below their reorder threshold,
	// lowest stock first.
	LowStock(ctx context.Context, limit int) ([]model.Product, error)

	// Count returns the total number of products.
	Count(ctx context.Context) (int, error)
}

// CustomerRepository defines the interface for customer data access.
type CustomerRepository interface {
	Create(ctx context.Context, customer *model.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Customer, error)
	List(ctx context.Context, limit, offset int) ([]model.Customer, error)
	Update(ctx context.Context, customer *model.Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int, error)

	// SegmentSummary returns the most common preferred categories and how
	// many customers fall in each.
	SegmentSummary(ctx context.Context, limit int) ([]model.SegmentCount, error)
}

// OrderRepository defines the interface for order data access. Item
// mutations take an explicit transaction so a reconcile batch commits or
// rolls back as one unit.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// CreateOrder inserts a new order within the provided transaction.
	CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// GetByID retrieves an order by its ID along with its items.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Order, []model.OrderItem, error)

	// GetOrderTx retrieves the order row within the provided transaction.
	GetOrderTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.Order, error)

	// List retrieves orders matching the filter, newest first with the
	// order ID as tiebreak.
	List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error)

	// UpdateHeader rewrites the order's mutable header fields. The total is
	// untouched; only reconciliation writes it.
	UpdateHeader(ctx context.Context, order *model.Order) error

	// Delete removes an order; its items go with it.
	Delete(ctx context.Context, id uuid.UUID) error

	// Count returns the total number of orders.
	Count(ctx context.Context) (int, error)

	// GetItemTx retrieves one order item within the provided transaction.
	GetItemTx(ctx context.Context, tx pgx.Tx, itemID uuid.UUID) (*model.OrderItem, error)

	// DeleteItems removes the given items from an order within the provided
	// transaction.
	DeleteItems(ctx context.Context, tx pgx.Tx, orderID uuid.UUID, itemIDs []uuid.UUID) error

	// InsertItem inserts an order item within the provided transaction.
	InsertItem(ctx context.Context, tx pgx.Tx, item *model.OrderItem) error

	// UpdateItem rewrites an order item within the provided transaction.
	UpdateItem(ctx context.Context, tx pgx.Tx, item *model.OrderItem) error

	// SumItemTotals computes the exact sum of unit_price * quantity over the
	// order's persisted items, within the provided transaction.
	SumItemTotals(ctx context.Context, tx pgx.Tx, orderID uuid.UUID) (decimal.Decimal, error)

	// UpdateTotal writes the recomputed total within the provided transaction.
	UpdateTotal(ctx context.Context, tx pgx.Tx, orderID uuid.UUID, total decimal.Decimal) error
}

// CartRepository defines the interface for cart and wishlist data access.
type CartRepository interface {
	// GetOrCreateCart resolves the cart for a customer or anonymous session,
	// creating it on first use.
	GetOrCreateCart(ctx context.Context, customerID *uuid.UUID, sessionKey *string) (*model.Cart, error)

	// GetCartItems retrieves the cart's lines joined with live catalog
	// pricing.
	GetCartItems(ctx context.Context, cartID uuid.UUID) ([]model.CartItemView, error)

	// UpsertCartItem adds quantity of a product to the cart, creating the
	// line on first add.
	UpsertCartItem(ctx context.Context, cartID uuid.UUID, sku string, quantity int) error

	// GetCartItem retrieves one cart line, or nil when it does not exist.
	GetCartItem(ctx context.Context, itemID uuid.UUID) (*model.CartItem, error)

	// SetCartItemQuantity sets the absolute quantity of a cart line.
	SetCartItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error

	// DeleteCartItem removes one cart line.
	DeleteCartItem(ctx context.Context, itemID uuid.UUID) error

	// GetOrCreateWishlist resolves the customer's wishlist.
	GetOrCreateWishlist(ctx context.Context, customerID uuid.UUID) (*model.Wishlist, error)

	// GetWishlistItems retrieves wishlist entries joined with catalog data.
	GetWishlistItems(ctx context.Context, wishlistID uuid.UUID) ([]model.WishlistItemView, error)

	// AddWishlistItem adds a product to the wishlist. Returns false when the
	// product was already present.
	AddWishlistItem(ctx context.Context, wishlistID uuid.UUID, sku string) (bool, error)

	// RemoveWishlistItem removes a product from the wishlist.
	RemoveWishlistItem(ctx context.Context, wishlistID uuid.UUID, sku string) error
}
