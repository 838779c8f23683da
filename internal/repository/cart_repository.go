package repository

import (
	"context"
	"fmt"
	"time"

	"auroramart/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// cartRepository implements CartRepository using PostgreSQL.
type cartRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCartRepository creates a new PostgreSQL-backed cart repository.
func NewCartRepository(pool *pgxpool.Pool, logger zerolog.Logger) CartRepository {
	return &cartRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "cart").Logger(),
	}
}

// GetOrCreateCart resolves the cart for a customer or anonymous session.
func (r *cartRepository) GetOrCreateCart(ctx context.Context, customerID *uuid.UUID, sessionKey *string) (*model.Cart, error) {
	var (
		query string
		arg   any
	)
	switch {
	case customerID != nil:
		query = "SELECT id, customer_id, session_key, created_at, updated_at FROM carts WHERE customer_id = $1"
		arg = *customerID
	case sessionKey != nil && *sessionKey != "":
		query = "SELECT id, customer_id, session_key, created_at, updated_at FROM carts WHERE session_key = $1"
		arg = *sessionKey
	default:
		return nil, fmt.Errorf("cart requires a customer ID or session key")
	}

	var cart model.Cart
	err := r.pool.QueryRow(ctx, query, arg).Scan(
		&cart.ID, &cart.CustomerID, &cart.SessionKey, &cart.CreatedAt, &cart.UpdatedAt,
	)
	if err == nil {
		return &cart, nil
	}
	if err != pgx.ErrNoRows {
		r.logger.Error().Err(err).Msg("failed to query cart")
		return nil, fmt.Errorf("failed to query cart: %w", err)
	}

	now := time.Now()
	cart = model.Cart{
		ID:         uuid.New(),
		CustomerID: customerID,
		SessionKey: sessionKey,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	_, err = r.pool.Exec(ctx,
		"INSERT INTO carts (id, customer_id, session_key, created_at, updated_at) VALUES ($1, $2, $3, $4, $5)",
		cart.ID, cart.CustomerID, cart.SessionKey, cart.CreatedAt, cart.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to create cart")
		return nil, fmt.Errorf("failed to create cart: %w", err)
	}

	r.logger.Debug().Str("cart_id", cart.ID.String()).Msg("cart created")
	return &cart, nil
}

// GetCartItems retrieves cart lines joined with live catalog pricing.
// Lines whose product has been deleted are dropped from the view.
func (r *cartRepository) GetCartItems(ctx context.Context, cartID uuid.UUID) ([]model.CartItemView, error) {
	query := `
		SELECT ci.id, ci.sku, p.name, ci.quantity, p.price, p.price * ci.quantity
		FROM cart_items ci
		JOIN products p ON p.sku = ci.sku
		WHERE ci.cart_id = $1
		ORDER BY ci.added_at, ci.id
	`

	rows, err := r.pool.Query(ctx, query, cartID)
	if err != nil {
		r.logger.Error().Err(err).Str("cart_id", cartID.String()).Msg("failed to query cart items")
		return nil, fmt.Errorf("failed to query cart items: %w", err)
	}
	defer rows.Close()

	var items []model.CartItemView
	for rows.Next() {
		var v model.CartItemView
		if err := rows.Scan(&v.ID, &v.SKU, &v.Name, &v.Quantity, &v.UnitPrice, &v.LineTotal); err != nil {
			return nil, fmt.Errorf("failed to scan cart item: %w", err)
		}
		items = append(items, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating cart items: %w", err)
	}

	return items, nil
}

// UpsertCartItem adds quantity of a product to the cart, creating the line
// on first add.
func (r *cartRepository) UpsertCartItem(ctx context.Context, cartID uuid.UUID, sku string, quantity int) error {
	query := `
		INSERT INTO cart_items (id, cart_id, sku, quantity, added_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (cart_id, sku)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity
	`

	_, err := r.pool.Exec(ctx, query, uuid.New(), cartID, sku, quantity, time.Now())
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("cart_id", cartID.String()).
			Str("sku", sku).
			Msg("failed to upsert cart item")
		return fmt.Errorf("failed to upsert cart item: %w", err)
	}

	return nil
}

// GetCartItem retrieves one cart line, or nil when it does not exist.
func (r *cartRepository) GetCartItem(ctx context.Context, itemID uuid.UUID) (*model.CartItem, error) {
	query := "SELECT id, cart_id, sku, quantity, added_at FROM cart_items WHERE id = $1"

	var item model.CartItem
	err := r.pool.QueryRow(ctx, query, itemID).Scan(
		&item.ID, &item.CartID, &item.SKU, &item.Quantity, &item.AddedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("item_id", itemID.String()).Msg("failed to query cart item")
		return nil, fmt.Errorf("failed to query cart item: %w", err)
	}

	return &item, nil
}

// SetCartItemQuantity sets the absolute quantity of a cart line.
func (r *cartRepository) SetCartItemQuantity(ctx context.Context, itemID uuid.UUID, quantity int) error {
	tag, err := r.pool.Exec(ctx, "UPDATE cart_items SET quantity = $2 WHERE id = $1", itemID, quantity)
	if err != nil {
		r.logger.Error().Err(err).Str("item_id", itemID.String()).Msg("failed to update cart item")
		return fmt.Errorf("failed to update cart item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCartItemNotFound
	}

	return nil
}

// DeleteCartItem removes one cart line.
func (r *cartRepository) DeleteCartItem(ctx context.Context, itemID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM cart_items WHERE id = $1", itemID)
	if err != nil {
		r.logger.Error().Err(err).Str("item_id", itemID.String()).Msg("failed to delete cart item")
		return fmt.Errorf("failed to delete cart item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCartItemNotFound
	}

	return nil
}

// GetOrCreateWishlist resolves the customer's wishlist.
func (r *cartRepository) GetOrCreateWishlist(ctx context.Context, customerID uuid.UUID) (*model.Wishlist, error) {
	var wl model.Wishlist
	err := r.pool.QueryRow(ctx,
		"SELECT id, customer_id, created_at FROM wishlists WHERE customer_id = $1",
		customerID,
	).Scan(&wl.ID, &wl.CustomerID, &wl.CreatedAt)
	if err == nil {
		return &wl, nil
	}
	if err != pgx.ErrNoRows {
		r.logger.Error().Err(err).Msg("failed to query wishlist")
		return nil, fmt.Errorf("failed to query wishlist: %w", err)
	}

	wl = model.Wishlist{
		ID:         uuid.New(),
		CustomerID: customerID,
		CreatedAt:  time.Now(),
	}

	_, err = r.pool.Exec(ctx,
		"INSERT INTO wishlists (id, customer_id, created_at) VALUES ($1, $2, $3)",
		wl.ID, wl.CustomerID, wl.CreatedAt,
	)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to create wishlist")
		return nil, fmt.Errorf("failed to create wishlist: %w", err)
	}

	return &wl, nil
}

// GetWishlistItems retrieves wishlist entries joined with catalog data.
func (r *cartRepository) GetWishlistItems(ctx context.Context, wishlistID uuid.UUID) ([]model.WishlistItemView, error) {
	query := `
		SELECT wi.id, wi.sku, p.name, p.price, wi.added_at
		FROM wishlist_items wi
		JOIN products p ON p.sku = wi.sku
		WHERE wi.wishlist_id = $1
		ORDER BY wi.added_at, wi.id
	`

	rows, err := r.pool.Query(ctx, query, wishlistID)
	if err != nil {
		r.logger.Error().Err(err).Str("wishlist_id", wishlistID.String()).Msg("failed to query wishlist items")
		return nil, fmt.Errorf("failed to query wishlist items: %w", err)
	}
	defer rows.Close()

	var items []model.WishlistItemView
	for rows.Next() {
		var v model.WishlistItemView
		if err := rows.Scan(&v.ID, &v.SKU, &v.Name, &v.Price, &v.AddedAt); err != nil {
			return nil, fmt.Errorf("failed to scan wishlist item: %w", err)
		}
		items = append(items, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating wishlist items: %w", err)
	}

	return items, nil
}

// AddWishlistItem adds a product to the wishlist. Returns false when the
// product was already present.
func (r *cartRepository) AddWishlistItem(ctx context.Context, wishlistID uuid.UUID, sku string) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`INSERT INTO wishlist_items (id, wishlist_id, sku, added_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (wishlist_id, sku) DO NOTHING`,
		uuid.New(), wishlistID, sku, time.Now(),
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("wishlist_id", wishlistID.String()).
			Str("sku", sku).
			Msg("failed to add wishlist item")
		return false, fmt.Errorf("failed to add wishlist item: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// RemoveWishlistItem removes a product from the wishlist.
func (r *cartRepository) RemoveWishlistItem(ctx context.Context, wishlistID uuid.UUID, sku string) error {
	tag, err := r.pool.Exec(ctx,
		"DELETE FROM wishlist_items WHERE wishlist_id = $1 AND sku = $2",
		wishlistID, sku,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("sku", sku).Msg("failed to remove wishlist item")
		return fmt.Errorf("failed to remove wishlist item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCartItemNotFound
	}

	return nil
}
