package repository

import (
	"context"
	"fmt"
	"strings"

	"auroramart/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const orderColumns = "id, customer_id, shipping_address, fulfillment_status, total_amount, placed_at"
const orderItemColumns = "id, order_id, sku, quantity, unit_price"

// orderRepository implements OrderRepository using PostgreSQL.
type orderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool *pgxpool.Pool, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

func scanOrder(row pgx.Row, o *model.Order) error {
	return row.Scan(
		&o.ID,
		&o.CustomerID,
		&o.ShippingAddress,
		&o.FulfillmentStatus,
		&o.TotalAmount,
		&o.PlacedAt,
	)
}

func scanOrderItem(row pgx.Row, i *model.OrderItem) error {
	return row.Scan(&i.ID, &i.OrderID, &i.SKU, &i.Quantity, &i.UnitPrice)
}

// BeginTx starts a new database transaction.
func (r *orderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// CreateOrder inserts a new order within the provided transaction.
func (r *orderRepository) CreateOrder(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	query := `
		INSERT INTO orders (id, customer_id, shipping_address, fulfillment_status, total_amount, placed_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := tx.Exec(ctx, query,
		order.ID,
		order.CustomerID,
		order.ShippingAddress,
		order.FulfillmentStatus,
		order.TotalAmount,
		order.PlacedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return model.ErrCustomerNotFound
		}
		r.logger.Error().
			Err(err).
			Str("order_id", order.ID.String()).
			Msg("failed to create order")
		return fmt.Errorf("failed to create order: %w", TranslateConflict(err))
	}

	r.logger.Debug().Str("order_id", order.ID.String()).Msg("order created")
	return nil
}

// GetByID retrieves an order by its ID along with its items.
func (r *orderRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Order, []model.OrderItem, error) {
	orderQuery := fmt.Sprintf("SELECT %s FROM orders WHERE id = $1", orderColumns)

	var order model.Order
	err := scanOrder(r.pool.QueryRow(ctx, orderQuery, id), &order)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("order_id", id.String()).Msg("order not found")
			return nil, nil, nil
		}
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to query order")
		return nil, nil, fmt.Errorf("failed to query order: %w", err)
	}

	itemsQuery := fmt.Sprintf(`
		SELECT %s
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`, orderItemColumns)

	rows, err := r.pool.Query(ctx, itemsQuery, id)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to query order items")
		return nil, nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	var items []model.OrderItem
	for rows.Next() {
		var item model.OrderItem
		if err := scanOrderItem(rows, &item); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order item row")
			return nil, nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating order items: %w", err)
	}

	return &order, items, nil
}

// GetOrderTx retrieves the order row within the provided transaction.
func (r *orderRepository) GetOrderTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*model.Order, error) {
	query := fmt.Sprintf("SELECT %s FROM orders WHERE id = $1", orderColumns)

	var order model.Order
	err := scanOrder(tx.QueryRow(ctx, query, id), &order)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to query order in transaction")
		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	return &order, nil
}

// List retrieves orders matching the filter, newest first.
func (r *orderRepository) List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	var (
		conditions []string
		args       []any
	)

	if filter.Status != nil {
		args = append(args, *filter.Status)
		conditions = append(conditions, fmt.Sprintf("fulfillment_status = $%d", len(args)))
	}
	if filter.CustomerID != nil {
		args = append(args, *filter.CustomerID)
		conditions = append(conditions, fmt.Sprintf("customer_id = $%d", len(args)))
	}
	if filter.PlacedFrom != nil {
		args = append(args, *filter.PlacedFrom)
		conditions = append(conditions, fmt.Sprintf("placed_at >= $%d", len(args)))
	}
	if filter.PlacedTo != nil {
		args = append(args, *filter.PlacedTo)
		conditions = append(conditions, fmt.Sprintf("placed_at <= $%d", len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	args = append(args, filter.Limit)
	limitPos := len(args)
	args = append(args, filter.Offset)
	offsetPos := len(args)

	query := fmt.Sprintf(`
		SELECT %s
		FROM orders
		%s
		ORDER BY placed_at DESC, id
		LIMIT $%d OFFSET $%d
	`, orderColumns, where, limitPos, offsetPos)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query orders")
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	for rows.Next() {
		var o model.Order
		if err := scanOrder(rows, &o); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order row")
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	return orders, nil
}

// UpdateHeader rewrites the order's mutable header fields. total_amount and
// placed_at are deliberately untouched.
func (r *orderRepository) UpdateHeader(ctx context.Context, order *model.Order) error {
	query := `
		UPDATE orders
		SET customer_id = $2, shipping_address = $3, fulfillment_status = $4
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		order.ID,
		order.CustomerID,
		order.ShippingAddress,
		order.FulfillmentStatus,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return model.ErrCustomerNotFound
		}
		r.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to update order header")
		return fmt.Errorf("failed to update order: %w", TranslateConflict(err))
	}
	if tag.RowsAffected() == 0 {
		return model.ErrOrderNotFound
	}

	return nil
}

// Delete removes an order; order_items cascade with it.
func (r *orderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM orders WHERE id = $1", id)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to delete order")
		return fmt.Errorf("failed to delete order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrOrderNotFound
	}

	r.logger.Debug().Str("order_id", id.String()).Msg("order deleted")
	return nil
}

// Count returns the total number of orders.
func (r *orderRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM orders").Scan(&count); err != nil {
		r.logger.Error().Err(err).Msg("failed to count orders")
		return 0, fmt.Errorf("failed to count orders: %w", err)
	}
	return count, nil
}

// GetItemTx retrieves one order item within the provided transaction.
func (r *orderRepository) GetItemTx(ctx context.Context, tx pgx.Tx, itemID uuid.UUID) (*model.OrderItem, error) {
	query := fmt.Sprintf("SELECT %s FROM order_items WHERE id = $1", orderItemColumns)

	var item model.OrderItem
	err := scanOrderItem(tx.QueryRow(ctx, query, itemID), &item)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("item_id", itemID.String()).Msg("failed to query order item")
		return nil, fmt.Errorf("failed to query order item: %w", err)
	}

	return &item, nil
}

// DeleteItems removes the given items within the provided transaction. The
// order_id predicate keeps a stale item ID from touching another order.
func (r *orderRepository) DeleteItems(ctx context.Context, tx pgx.Tx, orderID uuid.UUID, itemIDs []uuid.UUID) error {
	if len(itemIDs) == 0 {
		return nil
	}

	_, err := tx.Exec(ctx,
		"DELETE FROM order_items WHERE order_id = $1 AND id = ANY($2)",
		orderID, itemIDs,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", orderID.String()).
			Int("count", len(itemIDs)).
			Msg("failed to delete order items")
		return fmt.Errorf("failed to delete order items: %w", TranslateConflict(err))
	}

	r.logger.Debug().
		Str("order_id", orderID.String()).
		Int("count", len(itemIDs)).
		Msg("order items deleted")
	return nil
}

// InsertItem inserts an order item within the provided transaction.
func (r *orderRepository) InsertItem(ctx context.Context, tx pgx.Tx, item *model.OrderItem) error {
	query := `
		INSERT INTO order_items (id, order_id, sku, quantity, unit_price)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := tx.Exec(ctx, query, item.ID, item.OrderID, item.SKU, item.Quantity, item.UnitPrice)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", item.OrderID.String()).
			Msg("failed to insert order item")
		return fmt.Errorf("failed to insert order item: %w", TranslateConflict(err))
	}

	return nil
}

// UpdateItem rewrites an order item within the provided transaction.
func (r *orderRepository) UpdateItem(ctx context.Context, tx pgx.Tx, item *model.OrderItem) error {
	query := `
		UPDATE order_items
		SET sku = $2, quantity = $3, unit_price = $4
		WHERE id = $1
	`

	_, err := tx.Exec(ctx, query, item.ID, item.SKU, item.Quantity, item.UnitPrice)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("item_id", item.ID.String()).
			Msg("failed to update order item")
		return fmt.Errorf("failed to update order item: %w", TranslateConflict(err))
	}

	return nil
}

// SumItemTotals computes the order total from the persisted post-state, not
// from the directive list, so concurrent directives in one batch cannot
// compound a stale in-memory sum.
func (r *orderRepository) SumItemTotals(ctx context.Context, tx pgx.Tx, orderID uuid.UUID) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(unit_price * quantity), 0)
		FROM order_items
		WHERE order_id = $1
	`

	var total decimal.Decimal
	if err := tx.QueryRow(ctx, query, orderID).Scan(&total); err != nil {
		r.logger.Error().Err(err).Str("order_id", orderID.String()).Msg("failed to sum order items")
		return decimal.Zero, fmt.Errorf("failed to sum order items: %w", TranslateConflict(err))
	}

	return total, nil
}

// UpdateTotal writes the recomputed total within the provided transaction.
func (r *orderRepository) UpdateTotal(ctx context.Context, tx pgx.Tx, orderID uuid.UUID, total decimal.Decimal) error {
	_, err := tx.Exec(ctx, "UPDATE orders SET total_amount = $2 WHERE id = $1", orderID, total)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", orderID.String()).Msg("failed to update order total")
		return fmt.Errorf("failed to update order total: %w", TranslateConflict(err))
	}

	return nil
}
