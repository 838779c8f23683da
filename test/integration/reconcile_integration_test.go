package integration

import (
	"context"
	"testing"

	"auroramart/internal/model"
	"auroramart/internal/repository"
	"auroramart/internal/service"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func newOrderService(pool *pgxpool.Pool) (service.OrderService, repository.OrderRepository, repository.ProductRepository) {
	logger := zerolog.Nop()
	orderRepo := repository.NewOrderRepository(pool, logger)
	productRepo := repository.NewProductRepository(pool, logger)
	return service.NewOrderService(orderRepo, productRepo, 1, logger), orderRepo, productRepo
}

// storedTotal reads the persisted order total straight from the table, so
// assertions cover what committed rather than what the service returned.
func storedTotal(t *testing.T, pool *pgxpool.Pool, orderID uuid.UUID) decimal.Decimal {
	t.Helper()

	var total decimal.Decimal
	err := pool.QueryRow(context.Background(),
		"SELECT total_amount FROM orders WHERE id = $1", orderID,
	).Scan(&total)
	require.NoError(t, err)
	return total
}

func TestReconcile_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	svc, _, productRepo := newOrderService(testDB.Pool)
	ctx := context.Background()

	t.Run("total always equals the sum over persisted items", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedProducts(t, testDB.Pool)

		// 2 x 10.00 + 1 x 15.00 = 35.00
		resp, err := svc.Create(ctx, &model.CreateOrderRequest{
			ShippingAddress: "12 Harbour St",
			Items: []model.ItemDirective{
				{SKU: strPtr("P001"), Quantity: intPtr(2)},
				{SKU: strPtr("P002"), Quantity: intPtr(1)},
			},
		})
		require.NoError(t, err)
		require.Len(t, resp.Items, 2)

		total := storedTotal(t, testDB.Pool, resp.Order.ID)
		assert.True(t, total.Equal(decimal.RequireFromString("35.00")),
			"expected 35.00, got %s", total)

		// Delete the 2 x 10.00 line: 15.00 remains.
		var deleteID uuid.UUID
		for _, item := range resp.Items {
			if item.SKU != nil && *item.SKU == "P001" {
				deleteID = item.ID
			}
		}
		require.NotEqual(t, uuid.Nil, deleteID)

		resp, err = svc.ReconcileItems(ctx, resp.Order.ID, []model.ItemDirective{
			{ItemID: &deleteID, Delete: true},
		})
		require.NoError(t, err)
		require.Len(t, resp.Items, 1)

		total = storedTotal(t, testDB.Pool, resp.Order.ID)
		assert.True(t, total.Equal(decimal.RequireFromString("15.00")),
			"expected 15.00, got %s", total)
	})

	t.Run("quantity update repins the live catalog price", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedProducts(t, testDB.Pool)

		resp, err := svc.Create(ctx, &model.CreateOrderRequest{
			ShippingAddress: "12 Harbour St",
			Items:           []model.ItemDirective{{SKU: strPtr("P001"), Quantity: intPtr(1)}},
		})
		require.NoError(t, err)
		require.Len(t, resp.Items, 1)
		itemID := resp.Items[0].ID

		// The catalog price moves between writes.
		_, err = testDB.Pool.Exec(ctx,
			"UPDATE products SET price = $1 WHERE sku = 'P001'",
			decimal.RequireFromString("12.50"))
		require.NoError(t, err)

		resp, err = svc.ReconcileItems(ctx, resp.Order.ID, []model.ItemDirective{
			{ItemID: &itemID, Quantity: intPtr(3)},
		})
		require.NoError(t, err)

		require.Len(t, resp.Items, 1)
		assert.True(t, resp.Items[0].UnitPrice.Equal(decimal.RequireFromString("12.50")))

		total := storedTotal(t, testDB.Pool, resp.Order.ID)
		assert.True(t, total.Equal(decimal.RequireFromString("37.50")),
			"expected 37.50, got %s", total)
	})

	t.Run("deleted product leaves the frozen price behind", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedProducts(t, testDB.Pool)

		resp, err := svc.Create(ctx, &model.CreateOrderRequest{
			ShippingAddress: "12 Harbour St",
			Items:           []model.ItemDirective{{SKU: strPtr("P003"), Quantity: intPtr(1)}},
		})
		require.NoError(t, err)

		require.NoError(t, productRepo.Delete(ctx, "P003"))

		// An empty batch recomputes the total over the surviving items.
		resp, err = svc.ReconcileItems(ctx, resp.Order.ID, nil)
		require.NoError(t, err)

		require.Len(t, resp.Items, 1)
		assert.Nil(t, resp.Items[0].SKU)
		assert.True(t, resp.Items[0].UnitPrice.Equal(decimal.RequireFromString("30.00")))

		total := storedTotal(t, testDB.Pool, resp.Order.ID)
		assert.True(t, total.Equal(decimal.RequireFromString("30.00")))
	})

	t.Run("unknown product skips the line and commits the rest", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedProducts(t, testDB.Pool)

		resp, err := svc.Create(ctx, &model.CreateOrderRequest{
			ShippingAddress: "12 Harbour St",
		})
		require.NoError(t, err)

		resp, err = svc.ReconcileItems(ctx, resp.Order.ID, []model.ItemDirective{
			{SKU: strPtr("GHOST"), Quantity: intPtr(2)},
			{SKU: strPtr("P002"), Quantity: intPtr(1)},
		})
		require.NoError(t, err)

		assert.Equal(t, []int{0}, resp.SkippedLines)
		require.Len(t, resp.Items, 1)

		total := storedTotal(t, testDB.Pool, resp.Order.ID)
		assert.True(t, total.Equal(decimal.RequireFromString("15.00")))
	})

	t.Run("invalid quantity rejects the whole batch", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedProducts(t, testDB.Pool)

		resp, err := svc.Create(ctx, &model.CreateOrderRequest{
			ShippingAddress: "12 Harbour St",
			Items:           []model.ItemDirective{{SKU: strPtr("P001"), Quantity: intPtr(1)}},
		})
		require.NoError(t, err)

		_, err = svc.ReconcileItems(ctx, resp.Order.ID, []model.ItemDirective{
			{SKU: strPtr("P002"), Quantity: intPtr(5)},
			{SKU: strPtr("P001"), Quantity: intPtr(-1)},
		})
		require.Error(t, err)
		assert.Equal(t, model.ErrInvalidQuantity, err)

		// Nothing moved: still one line, total unchanged.
		after, err := svc.GetByID(ctx, resp.Order.ID)
		require.NoError(t, err)
		assert.Len(t, after.Items, 1)
		assert.True(t, storedTotal(t, testDB.Pool, resp.Order.ID).
			Equal(decimal.RequireFromString("10.00")))
	})

	// Known limitation, not a guarantee: there is no locking beyond
	// transaction isolation, so two batches editing the same order are
	// last-committed-wins at the item level. Interleaved concurrent batches
	// can lose each other's item edits; what IS guaranteed is that every
	// committed state has a total matching its items. This subtest pins the
	// sequential form of that behaviour only.
	t.Run("later batch wins over an earlier one", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedProducts(t, testDB.Pool)

		resp, err := svc.Create(ctx, &model.CreateOrderRequest{
			ShippingAddress: "12 Harbour St",
			Items:           []model.ItemDirective{{SKU: strPtr("P001"), Quantity: intPtr(1)}},
		})
		require.NoError(t, err)
		itemID := resp.Items[0].ID

		_, err = svc.ReconcileItems(ctx, resp.Order.ID, []model.ItemDirective{
			{ItemID: &itemID, Quantity: intPtr(5)},
		})
		require.NoError(t, err)

		resp, err = svc.ReconcileItems(ctx, resp.Order.ID, []model.ItemDirective{
			{ItemID: &itemID, Quantity: intPtr(2)},
		})
		require.NoError(t, err)

		// The second batch's quantity stands, and the total tracks it.
		require.Len(t, resp.Items, 1)
		assert.Equal(t, 2, resp.Items[0].Quantity)
		assert.True(t, storedTotal(t, testDB.Pool, resp.Order.ID).
			Equal(decimal.RequireFromString("20.00")))
	})

	t.Run("order delete cascades its items", func(t *testing.T) {
		CleanupDB(t, testDB.Pool)
		SeedProducts(t, testDB.Pool)

		resp, err := svc.Create(ctx, &model.CreateOrderRequest{
			ShippingAddress: "12 Harbour St",
			Items:           []model.ItemDirective{{SKU: strPtr("P001"), Quantity: intPtr(2)}},
		})
		require.NoError(t, err)

		require.NoError(t, svc.Delete(ctx, resp.Order.ID))

		var count int
		err = testDB.Pool.QueryRow(ctx,
			"SELECT COUNT(*) FROM order_items WHERE order_id = $1", resp.Order.ID,
		).Scan(&count)
		require.NoError(t, err)
		assert.Zero(t, count)
	})
}
