package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"auroramart/internal/model"
	"auroramart/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// orderService implements OrderService.
type orderService struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	defaultQty  int
	logger      zerolog.Logger
}

// NewOrderService creates a new order service. defaultQty is used when a
// directive names a product but omits the quantity.
func NewOrderService(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	defaultQty int,
	logger zerolog.Logger,
) OrderService {
	if defaultQty < 1 {
		defaultQty = 1
	}
	return &orderService{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		defaultQty:  defaultQty,
		logger:      logger.With().Str("service", "order").Logger(),
	}
}

// reconcilePlan is the validated shape of a directive batch, built before any
// write so an invalid batch is rejected whole.
type reconcilePlan struct {
	deletes []uuid.UUID
	writes  []plannedWrite
	skipped []int
}

// plannedWrite pairs a surviving directive with its position in the original
// batch, so skips discovered during the write phase can be reported by line.
type plannedWrite struct {
	index     int
	directive model.ItemDirective
}

// planBatch validates the directives and splits them into deletes, writes,
// and skipped blank lines. Any explicit non-positive quantity rejects the
// whole batch.
func (s *orderService) planBatch(directives []model.ItemDirective) (*reconcilePlan, error) {
	plan := &reconcilePlan{}

	for i := range directives {
		d := directives[i]

		if d.Quantity != nil && *d.Quantity <= 0 {
			s.logger.Warn().
				Int("line", i).
				Int("quantity", *d.Quantity).
				Msg("rejecting batch: non-positive quantity")
			return nil, model.ErrInvalidQuantity
		}

		switch {
		case d.Delete:
			if d.ItemID == nil {
				plan.skipped = append(plan.skipped, i)
				continue
			}
			plan.deletes = append(plan.deletes, *d.ItemID)
		case d.Blank():
			plan.skipped = append(plan.skipped, i)
		default:
			plan.writes = append(plan.writes, plannedWrite{index: i, directive: d})
		}
	}

	return plan, nil
}

// applyPlan executes the plan inside tx: deletes first, then updates and
// inserts, then the total recomputed from what was actually persisted.
// Returns the indexes of all skipped lines, sorted.
func (s *orderService) applyPlan(ctx context.Context, tx pgx.Tx, orderID uuid.UUID, plan *reconcilePlan) ([]int, error) {
	skipped := append([]int(nil), plan.skipped...)

	if len(plan.deletes) > 0 {
		if err := s.orderRepo.DeleteItems(ctx, tx, orderID, plan.deletes); err != nil {
			return nil, err
		}
	}

	for _, w := range plan.writes {
		skip, err := s.applyWrite(ctx, tx, orderID, w.directive)
		if err != nil {
			return nil, err
		}
		if skip {
			skipped = append(skipped, w.index)
		}
	}

	total, err := s.orderRepo.SumItemTotals(ctx, tx, orderID)
	if err != nil {
		return nil, err
	}
	if err := s.orderRepo.UpdateTotal(ctx, tx, orderID, total); err != nil {
		return nil, err
	}

	sort.Ints(skipped)
	return skipped, nil
}

// applyWrite applies one update or insert directive. A directive referencing
// a missing item or product is skipped rather than failing the batch; the
// unit price is always re-read from the catalog inside the transaction, never
// taken from the caller.
func (s *orderService) applyWrite(ctx context.Context, tx pgx.Tx, orderID uuid.UUID, d model.ItemDirective) (bool, error) {
	if d.ItemID == nil {
		// New line.
		product, err := s.productRepo.GetBySKUTx(ctx, tx, *d.SKU)
		if err != nil {
			return false, err
		}
		if product == nil {
			s.logger.Warn().
				Str("order_id", orderID.String()).
				Str("sku", *d.SKU).
				Msg("skipping line: unknown product")
			return true, nil
		}

		quantity := s.defaultQty
		if d.Quantity != nil {
			quantity = *d.Quantity
		}

		item := &model.OrderItem{
			ID:        uuid.New(),
			OrderID:   orderID,
			SKU:       &product.SKU,
			Quantity:  quantity,
			UnitPrice: product.Price,
		}
		return false, s.orderRepo.InsertItem(ctx, tx, item)
	}

	item, err := s.orderRepo.GetItemTx(ctx, tx, *d.ItemID)
	if err != nil {
		return false, err
	}
	if item == nil || item.OrderID != orderID {
		s.logger.Warn().
			Str("order_id", orderID.String()).
			Str("item_id", d.ItemID.String()).
			Msg("skipping line: unknown order item")
		return true, nil
	}

	// Resolve the product the line should point at: an explicit SKU swaps
	// it, otherwise the current link is refreshed. A line whose product was
	// deleted keeps its frozen price.
	sku := ""
	if d.SKU != nil && *d.SKU != "" {
		sku = *d.SKU
	} else if item.SKU != nil {
		sku = *item.SKU
	}

	if sku != "" {
		product, err := s.productRepo.GetBySKUTx(ctx, tx, sku)
		if err != nil {
			return false, err
		}
		if product == nil {
			s.logger.Warn().
				Str("order_id", orderID.String()).
				Str("item_id", item.ID.String()).
				Str("sku", sku).
				Msg("skipping line: unknown product")
			return true, nil
		}
		item.SKU = &product.SKU
		item.UnitPrice = product.Price
	}

	if d.Quantity != nil {
		item.Quantity = *d.Quantity
	}

	return false, s.orderRepo.UpdateItem(ctx, tx, item)
}

// Create creates a new order and applies its initial item directives in the
// same transaction.
func (s *orderService) Create(ctx context.Context, req *model.CreateOrderRequest) (*model.OrderResponse, error) {
	if req == nil {
		return nil, model.NewDomainError(model.ErrCodeValidation, "Order request is required")
	}
	if req.ShippingAddress == "" {
		return nil, model.NewDomainError(model.ErrCodeMissingField, "Shipping address is required")
	}

	status := req.Status
	if status == "" {
		status = model.StatusPending
	}
	if !status.Valid() {
		return nil, model.ErrInvalidStatus
	}

	plan, err := s.planBatch(req.Items)
	if err != nil {
		reconcileBatches.WithLabelValues(outcomeRejected).Inc()
		return nil, err
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	order := &model.Order{
		ID:                uuid.New(),
		CustomerID:        req.CustomerID,
		ShippingAddress:   req.ShippingAddress,
		FulfillmentStatus: status,
		TotalAmount:       decimal.Zero,
		PlacedAt:          time.Now(),
	}

	if err = s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
		return nil, err
	}

	var skipped []int
	if skipped, err = s.applyPlan(ctx, tx, order.ID, plan); err != nil {
		reconcileBatches.WithLabelValues(outcomeError).Inc()
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		err = repository.TranslateConflict(err)
		if errors.Is(err, model.ErrTransactionConflict) {
			reconcileBatches.WithLabelValues(outcomeConflict).Inc()
		} else {
			reconcileBatches.WithLabelValues(outcomeError).Inc()
		}
		s.logger.Error().Err(err).Str("order_id", order.ID.String()).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	reconcileBatches.WithLabelValues(outcomeCommitted).Inc()
	if len(skipped) > 0 {
		reconcileSkippedLines.Add(float64(len(skipped)))
	}

	s.logger.Info().
		Str("order_id", order.ID.String()).
		Int("directives", len(req.Items)).
		Int("skipped", len(skipped)).
		Msg("order created")

	return s.response(ctx, order.ID, skipped)
}

// ReconcileItems applies a batch of item directives to an order as one
// transaction. Deletes run before updates and inserts, and the stored total
// is recomputed from the surviving items before commit, so the order is
// internally consistent at every commit point.
//
// Single-writer-per-order assumption: there is no locking beyond the
// database's transaction isolation. Two concurrent batches against the same
// order are last-committed-wins at the item level; recomputing the total
// from the persisted post-state keeps the committed order consistent but
// does not prevent one batch's item edits being overwritten by the other.
// A serialization failure surfaces as ErrTransactionConflict so the caller
// can retry the whole batch.
func (s *orderService) ReconcileItems(ctx context.Context, id uuid.UUID, directives []model.ItemDirective) (*model.OrderResponse, error) {
	plan, err := s.planBatch(directives)
	if err != nil {
		reconcileBatches.WithLabelValues(outcomeRejected).Inc()
		return nil, err
	}

	tx, err := s.orderRepo.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to reconcile order items: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				s.logger.Error().Err(rbErr).Msg("failed to rollback transaction")
			}
		}
	}()

	var order *model.Order
	if order, err = s.orderRepo.GetOrderTx(ctx, tx, id); err != nil {
		return nil, err
	}
	if order == nil {
		err = model.ErrOrderNotFound
		return nil, err
	}

	var skipped []int
	if skipped, err = s.applyPlan(ctx, tx, id, plan); err != nil {
		reconcileBatches.WithLabelValues(outcomeError).Inc()
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		err = repository.TranslateConflict(err)
		if errors.Is(err, model.ErrTransactionConflict) {
			reconcileBatches.WithLabelValues(outcomeConflict).Inc()
		} else {
			reconcileBatches.WithLabelValues(outcomeError).Inc()
		}
		s.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to commit transaction")
		return nil, fmt.Errorf("failed to reconcile order items: %w", err)
	}

	reconcileBatches.WithLabelValues(outcomeCommitted).Inc()
	if len(skipped) > 0 {
		reconcileSkippedLines.Add(float64(len(skipped)))
	}

	s.logger.Info().
		Str("order_id", id.String()).
		Int("directives", len(directives)).
		Int("deleted", len(plan.deletes)).
		Int("skipped", len(skipped)).
		Msg("order items reconciled")

	return s.response(ctx, id, skipped)
}

// GetByID retrieves an order with its items, or nil when it does not exist.
func (s *orderService) GetByID(ctx context.Context, id uuid.UUID) (*model.OrderResponse, error) {
	order, items, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	if order == nil {
		return nil, nil
	}

	return &model.OrderResponse{Order: *order, Items: items}, nil
}

// List retrieves orders matching the filter, newest first.
func (s *orderService) List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, model.ErrInvalidStatus
	}
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	if filter.Limit > 200 {
		filter.Limit = 200
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	return s.orderRepo.List(ctx, filter)
}

// UpdateHeader updates the order's header fields. Items and total are out of
// reach here; only reconciliation touches them.
func (s *orderService) UpdateHeader(ctx context.Context, id uuid.UUID, req *model.UpdateOrderRequest) (*model.OrderResponse, error) {
	if req == nil {
		return nil, model.NewDomainError(model.ErrCodeValidation, "Order request is required")
	}

	order, _, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}

	if req.CustomerID != nil {
		order.CustomerID = req.CustomerID
	}
	if req.ShippingAddress != nil {
		if *req.ShippingAddress == "" {
			return nil, model.NewDomainError(model.ErrCodeMissingField, "Shipping address is required")
		}
		order.ShippingAddress = *req.ShippingAddress
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, model.ErrInvalidStatus
		}
		order.FulfillmentStatus = *req.Status
	}

	if err := s.orderRepo.UpdateHeader(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info().Str("order_id", id.String()).Msg("order header updated")

	return s.response(ctx, id, nil)
}

// Delete removes an order and its items.
func (s *orderService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.orderRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("order_id", id.String()).Msg("order deleted")
	return nil
}

// response reads the post-commit state of an order and builds the full view.
func (s *orderService) response(ctx context.Context, id uuid.UUID, skipped []int) (*model.OrderResponse, error) {
	order, items, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to read order back: %w", err)
	}
	if order == nil {
		return nil, model.ErrOrderNotFound
	}

	return &model.OrderResponse{
		Order:        *order,
		Items:        items,
		SkippedLines: skipped,
	}, nil
}
