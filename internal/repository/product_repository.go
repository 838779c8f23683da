package repository

import (
	"context"
	"fmt"
	"strings"

	"auroramart/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const productColumns = "sku, name, description, category, subcategory, price, rating, stock, reorder_threshold, created_at"

// productRepository implements ProductRepository using PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

func scanProduct(row pgx.Row, p *model.Product) error {
	return row.Scan(
		&p.SKU,
		&p.Name,
		&p.Description,
		&p.Category,
		&p.Subcategory,
		&p.Price,
		&p.Rating,
		&p.Stock,
		&p.ReorderThreshold,
		&p.CreatedAt,
	)
}

// List retrieves products matching the filter with deterministic ordering.
func (r *productRepository) List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	var (
		conditions []string
		args       []any
	)

	if filter.Category != "" {
		args = append(args, filter.Category)
		conditions = append(conditions, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.MinPrice != nil {
		args = append(args, *filter.MinPrice)
		conditions = append(conditions, fmt.Sprintf("price >= $%d", len(args)))
	}
	if filter.MaxPrice != nil {
		args = append(args, *filter.MaxPrice)
		conditions = append(conditions, fmt.Sprintf("price <= $%d", len(args)))
	}
	if filter.LowStock {
		conditions = append(conditions, "stock <= reorder_threshold")
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	// Sort key is validated against a fixed set; never interpolate caller
	// input into ORDER BY.
	sortCol := "name"
	switch filter.Sort {
	case model.ProductSortPrice:
		sortCol = "price"
	case model.ProductSortRating:
		sortCol = "rating"
	case model.ProductSortName, "":
		sortCol = "name"
	default:
		return nil, fmt.Errorf("unknown product sort key: %s", filter.Sort)
	}
	direction := "ASC"
	if filter.Desc {
		direction = "DESC"
	}

	args = append(args, filter.Limit)
	limitPos := len(args)
	args = append(args, filter.Offset)
	offsetPos := len(args)

	query := fmt.Sprintf(`
		SELECT %s
		FROM products
		%s
		ORDER BY %s %s, sku
		LIMIT $%d OFFSET $%d
	`, productColumns, where, sortCol, direction, limitPos, offsetPos)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var p model.Product
		if err := scanProduct(rows, &p); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// GetBySKU retrieves a single product by its SKU.
func (r *productRepository) GetBySKU(ctx context.Context, sku string) (*model.Product, error) {
	query := fmt.Sprintf("SELECT %s FROM products WHERE sku = $1", productColumns)

	var p model.Product
	err := scanProduct(r.pool.QueryRow(ctx, query, sku), &p)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("sku", sku).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("sku", sku).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return &p, nil
}

// GetBySKUTx retrieves a product within the provided transaction.
func (r *productRepository) GetBySKUTx(ctx context.Context, tx pgx.Tx, sku string) (*model.Product, error) {
	query := fmt.Sprintf("SELECT %s FROM products WHERE sku = $1", productColumns)

	var p model.Product
	err := scanProduct(tx.QueryRow(ctx, query, sku), &p)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("sku", sku).Msg("failed to query product in transaction")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return &p, nil
}

// Create inserts a new product.
func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	query := `
		INSERT INTO products (sku, name, description, category, subcategory, price, rating, stock, reorder_threshold, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := r.pool.Exec(ctx, query,
		product.SKU,
		product.Name,
		product.Description,
		product.Category,
		product.Subcategory,
		product.Price,
		product.Rating,
		product.Stock,
		product.ReorderThreshold,
		product.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			r.logger.Warn().Str("sku", product.SKU).Msg("duplicate SKU")
			return model.ErrDuplicateSKU
		}
		r.logger.Error().Err(err).Str("sku", product.SKU).Msg("failed to create product")
		return fmt.Errorf("failed to create product: %w", err)
	}

	r.logger.Debug().Str("sku", product.SKU).Msg("product created")
	return nil
}

// Update rewrites all mutable fields of an existing product.
func (r *productRepository) Update(ctx context.Context, product *model.Product) error {
	query := `
		UPDATE products
		SET name = $2, description = $3, category = $4, subcategory = $5,
		    price = $6, rating = $7, stock = $8, reorder_threshold = $9
		WHERE sku = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		product.SKU,
		product.Name,
		product.Description,
		product.Category,
		product.Subcategory,
		product.Price,
		product.Rating,
		product.Stock,
		product.ReorderThreshold,
	)
	if err != nil {
		r.logger.Error().Err(err).Str("sku", product.SKU).Msg("failed to update product")
		return fmt.Errorf("failed to update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrProductNotFound
	}

	return nil
}

// Delete removes a product. Order items referencing it keep their frozen
// unit price; the sku column is set to NULL by the foreign key.
func (r *productRepository) Delete(ctx context.Context, sku string) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM products WHERE sku = $1", sku)
	if err != nil {
		r.logger.Error().Err(err).Str("sku", sku).Msg("failed to delete product")
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrProductNotFound
	}

	r.logger.Debug().Str("sku", sku).Msg("product deleted")
	return nil
}

// LowStock retrieves products at or below their reorder threshold.
func (r *productRepository) LowStock(ctx context.Context, limit int) ([]model.Product, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM products
		WHERE stock <= reorder_threshold
		ORDER BY stock, sku
		LIMIT $1
	`, productColumns)

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query low stock products")
		return nil, fmt.Errorf("failed to query low stock products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var p model.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// Count returns the total number of products.
func (r *productRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM products").Scan(&count); err != nil {
		r.logger.Error().Err(err).Msg("failed to count products")
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}
