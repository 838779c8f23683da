package repository

import (
	"context"
	"fmt"

	"auroramart/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

const customerColumns = "id, email, name, age, gender, employment_status, occupation, education, household_size, has_children, monthly_income, preferred_category, created_at"

// customerRepository implements CustomerRepository using PostgreSQL.
type customerRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCustomerRepository creates a new PostgreSQL-backed customer repository.
func NewCustomerRepository(pool *pgxpool.Pool, logger zerolog.Logger) CustomerRepository {
	return &customerRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "customer").Logger(),
	}
}

func scanCustomer(row pgx.Row, c *model.Customer) error {
	return row.Scan(
		&c.ID,
		&c.Email,
		&c.Name,
		&c.Age,
		&c.Gender,
		&c.EmploymentStatus,
		&c.Occupation,
		&c.Education,
		&c.HouseholdSize,
		&c.HasChildren,
		&c.MonthlyIncome,
		&c.PreferredCategory,
		&c.CreatedAt,
	)
}

// Create inserts a new customer.
func (r *customerRepository) Create(ctx context.Context, customer *model.Customer) error {
	query := `
		INSERT INTO customers (id, email, name, age, gender, employment_status, occupation, education,
		                       household_size, has_children, monthly_income, preferred_category, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.pool.Exec(ctx, query,
		customer.ID,
		customer.Email,
		customer.Name,
		customer.Age,
		customer.Gender,
		customer.EmploymentStatus,
		customer.Occupation,
		customer.Education,
		customer.HouseholdSize,
		customer.HasChildren,
		customer.MonthlyIncome,
		customer.PreferredCategory,
		customer.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			r.logger.Warn().Str("email", customer.Email).Msg("duplicate customer email")
			return model.ErrDuplicateEmail
		}
		r.logger.Error().Err(err).Str("customer_id", customer.ID.String()).Msg("failed to create customer")
		return fmt.Errorf("failed to create customer: %w", err)
	}

	r.logger.Debug().Str("customer_id", customer.ID.String()).Msg("customer created")
	return nil
}

// GetByID retrieves a customer, or nil when it does not exist.
func (r *customerRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	query := fmt.Sprintf("SELECT %s FROM customers WHERE id = $1", customerColumns)

	var c model.Customer
	err := scanCustomer(r.pool.QueryRow(ctx, query, id), &c)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("customer_id", id.String()).Msg("customer not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("customer_id", id.String()).Msg("failed to query customer")
		return nil, fmt.Errorf("failed to query customer: %w", err)
	}

	return &c, nil
}

// List retrieves customers, newest first with the ID as tiebreak.
func (r *customerRepository) List(ctx context.Context, limit, offset int) ([]model.Customer, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM customers
		ORDER BY created_at DESC, id
		LIMIT $1 OFFSET $2
	`, customerColumns)

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query customers")
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}
	defer rows.Close()

	var customers []model.Customer
	for rows.Next() {
		var c model.Customer
		if err := scanCustomer(rows, &c); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan customer row")
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating customers: %w", err)
	}

	return customers, nil
}

// Update rewrites all mutable fields of an existing customer.
func (r *customerRepository) Update(ctx context.Context, customer *model.Customer) error {
	query := `
		UPDATE customers
		SET email = $2, name = $3, age = $4, gender = $5, employment_status = $6,
		    occupation = $7, education = $8, household_size = $9, has_children = $10,
		    monthly_income = $11, preferred_category = $12
		WHERE id = $1
	`

	tag, err := r.pool.Exec(ctx, query,
		customer.ID,
		customer.Email,
		customer.Name,
		customer.Age,
		customer.Gender,
		customer.EmploymentStatus,
		customer.Occupation,
		customer.Education,
		customer.HouseholdSize,
		customer.HasChildren,
		customer.MonthlyIncome,
		customer.PreferredCategory,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.ErrDuplicateEmail
		}
		r.logger.Error().Err(err).Str("customer_id", customer.ID.String()).Msg("failed to update customer")
		return fmt.Errorf("failed to update customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCustomerNotFound
	}

	return nil
}

// Delete removes a customer. Orders keep their rows; the customer link is
// set to NULL by the foreign key.
func (r *customerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, "DELETE FROM customers WHERE id = $1", id)
	if err != nil {
		r.logger.Error().Err(err).Str("customer_id", id.String()).Msg("failed to delete customer")
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrCustomerNotFound
	}

	r.logger.Debug().Str("customer_id", id.String()).Msg("customer deleted")
	return nil
}

// Count returns the total number of customers.
func (r *customerRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM customers").Scan(&count); err != nil {
		r.logger.Error().Err(err).Msg("failed to count customers")
		return 0, fmt.Errorf("failed to count customers: %w", err)
	}
	return count, nil
}

// SegmentSummary returns the most common preferred categories.
func (r *customerRepository) SegmentSummary(ctx context.Context, limit int) ([]model.SegmentCount, error) {
	query := `
		SELECT preferred_category, COUNT(*) AS n
		FROM customers
		WHERE preferred_category <> ''
		GROUP BY preferred_category
		ORDER BY n DESC, preferred_category
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query segment summary")
		return nil, fmt.Errorf("failed to query segment summary: %w", err)
	}
	defer rows.Close()

	var segments []model.SegmentCount
	for rows.Next() {
		var s model.SegmentCount
		if err := rows.Scan(&s.Category, &s.Count); err != nil {
			return nil, fmt.Errorf("failed to scan segment row: %w", err)
		}
		segments = append(segments, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating segments: %w", err)
	}

	return segments, nil
}
