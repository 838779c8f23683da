package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"auroramart/internal/model"
	"auroramart/internal/predictor"
	"auroramart/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// customerService implements CustomerService.
type customerService struct {
	customerRepo repository.CustomerRepository
	predictor    predictor.Predictor
	logger       zerolog.Logger
}

// NewCustomerService creates a new customer service.
func NewCustomerService(
	customerRepo repository.CustomerRepository,
	predictor predictor.Predictor,
	logger zerolog.Logger,
) CustomerService {
	return &customerService{
		customerRepo: customerRepo,
		predictor:    predictor,
		logger:       logger.With().Str("service", "customer").Logger(),
	}
}

// List retrieves customers with pagination.
func (s *customerService) List(ctx context.Context, limit, offset int) ([]model.Customer, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	if offset < 0 {
		offset = 0
	}

	return s.customerRepo.List(ctx, limit, offset)
}

// GetByID retrieves a single customer, or nil when it does not exist.
func (s *customerService) GetByID(ctx context.Context, id uuid.UUID) (*model.Customer, error) {
	return s.customerRepo.GetByID(ctx, id)
}

// Create registers a new customer. With no preferred category in the request
// the predictor assigns one; when the predictor is unavailable the field is
// left unset and the miss is logged.
func (s *customerService) Create(ctx context.Context, req *model.CustomerRequest) (*model.Customer, error) {
	if err := validateCustomerRequest(req); err != nil {
		return nil, err
	}

	customer := &model.Customer{
		ID:                uuid.New(),
		Email:             req.Email,
		Name:              req.Name,
		Age:               req.Age,
		Gender:            req.Gender,
		EmploymentStatus:  req.EmploymentStatus,
		Occupation:        req.Occupation,
		Education:         req.Education,
		HouseholdSize:     req.HouseholdSize,
		HasChildren:       req.HasChildren,
		MonthlyIncome:     req.MonthlyIncome,
		PreferredCategory: req.PreferredCategory,
		CreatedAt:         time.Now(),
	}

	if customer.PreferredCategory == "" {
		s.assignCategory(ctx, customer)
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("customer_id", customer.ID.String()).
		Str("preferred_category", customer.PreferredCategory).
		Msg("customer created")

	return customer, nil
}

// Update rewrites an existing customer. The preferred category is
// re-predicted when the request leaves it empty, since the profile fields it
// derives from may have changed.
func (s *customerService) Update(ctx context.Context, id uuid.UUID, req *model.CustomerRequest) (*model.Customer, error) {
	if err := validateCustomerRequest(req); err != nil {
		return nil, err
	}

	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, model.ErrCustomerNotFound
	}

	customer.Email = req.Email
	customer.Name = req.Name
	customer.Age = req.Age
	customer.Gender = req.Gender
	customer.EmploymentStatus = req.EmploymentStatus
	customer.Occupation = req.Occupation
	customer.Education = req.Education
	customer.HouseholdSize = req.HouseholdSize
	customer.HasChildren = req.HasChildren
	customer.MonthlyIncome = req.MonthlyIncome
	customer.PreferredCategory = req.PreferredCategory

	if customer.PreferredCategory == "" {
		s.assignCategory(ctx, customer)
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}

	s.logger.Info().Str("customer_id", id.String()).Msg("customer updated")
	return customer, nil
}

// Delete removes a customer. Orders they placed survive with the customer
// link cleared.
func (s *customerService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.customerRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Str("customer_id", id.String()).Msg("customer deleted")
	return nil
}

// assignCategory fills PreferredCategory from the predictor. A prediction
// failure never fails the customer write; the fallback is an unset category.
func (s *customerService) assignCategory(ctx context.Context, customer *model.Customer) {
	category, err := s.predictor.Predict(ctx, customer.Profile())
	if err != nil {
		if errors.Is(err, predictor.ErrUnavailable) {
			s.logger.Warn().
				Str("customer_id", customer.ID.String()).
				Msg("category predictor unavailable, leaving preferred category unset")
		} else {
			s.logger.Error().
				Err(err).
				Str("customer_id", customer.ID.String()).
				Msg("category prediction failed")
		}
		return
	}

	customer.PreferredCategory = category
}

// validateCustomerRequest checks the fields common to create and update.
func validateCustomerRequest(req *model.CustomerRequest) error {
	if req == nil {
		return model.NewDomainError(model.ErrCodeValidation, "Customer request is required")
	}
	if req.Email == "" {
		return model.NewDomainError(model.ErrCodeMissingField, "Email is required")
	}
	if !strings.Contains(req.Email, "@") {
		return model.NewDomainError(model.ErrCodeValidation, "Email is not valid")
	}
	if req.Name == "" {
		return model.NewDomainError(model.ErrCodeMissingField, "Name is required")
	}
	if req.Age <= 0 {
		return model.NewDomainError(model.ErrCodeValidation, "Age must be positive")
	}
	if req.HouseholdSize < 1 {
		return model.NewDomainError(model.ErrCodeValidation, "Household size must be at least 1")
	}
	if req.MonthlyIncome.IsNegative() {
		return model.NewDomainError(model.ErrCodeValidation, "Monthly income cannot be negative")
	}
	return nil
}
