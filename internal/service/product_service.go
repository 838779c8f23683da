package service

import (
	"context"
	"fmt"
	"time"

	"auroramart/internal/model"
	"auroramart/internal/repository"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

var ratingMax = decimal.NewFromInt(5)

// productService implements ProductService.
type productService struct {
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(productRepo repository.ProductRepository, logger zerolog.Logger) ProductService {
	return &productService{
		productRepo: productRepo,
		logger:      logger.With().Str("service", "product").Logger(),
	}
}

// List retrieves products matching the filter.
func (s *productService) List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	if filter.Limit > 200 {
		filter.Limit = 200
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	switch filter.Sort {
	case "", model.ProductSortName, model.ProductSortPrice, model.ProductSortRating:
	default:
		return nil, model.NewDomainError(model.ErrCodeValidation,
			fmt.Sprintf("Unknown sort key %q", filter.Sort))
	}

	return s.productRepo.List(ctx, filter)
}

// GetBySKU retrieves a single product, or nil when it does not exist.
func (s *productService) GetBySKU(ctx context.Context, sku string) (*model.Product, error) {
	return s.productRepo.GetBySKU(ctx, sku)
}

// Create adds a new product to the catalog.
func (s *productService) Create(ctx context.Context, req *model.ProductRequest) (*model.Product, error) {
	if err := validateProductRequest(req, true); err != nil {
		return nil, err
	}

	product := &model.Product{
		SKU:              req.SKU,
		Name:             req.Name,
		Description:      req.Description,
		Category:         req.Category,
		Subcategory:      req.Subcategory,
		Price:            req.Price,
		Rating:           req.Rating,
		Stock:            req.Stock,
		ReorderThreshold: req.ReorderThreshold,
		CreatedAt:        time.Now(),
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	s.logger.Info().Str("sku", product.SKU).Msg("product created")
	return product, nil
}

// Update rewrites an existing product. The SKU in the path wins; the request
// body cannot rename a product.
func (s *productService) Update(ctx context.Context, sku string, req *model.ProductRequest) (*model.Product, error) {
	if err := validateProductRequest(req, false); err != nil {
		return nil, err
	}

	existing, err := s.productRepo.GetBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, model.ErrProductNotFound
	}

	existing.Name = req.Name
	existing.Description = req.Description
	existing.Category = req.Category
	existing.Subcategory = req.Subcategory
	existing.Price = req.Price
	existing.Rating = req.Rating
	existing.Stock = req.Stock
	existing.ReorderThreshold = req.ReorderThreshold

	if err := s.productRepo.Update(ctx, existing); err != nil {
		return nil, err
	}

	s.logger.Info().Str("sku", sku).Msg("product updated")
	return existing, nil
}

// Delete removes a product from the catalog. Order items pointing at it keep
// their frozen price and lose the link.
func (s *productService) Delete(ctx context.Context, sku string) error {
	if err := s.productRepo.Delete(ctx, sku); err != nil {
		return err
	}

	s.logger.Info().Str("sku", sku).Msg("product deleted")
	return nil
}

// validateProductRequest checks the fields common to create and update.
// requireSKU is false on update, where the SKU comes from the path.
func validateProductRequest(req *model.ProductRequest, requireSKU bool) error {
	if req == nil {
		return model.NewDomainError(model.ErrCodeValidation, "Product request is required")
	}
	if requireSKU && req.SKU == "" {
		return model.NewDomainError(model.ErrCodeMissingField, "SKU is required")
	}
	if req.Name == "" {
		return model.NewDomainError(model.ErrCodeMissingField, "Name is required")
	}
	if req.Price.IsNegative() {
		return model.NewDomainError(model.ErrCodeValidation, "Price cannot be negative")
	}
	if req.Rating.IsNegative() || req.Rating.GreaterThan(ratingMax) {
		return model.NewDomainError(model.ErrCodeValidation, "Rating must be between 0 and 5")
	}
	if req.Stock < 0 {
		return model.NewDomainError(model.ErrCodeValidation, "Stock cannot be negative")
	}
	if req.ReorderThreshold < 0 {
		return model.NewDomainError(model.ErrCodeValidation, "Reorder threshold cannot be negative")
	}
	return nil
}
