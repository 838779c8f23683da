package service

import (
	"context"

	"auroramart/internal/model"
	"auroramart/internal/predictor"
	"auroramart/internal/repository"

	"github.com/rs/zerolog"
)

const (
	dashboardLowStockLimit = 10
	dashboardSegmentLimit  = 5
)

// dashboardService implements DashboardService.
type dashboardService struct {
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	orderRepo    repository.OrderRepository
	predictor    predictor.Predictor
	logger       zerolog.Logger
}

// NewDashboardService creates a new dashboard service.
func NewDashboardService(
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	orderRepo repository.OrderRepository,
	predictor predictor.Predictor,
	logger zerolog.Logger,
) DashboardService {
	return &dashboardService{
		productRepo:  productRepo,
		customerRepo: customerRepo,
		orderRepo:    orderRepo,
		predictor:    predictor,
		logger:       logger.With().Str("service", "dashboard").Logger(),
	}
}

// Summary returns the admin dashboard aggregate.
func (s *dashboardService) Summary(ctx context.Context) (*model.DashboardSummary, error) {
	productCount, err := s.productRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	customerCount, err := s.customerRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	orderCount, err := s.orderRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	lowStock, err := s.productRepo.LowStock(ctx, dashboardLowStockLimit)
	if err != nil {
		return nil, err
	}

	segments, err := s.customerRepo.SegmentSummary(ctx, dashboardSegmentLimit)
	if err != nil {
		return nil, err
	}

	info := s.predictor.Info()

	return &model.DashboardSummary{
		ProductCount:     productCount,
		CustomerCount:    customerCount,
		OrderCount:       orderCount,
		LowStockProducts: lowStock,
		TopSegments:      segments,
		Predictor: model.PredictorStatus{
			Loaded:    info.Loaded,
			Name:      info.Name,
			Version:   info.Version,
			TrainedAt: info.TrainedAt,
			Accuracy:  info.Accuracy,
		},
	}, nil
}
