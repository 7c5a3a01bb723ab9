package reporting

import (
	"context"
	"fmt"

	"github.com/vfg2006/sales-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
	"github.com/vfg2006/sales-dashboard-api/pkg/utils"
)

type Service struct {
	orderRepository repository.OrderRepository
	trendRepository repository.TrendRepository
	aggregator      *Aggregator
}

func NewService(
	orderRepo repository.OrderRepository,
	trendRepo repository.TrendRepository,
	aggregator *Aggregator,
) Reporter {
	return &Service{
		orderRepository: orderRepo,
		trendRepository: trendRepo,
		aggregator:      aggregator,
	}
}

func (s *Service) GetMonthlySalesByRegion(ctx context.Context, period domain.Period) ([]domain.RegionMonthAggregate, error) {
	if err := period.Validate(); err != nil {
		return nil, err
	}

	rows, err := s.orderRepository.ListOrderRecords(ctx, period)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("monthly-sales: falha ao buscar pedidos")
		return nil, fmt.Errorf("falha ao buscar pedidos: %w", err)
	}

	aggregates := s.aggregator.Aggregate(rows)

	log.ForContext(ctx).WithFields(log.Fields{
		"rows":       len(rows),
		"aggregates": len(aggregates),
	}).Debug("monthly-sales: pivot concluído")

	return aggregates, nil
}

func (s *Service) GetRegionDrilldown(ctx context.Context, period domain.Period, month, region string) (*domain.RegionDrilldown, error) {
	if _, err := utils.ParseMonth(month); err != nil {
		return nil, domain.ErrInvalidMonth
	}

	aggregates, err := s.GetMonthlySalesByRegion(ctx, period)
	if err != nil {
		return nil, err
	}

	return Drilldown(aggregates, month, normalizeRegion(region))
}

func (s *Service) GetCustomerQuadrant(ctx context.Context, filters domain.TrendFilters) ([]domain.CustomerTrendPoint, error) {
	rows, err := s.trendRepository.ListTrendRows(ctx, filters)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("customer-quadrant: falha ao buscar tendências")
		return nil, fmt.Errorf("falha ao buscar tendências: %w", err)
	}

	return TransformQuadrant(rows), nil
}
