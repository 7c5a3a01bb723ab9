package customer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
	"github.com/vfg2006/sales-dashboard-api/pkg/utils"
)

const (
	MaxPageSize        = 100
	DefaultTrendMonths = 12
	MaxTrendMonths     = 36
)

type Customerer interface {
	List(ctx context.Context, filters domain.CustomerFilters) (*domain.CustomerPage, error)
	GetByCode(ctx context.Context, code string) (*domain.Customer, error)
	OrderTrend(ctx context.Context, code string, months int) ([]domain.MonthlyAmount, error)
	RecentOrders(ctx context.Context, code string, limit int) ([]*domain.Order, error)
}

type Service struct {
	customerRepository repository.CustomerRepository
	orderRepository    repository.OrderRepository
	defaultPageSize    int
	now                func() time.Time
}

func NewService(
	customerRepo repository.CustomerRepository,
	orderRepo repository.OrderRepository,
	defaultPageSize int,
) *Service {
	if defaultPageSize <= 0 || defaultPageSize > MaxPageSize {
		defaultPageSize = 20
	}

	return &Service{
		customerRepository: customerRepo,
		orderRepository:    orderRepo,
		defaultPageSize:    defaultPageSize,
		now:                time.Now,
	}
}

// WithClock troca o relógio usado para montar a série de pedidos
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) List(ctx context.Context, filters domain.CustomerFilters) (*domain.CustomerPage, error) {
	filters = s.normalizeFilters(filters)

	customers, total, err := s.customerRepository.List(ctx, filters)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("customers: falha ao listar clientes")
		return nil, err
	}

	if customers == nil {
		customers = make([]*domain.Customer, 0)
	}

	return &domain.CustomerPage{
		Items:    customers,
		Total:    total,
		Page:     filters.Page,
		PageSize: filters.PageSize,
	}, nil
}

func (s *Service) normalizeFilters(filters domain.CustomerFilters) domain.CustomerFilters {
	if filters.Page < 1 {
		filters.Page = 1
	}

	if filters.PageSize <= 0 {
		filters.PageSize = s.defaultPageSize
	}
	if filters.PageSize > MaxPageSize {
		filters.PageSize = MaxPageSize
	}

	filters.Search = strings.TrimSpace(filters.Search)
	return filters
}

func (s *Service) GetByCode(ctx context.Context, code string) (*domain.Customer, error) {
	customer, err := s.customerRepository.GetByCode(ctx, code)
	if err != nil {
		log.ForContext(ctx).WithError(err).WithField("customer_code", code).
			Error("customers: falha ao buscar cliente")
		return nil, err
	}

	if customer == nil {
		return nil, domain.ErrCustomerNotFound
	}

	return customer, nil
}

// OrderTrend retorna o total de pedidos do cliente em cada um dos últimos
// meses, terminando no mês atual. Meses sem pedidos aparecem com zero.
func (s *Service) OrderTrend(ctx context.Context, code string, months int) ([]domain.MonthlyAmount, error) {
	if months <= 0 {
		months = DefaultTrendMonths
	}
	if months > MaxTrendMonths {
		months = MaxTrendMonths
	}

	currentMonth := utils.FirstDayOfMonth(s.now().UTC())
	period := domain.Period{
		StartDate: currentMonth.AddDate(0, -(months - 1), 0),
		EndDate:   currentMonth.AddDate(0, 1, -1),
	}

	totals, err := s.orderRepository.MonthlyTotalsByCustomer(ctx, code, period)
	if err != nil {
		log.ForContext(ctx).WithError(err).WithField("customer_code", code).
			Error("order-trend: falha ao buscar totais mensais")
		return nil, fmt.Errorf("falha ao buscar totais mensais: %w", err)
	}

	return fillMonths(period, totals), nil
}

func fillMonths(period domain.Period, totals []domain.MonthlyAmount) []domain.MonthlyAmount {
	byMonth := make(map[string]decimal.Decimal, len(totals))
	for _, total := range totals {
		byMonth[total.Month] = byMonth[total.Month].Add(total.Amount)
	}

	keys := utils.EnumerateMonths(period.StartDate, period.EndDate)
	series := make([]domain.MonthlyAmount, 0, len(keys))
	for _, key := range keys {
		series = append(series, domain.MonthlyAmount{Month: key, Amount: byMonth[key]})
	}

	return series
}

func (s *Service) RecentOrders(ctx context.Context, code string, limit int) ([]*domain.Order, error) {
	if limit <= 0 || limit > MaxPageSize {
		limit = s.defaultPageSize
	}

	orders, err := s.orderRepository.ListByCustomer(ctx, code, limit)
	if err != nil {
		log.ForContext(ctx).WithError(err).WithField("customer_code", code).
			Error("customers: falha ao buscar pedidos recentes")
		return nil, err
	}

	return orders, nil
}
