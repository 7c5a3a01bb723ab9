package reporting

import (
	"context"

	"github.com/vfg2006/sales-dashboard-api/internal/domain"
)

// Reporter expõe as duas funções chamáveis do dashboard e o drill-down de região
type Reporter interface {
	// GetMonthlySalesByRegion busca os pedidos do período e faz o pivot por mês e região
	GetMonthlySalesByRegion(ctx context.Context, period domain.Period) ([]domain.RegionMonthAggregate, error)

	// GetRegionDrilldown detalha um bucket mês/região do pivot
	GetRegionDrilldown(ctx context.Context, period domain.Period, month, region string) (*domain.RegionDrilldown, error)

	// GetCustomerQuadrant retorna os pontos do gráfico de quadrantes
	GetCustomerQuadrant(ctx context.Context, filters domain.TrendFilters) ([]domain.CustomerTrendPoint, error)
}
