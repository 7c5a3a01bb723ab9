package reporting

import (
	"sort"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/pkg/utils"
)

// Drilldown monta a barra lateral de um bucket mês/região: clientes ordenados
// por valor com a participação na região e a série mês a mês da região em
// todos os meses presentes no agregado.
func Drilldown(aggregates []domain.RegionMonthAggregate, month, region string) (*domain.RegionDrilldown, error) {
	var bucket *domain.RegionMonthAggregate
	for i := range aggregates {
		if aggregates[i].Month == month && aggregates[i].RegionName == region {
			bucket = &aggregates[i]
			break
		}
	}

	if bucket == nil {
		return nil, domain.ErrRegionNotFound
	}

	shares := make([]domain.CustomerShare, 0, len(bucket.Customers))
	for _, customer := range bucket.Customers {
		shares = append(shares, domain.CustomerShare{
			CustomerCode: customer.CustomerCode,
			CompanyName:  customer.CompanyName,
			Amount:       customer.Amount,
			Share:        utils.Percentage(customer.Amount, bucket.RegionTotal),
		})
	}
	sort.SliceStable(shares, func(i, j int) bool {
		return shares[i].Amount.GreaterThan(shares[j].Amount)
	})

	return &domain.RegionDrilldown{
		Month:       bucket.Month,
		RegionName:  bucket.RegionName,
		RegionTotal: bucket.RegionTotal,
		Percentage:  bucket.PercentageOfMonth,
		Customers:   shares,
		Series:      RegionSeries(aggregates, region),
	}, nil
}

// RegionSeries retorna o total da região em cada mês do agregado e a variação
// percentual em relação ao mês anterior. Meses sem a região contam como zero.
func RegionSeries(aggregates []domain.RegionMonthAggregate, region string) []domain.RegionSeriesPoint {
	totals := make(map[string]decimal.Decimal)
	months := make([]string, 0)
	for _, aggregate := range aggregates {
		if _, seen := totals[aggregate.Month]; !seen {
			months = append(months, aggregate.Month)
			totals[aggregate.Month] = decimal.Zero
		}
		if aggregate.RegionName == region {
			totals[aggregate.Month] = totals[aggregate.Month].Add(aggregate.RegionTotal)
		}
	}
	sort.Strings(months)

	series := make([]domain.RegionSeriesPoint, 0, len(months))
	for i, month := range months {
		point := domain.RegionSeriesPoint{Month: month, Total: totals[month]}
		if i > 0 {
			point.ChangePct = changePercent(totals[months[i-1]], totals[month])
		}
		series = append(series, point)
	}

	return series
}

func changePercent(previous, current decimal.Decimal) *decimal.Decimal {
	if previous.IsZero() {
		return nil
	}

	change := utils.Percentage(current.Sub(previous), previous)
	return &change
}
