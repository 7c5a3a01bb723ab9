package reporting

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/pkg/utils"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Aggregator faz o pivot dos pedidos por mês e região
type Aggregator struct {
	locale language.Tag
}

func NewAggregator(locale language.Tag) *Aggregator {
	return &Aggregator{locale: locale}
}

// regionBucket acumula os clientes de uma região mantendo a ordem de inserção
type regionBucket struct {
	regionName string
	customers  []domain.CustomerAmount
	index      map[string]int
	total      decimal.Decimal
}

type monthBucket struct {
	month   string
	regions map[string]*regionBucket
	total   decimal.Decimal
}

// Aggregate agrupa os pedidos por mês (YYYY-MM) e depois por região, somando os
// pedidos do mesmo cliente. Os percentuais só são calculados depois que todos os
// totais do mês são conhecidos. A entrada não é alterada.
func (a *Aggregator) Aggregate(rows []domain.OrderRecord) []domain.RegionMonthAggregate {
	months := make(map[string]*monthBucket)

	for _, row := range rows {
		monthKey := row.MonthKey()
		month, exists := months[monthKey]
		if !exists {
			month = &monthBucket{month: monthKey, regions: make(map[string]*regionBucket)}
			months[monthKey] = month
		}

		regionName := normalizeRegion(row.RegionName)
		region, exists := month.regions[regionName]
		if !exists {
			region = &regionBucket{regionName: regionName, index: make(map[string]int)}
			month.regions[regionName] = region
		}

		region.add(row)
		month.total = month.total.Add(row.Amount)
	}

	monthKeys := make([]string, 0, len(months))
	for key := range months {
		monthKeys = append(monthKeys, key)
	}
	sort.Strings(monthKeys)

	// collate.Collator não é seguro para uso concorrente, um por chamada
	collator := collate.New(a.locale)

	result := make([]domain.RegionMonthAggregate, 0)
	for _, key := range monthKeys {
		month := months[key]

		regionNames := make([]string, 0, len(month.regions))
		for name := range month.regions {
			regionNames = append(regionNames, name)
		}
		sort.Slice(regionNames, func(i, j int) bool {
			return collator.CompareString(regionNames[i], regionNames[j]) < 0
		})

		for _, name := range regionNames {
			region := month.regions[name]
			result = append(result, domain.RegionMonthAggregate{
				Month:             month.month,
				RegionName:        region.regionName,
				Customers:         region.customers,
				RegionTotal:       region.total,
				PercentageOfMonth: utils.Percentage(region.total, month.total),
			})
		}
	}

	return result
}

func (b *regionBucket) add(row domain.OrderRecord) {
	b.total = b.total.Add(row.Amount)

	if i, exists := b.index[row.CustomerCode]; exists {
		b.customers[i].Amount = b.customers[i].Amount.Add(row.Amount)
		return
	}

	b.index[row.CustomerCode] = len(b.customers)
	b.customers = append(b.customers, domain.CustomerAmount{
		CustomerCode: row.CustomerCode,
		CompanyName:  row.CompanyName,
		Amount:       row.Amount,
	})
}

func normalizeRegion(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.UnclassifiedRegion
	}
	return name
}
