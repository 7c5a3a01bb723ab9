package domain

import "github.com/shopspring/decimal"

// CustomerAmount é o total de um cliente dentro de um bucket mês/região
type CustomerAmount struct {
	CustomerCode string          `json:"customer_code"`
	CompanyName  string          `json:"company_name"`
	Amount       decimal.Decimal `json:"amount"`
}

// RegionMonthAggregate é o resultado do pivot de pedidos por mês e região.
// RegionTotal é sempre a soma de Customers[].Amount e PercentageOfMonth
// é RegionTotal / total do mês * 100 com duas casas decimais.
type RegionMonthAggregate struct {
	Month             string           `json:"month"`
	RegionName        string           `json:"region_name"`
	Customers         []CustomerAmount `json:"customers"`
	RegionTotal       decimal.Decimal  `json:"region_total"`
	PercentageOfMonth decimal.Decimal  `json:"percentage"`
}

// CustomerShare é a participação de um cliente no total da região
type CustomerShare struct {
	CustomerCode string          `json:"customer_code"`
	CompanyName  string          `json:"company_name"`
	Amount       decimal.Decimal `json:"amount"`
	Share        decimal.Decimal `json:"share"`
}

// RegionSeriesPoint é um ponto da série mês a mês de uma região
type RegionSeriesPoint struct {
	Month     string           `json:"month"`
	Total     decimal.Decimal  `json:"total"`
	ChangePct *decimal.Decimal `json:"change_pct"`
}

// RegionDrilldown alimenta a barra lateral do gráfico de vendas mensais
type RegionDrilldown struct {
	Month       string              `json:"month"`
	RegionName  string              `json:"region_name"`
	RegionTotal decimal.Decimal     `json:"region_total"`
	Percentage  decimal.Decimal     `json:"percentage"`
	Customers   []CustomerShare     `json:"customers"`
	Series      []RegionSeriesPoint `json:"series"`
}
