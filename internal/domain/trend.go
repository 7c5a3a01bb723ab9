package domain

import "github.com/shopspring/decimal"

// TrendRow é uma linha crua da view de inclinações de tendência por cliente.
// As inclinações são nulas quando o cliente não tem histórico suficiente.
type TrendRow struct {
	CustomerID         int64
	CustomerCode       string
	CompanyName        string
	Country            string
	RegionName         string
	SalesOwner         string
	ShortTrendSlope    *float64
	LongTrendSlope     *float64
	TrailingYearAmount *decimal.Decimal
	TotalAmount        decimal.Decimal
}

// CustomerTrendPoint é um ponto do gráfico de quadrantes
type CustomerTrendPoint struct {
	ID                 int64            `json:"id"`
	CustomerCode       string           `json:"customerCode"`
	DisplayName        string           `json:"name"`
	ShortTermSlope     float64          `json:"x"`
	LongTermSlope      float64          `json:"y"`
	TrailingYearAmount *decimal.Decimal `json:"z"`
	TotalAmount        decimal.Decimal  `json:"totalAmount"`
	Country            string           `json:"country"`
	RegionName         string           `json:"region"`
	SalesOwner         string           `json:"sales"`
}

// TrendFilters restringe as linhas de tendência buscadas
type TrendFilters struct {
	RegionName string
	SalesOwner string
}
