package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// UnclassifiedRegion é o rótulo usado quando o pedido não tem região associada
const UnclassifiedRegion = "unclassified"

// MonthLayout é o formato das chaves de mês (YYYY-MM)
const MonthLayout = "2006-01"

// OrderRecord representa uma linha de pedido já marcada com mês e região
type OrderRecord struct {
	Month        time.Time       `json:"month"`
	RegionName   string          `json:"region_name"`
	CustomerCode string          `json:"customer_code"`
	CompanyName  string          `json:"company_name"`
	Amount       decimal.Decimal `json:"amount"`
}

// MonthKey retorna o mês do pedido no formato YYYY-MM
func (o OrderRecord) MonthKey() string {
	return o.Month.Format(MonthLayout)
}

// Order é um pedido individual, usado na gaveta do cliente
type Order struct {
	ID           int64           `json:"id"`
	OrderNumber  string          `json:"order_number"`
	CustomerCode string          `json:"customer_code"`
	OrderDate    time.Time       `json:"order_date"`
	Amount       decimal.Decimal `json:"amount"`
	Status       string          `json:"status"`
}

// MonthlyAmount é um ponto da série mensal de pedidos de um cliente
type MonthlyAmount struct {
	Month  string          `json:"month"`
	Amount decimal.Decimal `json:"amount"`
}

// Period delimita um intervalo de datas inclusivo
type Period struct {
	StartDate time.Time
	EndDate   time.Time
}

// Validate garante que o período esteja preenchido e em ordem
func (p Period) Validate() error {
	if p.StartDate.IsZero() || p.EndDate.IsZero() {
		return ErrInvalidPeriod
	}
	if p.StartDate.After(p.EndDate) {
		return ErrInvalidPeriod
	}
	return nil
}
