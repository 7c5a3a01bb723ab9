package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Customer struct {
	ID          int64           `json:"id"`
	Code        string          `json:"code"`
	CompanyName string          `json:"company_name"`
	Country     string          `json:"country"`
	RegionName  string          `json:"region_name"`
	SalesOwner  string          `json:"sales_owner"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// CustomerFilters são os filtros da listagem paginada de clientes
type CustomerFilters struct {
	Page       int
	PageSize   int
	Search     string
	RegionName string
	SalesOwner string
}

// Offset retorna o deslocamento da página atual
func (f CustomerFilters) Offset() int {
	if f.Page <= 1 {
		return 0
	}
	return (f.Page - 1) * f.PageSize
}

type CustomerPage struct {
	Items    []*Customer `json:"items"`
	Total    int         `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"page_size"`
}
