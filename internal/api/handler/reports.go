package handler

import (
	"net/http"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/reporting"
	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
)

type monthlySalesRequest struct {
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
}

// monthlySalesRow é o formato devolvido pela função monthly_sales_by_region
type monthlySalesRow struct {
	ID          string                  `json:"id"`
	ReportMonth string                  `json:"report_month"`
	RegionName  string                  `json:"region_name"`
	Customers   []domain.CustomerAmount `json:"customers"`
	RegionTotal decimal.Decimal         `json:"region_total"`
	Percentage  decimal.Decimal         `json:"percentage"`
}

func toMonthlySalesRows(aggregates []domain.RegionMonthAggregate) []monthlySalesRow {
	rows := make([]monthlySalesRow, 0, len(aggregates))
	for _, aggregate := range aggregates {
		rows = append(rows, monthlySalesRow{
			ID:          aggregate.Month + ":" + aggregate.RegionName,
			ReportMonth: aggregate.Month,
			RegionName:  aggregate.RegionName,
			Customers:   aggregate.Customers,
			RegionTotal: aggregate.RegionTotal,
			Percentage:  aggregate.PercentageOfMonth,
		})
	}
	return rows
}

// MonthlySalesByRegion responde POST /v1/rpc/monthly_sales_by_region
func MonthlySalesByRegion(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		var request monthlySalesRequest
		if err := decodeJSON(r, &request); err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido", nil)
			return
		}

		if err := validate.Struct(request); err != nil {
			writeValidationError(w, err)
			return
		}

		period, err := parsePeriod(request.StartDate, request.EndDate)
		if err != nil {
			writeServiceError(w, err, "")
			return
		}

		aggregates, err := service.GetMonthlySalesByRegion(r.Context(), period)
		if err != nil {
			writeServiceError(w, err, "Falha ao carregar vendas mensais por região")
			return
		}

		logger.WithFields(log.Fields{
			"start_date": request.StartDate,
			"end_date":   request.EndDate,
			"buckets":    len(aggregates),
		}).Info("monthly-sales: relatório gerado")

		writeJSON(w, r, http.StatusOK, toMonthlySalesRows(aggregates))
	})
}

type quadrantRequest struct {
	Region     string `json:"region" validate:"omitempty,max=120"`
	SalesOwner string `json:"sales_owner" validate:"omitempty,max=120"`
}

// CustomerTrendQuadrant responde POST /v1/rpc/customer_trend_quadrant
func CustomerTrendQuadrant(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var request quadrantRequest
		if r.ContentLength != 0 {
			if err := decodeJSON(r, &request); err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Corpo da requisição inválido", nil)
				return
			}
		}

		if err := validate.Struct(request); err != nil {
			writeValidationError(w, err)
			return
		}

		points, err := service.GetCustomerQuadrant(r.Context(), domain.TrendFilters{
			RegionName: request.Region,
			SalesOwner: request.SalesOwner,
		})
		if err != nil {
			writeServiceError(w, err, "Falha ao carregar quadrante de clientes")
			return
		}

		log.ForContext(r.Context()).WithField("points", len(points)).Info("customer-quadrant: pontos gerados")

		writeJSON(w, r, http.StatusOK, points)
	})
}

type drilldownQuery struct {
	StartDate string `validate:"required,datetime=2006-01-02"`
	EndDate   string `validate:"required,datetime=2006-01-02"`
	Month     string `validate:"required,datetime=2006-01"`
	Region    string `validate:"omitempty,max=120"`
}

// RegionDrilldown responde GET /v1/reports/monthly-sales/drilldown
func RegionDrilldown(service reporting.Reporter) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		request := drilldownQuery{
			StartDate: query.Get("start_date"),
			EndDate:   query.Get("end_date"),
			Month:     query.Get("month"),
			Region:    query.Get("region"),
		}

		if err := validate.Struct(request); err != nil {
			writeValidationError(w, err)
			return
		}

		period, err := parsePeriod(request.StartDate, request.EndDate)
		if err != nil {
			writeServiceError(w, err, "")
			return
		}

		drilldown, err := service.GetRegionDrilldown(r.Context(), period, request.Month, request.Region)
		if err != nil {
			writeServiceError(w, err, "Falha ao carregar detalhes da região")
			return
		}

		writeJSON(w, r, http.StatusOK, drilldown)
	})
}
