package handler

import (
	"net/http"

	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/dashboard"
)

type salesOverviewQuery struct {
	StartDate  string `validate:"required,datetime=2006-01-02"`
	EndDate    string `validate:"required,datetime=2006-01-02"`
	Region     string `validate:"omitempty,max=120"`
	SalesOwner string `validate:"omitempty,max=120"`
}

// SalesOverview responde GET /v1/dashboard/sales-overview
func SalesOverview(loader dashboard.Loader) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		request := salesOverviewQuery{
			StartDate:  query.Get("start_date"),
			EndDate:    query.Get("end_date"),
			Region:     query.Get("region"),
			SalesOwner: query.Get("sales_owner"),
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

		overview, err := loader.LoadSalesOverview(r.Context(), dashboard.SalesOverviewRequest{
			Period: period,
			Filters: domain.TrendFilters{
				RegionName: request.Region,
				SalesOwner: request.SalesOwner,
			},
		})
		if err != nil {
			writeServiceError(w, err, "Falha ao carregar painel de vendas")
			return
		}

		writeJSON(w, r, http.StatusOK, overview)
	})
}
