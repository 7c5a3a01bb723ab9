package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/communicating"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/customer"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/dashboard"
	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
)

type customerListQuery struct {
	Page       int    `validate:"omitempty,min=1"`
	PageSize   int    `validate:"omitempty,min=1,max=100"`
	Search     string `validate:"omitempty,max=120"`
	Region     string `validate:"omitempty,max=120"`
	SalesOwner string `validate:"omitempty,max=120"`
}

// ListCustomers responde GET /v1/customers
func ListCustomers(service customer.Customerer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, err := queryInt(r, "page")
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "page deve ser numérico", nil)
			return
		}

		pageSize, err := queryInt(r, "page_size")
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "page_size deve ser numérico", nil)
			return
		}

		query := r.URL.Query()
		request := customerListQuery{
			Page:       page,
			PageSize:   pageSize,
			Search:     query.Get("search"),
			Region:     query.Get("region"),
			SalesOwner: query.Get("sales_owner"),
		}

		if err := validate.Struct(request); err != nil {
			writeValidationError(w, err)
			return
		}

		result, err := service.List(r.Context(), domain.CustomerFilters{
			Page:       request.Page,
			PageSize:   request.PageSize,
			Search:     request.Search,
			RegionName: request.Region,
			SalesOwner: request.SalesOwner,
		})
		if err != nil {
			writeServiceError(w, err, "Falha ao carregar clientes")
			return
		}

		writeJSON(w, r, http.StatusOK, result)
	})
}

// GetCustomer responde GET /v1/customers/:code
func GetCustomer(service customer.Customerer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		code := httprouter.ParamsFromContext(r.Context()).ByName("code")

		found, err := service.GetByCode(r.Context(), code)
		if err != nil {
			writeServiceError(w, err, "Falha ao carregar cliente")
			return
		}

		writeJSON(w, r, http.StatusOK, found)
	})
}

type orderTrendQuery struct {
	Months int `validate:"omitempty,min=1,max=36"`
}

// CustomerOrderTrend responde GET /v1/customers/:code/order-trend
func CustomerOrderTrend(service customer.Customerer) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		code := httprouter.ParamsFromContext(r.Context()).ByName("code")

		months, err := queryInt(r, "months")
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "months deve ser numérico", nil)
			return
		}

		if err := validate.Struct(orderTrendQuery{Months: months}); err != nil {
			writeValidationError(w, err)
			return
		}

		series, err := service.OrderTrend(r.Context(), code, months)
		if err != nil {
			writeServiceError(w, err, "Falha ao carregar série de pedidos")
			return
		}

		writeJSON(w, r, http.StatusOK, series)
	})
}

type communicationsQuery struct {
	Limit int `validate:"omitempty,min=1,max=100"`
}

// CustomerCommunications responde GET /v1/customers/:code/communications
func CustomerCommunications(service communicating.Communicator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		code := httprouter.ParamsFromContext(r.Context()).ByName("code")

		limit, err := queryInt(r, "limit")
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "limit deve ser numérico", nil)
			return
		}

		if err := validate.Struct(communicationsQuery{Limit: limit}); err != nil {
			writeValidationError(w, err)
			return
		}

		communications, err := service.ListByCustomer(r.Context(), code, limit)
		if err != nil {
			writeServiceError(w, err, "Falha ao carregar comunicações")
			return
		}

		if communications == nil {
			communications = make([]*domain.Communication, 0)
		}

		writeJSON(w, r, http.StatusOK, communications)
	})
}

// CustomerDrawer responde GET /v1/customers/:code/drawer
func CustomerDrawer(loader dashboard.Loader) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		code := httprouter.ParamsFromContext(r.Context()).ByName("code")

		drawer, err := loader.LoadCustomerDrawer(r.Context(), code)
		if err != nil {
			writeServiceError(w, err, "Falha ao carregar dados do cliente")
			return
		}

		log.ForContext(r.Context()).WithField("customer_code", code).Debug("customer-drawer: carregado")

		writeJSON(w, r, http.StatusOK, drawer)
	})
}
