package handler

import (
	"net/http"

	"github.com/vfg2006/sales-dashboard-api/internal/api/handler/router"
	"github.com/vfg2006/sales-dashboard-api/internal/scheduler"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/communicating"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/customer"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/dashboard"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/reporting"
	"github.com/vfg2006/sales-dashboard-api/pkg/metrics"
	"github.com/vfg2006/sales-dashboard-api/pkg/middleware"
)

func Healthcheck(db Pinger) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(db),
		},
	}
}

func Metrics(m *metrics.Metrics) []router.Route {
	return []router.Route{
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: m.Handler(),
		},
	}
}

func Reports(service reporting.Reporter) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/rpc/monthly_sales_by_region",
			Method:      http.MethodPost,
			Handler:     MonthlySalesByRegion(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AnyUser()},
		},
		{
			Path:        "/v1/rpc/customer_trend_quadrant",
			Method:      http.MethodPost,
			Handler:     CustomerTrendQuadrant(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AnyUser()},
		},
		{
			Path:        "/v1/reports/monthly-sales/drilldown",
			Method:      http.MethodGet,
			Handler:     RegionDrilldown(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AnyUser()},
		},
	}
}

func Customers(service customer.Customerer, communicator communicating.Communicator, loader dashboard.Loader) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/customers",
			Method:      http.MethodGet,
			Handler:     ListCustomers(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AnyUser()},
		},
		{
			Path:        "/v1/customers/:code",
			Method:      http.MethodGet,
			Handler:     GetCustomer(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AnyUser()},
		},
		{
			Path:        "/v1/customers/:code/order-trend",
			Method:      http.MethodGet,
			Handler:     CustomerOrderTrend(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AnyUser()},
		},
		{
			Path:        "/v1/customers/:code/communications",
			Method:      http.MethodGet,
			Handler:     CustomerCommunications(communicator),
			Middlewares: []func(http.Handler) http.Handler{middleware.AnyUser()},
		},
		{
			Path:        "/v1/customers/:code/drawer",
			Method:      http.MethodGet,
			Handler:     CustomerDrawer(loader),
			Middlewares: []func(http.Handler) http.Handler{middleware.AnyUser()},
		},
	}
}

func Communications(service communicating.Communicator) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/communications/:id",
			Method:      http.MethodPatch,
			Handler:     UpdateCommunication(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AnyUser()},
		},
	}
}

func Dashboard(loader dashboard.Loader) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/dashboard/sales-overview",
			Method:      http.MethodGet,
			Handler:     SalesOverview(loader),
			Middlewares: []func(http.Handler) http.Handler{middleware.AnyUser()},
		},
	}
}

func CronJobs(jobs []scheduler.Job) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/run/:type",
			Method:      http.MethodPost,
			Handler:     RunCronJob(jobs),
			Middlewares: []func(http.Handler) http.Handler{middleware.ServiceOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(jobs),
			Middlewares: []func(http.Handler) http.Handler{middleware.ServiceOnly()},
		},
	}
}
