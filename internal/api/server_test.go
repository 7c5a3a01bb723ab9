package api

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/repository/mocks"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/scheduler"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/communicating"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/customer"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/dashboard"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/reporting"
	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
	"github.com/vfg2006/sales-dashboard-api/pkg/metrics"
	"go.uber.org/mock/gomock"
	"golang.org/x/text/language"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const testSecret = "segredo-de-teste"

type stubJob struct {
	runID string
	err   error
}

func (s stubJob) Name() string { return scheduler.TrendRefreshJob }

func (s stubJob) TriggerManualSync(context.Context) (string, error) { return s.runID, s.err }

func (s stubJob) GetStatus() map[string]any { return map[string]any{"running": false} }

type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context) error { return s.err }

type fixture struct {
	handler           http.Handler
	orderRepo         *mocks.MockOrderRepository
	customerRepo      *mocks.MockCustomerRepository
	communicationRepo *mocks.MockCommunicationRepository
	trendRepo         *mocks.MockTrendRepository
}

func newFixture(t *testing.T, authEnabled bool, job scheduler.Job, db stubPinger) fixture {
	log.SetupTestLogger()

	ctrl := gomock.NewController(t)
	f := fixture{
		orderRepo:         mocks.NewMockOrderRepository(ctrl),
		customerRepo:      mocks.NewMockCustomerRepository(ctrl),
		communicationRepo: mocks.NewMockCommunicationRepository(ctrl),
		trendRepo:         mocks.NewMockTrendRepository(ctrl),
	}

	reporter := reporting.NewService(f.orderRepo, f.trendRepo, reporting.NewAggregator(language.English))
	customers := customer.NewService(f.customerRepo, f.orderRepo, 20)
	communicator := communicating.NewService(f.communicationRepo)

	cfg := &config.Config{}
	cfg.Auth.Enabled = authEnabled
	cfg.Cors.AllowedOrigins = []string{"*"}

	f.handler = NewHandler(cfg, Services{
		Reporter:      reporter,
		Customers:     customers,
		Communicator:  communicator,
		Loader:        dashboard.NewService(reporter, customers, communicator),
		Authenticator: authenticating.NewService(testSecret),
		Jobs:          []scheduler.Job{job},
		Database:      db,
	}, metrics.New())

	return f
}

func (f fixture) do(method, path string, body []byte, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, values := range header {
		req.Header[key] = values
	}

	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) apiErrors.APIError {
	t.Helper()
	var apiErr apiErrors.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	return apiErr
}

func bearer(t *testing.T, role string) http.Header {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, domain.Claims{
		Email: "ana@example.com",
		Role:  role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)

	return http.Header{"Authorization": []string{"Bearer " + signed}}
}

func month(value string) time.Time {
	parsed, _ := time.Parse(domain.MonthLayout, value)
	return parsed
}

func TestMonthlySalesByRegion(t *testing.T) {
	f := newFixture(t, false, stubJob{}, stubPinger{})

	f.orderRepo.EXPECT().ListOrderRecords(gomock.Any(), gomock.Any()).Return([]domain.OrderRecord{
		{Month: month("2024-01"), RegionName: "EU", CustomerCode: "C1", CompanyName: "Acme", Amount: decimal.NewFromInt(100)},
		{Month: month("2024-01"), RegionName: "NA", CustomerCode: "C2", CompanyName: "Globex", Amount: decimal.NewFromInt(300)},
		{Month: month("2024-01"), RegionName: "EU", CustomerCode: "C1", CompanyName: "Acme", Amount: decimal.NewFromInt(100)},
	}, nil)

	rec := f.do(http.MethodPost, "/v1/rpc/monthly_sales_by_region",
		[]byte(`{"start_date":"2024-01-01","end_date":"2024-01-31"}`), nil)

	require.Equal(t, http.StatusOK, rec.Code)

	var rows []struct {
		ID          string          `json:"id"`
		ReportMonth string          `json:"report_month"`
		RegionName  string          `json:"region_name"`
		RegionTotal decimal.Decimal `json:"region_total"`
		Percentage  decimal.Decimal `json:"percentage"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	require.Len(t, rows, 2)

	assert.Equal(t, "2024-01:EU", rows[0].ID)
	assert.Equal(t, "2024-01", rows[0].ReportMonth)
	assert.True(t, decimal.NewFromInt(200).Equal(rows[0].RegionTotal))
	assert.True(t, decimal.NewFromInt(40).Equal(rows[0].Percentage))
	assert.Equal(t, "NA", rows[1].RegionName)
	assert.True(t, decimal.NewFromInt(60).Equal(rows[1].Percentage))
}

func TestMonthlySalesByRegionValidation(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		wantCode string
	}{
		{"corpo malformado", `{`, apiErrors.ErrInvalidRequest},
		{"data ausente", `{"start_date":"2024-01-01"}`, apiErrors.ErrInvalidFormat},
		{"data em formato errado", `{"start_date":"01/01/2024","end_date":"2024-01-31"}`, apiErrors.ErrInvalidFormat},
		{"período invertido", `{"start_date":"2024-02-01","end_date":"2024-01-01"}`, apiErrors.ErrInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, false, stubJob{}, stubPinger{})

			rec := f.do(http.MethodPost, "/v1/rpc/monthly_sales_by_region", []byte(tt.body), nil)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.wantCode, decodeError(t, rec).Code)
		})
	}
}

func TestMonthlySalesByRegionLoadFailure(t *testing.T) {
	f := newFixture(t, false, stubJob{}, stubPinger{})
	f.orderRepo.EXPECT().ListOrderRecords(gomock.Any(), gomock.Any()).Return(nil, errors.New("conexão recusada"))

	rec := f.do(http.MethodPost, "/v1/rpc/monthly_sales_by_region",
		[]byte(`{"start_date":"2024-01-01","end_date":"2024-01-31"}`), nil)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	apiErr := decodeError(t, rec)
	assert.Equal(t, apiErrors.ErrLoadFailed, apiErr.Code)
	assert.NotContains(t, apiErr.Message, "conexão recusada")
}

func TestCustomerTrendQuadrant(t *testing.T) {
	short, long := 1.5, -0.5

	t.Run("corpo vazio busca sem filtros", func(t *testing.T) {
		f := newFixture(t, false, stubJob{}, stubPinger{})
		f.trendRepo.EXPECT().ListTrendRows(gomock.Any(), domain.TrendFilters{}).Return([]domain.TrendRow{
			{CustomerID: 7, CustomerCode: "C7", CompanyName: "Initech", ShortTrendSlope: &short, LongTrendSlope: &long},
		}, nil)

		rec := f.do(http.MethodPost, "/v1/rpc/customer_trend_quadrant", nil, nil)

		require.Equal(t, http.StatusOK, rec.Code)
		var points []map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &points))
		require.Len(t, points, 1)
		assert.Equal(t, "C7", points[0]["customerCode"])
		assert.Equal(t, 1.5, points[0]["x"])
		assert.Equal(t, -0.5, points[0]["y"])
	})

	t.Run("filtros repassados ao repositório", func(t *testing.T) {
		f := newFixture(t, false, stubJob{}, stubPinger{})
		f.trendRepo.EXPECT().
			ListTrendRows(gomock.Any(), domain.TrendFilters{RegionName: "EU", SalesOwner: "Ana"}).
			Return(nil, nil)

		rec := f.do(http.MethodPost, "/v1/rpc/customer_trend_quadrant",
			[]byte(`{"region":"EU","sales_owner":"Ana"}`), nil)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})
}

func TestRegionDrilldown(t *testing.T) {
	t.Run("mês inválido", func(t *testing.T) {
		f := newFixture(t, false, stubJob{}, stubPinger{})

		rec := f.do(http.MethodGet,
			"/v1/reports/monthly-sales/drilldown?start_date=2024-01-01&end_date=2024-03-31&month=2024-13", nil, nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, apiErrors.ErrInvalidFormat, decodeError(t, rec).Code)
	})

	t.Run("região inexistente", func(t *testing.T) {
		f := newFixture(t, false, stubJob{}, stubPinger{})
		f.orderRepo.EXPECT().ListOrderRecords(gomock.Any(), gomock.Any()).Return([]domain.OrderRecord{
			{Month: month("2024-01"), RegionName: "EU", CustomerCode: "C1", Amount: decimal.NewFromInt(10)},
		}, nil)

		rec := f.do(http.MethodGet,
			"/v1/reports/monthly-sales/drilldown?start_date=2024-01-01&end_date=2024-01-31&month=2024-01&region=APAC", nil, nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, apiErrors.ErrNotFound, decodeError(t, rec).Code)
	})
}

func TestGetCustomer(t *testing.T) {
	t.Run("encontrado", func(t *testing.T) {
		f := newFixture(t, false, stubJob{}, stubPinger{})
		f.customerRepo.EXPECT().GetByCode(gomock.Any(), "C1").
			Return(&domain.Customer{ID: 1, Code: "C1", CompanyName: "Acme"}, nil)

		rec := f.do(http.MethodGet, "/v1/customers/C1", nil, nil)

		require.Equal(t, http.StatusOK, rec.Code)
		var body domain.Customer
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Acme", body.CompanyName)
	})

	t.Run("inexistente vira 404", func(t *testing.T) {
		f := newFixture(t, false, stubJob{}, stubPinger{})
		f.customerRepo.EXPECT().GetByCode(gomock.Any(), "XX").Return(nil, nil)

		rec := f.do(http.MethodGet, "/v1/customers/XX", nil, nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, apiErrors.ErrNotFound, decodeError(t, rec).Code)
	})
}

func TestListCustomers(t *testing.T) {
	t.Run("paginação", func(t *testing.T) {
		f := newFixture(t, false, stubJob{}, stubPinger{})
		f.customerRepo.EXPECT().
			List(gomock.Any(), domain.CustomerFilters{Page: 2, PageSize: 10, Search: "acme"}).
			Return([]*domain.Customer{{Code: "C1"}}, 11, nil)

		rec := f.do(http.MethodGet, "/v1/customers?page=2&page_size=10&search=acme", nil, nil)

		require.Equal(t, http.StatusOK, rec.Code)
		var page domain.CustomerPage
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
		assert.Equal(t, 11, page.Total)
		assert.Equal(t, 2, page.Page)
		require.Len(t, page.Items, 1)
	})

	t.Run("page_size acima do limite", func(t *testing.T) {
		f := newFixture(t, false, stubJob{}, stubPinger{})

		rec := f.do(http.MethodGet, "/v1/customers?page_size=500", nil, nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, apiErrors.ErrInvalidFormat, decodeError(t, rec).Code)
	})
}

func TestUpdateCommunication(t *testing.T) {
	t.Run("atualiza resumo e tags", func(t *testing.T) {
		f := newFixture(t, false, stubJob{}, stubPinger{})
		summary := "Cliente pediu nova proposta"
		f.communicationRepo.EXPECT().Update(gomock.Any(), int64(42), domain.CommunicationUpdate{
			Summary: &summary,
			Tags:    []string{"proposta", "urgente"},
		}).Return(nil)

		rec := f.do(http.MethodPatch, "/v1/communications/42",
			[]byte(`{"summary":"Cliente pediu nova proposta","tags":"proposta, urgente,"}`), nil)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"success":true}`, rec.Body.String())
	})

	t.Run("falha vira erro genérico", func(t *testing.T) {
		f := newFixture(t, false, stubJob{}, stubPinger{})
		f.communicationRepo.EXPECT().Update(gomock.Any(), int64(42), gomock.Any()).
			Return(domain.ErrCommunicationNotFound)

		rec := f.do(http.MethodPatch, "/v1/communications/42", []byte(`{"summary":"x"}`), nil)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, apiErrors.ErrDatabaseOperation, decodeError(t, rec).Code)
	})

	t.Run("id inválido", func(t *testing.T) {
		f := newFixture(t, false, stubJob{}, stubPinger{})

		rec := f.do(http.MethodPatch, "/v1/communications/abc", []byte(`{"summary":"x"}`), nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("resumo obrigatório", func(t *testing.T) {
		f := newFixture(t, false, stubJob{}, stubPinger{})

		rec := f.do(http.MethodPatch, "/v1/communications/42", []byte(`{"tags":"a"}`), nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, apiErrors.ErrInvalidFormat, decodeError(t, rec).Code)
	})
}

func TestAuthentication(t *testing.T) {
	t.Run("sem token", func(t *testing.T) {
		f := newFixture(t, true, stubJob{}, stubPinger{})

		rec := f.do(http.MethodGet, "/v1/customers/C1", nil, nil)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, apiErrors.ErrInvalidToken, decodeError(t, rec).Code)
	})

	t.Run("usuário autenticado lê clientes", func(t *testing.T) {
		f := newFixture(t, true, stubJob{}, stubPinger{})
		f.customerRepo.EXPECT().GetByCode(gomock.Any(), "C1").Return(&domain.Customer{Code: "C1"}, nil)

		rec := f.do(http.MethodGet, "/v1/customers/C1", nil, bearer(t, domain.RoleAuthenticated))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("usuário autenticado não dispara cron", func(t *testing.T) {
		f := newFixture(t, true, stubJob{runID: "abc"}, stubPinger{})

		rec := f.do(http.MethodPost, "/v1/cron/run/trend-refresh", nil, bearer(t, domain.RoleAuthenticated))

		assert.Equal(t, http.StatusForbidden, rec.Code)
		assert.Equal(t, apiErrors.ErrInsufficientPrivilege, decodeError(t, rec).Code)
	})

	t.Run("healthcheck é público", func(t *testing.T) {
		f := newFixture(t, true, stubJob{}, stubPinger{})

		rec := f.do(http.MethodGet, "/healthcheck", nil, nil)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestCronRoutes(t *testing.T) {
	t.Run("dispara job", func(t *testing.T) {
		f := newFixture(t, true, stubJob{runID: "run-1"}, stubPinger{})

		rec := f.do(http.MethodPost, "/v1/cron/run/trend-refresh", nil, bearer(t, domain.RoleServiceRole))

		require.Equal(t, http.StatusAccepted, rec.Code)
		var body map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "run-1", body["run_id"])
	})

	t.Run("job em execução", func(t *testing.T) {
		f := newFixture(t, false, stubJob{err: scheduler.ErrJobAlreadyRunning}, stubPinger{})

		rec := f.do(http.MethodPost, "/v1/cron/run/trend-refresh", nil, nil)

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, apiErrors.ErrJobAlreadyRunning, decodeError(t, rec).Code)
	})

	t.Run("tipo desconhecido", func(t *testing.T) {
		f := newFixture(t, false, stubJob{}, stubPinger{})

		rec := f.do(http.MethodPost, "/v1/cron/run/nao-existe", nil, nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("status", func(t *testing.T) {
		f := newFixture(t, false, stubJob{}, stubPinger{})

		rec := f.do(http.MethodGet, "/v1/cron/status", nil, nil)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), scheduler.TrendRefreshJob)
	})
}

func TestHealthcheckDatabaseDown(t *testing.T) {
	f := newFixture(t, false, stubJob{}, stubPinger{err: errors.New("timeout")})

	rec := f.do(http.MethodGet, "/healthcheck", nil, nil)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "degraded")
}

func TestMetricsEndpoint(t *testing.T) {
	f := newFixture(t, false, stubJob{}, stubPinger{})

	f.do(http.MethodGet, "/healthcheck", nil, nil)
	rec := f.do(http.MethodGet, "/metrics", nil, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `route="/healthcheck"`)
}

func TestUnknownRoute(t *testing.T) {
	f := newFixture(t, false, stubJob{}, stubPinger{})

	rec := f.do(http.MethodGet, "/v1/nada", nil, nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, apiErrors.ErrNotFound, decodeError(t, rec).Code)
}

func TestSalesOverview(t *testing.T) {
	f := newFixture(t, false, stubJob{}, stubPinger{})
	f.orderRepo.EXPECT().ListOrderRecords(gomock.Any(), gomock.Any()).Return([]domain.OrderRecord{
		{Month: month("2024-02"), RegionName: "EU", CustomerCode: "C1", Amount: decimal.NewFromInt(50)},
	}, nil)
	f.trendRepo.EXPECT().ListTrendRows(gomock.Any(), domain.TrendFilters{RegionName: "EU"}).Return(nil, nil)

	rec := f.do(http.MethodGet, "/v1/dashboard/sales-overview?start_date=2024-02-01&end_date=2024-02-29&region=EU", nil, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var body struct {
		MonthlySales []domain.RegionMonthAggregate `json:"monthly_sales"`
		Quadrant     []domain.CustomerTrendPoint   `json:"quadrant"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.MonthlySales, 1)
	assert.Equal(t, "2024-02", body.MonthlySales[0].Month)
	assert.Empty(t, body.Quadrant)
}
