package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-dashboard-api/internal/domain"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
)

type stubAuthenticator struct {
	claims *domain.Claims
	err    error
}

func (s stubAuthenticator) ValidateToken(string) (*domain.Claims, error) {
	return s.claims, s.err
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		auth       stubAuthenticator
		enabled    bool
		path       string
		header     string
		wantStatus int
	}{
		{"rota pública", stubAuthenticator{}, true, "/healthcheck", "", http.StatusOK},
		{"métricas são públicas", stubAuthenticator{}, true, "/metrics", "", http.StatusOK},
		{"sem header", stubAuthenticator{}, true, "/v1/customers", "", http.StatusUnauthorized},
		{"sem Bearer", stubAuthenticator{}, true, "/v1/customers", "Basic abc", http.StatusUnauthorized},
		{"token inválido", stubAuthenticator{err: authenticating.ErrInvalidToken}, true, "/v1/customers", "Bearer x", http.StatusUnauthorized},
		{"token expirado", stubAuthenticator{err: authenticating.ErrExpiredToken}, true, "/v1/customers", "Bearer x", http.StatusUnauthorized},
		{"token válido", stubAuthenticator{claims: &domain.Claims{Role: domain.RoleAuthenticated}}, true, "/v1/customers", "Bearer x", http.StatusOK},
		{"autenticação desligada", stubAuthenticator{}, false, "/v1/customers", "", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			AuthMiddleware(tt.auth, tt.enabled)(okHandler()).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestAuthMiddlewareExpiredCode(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/v1/customers", nil)
	req.Header.Set("Authorization", "Bearer x")
	rec := httptest.NewRecorder()

	AuthMiddleware(stubAuthenticator{err: authenticating.ErrExpiredToken}, true)(okHandler()).ServeHTTP(rec, req)

	assert.Contains(t, rec.Body.String(), "AUTH_007")
}

func TestRoleMiddleware(t *testing.T) {
	tests := []struct {
		name       string
		claims     *domain.Claims
		middleware func(http.Handler) http.Handler
		wantStatus int
	}{
		{"sem claims", nil, AnyUser(), http.StatusUnauthorized},
		{"usuário comum em rota de leitura", &domain.Claims{Role: domain.RoleAuthenticated}, AnyUser(), http.StatusOK},
		{"usuário comum em rota de cron", &domain.Claims{Role: domain.RoleAuthenticated}, ServiceOnly(), http.StatusForbidden},
		{"service role em rota de cron", &domain.Claims{Role: domain.RoleServiceRole}, ServiceOnly(), http.StatusOK},
		{"role desconhecido", &domain.Claims{Role: "anon"}, AnyUser(), http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/cron/status", nil)
			if tt.claims != nil {
				req = req.WithContext(WithClaims(req.Context(), tt.claims))
			}
			rec := httptest.NewRecorder()

			tt.middleware(okHandler()).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestAuthDisabledGrantsServiceRole(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/v1/cron/trend-refresh/run", nil)
	rec := httptest.NewRecorder()

	handler := AuthMiddleware(stubAuthenticator{}, false)(ServiceOnly()(okHandler()))
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCors(t *testing.T) {
	handler := Cors([]string{"http://localhost:3000"})(okHandler())

	t.Run("origem permitida", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/customers", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("origem desconhecida", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/customers", nil)
		req.Header.Set("Origin", "https://evil.example")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/v1/communications/1", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), "PATCH")
	})
}

func TestLoggingMiddlewareCorrelationID(t *testing.T) {
	log.SetupTestLogger()

	var seen string
	handler := LoggingMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = log.GetCorrelationID(r.Context())
	}))

	t.Run("reaproveita o header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/customers", nil)
		req.Header.Set(log.CorrelationIDHeader, "req-42")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		assert.Equal(t, "req-42", seen)
		assert.Equal(t, "req-42", rec.Header().Get(log.CorrelationIDHeader))
	})

	t.Run("gera quando ausente", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/customers", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		require.NotEmpty(t, seen)
		assert.Equal(t, seen, rec.Header().Get(log.CorrelationIDHeader))
	})
}

func TestLogPanicMiddleware(t *testing.T) {
	log.SetupTestLogger()

	handler := LogPanicMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil).WithContext(context.Background()))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRateLimit(t *testing.T) {
	handler := RateLimit(2)(okHandler())

	statuses := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/v1/customers", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		statuses = append(statuses, rec.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, statuses)
}

func TestRateLimitDisabled(t *testing.T) {
	handler := RateLimit(0)(okHandler())

	for i := 0; i < 5; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestSecureHeaders(t *testing.T) {
	rec := httptest.NewRecorder()

	SecureHeaders(true)(okHandler()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
}
