package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"
	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
)

// RateLimit limita as requisições por IP dentro de uma janela de um minuto.
// Limite zero ou negativo desliga o controle.
func RateLimit(requestsPerMinute int) func(http.Handler) http.Handler {
	if requestsPerMinute <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	return httprate.Limit(
		requestsPerMinute,
		time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			apiErrors.WriteError(w, apiErrors.ErrRateLimited, "Muitas requisições, tente novamente em instantes", nil)
		}),
	)
}
