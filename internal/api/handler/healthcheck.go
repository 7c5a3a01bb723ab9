package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/vfg2006/sales-dashboard-api/pkg/log"
)

// Pinger é satisfeito pela conexão com o banco
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthcheckHandler(db Pinger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := map[string]any{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		}

		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()

			if err := db.Ping(ctx); err != nil {
				log.ForContext(r.Context()).WithError(err).Warn("healthcheck: banco indisponível")
				body["status"] = "degraded"
				body["database"] = "unreachable"
				writeJSON(w, r, http.StatusServiceUnavailable, body)
				return
			}
			body["database"] = "ok"
		}

		writeJSON(w, r, http.StatusOK, body)
	})
}
