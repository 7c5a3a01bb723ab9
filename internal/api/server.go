package api

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/justinas/alice"
	"github.com/vfg2006/sales-dashboard-api/internal/api/handler"
	"github.com/vfg2006/sales-dashboard-api/internal/api/handler/router"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/internal/scheduler"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/communicating"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/customer"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/dashboard"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/reporting"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
	"github.com/vfg2006/sales-dashboard-api/pkg/metrics"
	"github.com/vfg2006/sales-dashboard-api/pkg/middleware"
)

const shutdownTimeout = 15 * time.Second

type Services struct {
	Reporter      reporting.Reporter
	Customers     customer.Customerer
	Communicator  communicating.Communicator
	Loader        dashboard.Loader
	Authenticator authenticating.Authenticator
	Jobs          []scheduler.Job
	Database      handler.Pinger
}

type Server struct {
	httpServer *http.Server
}

func New(cfg *config.Config, services Services, m *metrics.Metrics) (*Server, error) {
	srv := &Server{
		httpServer: &http.Server{
			Addr:              cfg.Server.Address(),
			Handler:           NewHandler(cfg, services, m),
			ReadHeaderTimeout: 2 * time.Second,
			ReadTimeout:       cfg.Server.ReadTimeout,
			WriteTimeout:      cfg.Server.WriteTimeout,
		},
	}

	return srv, nil
}

// NewHandler monta o roteador com a cadeia global de middlewares
func NewHandler(cfg *config.Config, services Services, m *metrics.Metrics) http.Handler {
	rt := router.New(
		router.WithMetrics(m),
		router.WithRoutes(handler.Healthcheck(services.Database)...),
		router.WithRoutes(handler.Metrics(m)...),
		router.WithRoutes(handler.Reports(services.Reporter)...),
		router.WithRoutes(handler.Customers(services.Customers, services.Communicator, services.Loader)...),
		router.WithRoutes(handler.Communications(services.Communicator)...),
		router.WithRoutes(handler.Dashboard(services.Loader)...),
		router.WithRoutes(handler.CronJobs(services.Jobs)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.SecureHeaders(log.IsDevelopment()),
		middleware.Cors(cfg.Cors.AllowedOrigins),
		middleware.RateLimit(cfg.RateLimit.RequestsPerMinute),
		middleware.AuthMiddleware(services.Authenticator, cfg.Auth.Enabled),
	}

	return alice.New(middlewares...).Then(rt)
}

func (s Server) Run(ctx context.Context) error {
	go func() {
		log.L.WithField("address", s.httpServer.Addr).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.L.WithError(err).Error("Erro durante a execução do servidor")
		}
	}()

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(done)

	select {
	case <-done:
		log.L.Info("Sinal de interrupção recebido")
	case <-ctx.Done():
		log.L.Info("Contexto de aplicação cancelado")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	log.L.WithField("timeout", shutdownTimeout.String()).Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		log.L.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	log.L.Info("Servidor desligado com sucesso")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return err
	}

	log.L.Info("Servidor HTTP desligado com sucesso")
	return nil
}
