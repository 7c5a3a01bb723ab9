package main

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/database/postgres"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/sales-dashboard-api/internal/api"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/internal/scheduler"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/authenticating"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/communicating"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/customer"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/dashboard"
	"github.com/vfg2006/sales-dashboard-api/internal/usecases/reporting"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
	"github.com/vfg2006/sales-dashboard-api/pkg/metrics"
	"golang.org/x/text/language"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.L.Fatal(err)
	}

	log.Configure(cfg.App.LogLevel, cfg.App.LogFormat)
	log.L.WithField("level", cfg.App.LogLevel).Info("Nível de log configurado")

	// valores monetários saem como número no JSON
	decimal.MarshalJSONWithoutQuotes = true

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	orderRepo := repository.NewOrderRepository(pgConn)
	customerRepo := repository.NewCustomerRepository(pgConn)
	communicationRepo := repository.NewCommunicationRepository(pgConn)
	trendRepo := repository.NewTrendRepository(pgConn)

	appMetrics := metrics.New()

	aggregator := reporting.NewAggregator(reportLocale(cfg.Report.Locale))
	reporter := reporting.NewService(orderRepo, trendRepo, aggregator)
	customerService := customer.NewService(customerRepo, orderRepo, cfg.Report.CustomerPageSize)
	communicator := communicating.NewService(communicationRepo)
	loader := dashboard.NewService(reporter, customerService, communicator)
	authenticator := authenticating.NewService(cfg.Auth.Secret)

	trendRefreshService := scheduler.NewTrendRefreshService(trendRepo, appMetrics, cfg)
	if err := trendRefreshService.Start(ctx); err != nil {
		log.L.WithError(err).Error("Erro ao iniciar o agendador de atualização de tendências")
	}

	server, err := api.New(cfg, api.Services{
		Reporter:      reporter,
		Customers:     customerService,
		Communicator:  communicator,
		Loader:        loader,
		Authenticator: authenticator,
		Jobs:          []scheduler.Job{trendRefreshService},
		Database:      pgConn,
	}, appMetrics)
	if err != nil {
		log.L.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		log.L.Error(err)
	}
}

// reportLocale define a ordenação das regiões; tag inválida cai para inglês
func reportLocale(locale string) language.Tag {
	tag, err := language.Parse(locale)
	if err != nil {
		log.L.WithField("locale", locale).Warn("Locale de relatório inválido, usando 'en'")
		return language.English
	}

	return tag
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		log.L.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	log.L.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
