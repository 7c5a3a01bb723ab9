// Package scheduler contém os jobs agendados da API
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/repository"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
	"github.com/vfg2006/sales-dashboard-api/pkg/metrics"
	"github.com/vfg2006/sales-dashboard-api/pkg/utils"
)

const TrendRefreshJob = "trend-refresh"

var ErrJobAlreadyRunning = errors.New("job já está em execução")

// Job é um job que pode ser disparado manualmente pelas rotas de cron
type Job interface {
	Name() string
	TriggerManualSync(ctx context.Context) (string, error)
	GetStatus() map[string]any
}

type TrendRefreshConfig struct {
	CronSchedule string
	Enabled      bool
}

// TrendRefreshService atualiza a view materializada de inclinações de tendência
type TrendRefreshService struct {
	scheduler       *gocron.Scheduler
	trendRepo       repository.TrendRepository
	metrics         *metrics.Metrics
	config          TrendRefreshConfig
	mutex           sync.Mutex
	running         bool
	lastRunID       string
	lastStartedAt   time.Time
	lastCompletedAt time.Time
	lastError       string
}

func NewTrendRefreshService(
	trendRepo repository.TrendRepository,
	jobMetrics *metrics.Metrics,
	cfg *config.Config,
) *TrendRefreshService {
	refreshConfig := TrendRefreshConfig{
		CronSchedule: cfg.TrendRefresh.CronSchedule, // Default: 2h da manhã todos os dias
		Enabled:      cfg.TrendRefresh.Enabled,      // Default: desabilitado
	}

	log.L.WithFields(log.Fields{
		"cron_schedule": refreshConfig.CronSchedule,
		"enabled":       refreshConfig.Enabled,
	}).Info("Configuração do job de tendências carregada")

	return &TrendRefreshService{
		scheduler: gocron.NewScheduler(time.Local),
		trendRepo: trendRepo,
		metrics:   jobMetrics,
		config:    refreshConfig,
	}
}

func (s *TrendRefreshService) Name() string {
	return TrendRefreshJob
}

func (s *TrendRefreshService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		log.L.Info("Cron de atualização de tendências desabilitada por configuração")
		return nil
	}

	log.L.WithField("cron", s.config.CronSchedule).Info("Iniciando cron de atualização de tendências")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		jobCtx, _ := log.WithCorrelationID(ctx, "")
		if err := s.RefreshTrendSlopes(jobCtx); err != nil && !errors.Is(err, ErrJobAlreadyRunning) {
			log.ForContext(jobCtx).WithError(err).Error("Erro na atualização de tendências")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar atualização de tendências: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		log.L.Info("Parando cron de atualização de tendências")
		s.scheduler.Stop()
	}()

	return nil
}

// RefreshTrendSlopes executa a atualização de forma síncrona.
// Uma execução sobreposta é descartada com ErrJobAlreadyRunning.
func (s *TrendRefreshService) RefreshTrendSlopes(ctx context.Context) error {
	runID, err := s.claimRun()
	if err != nil {
		return err
	}

	return s.run(ctx, runID)
}

// TriggerManualSync reserva a execução e roda em segundo plano, retornando o ID da execução
func (s *TrendRefreshService) TriggerManualSync(ctx context.Context) (string, error) {
	runID, err := s.claimRun()
	if err != nil {
		return "", err
	}

	log.ForContext(ctx).WithField("run_id", runID).Info("Iniciando atualização manual de tendências")

	go func() {
		_ = s.run(context.WithoutCancel(ctx), runID)
	}()

	return runID, nil
}

func (s *TrendRefreshService) claimRun() (string, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.running {
		s.metrics.Skipped(TrendRefreshJob)
		log.L.Warn("Atualização de tendências já está em execução")
		return "", ErrJobAlreadyRunning
	}

	runID, err := utils.GenerateID()
	if err != nil {
		return "", fmt.Errorf("erro ao gerar id da execução: %w", err)
	}

	s.running = true
	s.lastRunID = runID
	s.lastStartedAt = time.Now()

	return runID, nil
}

func (s *TrendRefreshService) run(ctx context.Context, runID string) error {
	logger := log.ForContext(ctx).WithField("run_id", runID)
	logger.Info("Iniciando atualização de tendências")

	tracker := s.metrics.Track(TrendRefreshJob)
	err := tracker.End(s.trendRepo.RefreshSlopes(ctx))

	s.mutex.Lock()
	s.running = false
	s.lastCompletedAt = time.Now()
	s.lastError = ""
	if err != nil {
		s.lastError = err.Error()
	}
	s.mutex.Unlock()

	if err != nil {
		logger.WithError(err).Error("Atualização de tendências falhou")
		return err
	}

	logger.Info("Atualização de tendências concluída")
	return nil
}

// GetStatus retorna o status atual do agendador
func (s *TrendRefreshService) GetStatus() map[string]any {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return map[string]any{
		"enabled":                s.config.Enabled,
		"cron":                   s.config.CronSchedule,
		"running":                s.running,
		"last_run_id":            s.lastRunID,
		"last_sync_started_at":   s.lastStartedAt,
		"last_sync_completed_at": s.lastCompletedAt,
		"last_error":             s.lastError,
	}
}
