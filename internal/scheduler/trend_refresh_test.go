package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-dashboard-api/infrastructure/repository/mocks"
	"github.com/vfg2006/sales-dashboard-api/internal/config"
	"github.com/vfg2006/sales-dashboard-api/pkg/metrics"
	"go.uber.org/mock/gomock"
)

func newTrendRefreshService(t *testing.T, enabled bool) (*TrendRefreshService, *mocks.MockTrendRepository) {
	ctrl := gomock.NewController(t)
	trendRepo := mocks.NewMockTrendRepository(ctrl)

	cfg := &config.Config{
		TrendRefresh: config.TrendRefresh{CronSchedule: "0 2 * * *", Enabled: enabled},
	}

	return NewTrendRefreshService(trendRepo, metrics.New(), cfg), trendRepo
}

func TestTrendRefreshService_RefreshTrendSlopes(t *testing.T) {
	ctx := context.Background()

	t.Run("sucesso", func(t *testing.T) {
		service, trendRepo := newTrendRefreshService(t, false)

		trendRepo.EXPECT().RefreshSlopes(gomock.Any()).Return(nil)

		require.NoError(t, service.RefreshTrendSlopes(ctx))

		status := service.GetStatus()
		assert.Equal(t, false, status["running"])
		assert.Len(t, status["last_run_id"], 10)
		assert.Empty(t, status["last_error"])
	})

	t.Run("falha fica registrada no status", func(t *testing.T) {
		service, trendRepo := newTrendRefreshService(t, false)

		trendRepo.EXPECT().RefreshSlopes(gomock.Any()).Return(errors.New("canceling statement due to statement timeout"))

		err := service.RefreshTrendSlopes(ctx)

		require.Error(t, err)
		assert.Contains(t, service.GetStatus()["last_error"], "statement timeout")
	})

	t.Run("execução sobreposta é descartada", func(t *testing.T) {
		service, trendRepo := newTrendRefreshService(t, false)

		started := make(chan struct{})
		release := make(chan struct{})
		trendRepo.EXPECT().RefreshSlopes(gomock.Any()).DoAndReturn(func(context.Context) error {
			close(started)
			<-release
			return nil
		})

		done := make(chan error, 1)
		go func() { done <- service.RefreshTrendSlopes(ctx) }()
		<-started

		assert.ErrorIs(t, service.RefreshTrendSlopes(ctx), ErrJobAlreadyRunning)
		_, err := service.TriggerManualSync(ctx)
		assert.ErrorIs(t, err, ErrJobAlreadyRunning)

		close(release)
		require.NoError(t, <-done)
	})
}

func TestTrendRefreshService_TriggerManualSync(t *testing.T) {
	service, trendRepo := newTrendRefreshService(t, false)

	finished := make(chan struct{})
	trendRepo.EXPECT().RefreshSlopes(gomock.Any()).DoAndReturn(func(context.Context) error {
		defer close(finished)
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	runID, err := service.TriggerManualSync(ctx)
	cancel()

	require.NoError(t, err)
	assert.Len(t, runID, 10)

	select {
	case <-finished:
	case <-time.After(2 * time.Second):
		t.Fatal("atualização manual não executou")
	}

	assert.Equal(t, runID, service.GetStatus()["last_run_id"])
}

func TestTrendRefreshService_StartDisabled(t *testing.T) {
	service, _ := newTrendRefreshService(t, false)

	assert.NoError(t, service.Start(context.Background()))
	assert.Equal(t, TrendRefreshJob, service.Name())
}

func TestTrendRefreshService_StartInvalidCron(t *testing.T) {
	service, _ := newTrendRefreshService(t, true)
	service.config.CronSchedule = "not a cron"

	assert.Error(t, service.Start(context.Background()))
}
