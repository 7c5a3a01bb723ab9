package handler

import (
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/sales-dashboard-api/internal/scheduler"
	"github.com/vfg2006/sales-dashboard-api/pkg/apiErrors"
	"github.com/vfg2006/sales-dashboard-api/pkg/log"
)

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(jobs []scheduler.Job) http.Handler {
	byName := make(map[string]scheduler.Job, len(jobs))
	for _, job := range jobs {
		byName[job.Name()] = job
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		job, exists := byName[cronType]
		if !exists {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido", map[string]string{"type": cronType})
			return
		}

		runID, err := job.TriggerManualSync(r.Context())
		if err != nil {
			if errors.Is(err, scheduler.ErrJobAlreadyRunning) {
				apiErrors.WriteError(w, apiErrors.ErrJobAlreadyRunning, err.Error(), nil)
				return
			}
			logger.WithError(err).WithField("type", cronType).Error("cron: erro ao iniciar job")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao iniciar cron job", nil)
			return
		}

		writeJSON(w, r, http.StatusAccepted, map[string]any{
			"message": "Cron job iniciada com sucesso",
			"type":    cronType,
			"run_id":  runID,
		})
	})
}

// GetCronStatus retorna o status das cron jobs
func GetCronStatus(jobs []scheduler.Job) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		status := make(map[string]any, len(jobs))
		for _, job := range jobs {
			status[job.Name()] = job.GetStatus()
		}

		writeJSON(w, r, http.StatusOK, status)
	})
}
