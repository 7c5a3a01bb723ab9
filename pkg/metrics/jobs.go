package metrics

import "time"

// Tracker instrumenta uma única execução de job
type Tracker struct {
	metrics *Metrics
	job     string
	start   time.Time
}

// Track inicia o acompanhamento de uma execução
func (m *Metrics) Track(job string) *Tracker {
	return &Tracker{metrics: m, job: job, start: time.Now()}
}

// End registra duração e status e devolve o erro sem alterá-lo
func (t *Tracker) End(err error) error {
	if t == nil || t.metrics == nil {
		return err
	}

	status := "success"
	if err != nil {
		status = "failure"
	}

	t.metrics.jobRuns.WithLabelValues(t.job, status).Inc()
	t.metrics.jobDuration.WithLabelValues(t.job).Observe(time.Since(t.start).Seconds())
	return err
}

// Skipped conta uma execução descartada por sobreposição
func (m *Metrics) Skipped(job string) {
	if m == nil {
		return
	}
	m.jobSkipped.WithLabelValues(job).Inc()
}
