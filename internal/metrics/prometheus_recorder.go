package metrics

import (
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once          sync.Once
	stageDuration *prom.HistogramVec
	runDuration   prom.Histogram
	runOutcome    *prom.CounterVec
	documentStats *prom.GaugeVec
	lineErrors    prom.Counter
}

// NewPrometheusRecorder constructs and registers Prometheus metrics on reg
// (a fresh registry when nil).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.once.Do(func() {
		pr.stageDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "homer",
			Name:      "stage_duration_seconds",
			Help:      "Duration of individual pipeline stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"})
		pr.runDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: "homer",
			Name:      "run_duration_seconds",
			Help:      "Total pipeline run duration",
			Buckets:   prom.DefBuckets,
		})
		pr.runOutcome = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "homer",
			Name:      "run_outcomes_total",
			Help:      "Pipeline run outcomes by final status",
		}, []string{"outcome"})
		pr.documentStats = prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: "homer",
			Name:      "document_entities",
			Help:      "Entity counts of the last generated document",
		}, []string{"entity"})
		pr.lineErrors = prom.NewCounter(prom.CounterOpts{
			Namespace: "homer",
			Name:      "line_errors_total",
			Help:      "Input lines skipped due to recoverable parse errors",
		})
		reg.MustRegister(pr.stageDuration, pr.runDuration, pr.runOutcome, pr.documentStats, pr.lineErrors)
	})
	return pr
}

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil || p.stageDuration == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveRunDuration(d time.Duration) {
	if p == nil || p.runDuration == nil {
		return
	}
	p.runDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncRunOutcome(outcome OutcomeLabel) {
	if p == nil || p.runOutcome == nil {
		return
	}
	p.runOutcome.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) SetDocumentStats(groups, links int) {
	if p == nil || p.documentStats == nil {
		return
	}
	p.documentStats.WithLabelValues("groups").Set(float64(groups))
	p.documentStats.WithLabelValues("links").Set(float64(links))
}

func (p *PrometheusRecorder) AddLineErrors(n int) {
	if p == nil || p.lineErrors == nil || n <= 0 {
		return
	}
	p.lineErrors.Add(float64(n))
}
