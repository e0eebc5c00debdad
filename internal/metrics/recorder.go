// Package metrics defines observability hooks for pipeline runs.
package metrics

import "time"

// OutcomeLabel enumerates terminal run outcomes for counters.
type OutcomeLabel string

const (
	OutcomeSuccess OutcomeLabel = "success"
	OutcomeFailed  OutcomeLabel = "failed"
)

// Recorder defines the hooks the pipeline calls. Implementations may forward
// to Prometheus or do nothing; all methods must be safe on the NoopRecorder
// so injection stays optional.
type Recorder interface {
	ObserveStageDuration(stage string, d time.Duration)
	ObserveRunDuration(d time.Duration)
	IncRunOutcome(outcome OutcomeLabel)
	SetDocumentStats(groups, links int)
	AddLineErrors(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are not
// configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveStageDuration(string, time.Duration) {}
func (NoopRecorder) ObserveRunDuration(time.Duration)           {}
func (NoopRecorder) IncRunOutcome(OutcomeLabel)                 {}
func (NoopRecorder) SetDocumentStats(int, int)                  {}
func (NoopRecorder) AddLineErrors(int)                          {}
