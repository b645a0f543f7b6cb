// Package metrics exposes prometheus collectors for the hosted runs.
package metrics

import (
	"errors"
	"time"

	dmn "github.com/beka-birhanu/vinom-explorer/domain"
	"github.com/beka-birhanu/vinom-explorer/explorer"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	metricsNamespace = "vinom"
	runsSubsystem    = "explorer"
)

// RunMetrics implements i.RunMetrics.
type RunMetrics struct {
	// RunsCreated counts created runs.
	RunsCreated prometheus.Counter

	// RunsFinished counts finished runs.
	// Labels: reached (true, false)
	RunsFinished *prometheus.CounterVec

	// Operations counts run operations by outcome.
	// Labels: op (report, expand, next, step), outcome (ok, not_found, contract, frontier_full, error)
	Operations *prometheus.CounterVec

	// OperationSeconds measures how long operations hold the run lock.
	// Labels: op
	OperationSeconds *prometheus.HistogramVec

	// Frontier tracks the frontier size after the latest mutation.
	Frontier prometheus.Gauge
}

// New registers the collectors on reg.
func New(reg prometheus.Registerer) *RunMetrics {
	factory := promauto.With(reg)
	return &RunMetrics{
		RunsCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: runsSubsystem,
			Name:      "runs_created_total",
			Help:      "Number of exploration runs created.",
		}),
		RunsFinished: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: runsSubsystem,
			Name:      "runs_finished_total",
			Help:      "Number of exploration runs finished, by whether the goal was reached.",
		}, []string{"reached"}),
		Operations: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: runsSubsystem,
			Name:      "operations_total",
			Help:      "Run operations by outcome.",
		}, []string{"op", "outcome"}),
		OperationSeconds: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: runsSubsystem,
			Name:      "operation_seconds",
			Help:      "Time spent in run operations, lock included.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
		}, []string{"op"}),
		Frontier: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Subsystem: runsSubsystem,
			Name:      "frontier_size",
			Help:      "Frontier size of the most recently changed run.",
		}),
	}
}

func (m *RunMetrics) RunCreated() {
	m.RunsCreated.Inc()
}

func (m *RunMetrics) RunFinished(reachedGoal bool) {
	label := "false"
	if reachedGoal {
		label = "true"
	}
	m.RunsFinished.WithLabelValues(label).Inc()
}

func (m *RunMetrics) Operation(op string, d time.Duration, err error) {
	m.Operations.WithLabelValues(op, Outcome(err)).Inc()
	m.OperationSeconds.WithLabelValues(op).Observe(d.Seconds())
}

func (m *RunMetrics) FrontierSize(size int) {
	m.Frontier.Set(float64(size))
}

// Outcome labels the result of an operation.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, dmn.ErrRunNotFound):
		return "not_found"
	case errors.Is(err, explorer.ErrFrontierFull):
		return "frontier_full"
	case errors.Is(err, explorer.ErrAlreadyUpdated),
		errors.Is(err, explorer.ErrCostUnavailable),
		errors.Is(err, explorer.ErrOutOfBounds),
		errors.Is(err, explorer.ErrInvalidWall):
		return "contract"
	}
	return "error"
}
