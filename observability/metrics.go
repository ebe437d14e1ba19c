// Package observability exports search activity as Prometheus metrics.
package observability

import (
	"context"
	"errors"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/pdrpinto/search"
)

// Outcome labels for the searches_total counter.
const (
	OutcomeSolved      = "solved"
	OutcomeNoSolution  = "no_solution"
	OutcomeDepthLimit  = "depth_limit"
	OutcomeMemoryLimit = "memory_limit"
	OutcomeCancelled   = "cancelled"
	OutcomeError       = "error"
)

type Metrics struct {
	expansions *prometheus.CounterVec
	searches   *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	discovered *prometheus.HistogramVec
	length     *prometheus.HistogramVec
	frontier   *prometheus.GaugeVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		expansions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "search_expansions_total",
				Help: "Total number of states expanded",
			},
			[]string{"strategy"},
		),
		searches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "search_runs_total",
				Help: "Total number of finished searches by outcome",
			},
			[]string{"strategy", "outcome"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "search_duration_seconds",
				Help:    "Wall time of finished searches",
				Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
			},
			[]string{"strategy"},
		),
		discovered: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "search_discovered_states",
				Help:    "Distinct states recorded by finished searches",
				Buckets: prometheus.ExponentialBuckets(1, 8, 9),
			},
			[]string{"strategy"},
		),
		length: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "search_solution_length",
				Help:    "Number of actions in found solutions",
				Buckets: prometheus.LinearBuckets(0, 20, 10),
			},
			[]string{"strategy"},
		),
		frontier: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "search_frontier_size",
				Help: "Frontier size seen by the latest expansion",
			},
			[]string{"strategy"},
		),
	}
	for _, c := range []prometheus.Collector{m.expansions, m.searches, m.duration, m.discovered, m.length, m.frontier} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Hooks returns engine hooks feeding the collectors.
func (m *Metrics) Hooks() search.Hooks {
	return search.Hooks{
		OnExpand: m.observeExpand,
		OnFinish: m.observeFinish,
	}
}

func (m *Metrics) observeExpand(event search.ExpandEvent) {
	strategy := string(event.Kind)
	m.expansions.WithLabelValues(strategy).Inc()
	m.frontier.WithLabelValues(strategy).Set(float64(event.Frontier))
}

func (m *Metrics) observeFinish(event search.FinishEvent) {
	strategy := string(event.Kind)
	m.searches.WithLabelValues(strategy, Outcome(event.Found, event.Err)).Inc()
	m.duration.WithLabelValues(strategy).Observe(event.Elapsed.Seconds())
	m.discovered.WithLabelValues(strategy).Observe(float64(event.Discovered))
	if event.Found {
		m.length.WithLabelValues(strategy).Observe(float64(event.Length))
	}
}

// Outcome maps a search result to its metric label.
func Outcome(found bool, err error) string {
	switch {
	case found:
		return OutcomeSolved
	case errors.Is(err, search.ErrNoSolution):
		return OutcomeNoSolution
	case errors.Is(err, search.ErrDepthLimit):
		return OutcomeDepthLimit
	case errors.Is(err, search.ErrMemoryLimit):
		return OutcomeMemoryLimit
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return OutcomeCancelled
	}
	return OutcomeError
}
