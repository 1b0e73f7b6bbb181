// Package metrics defines the Prometheus collectors for index builds and
// query evaluation. A nil *Metrics is valid and records nothing.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Result types recorded by ObserveQuery.
const (
	ResultEmpty   = "empty"
	ResultNoMatch = "no_match"
	ResultHit     = "hit"
	ResultError   = "error"
)

// Metrics holds all Prometheus collectors.
type Metrics struct {
	QueriesTotal     *prometheus.CounterVec
	QueryDuration    prometheus.Histogram
	ResultsCount     prometheus.Histogram
	IndexBuildsTotal prometheus.Counter
	IndexedItems     prometheus.Gauge
	IndexedTokens    prometheus.Gauge
}

// New creates the collectors under namespace and registers them with reg.
// A nil reg registers with the default Prometheus registry.
func New(reg prometheus.Registerer, namespace string) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	m := &Metrics{
		QueriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "queries_total",
				Help:      "Total queries by result type (empty, no_match, hit, error).",
			},
			[]string{"result_type"},
		),
		QueryDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "query_duration_seconds",
				Help:      "Query evaluation latency in seconds.",
				Buckets:   []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
			},
		),
		ResultsCount: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "results_count",
				Help:      "Number of results returned per query.",
				Buckets:   []float64{0, 1, 2, 3, 5, 10, 25},
			},
		),
		IndexBuildsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "index_builds_total",
				Help:      "Total index builds.",
			},
		),
		IndexedItems: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "indexed_items",
				Help:      "Items in the most recently built index.",
			},
		),
		IndexedTokens: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "indexed_tokens",
				Help:      "Distinct tokens in the most recently built index.",
			},
		),
	}

	for _, c := range []prometheus.Collector{
		m.QueriesTotal,
		m.QueryDuration,
		m.ResultsCount,
		m.IndexBuildsTotal,
		m.IndexedItems,
		m.IndexedTokens,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) ObserveQuery(resultType string, returned int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.QueriesTotal.WithLabelValues(resultType).Inc()
	m.QueryDuration.Observe(elapsed.Seconds())
	if resultType != ResultError {
		m.ResultsCount.Observe(float64(returned))
	}
}

func (m *Metrics) ObserveBuild(items, tokens int) {
	if m == nil {
		return
	}
	m.IndexBuildsTotal.Inc()
	m.IndexedItems.Set(float64(items))
	m.IndexedTokens.Set(float64(tokens))
}
