package calculator

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// Metric instruments — initialized once via InitMetrics().
var (
	pressCounter   metric.Int64Counter
	evalCounter    metric.Int64Counter
	errorCounter   metric.Int64Counter
	opsHistogram   metric.Float64Histogram
	resultGauge    metric.Float64Gauge
	sessionCounter metric.Int64UpDownCounter
)

// InitMetrics registers custom OTel metric instruments for the calculator domain.
// Call this once at startup (after observability.InitMetrics).
func InitMetrics() error {
	return initMetrics(otel.Meter("calculator"))
}

func initMetrics(meter metric.Meter) error {
	var err error

	pressCounter, err = meter.Int64Counter("calculator.presses.total",
		metric.WithDescription("Total number of keys pressed across all sessions"),
		metric.WithUnit("{press}"),
	)
	if err != nil {
		return fmt.Errorf("creating press counter: %w", err)
	}

	evalCounter, err = meter.Int64Counter("calculator.evaluations.total",
		metric.WithDescription("Total number of evaluations performed"),
		metric.WithUnit("{evaluation}"),
	)
	if err != nil {
		return fmt.Errorf("creating evaluation counter: %w", err)
	}

	errorCounter, err = meter.Int64Counter("calculator.errors.total",
		metric.WithDescription("Total number of calculator errors, including evaluations that produced Error"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return fmt.Errorf("creating error counter: %w", err)
	}

	opsHistogram, err = meter.Float64Histogram("calculator.operation.duration",
		metric.WithDescription("Duration of calculator operations in milliseconds"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.5, 1, 5, 10),
	)
	if err != nil {
		return fmt.Errorf("creating ops histogram: %w", err)
	}

	resultGauge, err = meter.Float64Gauge("calculator.last_result",
		metric.WithDescription("The last successfully evaluated result"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("creating result gauge: %w", err)
	}

	sessionCounter, err = meter.Int64UpDownCounter("calculator.sessions.active",
		metric.WithDescription("Sessions created minus sessions removed"),
		metric.WithUnit("{session}"),
	)
	if err != nil {
		return fmt.Errorf("creating session counter: %w", err)
	}

	return nil
}

// RecordEvicted takes n sessions removed by the janitor off the active
// sessions counter.
func RecordEvicted(ctx context.Context, n int) {
	if n <= 0 || sessionCounter == nil {
		return
	}
	sessionCounter.Add(ctx, -int64(n))
}

// Collector exposes store gauges in the Prometheus exposition served on /metrics.
type Collector struct {
	store    *Store
	sessions *prometheus.Desc
}

// NewCollector returns a prometheus.Collector reporting the live sessions of store.
func NewCollector(store *Store) *Collector {
	return &Collector{
		store: store,
		sessions: prometheus.NewDesc(
			"calculator_sessions",
			"Number of live calculator sessions.",
			nil, nil,
		),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.sessions
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.sessions, prometheus.GaugeValue, float64(c.store.Len()))
}
