package observability

import (
	"math"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type operationMetrics struct {
	requests *prometheus.CounterVec
	errors   *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	supply   prometheus.Gauge
	paused   *prometheus.GaugeVec
}

var (
	operationMetricsOnce sync.Once
	operationRegistry    *operationMetrics
)

// Operations returns the lazily-initialised registry recording ledger and
// registry operation outcomes.
func Operations() *operationMetrics {
	operationMetricsOnce.Do(func() {
		operationRegistry = &operationMetrics{
			requests: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "connectsphere",
				Subsystem: "core",
				Name:      "operations_total",
				Help:      "Total core operations segmented by module, operation, and outcome.",
			}, []string{"module", "operation", "outcome"}),
			errors: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "connectsphere",
				Subsystem: "core",
				Name:      "operation_errors_total",
				Help:      "Total rejected core operations segmented by module, operation, and failure code.",
			}, []string{"module", "operation", "code"}),
			latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
				Namespace: "connectsphere",
				Subsystem: "core",
				Name:      "operation_duration_seconds",
				Help:      "Latency distribution for core operations including commit.",
				Buckets:   prometheus.DefBuckets,
			}, []string{"module", "operation"}),
			supply: prometheus.NewGauge(prometheus.GaugeOpts{
				Namespace: "connectsphere",
				Subsystem: "token",
				Name:      "total_supply",
				Help:      "Total token supply in base units after the last committed operation.",
			}),
			paused: prometheus.NewGaugeVec(prometheus.GaugeOpts{
				Namespace: "connectsphere",
				Subsystem: "core",
				Name:      "module_paused",
				Help:      "Set to 1 while the module is paused.",
			}, []string{"module"}),
		}
		prometheus.MustRegister(
			operationRegistry.requests,
			operationRegistry.errors,
			operationRegistry.latency,
			operationRegistry.supply,
			operationRegistry.paused,
		)
	})
	return operationRegistry
}

// Observe records one operation. code is empty for successful operations and
// a stable failure class otherwise.
func (m *operationMetrics) Observe(module, operation, code string, duration time.Duration) {
	if m == nil {
		return
	}
	module = labelOr(module, "unknown")
	operation = labelOr(operation, "unknown")
	outcome := "success"
	if code = strings.TrimSpace(code); code != "" {
		outcome = "error"
		m.errors.WithLabelValues(module, operation, code).Inc()
	}
	m.requests.WithLabelValues(module, operation, outcome).Inc()
	m.latency.WithLabelValues(module, operation).Observe(duration.Seconds())
}

// RecordSupply updates the total supply gauge.
func (m *operationMetrics) RecordSupply(total *big.Int) {
	if m == nil {
		return
	}
	m.supply.Set(bigToFloat(total))
}

// SetPause flips the pause gauge for module.
func (m *operationMetrics) SetPause(module string, engaged bool) {
	if m == nil {
		return
	}
	value := 0.0
	if engaged {
		value = 1
	}
	m.paused.WithLabelValues(labelOr(module, "unknown")).Set(value)
}

func labelOr(value, fallback string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback
	}
	return trimmed
}

func labelAsset(asset string) string {
	trimmed := strings.TrimSpace(asset)
	if trimmed == "" {
		return "UNKNOWN"
	}
	return strings.ToUpper(trimmed)
}

func bigToFloat(value *big.Int) float64 {
	if value == nil {
		return 0
	}
	floatVal, acc := new(big.Float).SetInt(value).Float64()
	if acc != big.Exact {
		// Guard against NaN/Inf when conversion fails.
		if math.IsNaN(floatVal) || math.IsInf(floatVal, 0) {
			return 0
		}
	}
	return floatVal
}
