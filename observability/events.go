package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"connectsphere/core/events"
)

type eventMetrics struct {
	emitted   *prometheus.CounterVec
	transfers *prometheus.CounterVec
}

var (
	eventMetricsOnce sync.Once
	eventRegistry    *eventMetrics
)

// Events returns the metrics registry tracking delivered domain events.
func Events() *eventMetrics {
	eventMetricsOnce.Do(func() {
		eventRegistry = &eventMetrics{
			emitted: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "connectsphere",
				Subsystem: "events",
				Name:      "emitted_total",
				Help:      "Count of committed events segmented by type.",
			}, []string{"type"}),
			transfers: prometheus.NewCounterVec(prometheus.CounterOpts{
				Namespace: "connectsphere",
				Subsystem: "events",
				Name:      "transfers_total",
				Help:      "Count of token transfers segmented by asset.",
			}, []string{"asset"}),
		}
		prometheus.MustRegister(eventRegistry.emitted, eventRegistry.transfers)
	})
	return eventRegistry
}

// RecordTransfer increments the transfer counter for the supplied asset ticker.
func (m *eventMetrics) RecordTransfer(asset string) {
	if m == nil {
		return
	}
	m.transfers.WithLabelValues(labelAsset(asset)).Inc()
}

// Emit satisfies events.Emitter so the registry can sit in a fanout next to
// the downstream sink.
func (m *eventMetrics) Emit(evt events.Event) {
	if m == nil || evt == nil {
		return
	}
	m.emitted.WithLabelValues(labelOr(evt.EventType(), "unknown")).Inc()
	if transfer, ok := unwrap(evt).(events.TokenTransfer); ok {
		m.RecordTransfer(transfer.Token)
	}
}

func unwrap(evt events.Event) events.Event {
	if annotated, ok := evt.(events.Annotated); ok {
		return annotated.Inner
	}
	return evt
}
