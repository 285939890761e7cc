package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// StoreMetrics records counters for record-store activity.
type StoreMetrics struct {
	mutations   *prometheus.CounterVec
	settlements prometheus.Counter
	corrupt     prometheus.Counter
}

// NewStoreMetrics registers the store metrics on the provided registerer.
func NewStoreMetrics(reg prometheus.Registerer) *StoreMetrics {
	if reg == nil {
		return &StoreMetrics{}
	}
	mutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "store_mutations_total",
		Help: "Record store mutations by slot and operation.",
	}, []string{"slot", "op"})
	settlements := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "settlements_total",
		Help: "Completed settlement calculations.",
	})
	corrupt := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "store_corrupt_payloads_total",
		Help: "Slot payloads that failed to decode.",
	})
	reg.MustRegister(mutations, settlements, corrupt)
	return &StoreMetrics{
		mutations:   mutations,
		settlements: settlements,
		corrupt:     corrupt,
	}
}

// IncMutation increments the mutation counter for the slot and operation.
func (m *StoreMetrics) IncMutation(slot, op string) {
	if m == nil || m.mutations == nil {
		return
	}
	m.mutations.WithLabelValues(normalizeLabel(slot), normalizeLabel(op)).Inc()
}

// IncSettlement increments the settlement counter.
func (m *StoreMetrics) IncSettlement() {
	if m == nil || m.settlements == nil {
		return
	}
	m.settlements.Inc()
}

// IncCorruptPayload increments the corrupt payload counter.
func (m *StoreMetrics) IncCorruptPayload() {
	if m == nil || m.corrupt == nil {
		return
	}
	m.corrupt.Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
