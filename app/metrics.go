package app

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
)

const metricsNamespace = "charity"

// Metrics collects statistics of all engine operations.
type Metrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	invested   *prometheus.CounterVec
	donated    *prometheus.CounterVec
}

// NewMetrics creates all collectors and registers them with given registerer.
// A nil registerer leaves the collectors unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "engine",
			Name:      "operations_total",
			Help:      "Counts engine operations by name and result.",
		}, []string{"op", "result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: "engine",
			Name:      "operation_duration_seconds",
			Help:      "Time spent executing engine operations.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op"}),
		invested: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "pool",
			Name:      "invested_total",
			Help:      "Amount of base units invested, by token.",
		}, []string{"token"}),
		donated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: "pool",
			Name:      "donated_total",
			Help:      "Amount of base units donated, by token.",
		}, []string{"token"}),
	}
	if reg != nil {
		reg.MustRegister(m.operations, m.duration, m.invested, m.donated)
	}
	return m
}

func (m *Metrics) observe(op string, start time.Time, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.operations.WithLabelValues(op, result).Inc()
	m.duration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

func (m *Metrics) addInvested(token string, amount decimal.Decimal) {
	f, _ := amount.Float64()
	m.invested.WithLabelValues(token).Add(f)
}

func (m *Metrics) addDonated(token string, amount decimal.Decimal) {
	f, _ := amount.Float64()
	m.donated.WithLabelValues(token).Add(f)
}
