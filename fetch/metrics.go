package fetch

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "plotkit"
	subsystem = "fetch"
)

// Metrics counts the requests made by a Buffer and the records they gave.
type Metrics struct {
	requests *prometheus.CounterVec
	records  prometheus.Counter
}

func NewMetrics() *Metrics {
	return &Metrics{
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "requests_total",
				Help:      "Total number of fetched locations.",
			},
			[]string{"scheme", "result"},
		),
		records: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "records_total",
				Help:      "Total number of decoded records.",
			},
		),
	}
}

func (m *Metrics) observe(scheme string, count int, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	if scheme == "" {
		scheme = "file"
	}
	m.requests.WithLabelValues(scheme, result).Inc()
	m.records.Add(float64(count))
}

// Describe implements prometheus.Collector.
func (m *Metrics) Describe(ch chan<- *prometheus.Desc) {
	m.requests.Describe(ch)
	m.records.Describe(ch)
}

// Collect implements prometheus.Collector.
func (m *Metrics) Collect(ch chan<- prometheus.Metric) {
	m.requests.Collect(ch)
	m.records.Collect(ch)
}

// check interfaces
var (
	_ prometheus.Collector = (*Metrics)(nil)
)
