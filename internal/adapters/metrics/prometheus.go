package metrics

import "github.com/prometheus/client_golang/prometheus"

// PrometheusSink counts emitted mutactions per project via a single
// CounterVec, matching how the teacher's OpenTelemetryAdapter
// constructor takes a *Config and registers itself with a backend —
// here the backend is a prometheus.Registerer instead of an OTLP
// exporter.
type PrometheusSink struct {
	mutactions *prometheus.CounterVec
}

// NewPrometheusSink registers the counter with reg and returns a ready
// Sink. Pass prometheus.DefaultRegisterer for process-global metrics,
// or a fresh prometheus.NewRegistry() in tests.
func NewPrometheusSink(reg prometheus.Registerer) *PrometheusSink {
	c := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mutaplan",
		Name:      "mutactions_emitted_total",
		Help:      "Number of mutactions emitted per planner invocation, by project.",
	}, []string{"project_id"})
	reg.MustRegister(c)
	return &PrometheusSink{mutactions: c}
}

// IncrMutactionCount implements Sink.
func (s *PrometheusSink) IncrMutactionCount(projectID string, by int) {
	if by <= 0 {
		return
	}
	s.mutactions.WithLabelValues(projectID).Add(float64(by))
}

var _ Sink = (*PrometheusSink)(nil)
