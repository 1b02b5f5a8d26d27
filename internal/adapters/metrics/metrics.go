// Package metrics provides the planner's MetricsSink collaborator
// (spec.md §6 "Metrics sink"). Grounded on the teacher's
// telemetry.Telemetry adapter shape (v3/internal/adapters/telemetry) —
// a narrow interface plus a concrete adapter constructor — but backed
// by the real github.com/prometheus/client_golang instead of the
// teacher's own hand-rolled span buffer, since the pack's
// n9te9-go-graphql-federation-gateway and opentofu-opentofu repos both
// pull in the real client.
package metrics

// Sink mirrors domain.MetricsSink; adapters implement it directly so
// the planner package need not import this one.
type Sink interface {
	IncrMutactionCount(projectID string, by int)
}

// NoopSink discards every count. Used when metrics are disabled.
type NoopSink struct{}

// IncrMutactionCount implements Sink.
func (NoopSink) IncrMutactionCount(string, int) {}

var _ Sink = NoopSink{}
