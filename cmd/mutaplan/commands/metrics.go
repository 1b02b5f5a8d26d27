package commands

import "github.com/prometheus/client_golang/prometheus"

// prometheusRegisterer returns the registerer the `plan` command's
// PrometheusSink registers against. A fresh registry rather than
// prometheus.DefaultRegisterer: a one-shot CLI invocation has no
// /metrics endpoint to scrape, so the counter only needs to survive
// the call, not the process.
func prometheusRegisterer() prometheus.Registerer {
	return prometheus.NewRegistry()
}
