// Package metrics holds the service's Prometheus instrumentation. Everything
// is registered on the default registry and served by the /metrics route.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values for RunsTotal.
const (
	OutcomeOK     = "ok"
	OutcomeNoData = "no_data"
	OutcomeFailed = "failed"
)

// Sink label values for DispatchFailures.
const (
	SinkWriteback = "thingspeak"
	SinkEmail     = "email"
)

var (
	// RunsTotal counts classification passes by outcome.
	RunsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "infection_risk_runs_total",
		Help: "Classification passes by outcome (ok, no_data, failed).",
	}, []string{"outcome"})

	// DispatchFailures counts deliveries that failed, per sink. The two
	// sinks report independently, so one run can bump both.
	DispatchFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "infection_risk_dispatch_failures_total",
		Help: "Failed writeback and email deliveries.",
	}, []string{"sink"})

	// LastDominantLabel is the cluster label elected by the most recent
	// completed run. Only meaningful under the mode policy.
	LastDominantLabel = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "infection_risk_last_dominant_label",
		Help: "Cluster label elected by the most recent completed run.",
	})

	// LastWindowSize is how many readings the most recent completed run
	// classified.
	LastWindowSize = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "infection_risk_last_window_size",
		Help: "Readings classified by the most recent completed run.",
	})
)
