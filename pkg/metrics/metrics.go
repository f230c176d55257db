package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "mockserver"

	metricLabelScenario = "scenario"
	metricLabelStatus   = "status"
)

// Metrics is the structure that holds all prometheus metrics
var (
	// ScenarioRequestCounter counts the requests answered by each failure scenario
	ScenarioRequestCounter = newCounterVec(
		"scenario_request_count",
		"Count of requests answered by each failure scenario",
		metricLabelScenario, metricLabelStatus,
	)
	// ScenarioRequestDuration observes how long each scenario took to answer
	ScenarioRequestDuration = newSummaryVec(
		"scenario_request_duration_seconds",
		"Seconds spent producing the response for each scenario",
		metricLabelScenario,
	)
	// FixtureRequestCounter counts the requests delegated to static fixture serving
	FixtureRequestCounter = newCounterVec(
		"fixture_request_count",
		"Number of requests delegated to the static fixture store",
	)
	// FixtureSeedCounter counts the fixture files seeded from blob storage
	FixtureSeedCounter = newCounterVec(
		"fixture_seed_count",
		"Number of fixture files seeded from blob storage",
		metricLabelStatus,
	)
)

func newSummaryVec(name, help string, labels ...string) *prometheus.SummaryVec {
	vec := prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		}, labels)
	prometheus.MustRegister(vec)
	return vec
}

func newCounterVec(name, help string, labels ...string) *prometheus.CounterVec {
	vec := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		}, labels)
	prometheus.MustRegister(vec)
	return vec
}
