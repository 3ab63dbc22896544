// Package metrics defines Prometheus metrics for the escalation bot, covering
// command dispatch outcomes, escalations and config document writes.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Command outcomes.
const (
	OutcomeOK        = "ok"
	OutcomeUserError = "user_error"
	OutcomeDenied    = "denied"
	OutcomeError     = "error"
)

var (
	// CommandsTotal counts dispatched chat commands by one of the Outcome
	// values.
	CommandsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "escalate_commands_total",
		Help: "Total number of chat commands dispatched, by command path and outcome",
	}, []string{"command", "outcome"})
	// EscalationsTotal counts successful escalations per department key.
	EscalationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "escalate_escalations_total",
		Help: "Total number of tickets escalated, by destination",
	}, []string{"department"})
	// ConfigWrites counts config document saves. reason is default, backfill
	// or update.
	ConfigWrites = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "escalate_config_writes_total",
		Help: "Total number of escalation config document writes",
	}, []string{"reason"})
)

func init() {
	prometheus.MustRegister(CommandsTotal)
	prometheus.MustRegister(EscalationsTotal)
	prometheus.MustRegister(ConfigWrites)
}

// MetricsHandler serves the default registry in the Prometheus text format.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
