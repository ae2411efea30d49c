// Package metrics exposes prometheus instrumentation for the booking flow.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// SessionsStarted counts freshly provisioned reservation sessions.
	SessionsStarted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "concierge_sessions_started_total",
		Help: "Number of reservation sessions started.",
	})

	// TurnsProcessed counts processed turns, labelled by the step the
	// session landed on.
	TurnsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "concierge_turns_total",
		Help: "Number of conversation turns processed, by resulting step.",
	}, []string{"step"})
)

// Handler serves the prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
