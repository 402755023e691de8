// Package metrics holds the Prometheus counters for puzzle play.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Kurt-jhaive/valentine-puzzle/internal/puzzle"
)

// Metrics is a private registry so tests can build as many as they like.
type Metrics struct {
	reg *prometheus.Registry

	SessionsStarted prometheus.Counter
	WordsSubmitted  *prometheus.CounterVec
	GiveUps         prometheus.Counter
	Confirmations   *prometheus.CounterVec
}

// New registers every counter on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		reg: prometheus.NewRegistry(),
		SessionsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "valentine_sessions_started_total",
			Help: "Puzzle sessions created.",
		}),
		WordsSubmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "valentine_words_submitted_total",
			Help: "Word submissions by result (solved, repeat, wrong).",
		}, []string{"result"}),
		GiveUps: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "valentine_give_ups_total",
			Help: "Sessions where the player gave up.",
		}),
		Confirmations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "valentine_confirmations_total",
			Help: "Confirmation submissions by result (accepted, rejected).",
		}, []string{"result"}),
	}
	m.reg.MustRegister(m.SessionsStarted, m.WordsSubmitted, m.GiveUps, m.Confirmations)
	return m
}

// Word counts one word submission; an empty result is ignored.
func (m *Metrics) Word(r puzzle.Result) {
	if r == "" {
		return
	}
	m.WordsSubmitted.WithLabelValues(string(r)).Inc()
}

// Confirmation counts one confirmation submission.
func (m *Metrics) Confirmation(ok bool) {
	label := "rejected"
	if ok {
		label = "accepted"
	}
	m.Confirmations.WithLabelValues(label).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}
