package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type metrics struct {
	sessionsCreatedCounter  *prometheus.CounterVec
	movesAppliedCounter     *prometheus.CounterVec
	movesRejectedCounter    *prometheus.CounterVec
	roundsScoredCounter     prometheus.Counter
	remoteBotFailureCounter prometheus.Counter
	activeSessionsGauge     prometheus.Gauge
}

func (m *metrics) SessionCreated(kind string) {
	m.sessionsCreatedCounter.WithLabelValues(kind).Inc()
}

func (m *metrics) MoveApplied(kind string) {
	m.movesAppliedCounter.WithLabelValues(kind).Inc()
}

func (m *metrics) MoveRejected(kind string) {
	m.movesRejectedCounter.WithLabelValues(kind).Inc()
}

func (m *metrics) RoundScored() {
	m.roundsScoredCounter.Inc()
}

func (m *metrics) RemoteBotFailure() {
	m.remoteBotFailureCounter.Inc()
}

func (m *metrics) SetActiveSessions(count int) {
	m.activeSessionsGauge.Set(float64(count))
}

var Metrics = &metrics{
	sessionsCreatedCounter: promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cardtable_sessions_created_total",
		Help: "Total number of game sessions created",
	}, []string{"game"}),
	movesAppliedCounter: promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cardtable_moves_applied_total",
		Help: "Total number of moves accepted by the engines",
	}, []string{"game"}),
	movesRejectedCounter: promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cardtable_moves_rejected_total",
		Help: "Total number of moves rejected by the engines",
	}, []string{"game"}),
	roundsScoredCounter: promauto.NewCounter(prometheus.CounterOpts{
		Name: "cardtable_hearts_rounds_scored_total",
		Help: "Total number of Hearts rounds scored",
	}),
	remoteBotFailureCounter: promauto.NewCounter(prometheus.CounterOpts{
		Name: "cardtable_remote_bot_failures_total",
		Help: "Remote decisions that failed or were rejected",
	}),
	activeSessionsGauge: promauto.NewGauge(prometheus.GaugeOpts{
		Name: "cardtable_active_sessions",
		Help: "Count of the sessions in the session manager registry",
	}),
}
