package metrics

import "github.com/prometheus/client_golang/prometheus"

// Результаты переходов машины состояний
const (
	ResultChanged  = "changed"
	ResultNoop     = "noop"
	ResultNotFound = "not_found"
)

// Interaction Prometheus metrics.
var (
	InteractionTransitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fieldmap",
			Name:      "interaction_transitions_total",
			Help:      "Modal open/close requests by outcome",
		},
		[]string{"action", "result"},
	)

	EventsPublishFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "fieldmap",
			Name:      "interaction_events_publish_failures_total",
			Help:      "Interaction events that could not be written to the stream",
		},
	)

	WorkerMessagesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "fieldmap",
			Name:      "worker_messages_total",
			Help:      "Stream messages handled by the stats worker",
		},
		[]string{"status"}, // "processed" / "skipped" / "failed"
	)
)

func init() {
	prometheus.MustRegister(InteractionTransitionsTotal)
	prometheus.MustRegister(EventsPublishFailuresTotal)
	prometheus.MustRegister(WorkerMessagesTotal)
}

var sessionsGaugeRegistered bool

// RegisterSessionsGauge публикует число живых сессий. Вызывается один раз из main.
func RegisterSessionsGauge(count func() int) {
	if sessionsGaugeRegistered {
		return
	}
	prometheus.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Namespace: "fieldmap",
			Name:      "active_sessions",
			Help:      "Interaction sessions currently held in memory",
		},
		func() float64 { return float64(count()) },
	))
	sessionsGaugeRegistered = true
}
