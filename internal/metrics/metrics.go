package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "blastsms"

// Outcome labels.
const (
	OutcomeDelivered     = "delivered"
	OutcomeRejected      = "rejected"
	OutcomeError         = "error"
	OutcomeInvalid       = "invalid"
	OutcomeSuccess       = "success"
	OutcomeNotConfigured = "not_configured"
)

var (
	smsSendCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sms_sent_total",
			Help:      "SMS send attempts by provider and outcome.",
		},
		[]string{"provider", "outcome"},
	)

	mirrorFailureCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mirror_write_failures_total",
			Help:      "Outbound messages that could not be mirrored into the store.",
		},
	)

	pollRunCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "inbox_poll_runs_total",
			Help:      "Inbound poll runs by outcome.",
		},
		[]string{"outcome"},
	)

	inboundInsertedCounter = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "inbox_messages_inserted_total",
			Help:      "Messages newly stored by the inbound poller.",
		},
	)

	drainDurationHist = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "queue_drain_duration_seconds",
			Help:      "Duration of send queue drains.",
			Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 600, 1800},
		},
	)

	drainProcessedCounter = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "queue_messages_processed_total",
			Help:      "Queue messages processed by final status.",
		},
		[]string{"status"},
	)
)

func ObserveSend(provider, outcome string) {
	smsSendCounter.WithLabelValues(provider, outcome).Inc()
}

func ObserveMirrorFailure() {
	mirrorFailureCounter.Inc()
}

func ObservePoll(outcome string, inserted int) {
	pollRunCounter.WithLabelValues(outcome).Inc()
	if inserted > 0 {
		inboundInsertedCounter.Add(float64(inserted))
	}
}

func ObserveQueueMessage(status string) {
	drainProcessedCounter.WithLabelValues(status).Inc()
}

func ObserveDrain(d time.Duration) {
	drainDurationHist.Observe(d.Seconds())
}
