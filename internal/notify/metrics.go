package notify

import "github.com/prometheus/client_golang/prometheus"

var (
	deliveredCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "fittrack",
		Subsystem: "dispatcher",
		Name:      "reminders_delivered_total",
		Help:      "Number of due reminders published to Kafka.",
	})

	retryCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "fittrack",
		Subsystem: "dispatcher",
		Name:      "reminders_retried_total",
		Help:      "Number of reminder deliveries that failed and were scheduled for another attempt.",
	})

	dlqCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fittrack",
		Subsystem: "dispatcher",
		Name:      "reminders_dlq_total",
		Help:      "Number of reminders abandoned to the dead-letter table, labeled by reason.",
	}, []string{"reason"})

	batchDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "fittrack",
		Subsystem: "dispatcher",
		Name:      "batch_duration_seconds",
		Help:      "Time spent claiming, publishing and settling a batch of due reminders.",
		Buckets:   prometheus.ExponentialBuckets(0.01, 2, 10),
	})
)

func init() {
	prometheus.MustRegister(deliveredCounter, retryCounter, dlqCounter, batchDuration)
}
