package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	ledgerAppendCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fittrack",
		Subsystem: "ledger",
		Name:      "appends_total",
		Help:      "Ledger append attempts partitioned by category kind and reconciliation outcome.",
	}, []string{"kind", "outcome"})
	ledgerWriteGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "fittrack",
		Subsystem: "ledger",
		Name:      "last_write_timestamp_seconds",
		Help:      "Unix timestamp of the most recent ledger mutation.",
	})
	storeDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "fittrack",
		Subsystem: "store",
		Name:      "operation_duration_seconds",
		Help:      "Latency of key/value store operations.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"op", "status"})
	rearmCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "fittrack",
		Subsystem: "reminder",
		Name:      "rearm_total",
		Help:      "Reminder re-arm passes partitioned by result.",
	}, []string{"result"})
	armedGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "fittrack",
		Subsystem: "reminder",
		Name:      "armed_triggers",
		Help:      "Number of triggers armed by the latest re-arm pass.",
	})
)

func init() {
	prometheus.MustRegister(ledgerAppendCounter, ledgerWriteGauge, storeDuration, rearmCounter, armedGauge)
}

// RecordLedgerAppend counts an append by kind ("training", "sport", "food") and outcome.
func RecordLedgerAppend(kind, outcome string) {
	ledgerAppendCounter.WithLabelValues(kind, outcome).Inc()
}

// RecordLedgerWrite updates the ledger write watermark gauge.
func RecordLedgerWrite(ts time.Time) {
	if ts.IsZero() {
		return
	}
	ledgerWriteGauge.Set(float64(ts.Unix()))
}

// ObserveStoreOperation records the latency of a store call.
func ObserveStoreOperation(op string, started time.Time, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	storeDuration.WithLabelValues(op, status).Observe(time.Since(started).Seconds())
}

// RecordRearm counts a re-arm pass and publishes the number of armed triggers.
func RecordRearm(result string, armed int) {
	rearmCounter.WithLabelValues(result).Inc()
	armedGauge.Set(float64(armed))
}
