package observability

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestRecordLedgerAppend(t *testing.T) {
	before := testutil.ToFloat64(ledgerAppendCounter.WithLabelValues("training", "inserted"))
	RecordLedgerAppend("training", "inserted")
	require.Equal(t, before+1, testutil.ToFloat64(ledgerAppendCounter.WithLabelValues("training", "inserted")))
}

func TestRecordRearmSetsGauge(t *testing.T) {
	RecordRearm("armed", 6)
	require.Equal(t, float64(6), testutil.ToFloat64(armedGauge))
	RecordRearm("permission_denied", 0)
	require.Equal(t, float64(0), testutil.ToFloat64(armedGauge))
}

func TestRecordLedgerWriteIgnoresZero(t *testing.T) {
	ts := time.Unix(1_700_000_000, 0)
	RecordLedgerWrite(ts)
	RecordLedgerWrite(time.Time{})
	require.Equal(t, float64(ts.Unix()), testutil.ToFloat64(ledgerWriteGauge))
}

func TestObserveStoreOperationLabelsErrors(t *testing.T) {
	ObserveStoreOperation("get", time.Now(), errors.New("boom"))
	require.Equal(t, 1, testutil.CollectAndCount(storeDuration, "fittrack_store_operation_duration_seconds"))
}
