package notify

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"example.com/fittrack/internal/reminder"
)

func TestMemoryHostArmsAndCancels(t *testing.T) {
	ctx := context.Background()
	host := NewMemoryHost(true)

	granted, err := host.RequestPermission(ctx)
	require.NoError(t, err)
	require.True(t, granted)

	later := time.Date(2024, time.May, 6, 9, 0, 0, 0, time.UTC)
	earlier := later.Add(-time.Hour)
	h1, err := host.ScheduleAt(ctx, later, reminder.Payload{SupplementID: "supp_whey"})
	require.NoError(t, err)
	h2, err := host.ScheduleAt(ctx, earlier, reminder.Payload{SupplementID: "supp_creatine"})
	require.NoError(t, err)
	require.NotEqual(t, h1, h2)

	pending := host.Pending()
	require.Len(t, pending, 2)
	require.Equal(t, h2, pending[0].Handle)
	require.Equal(t, earlier, pending[0].At)

	require.NoError(t, host.CancelAll(ctx))
	require.Empty(t, host.Pending())
}

func TestMemoryHostDenied(t *testing.T) {
	granted, err := NewMemoryHost(false).RequestPermission(context.Background())
	require.NoError(t, err)
	require.False(t, granted)
}
