package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "")
	t.Setenv("REMINDER_REINFORCEMENTS", "")

	cfg := Load()
	require.Equal(t, BackendPostgres, cfg.StoreBackend)
	require.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	require.Equal(t, "supplement_reminders", cfg.ReminderTopic)
	require.Equal(t, 5, cfg.ReminderReinforcements)
	require.Equal(t, time.Hour, cfg.ReminderInterval)
	require.True(t, cfg.NotificationsEnabled)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("STORE_BACKEND", "Memory")
	t.Setenv("KAFKA_BROKERS", " a:1 , ,b:2")
	t.Setenv("DISPATCH_POLL_INTERVAL", "3s")
	t.Setenv("DISPATCH_BATCH_SIZE", "7")
	t.Setenv("TIMEZONE", "America/Sao_Paulo")
	t.Setenv("NOTIFICATIONS_ENABLED", "false")

	cfg := Load()
	require.Equal(t, BackendMemory, cfg.StoreBackend)
	require.Equal(t, []string{"a:1", "b:2"}, cfg.KafkaBrokers)
	require.Equal(t, 3*time.Second, cfg.DispatchPollInterval)
	require.Equal(t, 7, cfg.DispatchBatchSize)
	require.Equal(t, "America/Sao_Paulo", cfg.Location.String())
	require.False(t, cfg.NotificationsEnabled)
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("DISPATCH_BATCH_SIZE", "many")
	t.Setenv("REMINDER_INTERVAL", "soon")
	t.Setenv("TIMEZONE", "Mars/Olympus")

	cfg := Load()
	require.Equal(t, 25, cfg.DispatchBatchSize)
	require.Equal(t, time.Hour, cfg.ReminderInterval)
	require.Equal(t, time.Local, cfg.Location)
}
