package db

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFilesAreOrdered(t *testing.T) {
	files, err := Files()
	require.NoError(t, err)
	require.Equal(t, []string{"0001_init.up.sql", "0002_notification_dlq.up.sql"}, files)
}

func TestDescribe(t *testing.T) {
	require.Equal(t, "notification dlq", describe("0002_notification_dlq.up.sql"))
	require.Equal(t, "init", describe("0001_init.up.sql"))
}
