//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"example.com/fittrack/internal/domain"
	"example.com/fittrack/internal/store"
	"example.com/fittrack/internal/testsupport"
)

func TestStoreRoundTripsRecords(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
	defer cancel()

	pool := testsupport.StartPostgres(ctx, t)
	s := New(pool)
	var _ store.Store = s

	_, ok, err := s.Get(ctx, "user_profile")
	require.NoError(t, err)
	require.False(t, ok)

	profile := domain.UserProfile{
		WeightKG:      80,
		HeightCM:      180,
		BirthDate:     domain.NewDate(1994, time.March, 2),
		Sex:           domain.SexMale,
		ActivityLevel: domain.ActivityModerate,
	}
	require.NoError(t, store.SaveJSON(ctx, s, "user_profile", profile))

	got, ok, err := store.LoadJSON[domain.UserProfile](ctx, s, "user_profile")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, profile.WeightKG, got.WeightKG)
	require.True(t, profile.BirthDate.Equal(got.BirthDate))

	profile.WeightKG = 78
	require.NoError(t, store.SaveJSON(ctx, s, "user_profile", profile))
	got, _, err = store.LoadJSON[domain.UserProfile](ctx, s, "user_profile")
	require.NoError(t, err)
	require.Equal(t, 78.0, got.WeightKG, "set overwrites the whole record")

	require.NoError(t, s.Remove(ctx, "user_profile"))
	_, ok, err = s.Get(ctx, "user_profile")
	require.NoError(t, err)
	require.False(t, ok)
}
