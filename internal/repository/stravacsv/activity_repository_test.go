package stravacsv

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoad(t *testing.T) {
	repo := NewActivityRepository(zap.NewNop())

	activities, err := repo.Load(context.Background(), filepath.Join("testdata", "activities.csv"))
	require.NoError(t, err)

	t.Run("skips rows with unparseable dates", func(t *testing.T) {
		require.Len(t, activities, 4)
		for _, a := range activities {
			assert.NotEqual(t, "Broken Row", a.Name)
		}
	})

	t.Run("parses complete rows", func(t *testing.T) {
		a := activities[0]
		assert.Equal(t, time.Date(2024, time.May, 18, 9, 4, 5, 0, time.UTC), a.Date)
		assert.Equal(t, "Run", a.Type)
		assert.Equal(t, "Morning Run", a.Name)
		assert.InDelta(t, 5.02, a.DistanceKm, 1e-9)
		assert.InDelta(t, 1620, a.ElapsedSec, 1e-9)
		assert.InDelta(t, 1545, a.MovingSec, 1e-9)
		assert.InDelta(t, 42.5, a.ElevationGain, 1e-9)
		assert.InDelta(t, 156, a.AvgHeartRate, 1e-9)
	})

	t.Run("treats blank and malformed cells as zero", func(t *testing.T) {
		assert.Zero(t, activities[1].AvgHeartRate)
		assert.Zero(t, activities[2].DistanceKm)
		assert.Zero(t, activities[2].AvgHeartRate)
	})
}

func TestLoad_HeaderMappedByName(t *testing.T) {
	// Column order differs from the standard export; values must still land
	// in the right fields.
	dir := t.TempDir()
	path := filepath.Join(dir, "activities.csv")
	csv := "Activity Name,Distance,Activity Date,Activity Type\n" +
		"Reordered Run,8.4,\"01 Jun 2024, 10:00:00\",Run\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))

	repo := NewActivityRepository(zap.NewNop())
	activities, err := repo.Load(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, activities, 1)

	assert.Equal(t, "Reordered Run", activities[0].Name)
	assert.Equal(t, "Run", activities[0].Type)
	assert.InDelta(t, 8.4, activities[0].DistanceKm, 1e-9)
}

func TestLoad_Errors(t *testing.T) {
	repo := NewActivityRepository(zap.NewNop())
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		_, err := repo.Load(context.Background(), filepath.Join(dir, "absent.csv"))
		assert.Error(t, err)
	})

	t.Run("header only", func(t *testing.T) {
		path := filepath.Join(dir, "empty.csv")
		require.NoError(t, os.WriteFile(path, []byte("Activity Date,Distance\n"), 0o644))

		_, err := repo.Load(context.Background(), path)
		assert.ErrorContains(t, err, "no data rows")
	})

	t.Run("missing date column", func(t *testing.T) {
		path := filepath.Join(dir, "nodates.csv")
		require.NoError(t, os.WriteFile(path, []byte("Distance,Name\n5.0,Run\n"), 0o644))

		_, err := repo.Load(context.Background(), path)
		assert.ErrorContains(t, err, "Activity Date")
	})
}
