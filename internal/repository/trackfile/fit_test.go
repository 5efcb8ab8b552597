package trackfile

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tormoder/fit"

	"github.com/activity-analytics/internal/domain"
)

// writeFITFixture encodes an activity with the given records and writes it
// gzip-compressed, the way recorded rides arrive.
func writeFITFixture(t *testing.T, records []*fit.RecordMsg) string {
	t.Helper()

	file, err := fit.NewFile(fit.FileTypeActivity, fit.NewHeader(fit.V20, true))
	require.NoError(t, err)

	activity, err := file.Activity()
	require.NoError(t, err)
	activity.Records = records

	var raw bytes.Buffer
	require.NoError(t, fit.Encode(&raw, file, binary.LittleEndian))

	path := filepath.Join(t.TempDir(), "ride.fit.gz")
	out, err := os.Create(path)
	require.NoError(t, err)
	gz := gzip.NewWriter(out)
	_, err = gz.Write(raw.Bytes())
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, out.Close())
	return path
}

func positionedRecord(lon, lat float64, ts time.Time) *fit.RecordMsg {
	rec := fit.NewRecordMsg()
	rec.PositionLat = fit.NewLatitudeDegrees(lat)
	rec.PositionLong = fit.NewLongitudeDegrees(lon)
	rec.Timestamp = ts
	return rec
}

func TestParse_FIT(t *testing.T) {
	repo := testRepo()
	start := time.Date(2024, time.May, 18, 9, 0, 0, 0, time.UTC)

	gap := fit.NewRecordMsg() // tunnel record: timestamp, no position
	gap.Timestamp = start.Add(1 * time.Second)

	path := writeFITFixture(t, []*fit.RecordMsg{
		positionedRecord(-1.48, 53.38, start),
		gap,
		positionedRecord(-1.47, 53.381, start.Add(2*time.Second)),
		positionedRecord(-1.46, 53.382, start.Add(3*time.Second)),
	})

	res := repo.Parse(context.Background(), path, 1)

	require.NoError(t, res.Err)
	assert.Equal(t, domain.FormatFITGz, res.Format)
	assert.True(t, res.Valid())
	require.Len(t, res.Points, 3, "records without a position emit no point")

	// Coordinates round-trip through the fixed-point semicircle encoding.
	assert.InDelta(t, -1.48, res.Points[0].Lon, 1e-6)
	assert.InDelta(t, 53.38, res.Points[0].Lat, 1e-6)
	assert.InDelta(t, -1.46, res.Points[2].Lon, 1e-6)
	assert.InDelta(t, 53.382, res.Points[2].Lat, 1e-6)
	assert.Nil(t, res.Points[0].Elevation)

	assert.WithinDuration(t, start, res.Points[0].Time, time.Second)
	assert.WithinDuration(t, start.Add(3*time.Second), res.Points[2].Time, time.Second)

	// Two passes over the same file decode identically.
	second := repo.Parse(context.Background(), path, 1)
	require.NoError(t, second.Err)
	assert.Equal(t, res.Points, second.Points)
}

func TestParse_FITStride(t *testing.T) {
	repo := testRepo()
	start := time.Date(2024, time.May, 18, 9, 0, 0, 0, time.UTC)

	var records []*fit.RecordMsg
	for i := 0; i < 6; i++ {
		records = append(records, positionedRecord(-1.48+float64(i)*0.01, 53.38, start.Add(time.Duration(i)*time.Second)))
	}
	path := writeFITFixture(t, records)

	full := repo.Parse(context.Background(), path, 1)
	require.NoError(t, full.Err)
	require.Len(t, full.Points, 6)

	sampled := repo.Parse(context.Background(), path, 3)
	require.NoError(t, sampled.Err)
	require.Len(t, sampled.Points, 2)
	// Every 3rd record: the 3rd and 6th of the file.
	assert.Equal(t, full.Points[2], sampled.Points[0])
	assert.Equal(t, full.Points[5], sampled.Points[1])
}

func TestParse_FITStrideCountsAllRecords(t *testing.T) {
	repo := testRepo()
	start := time.Date(2024, time.May, 18, 9, 0, 0, 0, time.UTC)

	gap := fit.NewRecordMsg()
	gap.Timestamp = start.Add(1 * time.Second)

	// The counter runs over every record in file order, positioned or not:
	// with stride 2 the 2nd and 4th records are retained, and the 2nd has
	// no position.
	path := writeFITFixture(t, []*fit.RecordMsg{
		positionedRecord(-1.48, 53.38, start),
		gap,
		positionedRecord(-1.47, 53.381, start.Add(2*time.Second)),
		positionedRecord(-1.46, 53.382, start.Add(3*time.Second)),
	})

	res := repo.Parse(context.Background(), path, 2)

	require.NoError(t, res.Err)
	require.Len(t, res.Points, 1)
	assert.InDelta(t, -1.46, res.Points[0].Lon, 1e-6)
	assert.InDelta(t, 53.382, res.Points[0].Lat, 1e-6)
}
