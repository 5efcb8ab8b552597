package report_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/activity-analytics/internal/domain"
	"github.com/activity-analytics/internal/pkg/errors"
	"github.com/activity-analytics/internal/report"
	"github.com/activity-analytics/internal/usecase"
)

func sampleIngest() *usecase.IngestSummary {
	return &usecase.IngestSummary{
		Files:      3,
		ValidFiles: 2,
		Points: []domain.TrackPoint{
			{Lon: -1.48, Lat: 53.38},
			{Lon: -1.47, Lat: 53.39},
		},
		Failures: []domain.FileResult{
			{Path: "tracks/bad.fit.gz", Err: errors.ParseFailure("tracks/bad.fit.gz", assert.AnError)},
		},
	}
}

func sampleOutcomes() []usecase.RegionOutcome {
	percent := 0.42
	return []usecase.RegionOutcome{
		{
			Region: "sheffield",
			Result: &domain.CoverageResult{
				Region:           "sheffield",
				Kind:             domain.KindBoundingBox,
				CRS:              domain.CRSWebMercator,
				Geometry:         json.RawMessage(`{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,0]]]}`),
				RegionArea:       1000,
				CoveredArea:      4.2,
				Percent:          &percent,
				PointsConsidered: 2,
				PointsInRegion:   2,
				Predicate:        domain.PredicateWithin,
			},
		},
		{Region: "narnia", Err: errors.UnknownRegion("narnia")},
	}
}

func TestBuild(t *testing.T) {
	r := report.Build("run-1", sampleIngest(), sampleOutcomes(), nil)

	assert.Equal(t, "run-1", r.RunID)
	assert.False(t, r.GeneratedAt.IsZero())
	assert.Equal(t, 3, r.FilesScanned)
	assert.Equal(t, 2, r.ValidFiles)
	assert.Equal(t, 2, r.PointsExtracted)

	require.Len(t, r.Regions, 1)
	assert.Equal(t, "sheffield", r.Regions[0].Region)

	require.Len(t, r.RegionFailures, 1)
	assert.Equal(t, "narnia", r.RegionFailures[0].Unit)
	assert.Equal(t, errors.CodeUnknownRegion, r.RegionFailures[0].Code)

	require.Len(t, r.FileFailures, 1)
	assert.Equal(t, "tracks/bad.fit.gz", r.FileFailures[0].Unit)
	assert.Equal(t, errors.CodeParseFailure, r.FileFailures[0].Code)
}

func TestBuild_UntypedError(t *testing.T) {
	outcomes := []usecase.RegionOutcome{{Region: "uk", Err: assert.AnError}}

	r := report.Build("run-2", &usecase.IngestSummary{}, outcomes, nil)

	require.Len(t, r.RegionFailures, 1)
	assert.Empty(t, r.RegionFailures[0].Code)
	assert.Equal(t, assert.AnError.Error(), r.RegionFailures[0].Error)
}

func TestWriter_Write(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "outputs")
	w := report.NewWriter(dir, zap.NewNop())

	path, err := w.Write(report.Build("run-3", sampleIngest(), sampleOutcomes(), &domain.ActivityStats{TotalRuns: 7}))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "coverage_report.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded report.Report
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "run-3", decoded.RunID)
	require.Len(t, decoded.Regions, 1)
	assert.JSONEq(t, `{"type":"Polygon","coordinates":[[[0,0],[1,0],[1,1],[0,0]]]}`,
		string(decoded.Regions[0].Geometry))
	require.NotNil(t, decoded.Stats)
	assert.Equal(t, 7, decoded.Stats.TotalRuns)
}
