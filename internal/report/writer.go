// Package report writes the run's results for the external renderer: one
// JSON document with per-region coverage (geometry as GeoJSON), per-unit
// failures and the activity statistics.
package report

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/activity-analytics/internal/domain"
	"github.com/activity-analytics/internal/pkg/errors"
	"github.com/activity-analytics/internal/usecase"
)

const reportFile = "coverage_report.json"

// Failure is one reported unit-of-work failure.
type Failure struct {
	Unit  string `json:"unit"`
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// Report is the complete output of one batch run.
type Report struct {
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`

	FilesScanned    int `json:"files_scanned"`
	ValidFiles      int `json:"valid_files"`
	PointsExtracted int `json:"points_extracted"`

	Regions        []domain.CoverageResult `json:"regions"`
	RegionFailures []Failure               `json:"region_failures,omitempty"`
	FileFailures   []Failure               `json:"file_failures,omitempty"`

	Stats *domain.ActivityStats `json:"stats,omitempty"`
}

type Writer struct {
	dir    string
	logger *zap.Logger
}

func NewWriter(dir string, logger *zap.Logger) *Writer {
	return &Writer{dir: dir, logger: logger}
}

// Build assembles the report from the batch outputs.
func Build(runID string, ingest *usecase.IngestSummary, outcomes []usecase.RegionOutcome, stats *domain.ActivityStats) Report {
	r := Report{
		RunID:           runID,
		GeneratedAt:     time.Now().UTC(),
		FilesScanned:    ingest.Files,
		ValidFiles:      ingest.ValidFiles,
		PointsExtracted: len(ingest.Points),
		Stats:           stats,
	}

	for _, f := range ingest.Failures {
		r.FileFailures = append(r.FileFailures, toFailure(f.Path, f.Err))
	}
	for _, o := range outcomes {
		if o.Err != nil {
			r.RegionFailures = append(r.RegionFailures, toFailure(o.Region, o.Err))
			continue
		}
		r.Regions = append(r.Regions, *o.Result)
	}
	return r
}

// Write persists the report and returns its path.
func (w *Writer) Write(r Report) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode report: %w", err)
	}

	path := filepath.Join(w.dir, reportFile)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}

	w.logger.Info("Report written",
		zap.String("path", path),
		zap.Int("regions", len(r.Regions)),
		zap.Int("region_failures", len(r.RegionFailures)))
	return path, nil
}

func toFailure(unit string, err error) Failure {
	f := Failure{Unit: unit, Error: err.Error()}
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		f.Code = appErr.Code
	}
	return f
}
