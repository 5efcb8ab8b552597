// Package stravacsv loads the tabular activity metadata export
// (activities.csv). Columns are located by header name so reordered or
// partial exports still load.
package stravacsv

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/activity-analytics/internal/domain"
	"github.com/activity-analytics/internal/domain/repository"
)

// dateLayout matches the export's "18 May 2024, 09:04:05" format.
const dateLayout = "02 Jan 2006, 15:04:05"

type activityRepository struct {
	logger *zap.Logger
}

func NewActivityRepository(logger *zap.Logger) repository.ActivityRepository {
	return &activityRepository{logger: logger}
}

func (r *activityRepository) Load(ctx context.Context, path string) ([]domain.Activity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open activities export: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // exports vary in trailing columns

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read activities export: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("activities export %s has no data rows", path)
	}

	cols := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		cols[h] = i
	}
	if _, ok := cols["Activity Date"]; !ok {
		return nil, fmt.Errorf("activities export %s has no Activity Date column", path)
	}

	activities := make([]domain.Activity, 0, len(rows)-1)
	skipped := 0
	for _, row := range rows[1:] {
		date, err := time.Parse(dateLayout, field(row, cols, "Activity Date"))
		if err != nil {
			skipped++
			continue
		}

		activities = append(activities, domain.Activity{
			Date:          date,
			Type:          field(row, cols, "Activity Type"),
			Name:          field(row, cols, "Activity Name"),
			DistanceKm:    numeric(row, cols, "Distance"),
			ElapsedSec:    numeric(row, cols, "Elapsed Time"),
			MovingSec:     numeric(row, cols, "Moving Time"),
			ElevationGain: numeric(row, cols, "Elevation Gain"),
			AvgHeartRate:  numeric(row, cols, "Average Heart Rate"),
		})
	}

	if skipped > 0 {
		r.logger.Warn("Activity rows skipped",
			zap.String("path", path),
			zap.Int("skipped", skipped))
	}
	r.logger.Info("Activities loaded",
		zap.String("path", path),
		zap.Int("count", len(activities)))
	return activities, nil
}

func field(row []string, cols map[string]int, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

// numeric parses a float column, treating blanks and malformed cells as
// absent.
func numeric(row []string, cols map[string]int, name string) float64 {
	v, err := strconv.ParseFloat(field(row, cols, name), 64)
	if err != nil {
		return 0
	}
	return v
}
