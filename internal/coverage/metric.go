package coverage

import (
	"github.com/twpayne/go-geos"

	"github.com/activity-analytics/internal/pkg/errors"
)

// Percentage computes 100 × covered area / region area, both in the same
// projected CRS. It fails with a zero-area error when the region area is
// zero or undefined; the caller isolates that region and proceeds.
//
// The result is not clamped: buffer overshoot beyond the region boundary can
// push it toward 100%, and values are expected in [0, 100] for contained
// geometry.
func Percentage(covered *geos.Geom, regionArea float64, region string) (float64, error) {
	if regionArea <= 0 {
		return 0, errors.ZeroArea(region)
	}
	return covered.Area() / regionArea * 100, nil
}
