package trackfile

import (
	"io"

	"github.com/tormoder/fit"

	"github.com/activity-analytics/internal/domain"
)

// semicircleDegrees converts the FIT fixed-point semicircle encoding to
// decimal degrees: 2^31 semicircles span 180 degrees.
const semicircleDegrees = 180.0 / (1 << 31)

// parseFITStream decodes the record messages of a FIT activity. A point is
// emitted only when both coordinates are present and valid for the record;
// the stride counter runs over all records in file order, valid or not.
func parseFITStream(r io.Reader, stride int) ([]domain.TrackPoint, error) {
	f, err := fit.Decode(r)
	if err != nil {
		return nil, err
	}

	activity, err := f.Activity()
	if err != nil {
		return nil, err
	}

	var points []domain.TrackPoint
	count := 0
	for _, rec := range activity.Records {
		count++
		if count%stride != 0 {
			continue
		}
		if rec.PositionLat.Invalid() || rec.PositionLong.Invalid() {
			continue
		}

		points = append(points, domain.TrackPoint{
			Lon:  float64(rec.PositionLong.Semicircles()) * semicircleDegrees,
			Lat:  float64(rec.PositionLat.Semicircles()) * semicircleDegrees,
			Time: rec.Timestamp,
		})
	}
	return points, nil
}
