package trackfile

import (
	"io"

	"github.com/tkrajina/gpxgo/gpx"

	"github.com/activity-analytics/internal/domain"
)

// parseGPXStream reads every track segment point, retaining each stride-th
// record. The record counter runs across all tracks and segments of the
// file, matching file order.
func parseGPXStream(r io.Reader, stride int) ([]domain.TrackPoint, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	doc, err := gpx.ParseBytes(data)
	if err != nil {
		return nil, err
	}

	var points []domain.TrackPoint
	count := 0
	for _, track := range doc.Tracks {
		for _, segment := range track.Segments {
			for _, p := range segment.Points {
				count++
				if count%stride != 0 {
					continue
				}

				tp := domain.TrackPoint{
					Lon:  p.Longitude,
					Lat:  p.Latitude,
					Time: p.Timestamp,
				}
				if p.Elevation.NotNull() {
					ele := p.Elevation.Value()
					tp.Elevation = &ele
				}
				points = append(points, tp)
			}
		}
	}
	return points, nil
}
