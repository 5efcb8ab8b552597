package geo

import (
	"encoding/json"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/twpayne/go-geos"

	"github.com/activity-analytics/internal/domain"
)

// GeosFromOrb converts an orb geometry into a GEOS geometry via its GeoJSON
// encoding.
func GeosFromOrb(g orb.Geometry) (*geos.Geom, error) {
	b, err := json.Marshal(geojson.NewGeometry(g))
	if err != nil {
		return nil, fmt.Errorf("encode geometry: %w", err)
	}
	geom, err := geos.NewGeomFromGeoJSON(string(b))
	if err != nil {
		return nil, fmt.Errorf("build GEOS geometry: %w", err)
	}
	return geom, nil
}

// GeosPoint builds a GEOS point from one coordinate.
func GeosPoint(c domain.Coordinate) *geos.Geom {
	return geos.NewPoint([]float64{c.X, c.Y})
}
