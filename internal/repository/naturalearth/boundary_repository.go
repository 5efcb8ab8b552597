// Package naturalearth loads the reference administrative boundary dataset
// from a Natural Earth admin-0 countries GeoJSON export.
package naturalearth

import (
	"context"
	"fmt"
	"os"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"go.uber.org/zap"

	"github.com/activity-analytics/internal/domain/repository"
)

// nameProperties are tried in order; Natural Earth uses ADMIN for the
// country name, other exports of the same dataset use NAME or name.
var nameProperties = []string{"ADMIN", "NAME", "name"}

type boundaryRepository struct {
	logger *zap.Logger
}

func NewBoundaryRepository(logger *zap.Logger) repository.BoundaryRepository {
	return &boundaryRepository{logger: logger}
}

// LoadCountries reads the dataset once and returns WGS84 country boundaries
// keyed by name. Features without a usable name or polygon geometry are
// skipped with a diagnostic.
func (r *boundaryRepository) LoadCountries(ctx context.Context, path string) (map[string]orb.MultiPolygon, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read boundary dataset: %w", err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("decode boundary dataset: %w", err)
	}

	countries := make(map[string]orb.MultiPolygon, len(fc.Features))
	for i, f := range fc.Features {
		name := featureName(f)
		if name == "" {
			r.logger.Warn("Boundary feature has no name attribute, skipping",
				zap.Int("feature", i))
			continue
		}

		switch g := f.Geometry.(type) {
		case orb.Polygon:
			countries[name] = orb.MultiPolygon{g}
		case orb.MultiPolygon:
			countries[name] = g
		default:
			r.logger.Warn("Boundary feature is not polygonal, skipping",
				zap.String("name", name),
				zap.String("type", string(f.Geometry.GeoJSONType())))
		}
	}

	if len(countries) == 0 {
		return nil, fmt.Errorf("boundary dataset %s contains no usable polygons", path)
	}

	r.logger.Info("Boundary dataset loaded",
		zap.String("path", path),
		zap.Int("countries", len(countries)))
	return countries, nil
}

func featureName(f *geojson.Feature) string {
	for _, key := range nameProperties {
		if name, ok := f.Properties[key].(string); ok && name != "" {
			return name
		}
	}
	return ""
}
