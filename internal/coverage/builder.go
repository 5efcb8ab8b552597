package coverage

import (
	"github.com/twpayne/go-geos"
	"go.uber.org/zap"

	"github.com/activity-analytics/internal/domain"
	"github.com/activity-analytics/internal/geo"
)

// diskSegments controls how many segments approximate a quarter circle when
// buffering a point into a disk.
const diskSegments = 8

// Builder turns a filtered, projected point set into one coverage geometry.
type Builder struct {
	logger *zap.Logger
}

func NewBuilder(logger *zap.Logger) *Builder {
	return &Builder{logger: logger}
}

// Build buffers every point into a disk of the given radius (in the point
// set's CRS unit), unions the disks into a single possibly multi-part
// polygon and simplifies the union with the given tolerance.
//
// An empty input yields an empty geometry, not an error; callers skip area
// computation for that region.
func (b *Builder) Build(ps domain.PointSet, radius, tolerance float64) *geos.Geom {
	if ps.Len() == 0 {
		return geos.NewEmptyPolygon()
	}

	disks := make([]*geos.Geom, ps.Len())
	for i, c := range ps.Coords {
		disks[i] = geo.GeosPoint(c).Buffer(radius, diskSegments)
	}

	union := geos.NewCollection(geos.TypeIDGeometryCollection, disks).UnaryUnion()

	simplified := union.Simplify(tolerance)
	if simplified.IsEmpty() || !simplified.IsValid() {
		// Simplification can collapse small parts at coarse tolerances;
		// the unsimplified union is still correct, just heavier.
		b.logger.Warn("Simplification degraded coverage union, keeping full geometry",
			zap.Float64("tolerance", tolerance))
		return union
	}

	return simplified
}
