// Package coverage implements the spatial core: attributing points to a
// region, buffering them into covered zones, unioning those zones and
// measuring the covered fraction of the region's area. All operations run in
// a single projected, linear-unit CRS; callers project first.
package coverage

import (
	"github.com/twpayne/go-geos"
	"go.uber.org/zap"

	"github.com/activity-analytics/internal/domain"
	"github.com/activity-analytics/internal/geo"
)

// Filter selects the points attributable to a region.
type Filter struct {
	logger *zap.Logger
}

func NewFilter(logger *zap.Logger) *Filter {
	return &Filter{logger: logger}
}

// InRegion returns the subset of ps inside the region polygon, preserving
// order, and the predicate that produced it.
//
// Strict containment runs first. When it matches nothing, the set is
// re-tested with the looser "intersects" predicate, which also admits points
// exactly on the boundary. The predicate used is recorded on the result.
func (f *Filter) InRegion(ps domain.PointSet, region *geos.Geom, name string) (domain.PointSet, domain.FilterPredicate) {
	within := f.selectPoints(ps, region, func(pt, region *geos.Geom) bool {
		return region.Contains(pt)
	})
	if within.Len() > 0 {
		f.logger.Debug("Points filtered with strict predicate",
			zap.String("region", name),
			zap.Int("points", within.Len()))
		return within, domain.PredicateWithin
	}

	intersects := f.selectPoints(ps, region, func(pt, region *geos.Geom) bool {
		return pt.Intersects(region)
	})
	f.logger.Info("Strict predicate matched no points, used intersects fallback",
		zap.String("region", name),
		zap.Int("points", intersects.Len()))
	return intersects, domain.PredicateIntersects
}

func (f *Filter) selectPoints(ps domain.PointSet, region *geos.Geom, keep func(pt, region *geos.Geom) bool) domain.PointSet {
	out := domain.PointSet{CRS: ps.CRS}
	for _, c := range ps.Coords {
		if keep(geo.GeosPoint(c), region) {
			out.Coords = append(out.Coords, c)
		}
	}
	return out
}
