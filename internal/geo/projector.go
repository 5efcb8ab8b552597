package geo

import (
	"fmt"
	"sync"

	"github.com/ctessum/geom/proj"
	"github.com/paulmach/orb"
	"go.uber.org/zap"

	"github.com/activity-analytics/internal/domain"
	"github.com/activity-analytics/internal/pkg/errors"
)

// proj4 definitions for the coordinate systems the pipeline understands.
// Area and buffer math is only valid in the metre-unit systems.
var crsDefinitions = map[domain.CRS]string{
	domain.CRSWGS84:               "+proj=longlat +datum=WGS84 +no_defs",
	domain.CRSBritishNationalGrid: "+proj=tmerc +lat_0=49 +lon_0=-2 +k=0.9996012717 +x_0=400000 +y_0=-100000 +ellps=airy +towgs84=446.448,-125.157,542.06,0.15,0.247,0.842,-20.489 +units=m +no_defs",
	domain.CRSWebMercator:         "+proj=merc +a=6378137 +b=6378137 +lat_ts=0 +lon_0=0 +x_0=0 +y_0=0 +k=1 +units=m +no_defs",
}

// Projector converts point sets and polygon geometries between coordinate
// reference systems. Unrecognised CRS names fail loudly; there is no silent
// fallback to unprojected math.
type Projector struct {
	logger *zap.Logger

	mu         sync.Mutex
	references map[domain.CRS]*proj.SR
	transforms map[[2]domain.CRS]proj.Transformer
}

func NewProjector(logger *zap.Logger) *Projector {
	return &Projector{
		logger:     logger,
		references: make(map[domain.CRS]*proj.SR),
		transforms: make(map[[2]domain.CRS]proj.Transformer),
	}
}

// ProjectPoints reprojects a point set into the target CRS, preserving point
// count and order.
func (p *Projector) ProjectPoints(ps domain.PointSet, to domain.CRS) (domain.PointSet, error) {
	if ps.CRS == to {
		return ps, nil
	}

	transform, err := p.transform(ps.CRS, to)
	if err != nil {
		return domain.PointSet{}, err
	}

	out := domain.PointSet{CRS: to, Coords: make([]domain.Coordinate, len(ps.Coords))}
	for i, c := range ps.Coords {
		x, y, err := transform(c.X, c.Y)
		if err != nil {
			return domain.PointSet{}, errors.ProjectionFailure(string(to), fmt.Errorf("point %d: %w", i, err))
		}
		out.Coords[i] = domain.Coordinate{X: x, Y: y}
	}
	return out, nil
}

// ProjectMultiPolygon reprojects a polygon geometry, ring by ring.
func (p *Projector) ProjectMultiPolygon(mp orb.MultiPolygon, from, to domain.CRS) (orb.MultiPolygon, error) {
	if from == to {
		return mp, nil
	}

	transform, err := p.transform(from, to)
	if err != nil {
		return nil, err
	}

	out := make(orb.MultiPolygon, len(mp))
	for i, poly := range mp {
		out[i] = make(orb.Polygon, len(poly))
		for j, ring := range poly {
			out[i][j] = make(orb.Ring, len(ring))
			for k, pt := range ring {
				x, y, err := transform(pt.X(), pt.Y())
				if err != nil {
					return nil, errors.ProjectionFailure(string(to), err)
				}
				out[i][j][k] = orb.Point{x, y}
			}
		}
	}
	return out, nil
}

func (p *Projector) transform(from, to domain.CRS) (proj.Transformer, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	key := [2]domain.CRS{from, to}
	if t, ok := p.transforms[key]; ok {
		return t, nil
	}

	src, err := p.referenceLocked(from)
	if err != nil {
		return nil, err
	}
	dst, err := p.referenceLocked(to)
	if err != nil {
		return nil, err
	}

	t, err := src.NewTransform(dst)
	if err != nil {
		return nil, errors.ProjectionFailure(string(to), err)
	}

	p.logger.Debug("CRS transform prepared",
		zap.String("from", string(from)),
		zap.String("to", string(to)))

	p.transforms[key] = t
	return t, nil
}

func (p *Projector) referenceLocked(crs domain.CRS) (*proj.SR, error) {
	if sr, ok := p.references[crs]; ok {
		return sr, nil
	}

	def, ok := crsDefinitions[crs]
	if !ok {
		return nil, errors.ProjectionFailure(string(crs), fmt.Errorf("no proj definition registered"))
	}

	sr, err := proj.Parse(def)
	if err != nil {
		return nil, errors.ProjectionFailure(string(crs), err)
	}

	p.references[crs] = sr
	return sr, nil
}
