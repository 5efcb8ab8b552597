// Package region holds the process-wide catalogue of named reference
// regions. The registry is built once at startup from the boundary dataset
// and is immutable afterwards; the pipeline receives it by handle.
package region

import (
	"fmt"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/simplify"
	"go.uber.org/zap"

	"github.com/activity-analytics/internal/domain"
	"github.com/activity-analytics/internal/pkg/errors"
)

const (
	// worldSimplifyDegrees reduces country boundary vertices before they are
	// unioned into the world pseudo-region.
	worldSimplifyDegrees = 0.1

	ukCountryName = "United Kingdom"
)

// Options adjusts per-region buffer radius and simplification tolerance,
// keyed by region name. Scale differs by orders of magnitude between a
// country and a city, so these are configuration, not constants.
type Options struct {
	BufferOverrides   map[string]float64
	SimplifyOverrides map[string]float64
}

type Registry struct {
	regions map[string]domain.Region
	logger  *zap.Logger
}

// NewRegistry builds the registry from the loaded country boundaries.
func NewRegistry(countries map[string]orb.MultiPolygon, opts Options, logger *zap.Logger) (*Registry, error) {
	r := &Registry{
		regions: make(map[string]domain.Region),
		logger:  logger,
	}

	uk, ok := countries[ukCountryName]
	if !ok {
		return nil, fmt.Errorf("boundary dataset has no %q geometry", ukCountryName)
	}

	r.add(adminRegion{definition{
		name:              "uk",
		boundary:          uk,
		crs:               domain.CRSBritishNationalGrid,
		bufferRadius:      100, // metres
		simplifyTolerance: 10,
	}}, opts)

	r.add(bboxRegion{definition{
		name:              "sheffield",
		boundary:          bboxBoundary(-1.55, 53.32, -1.35, 53.48),
		crs:               domain.CRSWebMercator,
		bufferRadius:      200,
		simplifyTolerance: 30,
	}}, opts)

	r.add(bboxRegion{definition{
		name:              "buckinghamshire",
		boundary:          bboxBoundary(-1.02, 51.48, -0.47, 52.08),
		crs:               domain.CRSWebMercator,
		bufferRadius:      200,
		simplifyTolerance: 30,
	}}, opts)

	r.add(worldRegion{definition{
		name:              "world",
		boundary:          simplifiedWorld(countries),
		crs:               domain.CRSWGS84,
		bufferRadius:      0.02, // degrees, display only
		simplifyTolerance: 0.001,
	}}, opts)

	logger.Info("Region registry built", zap.Int("regions", len(r.regions)))
	return r, nil
}

// Get returns the named region or an UnknownRegion error. A miss fails the
// request for that region only.
func (r *Registry) Get(name string) (domain.Region, error) {
	region, ok := r.regions[name]
	if !ok {
		return nil, errors.UnknownRegion(name)
	}
	return region, nil
}

// Names lists the registered region names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.regions))
	for name := range r.regions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) add(region domain.Region, opts Options) {
	def := region
	name := region.Name()

	if buffer, ok := opts.BufferOverrides[name]; ok {
		def = withOverrides(region, buffer, region.SimplifyTolerance())
		r.logger.Info("Buffer radius overridden",
			zap.String("region", name),
			zap.Float64("radius", buffer))
	}
	if tol, ok := opts.SimplifyOverrides[name]; ok {
		def = withOverrides(def, def.BufferRadius(), tol)
		r.logger.Info("Simplify tolerance overridden",
			zap.String("region", name),
			zap.Float64("tolerance", tol))
	}

	r.regions[name] = def
}

func withOverrides(region domain.Region, buffer, tolerance float64) domain.Region {
	def := definition{
		name:              region.Name(),
		boundary:          region.Boundary(),
		crs:               region.CRS(),
		bufferRadius:      buffer,
		simplifyTolerance: tolerance,
	}
	switch region.Kind() {
	case domain.KindBoundingBox:
		return bboxRegion{def}
	case domain.KindWorld:
		return worldRegion{def}
	default:
		return adminRegion{def}
	}
}

func bboxBoundary(minLon, minLat, maxLon, maxLat float64) orb.MultiPolygon {
	bound := orb.Bound{
		Min: orb.Point{minLon, minLat},
		Max: orb.Point{maxLon, maxLat},
	}
	return orb.MultiPolygon{bound.ToPolygon()}
}

func simplifiedWorld(countries map[string]orb.MultiPolygon) orb.MultiPolygon {
	var world orb.MultiPolygon
	names := make([]string, 0, len(countries))
	for name := range countries {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		g := simplify.DouglasPeucker(worldSimplifyDegrees).Simplify(countries[name].Clone())
		mp, ok := g.(orb.MultiPolygon)
		if !ok {
			continue
		}
		world = append(world, mp...)
	}
	return world
}
