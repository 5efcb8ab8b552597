package usecase

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/twpayne/go-geos"
	"go.uber.org/zap"

	"github.com/activity-analytics/internal/coverage"
	"github.com/activity-analytics/internal/domain"
	"github.com/activity-analytics/internal/geo"
	"github.com/activity-analytics/internal/pkg/errors"
	"github.com/activity-analytics/internal/region"
)

// RegionOutcome is the per-region unit of work result: either a coverage
// result or a typed failure, never both. Failed regions do not affect the
// others.
type RegionOutcome struct {
	Region string
	Result *domain.CoverageResult
	Err    error
}

// CoverageUseCase runs the coverage pipeline for each requested region:
// project, filter, buffer/union/simplify, measure.
type CoverageUseCase struct {
	registry  *region.Registry
	projector *geo.Projector
	filter    *coverage.Filter
	builder   *coverage.Builder
	logger    *zap.Logger
	workers   int
}

func NewCoverageUseCase(
	registry *region.Registry,
	projector *geo.Projector,
	logger *zap.Logger,
	workers int,
) *CoverageUseCase {
	if workers < 1 {
		workers = 1
	}
	return &CoverageUseCase{
		registry:  registry,
		projector: projector,
		filter:    coverage.NewFilter(logger),
		builder:   coverage.NewBuilder(logger),
		logger:    logger,
		workers:   workers,
	}
}

// Run processes every requested region independently and returns outcomes in
// request order.
func (uc *CoverageUseCase) Run(ctx context.Context, points []domain.TrackPoint, names []string) []RegionOutcome {
	outcomes := make([]RegionOutcome, len(names))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < uc.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				outcomes[i] = uc.processRegion(ctx, points, names[i])
			}
		}()
	}
	for i := range names {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return outcomes
}

func (uc *CoverageUseCase) processRegion(ctx context.Context, points []domain.TrackPoint, name string) RegionOutcome {
	outcome := RegionOutcome{Region: name}
	if err := ctx.Err(); err != nil {
		outcome.Err = err
		return outcome
	}

	reg, err := uc.registry.Get(name)
	if err != nil {
		uc.logger.Warn("Requested region is not registered", zap.String("region", name))
		outcome.Err = err
		return outcome
	}

	geographic := domain.NewGeographicPointSet(points)

	working, err := uc.projector.ProjectPoints(geographic, reg.CRS())
	if err != nil {
		outcome.Err = err
		return outcome
	}

	// The world pseudo-region keeps every point and has no area semantics,
	// so its boundary is never needed in GEOS form.
	filtered := working
	predicate := domain.PredicateNone
	var regionGeom *geos.Geom
	if reg.Kind() != domain.KindWorld {
		boundary, err := uc.projector.ProjectMultiPolygon(reg.Boundary(), domain.CRSWGS84, reg.CRS())
		if err != nil {
			outcome.Err = err
			return outcome
		}
		regionGeom, err = geo.GeosFromOrb(boundary)
		if err != nil {
			outcome.Err = errors.ProjectionFailure(string(reg.CRS()), err)
			return outcome
		}
		filtered, predicate = uc.filter.InRegion(working, regionGeom, name)
	}

	uc.logger.Info("Points attributed to region",
		zap.String("region", name),
		zap.Int("in_region", filtered.Len()),
		zap.Int("considered", working.Len()),
		zap.String("predicate", string(predicate)))

	if filtered.Len() == 0 {
		outcome.Err = errors.EmptyCoverage(name)
		return outcome
	}

	covered := uc.builder.Build(filtered, reg.BufferRadius(), reg.SimplifyTolerance())

	result := &domain.CoverageResult{
		Region:           name,
		Kind:             reg.Kind(),
		CRS:              reg.CRS(),
		Geometry:         json.RawMessage(covered.ToGeoJSON(-1)),
		CoveredArea:      covered.Area(),
		PointsConsidered: working.Len(),
		PointsInRegion:   filtered.Len(),
		Predicate:        predicate,
	}

	if reg.HasAreaSemantics() {
		result.RegionArea = regionGeom.Area()
		percent, err := coverage.Percentage(covered, result.RegionArea, name)
		if err != nil {
			outcome.Err = err
			return outcome
		}
		result.Percent = &percent

		uc.logger.Info("Coverage computed",
			zap.String("region", name),
			zap.Float64("percent", percent))
	}

	outcome.Result = result
	return outcome
}
