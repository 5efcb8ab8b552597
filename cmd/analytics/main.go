package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/activity-analytics/internal/config"
	"github.com/activity-analytics/internal/domain"
	"github.com/activity-analytics/internal/geo"
	"github.com/activity-analytics/internal/pkg/logger"
	"github.com/activity-analytics/internal/region"
	"github.com/activity-analytics/internal/report"
	"github.com/activity-analytics/internal/repository/naturalearth"
	"github.com/activity-analytics/internal/repository/stravacsv"
	"github.com/activity-analytics/internal/repository/trackfile"
	"github.com/activity-analytics/internal/usecase"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	runID := uuid.NewString()
	log = log.With(zap.String("run_id", runID))
	log.Info("Starting coverage batch",
		zap.Strings("regions", cfg.Coverage.Regions),
		zap.Int("stride", cfg.Coverage.PointStride),
		zap.Int("workers", cfg.Coverage.Workers))

	// 3. Interrupt cancels the batch between units of work
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, log, runID); err != nil {
		log.Fatal("Batch failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger, runID string) error {
	// 4. Load the reference boundary dataset once; it is immutable for the
	// process lifetime.
	boundaries := naturalearth.NewBoundaryRepository(log)
	countries, err := boundaries.LoadCountries(ctx, cfg.Input.BoundariesFile)
	if err != nil {
		return err
	}

	registry, err := region.NewRegistry(countries, region.Options{
		BufferOverrides:   cfg.Coverage.BufferOverrides,
		SimplifyOverrides: cfg.Coverage.SimplifyOverrides,
	}, log)
	if err != nil {
		return err
	}

	// 5. Ingest track files
	tracks := trackfile.NewTrackRepository(log)
	ingestUC := usecase.NewIngestUseCase(tracks, log, cfg.Coverage.Workers)
	summary, err := ingestUC.Run(ctx, cfg.Input.ActivitiesDir, cfg.Coverage.PointStride)
	if err != nil {
		return err
	}

	// 6. Coverage per region
	projector := geo.NewProjector(log)
	coverageUC := usecase.NewCoverageUseCase(registry, projector, log, cfg.Coverage.Workers)
	outcomes := coverageUC.Run(ctx, summary.Points, cfg.Coverage.Regions)

	// 7. Optional activity statistics
	stats := statsIfConfigured(ctx, cfg, log)

	// 8. Write the report for the external renderer
	writer := report.NewWriter(cfg.Output.Dir, log)
	path, err := writer.Write(report.Build(runID, summary, outcomes, stats))
	if err != nil {
		return err
	}

	log.Info("Batch complete", zap.String("report", path))
	return nil
}

// statsIfConfigured computes activity statistics when an export is
// configured. A statistics failure never fails the coverage batch.
func statsIfConfigured(ctx context.Context, cfg *config.Config, log *zap.Logger) *domain.ActivityStats {
	if cfg.Input.ActivitiesCSV == "" {
		return nil
	}

	statsUC := usecase.NewStatsUseCase(stravacsv.NewActivityRepository(log), log)
	stats, err := statsUC.Run(ctx, cfg.Input.ActivitiesCSV)
	if err != nil {
		log.Warn("Activity statistics skipped", zap.Error(err))
		return nil
	}
	return stats
}
