package usecase

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/activity-analytics/internal/domain"
	"github.com/activity-analytics/internal/domain/repository"
)

// IngestSummary aggregates the per-file parse results of one batch.
type IngestSummary struct {
	Files      int
	ValidFiles int
	Points     []domain.TrackPoint
	// Failures holds the per-file results that carried a typed error.
	Failures []domain.FileResult
}

// IngestUseCase fans parsing out over the track files of a directory and
// combines the results in file order. Each file contributes independently;
// a malformed file is reported and contributes zero points.
type IngestUseCase struct {
	tracks  repository.TrackRepository
	logger  *zap.Logger
	workers int
}

func NewIngestUseCase(tracks repository.TrackRepository, logger *zap.Logger, workers int) *IngestUseCase {
	if workers < 1 {
		workers = 1
	}
	return &IngestUseCase{
		tracks:  tracks,
		logger:  logger,
		workers: workers,
	}
}

func (uc *IngestUseCase) Run(ctx context.Context, dir string, stride int) (*IngestSummary, error) {
	paths, err := uc.tracks.List(ctx, dir)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("Parsing track files",
		zap.String("dir", dir),
		zap.Int("files", len(paths)),
		zap.Int("stride", stride),
		zap.Int("workers", uc.workers))

	// Results land in an index-ordered slice; no shared mutable aggregation.
	results := make([]domain.FileResult, len(paths))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < uc.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = uc.tracks.Parse(ctx, paths[i], stride)
			}
		}()
	}
	for i := range paths {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	summary := &IngestSummary{Files: len(paths)}
	for _, res := range results {
		if res.Err != nil {
			summary.Failures = append(summary.Failures, res)
			continue
		}
		if res.Valid() {
			summary.ValidFiles++
			summary.Points = append(summary.Points, res.Points...)
		}
	}

	uc.logger.Info("Track ingestion complete",
		zap.Int("valid_files", summary.ValidFiles),
		zap.Int("failed_files", len(summary.Failures)),
		zap.Int("points", len(summary.Points)))
	return summary, nil
}
