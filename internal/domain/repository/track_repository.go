package repository

import (
	"context"

	"github.com/activity-analytics/internal/domain"
)

// TrackRepository reads recorded activity track files.
type TrackRepository interface {
	// List returns the paths of supported track files under dir, in
	// deterministic order. Unsupported extensions are skipped silently.
	List(ctx context.Context, dir string) ([]string, error)

	// Parse decodes one track file into geographic points, retaining every
	// stride-th record. Decode failures are reported inside the result,
	// never as a panic; the batch continues.
	Parse(ctx context.Context, path string, stride int) domain.FileResult
}
