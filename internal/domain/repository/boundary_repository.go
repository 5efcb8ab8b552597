package repository

import (
	"context"

	"github.com/paulmach/orb"
)

// BoundaryRepository loads the reference administrative boundary dataset.
// The dataset is read once at startup and never mutated afterwards.
type BoundaryRepository interface {
	// LoadCountries returns country boundaries in WGS84, keyed by the
	// dataset's name attribute.
	LoadCountries(ctx context.Context, path string) (map[string]orb.MultiPolygon, error)
}
