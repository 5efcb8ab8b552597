package repository

import (
	"context"

	"github.com/activity-analytics/internal/domain"
)

// ActivityRepository loads the tabular activity metadata export.
type ActivityRepository interface {
	Load(ctx context.Context, path string) ([]domain.Activity, error)
}
