// Package trackfile ingests recorded activity tracks. Supported encodings
// are plain GPX, gzip-compressed GPX, and gzip-compressed FIT; anything else
// is skipped silently.
package trackfile

import (
	"compress/gzip"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/activity-analytics/internal/domain"
	"github.com/activity-analytics/internal/domain/repository"
	"github.com/activity-analytics/internal/pkg/errors"
)

type trackRepository struct {
	logger *zap.Logger
}

func NewTrackRepository(logger *zap.Logger) repository.TrackRepository {
	return &trackRepository{logger: logger}
}

// List returns supported track files under dir in lexical order, so a run
// over the same directory is deterministic.
func (r *trackRepository) List(ctx context.Context, dir string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read activities dir: %w", err)
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, ok := formatOf(e.Name()); ok {
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}

// Parse decodes one track file. Decode errors are captured in the result and
// contribute zero points; they never abort the batch.
func (r *trackRepository) Parse(ctx context.Context, path string, stride int) domain.FileResult {
	format, ok := formatOf(path)
	if !ok {
		// List only hands over supported files; guard anyway.
		return domain.FileResult{Path: path}
	}
	if stride < 1 {
		stride = 1
	}

	result := domain.FileResult{Path: path, Format: format}
	if err := ctx.Err(); err != nil {
		result.Err = errors.ParseFailure(path, err)
		return result
	}

	points, err := r.decode(path, format, stride)
	if err != nil {
		r.logger.Warn("Failed to parse track file",
			zap.String("path", path),
			zap.String("format", string(format)),
			zap.Error(err))
		result.Err = errors.ParseFailure(path, err)
		return result
	}

	result.Points = points
	return result
}

func (r *trackRepository) decode(path string, format domain.TrackFormat, stride int) (_ []domain.TrackPoint, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch format {
	case domain.FormatGPX:
		return parseGPXStream(f, stride)

	case domain.FormatGPXGz:
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		return parseGPXStream(gz, stride)

	case domain.FormatFITGz:
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		// Binary decoders can panic on truncated input; a malformed file
		// must stay isolated to this result.
		defer func() {
			if rec := recover(); rec != nil {
				err = fmt.Errorf("fit decode panic: %v", rec)
			}
		}()
		return parseFITStream(gz, stride)

	default:
		return nil, nil
	}
}

func formatOf(name string) (domain.TrackFormat, bool) {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".gpx"):
		return domain.FormatGPX, true
	case strings.HasSuffix(lower, ".gpx.gz"):
		return domain.FormatGPXGz, true
	case strings.HasSuffix(lower, ".fit.gz"):
		return domain.FormatFITGz, true
	default:
		return "", false
	}
}
