package config

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"github.com/activity-analytics/internal/pkg/validator"
)

type Config struct {
	Input    InputConfig
	Coverage CoverageConfig
	Output   OutputConfig
	Log      LogConfig
}

type InputConfig struct {
	ActivitiesDir  string `validate:"required"`
	BoundariesFile string `validate:"required"`
	// ActivitiesCSV is the optional tabular activity export; statistics are
	// skipped when empty.
	ActivitiesCSV string
}

type CoverageConfig struct {
	Regions []string `validate:"min=1"`
	// PointStride retains every Nth record per file. 1 keeps full fidelity.
	PointStride int `validate:"gte=1"`
	Workers     int `validate:"gte=1"`
	// BufferOverrides and SimplifyOverrides replace a region's configured
	// buffer radius / simplification tolerance, keyed by region name, in
	// the region's working CRS unit.
	BufferOverrides   map[string]float64 `validate:"dive,gt=0"`
	SimplifyOverrides map[string]float64 `validate:"dive,gte=0"`
}

type OutputConfig struct {
	Dir string `validate:"required"`
}

type LogConfig struct {
	Level string
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	// A missing .env is fine; environment variables alone are enough for a
	// batch invocation.
	if _, err := os.Stat(".env"); err == nil {
		if err := viper.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Input: InputConfig{
			ActivitiesDir:  viper.GetString("ACTIVITIES_DIR"),
			BoundariesFile: viper.GetString("BOUNDARIES_FILE"),
			ActivitiesCSV:  viper.GetString("ACTIVITIES_CSV"),
		},
		Coverage: CoverageConfig{
			Regions:           parseList(viper.GetString("REGIONS")),
			PointStride:       viper.GetInt("POINT_STRIDE"),
			Workers:           viper.GetInt("WORKERS"),
			BufferOverrides:   parseOverrides(viper.GetString("BUFFER_OVERRIDES")),
			SimplifyOverrides: parseOverrides(viper.GetString("SIMPLIFY_OVERRIDES")),
		},
		Output: OutputConfig{
			Dir: viper.GetString("OUTPUT_DIR"),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
	}

	// Set default values if not provided
	if len(cfg.Coverage.Regions) == 0 {
		cfg.Coverage.Regions = []string{"world", "uk", "sheffield", "buckinghamshire"}
	}
	if cfg.Coverage.PointStride == 0 {
		cfg.Coverage.PointStride = 1
	}
	if cfg.Coverage.Workers == 0 {
		cfg.Coverage.Workers = runtime.NumCPU()
	}
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "outputs"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}

	if err := validator.Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func parseList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, strings.ToLower(trimmed))
		}
	}
	return result
}

// parseOverrides reads "region=value" pairs, e.g. "uk=100,sheffield=250".
// Malformed pairs are dropped.
func parseOverrides(s string) map[string]float64 {
	if s == "" {
		return nil
	}
	result := make(map[string]float64)
	for _, pair := range strings.Split(s, ",") {
		name, value, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok || strings.TrimSpace(name) == "" {
			continue
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			continue
		}
		result[strings.ToLower(strings.TrimSpace(name))] = v
	}
	if len(result) == 0 {
		return nil
	}
	return result
}
