package usecase

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"

	"github.com/activity-analytics/internal/domain"
	"github.com/activity-analytics/internal/domain/repository"
)

// standardDistances are the personal-best targets; an activity qualifies
// when its distance is within ±2% of the target.
var standardDistances = []struct {
	Name string
	Km   float64
}{
	{"1k", 1},
	{"5k", 5},
	{"10k", 10},
	{"Half Marathon", 21.1},
	{"Marathon", 42.2},
}

// fiveKTolerance bounds which runs count as direct 5k efforts for the trend.
const fiveKTolerance = 0.1

// StatsUseCase aggregates the tabular activity metadata: personal records,
// totals, habits and the 5k improvement trend. No spatial algebra involved.
type StatsUseCase struct {
	activities repository.ActivityRepository
	logger     *zap.Logger
}

func NewStatsUseCase(activities repository.ActivityRepository, logger *zap.Logger) *StatsUseCase {
	return &StatsUseCase{
		activities: activities,
		logger:     logger,
	}
}

func (uc *StatsUseCase) Run(ctx context.Context, path string) (*domain.ActivityStats, error) {
	all, err := uc.activities.Load(ctx, path)
	if err != nil {
		return nil, err
	}
	if len(all) == 0 {
		return nil, fmt.Errorf("no activities in %s", path)
	}

	stats := &domain.ActivityStats{
		TotalActivities: len(all),
		DailyCounts:     make(map[string]int),
	}

	var runs []domain.Activity
	var hrSum float64
	var hrCount int
	for _, a := range all {
		stats.DailyCounts[a.Date.Format("2006-01-02")]++
		if a.AvgHeartRate > 0 {
			hrSum += a.AvgHeartRate
			hrCount++
		}
		if a.IsRun() {
			runs = append(runs, a)
		}
	}
	if hrCount > 0 {
		stats.AvgHeartRate = hrSum / float64(hrCount)
	}

	stats.TotalRuns = len(runs)
	if len(runs) == 0 {
		uc.logger.Warn("No running activities in export", zap.String("path", path))
		return stats, nil
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Date.Before(runs[j].Date) })
	stats.FirstRun = runs[0].Date

	weekdays := make(map[time.Weekday]int)
	timesOfDay := make(map[string]int)
	monthly := make(map[string]float64)
	var paceSum float64
	var paceCount int

	for _, run := range runs {
		stats.TotalDistanceKm += run.DistanceKm
		stats.TotalElapsedSec += run.ElapsedSec
		stats.TotalElevationM += run.ElevationGain
		if run.DistanceKm > stats.LongestRunKm {
			stats.LongestRunKm = run.DistanceKm
		}
		if run.DistanceKm > 0 && run.ElapsedSec > 0 {
			paceSum += run.ElapsedSec / run.DistanceKm
			paceCount++
		}

		weekdays[run.Date.Weekday()]++
		timesOfDay[timeOfDay(run.Date.Hour())]++
		monthly[run.Date.Format("2006-01")] += run.DistanceKm
	}
	if paceCount > 0 {
		stats.AveragePaceSecKm = paceSum / float64(paceCount)
	}

	stats.CommonWeekday = commonWeekday(weekdays)
	stats.CommonTimeOfDay = commonKey(timesOfDay)
	stats.Monthly, stats.BestMonth = monthlyBreakdown(monthly)
	stats.LongestStreak = longestStreak(runs)
	stats.PersonalBests = personalBests(runs)
	stats.FiveKTrendSecPerDay, stats.FiveKSamples = fiveKTrend(runs)

	uc.logger.Info("Activity statistics computed",
		zap.Int("runs", stats.TotalRuns),
		zap.Float64("total_km", stats.TotalDistanceKm),
		zap.Int("five_k_samples", stats.FiveKSamples))
	return stats, nil
}

// timeOfDay buckets an hour the way the habit summary reports it.
func timeOfDay(hour int) string {
	switch {
	case hour >= 5 && hour < 12:
		return "Morning"
	case hour >= 12 && hour < 17:
		return "Afternoon"
	case hour >= 17 && hour < 21:
		return "Evening"
	default:
		return "Night"
	}
}

func commonWeekday(counts map[time.Weekday]int) string {
	best := ""
	bestCount := -1
	for d := time.Sunday; d <= time.Saturday; d++ {
		if counts[d] > bestCount {
			best = d.String()
			bestCount = counts[d]
		}
	}
	return best
}

func commonKey(counts map[string]int) string {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys) // deterministic on ties
	best := ""
	bestCount := -1
	for _, k := range keys {
		if counts[k] > bestCount {
			best = k
			bestCount = counts[k]
		}
	}
	return best
}

func monthlyBreakdown(byMonth map[string]float64) ([]domain.MonthlyDistance, domain.MonthlyDistance) {
	months := make([]string, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Strings(months)

	var out []domain.MonthlyDistance
	var best domain.MonthlyDistance
	for _, m := range months {
		md := domain.MonthlyDistance{Month: m, DistanceKm: byMonth[m]}
		out = append(out, md)
		if md.DistanceKm > best.DistanceKm {
			best = md
		}
	}
	return out, best
}

// longestStreak counts the longest run of consecutive calendar days with at
// least one run. Input must be date-sorted.
func longestStreak(runs []domain.Activity) int {
	var days []time.Time
	seen := make(map[string]bool)
	for _, run := range runs {
		// Normalize to the calendar day in the activity's own zone, the
		// same day DailyCounts keys on.
		day := time.Date(run.Date.Year(), run.Date.Month(), run.Date.Day(), 0, 0, 0, 0, time.UTC)
		key := day.Format("2006-01-02")
		if !seen[key] {
			seen[key] = true
			days = append(days, day)
		}
	}

	best, current := 1, 1
	for i := 1; i < len(days); i++ {
		if days[i].Sub(days[i-1]) == 24*time.Hour {
			current++
			if current > best {
				best = current
			}
		} else {
			current = 1
		}
	}
	return best
}

func personalBests(runs []domain.Activity) []domain.PersonalBest {
	var bests []domain.PersonalBest
	for _, target := range standardDistances {
		var best *domain.PersonalBest
		for _, run := range runs {
			if run.DistanceKm < target.Km*0.98 || run.DistanceKm > target.Km*1.02 {
				continue
			}
			if run.ElapsedSec <= 0 {
				continue
			}
			if best == nil || run.ElapsedSec < best.ElapsedSec {
				best = &domain.PersonalBest{
					Distance:   target.Name,
					DistanceKm: target.Km,
					ElapsedSec: run.ElapsedSec,
					Date:       run.Date,
				}
			}
		}
		if best != nil {
			bests = append(bests, *best)
		}
	}
	return bests
}

// fiveKTrend fits a least-squares line through direct 5k elapsed times over
// time. The slope is seconds per day; negative means improvement.
func fiveKTrend(runs []domain.Activity) (float64, int) {
	var xs, ys []float64
	var first time.Time
	for _, run := range runs {
		if run.DistanceKm < 5-fiveKTolerance || run.DistanceKm > 5+fiveKTolerance {
			continue
		}
		if run.ElapsedSec <= 0 {
			continue
		}
		if first.IsZero() {
			first = run.Date
		}
		xs = append(xs, run.Date.Sub(first).Hours()/24)
		ys = append(ys, run.ElapsedSec)
	}
	if len(xs) < 2 {
		return 0, len(xs)
	}

	_, slope := stat.LinearRegression(xs, ys, nil, false)
	return slope, len(xs)
}
