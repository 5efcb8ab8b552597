package domain

import "encoding/json"

// FilterPredicate records which containment predicate attributed points to a
// region.
type FilterPredicate string

const (
	// PredicateWithin is the strict containment predicate.
	PredicateWithin FilterPredicate = "within"
	// PredicateIntersects is the looser fallback used when strict
	// containment yields nothing, covering boundary-touching and
	// precision-edge cases.
	PredicateIntersects FilterPredicate = "intersects"
	// PredicateNone applies to regions that keep every point (the world
	// pseudo-region).
	PredicateNone FilterPredicate = "none"
)

// CoverageResult is the outcome of the coverage pipeline for one region.
// Produced once per region per run and not mutated afterwards.
type CoverageResult struct {
	Region string          `json:"region"`
	Kind   RegionKind      `json:"kind"`
	CRS    CRS             `json:"crs"`
	// Geometry is the simplified coverage union in the working CRS, encoded
	// as GeoJSON for the external renderer.
	Geometry json.RawMessage `json:"geometry,omitempty"`

	RegionArea  float64 `json:"region_area"`
	CoveredArea float64 `json:"covered_area"`
	// Percent is nil for regions without area semantics.
	Percent *float64 `json:"percent,omitempty"`

	PointsConsidered int             `json:"points_considered"`
	PointsInRegion   int             `json:"points_in_region"`
	Predicate        FilterPredicate `json:"predicate"`
}
