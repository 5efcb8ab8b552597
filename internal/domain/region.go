package domain

import "github.com/paulmach/orb"

// RegionKind distinguishes how a region is defined and which CRS policy it
// follows.
type RegionKind string

const (
	// KindAdminBoundary is a region backed by the reference administrative
	// boundary dataset, with a projected working CRS.
	KindAdminBoundary RegionKind = "admin_boundary"
	// KindBoundingBox is a region defined by an explicit WGS84 rectangle,
	// reprojected to its working CRS. Used where no administrative boundary
	// exists in the reference dataset.
	KindBoundingBox RegionKind = "bounding_box"
	// KindWorld is the pseudo-region of all country boundaries, geometry
	// simplified for performance, without area semantics.
	KindWorld RegionKind = "world"
)

// Region is one named reference region. Implementations are immutable after
// registry construction; each kind carries its own construction and CRS
// policy.
type Region interface {
	Name() string
	Kind() RegionKind

	// Boundary is the region polygon in WGS84 degrees.
	Boundary() orb.MultiPolygon

	// CRS is the working coordinate system for filtering, buffering and
	// area math. For the world pseudo-region this is WGS84 and the values
	// derived from it carry no area meaning.
	CRS() CRS

	// BufferRadius is the disk radius around each point, in the working
	// CRS's unit.
	BufferRadius() float64

	// SimplifyTolerance bounds vertex reduction of the coverage union, in
	// the working CRS's unit.
	SimplifyTolerance() float64

	// HasAreaSemantics reports whether a coverage percentage is defined for
	// the region.
	HasAreaSemantics() bool
}
