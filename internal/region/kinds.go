package region

import (
	"github.com/paulmach/orb"

	"github.com/activity-analytics/internal/domain"
)

// definition carries the fields shared by every region kind; the kind
// structs differ only in construction and CRS policy.
type definition struct {
	name              string
	boundary          orb.MultiPolygon
	crs               domain.CRS
	bufferRadius      float64
	simplifyTolerance float64
}

func (d definition) Name() string               { return d.name }
func (d definition) Boundary() orb.MultiPolygon { return d.boundary }
func (d definition) CRS() domain.CRS            { return d.crs }
func (d definition) BufferRadius() float64      { return d.bufferRadius }
func (d definition) SimplifyTolerance() float64 { return d.simplifyTolerance }

// adminRegion is backed by a boundary from the reference dataset and a
// projected working CRS suited to it.
type adminRegion struct {
	definition
}

func (adminRegion) Kind() domain.RegionKind { return domain.KindAdminBoundary }
func (adminRegion) HasAreaSemantics() bool  { return true }

// bboxRegion is an explicit WGS84 rectangle for places absent from the
// reference dataset; the rectangle is reprojected to the working CRS by the
// pipeline like any other boundary.
type bboxRegion struct {
	definition
}

func (bboxRegion) Kind() domain.RegionKind { return domain.KindBoundingBox }
func (bboxRegion) HasAreaSemantics() bool  { return true }

// worldRegion is the pseudo-region of all country boundaries, simplified for
// performance. It stays in geographic degrees and opts out of area
// semantics: no coverage percentage is computed for it.
type worldRegion struct {
	definition
}

func (worldRegion) Kind() domain.RegionKind { return domain.KindWorld }
func (worldRegion) HasAreaSemantics() bool  { return false }
