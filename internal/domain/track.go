package domain

import "time"

// CRS names a coordinate reference system. Area and distance math is only
// meaningful inside a single projected, linear-unit CRS.
type CRS string

const (
	// CRSWGS84 is geographic longitude/latitude in decimal degrees.
	CRSWGS84 CRS = "EPSG:4326"
	// CRSBritishNationalGrid is the projected grid used for UK area math, in metres.
	CRSBritishNationalGrid CRS = "EPSG:27700"
	// CRSWebMercator is the spherical mercator projection, in metres.
	CRSWebMercator CRS = "EPSG:3857"
)

// Geographic reports whether the CRS is expressed in degrees rather than a
// linear unit.
func (c CRS) Geographic() bool {
	return c == CRSWGS84
}

// TrackPoint is a single recorded GPS fix in WGS84 degrees. Immutable once
// parsed.
type TrackPoint struct {
	Lon       float64
	Lat       float64
	Elevation *float64
	Time      time.Time // zero when the source record carries no timestamp
}

// Coordinate is a raw planar or geographic pair; its meaning depends on the
// CRS of the PointSet holding it.
type Coordinate struct {
	X float64
	Y float64
}

// PointSet is an ordered sequence of coordinates sharing one CRS.
type PointSet struct {
	CRS    CRS
	Coords []Coordinate
}

// NewGeographicPointSet tags parsed track points as a WGS84 point set,
// preserving order.
func NewGeographicPointSet(points []TrackPoint) PointSet {
	coords := make([]Coordinate, len(points))
	for i, p := range points {
		coords[i] = Coordinate{X: p.Lon, Y: p.Lat}
	}
	return PointSet{CRS: CRSWGS84, Coords: coords}
}

func (ps PointSet) Len() int {
	return len(ps.Coords)
}

// TrackFormat tags the encoding of a track file.
type TrackFormat string

const (
	FormatGPX   TrackFormat = "gpx"
	FormatGPXGz TrackFormat = "gpx.gz"
	FormatFITGz TrackFormat = "fit.gz"
)

// FileResult is the outcome of parsing one track file: either an ordered
// point sequence or a typed failure. Aggregated by the caller; a failed
// file never aborts the batch.
type FileResult struct {
	Path   string
	Format TrackFormat
	Points []TrackPoint
	Err    error
}

// Valid reports whether the file yielded at least one decodable point.
func (r FileResult) Valid() bool {
	return r.Err == nil && len(r.Points) > 0
}
