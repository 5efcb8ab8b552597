package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewGeographicPointSet(t *testing.T) {
	points := []TrackPoint{
		{Lon: -1.47, Lat: 53.38},
		{Lon: -1.48, Lat: 53.39},
		{Lon: -1.49, Lat: 53.40},
	}

	ps := NewGeographicPointSet(points)

	assert.Equal(t, CRSWGS84, ps.CRS)
	assert.Equal(t, len(points), ps.Len())
	for i, p := range points {
		assert.Equal(t, Coordinate{X: p.Lon, Y: p.Lat}, ps.Coords[i], "order must be preserved")
	}
}

func TestCRS_Geographic(t *testing.T) {
	assert.True(t, CRSWGS84.Geographic())
	assert.False(t, CRSBritishNationalGrid.Geographic())
	assert.False(t, CRSWebMercator.Geographic())
}

func TestFileResult_Valid(t *testing.T) {
	tests := []struct {
		name     string
		result   FileResult
		expected bool
	}{
		{
			name:     "points and no error",
			result:   FileResult{Points: []TrackPoint{{Lon: 1, Lat: 2}}},
			expected: true,
		},
		{
			name:     "zero points",
			result:   FileResult{},
			expected: false,
		},
		{
			name:     "points but decode error",
			result:   FileResult{Points: []TrackPoint{{Lon: 1, Lat: 2}}, Err: assert.AnError},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.result.Valid())
		})
	}
}
