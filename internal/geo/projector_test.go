package geo

import (
	stderrors "errors"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/activity-analytics/internal/domain"
	"github.com/activity-analytics/internal/pkg/errors"
)

func TestProjectPoints_BritishNationalGrid(t *testing.T) {
	p := NewProjector(zap.NewNop())

	// Central London; the national grid puts it around easting 530k,
	// northing 180k.
	ps := domain.PointSet{
		CRS:    domain.CRSWGS84,
		Coords: []domain.Coordinate{{X: -0.1278, Y: 51.5074}},
	}

	out, err := p.ProjectPoints(ps, domain.CRSBritishNationalGrid)
	require.NoError(t, err)
	require.Equal(t, ps.Len(), out.Len())
	assert.Equal(t, domain.CRSBritishNationalGrid, out.CRS)

	assert.InDelta(t, 530000, out.Coords[0].X, 5000)
	assert.InDelta(t, 180000, out.Coords[0].Y, 5000)
}

func TestProjectPoints_WebMercator(t *testing.T) {
	p := NewProjector(zap.NewNop())

	ps := domain.PointSet{
		CRS:    domain.CRSWGS84,
		Coords: []domain.Coordinate{{X: 0, Y: 0}, {X: -1.47, Y: 53.38}},
	}

	out, err := p.ProjectPoints(ps, domain.CRSWebMercator)
	require.NoError(t, err)
	require.Equal(t, 2, out.Len())

	// Origin maps to origin in spherical mercator.
	assert.InDelta(t, 0, out.Coords[0].X, 1e-6)
	assert.InDelta(t, 0, out.Coords[0].Y, 1e-6)
	// West of Greenwich, well north of the equator.
	assert.Less(t, out.Coords[1].X, 0.0)
	assert.Greater(t, out.Coords[1].Y, 6e6)
}

func TestProjectPoints_PreservesOrder(t *testing.T) {
	p := NewProjector(zap.NewNop())

	ps := domain.PointSet{CRS: domain.CRSWGS84}
	for i := 0; i < 10; i++ {
		ps.Coords = append(ps.Coords, domain.Coordinate{X: -1.5 + float64(i)*0.01, Y: 53.3})
	}

	out, err := p.ProjectPoints(ps, domain.CRSWebMercator)
	require.NoError(t, err)
	require.Equal(t, ps.Len(), out.Len())

	// Longitude increases monotonically, so must easting.
	for i := 1; i < out.Len(); i++ {
		assert.Greater(t, out.Coords[i].X, out.Coords[i-1].X)
	}
}

func TestProjectPoints_SameCRSIsIdentity(t *testing.T) {
	p := NewProjector(zap.NewNop())

	ps := domain.PointSet{
		CRS:    domain.CRSWGS84,
		Coords: []domain.Coordinate{{X: 1, Y: 2}},
	}

	out, err := p.ProjectPoints(ps, domain.CRSWGS84)
	require.NoError(t, err)
	assert.Equal(t, ps, out)
}

func TestProjectPoints_UnknownCRS(t *testing.T) {
	p := NewProjector(zap.NewNop())

	ps := domain.PointSet{
		CRS:    domain.CRSWGS84,
		Coords: []domain.Coordinate{{X: 1, Y: 2}},
	}

	_, err := p.ProjectPoints(ps, domain.CRS("EPSG:99999"))
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, errors.ErrProjectionFailure))
}

func TestProjectMultiPolygon_RoundTrip(t *testing.T) {
	p := NewProjector(zap.NewNop())

	square := orb.MultiPolygon{{{
		{-1.5, 53.3}, {-1.4, 53.3}, {-1.4, 53.4}, {-1.5, 53.4}, {-1.5, 53.3},
	}}}

	projected, err := p.ProjectMultiPolygon(square, domain.CRSWGS84, domain.CRSWebMercator)
	require.NoError(t, err)

	back, err := p.ProjectMultiPolygon(projected, domain.CRSWebMercator, domain.CRSWGS84)
	require.NoError(t, err)

	require.Len(t, back, 1)
	require.Len(t, back[0], 1)
	require.Len(t, back[0][0], 5)
	for i, pt := range back[0][0] {
		assert.InDelta(t, square[0][0][i].X(), pt.X(), 1e-6)
		assert.InDelta(t, square[0][0][i].Y(), pt.Y(), 1e-6)
	}
}
