package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lintang/mapview/pkg/crs"
	"lintang/mapview/pkg/feature"
	"lintang/mapview/pkg/geo"
	"lintang/mapview/pkg/server/rest/service"
)

type fakeMarkerDB struct {
	markers []feature.Marker
	err     error
}

func (f *fakeMarkerDB) MarkersInBounds(b *geo.LatLngBounds) ([]feature.Marker, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []feature.Marker{}
	for _, m := range f.markers {
		if b.Contains(&m.Loc) {
			out = append(out, m)
		}
	}
	return out, nil
}

func soloMarkers() []feature.Marker {
	return []feature.Marker{
		{ID: 1, Name: "pasar gede", Loc: geo.LatLng{Lat: -7.5682, Lng: 110.8310}},
		{ID: 2, Name: "keraton solo", Loc: geo.LatLng{Lat: -7.5772, Lng: 110.8253}},
		{ID: 3, Name: "tugu jogja", Loc: geo.LatLng{Lat: -7.7828, Lng: 110.3671}},
	}
}

func TestMapServiceDistance(t *testing.T) {
	svc := service.NewMapService(crs.EPSG3857, &fakeMarkerDB{})

	a := &geo.LatLng{Lat: 40.712, Lng: -74.227}
	b := &geo.LatLng{Lat: 40.774, Lng: -74.125}
	assert.InDelta(t, 11017.0, svc.Distance(context.Background(), a, b), 10.0)
}

func TestMapServiceViewport(t *testing.T) {
	svc := service.NewMapService(crs.EPSG3857, &fakeMarkerDB{})
	svc.IndexMarkers(soloMarkers())

	t.Run("solo view culls out jogja", func(t *testing.T) {
		bounds, tiles, markers := svc.Viewport(context.Background(),
			&geo.LatLng{Lat: -7.57, Lng: 110.82}, 13, 1024, 768)

		require.True(t, bounds.IsValid())
		assert.NotEmpty(t, tiles)
		require.Len(t, markers, 2)
		assert.Equal(t, int64(1), markers[0].ID)
		assert.Equal(t, int64(2), markers[1].ID)
	})

	t.Run("center longitude is wrapped before culling", func(t *testing.T) {
		_, _, markers := svc.Viewport(context.Background(),
			&geo.LatLng{Lat: -7.57, Lng: 110.82 - 360}, 13, 1024, 768)
		assert.Len(t, markers, 2)
	})
}

func TestMapServiceFitBounds(t *testing.T) {
	svc := service.NewMapService(crs.EPSG3857, &fakeMarkerDB{})

	box := geo.NewBounds(
		&geo.LatLng{Lat: -7.7956, Lng: 110.3695},
		&geo.LatLng{Lat: -7.5560, Lng: 110.7915})
	center, zoom := svc.FitBounds(context.Background(), box, 1024, 768, 0)

	require.NotNil(t, center)
	assert.True(t, box.Contains(center))
	assert.Greater(t, zoom, 0)
}

func TestMapServiceMarkersInBBox(t *testing.T) {
	t.Run("delegates to the store", func(t *testing.T) {
		svc := service.NewMapService(crs.EPSG3857, &fakeMarkerDB{markers: soloMarkers()})

		soloOnly := geo.NewBounds(
			&geo.LatLng{Lat: -7.60, Lng: 110.80},
			&geo.LatLng{Lat: -7.55, Lng: 110.85})
		got, err := svc.MarkersInBBox(context.Background(), soloOnly)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("store errors surface", func(t *testing.T) {
		svc := service.NewMapService(crs.EPSG3857, &fakeMarkerDB{err: errors.New("pebble: closed")})
		_, err := svc.MarkersInBBox(context.Background(), geo.NewBounds(
			&geo.LatLng{Lat: 0, Lng: 0}, &geo.LatLng{Lat: 1, Lng: 1}))
		assert.Error(t, err)
	})
}

func TestMapServicePaths(t *testing.T) {
	svc := service.NewMapService(crs.EPSG3857, &fakeMarkerDB{})

	points := []geo.LatLng{
		{Lat: 38.5, Lng: -120.2},
		{Lat: 40.7, Lng: -120.95},
		{Lat: 43.252, Lng: -126.453},
	}

	t.Run("encode", func(t *testing.T) {
		encoded, bounds := svc.EncodePath(context.Background(), points)
		assert.Equal(t, "_p~iF~ps|U_ulLnnqC_mqNvxq`@", encoded)
		assert.Equal(t, "-126.453,38.5,-120.2,43.252", bounds.ToBBoxString())
	})

	t.Run("snap", func(t *testing.T) {
		snapped := svc.SnapToPath(context.Background(),
			[]geo.LatLng{{Lat: 0, Lng: 0}, {Lat: 0, Lng: 1}},
			&geo.LatLng{Lat: 0.1, Lng: 0.5})
		require.NotNil(t, snapped)
		assert.InDelta(t, 0.0, snapped.Lat, 1.0e-4)
		assert.InDelta(t, 0.5, snapped.Lng, 1.0e-4)
	})
}
