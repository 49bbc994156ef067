package kv_test

import (
	"testing"

	"github.com/cockroachdb/pebble"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lintang/mapview/pkg/feature"
	"lintang/mapview/pkg/geo"
	"lintang/mapview/pkg/kv"
)

func tempDB(t *testing.T) *kv.KVDB {
	t.Helper()
	db, err := pebble.Open(t.TempDir(), &pebble.Options{})
	require.NoError(t, err)
	kvDB := kv.NewKVDB(db)
	t.Cleanup(kvDB.Close)
	return kvDB
}

func soloMarkers() []feature.Marker {
	return []feature.Marker{
		{ID: 1, Name: "pasar gede", Tags: []string{"shop=marketplace"}, Loc: geo.LatLng{Lat: -7.5682, Lng: 110.8310}},
		{ID: 2, Name: "keraton solo", Tags: []string{"tourism=attraction"}, Loc: geo.LatLng{Lat: -7.5772, Lng: 110.8253}},
		{ID: 3, Name: "balai kota", Tags: []string{"office=government"}, Loc: geo.LatLng{Lat: -7.5691, Lng: 110.8290}},
		{ID: 4, Name: "tugu jogja", Tags: []string{"historic=monument"}, Loc: geo.LatLng{Lat: -7.7828, Lng: 110.3671}},
	}
}

func TestSaveAndQueryMarkers(t *testing.T) {
	kvDB := tempDB(t)
	kvDB.SaveMarkers(soloMarkers(), false)

	t.Run("bounds query filters to the box", func(t *testing.T) {
		soloOnly := geo.NewBounds(
			&geo.LatLng{Lat: -7.60, Lng: 110.80},
			&geo.LatLng{Lat: -7.55, Lng: 110.85})

		got, err := kvDB.MarkersInBounds(soloOnly)
		require.NoError(t, err)
		require.Len(t, got, 3)
		for _, m := range got {
			assert.True(t, soloOnly.Contains(&m.Loc), "marker %d", m.ID)
		}
	})

	t.Run("box far from any marker is empty, not an error", func(t *testing.T) {
		desert := geo.NewBounds(
			&geo.LatLng{Lat: 24.0, Lng: 45.0},
			&geo.LatLng{Lat: 24.1, Lng: 45.1})

		got, err := kvDB.MarkersInBounds(desert)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("invalid bounds query is empty", func(t *testing.T) {
		got, err := kvDB.MarkersInBounds(&geo.LatLngBounds{})
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("full scan sees every marker", func(t *testing.T) {
		got, err := kvDB.AllMarkers()
		require.NoError(t, err)
		assert.Len(t, got, len(soloMarkers()))

		ids := map[int64]bool{}
		for _, m := range got {
			ids[m.ID] = true
		}
		for _, m := range soloMarkers() {
			assert.True(t, ids[m.ID], "marker %d missing from scan", m.ID)
		}
	})

	t.Run("saving again overwrites, no duplicates", func(t *testing.T) {
		kvDB.SaveMarkers(soloMarkers(), false)
		got, err := kvDB.AllMarkers()
		require.NoError(t, err)
		assert.Len(t, got, len(soloMarkers()))
	})
}

func TestMarkerCodec(t *testing.T) {
	t.Run("compress load roundtrip", func(t *testing.T) {
		markers := soloMarkers()
		blob, err := kv.CompressMarkers(markers)
		require.NoError(t, err)
		require.NotEmpty(t, blob)

		back, err := kv.LoadMarkers(blob)
		require.NoError(t, err)
		require.Len(t, back, len(markers))
		for i := range markers {
			assert.Equal(t, markers[i].ID, back[i].ID)
			assert.Equal(t, markers[i].Name, back[i].Name)
			assert.Equal(t, markers[i].Tags, back[i].Tags)
			assert.True(t, markers[i].Loc.Equals(&back[i].Loc))
		}
	})

	t.Run("altitude survives the codec", func(t *testing.T) {
		alt := 92.0
		markers := []feature.Marker{
			{ID: 1, Name: "with alt", Loc: geo.LatLng{Lat: -7.55, Lng: 110.79, Alt: &alt}},
			{ID: 2, Name: "without alt", Loc: geo.LatLng{Lat: -7.56, Lng: 110.80}},
		}

		back, err := kv.LoadMarkers(mustCompress(t, markers))
		require.NoError(t, err)
		require.Len(t, back, 2)
		require.NotNil(t, back[0].Loc.Alt)
		assert.Equal(t, 92.0, *back[0].Loc.Alt)
		assert.Nil(t, back[1].Loc.Alt)
	})

	t.Run("garbage blob fails to load", func(t *testing.T) {
		_, err := kv.LoadMarkers([]byte("not a zstd frame"))
		assert.Error(t, err)
	})
}

func mustCompress(t *testing.T, markers []feature.Marker) []byte {
	t.Helper()
	blob, err := kv.CompressMarkers(markers)
	require.NoError(t, err)
	return blob
}
