package geo_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lintang/mapview/pkg/crs"
	"lintang/mapview/pkg/geo"
)

func TestNewLatLng(t *testing.T) {
	t.Run("success create latlng", func(t *testing.T) {
		ll, err := geo.New(50.0, 30.0)
		require.NoError(t, err)
		assert.Equal(t, 50.0, ll.Lat)
		assert.Equal(t, 30.0, ll.Lng)
		assert.Nil(t, ll.Alt)
	})

	t.Run("zero coordinates are valid, the origin is a real place", func(t *testing.T) {
		ll, err := geo.New(0, 0)
		require.NoError(t, err)
		assert.Equal(t, 0.0, ll.Lat)
		assert.Equal(t, 0.0, ll.Lng)
	})

	t.Run("infinite latitude rejected", func(t *testing.T) {
		_, err := geo.New(inf(), 0)
		require.Error(t, err)
		var invalidErr *geo.InvalidLatLngError
		assert.ErrorAs(t, err, &invalidErr)
		assert.Contains(t, err.Error(), "invalid LatLng object")
	})

	t.Run("nan longitude rejected", func(t *testing.T) {
		_, err := geo.New(10, nan())
		assert.Error(t, err)
	})

	t.Run("altitude kept", func(t *testing.T) {
		ll, err := geo.NewAlt(50.0, 30.0, 120.0)
		require.NoError(t, err)
		require.NotNil(t, ll.Alt)
		assert.Equal(t, 120.0, *ll.Alt)
	})
}

func TestLatLngEquals(t *testing.T) {
	t.Run("equal to itself and symmetric", func(t *testing.T) {
		a := &geo.LatLng{Lat: 10.442, Lng: 20.199}
		b := &geo.LatLng{Lat: 10.442, Lng: 20.199}
		assert.True(t, a.Equals(b))
		assert.True(t, b.Equals(a))
	})

	t.Run("nil other is never equal", func(t *testing.T) {
		a := &geo.LatLng{Lat: 10, Lng: 20}
		assert.False(t, a.Equals(nil))
	})

	t.Run("within margin", func(t *testing.T) {
		a := &geo.LatLng{Lat: 10, Lng: 20}
		b := &geo.LatLng{Lat: 10 + 1.0e-10, Lng: 20 - 1.0e-10}
		assert.True(t, a.Equals(b))
	})

	t.Run("outside margin", func(t *testing.T) {
		a := &geo.LatLng{Lat: 10, Lng: 20}
		b := &geo.LatLng{Lat: 10.001, Lng: 20}
		assert.False(t, a.Equals(b))
		assert.True(t, a.EqualsWithMargin(b, 0.01))
	})
}

func TestLatLngClone(t *testing.T) {
	t.Run("clone is independent", func(t *testing.T) {
		orig, err := geo.NewAlt(5, 6, 7)
		require.NoError(t, err)

		cloned := orig.Clone()
		assert.True(t, orig.Equals(cloned))

		cloned.Lat = 99
		*cloned.Alt = 42
		assert.Equal(t, 5.0, orig.Lat)
		assert.Equal(t, 7.0, *orig.Alt)
	})

	t.Run("clone keeps absent altitude absent", func(t *testing.T) {
		orig := &geo.LatLng{Lat: 5, Lng: 6}
		assert.Nil(t, orig.Clone().Alt)
	})
}

func TestLatLngWrap(t *testing.T) {
	t.Run("already canonical longitude untouched", func(t *testing.T) {
		ll := &geo.LatLng{Lat: 10, Lng: 100}
		assert.Equal(t, 100.0, ll.Wrap().Lng)
	})

	t.Run("wraps into (-180, 180]", func(t *testing.T) {
		for _, lng := range []float64{190, 360, 540, -190, -360, -540, 180, -180, 123456} {
			wrapped := (&geo.LatLng{Lat: 0, Lng: lng}).Wrap()
			assert.Greater(t, wrapped.Lng, -180.0, "lng %v", lng)
			assert.LessOrEqual(t, wrapped.Lng, 180.0, "lng %v", lng)
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		ll := &geo.LatLng{Lat: 10, Lng: 541}
		once := ll.Wrap()
		twice := once.Wrap()
		assert.True(t, once.Equals(twice))
	})

	t.Run("latitude untouched", func(t *testing.T) {
		ll := &geo.LatLng{Lat: 95, Lng: 400}
		assert.Equal(t, 95.0, ll.Wrap().Lat)
	})
}

func TestLatLngDistanceTo(t *testing.T) {
	t.Run("newark to manhattan-ish, great circle", func(t *testing.T) {
		a := &geo.LatLng{Lat: 40.712, Lng: -74.227}
		b := &geo.LatLng{Lat: 40.774, Lng: -74.125}

		dist := a.DistanceTo(b, crs.EPSG3857)
		assert.InDelta(t, 11017.0, dist, 10.0)
	})

	t.Run("symmetric", func(t *testing.T) {
		a := &geo.LatLng{Lat: -7.55, Lng: 110.79}
		b := &geo.LatLng{Lat: 51.51, Lng: -0.12}
		assert.InDelta(t, a.DistanceTo(b, crs.EPSG3857), b.DistanceTo(a, crs.EPSG3857), 1.0e-6)
	})

	t.Run("zero for coincident points", func(t *testing.T) {
		a := &geo.LatLng{Lat: 40.712, Lng: -74.227}
		assert.Equal(t, 0.0, a.DistanceTo(a.Clone(), crs.EPSG3857))
	})
}

func TestLatLngToBounds(t *testing.T) {
	t.Run("centered on the point", func(t *testing.T) {
		ll := &geo.LatLng{Lat: -7.55, Lng: 110.79}
		b := ll.ToBounds(1000)
		assert.True(t, ll.Equals(b.Center()))
		assert.True(t, b.Contains(ll))
	})

	t.Run("latitude span matches the approximation", func(t *testing.T) {
		ll := &geo.LatLng{Lat: 0, Lng: 0}
		b := ll.ToBounds(2000)

		wantHalfLat := 180.0 * 2000 / geo.EarthCircumference
		assert.InDelta(t, -wantHalfLat, b.South(), 1.0e-12)
		assert.InDelta(t, wantHalfLat, b.North(), 1.0e-12)
		// at the equator cos(lat) == 1 and both spans agree
		assert.InDelta(t, wantHalfLat, b.East(), 1.0e-12)
	})
}

func TestLatLngString(t *testing.T) {
	ll := &geo.LatLng{Lat: 10.123456, Lng: 20.654321}
	assert.Equal(t, "LatLng(10.123456, 20.654321)", ll.String())
	assert.Equal(t, "LatLng(10.123, 20.654)", ll.StringPrec(3))
}

func TestParseLatLng(t *testing.T) {
	t.Run("sequence equals record", func(t *testing.T) {
		fromSeq, err := geo.ParseLatLng([]float64{50, 30})
		require.NoError(t, err)
		fromRec, err := geo.ParseLatLng(map[string]interface{}{"lat": 50.0, "lng": 30.0})
		require.NoError(t, err)
		assert.True(t, fromSeq.Equals(fromRec))
	})

	t.Run("lon alias", func(t *testing.T) {
		ll, err := geo.ParseLatLng(map[string]interface{}{"lat": 50.0, "lon": 30.0})
		require.NoError(t, err)
		assert.Equal(t, 30.0, ll.Lng)
	})

	t.Run("three element sequence carries altitude", func(t *testing.T) {
		ll, err := geo.ParseLatLng([]float64{50, 30, 100})
		require.NoError(t, err)
		require.NotNil(t, ll.Alt)
		assert.Equal(t, 100.0, *ll.Alt)
	})

	t.Run("existing latlng aliased, not cloned", func(t *testing.T) {
		orig := &geo.LatLng{Lat: 1, Lng: 2}
		parsed, err := geo.ParseLatLng(orig)
		require.NoError(t, err)
		assert.Same(t, orig, parsed)
	})

	t.Run("zero record values accepted", func(t *testing.T) {
		ll, err := geo.ParseLatLng(map[string]interface{}{"lat": 0.0, "lng": 0.0})
		require.NoError(t, err)
		assert.Equal(t, 0.0, ll.Lat)
	})

	t.Run("wrong sequence length rejected", func(t *testing.T) {
		_, err := geo.ParseLatLng([]float64{50})
		assert.Error(t, err)
		_, err = geo.ParseLatLng([]float64{50, 30, 100, 7})
		assert.Error(t, err)
	})

	t.Run("sequence of objects rejected", func(t *testing.T) {
		_, err := geo.ParseLatLng([]interface{}{map[string]interface{}{"lat": 1.0}, 2.0})
		assert.Error(t, err)
	})

	t.Run("record missing lng rejected", func(t *testing.T) {
		_, err := geo.ParseLatLng(map[string]interface{}{"lat": 50.0})
		assert.Error(t, err)
	})

	t.Run("valid predicate mirrors parse", func(t *testing.T) {
		assert.True(t, geo.Valid([]float64{0, 0}))
		assert.True(t, geo.Valid(map[string]interface{}{"lat": 50.0, "lon": 30.0}))
		assert.False(t, geo.Valid("50,30"))
		assert.False(t, geo.Valid(nil))
	})
}

func TestLatLngJSON(t *testing.T) {
	t.Run("unmarshal array shape", func(t *testing.T) {
		var ll geo.LatLng
		require.NoError(t, json.Unmarshal([]byte(`[50, 30]`), &ll))
		assert.Equal(t, 50.0, ll.Lat)
		assert.Equal(t, 30.0, ll.Lng)
	})

	t.Run("unmarshal record with lon alias", func(t *testing.T) {
		var ll geo.LatLng
		require.NoError(t, json.Unmarshal([]byte(`{"lat": 50, "lon": 30}`), &ll))
		assert.Equal(t, 30.0, ll.Lng)
	})

	t.Run("marshal emits record without absent alt", func(t *testing.T) {
		out, err := json.Marshal(geo.LatLng{Lat: 50, Lng: 30})
		require.NoError(t, err)
		assert.JSONEq(t, `{"lat":50,"lng":30}`, string(out))
	})

	t.Run("unmarshal garbage rejected", func(t *testing.T) {
		var ll geo.LatLng
		assert.Error(t, json.Unmarshal([]byte(`"50,30"`), &ll))
	})
}

func inf() float64 {
	one := 1.0
	zero := one - 1
	return one / zero
}

func nan() float64 {
	return inf() - inf()
}
