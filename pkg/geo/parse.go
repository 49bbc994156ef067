package geo

import (
	"bytes"
	"encoding/json"
)

// ParseLatLng coerces the accepted coordinate shapes into a LatLng:
//
//   - *LatLng: returned as-is (aliased, not cloned)
//   - a 2/3-element sequence of numbers: []float64 or []interface{},
//     ordered lat, lng, optional alt
//   - a record with "lat" and "lng" (or the "lon" alias) keys and an
//     optional "alt": map[string]interface{}
//
// A zero coordinate is a perfectly valid value, only missing or
// non-numeric input fails. Sequences of the wrong length, or whose
// elements are themselves objects or sequences, fail too.
func ParseLatLng(v interface{}) (*LatLng, error) {
	switch t := v.(type) {
	case *LatLng:
		return t, nil
	case LatLng:
		ll := t
		return &ll, nil
	case []float64:
		return latLngFromSlice(t)
	case []interface{}:
		nums := make([]float64, 0, len(t))
		for _, el := range t {
			f, ok := toFloat(el)
			if !ok {
				return nil, &InvalidLatLngError{Lat: t, Lng: nil}
			}
			nums = append(nums, f)
		}
		return latLngFromSlice(nums)
	case map[string]interface{}:
		return latLngFromRecord(t)
	default:
		return nil, &InvalidLatLngError{Lat: v, Lng: nil}
	}
}

// Valid reports whether v is coercible into a LatLng by ParseLatLng.
func Valid(v interface{}) bool {
	_, err := ParseLatLng(v)
	return err == nil
}

// ParseBounds coerces the accepted rectangle shapes into LatLngBounds: an
// existing *LatLngBounds (aliased, not cloned), or a sequence of
// ParseLatLng-able points whose bounding box is taken.
func ParseBounds(v interface{}) (*LatLngBounds, error) {
	switch t := v.(type) {
	case *LatLngBounds:
		return t, nil
	case LatLngBounds:
		b := t
		return &b, nil
	case []LatLng:
		return NewBoundsFromPoints(t), nil
	case []*LatLng:
		b := &LatLngBounds{}
		for _, ll := range t {
			b.Extend(ll)
		}
		return b, nil
	case []interface{}:
		b := &LatLngBounds{}
		for _, el := range t {
			ll, err := ParseLatLng(el)
			if err != nil {
				return nil, err
			}
			b.Extend(ll)
		}
		return b, nil
	default:
		return nil, &InvalidLatLngError{Lat: v, Lng: nil}
	}
}

func latLngFromSlice(nums []float64) (*LatLng, error) {
	switch len(nums) {
	case 2:
		return New(nums[0], nums[1])
	case 3:
		return NewAlt(nums[0], nums[1], nums[2])
	default:
		return nil, &InvalidLatLngError{Lat: nums, Lng: nil}
	}
}

func latLngFromRecord(rec map[string]interface{}) (*LatLng, error) {
	latRaw, latOk := rec["lat"]
	lngRaw, lngOk := rec["lng"]
	if !lngOk {
		lngRaw, lngOk = rec["lon"]
	}
	if !latOk || !lngOk {
		return nil, &InvalidLatLngError{Lat: latRaw, Lng: lngRaw}
	}

	lat, latNum := toFloat(latRaw)
	lng, lngNum := toFloat(lngRaw)
	if !latNum || !lngNum {
		return nil, &InvalidLatLngError{Lat: latRaw, Lng: lngRaw}
	}

	if altRaw, ok := rec["alt"]; ok {
		if alt, num := toFloat(altRaw); num {
			return NewAlt(lat, lng, alt)
		}
		return nil, &InvalidLatLngError{Lat: latRaw, Lng: lngRaw}
	}
	return New(lat, lng)
}

func toFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// MarshalJSON emits the record shape, with alt only when set.
func (ll LatLng) MarshalJSON() ([]byte, error) {
	type obj struct {
		Lat float64  `json:"lat"`
		Lng float64  `json:"lng"`
		Alt *float64 `json:"alt,omitempty"`
	}
	return json.Marshal(obj{Lat: ll.Lat, Lng: ll.Lng, Alt: ll.Alt})
}

// UnmarshalJSON accepts every shape ParseLatLng does: [lat,lng],
// [lat,lng,alt], {"lat":..,"lng":..} and the "lon" alias.
func (ll *LatLng) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	parsed, err := ParseLatLng(raw)
	if err != nil {
		return err
	}
	*ll = *parsed
	return nil
}

// MarshalJSON emits {"sw":.., "ne":..}.
func (b LatLngBounds) MarshalJSON() ([]byte, error) {
	type obj struct {
		SW *LatLng `json:"sw"`
		NE *LatLng `json:"ne"`
	}
	return json.Marshal(obj{SW: b.sw, NE: b.ne})
}

// UnmarshalJSON accepts a sequence of points (any ParseLatLng shape) or
// an {"sw":.., "ne":..} record.
func (b *LatLngBounds) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	if rec, ok := raw.(map[string]interface{}); ok {
		swRaw, swOk := rec["sw"]
		neRaw, neOk := rec["ne"]
		if !swOk || !neOk {
			return &InvalidLatLngError{Lat: swRaw, Lng: neRaw}
		}
		sw, err := ParseLatLng(swRaw)
		if err != nil {
			return err
		}
		ne, err := ParseLatLng(neRaw)
		if err != nil {
			return err
		}
		*b = *NewBounds(sw, ne)
		return nil
	}

	parsed, err := ParseBounds(raw)
	if err != nil {
		return err
	}
	*b = *parsed
	return nil
}
