package model

import (
	"math"

	"github.com/bytedance/sonic"
)

// TimePoint is one parsed input line: a time label and a coordinate.
// Lat and Lng are NaN when the source field could not be parsed.
type TimePoint struct {
	Time string  `json:"time"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

// LatLng is a bare coordinate pair handed to map renderers
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Valid reports whether both coordinates are finite numbers
func (p TimePoint) Valid() bool {
	return isFinite(p.Lat) && isFinite(p.Lng)
}

// Position returns the coordinate of the point
func (p TimePoint) Position() LatLng {
	return LatLng{Lat: p.Lat, Lng: p.Lng}
}

// MarshalJSON writes NaN and Inf coordinates as null, which JSON cannot represent otherwise.
func (p TimePoint) MarshalJSON() ([]byte, error) {
	return sonic.Marshal(struct {
		Time string   `json:"time"`
		Lat  *float64 `json:"lat"`
		Lng  *float64 `json:"lng"`
	}{
		Time: p.Time,
		Lat:  finiteOrNil(p.Lat),
		Lng:  finiteOrNil(p.Lng),
	})
}

// Track is an ordered sequence of time points. Order is the path and the playback order.
type Track []TimePoint

// DefaultTrack is the track a fresh session holds before any data is loaded:
// a single degenerate point.
func DefaultTrack() Track {
	return Track{{}}
}

// Len returns the number of points
func (t Track) Len() int {
	return len(t)
}

// LastIndex returns the index of the final point, or 0 for an empty track
func (t Track) LastIndex() int {
	if len(t) == 0 {
		return 0
	}
	return len(t) - 1
}

// At returns the point at index i and whether i is in range
func (t Track) At(i int) (TimePoint, bool) {
	if i < 0 || i >= len(t) {
		return TimePoint{}, false
	}
	return t[i], true
}

// Path projects the track to its coordinates, preserving order
func (t Track) Path() []LatLng {
	path := make([]LatLng, len(t))
	for i, p := range t {
		path[i] = p.Position()
	}
	return path
}

// ValidCount returns how many points carry finite coordinates
func (t Track) ValidCount() int {
	n := 0
	for _, p := range t {
		if p.Valid() {
			n++
		}
	}
	return n
}

// Clone returns an independent copy of the track
func (t Track) Clone() Track {
	if t == nil {
		return nil
	}
	out := make(Track, len(t))
	copy(out, t)
	return out
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func finiteOrNil(f float64) *float64 {
	if !isFinite(f) {
		return nil
	}
	return &f
}
