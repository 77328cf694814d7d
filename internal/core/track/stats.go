package track

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"

	"github.com/penwyp/go-track-replay/internal/core/model"
)

// Summary holds aggregate figures about a track
type Summary struct {
	Points       int
	ValidPoints  int
	FirstLabel   string
	LastLabel    string
	LengthMeters float64 // Geodesic length over consecutive valid points
	Bound        orb.Bound
	HasBound     bool
}

// Summarize computes the summary of a track
func Summarize(t model.Track) Summary {
	s := Summary{Points: len(t)}
	if len(t) == 0 {
		return s
	}
	s.FirstLabel = t[0].Time
	s.LastLabel = t[len(t)-1].Time

	var prev *orb.Point
	for _, p := range t {
		if !p.Valid() {
			continue
		}
		s.ValidPoints++
		pt := ToOrbPoint(p)
		if !s.HasBound {
			s.Bound = pt.Bound()
			s.HasBound = true
		} else {
			s.Bound = s.Bound.Extend(pt)
		}
		if prev != nil {
			s.LengthMeters += geo.Distance(*prev, pt)
		}
		prev = &pt
	}

	return s
}

// ToOrbPoint converts a time point to an orb point (lng, lat order)
func ToOrbPoint(p model.TimePoint) orb.Point {
	return orb.Point{p.Lng, p.Lat}
}
