package track

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/penwyp/go-track-replay/internal/core/model"
)

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)

	assert.Equal(t, 0, s.Points)
	assert.False(t, s.HasBound)
}

func TestSummarizeSkipsInvalidPoints(t *testing.T) {
	track := model.Track{
		{Time: "t1", Lat: 0, Lng: 0},
		{Time: "t2", Lat: math.NaN(), Lng: math.NaN()},
		{Time: "t3", Lat: 0, Lng: 1},
	}

	s := Summarize(track)

	assert.Equal(t, 3, s.Points)
	assert.Equal(t, 2, s.ValidPoints)
	assert.Equal(t, "t1", s.FirstLabel)
	assert.Equal(t, "t3", s.LastLabel)
	// One degree of longitude on the equator is roughly 111km
	assert.InDelta(t, 111_195, s.LengthMeters, 500)
	assert.True(t, s.HasBound)
	assert.Equal(t, 0.0, s.Bound.Min[0])
	assert.Equal(t, 1.0, s.Bound.Max[0])
}
