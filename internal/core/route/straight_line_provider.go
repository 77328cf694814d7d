package route

import (
	"context"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"

	"github.com/penwyp/go-track-replay/internal/core/model"
)

// DefaultOfflineSpeed is the assumed average driving speed in km/h for offline estimates
const DefaultOfflineSpeed = 50.0

// StraightLineProvider estimates a route offline as the great-circle line between endpoints
type StraightLineProvider struct {
	speedKmh float64
}

// NewStraightLineProvider creates an offline provider assuming the given average speed
func NewStraightLineProvider(speedKmh float64) *StraightLineProvider {
	if speedKmh <= 0 {
		speedKmh = DefaultOfflineSpeed
	}
	return &StraightLineProvider{speedKmh: speedKmh}
}

// GetProviderName returns the name of this route provider
func (p *StraightLineProvider) GetProviderName() string {
	return "offline"
}

// Route returns the direct distance and the time to cover it at the configured speed
func (p *StraightLineProvider) Route(_ context.Context, req model.RouteRequest) (*model.RouteResult, error) {
	src, dst, err := parseEndpoints(req)
	if err != nil {
		return nil, err
	}

	meters := geo.Distance(orb.Point{src.Lng, src.Lat}, orb.Point{dst.Lng, dst.Lat})
	seconds := meters / (p.speedKmh * 1000 / 3600)

	return &model.RouteResult{
		DistanceText:   FormatDistance(meters),
		DurationText:   FormatDuration(seconds),
		DistanceMeters: meters,
		DurationSecs:   seconds,
		Path:           []model.LatLng{src, dst},
	}, nil
}
