package route

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/penwyp/go-track-replay/internal/core/model"
)

// RouteProvider computes a driving route between two endpoints
type RouteProvider interface {
	// Route returns distance, duration and path for the request
	Route(ctx context.Context, req model.RouteRequest) (*model.RouteResult, error)

	// GetProviderName returns the name of this route provider
	GetProviderName() string
}

// ErrEmptyEndpoint is returned when origin or destination is blank. Callers treat it as a no-op.
var ErrEmptyEndpoint = errors.New("origin and destination are required")

// ErrNoRoute is returned when the service found no route between the endpoints
var ErrNoRoute = errors.New("no route found")

// ParseCoord parses a "lat,lng" string
func ParseCoord(input string) (model.LatLng, error) {
	parts := strings.Split(input, ",")
	if len(parts) != 2 {
		return model.LatLng{}, fmt.Errorf("invalid coordinate: %q", input)
	}

	lat, err1 := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	lng, err2 := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err1 != nil || err2 != nil {
		return model.LatLng{}, fmt.Errorf("invalid lat/lng: %q", input)
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return model.LatLng{}, fmt.Errorf("coordinate out of range: %q", input)
	}

	return model.LatLng{Lat: lat, Lng: lng}, nil
}

// parseEndpoints validates a request and parses both endpoints
func parseEndpoints(req model.RouteRequest) (model.LatLng, model.LatLng, error) {
	if strings.TrimSpace(req.Origin) == "" || strings.TrimSpace(req.Destination) == "" {
		return model.LatLng{}, model.LatLng{}, ErrEmptyEndpoint
	}
	src, err := ParseCoord(req.Origin)
	if err != nil {
		return model.LatLng{}, model.LatLng{}, fmt.Errorf("invalid origin: %w", err)
	}
	dst, err := ParseCoord(req.Destination)
	if err != nil {
		return model.LatLng{}, model.LatLng{}, fmt.Errorf("invalid destination: %w", err)
	}
	return src, dst, nil
}
