package track

import (
	"fmt"
	"strconv"
	"time"

	"github.com/tkrajina/gpxgo/gpx"

	"github.com/penwyp/go-track-replay/internal/core/model"
)

// LoadGPX reads track points from a GPX file. Track segments are read first;
// files without tracks fall back to their routes.
func LoadGPX(path string) (model.Track, error) {
	gpxData, err := gpx.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("read GPX file: %w", err)
	}
	return fromGPX(gpxData), nil
}

// ParseGPX reads track points from GPX bytes
func ParseGPX(data []byte) (model.Track, error) {
	gpxData, err := gpx.ParseBytes(data)
	if err != nil {
		return nil, fmt.Errorf("parse GPX: %w", err)
	}
	return fromGPX(gpxData), nil
}

func fromGPX(gpxData *gpx.GPX) model.Track {
	var points model.Track
	for _, trk := range gpxData.Tracks {
		for _, segment := range trk.Segments {
			for _, p := range segment.Points {
				points = append(points, gpxPoint(p, len(points)))
			}
		}
	}

	if len(points) == 0 {
		for _, rte := range gpxData.Routes {
			for _, p := range rte.Points {
				points = append(points, gpxPoint(p, len(points)))
			}
		}
	}

	return points
}

// gpxPoint labels a point with its timestamp, or its ordinal when the file has no times
func gpxPoint(p gpx.GPXPoint, index int) model.TimePoint {
	label := strconv.Itoa(index + 1)
	if !p.Timestamp.IsZero() {
		label = p.Timestamp.UTC().Format(time.RFC3339)
	}
	return model.TimePoint{Time: label, Lat: p.Latitude, Lng: p.Longitude}
}
