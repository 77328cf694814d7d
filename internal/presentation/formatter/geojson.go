package formatter

import (
	"fmt"
	"io"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/penwyp/go-track-replay/internal/core/model"
	"github.com/penwyp/go-track-replay/internal/core/track"
)

const (
	pathColor   = "#FF0000"
	pathOpacity = 1.0
	pathWeight  = 2
	markerKind  = "marker"
	pathKind    = "path"
	droneKind   = "drone"
)

// GeoJSONFormatter writes a FeatureCollection a web map can render directly:
// one marker per valid point labelled with its time, the red path through them,
// and the drone at the current step. Points without finite coordinates are left out.
type GeoJSONFormatter struct {
	out io.Writer
}

func NewGeoJSONFormatter(out io.Writer) *GeoJSONFormatter {
	return &GeoJSONFormatter{out: out}
}

func (f *GeoJSONFormatter) Format(doc Document) error {
	data, err := BuildFeatureCollection(doc).MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to encode geojson: %w", err)
	}
	_, err = fmt.Fprintln(f.out, string(data))
	return err
}

// BuildFeatureCollection converts a document to GeoJSON features
func BuildFeatureCollection(doc Document) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	fc.ExtraMembers = geojson.Properties{
		"center": []float64{doc.View.Center.Lng, doc.View.Center.Lat},
		"zoom":   doc.View.Zoom,
	}
	if doc.Source != "" {
		fc.ExtraMembers["source"] = doc.Source
	}

	line := make(orb.LineString, 0, len(doc.Track))
	for i, p := range doc.Track {
		if !p.Valid() {
			continue
		}
		pt := track.ToOrbPoint(p)
		line = append(line, pt)

		marker := geojson.NewFeature(pt)
		marker.Properties["kind"] = markerKind
		marker.Properties["index"] = i
		marker.Properties["title"] = p.Time
		fc.Append(marker)
	}

	if len(line) > 1 {
		path := geojson.NewFeature(line)
		path.Properties["kind"] = pathKind
		path.Properties["stroke"] = pathColor
		path.Properties["stroke-opacity"] = pathOpacity
		path.Properties["stroke-width"] = pathWeight
		fc.Append(path)
	}

	if p, ok := doc.Track.At(doc.CurrentStep); ok && p.Valid() {
		fc.Append(droneFeature(p, doc.CurrentStep))
	}

	return fc
}

func droneFeature(p model.TimePoint, step int) *geojson.Feature {
	drone := geojson.NewFeature(track.ToOrbPoint(p))
	drone.Properties["kind"] = droneKind
	drone.Properties["index"] = step
	drone.Properties["title"] = p.Time
	return drone
}
