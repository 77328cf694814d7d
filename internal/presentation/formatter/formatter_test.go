package formatter

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/penwyp/go-track-replay/internal/core/model"
	"github.com/penwyp/go-track-replay/internal/core/track"
)

func sampleDocument() Document {
	return Document{
		Source: "flight.csv",
		Track: model.Track{
			{Time: "10:00", Lat: 48.8584, Lng: 2.2945},
			{Time: "10:01", Lat: math.NaN(), Lng: 2.2950},
			{Time: "10:02", Lat: 48.8600, Lng: 2.2960},
		},
		View:        model.DefaultMapView(),
		CurrentStep: 2,
	}
}

func TestNew(t *testing.T) {
	for _, name := range Names {
		t.Run(name, func(t *testing.T) {
			f, err := New(name, &bytes.Buffer{})
			require.NoError(t, err)
			assert.NotNil(t, f)
		})
	}

	f, err := New("", &bytes.Buffer{})
	require.NoError(t, err)
	assert.IsType(t, &TableFormatter{}, f)

	_, err = New("xml", &bytes.Buffer{})
	assert.ErrorContains(t, err, "unknown output format")
}

func TestTableFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTableFormatter(&buf).Format(sampleDocument()))

	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.True(t, strings.HasPrefix(lines[0], "┌"))
	assert.True(t, strings.HasPrefix(lines[len(lines)-1], "└"))
	assert.Contains(t, out, "10:00")
	assert.Contains(t, out, "48.85840")
	assert.Contains(t, out, "—")
	assert.Contains(t, out, "3 points")
}

func TestTableFormatterEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTableFormatter(&buf).Format(Document{}))
	assert.Contains(t, buf.String(), "0 points")
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter(&buf).Format(sampleDocument()))

	var decoded struct {
		Source string `json:"source"`
		View   struct {
			Center model.LatLng `json:"center"`
			Zoom   int          `json:"zoom"`
		} `json:"view"`
		Points []struct {
			Time string   `json:"time"`
			Lat  *float64 `json:"lat"`
			Lng  *float64 `json:"lng"`
		} `json:"points"`
	}
	require.NoError(t, sonic.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, "flight.csv", decoded.Source)
	assert.Equal(t, 15, decoded.View.Zoom)
	assert.InDelta(t, 48.8584, decoded.View.Center.Lat, 1e-9)
	require.Len(t, decoded.Points, 3)
	assert.Nil(t, decoded.Points[1].Lat)
	require.NotNil(t, decoded.Points[1].Lng)
	assert.InDelta(t, 2.2950, *decoded.Points[1].Lng, 1e-9)
}

func TestJSONFormatterEmptyTrackIsArray(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter(&buf).Format(Document{}))

	var decoded map[string]interface{}
	require.NoError(t, sonic.Unmarshal(buf.Bytes(), &decoded))
	points, ok := decoded["points"].([]interface{})
	require.True(t, ok, "points should be an array, got %T", decoded["points"])
	assert.Empty(t, points)
}

func TestCSVFormatterRoundTrips(t *testing.T) {
	var buf bytes.Buffer
	doc := sampleDocument()
	require.NoError(t, NewCSVFormatter(&buf).Format(doc))

	assert.Equal(t, "10:00,48.8584,2.2945\n10:01,,2.295\n10:02,48.86,2.296\n", buf.String())

	parsed, warnings := track.Parse(buf.String())
	require.Len(t, parsed, 3)
	assert.Len(t, warnings, 1)
	assert.True(t, math.IsNaN(parsed[1].Lat))
	assert.Equal(t, doc.Track[2], parsed[2])
}

func TestGeoJSONFeatures(t *testing.T) {
	fc := BuildFeatureCollection(sampleDocument())

	// two markers, the path, the drone
	require.Len(t, fc.Features, 4)

	assert.Equal(t, "marker", fc.Features[0].Properties["kind"])
	assert.Equal(t, "10:00", fc.Features[0].Properties["title"])
	assert.Equal(t, orb.Point{2.2945, 48.8584}, fc.Features[0].Geometry)
	assert.Equal(t, 2, fc.Features[1].Properties["index"])

	path := fc.Features[2]
	assert.Equal(t, "path", path.Properties["kind"])
	assert.Equal(t, "#FF0000", path.Properties["stroke"])
	assert.Len(t, path.Geometry.(orb.LineString), 2)

	drone := fc.Features[3]
	assert.Equal(t, "drone", drone.Properties["kind"])
	assert.Equal(t, "10:02", drone.Properties["title"])

	assert.Equal(t, 15, fc.ExtraMembers["zoom"])
}

func TestGeoJSONSinglePointHasNoPath(t *testing.T) {
	doc := Document{Track: model.Track{{Time: "a", Lat: 1, Lng: 2}}, View: model.DefaultMapView()}
	fc := BuildFeatureCollection(doc)

	require.Len(t, fc.Features, 2)
	assert.Equal(t, "marker", fc.Features[0].Properties["kind"])
	assert.Equal(t, "drone", fc.Features[1].Properties["kind"])
}

func TestGeoJSONFormatterOutputParses(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewGeoJSONFormatter(&buf).Format(sampleDocument()))

	fc, err := geojson.UnmarshalFeatureCollection(buf.Bytes())
	require.NoError(t, err)
	assert.Len(t, fc.Features, 4)
	assert.Equal(t, "flight.csv", fc.ExtraMembers["source"])
}

func TestSummaryFormatter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewSummaryFormatter(&buf).Format(sampleDocument()))

	out := buf.String()
	assert.Contains(t, out, "Track Summary Report")
	assert.Contains(t, out, "Time Range: 10:00 to 10:02")
	assert.Contains(t, out, "Valid:   2")
	assert.Contains(t, out, "Invalid: 1")
	assert.Contains(t, out, "South-west: 48.85840, 2.29450")
}

func TestSummaryFormatterEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewSummaryFormatter(&buf).Format(Document{}))
	assert.Contains(t, buf.String(), "No points to summarize")
}
