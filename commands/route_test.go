package commands

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRouteOffline(t *testing.T) {
	stdout, _, err := execute(t, "route", "48.8584,2.2945", "48.8606,2.3376", "--source", "offline")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Distance: 3.2 km")
	assert.Contains(t, stdout, "Duration: ")
}

func TestRouteEmptyEndpointIsNoop(t *testing.T) {
	stdout, _, err := execute(t, "route", "", "48.8606,2.3376", "--source", "offline")
	require.NoError(t, err)
	assert.Empty(t, stdout)
}

func TestRouteOSRM(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"code":"Ok","routes":[{"distance":4200,"duration":600,"geometry":{"type":"LineString","coordinates":[[2.2945,48.8584],[2.3376,48.8606]]}}]}`))
	}))
	defer ts.Close()

	stdout, _, err := execute(t, "route", "48.8584,2.2945", "48.8606,2.3376", "--osrm-url", ts.URL, "--json")
	require.NoError(t, err)

	assert.Contains(t, stdout, `"distance": "4.2 km"`)
	assert.Contains(t, stdout, `"duration": "10 mins"`)
}

func TestRouteUnknownSource(t *testing.T) {
	_, _, err := execute(t, "route", "1,1", "2,2", "--source", "carrier-pigeon")
	assert.ErrorContains(t, err, "unknown route source")
}
