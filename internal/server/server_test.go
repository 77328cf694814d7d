package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/penwyp/go-track-replay/internal/core/model"
	"github.com/penwyp/go-track-replay/internal/core/playback"
	"github.com/penwyp/go-track-replay/internal/core/route"
)

type received struct {
	Type     string             `json:"type"`
	ClientID string             `json:"clientId"`
	Message  string             `json:"message"`
	Reason   string             `json:"reason"`
	Points   int                `json:"points"`
	Warnings []string           `json:"warnings"`
	Track    []model.LatLng     `json:"track"`
	State    *model.StateChange `json:"state"`
	View     *model.MapView     `json:"view"`
	Route    *model.RouteResult `json:"route"`
}

type harness struct {
	t    *testing.T
	ctrl *playback.Controller
	srv  *Server
	http *httptest.Server
}

func newHarness(t *testing.T, opts Options) *harness {
	t.Helper()

	ctrl := playback.New(
		playback.WithInterval(time.Hour),
		playback.WithTrack(model.Track{
			{Time: "a", Lat: 1, Lng: 1},
			{Time: "b", Lat: 2, Lng: 2},
			{Time: "c", Lat: 3, Lng: 3},
		}),
	)
	srv := New(ctrl, opts)
	ts := httptest.NewServer(srv.Handler())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		srv.Run(ctx)
		close(done)
	}()

	t.Cleanup(func() {
		cancel()
		<-done
		ts.Close()
		ctrl.Close()
	})
	return &harness{t: t, ctrl: ctrl, srv: srv, http: ts}
}

func (h *harness) dial() *websocket.Conn {
	h.t.Helper()
	url := "ws" + strings.TrimPrefix(h.http.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(h.t, err)
	h.t.Cleanup(func() { conn.Close() })
	return conn
}

func send(t *testing.T, conn *websocket.Conn, msg string) {
	t.Helper()
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(msg)))
}

// next reads messages until one of the given type arrives
func next(t *testing.T, conn *websocket.Conn, msgType string) received {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	for {
		_, data, err := conn.ReadMessage()
		require.NoError(t, err)

		var msg received
		require.NoError(t, sonic.Unmarshal(data, &msg))
		if msg.Type == msgType {
			return msg
		}
	}
}

func TestHelloCarriesTrackAndView(t *testing.T) {
	h := newHarness(t, Options{View: model.DefaultMapView(), Source: "flight.csv"})
	conn := h.dial()

	hello := next(t, conn, "hello")

	assert.NotEmpty(t, hello.ClientID)
	require.Len(t, hello.Track, 3)
	assert.Equal(t, 2.0, hello.Track[1].Lat)
	require.NotNil(t, hello.View)
	assert.Equal(t, 15, hello.View.Zoom)
	require.NotNil(t, hello.State)
	assert.Equal(t, 0, hello.State.State.CurrentStep)
	assert.Eventually(t, func() bool { return h.srv.ClientCount() == 1 }, time.Second, 10*time.Millisecond)
}

func TestControlMessagesDriveController(t *testing.T) {
	h := newHarness(t, Options{})
	conn := h.dial()
	next(t, conn, "hello")

	send(t, conn, `{"type":"forward"}`)
	msg := next(t, conn, "state")
	assert.Equal(t, model.CauseStepForward, msg.State.Cause)
	assert.Equal(t, 1, msg.State.State.CurrentStep)
	assert.Equal(t, "b", msg.State.Point.Time)

	send(t, conn, `{"type":"play"}`)
	msg = next(t, conn, "state")
	assert.Equal(t, model.CauseStart, msg.State.Cause)
	assert.True(t, msg.State.State.IsPlaying)

	send(t, conn, `{"type":"stop"}`)
	msg = next(t, conn, "state")
	assert.Equal(t, model.CauseStop, msg.State.Cause)

	send(t, conn, `{"type":"reset"}`)
	msg = next(t, conn, "state")
	assert.Equal(t, model.CauseReset, msg.State.Cause)
	assert.Equal(t, 0, h.ctrl.State().CurrentStep)
}

func TestBroadcastReachesEveryClient(t *testing.T) {
	h := newHarness(t, Options{})
	first := h.dial()
	second := h.dial()
	next(t, first, "hello")
	next(t, second, "hello")

	send(t, first, `{"type":"forward"}`)

	assert.Equal(t, 1, next(t, first, "state").State.State.CurrentStep)
	assert.Equal(t, 1, next(t, second, "state").State.State.CurrentStep)
}

func TestRejectedStartReturnsReason(t *testing.T) {
	h := newHarness(t, Options{})
	conn := h.dial()
	next(t, conn, "hello")

	h.ctrl.SetTrack(model.Track{})
	send(t, conn, `{"type":"play"}`)

	msg := next(t, conn, "error")
	assert.Equal(t, string(playback.ReasonEmptyTrack), msg.Reason)
}

func TestLoadReplacesTrackForAllClients(t *testing.T) {
	h := newHarness(t, Options{})
	loader := h.dial()
	watcher := h.dial()
	next(t, loader, "hello")
	next(t, watcher, "hello")

	send(t, loader, `{"type":"load","text":"x,10,20\ny,oops,21\n"}`)

	loaded := next(t, loader, "loaded")
	assert.Equal(t, 2, loaded.Points)
	require.Len(t, loaded.Warnings, 1)
	assert.Contains(t, loaded.Warnings[0], "line 2")

	update := next(t, watcher, "track")
	require.Len(t, update.Track, 2)
	assert.Equal(t, model.CauseTrackLoaded, update.State.Cause)
	assert.Equal(t, 2, h.ctrl.Track().Len())
}

func TestRouteRequests(t *testing.T) {
	h := newHarness(t, Options{Router: route.NewStraightLineProvider(60)})
	conn := h.dial()
	next(t, conn, "hello")

	// empty endpoints are ignored; the ping reply proves nothing else was sent first
	send(t, conn, `{"type":"route","origin":"","destination":"1,1"}`)
	send(t, conn, `{"type":"ping"}`)
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"pong"`)

	send(t, conn, `{"type":"route","origin":"48.8584,2.2945","destination":"48.8606,2.3376"}`)
	msg := next(t, conn, "route")
	require.NotNil(t, msg.Route)
	assert.InDelta(t, 3170, msg.Route.DistanceMeters, 100)
	assert.NotEmpty(t, msg.Route.DurationText)
}

func TestRouteDisabled(t *testing.T) {
	h := newHarness(t, Options{})
	conn := h.dial()
	next(t, conn, "hello")

	send(t, conn, `{"type":"route","origin":"1,1","destination":"2,2"}`)
	assert.Equal(t, "route requests are disabled", next(t, conn, "error").Message)
}

func TestInvalidMessages(t *testing.T) {
	h := newHarness(t, Options{})
	conn := h.dial()
	next(t, conn, "hello")

	send(t, conn, `not json`)
	assert.Contains(t, next(t, conn, "error").Message, "invalid message")

	send(t, conn, `{"type":"fly"}`)
	assert.Equal(t, "unknown message type: fly", next(t, conn, "error").Message)
}

func TestHealthz(t *testing.T) {
	h := newHarness(t, Options{})

	resp, err := http.Get(h.http.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
