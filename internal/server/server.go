package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/penwyp/go-track-replay/internal/core/model"
	"github.com/penwyp/go-track-replay/internal/core/playback"
	"github.com/penwyp/go-track-replay/internal/core/route"
	"github.com/penwyp/go-track-replay/internal/core/track"
	"github.com/penwyp/go-track-replay/internal/util"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 4 << 20 // pasted tracks can be large
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // map front-ends are served from anywhere
	},
}

// Controller is the playback surface exposed to websocket clients
type Controller interface {
	Start() error
	Stop()
	Toggle() error
	Reset()
	StepForward() bool
	StepBackward() bool
	SetTrack(t model.Track)
	Track() model.Track
	Snapshot() model.StateChange
	Subscribe() (<-chan model.StateChange, func())
}

// Options configures a Server
type Options struct {
	View   model.MapView
	Router route.RouteProvider // nil disables route requests
	Source string
}

// Server streams playback state to websocket clients and accepts control messages from them
type Server struct {
	controller Controller
	opts       Options

	mu      sync.RWMutex
	clients map[string]*client
}

type client struct {
	id      string
	conn    *websocket.Conn
	writeMu sync.Mutex
}

// New creates a server around a playback controller
func New(controller Controller, opts Options) *Server {
	return &Server{
		controller: controller,
		opts:       opts,
		clients:    make(map[string]*client),
	}
}

// Handler returns the HTTP routes: /ws for clients and /healthz for probes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	return mux
}

// Run forwards controller state changes to every client until ctx is done
// or the controller is closed, then disconnects all clients.
func (s *Server) Run(ctx context.Context) {
	changes, unsubscribe := s.controller.Subscribe()
	defer unsubscribe()
	defer s.closeClients()

	for {
		select {
		case <-ctx.Done():
			return
		case change, ok := <-changes:
			if !ok {
				return
			}
			if change.Cause == model.CauseTrackLoaded {
				s.broadcast(s.trackMessage(change))
			} else {
				s.broadcast(stateMessage(change))
			}
		}
	}
}

// ClientCount returns the number of connected clients
func (s *Server) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		util.LogError("WebSocket upgrade error", util.F("error", err.Error()))
		return
	}
	conn.SetReadLimit(maxMessageSize)

	c := &client{id: uuid.New().String(), conn: conn}

	// Hold the write lock until hello is out so no broadcast overtakes it
	c.writeMu.Lock()
	s.addClient(c)
	err = c.writeLocked(s.helloMessage(c.id))
	c.writeMu.Unlock()

	defer s.removeClient(c)
	if err != nil {
		util.LogError("Failed to send hello", util.F("client", c.id), util.F("error", err.Error()))
		return
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				util.LogWarn("WebSocket read error", util.F("client", c.id), util.F("error", err.Error()))
			}
			return
		}

		var msg inMessage
		if err := sonic.Unmarshal(data, &msg); err != nil {
			c.send(errorMessage("invalid message: " + err.Error()))
			continue
		}

		if reply := s.handleMessage(r.Context(), msg); reply != nil {
			c.send(reply)
		}
	}
}

func (s *Server) addClient(c *client) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clients[c.id] = c
	util.LogInfo("Client connected", util.F("client", c.id), util.F("total", len(s.clients)))
}

func (s *Server) removeClient(c *client) {
	s.mu.Lock()
	_, ok := s.clients[c.id]
	delete(s.clients, c.id)
	total := len(s.clients)
	s.mu.Unlock()

	if ok {
		c.conn.Close()
		util.LogInfo("Client disconnected", util.F("client", c.id), util.F("total", total))
	}
}

func (s *Server) closeClients() {
	s.mu.Lock()
	clients := s.clients
	s.clients = make(map[string]*client)
	s.mu.Unlock()

	for _, c := range clients {
		c.writeMu.Lock()
		c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(writeWait))
		c.writeMu.Unlock()
		c.conn.Close()
	}
}

func (s *Server) broadcast(msg outMessage) {
	s.mu.RLock()
	clients := make([]*client, 0, len(s.clients))
	for _, c := range s.clients {
		clients = append(clients, c)
	}
	s.mu.RUnlock()

	for _, c := range clients {
		if err := c.send(msg); err != nil {
			util.LogWarn("Broadcast failed, dropping client", util.F("client", c.id), util.F("error", err.Error()))
			s.removeClient(c)
		}
	}
}

func (c *client) send(msg outMessage) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.writeLocked(msg)
}

func (c *client) writeLocked(msg outMessage) error {
	data, err := sonic.Marshal(msg)
	if err != nil {
		return err
	}
	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// handleMessage applies one control message. State changes reach clients through Run;
// the returned message, if any, goes only to the sender.
func (s *Server) handleMessage(ctx context.Context, msg inMessage) outMessage {
	switch msg.Type {
	case "ping":
		return outMessage{"type": "pong"}
	case "play":
		return controllerError(s.controller.Start())
	case "toggle":
		return controllerError(s.controller.Toggle())
	case "stop":
		s.controller.Stop()
	case "reset":
		s.controller.Reset()
	case "forward":
		s.controller.StepForward()
	case "backward":
		s.controller.StepBackward()
	case "load":
		return s.load(msg.Text)
	case "route":
		return s.route(ctx, msg)
	default:
		return errorMessage("unknown message type: " + msg.Type)
	}
	return nil
}

func (s *Server) load(text string) outMessage {
	t, warnings := track.Parse(text)
	s.controller.SetTrack(t)

	reasons := make([]string, len(warnings))
	for i, w := range warnings {
		reasons[i] = w.Error()
	}
	util.LogInfo("Track loaded from client", util.F("points", len(t)), util.F("warnings", len(warnings)))
	return outMessage{"type": "loaded", "points": len(t), "warnings": reasons}
}

func (s *Server) route(ctx context.Context, msg inMessage) outMessage {
	if s.opts.Router == nil {
		return errorMessage("route requests are disabled")
	}

	result, err := s.opts.Router.Route(ctx, model.RouteRequest{Origin: msg.Origin, Destination: msg.Destination})
	switch {
	case errors.Is(err, route.ErrEmptyEndpoint):
		return nil
	case err != nil:
		util.LogWarn("Route request failed", util.F("error", err.Error()))
		return errorMessage(err.Error())
	}
	return outMessage{"type": "route", "route": result}
}

func (s *Server) helloMessage(id string) outMessage {
	msg := s.trackMessage(s.controller.Snapshot())
	msg["type"] = "hello"
	msg["clientId"] = id
	msg["view"] = s.opts.View
	if s.opts.Source != "" {
		msg["source"] = s.opts.Source
	}
	return msg
}

func (s *Server) trackMessage(change model.StateChange) outMessage {
	t := s.controller.Track()
	if t == nil {
		t = model.Track{}
	}
	return outMessage{"type": "track", "track": t, "state": change}
}

func stateMessage(change model.StateChange) outMessage {
	return outMessage{"type": "state", "state": change}
}

func controllerError(err error) outMessage {
	if err == nil {
		return nil
	}
	msg := errorMessage(err.Error())
	var ce *playback.ControllerError
	if errors.As(err, &ce) {
		msg["reason"] = string(ce.Reason)
	}
	return msg
}

func errorMessage(text string) outMessage {
	return outMessage{"type": "error", "message": text}
}
