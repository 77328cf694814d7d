package playback

import (
	"sync"
	"time"

	"github.com/penwyp/go-track-replay/internal/core/model"
	"github.com/penwyp/go-track-replay/internal/util"
)

const (
	// DefaultInterval is the fixed time between playback steps
	DefaultInterval = time.Second

	subscriberBuffer = 16
)

// Controller steps a marker through a track on a fixed interval.
// All methods are safe for concurrent use; the timer goroutine and callers
// are serialized by a single mutex.
type Controller struct {
	mu sync.Mutex

	track model.Track
	state model.PlaybackState

	interval  time.Duration
	newTicker TickerFactory
	timer     *timerHandle
	closed    bool

	subscribers map[int]chan model.StateChange
	nextSubID   int

	now func() time.Time
}

// Option configures a Controller
type Option func(*Controller)

// WithInterval sets the time between steps
func WithInterval(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.interval = d
		}
	}
}

// WithTickerFactory replaces the ticker source, mainly for tests
func WithTickerFactory(f TickerFactory) Option {
	return func(c *Controller) {
		if f != nil {
			c.newTicker = f
		}
	}
}

// WithTrack sets the initial track instead of the default single point
func WithTrack(t model.Track) Option {
	return func(c *Controller) {
		c.track = t.Clone()
	}
}

// New creates a stopped controller at step 0
func New(opts ...Option) *Controller {
	c := &Controller{
		track:       model.DefaultTrack(),
		interval:    DefaultInterval,
		newTicker:   NewRealTicker,
		subscribers: make(map[int]chan model.StateChange),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Interval returns the time between steps
func (c *Controller) Interval() time.Duration {
	return c.interval
}

// State returns the current playback state
func (c *Controller) State() model.PlaybackState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Track returns a copy of the current track
func (c *Controller) Track() model.Track {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.track.Clone()
}

// Current returns the point under the marker, false when the track is empty
func (c *Controller) Current() (model.TimePoint, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.track.At(c.state.CurrentStep)
}

// Snapshot returns the full current state as a change event
func (c *Controller) Snapshot() model.StateChange {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.changeLocked("")
}

// Start begins playback. It rejects an empty track, a running playback,
// a marker already on the last step, and a closed controller.
func (c *Controller) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch {
	case c.closed:
		return ErrClosed
	case c.state.IsPlaying:
		return ErrAlreadyPlaying
	case len(c.track) == 0:
		return ErrEmptyTrack
	case c.state.CurrentStep >= c.track.LastIndex():
		return ErrAtEnd
	}

	c.state.IsPlaying = true
	h := newTimerHandle(c.newTicker(c.interval))
	c.timer = h
	go c.run(h)

	util.LogDebugf("Playback started at step %d/%d, interval %v", c.state.CurrentStep, len(c.track)-1, c.interval)
	c.publishLocked(model.CauseStart)
	return nil
}

// Stop halts playback and waits until the timer goroutine has exited.
// Once Stop returns no tick can change the state. Stopping a stopped controller is a no-op.
func (c *Controller) Stop() {
	c.mu.Lock()
	if !c.state.IsPlaying {
		c.mu.Unlock()
		return
	}
	h := c.haltLocked()
	c.publishLocked(model.CauseStop)
	c.mu.Unlock()

	if h != nil {
		h.wait()
	}
}

// Toggle starts a stopped controller or stops a playing one
func (c *Controller) Toggle() error {
	if c.State().IsPlaying {
		c.Stop()
		return nil
	}
	return c.Start()
}

// Reset moves the marker back to the first point without changing the play state
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.CurrentStep = 0
	c.publishLocked(model.CauseReset)
}

// StepForward moves one point ahead, stopping at the last point. Reports whether the step moved.
func (c *Controller) StepForward() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.CurrentStep >= c.track.LastIndex() {
		return false
	}
	c.state.CurrentStep++
	c.publishLocked(model.CauseStepForward)
	return true
}

// StepBackward moves one point back, stopping at the first point. Reports whether the step moved.
func (c *Controller) StepBackward() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.CurrentStep <= 0 {
		return false
	}
	c.state.CurrentStep--
	c.publishLocked(model.CauseStepBackward)
	return true
}

// SetTrack replaces the track and clamps the current step into its bounds.
// A running playback keeps going if there is still somewhere to advance to.
func (c *Controller) SetTrack(t model.Track) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.track = t.Clone()
	if last := c.track.LastIndex(); c.state.CurrentStep > last {
		util.LogDebugf("Clamping step %d to %d after track replacement", c.state.CurrentStep, last)
		c.state.CurrentStep = last
	}

	if c.state.IsPlaying && c.state.CurrentStep >= c.track.LastIndex() {
		c.haltLocked()
	}
	c.publishLocked(model.CauseTrackLoaded)
}

// Tick advances playback by one step exactly as a timer tick does.
// It returns whether playback is still running afterwards.
func (c *Controller) Tick() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.state.IsPlaying {
		return false
	}
	c.advanceLocked()
	return c.state.IsPlaying
}

// Close stops playback, releases the timer and closes all subscriptions.
// Later Start calls fail with ErrClosed. Close is idempotent.
func (c *Controller) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	h := c.haltLocked()
	c.closed = true
	c.publishLocked(model.CauseClosed)
	for id, ch := range c.subscribers {
		close(ch)
		delete(c.subscribers, id)
	}
	c.mu.Unlock()

	if h != nil {
		h.wait()
	}
	return nil
}

// Subscribe returns a channel of state changes and a function that ends the subscription.
// Events are dropped for a subscriber whose buffer is full.
func (c *Controller) Subscribe() (<-chan model.StateChange, func()) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ch := make(chan model.StateChange, subscriberBuffer)
	if c.closed {
		close(ch)
		return ch, func() {}
	}

	id := c.nextSubID
	c.nextSubID++
	c.subscribers[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			if sub, ok := c.subscribers[id]; ok {
				close(sub)
				delete(c.subscribers, id)
			}
		})
	}
}

func (c *Controller) run(h *timerHandle) {
	defer close(h.done)
	defer h.ticker.Stop()

	for {
		select {
		case <-h.stop:
			return
		case <-h.ticker.C():
			if !c.tickFrom(h) {
				return
			}
		}
	}
}

// tickFrom applies a tick delivered by timer h, ignoring it if h is no longer current
func (c *Controller) tickFrom(h *timerHandle) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if h.released() || c.timer != h {
		return false
	}
	c.advanceLocked()
	return c.state.IsPlaying
}

// advanceLocked moves one step; reaching the last point ends playback
func (c *Controller) advanceLocked() {
	last := c.track.LastIndex()
	if c.state.CurrentStep < last {
		c.state.CurrentStep++
	}
	if c.state.CurrentStep >= last {
		c.haltLocked()
		util.LogDebugf("Playback finished at step %d", c.state.CurrentStep)
		c.publishLocked(model.CauseFinished)
		return
	}
	c.publishLocked(model.CauseTick)
}

// haltLocked marks playback stopped and releases the timer without waiting for it
func (c *Controller) haltLocked() *timerHandle {
	c.state.IsPlaying = false
	h := c.timer
	c.timer = nil
	if h != nil && !h.released() {
		h.release()
	}
	return h
}

func (c *Controller) changeLocked(cause model.ChangeCause) model.StateChange {
	point, ok := c.track.At(c.state.CurrentStep)
	return model.StateChange{
		State:      c.state,
		Point:      point,
		HasPoint:   ok,
		TrackLen:   len(c.track),
		Cause:      cause,
		OccurredAt: c.now().UnixMilli(),
	}
}

func (c *Controller) publishLocked(cause model.ChangeCause) {
	if len(c.subscribers) == 0 {
		return
	}
	change := c.changeLocked(cause)
	for _, ch := range c.subscribers {
		select {
		case ch <- change:
		default:
		}
	}
}
