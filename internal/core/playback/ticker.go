package playback

import "time"

// Ticker is a cancellable repeating timer
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFactory creates a ticker firing every d
type TickerFactory func(d time.Duration) Ticker

type realTicker struct {
	t *time.Ticker
}

// NewRealTicker wraps time.Ticker
func NewRealTicker(d time.Duration) Ticker {
	return &realTicker{t: time.NewTicker(d)}
}

func (r *realTicker) C() <-chan time.Time { return r.t.C }

func (r *realTicker) Stop() { r.t.Stop() }

// timerHandle owns one ticker and the goroutine draining it.
// Release cancels the goroutine; Wait blocks until it has exited.
type timerHandle struct {
	ticker Ticker
	stop   chan struct{}
	done   chan struct{}
}

func newTimerHandle(t Ticker) *timerHandle {
	return &timerHandle{
		ticker: t,
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// released reports whether release has been called. Must be read under the controller lock.
func (h *timerHandle) released() bool {
	select {
	case <-h.stop:
		return true
	default:
		return false
	}
}

// release signals the goroutine to exit. Must be called under the controller lock, once.
func (h *timerHandle) release() {
	close(h.stop)
}

func (h *timerHandle) wait() {
	<-h.done
}
