package player

import (
	"time"

	"github.com/penwyp/go-track-replay/internal/core/model"
	"github.com/penwyp/go-track-replay/internal/presentation/display"
	"github.com/penwyp/go-track-replay/internal/presentation/interaction"
	"github.com/penwyp/go-track-replay/internal/presentation/layout"
)

// Playback is the part of the playback controller the player drives
type Playback interface {
	State() model.PlaybackState
	Track() model.Track
	Interval() time.Duration
	Toggle() error
	Stop()
	Reset()
	StepForward() bool
	StepBackward() bool
	SetTrack(t model.Track)
	Subscribe() (<-chan model.StateChange, func())
	Close() error
}

// DisplayController handles terminal display operations
type DisplayController interface {
	// EnterAlternateScreen switches to alternate terminal screen
	EnterAlternateScreen()
	// ExitAlternateScreen returns to normal terminal screen
	ExitAlternateScreen()
	// Resize applies a new terminal size
	Resize(sizer *layout.Sizer)
	// Render draws one frame
	Render(view display.View)
}

// InputHandler processes keyboard and other input events
type InputHandler interface {
	// Events returns a channel of keyboard events
	Events() <-chan interaction.KeyEvent
	// Close cleans up input handler resources
	Close() error
}

// FileMonitor watches for file changes
type FileMonitor interface {
	// Events returns a channel of file change events
	Events() <-chan model.FileEvent
	// Close stops monitoring and cleans up resources
	Close() error
}
