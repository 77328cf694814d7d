package player

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/penwyp/go-track-replay/internal/core/model"
	"github.com/penwyp/go-track-replay/internal/core/monitoring"
	"github.com/penwyp/go-track-replay/internal/core/playback"
	"github.com/penwyp/go-track-replay/internal/presentation/display"
	"github.com/penwyp/go-track-replay/internal/presentation/interaction"
	"github.com/penwyp/go-track-replay/internal/presentation/layout"
	"github.com/penwyp/go-track-replay/internal/util"
)

// Orchestrator coordinates all components for the play command
type Orchestrator struct {
	config *PlayerConfig

	// Core components
	controller   Playback
	loader       *TrackLoader
	stateManager *StateManager

	// UI components
	display  DisplayController
	sizer    *layout.Sizer
	keyboard InputHandler

	// Monitoring
	watcher FileMonitor

	now func() time.Time
}

// NewOrchestrator creates a new Orchestrator instance
func NewOrchestrator(config *PlayerConfig) (*Orchestrator, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	controller := playback.New(playback.WithInterval(config.Interval))
	sizer := layout.DetectSizer()
	termDisplay := display.NewTerminalDisplay(os.Stdout, sizer)

	return newOrchestrator(config, controller, termDisplay, sizer), nil
}

func newOrchestrator(config *PlayerConfig, controller Playback, disp DisplayController, sizer *layout.Sizer) *Orchestrator {
	var loader *TrackLoader
	if config.SourcePath != "" {
		loader = NewTrackLoader(config.SourcePath, config.Strict)
	}

	return &Orchestrator{
		config:       config,
		controller:   controller,
		loader:       loader,
		stateManager: NewStateManager(config.SourcePath),
		display:      disp,
		sizer:        sizer,
		now:          time.Now,
	}
}

// Load reads the configured source file into the controller. Without a source the
// controller keeps its default track.
func (o *Orchestrator) Load() error {
	if o.loader == nil {
		return nil
	}

	res, err := o.loader.LoadInto(o.controller)
	if err != nil {
		return err
	}

	o.stateManager.UpdateInteractionState(func(s *model.InteractionState) {
		s.WarningCount = len(res.Warnings)
	})
	return nil
}

// Run loads the track and drives the interactive player until quit or ctx is done
func (o *Orchestrator) Run(ctx context.Context) error {
	util.LogInfo("Starting track player...")

	defer o.Close()

	// Phase 1: load before touching the terminal so errors print normally
	if err := o.Load(); err != nil {
		return err
	}

	// Phase 2: keyboard and screen
	keyboard, err := interaction.NewKeyboardReader()
	if err != nil {
		return fmt.Errorf("failed to initialize keyboard: %w", err)
	}
	o.keyboard = keyboard

	o.display.EnterAlternateScreen()
	defer o.display.ExitAlternateScreen()

	// Phase 3: file monitoring
	var fileEvents <-chan model.FileEvent
	if o.config.Watch && o.loader != nil {
		if err := o.startWatcher(); err != nil {
			return fmt.Errorf("failed to start file watcher: %w", err)
		}
		fileEvents = o.watcher.Events()
	}

	changes, unsubscribe := o.controller.Subscribe()
	defer unsubscribe()

	// Phase 4: main event loop
	uiTicker := time.NewTicker(o.config.refreshPeriod())
	defer uiTicker.Stop()

	o.updateDisplay()

	for {
		select {
		case <-ctx.Done():
			util.LogInfo("Shutting down track player...")
			return nil

		case _, ok := <-changes:
			if !ok {
				return nil
			}
			o.updateDisplay()

		case <-uiTicker.C:
			o.checkResize()
			o.stateManager.ExpireStatus(o.now())
			o.updateDisplay()

		case event, ok := <-fileEvents:
			if !ok {
				fileEvents = nil
				continue
			}
			o.handleFileChange(event)
			o.updateDisplay()

		case keyEvent := <-o.keyboard.Events():
			if o.handleKeyboard(keyEvent) {
				return nil // Exit requested
			}
			o.updateDisplay()
		}
	}
}

// updateDisplay renders the current controller and UI state
func (o *Orchestrator) updateDisplay() {
	o.display.Render(o.currentView())
}

func (o *Orchestrator) currentView() display.View {
	return display.View{
		Track:       o.controller.Track(),
		State:       o.controller.State(),
		Interval:    o.controller.Interval(),
		Interaction: o.stateManager.GetInteractionState(),
	}
}

func (o *Orchestrator) checkResize() {
	sizer := layout.DetectSizer()
	if o.sizer == nil || sizer.Width != o.sizer.Width || sizer.Height != o.sizer.Height {
		o.sizer = sizer
		o.display.Resize(sizer)
	}
}

// handleKeyboard handles keyboard events. It returns true when the player should exit.
func (o *Orchestrator) handleKeyboard(event interaction.KeyEvent) bool {
	state := o.stateManager.GetInteractionState()
	return o.handleCommand(interaction.Resolve(event, state.ShowHelp))
}

func (o *Orchestrator) handleCommand(cmd interaction.Command) bool {
	switch cmd {
	case interaction.CmdQuit:
		return true
	case interaction.CmdTogglePlay:
		if err := o.controller.Toggle(); err != nil {
			o.setStatus(startFailureMessage(err))
		}
	case interaction.CmdStop:
		o.controller.Stop()
	case interaction.CmdReset:
		o.controller.Reset()
	case interaction.CmdStepForward:
		o.controller.StepForward()
	case interaction.CmdStepBackward:
		o.controller.StepBackward()
	case interaction.CmdReload:
		o.reload()
	case interaction.CmdToggleHelp:
		o.stateManager.UpdateInteractionState(func(s *model.InteractionState) {
			s.ShowHelp = !s.ShowHelp
		})
	case interaction.CmdCloseHelp:
		o.stateManager.UpdateInteractionState(func(s *model.InteractionState) {
			s.ShowHelp = false
		})
	}
	return false
}

// startFailureMessage explains a rejected start in the footer
func startFailureMessage(err error) string {
	switch {
	case errors.Is(err, playback.ErrAtEnd):
		return "At the last point, press r to reset"
	case errors.Is(err, playback.ErrEmptyTrack):
		return "Nothing to play, the track is empty"
	default:
		return err.Error()
	}
}

func (o *Orchestrator) setStatus(message string) {
	o.stateManager.SetStatus(message, o.now(), o.config.StatusTTL)
}

// reload re-reads the source file; a failed reload keeps the current track
func (o *Orchestrator) reload() {
	if o.loader == nil {
		o.setStatus("No source file to reload")
		return
	}

	res, err := o.loader.LoadInto(o.controller)
	if err != nil {
		util.LogError("Reload failed", util.F("error", err.Error()))
		o.setStatus(fmt.Sprintf("Reload failed: %v", err))
		return
	}

	o.stateManager.UpdateInteractionState(func(s *model.InteractionState) {
		s.WarningCount = len(res.Warnings)
	})
	o.setStatus(fmt.Sprintf("Loaded %d points (%d warnings)", len(res.Track), len(res.Warnings)))
}

// startWatcher initializes the file watcher
func (o *Orchestrator) startWatcher() error {
	watcher, err := monitoring.NewFileWatcher([]string{o.loader.Path()})
	if err != nil {
		return err
	}
	o.watcher = watcher
	return nil
}

// handleFileChange handles file change events
func (o *Orchestrator) handleFileChange(event model.FileEvent) {
	util.LogDebugf("File changed: %s (%s)", event.Path, event.Operation)
	o.reload()
}

// Close cleans up all resources
func (o *Orchestrator) Close() error {
	var errs []error

	if o.keyboard != nil {
		if err := o.keyboard.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to restore keyboard: %w", err))
		}
		o.keyboard = nil
	}

	if o.watcher != nil {
		if err := o.watcher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close file watcher: %w", err))
		}
		o.watcher = nil
	}

	if err := o.controller.Close(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}
