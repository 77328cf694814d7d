package player

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/penwyp/go-track-replay/internal/core/model"
	"github.com/penwyp/go-track-replay/internal/core/playback"
	"github.com/penwyp/go-track-replay/internal/presentation/display"
	"github.com/penwyp/go-track-replay/internal/presentation/interaction"
	"github.com/penwyp/go-track-replay/internal/presentation/layout"
	"github.com/penwyp/go-track-replay/internal/util"
)

const threePoints = "10:00,48.8584,2.2945\n10:01,48.8585,2.2946\n10:02,48.8586,2.2947\n"

type testPlayer struct {
	orch *Orchestrator
	ctrl *playback.Controller
	out  *bytes.Buffer
	path string
	now  time.Time
}

func newTestPlayer(t *testing.T, content string) *testPlayer {
	t.Helper()

	var path string
	if content != "" {
		path = filepath.Join(t.TempDir(), "track.csv")
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}

	config := &PlayerConfig{SourcePath: path}
	require.NoError(t, config.Validate())

	// long interval: tests drive the controller through commands only
	ctrl := playback.New(playback.WithInterval(time.Hour))
	out := &bytes.Buffer{}
	sizer := layout.NewSizer(80, 24)

	tp := &testPlayer{
		orch: newOrchestrator(config, ctrl, display.NewTerminalDisplay(out, sizer), sizer),
		ctrl: ctrl,
		out:  out,
		path: path,
		now:  time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
	}
	tp.orch.now = func() time.Time { return tp.now }
	t.Cleanup(func() { tp.orch.Close() })
	return tp
}

func TestPlayerConfigValidate(t *testing.T) {
	c := &PlayerConfig{}
	require.NoError(t, c.Validate())
	assert.Equal(t, time.Second, c.Interval)
	assert.Equal(t, 0.25, c.UIRefreshRate)
	assert.Equal(t, 250*time.Millisecond, c.refreshPeriod())
	assert.Equal(t, 3*time.Second, c.StatusTTL)

	assert.Error(t, (&PlayerConfig{Interval: -time.Second}).Validate())
	assert.Error(t, (&PlayerConfig{UIRefreshRate: -1}).Validate())
}

func TestLoadReplacesDefaultTrack(t *testing.T) {
	tp := newTestPlayer(t, threePoints+"10:03,bad,2.2948\n")

	require.NoError(t, tp.orch.Load())

	assert.Equal(t, 4, tp.ctrl.Track().Len())
	assert.Equal(t, 1, tp.orch.stateManager.GetInteractionState().WarningCount)
	assert.Equal(t, tp.path, tp.orch.stateManager.GetInteractionState().SourcePath)
}

func TestLoadWithoutSourceKeepsDefaultTrack(t *testing.T) {
	tp := newTestPlayer(t, "")

	require.NoError(t, tp.orch.Load())
	assert.Equal(t, model.DefaultTrack(), tp.ctrl.Track())
}

func TestLoadMissingFile(t *testing.T) {
	tp := newTestPlayer(t, threePoints)
	require.NoError(t, os.Remove(tp.path))

	assert.Error(t, tp.orch.Load())
}

func TestStrictLoadRejectsWarnings(t *testing.T) {
	tp := newTestPlayer(t, "10:00,nope,2\n")
	tp.orch.loader = NewTrackLoader(tp.path, true)

	assert.Error(t, tp.orch.Load())
	assert.Equal(t, model.DefaultTrack(), tp.ctrl.Track())
}

func TestStepCommands(t *testing.T) {
	tp := newTestPlayer(t, threePoints)
	require.NoError(t, tp.orch.Load())

	assert.False(t, tp.orch.handleCommand(interaction.CmdStepForward))
	tp.orch.handleCommand(interaction.CmdStepForward)
	tp.orch.handleCommand(interaction.CmdStepForward)
	assert.Equal(t, 2, tp.ctrl.State().CurrentStep)

	tp.orch.handleCommand(interaction.CmdStepBackward)
	assert.Equal(t, 1, tp.ctrl.State().CurrentStep)

	tp.orch.handleCommand(interaction.CmdReset)
	assert.Equal(t, 0, tp.ctrl.State().CurrentStep)
}

func TestTogglePlayAndStop(t *testing.T) {
	tp := newTestPlayer(t, threePoints)
	require.NoError(t, tp.orch.Load())

	tp.orch.handleCommand(interaction.CmdTogglePlay)
	assert.True(t, tp.ctrl.State().IsPlaying)

	tp.orch.handleCommand(interaction.CmdTogglePlay)
	assert.False(t, tp.ctrl.State().IsPlaying)

	tp.orch.handleCommand(interaction.CmdTogglePlay)
	tp.orch.handleCommand(interaction.CmdStop)
	assert.False(t, tp.ctrl.State().IsPlaying)
}

func TestToggleAtEndShowsStatus(t *testing.T) {
	tp := newTestPlayer(t, "")

	tp.orch.handleCommand(interaction.CmdTogglePlay)

	assert.False(t, tp.ctrl.State().IsPlaying)
	assert.Equal(t, "At the last point, press r to reset", tp.orch.stateManager.GetInteractionState().StatusMessage)
}

func TestStatusExpires(t *testing.T) {
	tp := newTestPlayer(t, "")
	tp.orch.setStatus("hello")

	tp.now = tp.now.Add(time.Second)
	assert.False(t, tp.orch.stateManager.ExpireStatus(tp.now))

	tp.now = tp.now.Add(3 * time.Second)
	assert.True(t, tp.orch.stateManager.ExpireStatus(tp.now))
	assert.Empty(t, tp.orch.stateManager.GetInteractionState().StatusMessage)
}

func TestHelpCommands(t *testing.T) {
	tp := newTestPlayer(t, "")

	tp.orch.handleCommand(interaction.CmdToggleHelp)
	assert.True(t, tp.orch.stateManager.GetInteractionState().ShowHelp)

	// ESC closes help instead of quitting while help is shown
	assert.False(t, tp.orch.handleKeyboard(interaction.KeyEvent{Type: interaction.KeyEscape}))
	assert.False(t, tp.orch.stateManager.GetInteractionState().ShowHelp)

	assert.True(t, tp.orch.handleKeyboard(interaction.KeyEvent{Type: interaction.KeyEscape}))
}

func TestQuitKeys(t *testing.T) {
	tp := newTestPlayer(t, "")

	assert.True(t, tp.orch.handleKeyboard(interaction.KeyEvent{Key: 'q', Type: interaction.KeyChar}))
	assert.True(t, tp.orch.handleKeyboard(interaction.KeyEvent{Key: 3, Type: interaction.KeyChar}))
}

func TestReloadPicksUpNewContentAndClamps(t *testing.T) {
	tp := newTestPlayer(t, threePoints)
	require.NoError(t, tp.orch.Load())
	tp.ctrl.StepForward()
	tp.ctrl.StepForward()

	require.NoError(t, os.WriteFile(tp.path, []byte("09:00,1,2\n"), 0644))
	tp.orch.handleFileChange(model.FileEvent{Path: tp.path, Operation: "WRITE"})

	assert.Equal(t, 1, tp.ctrl.Track().Len())
	assert.Equal(t, 0, tp.ctrl.State().CurrentStep)
	assert.Equal(t, "Loaded 1 points (0 warnings)", tp.orch.stateManager.GetInteractionState().StatusMessage)
}

func TestReloadFailureKeepsTrack(t *testing.T) {
	tp := newTestPlayer(t, threePoints)
	require.NoError(t, tp.orch.Load())
	require.NoError(t, os.Remove(tp.path))

	tp.orch.handleCommand(interaction.CmdReload)

	assert.Equal(t, 3, tp.ctrl.Track().Len())
	assert.Contains(t, tp.orch.stateManager.GetInteractionState().StatusMessage, "Reload failed")
}

func TestReloadWithoutSource(t *testing.T) {
	tp := newTestPlayer(t, "")
	tp.orch.handleCommand(interaction.CmdReload)
	assert.Equal(t, "No source file to reload", tp.orch.stateManager.GetInteractionState().StatusMessage)
}

func TestUpdateDisplayRendersState(t *testing.T) {
	tp := newTestPlayer(t, threePoints)
	require.NoError(t, tp.orch.Load())
	tp.ctrl.StepForward()

	tp.orch.updateDisplay()

	out := util.StripANSI(tp.out.String())
	assert.Contains(t, out, "step 2 / 3")
	assert.Contains(t, out, "10:01")
}

func TestCloseStopsController(t *testing.T) {
	tp := newTestPlayer(t, threePoints)
	require.NoError(t, tp.orch.Load())
	require.NoError(t, tp.ctrl.Start())

	require.NoError(t, tp.orch.Close())

	assert.False(t, tp.ctrl.State().IsPlaying)
	assert.ErrorIs(t, tp.ctrl.Start(), playback.ErrClosed)
}
