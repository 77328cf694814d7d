package display

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/penwyp/go-track-replay/internal/core/model"
	"github.com/penwyp/go-track-replay/internal/presentation/interaction"
	"github.com/penwyp/go-track-replay/internal/presentation/layout"
	"github.com/penwyp/go-track-replay/internal/util"
)

const (
	headerLines = 8
	footerLines = 2
)

// View is everything a frame shows
type View struct {
	Track       model.Track
	State       model.PlaybackState
	Interval    time.Duration
	Interaction model.InteractionState
}

type TerminalDisplay struct {
	out               io.Writer
	sizer             *layout.Sizer
	inAlternateScreen bool
	previousScreen    []string // Last frame written, for skipping identical redraws
}

func NewTerminalDisplay(out io.Writer, sizer *layout.Sizer) *TerminalDisplay {
	return &TerminalDisplay{
		out:   out,
		sizer: sizer,
	}
}

// EnterAlternateScreen switches to alternate screen buffer
func (td *TerminalDisplay) EnterAlternateScreen() {
	if td.inAlternateScreen {
		return
	}
	fmt.Fprint(td.out, util.EnterAltScreen, util.ClearScreen, util.ClearScrollback, util.HideCursor, util.MoveCursorHome)
	td.inAlternateScreen = true
	td.previousScreen = nil
}

// ExitAlternateScreen returns to normal screen buffer
func (td *TerminalDisplay) ExitAlternateScreen() {
	if !td.inAlternateScreen {
		return
	}
	fmt.Fprint(td.out, util.ClearScreen, util.MoveCursorHome, util.ShowCursor, util.ExitAltScreen)
	td.inAlternateScreen = false
}

// Resize updates the sizer after a terminal size change and forces a full redraw
func (td *TerminalDisplay) Resize(sizer *layout.Sizer) {
	td.sizer = sizer
	td.previousScreen = nil
}

// Render draws the view, skipping the write when the frame has not changed
func (td *TerminalDisplay) Render(view View) {
	lines := BuildFrame(view, td.sizer)
	if sameLines(lines, td.previousScreen) {
		return
	}

	var b strings.Builder
	b.WriteString(util.MoveCursorHome)
	for _, line := range lines {
		b.WriteString(line)
		b.WriteString(util.ClearLineFromCursor)
		b.WriteString("\r\n")
	}
	b.WriteString(util.ClearToEndOfScreen)
	fmt.Fprint(td.out, b.String())

	td.previousScreen = lines
}

// BuildFrame lays out the player screen as lines, without writing anything
func BuildFrame(view View, sizer *layout.Sizer) []string {
	if view.Interaction.ShowHelp {
		return buildHelp(sizer)
	}

	width := sizer.FrameWidth()
	track := view.Track
	state := view.State

	lines := make([]string, 0, sizer.Height)
	lines = append(lines, util.FormatHeaderTitle("TRACK REPLAY"))
	source := view.Interaction.SourcePath
	if source == "" {
		source = "(default track)"
	}
	lines = append(lines, sizer.Fit("Source: "+source, width))
	lines = append(lines, util.FormatSectionSeparator(width))

	status := util.Colorize(util.ColorYellow, state.Status())
	if state.IsPlaying {
		status = util.Colorize(util.ColorGreen, state.Status())
	}
	lines = append(lines, fmt.Sprintf("%s  step %d / %d", status, displayStep(track, state), track.Len()))

	barWidth := width - 10
	pct := util.Percentage(state.CurrentStep, track.LastIndex())
	lines = append(lines, fmt.Sprintf("%s %5.1f%%", util.CreateProgressBar(pct, barWidth), pct))

	if point, ok := track.At(state.CurrentStep); ok {
		lines = append(lines, fmt.Sprintf("Drone:  %s  %s, %s",
			util.FormatDataTitle(sizer.Fit(point.Time, width/2)), util.FormatCoordinate(point.Lat), util.FormatCoordinate(point.Lng)))
	} else {
		lines = append(lines, "Drone:  no data")
	}

	info := fmt.Sprintf("Interval: %s   Warnings: %d", util.FormatInterval(view.Interval), view.Interaction.WarningCount)
	lines = append(lines, sizer.Fit(info, width))
	lines = append(lines, util.FormatSectionSeparator(width))

	// one spare row keeps the trailing newline from scrolling the screen
	rows := sizer.ContentRows(headerLines, footerLines+1)
	lines = append(lines, pointWindow(track, state.CurrentStep, rows, width, sizer)...)

	lines = append(lines, util.FormatSectionSeparator(width))
	footer := "space play/stop · r reset · ←/→ step · ? help · q quit"
	if msg := view.Interaction.StatusMessage; msg != "" {
		footer = msg
	}
	lines = append(lines, util.Colorize(util.ColorDim, sizer.Fit(footer, width)))
	return lines
}

// pointWindow lists up to rows points around current, marking the current one
func pointWindow(track model.Track, current, rows, width int, sizer *layout.Sizer) []string {
	if track.Len() == 0 {
		return []string{"(empty track)"}
	}

	start := current - rows/2
	if start > track.Len()-rows {
		start = track.Len() - rows
	}
	if start < 0 {
		start = 0
	}
	end := start + rows
	if end > track.Len() {
		end = track.Len()
	}

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		p := track[i]
		marker := " "
		if i == current {
			marker = "▶"
		}
		row := fmt.Sprintf("%s %4d  %s  %s, %s", marker, i+1,
			sizer.PadString(p.Time, 20, true), util.FormatCoordinate(p.Lat), util.FormatCoordinate(p.Lng))
		row = sizer.Fit(row, width)
		if i == current {
			row = util.Colorize(util.ColorBold, row)
		}
		lines = append(lines, row)
	}
	return lines
}

func buildHelp(sizer *layout.Sizer) []string {
	width := sizer.FrameWidth()
	lines := []string{
		util.FormatHeaderTitle("KEYBOARD SHORTCUTS"),
		util.FormatSectionSeparator(width),
	}
	for _, b := range interaction.Bindings {
		lines = append(lines, sizer.Fit(sizer.PadString(b.Keys, 12, true)+b.Description, width))
	}
	lines = append(lines, util.FormatSectionSeparator(width))
	lines = append(lines, util.Colorize(util.ColorDim, "Press ? or ESC to close"))
	return lines
}

// displayStep is the 1-based position shown to the user, 0 for an empty track
func displayStep(track model.Track, state model.PlaybackState) int {
	if track.Len() == 0 {
		return 0
	}
	return state.CurrentStep + 1
}

func sameLines(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
