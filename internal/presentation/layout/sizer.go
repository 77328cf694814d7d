package layout

import (
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/penwyp/go-track-replay/internal/util"
)

const (
	fallbackWidth  = 80
	fallbackHeight = 24
	maxFrameWidth  = 120
)

// Sizer measures and fits text to the terminal
type Sizer struct {
	Width  int
	Height int
}

// NewSizer creates a sizer for a terminal of the given size
func NewSizer(width, height int) *Sizer {
	return &Sizer{Width: width, Height: height}
}

// DetectSizer reads the size of the terminal attached to stdout, with a fallback
func DetectSizer() *Sizer {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 || height <= 0 {
		width, height = fallbackWidth, fallbackHeight
	}
	util.LogDebugf("Terminal size %dx%d", width, height)
	return NewSizer(width, height)
}

// DisplayWidth calculates the display width of a string containing wide or emoji characters
func (s *Sizer) DisplayWidth(text string) int {
	return runewidth.StringWidth(text)
}

// PadString pads a string to a specific display width
func (s *Sizer) PadString(text string, width int, leftAlign bool) string {
	actualWidth := s.DisplayWidth(text)
	if actualWidth >= width {
		return text
	}

	padding := strings.Repeat(" ", width-actualWidth)
	if leftAlign {
		return text + padding
	}
	return padding + text
}

// Fit truncates text to width display columns, marking the cut with an ellipsis
func (s *Sizer) Fit(text string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(text, width, "…")
}

// FrameWidth is the usable width for a frame, leaving a small margin
func (s *Sizer) FrameWidth() int {
	w := s.Width - 2
	if w > maxFrameWidth {
		w = maxFrameWidth
	}
	if w < 20 {
		w = 20
	}
	return w
}

// ContentRows returns the rows left after fixed header and footer lines, at least 1
func (s *Sizer) ContentRows(headerLines, footerLines int) int {
	rows := s.Height - headerLines - footerLines
	if rows < 1 {
		return 1
	}
	return rows
}
