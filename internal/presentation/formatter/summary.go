package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/penwyp/go-track-replay/internal/core/track"
	"github.com/penwyp/go-track-replay/internal/util"
)

// SummaryFormatter prints aggregate figures about a track.
type SummaryFormatter struct {
	out io.Writer
}

// NewSummaryFormatter creates a new instance of SummaryFormatter.
func NewSummaryFormatter(out io.Writer) *SummaryFormatter {
	return &SummaryFormatter{out: out}
}

// Format outputs the summary report.
func (f *SummaryFormatter) Format(doc Document) error {
	s := track.Summarize(doc.Track)
	w := f.out

	fmt.Fprintln(w, strings.Repeat("=", 60))
	fmt.Fprintln(w, "Track Summary Report")
	fmt.Fprintln(w, strings.Repeat("=", 60))
	fmt.Fprintln(w)

	if doc.Source != "" {
		fmt.Fprintf(w, "Source: %s\n", doc.Source)
	}

	if s.Points == 0 {
		fmt.Fprintln(w, "No points to summarize")
		fmt.Fprintln(w)
		fmt.Fprintln(w, strings.Repeat("=", 60))
		return nil
	}

	if s.FirstLabel == s.LastLabel {
		fmt.Fprintf(w, "Time Range: %s\n", s.FirstLabel)
	} else {
		fmt.Fprintf(w, "Time Range: %s to %s\n", s.FirstLabel, s.LastLabel)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Points:")
	fmt.Fprintf(w, "  Total:   %d\n", s.Points)
	fmt.Fprintf(w, "  Valid:   %d\n", s.ValidPoints)
	fmt.Fprintf(w, "  Invalid: %d\n", s.Points-s.ValidPoints)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Path:")
	fmt.Fprintf(w, "  Length:  %s\n", util.FormatMeters(s.LengthMeters))
	if s.HasBound {
		fmt.Fprintf(w, "  South-west: %s, %s\n", util.FormatCoordinate(s.Bound.Min.Lat()), util.FormatCoordinate(s.Bound.Min.Lon()))
		fmt.Fprintf(w, "  North-east: %s, %s\n", util.FormatCoordinate(s.Bound.Max.Lat()), util.FormatCoordinate(s.Bound.Max.Lon()))
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("=", 60))

	return nil
}
