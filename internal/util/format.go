package util

import (
	"fmt"
	"math"
	"time"
)

// FormatCoordinate prints a coordinate with 5 decimals (about a meter), or a dash when not a number
func FormatCoordinate(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "—"
	}
	return fmt.Sprintf("%.5f", v)
}

// FormatInterval renders a tick interval compactly: "1s", "250ms", "1.5s"
func FormatInterval(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}

// FormatMeters renders a length in meters or kilometers
func FormatMeters(m float64) string {
	if m < 1000 {
		return fmt.Sprintf("%.0f m", m)
	}
	return fmt.Sprintf("%.2f km", m/1000)
}

// Percentage returns step as a percentage of last, 100 for a track with nothing to traverse
func Percentage(step, last int) float64 {
	if last <= 0 {
		return 100
	}
	return float64(step) / float64(last) * 100
}
