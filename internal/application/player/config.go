package player

import (
	"fmt"
	"time"
)

// PlayerConfig contains configuration for the play command
type PlayerConfig struct {
	// Track source
	SourcePath string
	Strict     bool // Reject files with parse warnings instead of loading NaN points

	// Playback settings
	Interval time.Duration

	// Refresh settings
	Watch         bool    // Reload the track when the source file changes
	UIRefreshRate float64 // Seconds between redraws when nothing changed

	// How long a status message stays in the footer
	StatusTTL time.Duration
}

// Validate fills defaults and checks the configuration
func (c *PlayerConfig) Validate() error {
	if c.Interval == 0 {
		c.Interval = time.Second
	}
	if c.Interval < 0 {
		return fmt.Errorf("interval must be positive, got %s", c.Interval)
	}
	if c.UIRefreshRate == 0 {
		c.UIRefreshRate = 0.25
	}
	if c.UIRefreshRate < 0 {
		return fmt.Errorf("ui refresh rate must be positive, got %v", c.UIRefreshRate)
	}
	if c.StatusTTL == 0 {
		c.StatusTTL = 3 * time.Second
	}
	return nil
}

// refreshPeriod converts UIRefreshRate to a ticker period
func (c *PlayerConfig) refreshPeriod() time.Duration {
	return time.Duration(c.UIRefreshRate * float64(time.Second))
}
