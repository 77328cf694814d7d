package player

import (
	"fmt"
	"sync"

	"github.com/penwyp/go-track-replay/internal/core/track"
	"github.com/penwyp/go-track-replay/internal/util"
)

// TrackLoader reads the source file and hands the result to the playback controller
type TrackLoader struct {
	path string
	opts track.ParseOptions

	loadMutex sync.Mutex // Prevent concurrent reloads
}

// NewTrackLoader creates a loader for path
func NewTrackLoader(path string, strict bool) *TrackLoader {
	return &TrackLoader{
		path: path,
		opts: track.ParseOptions{Strict: strict},
	}
}

// Path returns the source file
func (l *TrackLoader) Path() string {
	return l.path
}

// LoadInto reads the file and replaces the controller's track.
// On failure the controller keeps its current track.
func (l *TrackLoader) LoadInto(p Playback) (*track.LoadResult, error) {
	l.loadMutex.Lock()
	defer l.loadMutex.Unlock()

	res, err := track.LoadFile(l.path, l.opts)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", l.path, err)
	}

	for _, w := range res.Warnings {
		util.LogWarn("Parse warning", util.F("file", l.path), util.F("line", w.Line), util.F("reason", w.Reason))
	}

	p.SetTrack(res.Track)
	util.LogInfo("Track loaded", util.F("file", l.path), util.F("points", len(res.Track)), util.F("warnings", len(res.Warnings)))
	return res, nil
}
