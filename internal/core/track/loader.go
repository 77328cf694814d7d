package track

import (
	"path/filepath"
	"strings"

	"github.com/penwyp/go-track-replay/internal/core/model"
)

// LoadResult is a loaded track together with any parse warnings
type LoadResult struct {
	Path     string
	Track    model.Track
	Warnings []*ParseError
}

// LoadFile loads a track from path, choosing the format by extension.
// ".gpx" files go through the GPX reader; everything else is "time,lat,lng" text.
func LoadFile(path string, opts ParseOptions) (*LoadResult, error) {
	if strings.EqualFold(filepath.Ext(path), ".gpx") {
		t, err := LoadGPX(path)
		if err != nil {
			return nil, err
		}
		return &LoadResult{Path: path, Track: t}, nil
	}

	t, warnings, err := ParseFile(path, opts)
	if err != nil {
		return nil, err
	}
	return &LoadResult{Path: path, Track: t, Warnings: warnings}, nil
}
