package track

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/penwyp/go-track-replay/internal/core/model"
	"github.com/penwyp/go-track-replay/internal/util"
)

const fieldsPerLine = 3

// ParseOptions controls how tolerant parsing is
type ParseOptions struct {
	// Strict turns parse warnings into an error instead of NaN coordinates
	Strict bool
}

// Parse converts multi-line "time,lat,lng" text into a track.
// Blank lines are skipped, fields are trimmed, and malformed numbers become NaN.
// It never fails; problems are reported as warnings.
func Parse(text string) (model.Track, []*ParseError) {
	lines := strings.Split(text, "\n")
	track := make(model.Track, 0, len(lines))
	var warnings []*ParseError

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		point, lineWarnings := parseLine(i+1, line)
		track = append(track, point)
		warnings = append(warnings, lineWarnings...)
	}

	return track, warnings
}

// ParseWithOptions parses text and, in strict mode, rejects input that produced warnings
func ParseWithOptions(text string, opts ParseOptions) (model.Track, []*ParseError, error) {
	track, warnings := Parse(text)
	if opts.Strict && len(warnings) > 0 {
		return nil, warnings, &strictError{first: warnings[0], count: len(warnings)}
	}
	return track, warnings, nil
}

// ParseReader reads all of r and parses it
func ParseReader(r io.Reader, opts ParseOptions) (model.Track, []*ParseError, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read track input: %w", err)
	}
	return ParseWithOptions(string(data), opts)
}

// ParseFile parses the track file at path
func ParseFile(path string, opts ParseOptions) (model.Track, []*ParseError, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	track, warnings, err := ParseReader(file, opts)
	if err != nil {
		return nil, warnings, err
	}

	util.LogDebugf("Parsed %s: %d points, %d warnings", path, len(track), len(warnings))
	return track, warnings, nil
}

func parseLine(lineNo int, line string) (model.TimePoint, []*ParseError) {
	fields := strings.Split(line, ",")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	var warnings []*ParseError
	if len(fields) > fieldsPerLine {
		warnings = append(warnings, &ParseError{
			Line:   lineNo,
			Reason: fmt.Sprintf("expected %d fields, got %d; extra fields ignored", fieldsPerLine, len(fields)),
		})
	}

	point := model.TimePoint{Time: fields[0]}
	point.Lat, warnings = parseCoordinate(lineNo, "lat", fields, 1, warnings)
	point.Lng, warnings = parseCoordinate(lineNo, "lng", fields, 2, warnings)

	return point, warnings
}

func parseCoordinate(lineNo int, name string, fields []string, idx int, warnings []*ParseError) (float64, []*ParseError) {
	if idx >= len(fields) {
		return math.NaN(), append(warnings, &ParseError{Line: lineNo, Reason: fmt.Sprintf("missing %s field", name)})
	}

	value, err := strconv.ParseFloat(fields[idx], 64)
	if err != nil {
		return math.NaN(), append(warnings, &ParseError{Line: lineNo, Reason: fmt.Sprintf("invalid %s %q", name, fields[idx])})
	}
	return value, warnings
}
