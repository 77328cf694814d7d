package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/penwyp/go-track-replay/internal/core/model"
)

// Document is what the parse command hands to a formatter
type Document struct {
	Source      string
	Track       model.Track
	View        model.MapView
	CurrentStep int
}

// Formatter writes a document in one output format
type Formatter interface {
	Format(doc Document) error
}

// Names lists the supported output formats
var Names = []string{"table", "json", "csv", "geojson", "summary"}

// New returns the formatter for name, writing to w
func New(name string, w io.Writer) (Formatter, error) {
	switch strings.ToLower(name) {
	case "table", "":
		return NewTableFormatter(w), nil
	case "json":
		return NewJSONFormatter(w), nil
	case "csv":
		return NewCSVFormatter(w), nil
	case "geojson":
		return NewGeoJSONFormatter(w), nil
	case "summary":
		return NewSummaryFormatter(w), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (supported: %s)", name, strings.Join(Names, ", "))
	}
}
