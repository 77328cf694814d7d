package formatter

import (
	"encoding/csv"
	"io"
	"math"
	"strconv"

	"github.com/penwyp/go-track-replay/internal/core/model"
)

// CSVFormatter writes the track back in the loader's input format, so its output can be reloaded
type CSVFormatter struct {
	out io.Writer
}

func NewCSVFormatter(out io.Writer) *CSVFormatter {
	return &CSVFormatter{out: out}
}

func (f *CSVFormatter) Format(doc Document) error {
	w := csv.NewWriter(f.out)

	for _, p := range doc.Track {
		if err := w.Write(csvRecord(p)); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func csvRecord(p model.TimePoint) []string {
	return []string{p.Time, csvFloat(p.Lat), csvFloat(p.Lng)}
}

// csvFloat leaves unparsable coordinates empty; the parser reads an empty field back as NaN
func csvFloat(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
