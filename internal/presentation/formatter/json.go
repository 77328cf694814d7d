package formatter

import (
	"fmt"
	"io"

	"github.com/bytedance/sonic"

	"github.com/penwyp/go-track-replay/internal/core/model"
)

type JSONFormatter struct {
	out io.Writer
}

func NewJSONFormatter(out io.Writer) *JSONFormatter {
	return &JSONFormatter{out: out}
}

type jsonDocument struct {
	Source string            `json:"source,omitempty"`
	View   model.MapView     `json:"view"`
	Points []model.TimePoint `json:"points"`
}

func (f *JSONFormatter) Format(doc Document) error {
	points := doc.Track
	if points == nil {
		points = model.Track{}
	}

	data, err := sonic.ConfigStd.MarshalIndent(jsonDocument{
		Source: doc.Source,
		View:   doc.View,
		Points: points,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode track: %w", err)
	}
	_, err = fmt.Fprintln(f.out, string(data))
	return err
}
