package formatter

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/penwyp/go-track-replay/internal/util"
)

type TableFormatter struct {
	out     io.Writer
	headers []string
}

func NewTableFormatter(out io.Writer) *TableFormatter {
	return &TableFormatter{
		out:     out,
		headers: []string{"#", "Time", "Latitude", "Longitude"},
	}
}

func (f *TableFormatter) Format(doc Document) error {
	rows := make([][]string, 0, len(doc.Track))
	for i, p := range doc.Track {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			p.Time,
			util.FormatCoordinate(p.Lat),
			util.FormatCoordinate(p.Lng),
		})
	}

	widths := f.calculateColumnWidths(rows)

	f.printBorder(widths, "top")
	f.printRow(f.headers, widths)
	f.printBorder(widths, "middle")
	for _, row := range rows {
		f.printRow(row, widths)
	}
	f.printBorder(widths, "middle")
	f.printRow([]string{"Total", fmt.Sprintf("%d points", len(doc.Track)), "", ""}, widths)
	f.printBorder(widths, "bottom")

	return nil
}

// calculateColumnWidths sizes each column to its widest cell
func (f *TableFormatter) calculateColumnWidths(rows [][]string) []int {
	widths := make([]int, len(f.headers))
	for i, header := range f.headers {
		widths[i] = runewidth.StringWidth(header)
	}

	for _, row := range rows {
		for i, value := range row {
			if w := runewidth.StringWidth(value); w > widths[i] {
				widths[i] = w
			}
		}
	}

	// The total row shares the first two columns
	if w := runewidth.StringWidth("Total"); w > widths[0] {
		widths[0] = w
	}
	if w := runewidth.StringWidth(fmt.Sprintf("%d points", len(rows))); w > widths[1] {
		widths[1] = w
	}

	return widths
}

// printBorder prints table borders (top, middle, bottom)
func (f *TableFormatter) printBorder(widths []int, borderType string) {
	var left, middle, right string

	switch borderType {
	case "top":
		left, middle, right = "┌", "┬", "┐"
	case "middle":
		left, middle, right = "├", "┼", "┤"
	case "bottom":
		left, middle, right = "└", "┴", "┘"
	}

	var b strings.Builder
	b.WriteString(left)
	for i, width := range widths {
		b.WriteString(strings.Repeat("─", width+2))
		if i < len(widths)-1 {
			b.WriteString(middle)
		}
	}
	b.WriteString(right)
	fmt.Fprintln(f.out, b.String())
}

// printRow left-aligns the time column and right-aligns the numeric ones
func (f *TableFormatter) printRow(values []string, widths []int) {
	var b strings.Builder
	b.WriteString("│")
	for i, value := range values {
		b.WriteString(" ")
		if i == 1 {
			b.WriteString(runewidth.FillRight(value, widths[i]))
		} else {
			b.WriteString(runewidth.FillLeft(value, widths[i]))
		}
		b.WriteString(" │")
	}
	fmt.Fprintln(f.out, b.String())
}
