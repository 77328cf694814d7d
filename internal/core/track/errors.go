package track

import (
	"errors"
	"fmt"
)

// ErrStrictParse is returned by strict parsing when any line produced a warning
var ErrStrictParse = errors.New("track input contains malformed lines")

// ParseError describes a line that parsed with problems. It is a warning:
// the line still yields a TimePoint, possibly with NaN coordinates.
type ParseError struct {
	Line   int // 1-based line number in the input text
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

// strictError joins ErrStrictParse with the first warning so both are reachable via errors.Is/As
type strictError struct {
	first *ParseError
	count int
}

func (e *strictError) Error() string {
	if e.count > 1 {
		return fmt.Sprintf("%s: %s (and %d more)", ErrStrictParse, e.first, e.count-1)
	}
	return fmt.Sprintf("%s: %s", ErrStrictParse, e.first)
}

func (e *strictError) Unwrap() []error {
	return []error{ErrStrictParse, e.first}
}
