package playback

import (
	"errors"
	"fmt"
)

// Reason identifies why the controller rejected a transition
type Reason string

const (
	ReasonEmptyTrack     Reason = "empty track"
	ReasonAlreadyPlaying Reason = "already playing"
	ReasonAtEnd          Reason = "already at last step"
	ReasonClosed         Reason = "controller closed"
)

// Sentinels for errors.Is against a ControllerError
var (
	ErrEmptyTrack     = &ControllerError{Reason: ReasonEmptyTrack}
	ErrAlreadyPlaying = &ControllerError{Reason: ReasonAlreadyPlaying}
	ErrAtEnd          = &ControllerError{Reason: ReasonAtEnd}
	ErrClosed         = &ControllerError{Reason: ReasonClosed}
)

// ControllerError is returned for an invalid transition. It is always recoverable.
type ControllerError struct {
	Reason Reason
}

func (e *ControllerError) Error() string {
	return fmt.Sprintf("playback: %s", e.Reason)
}

// Is matches any ControllerError with the same reason
func (e *ControllerError) Is(target error) bool {
	var other *ControllerError
	if !errors.As(target, &other) {
		return false
	}
	return other.Reason == e.Reason
}
