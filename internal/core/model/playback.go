package model

// PlaybackState is the position of the moving marker within a track
type PlaybackState struct {
	CurrentStep int  `json:"currentStep"`
	IsPlaying   bool `json:"isPlaying"`
}

// Status returns a human readable name for the state
func (s PlaybackState) Status() string {
	if s.IsPlaying {
		return "Playing"
	}
	return "Stopped"
}

// ChangeCause identifies what produced a state change
type ChangeCause string

const (
	CauseStart        ChangeCause = "start"
	CauseStop         ChangeCause = "stop"
	CauseTick         ChangeCause = "tick"
	CauseFinished     ChangeCause = "finished"
	CauseReset        ChangeCause = "reset"
	CauseStepForward  ChangeCause = "step_forward"
	CauseStepBackward ChangeCause = "step_backward"
	CauseTrackLoaded  ChangeCause = "track_loaded"
	CauseClosed       ChangeCause = "closed"
)

// StateChange is emitted by the playback controller after every mutation
type StateChange struct {
	State      PlaybackState `json:"state"`
	Point      TimePoint     `json:"point"`
	HasPoint   bool          `json:"hasPoint"`
	TrackLen   int           `json:"trackLen"`
	Cause      ChangeCause   `json:"cause"`
	OccurredAt int64         `json:"occurredAt"` // Unix milliseconds
}
