package model

// FileEvent represents a file system event
type FileEvent struct {
	Path      string
	Operation string
}

// InteractionState represents the current UI interaction state of the player
type InteractionState struct {
	ShowHelp      bool
	StatusMessage string // Status message to display
	SourcePath    string // File the track was loaded from
	WarningCount  int    // Parse warnings for the loaded track
}
