package interaction

// Command is a player action bound to a key
type Command int

const (
	CmdNone Command = iota
	CmdQuit
	CmdTogglePlay
	CmdStop
	CmdReset
	CmdStepForward
	CmdStepBackward
	CmdReload
	CmdToggleHelp
	CmdCloseHelp
)

// Binding documents one key for the help screen
type Binding struct {
	Keys        string
	Description string
}

// Bindings lists the player keys in help-screen order
var Bindings = []Binding{
	{Keys: "space / p", Description: "Play / stop"},
	{Keys: "s", Description: "Stop"},
	{Keys: "r", Description: "Reset to first point"},
	{Keys: "l / →", Description: "Move forward"},
	{Keys: "h / ←", Description: "Move backward"},
	{Keys: "o", Description: "Reload track file"},
	{Keys: "?", Description: "Toggle help"},
	{Keys: "q / ESC", Description: "Quit"},
}

// Resolve maps a key event to a command. helpVisible changes ESC from quit to close-help.
func Resolve(event KeyEvent, helpVisible bool) Command {
	switch event.Type {
	case KeyArrowRight:
		return CmdStepForward
	case KeyArrowLeft:
		return CmdStepBackward
	case KeyEscape:
		if helpVisible {
			return CmdCloseHelp
		}
		return CmdQuit
	case KeyChar:
		switch event.Key {
		case 'q', 'Q', 3: // 'q', 'Q', or Ctrl+C
			return CmdQuit
		case ' ', 'p', 'P':
			return CmdTogglePlay
		case 's', 'S':
			return CmdStop
		case 'r', 'R':
			return CmdReset
		case 'l', 'L':
			return CmdStepForward
		case 'h', 'H':
			return CmdStepBackward
		case 'o', 'O':
			return CmdReload
		case '?':
			return CmdToggleHelp
		}
	}
	return CmdNone
}
