package core

// Action is a semantic input, abstracted from physical key presses.
type Action int

const (
	ActionNone Action = iota
	ActionUp
	ActionDown
	ActionLeft
	ActionRight
	ActionConfirm // Enter
	ActionBack    // B, Escape
	ActionRestart // R
	ActionPause   // P
	ActionQuit    // Q, Ctrl+C
)

// IsDirection reports whether a is one of the four movement actions.
func (a Action) IsDirection() bool {
	return a >= ActionUp && a <= ActionRight
}

func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionPause:
		return "Pause"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
