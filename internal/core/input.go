package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone       Action = iota
	ActionLeft              // Left arrow, A - steer left
	ActionRight             // Right arrow, D - steer right
	ActionPause             // P - pause/unpause the frame pump
	ActionRestart           // R - start a new session after game over
	ActionScreenshot        // Ctrl+S - dump the screen to a file
	ActionQuit              // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionScreenshot:
		return "Screenshot"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// ParseAction is the inverse of Action.String.
func ParseAction(s string) Action {
	for a := ActionLeft; a <= ActionQuit; a++ {
		if a.String() == s {
			return a
		}
	}
	return ActionNone
}

// KeyEvent is a discrete key-down or key-up signal for one action.
type KeyEvent struct {
	Action  Action
	Pressed bool // true on key-down, false on key-up
}

// Press returns the key-down event for an action.
func Press(a Action) KeyEvent {
	return KeyEvent{Action: a, Pressed: true}
}

// Release returns the key-up event for an action.
func Release(a Action) KeyEvent {
	return KeyEvent{Action: a, Pressed: false}
}
