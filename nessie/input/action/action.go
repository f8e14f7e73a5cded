package action

// Action represents input actions that can be performed in the emulator
type Action int

const (
	// Controller buttons
	NESButtonA Action = iota
	NESButtonB
	NESButtonSelect
	NESButtonStart
	NESDPadUp
	NESDPadDown
	NESDPadLeft
	NESDPadRight

	// Emulator features
	EmulatorSnapshot
	EmulatorQuit
)

// IsGameInput reports whether the action maps onto a controller button.
func (a Action) IsGameInput() bool {
	return a >= NESButtonA && a <= NESDPadRight
}

func (a Action) String() string {
	switch a {
	case NESButtonA:
		return "A"
	case NESButtonB:
		return "B"
	case NESButtonSelect:
		return "Select"
	case NESButtonStart:
		return "Start"
	case NESDPadUp:
		return "Up"
	case NESDPadDown:
		return "Down"
	case NESDPadLeft:
		return "Left"
	case NESDPadRight:
		return "Right"
	case EmulatorSnapshot:
		return "Snapshot"
	case EmulatorQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
