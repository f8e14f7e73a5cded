package input

import "github.com/valerio/go-nessie/nessie/input/action"

// ButtonFor maps a game input action to its controller button.
func ButtonFor(act action.Action) (Button, bool) {
	if !act.IsGameInput() {
		return 0, false
	}
	// action order mirrors the shift register order
	return Button(act - action.NESButtonA), true
}

// DefaultKeyMap holds the default key name to action bindings used by backends.
var DefaultKeyMap = map[string]action.Action{
	"z":      action.NESButtonA,
	"x":      action.NESButtonB,
	"Space":  action.NESButtonSelect,
	"Enter":  action.NESButtonStart,
	"Up":     action.NESDPadUp,
	"Down":   action.NESDPadDown,
	"Left":   action.NESDPadLeft,
	"Right":  action.NESDPadRight,
	"w":      action.NESDPadUp,
	"s":      action.NESDPadDown,
	"a":      action.NESDPadLeft,
	"d":      action.NESDPadRight,
	"F12":    action.EmulatorSnapshot,
	"q":      action.EmulatorQuit,
	"Escape": action.EmulatorQuit,
}

// GetDefaultMapping returns the default action for a key name.
func GetDefaultMapping(key string) (action.Action, bool) {
	act, ok := DefaultKeyMap[key]
	return act, ok
}
