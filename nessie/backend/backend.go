package backend

import (
	"github.com/valerio/go-nessie/nessie/input/action"
	"github.com/valerio/go-nessie/nessie/input/event"
	"github.com/valerio/go-nessie/nessie/video"
)

// Backend represents a frontend for the emulator (rendering + input).
// Backends are responsible for:
// - Rendering frames to their specific output (terminal, PNG files)
// - Translating platform-specific input events to Actions
// - Handling backend-specific features (snapshots, log panes)
type Backend interface {
	// Init configures the backend. It must be called before Update.
	Init(config BackendConfig) error

	// Update renders the provided frame and returns the input events
	// collected since the previous call.
	Update(frame *video.FrameBuffer) ([]InputEvent, error)

	// Cleanup resources when shutting down
	Cleanup() error
}

// BackendConfig holds configuration for backends
type BackendConfig struct {
	Title string
	// Status is polled by backends that can display emulator state.
	Status func() string
}

// InputEvent is an action triggered on the frontend.
type InputEvent struct {
	Action action.Action
	Type   event.Type
}
