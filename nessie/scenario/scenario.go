// Package scenario holds scripted end-to-end checks of the emulator core,
// runnable from the command line with `nessie test <name>`.
package scenario

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"
)

// ErrUnknown is returned by Run for names with no registered scenario.
var ErrUnknown = errors.New("unknown scenario")

// Scenario is a named check. Run returns a descriptive error on the first mismatch.
type Scenario struct {
	Name        string
	Description string
	Run         func(ctx context.Context) error
}

var registry = map[string]Scenario{}

func register(s Scenario) {
	registry[s.Name] = s
}

func init() {
	register(Scenario{"cpu-trace", "replay the fixture program against its golden register and cycle trace", cpuTrace})
	register(Scenario{"mapper-bank", "bank select writes remap the program window, wrapping past the bank count", mapperBank})
	register(Scenario{"sprite-zero", "sprite zero hit only where opaque sprite and background pixels meet", spriteZero})
	register(Scenario{"channel-order", "writes are applied in order and every read gets one reply", channelOrder})
	register(Scenario{"controller-strobe", "strobe replays button A, releasing it restarts the button order", controllerStrobe})
	register(Scenario{"nrom-identity", "an NROM image exposes its program at 0x8000 untranslated", nromIdentity})
}

// List returns all scenarios sorted by name.
func List() []Scenario {
	out := make([]Scenario, 0, len(registry))
	for _, s := range registry {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Lookup finds a scenario by name.
func Lookup(name string) (Scenario, bool) {
	s, ok := registry[name]
	return s, ok
}

// Run executes the named scenario.
func Run(ctx context.Context, name string) error {
	s, ok := Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknown, name)
	}

	start := time.Now()
	if err := s.Run(ctx); err != nil {
		return fmt.Errorf("scenario %s failed: %w", name, err)
	}
	slog.Info("Scenario passed", "name", name, "elapsed", time.Since(start))
	return nil
}
