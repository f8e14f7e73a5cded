package nessie

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/valerio/go-nessie/nessie/apu"
	"github.com/valerio/go-nessie/nessie/backend"
	"github.com/valerio/go-nessie/nessie/channel"
	"github.com/valerio/go-nessie/nessie/cpu"
	"github.com/valerio/go-nessie/nessie/disasm"
	"github.com/valerio/go-nessie/nessie/input"
	"github.com/valerio/go-nessie/nessie/input/action"
	"github.com/valerio/go-nessie/nessie/input/event"
	"github.com/valerio/go-nessie/nessie/memory"
	"github.com/valerio/go-nessie/nessie/ppu"
	"github.com/valerio/go-nessie/nessie/rom"
	"github.com/valerio/go-nessie/nessie/video"
)

// Console wires the CPU, PPU and APU together. Each runs in its own goroutine
// and they only talk through channel pairs.
type Console struct {
	cfg Config

	cart *memory.Cartridge
	bus  *memory.Bus
	cpu  *cpu.CPU
	ppu  *ppu.PPU
	apu  *apu.APU
}

// New builds a console for a parsed cartridge image.
func New(img *rom.Image, cfg Config) (*Console, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cart, err := memory.NewCartridge(img)
	if err != nil {
		return nil, err
	}

	ppuPair := channel.NewPair[ppu.Register](channel.DefaultDepth)
	apuPair := channel.NewPair[apu.Register](channel.DefaultDepth)

	c := &Console{
		cfg:  cfg,
		cart: cart,
		bus:  memory.NewBus(cart, ppuPair.Requester(), apuPair.Requester()),
		ppu:  ppu.New(ppuPair.Responder(), img, cfg.ScanlineCycles),
		apu:  apu.New(apuPair.Responder(), cfg.APUStepCycles),
	}

	c.cpu = cpu.New(c.bus)
	c.cpu.SetSignals(ppuPair.Requester())
	if cfg.Trace {
		c.cpu.SetTracer(func(s cpu.State) {
			slog.Debug(disasm.FormatTrace(s, c.bus))
		})
	}
	c.cpu.Reset()

	slog.Info("Console ready",
		"mapper", cart.Mapper().ID(),
		"prg_banks", img.PRGBanks(),
		"chr_banks", img.CHRBanks(),
		"mirroring", img.Mirroring,
		"reset_vector", fmt.Sprintf("0x%04X", c.cpu.PC()))

	return c, nil
}

// NewWithFile loads an iNES file and builds a console for it.
func NewWithFile(path string, cfg Config) (*Console, error) {
	img, err := rom.Load(path)
	if err != nil {
		return nil, err
	}
	return New(img, cfg)
}

// Run starts the three execution contexts and blocks until ctx is cancelled or
// the CPU fails. A CPU failure stops the other contexts and is returned.
func (c *Console) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := c.cpu.Run(ctx, c.cfg.cpuPacer()); err != nil {
			return fmt.Errorf("cpu halted: %w", err)
		}
		return nil
	})
	g.Go(func() error { return c.ppu.Run(ctx, c.cfg.ppuPacer()) })
	g.Go(func() error { return c.apu.Run(ctx, c.cfg.apuPacer()) })

	err := g.Wait()
	slog.Info("Console stopped", "cycles", c.cpu.Cycles(), "frames", c.cpu.Frames())
	return err
}

// Frames delivers completed frames from the PPU.
func (c *Console) Frames() <-chan *video.FrameBuffer {
	return c.ppu.Frames()
}

// SetButton queues a button state change for the controller. Events are
// dropped if the PPU has fallen behind.
func (c *Console) SetButton(b input.Button, pressed bool) {
	select {
	case c.ppu.Input() <- input.Event{Button: b, Pressed: pressed}:
	default:
		slog.Warn("Input queue full, dropping event", "button", b, "pressed", pressed)
	}
}

// HandleAction applies a game input action from a frontend.
func (c *Console) HandleAction(act action.Action, pressed bool) {
	if b, ok := input.ButtonFor(act); ok {
		c.SetButton(b, pressed)
	}
}

// Status is a one-line summary for frontends.
func (c *Console) Status() string {
	return fmt.Sprintf("mapper %d", c.cart.Mapper().ID())
}

// actionHandler is implemented by backends with their own action handling,
// e.g. snapshots.
type actionHandler interface {
	HandleAction(act action.Action)
}

var errQuit = errors.New("quit requested")

// Play runs the console and feeds its frames to b until the backend asks to
// quit, ctx is cancelled or the CPU fails.
func (c *Console) Play(ctx context.Context, b backend.Backend) error {
	if err := b.Init(backend.BackendConfig{Title: "nessie", Status: c.Status}); err != nil {
		return fmt.Errorf("backend init failed: %w", err)
	}
	defer b.Cleanup()

	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()

	for {
		select {
		case err := <-done:
			return err
		case frame := <-c.Frames():
			events, err := b.Update(frame)
			if err != nil {
				cancel(err)
				<-done
				return err
			}
			if c.dispatch(b, events) {
				cancel(errQuit)
				return <-done
			}
		}
	}
}

// dispatch applies frontend events and reports whether a quit was requested.
func (c *Console) dispatch(b backend.Backend, events []backend.InputEvent) bool {
	quit := false
	for _, e := range events {
		switch {
		case e.Action == action.EmulatorQuit:
			quit = true
		case e.Action.IsGameInput():
			if e.Type == event.Hold {
				continue
			}
			c.HandleAction(e.Action, e.Type == event.Press)
		default:
			if h, ok := b.(actionHandler); ok && e.Type == event.Press {
				h.HandleAction(e.Action)
			}
		}
	}
	return quit
}
