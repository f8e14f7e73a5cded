package nessie

import (
	"errors"
	"fmt"
	"time"

	"github.com/valerio/go-nessie/nessie/apu"
	"github.com/valerio/go-nessie/nessie/ppu"
	"github.com/valerio/go-nessie/nessie/timing"
)

// Config holds the knobs for a console run.
type Config struct {
	// CPULag scales the NTSC CPU cycle period, 0 runs unpaced.
	CPULag float64
	// PPULag scales the NTSC dot period, 0 runs unpaced.
	PPULag float64
	// ScanlineCycles is the number of PPU ticks per scanline.
	ScanlineCycles int
	// APUStepCycles is the number of APU ticks between frame sequencer steps.
	APUStepCycles int

	Headless         bool
	Frames           int
	SnapshotInterval int
	SnapshotDir      string

	// Trace logs every instruction at debug level.
	Trace bool
}

// DefaultConfig runs at real speed with hardware scanline timing.
func DefaultConfig() Config {
	return Config{
		CPULag:         1,
		PPULag:         1,
		ScanlineCycles: ppu.DefaultDotsPerScanline,
		APUStepCycles:  apu.DefaultTicksPerStep,
	}
}

var errHeadlessFrames = errors.New("headless mode requires --frames option with a positive value")

// Validate checks the configuration for values the console can't run with.
func (c Config) Validate() error {
	switch {
	case c.CPULag < 0:
		return fmt.Errorf("invalid cpu lag %v: must not be negative", c.CPULag)
	case c.PPULag < 0:
		return fmt.Errorf("invalid ppu lag %v: must not be negative", c.PPULag)
	case c.ScanlineCycles <= 0:
		return fmt.Errorf("invalid scanline cycles %d: must be positive", c.ScanlineCycles)
	case c.APUStepCycles <= 0:
		return fmt.Errorf("invalid apu step cycles %d: must be positive", c.APUStepCycles)
	case c.Frames < 0:
		return fmt.Errorf("invalid frame count %d: must not be negative", c.Frames)
	case c.SnapshotInterval < 0:
		return fmt.Errorf("invalid snapshot interval %d: must not be negative", c.SnapshotInterval)
	case c.Headless && c.Frames == 0:
		return errHeadlessFrames
	}
	return nil
}

func (c Config) cpuPacer() timing.Pacer {
	return timing.New(scale(timing.CPUCycle(), c.CPULag))
}

func (c Config) ppuPacer() timing.Pacer {
	return timing.New(scale(timing.PPUCycle(), c.PPULag))
}

// the APU ticks once per CPU cycle
func (c Config) apuPacer() timing.Pacer {
	return timing.New(scale(timing.CPUCycle(), c.CPULag))
}

func scale(d time.Duration, factor float64) time.Duration {
	return time.Duration(float64(d) * factor)
}
