package scenario

import (
	"bufio"
	"bytes"
	"context"
	_ "embed"
	"fmt"

	"github.com/valerio/go-nessie/nessie/cpu"
	"github.com/valerio/go-nessie/nessie/memory"
	"github.com/valerio/go-nessie/nessie/rom"
)

var (
	//go:embed testdata/trace.prg
	traceProgram []byte

	//go:embed testdata/trace.golden
	traceGolden []byte
)

// fixtureCPU loads program at 0x8000 of an NROM cartridge with no PPU or APU attached.
func fixtureCPU(program []byte) *cpu.CPU {
	prg := make([]byte, rom.PRGBankSize)
	copy(prg, program)
	prg[0x3FFC], prg[0x3FFD] = 0x00, 0x80

	c := cpu.New(memory.NewBus(memory.NewCartridgeWithPRG(prg), nil, nil))
	c.Reset()
	return c
}

// Trace steps the fixture program once per golden line, recording the state
// and the running cycle count before every instruction.
func Trace(program []byte, steps int) ([]string, error) {
	c := fixtureCPU(program)
	lines := make([]string, 0, steps)
	for i := 0; i < steps; i++ {
		s := c.State()
		lines = append(lines, fmt.Sprintf("%s CYC:%d", s, s.Cycles))
		if _, err := c.Step(); err != nil {
			return lines, err
		}
	}
	return lines, nil
}

func goldenLines() []string {
	var lines []string
	s := bufio.NewScanner(bytes.NewReader(traceGolden))
	for s.Scan() {
		if line := s.Text(); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func cpuTrace(ctx context.Context) error {
	golden := goldenLines()
	got, err := Trace(traceProgram, len(golden))
	if err != nil {
		return err
	}

	for i, want := range golden {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if got[i] != want {
			return fmt.Errorf("trace mismatch at step %d: got %q, want %q", i, got[i], want)
		}
	}
	return nil
}
