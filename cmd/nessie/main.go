package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli"
	"github.com/valerio/go-nessie/nessie"
	"github.com/valerio/go-nessie/nessie/backend"
	"github.com/valerio/go-nessie/nessie/backend/headless"
	"github.com/valerio/go-nessie/nessie/backend/terminal"
	"github.com/valerio/go-nessie/nessie/scenario"
)

func main() {
	app := cli.NewApp()
	app.Name = "nessie"
	app.Description = "A concurrent 8-bit console emulator"
	app.Usage = "nessie run [options] <ROM file>"
	app.Version = "0.1.0"
	app.Commands = []cli.Command{
		{
			Name:      "run",
			Usage:     "Run an iNES ROM",
			ArgsUsage: "<ROM file>",
			Flags:     runFlags(),
			Action:    runEmulator,
		},
		{
			Name:      "test",
			Usage:     "Run a built-in scenario",
			ArgsUsage: "<name>",
			Flags: []cli.Flag{
				cli.BoolFlag{
					Name:  "list",
					Usage: "List available scenarios",
				},
			},
			Action: runScenario,
		},
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("Error running emulator", "error", err)
		os.Exit(1)
	}
}

func runFlags() []cli.Flag {
	defaults := nessie.DefaultConfig()
	return []cli.Flag{
		cli.BoolFlag{
			Name:  "headless",
			Usage: "Run the emulator without a terminal interface",
		},
		cli.IntFlag{
			Name:  "frames",
			Usage: "Number of frames to run in headless mode (required for headless)",
		},
		cli.Float64Flag{
			Name:  "lag",
			Usage: "CPU cycle period as a multiple of the NTSC clock (0 = unpaced)",
			Value: defaults.CPULag,
		},
		cli.Float64Flag{
			Name:  "ppu-lag",
			Usage: "PPU dot period as a multiple of the NTSC clock (0 = unpaced)",
			Value: defaults.PPULag,
		},
		cli.IntFlag{
			Name:  "scanline-cycles",
			Usage: "PPU ticks per scanline",
			Value: defaults.ScanlineCycles,
		},
		cli.IntFlag{
			Name:  "snapshot-interval",
			Usage: "Save frame snapshots every N frames in headless mode (0 = disabled)",
		},
		cli.StringFlag{
			Name:  "snapshot-dir",
			Usage: "Directory to save frame snapshots (default: temp directory)",
		},
		cli.BoolFlag{
			Name:  "trace",
			Usage: "Log every executed instruction at debug level",
		},
	}
}

func configFrom(c *cli.Context) nessie.Config {
	cfg := nessie.DefaultConfig()
	cfg.CPULag = c.Float64("lag")
	cfg.PPULag = c.Float64("ppu-lag")
	cfg.ScanlineCycles = c.Int("scanline-cycles")
	cfg.Headless = c.Bool("headless")
	cfg.Frames = c.Int("frames")
	cfg.SnapshotInterval = c.Int("snapshot-interval")
	cfg.SnapshotDir = c.String("snapshot-dir")
	cfg.Trace = c.Bool("trace")
	return cfg
}

func runEmulator(c *cli.Context) error {
	if c.NArg() == 0 {
		cli.ShowCommandHelp(c, "run")
		return errors.New("no ROM path provided")
	}
	romPath := c.Args().First()

	cfg := configFrom(c)
	if err := cfg.Validate(); err != nil {
		return err
	}

	var b backend.Backend
	if cfg.Headless {
		snapshots, err := headless.NewSnapshots(cfg.SnapshotInterval, cfg.SnapshotDir, romPath)
		if err != nil {
			return err
		}
		b = headless.New(cfg.Frames, snapshots)
	} else {
		b = terminal.New()
	}

	console, err := nessie.NewWithFile(romPath, cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return console.Play(ctx, b)
}

func runScenario(c *cli.Context) error {
	if c.Bool("list") {
		for _, s := range scenario.List() {
			fmt.Printf("%-18s %s\n", s.Name, s.Description)
		}
		return nil
	}

	if c.NArg() == 0 {
		cli.ShowCommandHelp(c, "test")
		return errors.New("no scenario name provided")
	}

	return scenario.Run(context.Background(), c.Args().First())
}
