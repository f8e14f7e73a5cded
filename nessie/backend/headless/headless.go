package headless

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/valerio/go-nessie/nessie/backend"
	"github.com/valerio/go-nessie/nessie/debug"
	"github.com/valerio/go-nessie/nessie/input/action"
	"github.com/valerio/go-nessie/nessie/input/event"
	"github.com/valerio/go-nessie/nessie/video"
)

// progressEvery is roughly one emulated second of frames.
const progressEvery = 60

// Backend drops every frame except the ones it snapshots. It quits the console
// once its frame budget is used up, or never when the budget is zero.
type Backend struct {
	status    func() string
	budget    int
	frames    int
	snapshots Snapshots
}

// Snapshots says which frames a headless run writes out as PNG files.
type Snapshots struct {
	Every  int    // 0 disables snapshots
	Dir    string
	Prefix string // file name stem, taken from the ROM
}

func (s Snapshots) enabled() bool { return s.Every > 0 }

// NewSnapshots prepares the snapshot directory for a run of romPath. An empty
// dir gets a fresh temporary directory.
func NewSnapshots(every int, dir, romPath string) (Snapshots, error) {
	if every <= 0 {
		return Snapshots{}, nil
	}

	var err error
	if dir == "" {
		dir, err = os.MkdirTemp("", "nessie-snapshots-*")
	} else {
		err = os.MkdirAll(dir, 0755)
	}
	if err != nil {
		return Snapshots{}, fmt.Errorf("snapshot directory: %w", err)
	}

	name := filepath.Base(romPath)
	return Snapshots{
		Every:  every,
		Dir:    dir,
		Prefix: strings.TrimSuffix(name, filepath.Ext(name)),
	}, nil
}

func New(budget int, snapshots Snapshots) *Backend {
	return &Backend{budget: budget, snapshots: snapshots}
}

func (h *Backend) Init(config backend.BackendConfig) error {
	h.status = config.Status

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})))
	slog.Info("Headless run", "budget", h.budget, "snapshot_every", h.snapshots.Every, "snapshot_dir", h.snapshots.Dir)
	return nil
}

func (h *Backend) Update(frame *video.FrameBuffer) ([]backend.InputEvent, error) {
	h.frames++

	onInterval := h.snapshots.enabled() && h.frames%h.snapshots.Every == 0
	if onInterval {
		h.snapshot(frame)
	}

	if h.frames%progressEvery == 0 {
		slog.Info("Headless progress", "frames", h.frames, "budget", h.budget)
	}

	if h.budget <= 0 || h.frames < h.budget {
		return nil, nil
	}

	// the last frame is always kept
	if h.snapshots.enabled() && !onInterval {
		h.snapshot(frame)
	}
	h.report()

	return []backend.InputEvent{{Action: action.EmulatorQuit, Type: event.Press}}, nil
}

func (h *Backend) report() {
	attrs := []any{"frames", h.frames}
	if h.snapshots.enabled() {
		attrs = append(attrs, "snapshot_dir", h.snapshots.Dir)
	}
	if h.status != nil {
		attrs = append(attrs, "console", h.status())
	}
	slog.Info("Headless run finished", attrs...)
}

func (h *Backend) Cleanup() error {
	return nil
}

// Frames returns the number of frames received so far.
func (h *Backend) Frames() int {
	return h.frames
}

func (h *Backend) snapshot(frame *video.FrameBuffer) {
	if frame == nil {
		return
	}
	stem := fmt.Sprintf("%s_frame_%d", h.snapshots.Prefix, h.frames)
	if _, err := debug.SaveFramePNGToDir(frame, stem, h.snapshots.Dir); err != nil {
		slog.Error("Snapshot failed", "frame", h.frames, "error", err)
	}
}
