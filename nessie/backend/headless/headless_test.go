package headless_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/go-nessie/nessie/backend"
	"github.com/valerio/go-nessie/nessie/backend/headless"
	"github.com/valerio/go-nessie/nessie/input/action"
	"github.com/valerio/go-nessie/nessie/input/event"
	"github.com/valerio/go-nessie/nessie/video"
)

func TestHeadlessBackend(t *testing.T) {
	t.Run("frame budget", func(t *testing.T) {
		polled := 0
		h := headless.New(3, headless.Snapshots{})
		require.NoError(t, h.Init(backend.BackendConfig{Title: "Test", Status: func() string {
			polled++
			return "frame 3"
		}}))

		frame := video.NewScreenBuffer()
		for i := 0; i < 3; i++ {
			events, err := h.Update(frame)
			assert.NoError(t, err)

			if i < 2 {
				assert.Empty(t, events)
			} else {
				require.Len(t, events, 1)
				assert.Equal(t, action.EmulatorQuit, events[0].Action)
				assert.Equal(t, event.Press, events[0].Type)
			}
		}
		assert.Equal(t, 3, h.Frames())
		assert.Equal(t, 1, polled, "status is reported once, when the budget runs out")
		assert.NoError(t, h.Cleanup())
	})

	t.Run("unbounded", func(t *testing.T) {
		h := headless.New(0, headless.Snapshots{})
		require.NoError(t, h.Init(backend.BackendConfig{}))
		for i := 0; i < 100; i++ {
			events, err := h.Update(video.NewScreenBuffer())
			require.NoError(t, err)
			require.Empty(t, events)
		}
	})

	t.Run("snapshots", func(t *testing.T) {
		dir := t.TempDir()
		cfg, err := headless.NewSnapshots(2, dir, "/roms/game.nes")
		require.NoError(t, err)
		assert.Equal(t, 2, cfg.Every)
		assert.Equal(t, "game", cfg.Prefix)

		h := headless.New(3, cfg)
		require.NoError(t, h.Init(backend.BackendConfig{}))
		for i := 0; i < 3; i++ {
			_, err := h.Update(video.NewScreenBuffer())
			require.NoError(t, err)
		}

		// frame 2 on the interval, frame 3 as the final snapshot
		files, err := filepath.Glob(filepath.Join(dir, "game_frame_*.png"))
		require.NoError(t, err)
		assert.Len(t, files, 2)
	})
}

func TestNewSnapshots(t *testing.T) {
	cfg, err := headless.NewSnapshots(0, "", "game.nes")
	require.NoError(t, err)
	assert.Zero(t, cfg.Every)
	assert.Empty(t, cfg.Dir)

	cfg, err = headless.NewSnapshots(5, "", "game.nes")
	require.NoError(t, err)
	defer os.RemoveAll(cfg.Dir)
	assert.DirExists(t, cfg.Dir)

	nested := filepath.Join(t.TempDir(), "a", "b")
	cfg, err = headless.NewSnapshots(5, nested, "game.nes")
	require.NoError(t, err)
	assert.Equal(t, nested, cfg.Dir)
	assert.DirExists(t, nested)
}

func TestHeadlessImplementsBackend(t *testing.T) {
	var _ backend.Backend = (*headless.Backend)(nil)
}
