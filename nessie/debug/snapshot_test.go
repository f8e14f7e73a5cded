package debug

import (
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/go-nessie/nessie/video"
)

func TestSaveFramePNGToDir(t *testing.T) {
	dir := t.TempDir()
	frame := video.NewScreenBuffer()
	frame.Fill(video.Color(0x102030))
	frame.SetPixel(3, 4, video.Color(0xF83800))

	path, err := SaveFramePNGToDir(frame, "frame_1", dir)
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(path))
	assert.True(t, strings.HasPrefix(filepath.Base(path), "frame_1_"))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, video.FramebufferWidth, img.Bounds().Dx())
	assert.Equal(t, video.FramebufferHeight, img.Bounds().Dy())

	r, g, b, _ := img.At(3, 4).RGBA()
	assert.Equal(t, []uint32{0xF8, 0x38, 0x00}, []uint32{r >> 8, g >> 8, b >> 8})
	r, g, b, _ = img.At(0, 0).RGBA()
	assert.Equal(t, []uint32{0x10, 0x20, 0x30}, []uint32{r >> 8, g >> 8, b >> 8})
}

func TestSaveFramePNGToMissingDir(t *testing.T) {
	_, err := SaveFramePNGToDir(video.NewScreenBuffer(), "frame", filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
