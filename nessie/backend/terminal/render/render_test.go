package render

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valerio/go-nessie/nessie/video"
)

func TestLogRing(t *testing.T) {
	r := NewLogRing(3)
	assert.Empty(t, r.Recent(0, slog.LevelDebug))

	for i, msg := range []string{"a", "b", "c", "d"} {
		r.Push(LogLine{Text: msg, Level: slog.Level(i * 4)})
	}
	assert.Equal(t, 3, r.Len())

	recent := r.Recent(0, slog.LevelDebug)
	require.Len(t, recent, 3)
	assert.Equal(t, "d", recent[0].Text)
	assert.Equal(t, "b", recent[2].Text)

	assert.Len(t, r.Recent(2, slog.LevelDebug), 2)

	errs := r.Recent(0, slog.LevelError)
	require.Len(t, errs, 2)
	assert.Equal(t, "d", errs[0].Text)
	assert.Equal(t, "c", errs[1].Text)

	only := r.Recent(1, slog.LevelWarn)
	require.Len(t, only, 1)
	assert.Equal(t, "d", only[0].Text)
}

func TestLogRingZeroCapacity(t *testing.T) {
	r := NewLogRing(0)
	r.Push(LogLine{Text: "a"})
	r.Push(LogLine{Text: "b"})
	assert.Equal(t, 1, r.Len())
	assert.Equal(t, "b", r.Recent(0, slog.LevelDebug)[0].Text)
}

func TestRingHandler(t *testing.T) {
	r := NewLogRing(10)
	logger := slog.New(NewRingHandler(r, slog.LevelInfo)).With("ctx", "cpu")

	logger.Debug("dropped")
	logger.Info("stepped", "pc", 0x8000)

	assert.False(t, logger.Handler().Enabled(context.Background(), slog.LevelDebug))
	lines := r.Recent(0, slog.LevelDebug)
	require.Len(t, lines, 1)
	assert.Equal(t, "stepped ctx=cpu pc=32768", lines[0].Text)
}

func TestFormatLogLine(t *testing.T) {
	ts := time.Date(2024, 1, 1, 12, 30, 45, 0, time.UTC)
	assert.Equal(t, "12:30:45 [WRN] careful", FormatLogLine(LogLine{Time: ts, Level: slog.LevelWarn, Text: "careful"}))
	assert.Equal(t, "12:30:45 [???] odd", FormatLogLine(LogLine{Time: ts, Level: slog.Level(2), Text: "odd"}))
}

func TestAverage(t *testing.T) {
	frame := video.NewFrameBuffer(2, 2)
	frame.SetPixel(0, 0, video.Color(0x000000))
	frame.SetPixel(1, 0, video.Color(0x204060))
	frame.SetPixel(0, 1, video.Color(0x000000))
	frame.SetPixel(1, 1, video.Color(0x204060))

	assert.Equal(t, video.Color(0x102030), Average(frame, 0, 0, 2, 2))
	assert.Equal(t, video.Color(0x204060), Average(frame, 1, 0, 4, 4), "clipped at the edges")
}
