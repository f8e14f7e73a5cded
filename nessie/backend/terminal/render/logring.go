package render

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// LogLine is one record as shown in the terminal log pane.
type LogLine struct {
	Time  time.Time
	Level slog.Level
	Text  string // message followed by key=value attributes
}

// LogRing keeps the last few log lines for the log pane. Older lines are
// overwritten once it is full. Safe for concurrent use.
type LogRing struct {
	mu    sync.RWMutex
	lines []LogLine
	next  int
	full  bool
}

func NewLogRing(capacity int) *LogRing {
	return &LogRing{lines: make([]LogLine, max(capacity, 1))}
}

func (r *LogRing) Push(line LogLine) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lines[r.next] = line
	r.next++
	if r.next == len(r.lines) {
		r.next, r.full = 0, true
	}
}

// Len returns how many lines the ring holds.
func (r *LogRing) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.full {
		return len(r.lines)
	}
	return r.next
}

// Recent walks back from the newest line and returns up to limit lines at or
// above level. A limit of 0 means no limit.
func (r *LogRing) Recent(limit int, level slog.Level) []LogLine {
	r.mu.RLock()
	defer r.mu.RUnlock()

	held := r.next
	if r.full {
		held = len(r.lines)
	}

	var out []LogLine
	for i := 1; i <= held; i++ {
		line := r.lines[(r.next-i+len(r.lines))%len(r.lines)]
		if line.Level < level {
			continue
		}
		out = append(out, line)
		if len(out) == limit {
			break
		}
	}
	return out
}

// RingHandler is the slog handler behind the terminal log pane.
type RingHandler struct {
	ring  *LogRing
	level slog.Leveler
	attrs []slog.Attr
}

func NewRingHandler(ring *LogRing, level slog.Leveler) *RingHandler {
	return &RingHandler{ring: ring, level: level}
}

func (h *RingHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *RingHandler) Handle(_ context.Context, record slog.Record) error {
	var text strings.Builder
	text.WriteString(record.Message)
	appendAttr := func(a slog.Attr) bool {
		fmt.Fprintf(&text, " %s=%v", a.Key, a.Value)
		return true
	}
	for _, a := range h.attrs {
		appendAttr(a)
	}
	record.Attrs(appendAttr)

	h.ring.Push(LogLine{Time: record.Time, Level: record.Level, Text: text.String()})
	return nil
}

func (h *RingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := *h
	next.attrs = append(append([]slog.Attr(nil), h.attrs...), attrs...)
	return &next
}

// WithGroup keeps attributes flat, the pane has no room for group prefixes.
func (h *RingHandler) WithGroup(string) slog.Handler {
	return h
}

var levelTags = map[slog.Level]string{
	slog.LevelDebug: "DBG",
	slog.LevelInfo:  "INF",
	slog.LevelWarn:  "WRN",
	slog.LevelError: "ERR",
}

// FormatLogLine renders a line as "hh:mm:ss [TAG] text".
func FormatLogLine(line LogLine) string {
	tag, ok := levelTags[line.Level]
	if !ok {
		tag = "???"
	}
	return fmt.Sprintf("%s [%s] %s", line.Time.Format(time.TimeOnly), tag, line.Text)
}
