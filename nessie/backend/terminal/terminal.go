package terminal

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/valerio/go-nessie/nessie/backend"
	"github.com/valerio/go-nessie/nessie/backend/terminal/render"
	"github.com/valerio/go-nessie/nessie/debug"
	"github.com/valerio/go-nessie/nessie/input"
	"github.com/valerio/go-nessie/nessie/input/action"
	"github.com/valerio/go-nessie/nessie/input/event"
	"github.com/valerio/go-nessie/nessie/video"
)

const (
	// each cell covers pixelsX columns and 2*pixelsY rows of the frame
	pixelsX = 2
	pixelsY = 2

	gameAreaWidth  = video.FramebufferWidth / pixelsX
	gameAreaHeight = video.FramebufferHeight / (2 * pixelsY)
	minTermWidth   = gameAreaWidth + 2
	minTermHeight  = gameAreaHeight + 2
	logRingSize  = 200
)

// Key expiry timeout, slightly longer than typical key repeat interval.
// Terminals only report presses, so releases are synthesized.
const keyTimeout = 100 * time.Millisecond

// Backend renders frames to the terminal with tcell half blocks.
type Backend struct {
	screen    tcell.Screen
	logRing   *render.LogRing
	logLevel  slog.Level
	config    backend.BackendConfig
	now       func() time.Time

	eventQueue []backend.InputEvent
	quit       chan struct{}

	keyStates  map[action.Action]time.Time // Last time each key was pressed
	activeKeys map[action.Action]bool      // Keys active in previous frame

	currentFrame *video.FrameBuffer
}

// New creates a terminal backend on the process terminal.
func New() *Backend {
	return &Backend{logLevel: slog.LevelInfo, now: time.Now}
}

// NewWithScreen creates a backend drawing to an existing screen.
func NewWithScreen(screen tcell.Screen) *Backend {
	b := New()
	b.screen = screen
	return b
}

func (t *Backend) Init(config backend.BackendConfig) error {
	t.config = config
	t.keyStates = make(map[action.Action]time.Time)
	t.activeKeys = make(map[action.Action]bool)
	t.quit = make(chan struct{}, 1)

	if t.screen == nil {
		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("failed to initialize terminal: %w", err)
		}
		if err := screen.Init(); err != nil {
			return fmt.Errorf("failed to initialize terminal: %w", err)
		}
		t.screen = screen
		go t.handleSignals()
	}

	// logs go to a pane instead of stderr, which tcell owns now
	t.logRing = render.NewLogRing(logRingSize)
	slog.SetDefault(slog.New(render.NewRingHandler(t.logRing, slog.LevelDebug)))

	t.screen.SetStyle(tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite))
	t.screen.Clear()

	slog.Info("Terminal backend initialized")
	return nil
}

// Update renders a frame and processes events
func (t *Backend) Update(frame *video.FrameBuffer) ([]backend.InputEvent, error) {
	now := t.now()

	for t.screen.HasPendingEvent() {
		switch ev := t.screen.PollEvent().(type) {
		case *tcell.EventKey:
			t.processKeyEvent(ev, now)
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}

	select {
	case <-t.quit:
		t.eventQueue = append(t.eventQueue, backend.InputEvent{Action: action.EmulatorQuit, Type: event.Press})
	default:
	}

	events := t.gameEvents(now)
	events = append(events, t.eventQueue...)
	t.eventQueue = nil

	if frame != nil {
		t.currentFrame = frame
	}
	t.render()
	t.screen.Show()

	return events, nil
}

// gameEvents turns the tracked key timestamps into press and release events.
func (t *Backend) gameEvents(now time.Time) []backend.InputEvent {
	var events []backend.InputEvent
	currentlyActive := make(map[action.Action]bool)

	for act, lastPressed := range t.keyStates {
		if now.Sub(lastPressed) >= keyTimeout {
			delete(t.keyStates, act)
			continue
		}

		currentlyActive[act] = true
		if !t.activeKeys[act] {
			slog.Debug("Key press", "action", act)
			events = append(events, backend.InputEvent{Action: act, Type: event.Press})
		}
	}

	for act := range t.activeKeys {
		if !currentlyActive[act] {
			slog.Debug("Key release", "action", act)
			events = append(events, backend.InputEvent{Action: act, Type: event.Release})
		}
	}

	t.activeKeys = currentlyActive
	return events
}

func (t *Backend) Cleanup() error {
	if t.screen != nil {
		t.screen.Fini()
	}
	return nil
}

// HandleAction processes backend-specific actions
func (t *Backend) HandleAction(act action.Action) {
	switch act {
	case action.EmulatorSnapshot:
		debug.TakeSnapshot(t.currentFrame)
	}
}

func (t *Backend) handleSignals() {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP, syscall.SIGQUIT)

	<-signals
	select {
	case t.quit <- struct{}{}:
	default:
	}
}

// tcellKeyNameMap converts tcell keys to key names used in default mappings
var tcellKeyNameMap = map[tcell.Key]string{
	tcell.KeyEnter:  "Enter",
	tcell.KeyUp:     "Up",
	tcell.KeyDown:   "Down",
	tcell.KeyLeft:   "Left",
	tcell.KeyRight:  "Right",
	tcell.KeyEscape: "Escape",
	tcell.KeyF12:    "F12",
}

func buildKeyMapping() map[tcell.Key]action.Action {
	mapping := make(map[tcell.Key]action.Action)
	for key, keyName := range tcellKeyNameMap {
		if act, ok := input.GetDefaultMapping(keyName); ok {
			mapping[key] = act
		}
	}
	mapping[tcell.KeyCtrlC] = action.EmulatorQuit
	return mapping
}

func runeKeyName(r rune) string {
	if r == ' ' {
		return "Space"
	}
	return string(r)
}

var keyMapping = buildKeyMapping()

func (t *Backend) processKeyEvent(ev *tcell.EventKey, now time.Time) {
	act, ok := keyMapping[ev.Key()]
	if !ok && ev.Key() == tcell.KeyRune {
		act, ok = input.GetDefaultMapping(runeKeyName(ev.Rune()))
		if !ok {
			t.processLogKey(ev.Rune())
		}
	}
	if !ok {
		return
	}

	if !act.IsGameInput() {
		t.eventQueue = append(t.eventQueue, backend.InputEvent{Action: act, Type: event.Press})
		return
	}

	if isDPad(act) {
		// terminals can't report chords, directions are exclusive
		for _, d := range []action.Action{action.NESDPadUp, action.NESDPadDown, action.NESDPadLeft, action.NESDPadRight} {
			delete(t.keyStates, d)
		}
	}
	t.keyStates[act] = now
}

func isDPad(act action.Action) bool {
	return act >= action.NESDPadUp && act <= action.NESDPadRight
}

func (t *Backend) processLogKey(r rune) {
	switch r {
	case '+', '=':
		t.changeLogLevel(-4)
	case '-', '_':
		t.changeLogLevel(4)
	}
}

func (t *Backend) changeLogLevel(delta slog.Level) {
	next := t.logLevel + delta
	if next < slog.LevelDebug || next > slog.LevelError {
		return
	}
	slog.Info("Log filter changed", "from", t.logLevel, "to", next)
	t.logLevel = next
}

func (t *Backend) render() {
	termWidth, termHeight := t.screen.Size()
	t.screen.Clear()

	if termWidth < minTermWidth || termHeight < minTermHeight {
		style := tcell.StyleDefault.Foreground(tcell.ColorRed)
		msg := fmt.Sprintf("Terminal too small! Need at least %dx%d", minTermWidth, minTermHeight)
		drawText(t.screen, 0, termHeight/2, termWidth, msg, style)
		return
	}

	title := tcell.StyleDefault.Foreground(tcell.ColorYellow)
	drawText(t.screen, 1, 0, gameAreaWidth, " "+t.config.Title+" ", title)

	if t.currentFrame != nil {
		t.drawFrame(t.currentFrame)
	}

	dividerX := gameAreaWidth + 1
	border := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	for y := 0; y < termHeight-1; y++ {
		t.screen.SetContent(dividerX, y, '│', nil, border)
	}

	logsX := dividerX + 2
	drawText(t.screen, logsX, 0, termWidth-logsX, fmt.Sprintf(" Logs [%s] (-/+ filter) ", t.logLevel), title)
	t.drawLogs(logsX, 1, termWidth-logsX, termHeight-2)

	status := " F12=snapshot ESC=exit "
	if t.config.Status != nil {
		status = " " + t.config.Status() + " |" + status
	}
	drawText(t.screen, 0, termHeight-1, termWidth, status, border)
}

func (t *Backend) drawFrame(frame *video.FrameBuffer) {
	for row := 0; row < gameAreaHeight; row++ {
		y := uint(row * 2 * pixelsY)
		for col := 0; col < gameAreaWidth; col++ {
			x := uint(col * pixelsX)
			top := render.Average(frame, x, y, pixelsX, pixelsY)
			bottom := render.Average(frame, x, y+pixelsY, pixelsX, pixelsY)

			style := tcell.StyleDefault.Foreground(tcellColor(top)).Background(tcellColor(bottom))
			t.screen.SetContent(col, row+1, render.HalfBlock, nil, style)
		}
	}
}

func tcellColor(c video.Color) tcell.Color {
	return tcell.NewHexColor(int32(c))
}

func (t *Backend) drawLogs(x, y, width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	style := tcell.StyleDefault.Foreground(tcell.ColorSilver)
	for i, line := range t.logRing.Recent(height, t.logLevel) {
		drawText(t.screen, x, y+i, width, render.FormatLogLine(line), style)
	}
}

func drawText(screen tcell.Screen, x, y, width int, text string, style tcell.Style) {
	i := 0
	for _, ch := range text {
		if i >= width {
			return
		}
		screen.SetContent(x+i, y, ch, nil, style)
		i++
	}
}
