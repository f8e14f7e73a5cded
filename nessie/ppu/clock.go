package ppu

const (
	// ScanlinesPerFrame counts visible, post-render and vblank lines.
	ScanlinesPerFrame = 262
	VisibleScanlines  = 240

	PostRenderScanline  = 240
	VBlankStartScanline = 241
	VBlankEndScanline   = 261

	// DefaultDotsPerScanline is the hardware cycle count of one scanline.
	DefaultDotsPerScanline = 341
)

// Event classifies the scanline a boundary moved to.
type Event uint8

const (
	// FrameStart is scanline 0, the first visible line.
	FrameStart Event = iota
	VisibleLine
	PostRender
	VBlankStart
	VBlankLine
	VBlankEnd
)

func (e Event) String() string {
	switch e {
	case FrameStart:
		return "frame-start"
	case VisibleLine:
		return "visible"
	case PostRender:
		return "post-render"
	case VBlankStart:
		return "vblank-start"
	case VBlankLine:
		return "vblank"
	case VBlankEnd:
		return "vblank-end"
	default:
		return "unknown"
	}
}

// EventFor derives the event of entering scanline.
func EventFor(scanline int) Event {
	switch {
	case scanline == 0:
		return FrameStart
	case scanline < PostRenderScanline:
		return VisibleLine
	case scanline == PostRenderScanline:
		return PostRender
	case scanline == VBlankStartScanline:
		return VBlankStart
	case scanline == VBlankEndScanline:
		return VBlankEnd
	default:
		return VBlankLine
	}
}

// Boundary is emitted once each time the clock enters a new scanline.
type Boundary struct {
	Scanline int
	Event    Event
}

// Clock is the scanline clock. Each tick is one dot.
type Clock struct {
	dots      int
	threshold int
	scanline  int
}

// NewClock creates a clock with the given dots per scanline, DefaultDotsPerScanline if not positive.
func NewClock(dotsPerScanline int) *Clock {
	if dotsPerScanline <= 0 {
		dotsPerScanline = DefaultDotsPerScanline
	}
	return &Clock{threshold: dotsPerScanline}
}

// Tick advances one dot. When the dot count reaches the threshold it resets,
// the scanline advances (wrapping after the last vblank line) and a boundary is returned.
func (c *Clock) Tick() (Boundary, bool) {
	c.dots++
	if c.dots < c.threshold {
		return Boundary{}, false
	}

	c.dots = 0
	c.scanline = (c.scanline + 1) % ScanlinesPerFrame
	return Boundary{Scanline: c.scanline, Event: EventFor(c.scanline)}, true
}

func (c *Clock) Scanline() int { return c.scanline }
func (c *Clock) Dot() int      { return c.dots }

// InVBlank reports whether the current scanline is between vblank start and end.
func (c *Clock) InVBlank() bool {
	return c.scanline >= VBlankStartScanline && c.scanline < VBlankEndScanline
}
