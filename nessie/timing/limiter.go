package timing

import "time"

// Pacer slows an execution context down to a target clock rate.
type Pacer interface {
	// Wait blocks for roughly cycles times the pacer's cycle period.
	// Returns immediately if the context is behind schedule.
	Wait(cycles int)

	// Reset resets the timing state, useful after pauses.
	Reset()
}

// NewNoOpPacer returns a pacer that doesn't pace (for headless runs and tests).
func NewNoOpPacer() Pacer {
	return &noOpPacer{}
}

type noOpPacer struct{}

func (n *noOpPacer) Wait(int) {}
func (n *noOpPacer) Reset()   {}

// NTSC timing
const (
	CPUFrequency = 1789773
	PPUFrequency = CPUFrequency * 3
	// FrameRate is the approximate NTSC refresh rate.
	FrameRate = 60.0988
)

// CPUCycle is the duration of a single CPU cycle at the NTSC clock rate.
func CPUCycle() time.Duration {
	return time.Second / CPUFrequency
}

// PPUCycle is the duration of a single PPU dot at the NTSC clock rate.
func PPUCycle() time.Duration {
	return time.Second / PPUFrequency
}

// FrameDuration returns the target duration of a single frame.
func FrameDuration() time.Duration {
	rate := FrameRate
	return time.Duration(float64(time.Second) / rate)
}

// New returns a pacer for the given cycle period, or a no-op pacer when the
// period is zero.
func New(period time.Duration) Pacer {
	if period <= 0 {
		return NewNoOpPacer()
	}
	return NewAdaptivePacer(period)
}
