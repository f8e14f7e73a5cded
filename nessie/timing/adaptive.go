package timing

import (
	"log/slog"
	"time"
)

const (
	// minSleep is the smallest debt worth sleeping for, shorter sleeps
	// overshoot badly on most schedulers.
	minSleep = time.Millisecond
	// maxLag is how far behind schedule we tolerate before giving up on
	// catching up and re-anchoring.
	maxLag = 50 * time.Millisecond
)

// AdaptivePacer accumulates the time owed by executed cycles and sleeps it
// off in batches, re-anchoring when the context falls too far behind.
type AdaptivePacer struct {
	period   time.Duration
	deadline time.Time
	cycles   uint64
	resyncs  uint64
	now      func() time.Time
	sleep    func(time.Duration)
}

func NewAdaptivePacer(period time.Duration) *AdaptivePacer {
	return &AdaptivePacer{
		period:   period,
		deadline: time.Now(),
		now:      time.Now,
		sleep:    time.Sleep,
	}
}

func (a *AdaptivePacer) Wait(cycles int) {
	a.cycles += uint64(cycles)
	a.deadline = a.deadline.Add(time.Duration(cycles) * a.period)

	ahead := a.deadline.Sub(a.now())
	switch {
	case ahead >= minSleep:
		a.sleep(ahead)
	case ahead < -maxLag:
		a.resyncs++
		a.deadline = a.now()
		if a.resyncs%100 == 1 {
			slog.Debug("Pacer fell behind, resyncing",
				"lag_ms", (-ahead).Milliseconds(),
				"cycles", a.cycles,
				"resyncs", a.resyncs)
		}
	}
}

func (a *AdaptivePacer) Reset() {
	a.deadline = a.now()
	a.cycles = 0
}
