package apu

import (
	"context"
	"log/slog"

	"github.com/valerio/go-nessie/nessie/bit"
	"github.com/valerio/go-nessie/nessie/channel"
	"github.com/valerio/go-nessie/nessie/timing"
)

// DefaultTicksPerStep is the number of CPU cycles between frame sequencer steps (~240 Hz).
const DefaultTicksPerStep = 7457

// Channel indexes the four length-counted channels.
type Channel uint8

const (
	Pulse1 Channel = iota
	Pulse2
	Triangle
	Noise
	channelCount
)

// lengthTable maps the 5 bit length index written to the high period register to a count.
var lengthTable = [32]uint8{
	10, 254, 20, 2, 40, 4, 80, 6, 160, 8, 60, 10, 14, 12, 26, 14,
	12, 16, 24, 18, 48, 20, 96, 22, 192, 24, 72, 26, 16, 28, 32, 30,
}

// ChannelState holds per-channel state
type ChannelState struct {
	enabled bool
	// halted freezes the length counter (envelope loop / linear counter control)
	halted        bool
	lengthCounter uint8
	period        uint16
}

// APU latches the audio registers and runs length counters off its frame
// sequencer. It produces no samples.
type APU struct {
	registers [registerCount]uint8
	channels  [channelCount]ChannelState

	// Frame sequencer state
	fiveStep     bool
	irqInhibit   bool
	step         int
	ticks        int
	ticksPerStep int

	responder *channel.Responder[Register]
}

// New creates an APU serving register accesses from responder.
func New(responder *channel.Responder[Register], ticksPerStep int) *APU {
	if ticksPerStep <= 0 {
		ticksPerStep = DefaultTicksPerStep
	}
	return &APU{
		ticksPerStep: ticksPerStep,
		responder:    responder,
	}
}

// Run is the APU execution context, one tick per CPU cycle.
func (a *APU) Run(ctx context.Context, pacer timing.Pacer) error {
	defer a.responder.Close()

	pacer.Reset()
	for ctx.Err() == nil {
		a.Tick()
		pacer.Wait(1)
	}

	slog.Debug("APU stopped")
	return nil
}

// Tick services register traffic and advances the frame sequencer.
func (a *APU) Tick() {
	a.responder.Service(a.writeRegister, a.readRegister)

	a.ticks++
	if a.ticks >= a.ticksPerStep {
		a.ticks = 0
		a.updateFrameSequencer()
	}
}

// updateFrameSequencer advances the frame sequencer. Length counters are clocked
// on half frames:
//
//	Mode     Steps  Length clocked on
//	4-step   0-3    1, 3
//	5-step   0-4    1, 4
func (a *APU) updateFrameSequencer() {
	if a.fiveStep {
		a.step = (a.step + 1) % 5
		if a.step == 1 || a.step == 4 {
			a.updateLengthCounters()
		}
		return
	}

	a.step = (a.step + 1) % 4
	if a.step == 1 || a.step == 3 {
		a.updateLengthCounters()
	}
}

func (a *APU) updateLengthCounters() {
	for i := range a.channels {
		ch := &a.channels[i]
		if !ch.halted && ch.lengthCounter > 0 {
			ch.lengthCounter--
		}
	}
}

func (a *APU) loadLength(c Channel, value uint8) {
	ch := &a.channels[c]
	if ch.enabled {
		ch.lengthCounter = lengthTable[value>>3]
	}
}

func (a *APU) writeRegister(cmd channel.Command[Register]) {
	v := cmd.Value
	if cmd.Target < registerCount {
		a.registers[cmd.Target] = v
	}

	switch cmd.Target {
	case Pulse1Envelope:
		a.channels[Pulse1].halted = bit.IsSet(5, v)
	case Pulse2Envelope:
		a.channels[Pulse2].halted = bit.IsSet(5, v)
	case TriangleCounter:
		a.channels[Triangle].halted = bit.IsSet(7, v)
	case NoiseEnvelope:
		a.channels[Noise].halted = bit.IsSet(5, v)

	case Pulse1TimerLow:
		a.setPeriodLow(Pulse1, v)
	case Pulse2TimerLow:
		a.setPeriodLow(Pulse2, v)
	case TriangleTimerLow:
		a.setPeriodLow(Triangle, v)
	case NoisePeriod:
		a.channels[Noise].period = uint16(v & 0x0F)

	case Pulse1TimerHigh:
		a.setPeriodHigh(Pulse1, v)
		a.loadLength(Pulse1, v)
	case Pulse2TimerHigh:
		a.setPeriodHigh(Pulse2, v)
		a.loadLength(Pulse2, v)
	case TriangleTimerHigh:
		a.setPeriodHigh(Triangle, v)
		a.loadLength(Triangle, v)
	case NoiseLength:
		a.loadLength(Noise, v)

	case ChannelStatus:
		for c := Pulse1; c < channelCount; c++ {
			ch := &a.channels[c]
			ch.enabled = bit.IsSet(uint8(c), v)
			if !ch.enabled {
				ch.lengthCounter = 0
			}
		}
	case FrameCounter:
		a.fiveStep = bit.IsSet(7, v)
		a.irqInhibit = bit.IsSet(6, v)
		a.step = 0
		a.ticks = 0
		if a.fiveStep {
			a.updateLengthCounters()
		}
	}
}

func (a *APU) setPeriodLow(c Channel, v uint8) {
	ch := &a.channels[c]
	ch.period = ch.period&0x0700 | uint16(v)
}

func (a *APU) setPeriodHigh(c Channel, v uint8) {
	ch := &a.channels[c]
	ch.period = uint16(v&0x07)<<8 | ch.period&0x00FF
}

// readRegister answers CPU reads. Only the status register is readable, it
// reports which length counters are still running.
func (a *APU) readRegister(r Register) uint8 {
	if r != ChannelStatus {
		return 0
	}

	var v uint8
	for c := Pulse1; c < channelCount; c++ {
		v = bit.SetTo(uint8(c), v, a.channels[c].lengthCounter > 0)
	}
	return v
}

// Length returns the length counter of a channel.
func (a *APU) Length(c Channel) uint8 {
	return a.channels[c].lengthCounter
}

// Period returns the 11 bit timer period latched for a channel.
func (a *APU) Period(c Channel) uint16 {
	return a.channels[c].period
}

// Register returns the last value written to r.
func (a *APU) Register(r Register) uint8 {
	if r >= registerCount {
		return 0
	}
	return a.registers[r]
}
