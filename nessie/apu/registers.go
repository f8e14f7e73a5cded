package apu

import "github.com/valerio/go-nessie/nessie/addr"

// Register identifies an APU-side target reachable from the CPU bus.
type Register uint8

const (
	Pulse1Envelope Register = iota
	Pulse1Sweep
	Pulse1TimerLow
	Pulse1TimerHigh
	Pulse2Envelope
	Pulse2Sweep
	Pulse2TimerLow
	Pulse2TimerHigh
	TriangleCounter
	triangleUnused
	TriangleTimerLow
	TriangleTimerHigh
	NoiseEnvelope
	noiseUnused
	NoisePeriod
	NoiseLength
	DMCFlags
	DMCLoad
	DMCAddress
	DMCLength
	oamDMAUnused
	// ChannelStatus is SNDCHN: writes enable channels, reads report length counters.
	ChannelStatus
	joy1Unused
	// FrameCounter is the write side of 0x4017.
	FrameCounter
	registerCount
)

var registerNames = [registerCount]string{
	Pulse1Envelope:    "SQ1_VOL",
	Pulse1Sweep:       "SQ1_SWEEP",
	Pulse1TimerLow:    "SQ1_LO",
	Pulse1TimerHigh:   "SQ1_HI",
	Pulse2Envelope:    "SQ2_VOL",
	Pulse2Sweep:       "SQ2_SWEEP",
	Pulse2TimerLow:    "SQ2_LO",
	Pulse2TimerHigh:   "SQ2_HI",
	TriangleCounter:   "TRI_LINEAR",
	TriangleTimerLow:  "TRI_LO",
	TriangleTimerHigh: "TRI_HI",
	NoiseEnvelope:     "NOISE_VOL",
	NoisePeriod:       "NOISE_LO",
	NoiseLength:       "NOISE_HI",
	DMCFlags:          "DMC_FREQ",
	DMCLoad:           "DMC_RAW",
	DMCAddress:        "DMC_START",
	DMCLength:         "DMC_LEN",
	ChannelStatus:     "SND_CHN",
	FrameCounter:      "FRAME_CNT",
}

func (r Register) String() string {
	if r < registerCount && registerNames[r] != "" {
		return registerNames[r]
	}
	return "unknown"
}

// RegisterFor maps an I/O window address to the APU target it reaches.
// OAMDMA and JOY1 belong to the PPU side and are rejected.
func RegisterFor(address uint16) (Register, bool) {
	if address < addr.IOStart || address > addr.JOY2 {
		return 0, false
	}
	r := Register(address - addr.IOStart)
	if registerNames[r] == "" {
		return 0, false
	}
	return r, true
}
