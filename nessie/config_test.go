package nessie

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"unpaced", func(c *Config) { c.CPULag, c.PPULag = 0, 0 }, false},
		{"negative cpu lag", func(c *Config) { c.CPULag = -1 }, true},
		{"negative ppu lag", func(c *Config) { c.PPULag = -0.5 }, true},
		{"zero scanline cycles", func(c *Config) { c.ScanlineCycles = 0 }, true},
		{"zero apu step", func(c *Config) { c.APUStepCycles = 0 }, true},
		{"negative frames", func(c *Config) { c.Frames = -1 }, true},
		{"negative snapshot interval", func(c *Config) { c.SnapshotInterval = -1 }, true},
		{"headless without frames", func(c *Config) { c.Headless = true }, true},
		{"headless with frames", func(c *Config) { c.Headless, c.Frames = true, 10 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestScale(t *testing.T) {
	assert.Equal(t, int64(0), int64(scale(1000, 0)))
	assert.Equal(t, int64(1500), int64(scale(1000, 1.5)))
}
