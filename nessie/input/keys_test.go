package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/valerio/go-nessie/nessie/input/action"
)

func TestButtonFor(t *testing.T) {
	tests := []struct {
		act  action.Action
		want Button
	}{
		{action.NESButtonA, ButtonA},
		{action.NESButtonB, ButtonB},
		{action.NESButtonSelect, ButtonSelect},
		{action.NESButtonStart, ButtonStart},
		{action.NESDPadUp, ButtonUp},
		{action.NESDPadDown, ButtonDown},
		{action.NESDPadLeft, ButtonLeft},
		{action.NESDPadRight, ButtonRight},
	}

	for _, tt := range tests {
		got, ok := ButtonFor(tt.act)
		assert.True(t, ok)
		assert.Equal(t, tt.want, got, "action %s", tt.act)
	}

	_, ok := ButtonFor(action.EmulatorQuit)
	assert.False(t, ok)
}

func TestDefaultMapping(t *testing.T) {
	act, ok := GetDefaultMapping("Enter")
	assert.True(t, ok)
	assert.Equal(t, action.NESButtonStart, act)

	_, ok = GetDefaultMapping("F7")
	assert.False(t, ok)
}
