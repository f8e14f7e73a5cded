package scenario

import (
	"context"
	"fmt"

	"github.com/valerio/go-nessie/nessie/input"
)

func controllerStrobe(context.Context) error {
	c := input.NewController()
	c.SetButton(input.ButtonA, true)
	c.SetButton(input.ButtonStart, true)

	c.Write(1)
	for i := 0; i < 5; i++ {
		if v := c.Read(); v != 1 {
			return fmt.Errorf("strobed read %d returned %d, want button A", i, v)
		}
	}

	c.SetButton(input.ButtonA, false)
	if v := c.Read(); v != 0 {
		return fmt.Errorf("strobed read after releasing A returned %d", v)
	}

	c.Write(0)
	want := []uint8{0, 0, 0, 1, 0, 0, 0, 0, 1, 1}
	for i, w := range want {
		if v := c.Read(); v != w {
			return fmt.Errorf("read %d returned %d, want %d", i, v, w)
		}
	}

	// a new strobe restarts the order
	c.Write(1)
	c.Write(0)
	for i, w := range want[:4] {
		if v := c.Read(); v != w {
			return fmt.Errorf("read %d after restrobe returned %d, want %d", i, v, w)
		}
	}
	return nil
}
