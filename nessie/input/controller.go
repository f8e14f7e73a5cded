package input

// Button is one of the eight standard controller buttons, in shift register order.
type Button uint8

const (
	ButtonA Button = iota
	ButtonB
	ButtonSelect
	ButtonStart
	ButtonUp
	ButtonDown
	ButtonLeft
	ButtonRight
	buttonCount
)

func (b Button) String() string {
	switch b {
	case ButtonA:
		return "A"
	case ButtonB:
		return "B"
	case ButtonSelect:
		return "Select"
	case ButtonStart:
		return "Start"
	case ButtonUp:
		return "Up"
	case ButtonDown:
		return "Down"
	case ButtonLeft:
		return "Left"
	case ButtonRight:
		return "Right"
	default:
		return "unknown"
	}
}

// Event is a button state change sent from a frontend to the controller's owner.
type Event struct {
	Button  Button
	Pressed bool
}

// Controller is a strobe-latched shift register exposing one button per read.
//
// While strobe is high every read returns the state of ButtonA. Once strobe goes
// low, reads walk through the buttons in order; after the eighth read the
// register keeps returning 1, as official controllers do.
type Controller struct {
	buttons [buttonCount]bool
	strobe  bool
	index   uint8
}

func NewController() *Controller {
	return &Controller{}
}

// SetButton updates the pressed state of a button.
func (c *Controller) SetButton(b Button, pressed bool) {
	if b >= buttonCount {
		return
	}
	c.buttons[b] = pressed
}

// Apply applies a button event.
func (c *Controller) Apply(e Event) {
	c.SetButton(e.Button, e.Pressed)
}

// Write latches the strobe bit. Any write restarts the read sequence.
func (c *Controller) Write(value uint8) {
	c.strobe = value&1 == 1
	c.index = 0
}

// Read returns the next button state as bit 0.
func (c *Controller) Read() uint8 {
	if c.strobe {
		return boolToBit(c.buttons[ButtonA])
	}

	if c.index >= uint8(buttonCount) {
		return 1
	}

	value := boolToBit(c.buttons[c.index])
	c.index++
	return value
}

// Strobe reports whether the strobe latch is high.
func (c *Controller) Strobe() bool {
	return c.strobe
}

func boolToBit(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
