package keypad

import (
	"fmt"

	"github.com/pkg/errors"
)

// NumKeys is the number of keys on the 4x4 matrix
const NumKeys = 16

// Color is a per-key LED color
type Color struct {
	R, G, B uint8
}

// Common colors
var (
	Off   = Color{}
	White = Color{R: 255, G: 255, B: 255}
)

func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Device is the transport to the keypad hardware
type Device interface {
	// State should return the latest snapshot of pressed keys, bit i being key i
	State() (uint16, error)
	// Show should push a full LED frame to the keys
	Show(leds [NumKeys]Color) error
	// Close should release the underlying handle
	Close() error
}

// Handler is invoked on a press or release transition of a key
type Handler func(k *Key) error

// Key is one physical key of the keypad
type Key struct {
	number  int
	pressed bool
	led     Color
	pad     *Keypad
}

// Number returns the index of the key, 0-15
func (k *Key) Number() int {
	return k.number
}

// Pressed reports whether the key was held at the last Update
func (k *Key) Pressed() bool {
	return k.pressed
}

// LED returns the color last set on the key
func (k *Key) LED() Color {
	return k.led
}

// SetLED changes the key color. The color is sent to the device on the next Update.
func (k *Key) SetLED(c Color) {
	if k.led == c {
		return
	}
	k.led = c
	k.pad.dirty = true
}

// Keypad polls a Device, keeps per-key state and fires press/release handlers
type Keypad struct {
	dev       Device
	keys      [NumKeys]*Key
	onPress   [NumKeys]Handler
	onRelease [NumKeys]Handler
	dirty     bool
}

// New returns a Keypad backed by dev
func New(dev Device) *Keypad {
	p := &Keypad{
		dev:   dev,
		dirty: true,
	}
	for i := range p.keys {
		p.keys[i] = &Key{
			number: i,
			pad:    p,
		}
	}
	return p
}

// Keys returns every key in index order
func (p *Keypad) Keys() []*Key {
	return p.keys[:]
}

// Key returns the key at index i. It panics if i is out of range.
func (p *Keypad) Key(i int) *Key {
	return p.keys[i]
}

// OnPress registers the handler fired when key i goes down
func (p *Keypad) OnPress(i int, h Handler) {
	p.onPress[i] = h
}

// OnRelease registers the handler fired when key i goes up
func (p *Keypad) OnRelease(i int, h Handler) {
	p.onRelease[i] = h
}

// Update reads the device state, fires the handlers of every key that changed
// in ascending index order, then pushes the LED frame if any color changed.
func (p *Keypad) Update() error {
	state, err := p.dev.State()
	if err != nil {
		return errors.Wrap(err, "[keypad] cannot read key state")
	}

	for i, k := range p.keys {
		pressed := state&(1<<uint(i)) != 0
		if pressed == k.pressed {
			continue
		}
		k.pressed = pressed

		h := p.onRelease[i]
		if pressed {
			h = p.onPress[i]
		}
		if h == nil {
			continue
		}
		if err := h(k); err != nil {
			return err
		}
	}

	return p.flush()
}

func (p *Keypad) flush() error {
	if !p.dirty {
		return nil
	}
	var frame [NumKeys]Color
	for i, k := range p.keys {
		frame[i] = k.led
	}
	if err := p.dev.Show(frame); err != nil {
		return errors.Wrap(err, "[keypad] cannot show led frame")
	}
	p.dirty = false
	return nil
}

// Close closes the underlying device
func (p *Keypad) Close() error {
	return p.dev.Close()
}

// NopDevice never reports a pressed key and discards LED frames
type NopDevice struct{}

var _ Device = NopDevice{}

// State satisfies Device
func (NopDevice) State() (uint16, error) { return 0, nil }

// Show satisfies Device
func (NopDevice) Show([NumKeys]Color) error { return nil }

// Close satisfies Device
func (NopDevice) Close() error { return nil }
