package keyboard

import (
	"encoding/binary"
	"io"
	"sync"

	"github.com/pkg/errors"
)

// ErrTooManyKeys is returned when a press would exceed the six key slots of a report
var ErrTooManyKeys = errors.New("keyboard: cannot press more than six non-modifier keys")

// Keyboard keeps track of held keys and writes a keyboard input report on every change
type Keyboard struct {
	mu        sync.Mutex
	w         io.Writer
	modifiers uint8
	keys      [maxKeys]Keycode
	report    [keyboardReportLength]byte
}

// NewKeyboard returns a Keyboard writing reports to w
func NewKeyboard(w io.Writer) *Keyboard {
	return &Keyboard{
		w: w,
	}
}

// Press adds the keycodes to the held set and sends a single report
func (k *Keyboard) Press(codes ...Keycode) error {
	if len(codes) == 0 {
		return nil
	}
	k.mu.Lock()
	defer k.mu.Unlock()

	modifiers, keys := k.modifiers, k.keys
	for _, code := range codes {
		if err := k.add(code); err != nil {
			k.modifiers, k.keys = modifiers, keys
			return err
		}
	}
	return k.write()
}

// Release removes the keycodes from the held set and sends a single report
func (k *Keyboard) Release(codes ...Keycode) error {
	if len(codes) == 0 {
		return nil
	}
	k.mu.Lock()
	defer k.mu.Unlock()

	for _, code := range codes {
		k.remove(code)
	}
	return k.write()
}

// ReleaseAll clears every held key and modifier
func (k *Keyboard) ReleaseAll() error {
	k.mu.Lock()
	defer k.mu.Unlock()

	k.modifiers = 0
	k.keys = [maxKeys]Keycode{}
	return k.write()
}

// Send presses the keycodes together then releases everything. Nothing is
// written when no keycode is given.
func (k *Keyboard) Send(codes ...Keycode) error {
	if len(codes) == 0 {
		return nil
	}
	if err := k.Press(codes...); err != nil {
		return err
	}
	return k.ReleaseAll()
}

func (k *Keyboard) add(code Keycode) error {
	if code.IsModifier() {
		k.modifiers |= code.modifierBit()
		return nil
	}
	free := -1
	for i, held := range k.keys {
		if held == code {
			return nil
		}
		if held == 0 && free < 0 {
			free = i
		}
	}
	if free < 0 {
		return ErrTooManyKeys
	}
	k.keys[free] = code
	return nil
}

func (k *Keyboard) remove(code Keycode) {
	if code.IsModifier() {
		k.modifiers &^= code.modifierBit()
		return
	}
	for i, held := range k.keys {
		if held == code {
			k.keys[i] = 0
		}
	}
}

func (k *Keyboard) write() error {
	k.report[0] = ReportIDKeyboard
	k.report[1] = k.modifiers
	k.report[2] = 0x00
	for i, code := range k.keys {
		k.report[3+i] = byte(code)
	}
	if _, err := k.w.Write(k.report[:]); err != nil {
		return errors.Wrap(err, "keyboard: cannot write keyboard report")
	}
	return nil
}

// ConsumerControl sends media key reports
type ConsumerControl struct {
	mu     sync.Mutex
	w      io.Writer
	report [consumerReportLength]byte
}

// NewConsumerControl returns a ConsumerControl writing reports to w
func NewConsumerControl(w io.Writer) *ConsumerControl {
	return &ConsumerControl{
		w: w,
	}
}

// Press holds the consumer code
func (c *ConsumerControl) Press(code ConsumerCode) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.write(code)
}

// Release lets go of the held consumer code
func (c *ConsumerControl) Release() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.write(0)
}

// Send presses and releases the code. A zero code writes nothing.
func (c *ConsumerControl) Send(code ConsumerCode) error {
	if code == 0 {
		return nil
	}
	if err := c.Press(code); err != nil {
		return err
	}
	return c.Release()
}

func (c *ConsumerControl) write(code ConsumerCode) error {
	c.report[0] = ReportIDConsumer
	binary.LittleEndian.PutUint16(c.report[1:], uint16(code))
	if _, err := c.w.Write(c.report[:]); err != nil {
		return errors.Wrap(err, "keyboard: cannot write consumer report")
	}
	return nil
}
