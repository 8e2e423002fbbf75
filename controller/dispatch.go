package controller

import (
	"log"

	"github.com/zllovesuki/KeybowManager/keymap"
	kb "github.com/zllovesuki/KeybowManager/system/keyboard"
	"github.com/zllovesuki/KeybowManager/system/keypad"

	"github.com/pkg/errors"
)

// Keyboard sends keyboard reports to the host
type Keyboard interface {
	Press(codes ...kb.Keycode) error
	Release(codes ...kb.Keycode) error
	ReleaseAll() error
	Send(codes ...kb.Keycode) error
}

// ConsumerControl sends media reports to the host
type ConsumerControl interface {
	Send(code kb.ConsumerCode) error
}

var (
	_ Keyboard        = &kb.Keyboard{}
	_ ConsumerControl = &kb.ConsumerControl{}
)

// Dispatcher translates key transitions into HID reports
type Dispatcher struct {
	Keymap   keymap.Keymap
	Keyboard Keyboard
	Consumer ConsumerControl
	// Idle returns the color a released key goes back to
	Idle func(i int) keypad.Color
}

// Press lights the key white and sends its action
func (d *Dispatcher) Press(k *keypad.Key) error {
	action, err := d.Keymap.Action(k.Number())
	if err != nil {
		return err
	}
	k.SetLED(keypad.White)

	log.Printf("[controller] key %d pressed: %s\n", k.Number(), action)

	switch action.Kind {
	case keymap.KindChord:
		return d.chord(action.Keycodes())
	default:
		// single codes go out on both report kinds; the one that does not
		// apply carries no code and is dropped by the writer
		if err := d.Keyboard.Send(action.Keycodes()...); err != nil {
			return errors.Wrapf(err, "[controller] cannot send key %d", k.Number())
		}
		if err := d.Consumer.Send(action.Usage()); err != nil {
			return errors.Wrapf(err, "[controller] cannot send media key %d", k.Number())
		}
		return nil
	}
}

func (d *Dispatcher) chord(codes []kb.Keycode) error {
	for _, code := range codes {
		if err := d.Keyboard.Press(code); err != nil {
			return errors.Wrapf(err, "[controller] cannot press %s", code)
		}
	}
	for i := len(codes) - 1; i >= 0; i-- {
		if err := d.Keyboard.Release(codes[i]); err != nil {
			return errors.Wrapf(err, "[controller] cannot release %s", codes[i])
		}
	}
	return nil
}

// Release lets go of every held key, whichever key went up, and restores its color
func (d *Dispatcher) Release(k *keypad.Key) error {
	if err := d.Keyboard.ReleaseAll(); err != nil {
		return errors.Wrap(err, "[controller] cannot release all keys")
	}
	if d.Idle != nil {
		k.SetLED(d.Idle(k.Number()))
	}
	return nil
}
