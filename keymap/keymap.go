package keymap

import (
	"fmt"
	"strings"

	"github.com/zllovesuki/KeybowManager/system/keyboard"
	"github.com/zllovesuki/KeybowManager/system/keypad"

	"github.com/pkg/errors"
)

// Kind tells which variant of Action is in use
type Kind int

// Action variants
const (
	KindKey Kind = iota
	KindMedia
	KindChord
)

func (k Kind) String() string {
	return [...]string{"Key", "Media", "Chord"}[k]
}

// maxChordLength is 6 key slots plus the 8 modifiers of a keyboard report
const maxChordLength = 14

// Action is what a key press produces
type Action struct {
	Kind  Kind
	Label string

	key   keyboard.Keycode
	media keyboard.ConsumerCode
	chord []keyboard.Keycode
}

// Key is a single keycode sent as a keyboard report
func Key(label string, code keyboard.Keycode) Action {
	return Action{
		Kind:  KindKey,
		Label: label,
		key:   code,
	}
}

// Media is a single consumer control code sent as a media report
func Media(label string, code keyboard.ConsumerCode) Action {
	return Action{
		Kind:  KindMedia,
		Label: label,
		media: code,
	}
}

// Chord is pressed in the given order and released in reverse
func Chord(label string, codes ...keyboard.Keycode) Action {
	c := make([]keyboard.Keycode, len(codes))
	copy(c, codes)
	return Action{
		Kind:  KindChord,
		Label: label,
		chord: c,
	}
}

// Keycodes returns the keyboard codes of the action; nil for Media
func (a Action) Keycodes() []keyboard.Keycode {
	switch a.Kind {
	case KindKey:
		return []keyboard.Keycode{a.key}
	case KindChord:
		c := make([]keyboard.Keycode, len(a.chord))
		copy(c, a.chord)
		return c
	default:
		return nil
	}
}

// Usage returns the consumer code of the action; zero unless Media
func (a Action) Usage() keyboard.ConsumerCode {
	if a.Kind == KindMedia {
		return a.media
	}
	return 0
}

func (a Action) String() string {
	var target string
	switch a.Kind {
	case KindMedia:
		target = a.media.String()
	default:
		names := make([]string, 0, len(a.Keycodes()))
		for _, k := range a.Keycodes() {
			names = append(names, k.String())
		}
		target = strings.Join(names, "+")
	}
	if a.Label == "" {
		return fmt.Sprintf("%s(%s)", a.Kind, target)
	}
	return fmt.Sprintf("%s: %s(%s)", a.Label, a.Kind, target)
}

func (a Action) validate() error {
	switch a.Kind {
	case KindKey:
		if a.key == 0 {
			return errors.New("key action without keycode")
		}
	case KindMedia:
		if a.media == 0 {
			return errors.New("media action without consumer code")
		}
	case KindChord:
		if len(a.chord) == 0 {
			return errors.New("chord without keycodes")
		}
		if len(a.chord) > maxChordLength {
			return errors.Errorf("chord of %d keycodes does not fit in a report", len(a.chord))
		}
		regular := 0
		for _, k := range a.chord {
			if k == 0 {
				return errors.New("chord contains an empty keycode")
			}
			if !k.IsModifier() {
				regular++
			}
		}
		if regular > 6 {
			return errors.Errorf("chord holds %d non-modifier keys, at most 6 fit in a report", regular)
		}
	default:
		return errors.Errorf("unknown action kind %d", a.Kind)
	}
	return nil
}

// Keymap binds an Action to every key index
type Keymap [keypad.NumKeys]Action

// Action returns the action bound to key i
func (m Keymap) Action(i int) (Action, error) {
	if i < 0 || i >= len(m) {
		return Action{}, errors.Errorf("[keymap] key index %d out of range", i)
	}
	return m[i], nil
}

// Validate checks that every action can be sent
func (m Keymap) Validate() error {
	for i, a := range m {
		if err := a.validate(); err != nil {
			return errors.Wrapf(err, "[keymap] key %d", i)
		}
	}
	return nil
}

// Default returns the built-in keymap, laid out as:
//
//	 0 Windows    1 Prev       2 Prev Tab   3 F13
//	 4 Copy       5 Play       6 Next Tab   7 F14
//	 8 Paste      9 Next      10 Snip      11 Snap Left
//	12 Menu      13 Vol-      14 Vol+      15 Snap Right
func Default() Keymap {
	return Keymap{
		Key("Windows Key", keyboard.LeftGUI),
		Media("Previous Track", keyboard.ScanPreviousTrack),
		Chord("Previous Browser Tab", keyboard.Control, keyboard.Shift, keyboard.Tab),
		Key("Zoom Video Toggle", keyboard.F13),
		Chord("Copy", keyboard.Control, keyboard.C),
		Media("Play/Pause", keyboard.PlayPause),
		Chord("Next Browser Tab", keyboard.Control, keyboard.Tab),
		Key("Zoom Audio Toggle", keyboard.F14),
		Chord("Paste", keyboard.Control, keyboard.V),
		Media("Next Track", keyboard.ScanNextTrack),
		Chord("Snipping Tool", keyboard.Windows, keyboard.Shift, keyboard.S),
		Chord("Snap Window Left", keyboard.Windows, keyboard.LeftArrow),
		Key("Context Menu", keyboard.Application),
		Media("Volume Down", keyboard.VolumeDecrement),
		Media("Volume Up", keyboard.VolumeIncrement),
		Chord("Snap Window Right", keyboard.Windows, keyboard.RightArrow),
	}
}
