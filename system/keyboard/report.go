package keyboard

import (
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Report is a decoded keyboard or consumer input report
type Report struct {
	ID        byte
	Modifiers uint8
	Keys      []Keycode
	Usage     ConsumerCode
}

// ParseReport decodes a report previously written by Keyboard or ConsumerControl
func ParseReport(buf []byte) (Report, error) {
	if len(buf) == 0 {
		return Report{}, errors.New("keyboard: empty report")
	}
	r := Report{ID: buf[0]}
	switch buf[0] {
	case ReportIDKeyboard:
		if len(buf) != keyboardReportLength {
			return Report{}, errors.Errorf("keyboard: keyboard report must be %d bytes, got %d", keyboardReportLength, len(buf))
		}
		r.Modifiers = buf[1]
		for _, b := range buf[3:] {
			if b != 0 {
				r.Keys = append(r.Keys, Keycode(b))
			}
		}
	case ReportIDConsumer:
		if len(buf) != consumerReportLength {
			return Report{}, errors.Errorf("keyboard: consumer report must be %d bytes, got %d", consumerReportLength, len(buf))
		}
		r.Usage = ConsumerCode(binary.LittleEndian.Uint16(buf[1:]))
	default:
		return Report{}, errors.Errorf("keyboard: unknown report id %#02x", buf[0])
	}
	return r, nil
}

// Held returns the modifiers and keys of a keyboard report as keycodes, modifiers first
func (r Report) Held() []Keycode {
	held := make([]Keycode, 0, 8+len(r.Keys))
	for i := 0; i < 8; i++ {
		if r.Modifiers&(1<<i) != 0 {
			held = append(held, LeftControl+Keycode(i))
		}
	}
	return append(held, r.Keys...)
}

func (r Report) String() string {
	switch r.ID {
	case ReportIDKeyboard:
		held := r.Held()
		if len(held) == 0 {
			return "keyboard: (none)"
		}
		names := make([]string, 0, len(held))
		for _, k := range held {
			names = append(names, k.String())
		}
		return "keyboard: " + strings.Join(names, "+")
	case ReportIDConsumer:
		if r.Usage == 0 {
			return "consumer: (none)"
		}
		return "consumer: " + r.Usage.String()
	default:
		return fmt.Sprintf("report %#02x", r.ID)
	}
}

var modifierNames = [...]string{
	"LeftControl", "LeftShift", "LeftAlt", "LeftGUI",
	"RightControl", "RightShift", "RightAlt", "RightGUI",
}

var keyNames = map[Keycode]string{
	Enter:       "Enter",
	Escape:      "Escape",
	Backspace:   "Backspace",
	Tab:         "Tab",
	Space:       "Space",
	Minus:       "Minus",
	Equals:      "Equals",
	CapsLock:    "CapsLock",
	PrintScreen: "PrintScreen",
	ScrollLock:  "ScrollLock",
	Pause:       "Pause",
	Insert:      "Insert",
	Home:        "Home",
	PageUp:      "PageUp",
	Delete:      "Delete",
	End:         "End",
	PageDown:    "PageDown",
	RightArrow:  "RightArrow",
	LeftArrow:   "LeftArrow",
	DownArrow:   "DownArrow",
	UpArrow:     "UpArrow",
	Application: "Application",
}

func (k Keycode) String() string {
	switch {
	case k.IsModifier():
		return modifierNames[k-LeftControl]
	case k >= A && k <= Z:
		return string(rune('A' + (k - A)))
	case k >= One && k <= Nine:
		return string(rune('1' + (k - One)))
	case k == Zero:
		return "0"
	case k >= F1 && k <= F12:
		return fmt.Sprintf("F%d", k-F1+1)
	case k >= F13 && k <= F24:
		return fmt.Sprintf("F%d", k-F13+13)
	}
	if name, ok := keyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Keycode(%#02x)", uint8(k))
}

var consumerNames = map[ConsumerCode]string{
	BrightnessIncrement: "BrightnessIncrement",
	BrightnessDecrement: "BrightnessDecrement",
	Record:              "Record",
	FastForward:         "FastForward",
	Rewind:              "Rewind",
	ScanNextTrack:       "ScanNextTrack",
	ScanPreviousTrack:   "ScanPreviousTrack",
	Stop:                "Stop",
	Eject:               "Eject",
	PlayPause:           "PlayPause",
	Mute:                "Mute",
	VolumeIncrement:     "VolumeIncrement",
	VolumeDecrement:     "VolumeDecrement",
}

func (c ConsumerCode) String() string {
	if name, ok := consumerNames[c]; ok {
		return name
	}
	return fmt.Sprintf("ConsumerCode(%#04x)", uint16(c))
}
