package keyboard

// Keycode is a usage id on the HID Keyboard/Keypad page (0x07)
type Keycode uint8

// Define key codes
const (
	A Keycode = 0x04
	B Keycode = 0x05
	C Keycode = 0x06
	D Keycode = 0x07
	E Keycode = 0x08
	F Keycode = 0x09
	G Keycode = 0x0a
	H Keycode = 0x0b
	I Keycode = 0x0c
	J Keycode = 0x0d
	K Keycode = 0x0e
	L Keycode = 0x0f
	M Keycode = 0x10
	N Keycode = 0x11
	O Keycode = 0x12
	P Keycode = 0x13
	Q Keycode = 0x14
	R Keycode = 0x15
	S Keycode = 0x16
	T Keycode = 0x17
	U Keycode = 0x18
	V Keycode = 0x19
	W Keycode = 0x1a
	X Keycode = 0x1b
	Y Keycode = 0x1c
	Z Keycode = 0x1d

	One   Keycode = 0x1e
	Two   Keycode = 0x1f
	Three Keycode = 0x20
	Four  Keycode = 0x21
	Five  Keycode = 0x22
	Six   Keycode = 0x23
	Seven Keycode = 0x24
	Eight Keycode = 0x25
	Nine  Keycode = 0x26
	Zero  Keycode = 0x27

	Enter     Keycode = 0x28
	Escape    Keycode = 0x29
	Backspace Keycode = 0x2a
	Tab       Keycode = 0x2b
	Space     Keycode = 0x2c
	Minus     Keycode = 0x2d
	Equals    Keycode = 0x2e

	CapsLock Keycode = 0x39

	F1  Keycode = 0x3a
	F2  Keycode = 0x3b
	F3  Keycode = 0x3c
	F4  Keycode = 0x3d
	F5  Keycode = 0x3e
	F6  Keycode = 0x3f
	F7  Keycode = 0x40
	F8  Keycode = 0x41
	F9  Keycode = 0x42
	F10 Keycode = 0x43
	F11 Keycode = 0x44
	F12 Keycode = 0x45

	PrintScreen Keycode = 0x46
	ScrollLock  Keycode = 0x47
	Pause       Keycode = 0x48
	Insert      Keycode = 0x49
	Home        Keycode = 0x4a
	PageUp      Keycode = 0x4b
	Delete      Keycode = 0x4c
	End         Keycode = 0x4d
	PageDown    Keycode = 0x4e

	RightArrow Keycode = 0x4f
	LeftArrow  Keycode = 0x50
	DownArrow  Keycode = 0x51
	UpArrow    Keycode = 0x52

	Application Keycode = 0x65

	F13 Keycode = 0x68
	F14 Keycode = 0x69
	F15 Keycode = 0x6a
	F16 Keycode = 0x6b
	F17 Keycode = 0x6c
	F18 Keycode = 0x6d
	F19 Keycode = 0x6e
	F20 Keycode = 0x6f
	F21 Keycode = 0x70
	F22 Keycode = 0x71
	F23 Keycode = 0x72
	F24 Keycode = 0x73

	LeftControl  Keycode = 0xe0
	LeftShift    Keycode = 0xe1
	LeftAlt      Keycode = 0xe2
	LeftGUI      Keycode = 0xe3
	RightControl Keycode = 0xe4
	RightShift   Keycode = 0xe5
	RightAlt     Keycode = 0xe6
	RightGUI     Keycode = 0xe7

	Control = LeftControl
	Shift   = LeftShift
	Alt     = LeftAlt
	GUI     = LeftGUI
	Windows = LeftGUI
	Command = LeftGUI
)

// IsModifier reports whether the keycode lives in the modifier byte of a report
func (k Keycode) IsModifier() bool {
	return k >= LeftControl && k <= RightGUI
}

func (k Keycode) modifierBit() uint8 {
	return 1 << (k - LeftControl)
}

// ConsumerCode is a usage id on the HID Consumer page (0x0c)
type ConsumerCode uint16

// Define consumer control codes
const (
	BrightnessIncrement ConsumerCode = 0x6f
	BrightnessDecrement ConsumerCode = 0x70
	Record              ConsumerCode = 0xb2
	FastForward         ConsumerCode = 0xb3
	Rewind              ConsumerCode = 0xb4
	ScanNextTrack       ConsumerCode = 0xb5
	ScanPreviousTrack   ConsumerCode = 0xb6
	Stop                ConsumerCode = 0xb7
	Eject               ConsumerCode = 0xb8
	PlayPause           ConsumerCode = 0xcd
	Mute                ConsumerCode = 0xe2
	VolumeIncrement     ConsumerCode = 0xe9
	VolumeDecrement     ConsumerCode = 0xea
)

// Report IDs of the composite descriptor
const (
	ReportIDKeyboard = 0x01
	ReportIDConsumer = 0x02
)

const (
	keyboardReportLength = 9
	consumerReportLength = 3
	maxKeys              = 6
)

// ReportDescriptor describes the keyboard (ID 1) and consumer control (ID 2)
// collections. device.ConfigureFunction writes it to the gadget's report_desc.
var ReportDescriptor = []byte{
	0x05, 0x01, // Usage Page (Generic Desktop)
	0x09, 0x06, // Usage (Keyboard)
	0xa1, 0x01, // Collection (Application)
	0x85, ReportIDKeyboard, //   Report ID (1)
	0x05, 0x07, //   Usage Page (Key Codes)
	0x19, 0xe0, //   Usage Minimum (224)
	0x29, 0xe7, //   Usage Maximum (231)
	0x15, 0x00, //   Logical Minimum (0)
	0x25, 0x01, //   Logical Maximum (1)
	0x75, 0x01, //   Report Size (1)
	0x95, 0x08, //   Report Count (8)
	0x81, 0x02, //   Input (Data, Variable, Absolute) - Modifier byte
	0x95, 0x01, //   Report Count (1)
	0x75, 0x08, //   Report Size (8)
	0x81, 0x01, //   Input (Constant) - Reserved byte
	0x95, 0x06, //   Report Count (6)
	0x75, 0x08, //   Report Size (8)
	0x15, 0x00, //   Logical Minimum (0)
	0x26, 0xff, 0x00, //   Logical Maximum (255)
	0x05, 0x07, //   Usage Page (Key Codes)
	0x19, 0x00, //   Usage Minimum (0)
	0x29, 0xff, //   Usage Maximum (255)
	0x81, 0x00, //   Input (Data, Array) - Key array (6 keys)
	0xc0,       // End Collection
	0x05, 0x0c, // Usage Page (Consumer)
	0x09, 0x01, // Usage (Consumer Control)
	0xa1, 0x01, // Collection (Application)
	0x85, ReportIDConsumer, //   Report ID (2)
	0x75, 0x10, //   Report Size (16)
	0x95, 0x01, //   Report Count (1)
	0x15, 0x01, //   Logical Minimum (1)
	0x26, 0x9c, 0x02, //   Logical Maximum (668)
	0x19, 0x01, //   Usage Minimum (1)
	0x2a, 0x9c, 0x02, //   Usage Maximum (668)
	0x81, 0x00, //   Input (Data, Array)
	0xc0, // End Collection
}
