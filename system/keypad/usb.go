package keypad

import (
	"context"
	"encoding/binary"
	"log"
	"strings"
	"sync"

	"github.com/karalabe/usb"
	"github.com/pkg/errors"
)

// Defines the vendorID/productID of the keypad (pid.codes Keybow 2040)
const (
	VendorID  = 0x16d0
	ProductID = 0x08c6
)

const (
	stateReportID   = 0x01
	stateReportSize = 3
	ledReportID     = 0x02
	ledReportSize   = 1 + NumKeys*3
)

// USBConfig selects which HID interface of the keypad to open
type USBConfig struct {
	VendorID  uint16
	ProductID uint16
	// Path, when not empty, must be contained in the HID path of the interface
	// (e.g. "mi_01" on Windows or "1.1" on Linux)
	Path string
}

// USBDevice talks to the keypad over a vendor HID interface. Key state arrives
// as input reports read in the background; LED frames go out as output reports.
type USBDevice struct {
	info usb.DeviceInfo
	dev  usb.Device

	mu      sync.Mutex
	state   uint16
	readErr error
	frame   [ledReportSize]byte
}

var _ Device = &USBDevice{}

// OpenUSB finds the keypad interface and starts reading its state reports until haltCtx is done
func OpenUSB(haltCtx context.Context, conf USBConfig) (*USBDevice, error) {
	if conf.VendorID == 0 {
		conf.VendorID = VendorID
	}
	if conf.ProductID == 0 {
		conf.ProductID = ProductID
	}
	if !usb.Supported() {
		return nil, errors.New("[keypad] usb is not supported on this platform")
	}

	devices, err := usb.EnumerateHid(conf.VendorID, conf.ProductID)
	if err != nil {
		return nil, errors.Wrap(err, "[keypad] cannot enumerate hid devices")
	}

	var found *usb.DeviceInfo
	for i := range devices {
		if conf.Path != "" && !strings.Contains(devices[i].Path, conf.Path) {
			continue
		}
		found = &devices[i]
		break
	}
	if found == nil {
		return nil, errors.Errorf("[keypad] no device found for %04x:%04x", conf.VendorID, conf.ProductID)
	}

	dev, err := found.Open()
	if err != nil {
		return nil, errors.Wrapf(err, "[keypad] cannot open %s", found.Path)
	}
	log.Printf("[keypad] opened %s %s (release %#04x)\n", found.Manufacturer, found.Product, found.Release)

	d := &USBDevice{
		info: *found,
		dev:  dev,
	}
	d.frame[0] = ledReportID
	go d.read(haltCtx)

	return d, nil
}

// Info returns the hid information of the opened interface
func (d *USBDevice) Info() usb.DeviceInfo {
	return d.info
}

func (d *USBDevice) read(haltCtx context.Context) {
	for {
		select {
		case <-haltCtx.Done():
			return
		default:
		}
		buf := make([]byte, stateReportSize)
		buf[0] = stateReportID
		n, err := d.dev.Read(buf)
		if err != nil {
			d.mu.Lock()
			d.readErr = err
			d.mu.Unlock()
			return
		}
		if n < stateReportSize || buf[0] != stateReportID {
			continue
		}
		d.mu.Lock()
		d.state = binary.LittleEndian.Uint16(buf[1:])
		d.mu.Unlock()
	}
}

// State satisfies Device. A failed background read is reported here.
func (d *USBDevice) State() (uint16, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.readErr != nil {
		return 0, errors.Wrap(d.readErr, "[keypad] read failed")
	}
	return d.state, nil
}

// Show satisfies Device
func (d *USBDevice) Show(leds [NumKeys]Color) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, c := range leds {
		d.frame[1+i*3] = c.R
		d.frame[2+i*3] = c.G
		d.frame[3+i*3] = c.B
	}
	_, err := d.dev.Write(d.frame[:])
	return err
}

// Close satisfies Device
func (d *USBDevice) Close() error {
	return d.dev.Close()
}
