package device

import (
	"io/ioutil"
	"path/filepath"
	"strconv"

	"github.com/zllovesuki/KeybowManager/system/keyboard"

	"github.com/pkg/errors"
)

// GadgetReportLength is the longest input report the keyboard function sends
const GadgetReportLength = 9

// ConfigureFunction fills in a configfs hid function directory
// (e.g. /sys/kernel/config/usb_gadget/keybow/functions/hid.usb0) with the
// composite keyboard/consumer descriptor. The gadget must not be bound to a UDC yet.
func ConfigureFunction(dir string) error {
	attrs := []struct {
		name  string
		value []byte
	}{
		{"protocol", []byte("1")},
		{"subclass", []byte("1")},
		{"report_length", []byte(strconv.Itoa(GadgetReportLength))},
		{"report_desc", keyboard.ReportDescriptor},
	}
	for _, attr := range attrs {
		path := filepath.Join(dir, attr.name)
		if err := ioutil.WriteFile(path, attr.value, 0644); err != nil {
			return errors.Wrapf(err, "device: cannot write %s", path)
		}
	}
	return nil
}
