package device

import (
	"io"
	"log"

	"github.com/pkg/errors"
)

// DefaultPath is the first HID function of a Linux USB gadget
const DefaultPath = "/dev/hidg0"

type Config struct {
	DryRun bool
	Path   string
}

// Control writes HID input reports to the host through a gadget character device
type Control struct {
	Config
	handle io.WriteCloser
}

func NewControl(conf Config) (*Control, error) {
	if conf.DryRun {
		return &Control{
			Config: conf,
		}, nil
	}
	if len(conf.Path) == 0 {
		return nil, errors.New("device: path cannot be empty")
	}
	h, err := open(conf.Path)
	if err != nil {
		return nil, errors.Wrapf(err, "device: cannot open %s", conf.Path)
	}
	return &Control{
		Config: conf,
		handle: h,
	}, nil
}

func (d *Control) Write(input []byte) (int, error) {
	if d.Config.DryRun {
		log.Printf("[dry run] device: %s write report: %+v\n", d.Config.Path, input)
		return len(input), nil
	}
	n, err := d.handle.Write(input)
	if err != nil {
		return n, errors.Wrapf(err, "device: write to %s", d.Config.Path)
	}
	return n, nil
}

func (d *Control) Close() error {
	if d.handle == nil {
		return nil
	}
	return d.handle.Close()
}
