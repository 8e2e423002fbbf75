package config

import (
	"io/ioutil"
	"os"
	"time"

	"github.com/zllovesuki/KeybowManager/controller"
	"github.com/zllovesuki/KeybowManager/system/device"
	"github.com/zllovesuki/KeybowManager/system/keypad"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Keypad selects the keypad hid interface
type Keypad struct {
	VendorID    uint16 `yaml:"vendor_id"`
	ProductID   uint16 `yaml:"product_id"`
	Path        string `yaml:"path"`
	MinFirmware string `yaml:"firmware"`
}

// Output selects where host reports are written
type Output struct {
	Path string `yaml:"path"`
	// Function, when set, is the configfs hid function directory to write the report descriptor to on start
	Function string `yaml:"function"`
}

// Animation tunes the LED loop
type Animation struct {
	Step int64 `yaml:"step"`
	// FrameInterval is a time.ParseDuration string, empty means no sleep
	FrameInterval string `yaml:"frame_interval"`
}

// Log configures log rotation for release builds
type Log struct {
	File       string `yaml:"file"`
	MaxSize    int    `yaml:"max_size"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAge     int    `yaml:"max_age"`
}

// Config contains the runtime settings of the manager. Key bindings are compiled in and never read from here.
type Config struct {
	DryRun    bool      `yaml:"dry_run"`
	Keypad    Keypad    `yaml:"keypad"`
	Output    Output    `yaml:"output"`
	Animation Animation `yaml:"animation"`
	Log       Log       `yaml:"log"`
}

// Default returns the settings used when no file is given
func Default() Config {
	return Config{
		Keypad: Keypad{
			VendorID:    keypad.VendorID,
			ProductID:   keypad.ProductID,
			MinFirmware: keypad.DefaultFirmwareConstraint,
		},
		Output: Output{
			Path: device.DefaultPath,
		},
		Animation: Animation{
			Step: controller.DefaultStep,
		},
		Log: Log{
			File:       "/var/log/keybow-manager.log",
			MaxSize:    5,
			MaxBackups: 3,
			MaxAge:     7,
		},
	}
}

// Load reads path over the defaults. A missing file is not an error.
// A non-empty DRY_RUN environment variable forces dry run.
func Load(path string) (Config, error) {
	conf := Default()
	if path != "" {
		b, err := ioutil.ReadFile(path)
		switch {
		case os.IsNotExist(err):
		case err != nil:
			return Config{}, errors.Wrapf(err, "config: cannot read %s", path)
		default:
			if err := yaml.UnmarshalStrict(b, &conf); err != nil {
				return Config{}, errors.Wrapf(err, "config: cannot parse %s", path)
			}
		}
	}
	if os.Getenv("DRY_RUN") != "" {
		conf.DryRun = true
	}
	if _, err := conf.FrameInterval(); err != nil {
		return Config{}, err
	}
	return conf, nil
}

// FrameInterval parses Animation.FrameInterval
func (c Config) FrameInterval() (time.Duration, error) {
	if c.Animation.FrameInterval == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Animation.FrameInterval)
	if err != nil {
		return 0, errors.Wrap(err, "config: invalid frame_interval")
	}
	if d < 0 {
		return 0, errors.New("config: frame_interval cannot be negative")
	}
	return d, nil
}
