package config

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/zllovesuki/KeybowManager/system/keypad"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	dir, err := ioutil.TempDir("", "keybow-config")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })

	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, ioutil.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadMissingFile(t *testing.T) {
	os.Unsetenv("DRY_RUN")
	conf, err := Load(filepath.Join(os.TempDir(), "keybow-missing.yaml"))
	require.NoError(t, err)
	require.Equal(t, Default(), conf)
}

func TestLoadOverrides(t *testing.T) {
	os.Unsetenv("DRY_RUN")
	path := writeConfig(t, `
keypad:
  product_id: 4660
  path: "1.1"
output:
  path: /dev/hidg1
  function: /sys/kernel/config/usb_gadget/keybow/functions/hid.usb0
animation:
  step: 5
  frame_interval: 10ms
`)
	conf, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, uint16(keypad.VendorID), conf.Keypad.VendorID)
	require.Equal(t, uint16(4660), conf.Keypad.ProductID)
	require.Equal(t, "1.1", conf.Keypad.Path)
	require.Equal(t, "/dev/hidg1", conf.Output.Path)
	require.Equal(t, "/sys/kernel/config/usb_gadget/keybow/functions/hid.usb0", conf.Output.Function)
	require.EqualValues(t, 5, conf.Animation.Step)

	d, err := conf.FrameInterval()
	require.NoError(t, err)
	require.Equal(t, time.Millisecond*10, d)
	require.False(t, conf.DryRun)
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	path := writeConfig(t, "keymap:\n  - F13\n")
	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadRejectsBadInterval(t *testing.T) {
	path := writeConfig(t, "animation:\n  frame_interval: soon\n")
	_, err := Load(path)
	require.Error(t, err)

	path = writeConfig(t, "animation:\n  frame_interval: -1s\n")
	_, err = Load(path)
	require.Error(t, err)
}

func TestDryRunEnv(t *testing.T) {
	os.Setenv("DRY_RUN", "1")
	defer os.Unsetenv("DRY_RUN")

	conf, err := Load("")
	require.NoError(t, err)
	require.True(t, conf.DryRun)
}
