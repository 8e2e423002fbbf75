package device

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/zllovesuki/KeybowManager/system/keyboard"

	"github.com/stretchr/testify/require"
)

func TestConfigureFunction(t *testing.T) {
	dir, err := ioutil.TempDir("", "keybow-gadget")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	require.NoError(t, ConfigureFunction(dir))

	desc, err := ioutil.ReadFile(filepath.Join(dir, "report_desc"))
	require.NoError(t, err)
	require.Equal(t, keyboard.ReportDescriptor, desc)

	length, err := ioutil.ReadFile(filepath.Join(dir, "report_length"))
	require.NoError(t, err)
	require.Equal(t, "9", string(length))

	protocol, err := ioutil.ReadFile(filepath.Join(dir, "protocol"))
	require.NoError(t, err)
	require.Equal(t, "1", string(protocol))
}

func TestConfigureFunctionMissingDir(t *testing.T) {
	err := ConfigureFunction(filepath.Join(os.TempDir(), "keybow-does-not-exist", "hid.usb0"))
	require.Error(t, err)
}
