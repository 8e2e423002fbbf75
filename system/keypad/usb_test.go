package keypad

import (
	"context"
	"errors"
	"testing"

	"github.com/karalabe/usb"
	"github.com/stretchr/testify/require"
)

// fakeHid replays input reports, then fails every read
type fakeHid struct {
	reports [][]byte
	readErr error
	written [][]byte
	closed  bool
}

var _ usb.Device = &fakeHid{}

func (f *fakeHid) Read(b []byte) (int, error) {
	if len(f.reports) == 0 {
		return 0, f.readErr
	}
	r := f.reports[0]
	f.reports = f.reports[1:]
	return copy(b, r), nil
}

func (f *fakeHid) Write(b []byte) (int, error) {
	buf := make([]byte, len(b))
	copy(buf, b)
	f.written = append(f.written, buf)
	return len(b), nil
}

func (f *fakeHid) Close() error {
	f.closed = true
	return nil
}

func newUSBDevice(hid *fakeHid) *USBDevice {
	d := &USBDevice{dev: hid}
	d.frame[0] = ledReportID
	return d
}

func TestUSBStateReport(t *testing.T) {
	hid := &fakeHid{
		reports: [][]byte{
			{0x01, 0x10, 0x80},
		},
		readErr: errors.New("gone"),
	}
	d := newUSBDevice(hid)
	d.read(context.Background())

	d.readErr = nil
	state, err := d.State()
	require.NoError(t, err)
	require.Equal(t, uint16(0x8010), state)

	dev := &fakeDevice{state: state}
	pad := New(dev)
	require.NoError(t, pad.Update())
	for i, k := range pad.Keys() {
		require.Equal(t, i == 4 || i == 15, k.Pressed(), "key %d", i)
	}
}

func TestUSBSkipsMalformedReports(t *testing.T) {
	hid := &fakeHid{
		reports: [][]byte{
			{0x01, 0x01, 0x00},
			{0x01, 0xff},
			{0x03, 0xff, 0xff},
		},
		readErr: errors.New("gone"),
	}
	d := newUSBDevice(hid)
	d.read(context.Background())

	d.readErr = nil
	state, err := d.State()
	require.NoError(t, err)
	require.Equal(t, uint16(0x0001), state)
}

func TestUSBReadErrorReportedByState(t *testing.T) {
	hid := &fakeHid{
		readErr: errors.New("gone"),
	}
	d := newUSBDevice(hid)
	d.read(context.Background())

	_, err := d.State()
	require.Error(t, err)
	require.Equal(t, "[keypad] read failed: gone", err.Error())
}

func TestUSBReadStopsOnCancel(t *testing.T) {
	hid := &fakeHid{
		reports: [][]byte{
			{0x01, 0x01, 0x00},
		},
	}
	d := newUSBDevice(hid)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	d.read(ctx)

	state, err := d.State()
	require.NoError(t, err)
	require.Zero(t, state)
	require.Len(t, hid.reports, 1)
}

func TestUSBShowFrame(t *testing.T) {
	hid := &fakeHid{}
	d := newUSBDevice(hid)

	var leds [NumKeys]Color
	leds[0] = Color{R: 1, G: 2, B: 3}
	leds[15] = White
	require.NoError(t, d.Show(leds))

	require.Len(t, hid.written, 1)
	frame := hid.written[0]
	require.Len(t, frame, 49)
	require.Equal(t, byte(0x02), frame[0])
	require.Equal(t, []byte{1, 2, 3}, frame[1:4])
	require.Equal(t, []byte{255, 255, 255}, frame[46:49])
	for _, b := range frame[4:46] {
		require.Zero(t, b)
	}

	require.NoError(t, d.Close())
	require.True(t, hid.closed)
}
