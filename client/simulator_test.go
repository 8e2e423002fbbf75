package client

import (
	"strings"
	"testing"
	"time"

	"github.com/zllovesuki/KeybowManager/keymap"
	"github.com/zllovesuki/KeybowManager/system/keyboard"
	"github.com/zllovesuki/KeybowManager/system/keypad"

	"github.com/stretchr/testify/require"
)

func TestIndex(t *testing.T) {
	require.Equal(t, 0, Index('1'))
	require.Equal(t, 4, Index('q'))
	require.Equal(t, 10, Index('d'))
	require.Equal(t, 15, Index('v'))
	require.Equal(t, -1, Index('p'))
	require.Len(t, Bindings, keypad.NumKeys)
}

func TestSimulatorState(t *testing.T) {
	s := NewInterface(keymap.Default())

	state, err := s.State()
	require.NoError(t, err)
	require.Zero(t, state)

	s.press(4)
	s.press(10)
	state, err = s.State()
	require.NoError(t, err)
	require.Equal(t, uint16(1<<4|1<<10), state)
}

func TestSimulatorWriteReports(t *testing.T) {
	s := NewInterface(keymap.Default())
	kbd := keyboard.NewKeyboard(s)
	cc := keyboard.NewConsumerControl(s)

	require.NoError(t, kbd.Send(keyboard.Control, keyboard.C))
	require.NoError(t, cc.Send(keyboard.VolumeIncrement))

	text := s.reportView.GetText(true)
	require.True(t, strings.Contains(text, "keyboard: LeftControl+C"), text)
	require.True(t, strings.Contains(text, "consumer: VolumeIncrement"), text)

	_, err := s.Write([]byte{0x42})
	require.Error(t, err)
}

func TestContrast(t *testing.T) {
	require.Equal(t, contrast(keypad.White), contrast(keypad.Color{R: 255, G: 255}))
	require.NotEqual(t, contrast(keypad.White), contrast(keypad.Off))
}

func TestHoldTimeoutOutlastsRepeatDelay(t *testing.T) {
	s := NewInterface(keymap.Default())
	require.Equal(t, DefaultHoldTimeout, s.HoldTimeout)
	// X11 default auto-repeat delay
	require.Greater(t, int64(s.HoldTimeout), int64(660*time.Millisecond))
}

func TestShowAfterCloseQueuesNothing(t *testing.T) {
	s := NewInterface(keymap.Default())
	require.NoError(t, s.Close())

	var leds [keypad.NumKeys]keypad.Color
	leds[3] = keypad.White
	require.NoError(t, s.Show(leds))

	s.mu.Lock()
	defer s.mu.Unlock()
	require.False(t, s.pending)
	require.Equal(t, keypad.White, s.leds[3])
}
