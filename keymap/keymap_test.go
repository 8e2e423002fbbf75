package keymap

import (
	"testing"

	kb "github.com/zllovesuki/KeybowManager/system/keyboard"

	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestDefaultChords(t *testing.T) {
	m := Default()

	chords := map[int][]kb.Keycode{
		2:  {kb.LeftControl, kb.LeftShift, kb.Tab},
		4:  {kb.LeftControl, kb.C},
		6:  {kb.LeftControl, kb.Tab},
		8:  {kb.LeftControl, kb.V},
		10: {kb.LeftGUI, kb.LeftShift, kb.S},
		11: {kb.LeftGUI, kb.LeftArrow},
		15: {kb.LeftGUI, kb.RightArrow},
	}
	for i, a := range m {
		expected, ok := chords[i]
		if !ok {
			require.NotEqual(t, KindChord, a.Kind, "key %d", i)
			continue
		}
		require.Equal(t, KindChord, a.Kind, "key %d", i)
		require.Equal(t, expected, a.Keycodes(), "key %d", i)
		require.Zero(t, a.Usage())
	}
}

func TestActionAccessors(t *testing.T) {
	k := Key("", kb.F13)
	require.Equal(t, []kb.Keycode{kb.F13}, k.Keycodes())
	require.Zero(t, k.Usage())
	require.Equal(t, "Key(F13)", k.String())

	m := Media("Play", kb.PlayPause)
	require.Nil(t, m.Keycodes())
	require.Equal(t, kb.PlayPause, m.Usage())
	require.Equal(t, "Play: Media(PlayPause)", m.String())

	c := Chord("Copy", kb.Control, kb.C)
	require.Equal(t, "Copy: Chord(LeftControl+C)", c.String())

	// returned slices must not alias the table
	codes := c.Keycodes()
	codes[0] = kb.A
	require.Equal(t, kb.LeftControl, c.Keycodes()[0])
}

func TestKeymapAction(t *testing.T) {
	m := Default()

	a, err := m.Action(5)
	require.NoError(t, err)
	require.Equal(t, kb.PlayPause, a.Usage())

	_, err = m.Action(-1)
	require.Error(t, err)
	_, err = m.Action(16)
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	m := Default()
	m[3] = Chord("empty")
	require.Error(t, m.Validate())

	m = Default()
	m[3] = Key("none", 0)
	require.Error(t, m.Validate())

	m = Default()
	m[3] = Media("none", 0)
	require.Error(t, m.Validate())

	m = Default()
	m[3] = Chord("too many", kb.A, kb.B, kb.C, kb.D, kb.E, kb.F, kb.G)
	require.Error(t, m.Validate())

	m = Default()
	m[3] = Chord("all modifiers plus six", kb.LeftControl, kb.LeftShift, kb.LeftAlt, kb.LeftGUI, kb.A, kb.B, kb.C, kb.D, kb.E, kb.F)
	require.NoError(t, m.Validate())
}
