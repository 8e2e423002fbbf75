package controller

import (
	"math"

	"github.com/zllovesuki/KeybowManager/system/keypad"

	colorful "github.com/lucasb-eyer/go-colorful"
)

const (
	// DefaultStep is how far the phase moves every loop iteration
	DefaultStep = 3

	gridSize = 4
)

// XY maps a key index onto the 4x4 grid
func XY(i int) (x, y int) {
	return i / gridSize, i % gridSize
}

// Hue returns the rainbow hue in [0, 1) of grid position (x, y) at phase
func Hue(x, y int, phase int64) float64 {
	h := (float64(x+y) + float64(phase)/20) / 8
	h -= math.Trunc(h)
	h -= math.Floor(h)
	return h
}

// HSV converts hue, saturation and value in [0, 1] to an LED color
func HSV(h, s, v float64) keypad.Color {
	r, g, b := colorful.Hsv(h*360, s, v).RGB255()
	return keypad.Color{R: r, G: g, B: b}
}

// Animator sweeps a rainbow across the keys
type Animator struct {
	Step  int64
	phase int64
	idle  [keypad.NumKeys]keypad.Color
}

// NewAnimator returns an Animator at phase 0. A non-positive step falls back to DefaultStep.
func NewAnimator(step int64) *Animator {
	if step <= 0 {
		step = DefaultStep
	}
	a := &Animator{
		Step: step,
	}
	a.compute()
	return a
}

// Phase returns the current phase
func (a *Animator) Phase() int64 {
	return a.phase
}

// Advance moves the phase one step and recomputes the idle colors
func (a *Animator) Advance() {
	a.phase += a.Step
	a.compute()
}

func (a *Animator) compute() {
	for i := range a.idle {
		x, y := XY(i)
		a.idle[i] = HSV(Hue(x, y, a.phase), 1, 1)
	}
}

// Idle returns the animated color of key i at the current phase
func (a *Animator) Idle(i int) keypad.Color {
	return a.idle[i]
}

// Render paints every key: white while pressed, the rainbow otherwise
func (a *Animator) Render(keys []*keypad.Key) {
	for _, k := range keys {
		if k.Pressed() {
			k.SetLED(keypad.White)
		} else {
			k.SetLED(a.idle[k.Number()])
		}
	}
}
