package ui

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ThemeCycler rotates the theme hue around a base color at a fixed rate and
// emits the per-frame target the engine's material color chases. It lives
// outside the engine: cycling is just a stream of target pushes. Rotating a
// grey base is a no-op since grey carries no hue.
type ThemeCycler struct {
	base    colorful.Color
	hue     float64 // degrees of accumulated offset from the base hue
	rate    float64 // degrees per second
	enabled bool
}

// NewThemeCycler builds a cycler around base, advancing degPerSec while
// enabled. Cycling starts disabled.
func NewThemeCycler(base colorful.Color, degPerSec float64) *ThemeCycler {
	return &ThemeCycler{base: base, rate: degPerSec}
}

// Toggle flips cycling. Switching off returns future ticks to the unshifted
// base color.
func (tc *ThemeCycler) Toggle() {
	tc.enabled = !tc.enabled
	if !tc.enabled {
		tc.hue = 0
	}
}

// Enabled reports whether the hue is advancing.
func (tc *ThemeCycler) Enabled() bool { return tc.enabled }

// SetBase swaps the color the rotation is anchored to.
func (tc *ThemeCycler) SetBase(base colorful.Color) { tc.base = base }

// Base returns the anchor color.
func (tc *ThemeCycler) Base() colorful.Color { return tc.base }

// Tick advances the hue by the elapsed seconds and returns the current
// target color. Disabled it returns the base unchanged.
func (tc *ThemeCycler) Tick(delta float64) colorful.Color {
	if !tc.enabled {
		return tc.base
	}
	tc.hue = math.Mod(tc.hue+tc.rate*delta, 360)
	h, s, v := tc.base.Hsv()
	return colorful.Hsv(math.Mod(h+tc.hue+360, 360), s, v)
}
