package ui

import (
	"morphcloud/internal/core"
	"morphcloud/internal/shape"
)

// Engine is the view the HUD and overlay take of the particle engine.
type Engine interface {
	Parameters() core.ParameterSnapshot
	ParameterControls() []core.ParameterControl
	SetIntParameter(key string, value int) bool
	SetFloatParameter(key string, value float64) bool
	Progress() float64
	Ease() float64
	Count() int
	Text() string
	HasTextTarget() bool
	TextStats() shape.TextStats
}

// Status mirrors the app-level state the HUD reports under the controls.
type Status struct {
	TextMode bool
	Editing  string // text under edit while in text mode
	Morphing bool
	Paused   bool
	Cycling  bool
}
