package core

import colorful "github.com/lucasb-eyer/go-colorful"

// Pointer is a pointer position normalized to [-1, 1] on both axes,
// with y growing upward (screen top is +1).
type Pointer struct {
	X float64
	Y float64
}

// Rotation carries the per-frame scene rotation in radians. The engine
// computes it; the rendering surface applies it to its own scene node.
type Rotation struct {
	X float64
	Y float64
}

// FrameInput is the immutable per-tick input to the engine. The driver
// loop fills one of these each frame; the engine never reaches outside it.
type FrameInput struct {
	Delta   float64
	Elapsed float64
	Pointer Pointer

	// Morphing requests the text target. It only takes effect while the
	// engine holds a non-degenerate text target.
	Morphing bool

	// Paused skips the tick entirely; no engine state is mutated.
	Paused bool

	// TargetColor is the material color the displayed color chases.
	TargetColor colorful.Color
}

// TickResult reports what a tick changed so the rendering surface knows
// which GPU-side buffers to re-upload.
type TickResult struct {
	PositionsDirty bool
	ColorsDirty    bool
	Rotation       Rotation
}
