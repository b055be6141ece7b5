package engine

import (
	"errors"
	"math"
	"time"

	colorful "github.com/lucasb-eyer/go-colorful"

	"morphcloud/internal/core"
	"morphcloud/internal/shape"
	pcore "morphcloud/pkg/core"
)

// Motion tunables. Hand-tuned to the wanted look, not derived.
const (
	// progressSnap is the relaxation band inside which progress snaps to
	// its target exactly, ending a morph instead of drifting forever.
	progressSnap = 1e-3
	// colorChaseRate scales Δt for the exponential material color chase.
	colorChaseRate = 3.0
	// spinRate is the idle auto-spin in radians per second. A fully formed
	// text target slows it by spinEaseDamp but never stops it.
	spinRate     = 0.1
	spinEaseDamp = 0.8
	// pointerTilt maps the normalized pointer onto a scene tilt in radians.
	pointerTilt = 0.3 * 0.5
	// wobbleFreq and wobbleAmp shape the low-frequency idle sway of the x
	// axis, which fades out as the text forms.
	wobbleFreq = 0.5
	wobbleAmp  = 0.1
	// transitNoise is the peak per-axis scatter amplitude mid-transition,
	// producing the disintegration look instead of a clean slide.
	transitNoise = 2.0
)

// ErrInvalidCount rejects configure calls with a non-positive particle count.
var ErrInvalidCount = errors.New("engine: particle count must be positive")

// Config controls the engine.
type Config struct {
	ParticleCount int     // number of particles; Configure rejects values <= 0
	Radius        float64 // sphere target radius in world units
	MorphSpeed    float64 // progress units per second
	PointSize     float64 // visual particle size hint consumed by the renderer
	LightFalloff  float64 // pointer light falloff numerator

	Seed int64

	// Rasterizer supplies the text bitmap backend; nil selects the
	// embedded bold face.
	Rasterizer shape.Rasterizer
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		ParticleCount: 8000,
		Radius:        3.5,
		MorphSpeed:    2.5,
		PointSize:     2,
		LightFalloff:  25,
		Seed:          1337,
	}
}

// Engine owns the live particle cloud: both immutable targets, the mutable
// display and color buffers, and the morph state. All engine state lives
// here explicitly; per-frame inputs arrive through core.FrameInput and
// nothing is shared with the driver loop.
type Engine struct {
	cfg Config

	count  int
	sphere []float64 // sphere target, 3·count, immutable between configures
	text   []float64 // text target, 3·count, immutable between regenerations
	pos    []float64 // display buffer, rewritten every unpaused tick
	colors []float64 // per-particle intensity triples

	progress  float64
	rotationY float64
	color     colorful.Color

	textStr   string
	textStats shape.TextStats
	hasText   bool

	ras shape.Rasterizer
	rng *pcore.RNG
}

// New constructs an engine from cfg, substituting defaults for non-positive
// tunables and the nil rasterizer.
func New(cfg Config) *Engine {
	def := DefaultConfig()
	if cfg.ParticleCount <= 0 {
		cfg.ParticleCount = def.ParticleCount
	}
	if cfg.Radius <= 0 {
		cfg.Radius = def.Radius
	}
	if cfg.MorphSpeed <= 0 {
		cfg.MorphSpeed = def.MorphSpeed
	}
	if cfg.PointSize <= 0 {
		cfg.PointSize = def.PointSize
	}
	if cfg.LightFalloff <= 0 {
		cfg.LightFalloff = def.LightFalloff
	}
	if cfg.Rasterizer == nil {
		cfg.Rasterizer = shape.DefaultRasterizer()
	}
	e := &Engine{
		cfg:   cfg,
		color: colorful.Color{R: 1, G: 1, B: 1},
		ras:   cfg.Rasterizer,
		rng:   pcore.NewRNG(cfg.Seed),
	}
	if err := e.Configure(cfg.ParticleCount); err != nil {
		// Unreachable: the count was sanitized above.
		panic(err)
	}
	return e
}

// Configure (re)allocates every buffer for the given particle count and
// rebuilds both targets together. A rejected count leaves the previous
// configuration fully active. The core runs single-threaded inside the
// frame tick, so the swap is atomic from the frame loop's perspective; the
// length guard in Tick covers any partially applied state regardless.
func (e *Engine) Configure(count int) error {
	if count <= 0 {
		return ErrInvalidCount
	}
	sphere := shape.Sphere(count, e.cfg.Radius)
	pos := make([]float64, 3*count)
	copy(pos, sphere)
	colors := make([]float64, 3*count)
	for i := range colors {
		colors[i] = 1
	}

	e.count = count
	e.cfg.ParticleCount = count
	e.sphere = sphere
	e.pos = pos
	e.colors = colors
	e.regenerateText()

	logger().Debug("configured", "count", count, "radius", e.cfg.Radius)
	return nil
}

// SetText swaps in a new text target. Safe to call mid-morph: targets are
// read per tick, so the swap takes effect on the next frame.
func (e *Engine) SetText(s string) {
	e.textStr = s
	e.regenerateText()
}

// Reset reseeds the randomness and returns the cloud to its initial state:
// sphere positions, white colors, zero progress and spin. A zero seed falls
// back to the configured one, mirroring deterministic resets.
func (e *Engine) Reset(seed int64) {
	if seed == 0 {
		seed = e.cfg.Seed
	}
	e.rng = pcore.NewRNG(seed)
	e.progress = 0
	e.rotationY = 0
	e.color = colorful.Color{R: 1, G: 1, B: 1}
	copy(e.pos, e.sphere)
	for i := range e.colors {
		e.colors[i] = 1
	}
	e.regenerateText()
}

func (e *Engine) regenerateText() {
	start := time.Now()
	text, stats, err := shape.SampleText(e.ras, e.textStr, e.count, e.rng)
	if err != nil {
		logger().Warn("text target degenerate", "text", e.textStr, "err", err)
	}
	e.text = text
	e.textStats = stats
	e.hasText = !stats.Degenerate()
	logger().Debug("text target rebuilt",
		"text", e.textStr,
		"edges", stats.EdgeCount,
		"fill", stats.FillCount,
		"took", time.Since(start))
}

// Tick advances the cloud by one frame and is the only per-frame mutation
// point. A paused tick touches nothing. The dirty flags report which
// buffers the rendering surface must re-upload.
func (e *Engine) Tick(in core.FrameInput) core.TickResult {
	if in.Paused {
		return core.TickResult{Rotation: e.rotationAt(in)}
	}
	// A partially applied resize must never be read or written; skip the
	// frame and let the completed regeneration pick up on the next one.
	if n := 3 * e.count; len(e.sphere) != n || len(e.text) != n ||
		len(e.pos) != n || len(e.colors) != n {
		return core.TickResult{Rotation: e.rotationAt(in)}
	}

	e.color = e.color.BlendRgb(in.TargetColor, clamp01(in.Delta*colorChaseRate))

	// A degenerate text target (blank or unsampled) is never morphed to,
	// whatever the caller asserts.
	target := 0.0
	if in.Morphing && e.hasText {
		target = 1
	}
	if diff := target - e.progress; math.Abs(diff) > progressSnap {
		e.progress += diff * math.Min(in.Delta*e.cfg.MorphSpeed, 1)
	} else {
		e.progress = target
	}
	e.progress = clamp01(e.progress)

	ease := smoothstep(e.progress)
	e.rotationY += spinRate * (1 - ease*spinEaseDamp) * in.Delta

	// Blend between the fixed targets, scattering mid-transition only: the
	// noise term is exactly zero at both endpoints so settled clouds hold
	// their shape (and consume no randomness).
	if e.progress > 0 && e.progress < 1 {
		noise := math.Sin(e.progress*math.Pi) * transitNoise
		for i := range e.pos {
			e.pos[i] = e.sphere[i]*(1-ease) + e.text[i]*ease + e.rng.Jitter(noise)
		}
	} else {
		for i := range e.pos {
			e.pos[i] = e.sphere[i]*(1-ease) + e.text[i]*ease
		}
	}
	e.illuminate(in.Pointer)

	return core.TickResult{
		PositionsDirty: true,
		ColorsDirty:    true,
		Rotation:       e.rotationAt(in),
	}
}

// rotationAt combines accumulated spin, pointer tilt and the idle wobble.
func (e *Engine) rotationAt(in core.FrameInput) core.Rotation {
	ease := smoothstep(e.progress)
	return core.Rotation{
		X: math.Sin(in.Elapsed*wobbleFreq)*wobbleAmp*(1-ease) + in.Pointer.Y*pointerTilt,
		Y: e.rotationY + in.Pointer.X*pointerTilt,
	}
}

// Positions exposes the display buffer. Read-only to the rendering surface.
func (e *Engine) Positions() []float64 { return e.pos }

// Colors exposes the per-particle intensity buffer.
func (e *Engine) Colors() []float64 { return e.colors }

// SpherePositions exposes the sphere target.
func (e *Engine) SpherePositions() []float64 { return e.sphere }

// TextPositions exposes the text target.
func (e *Engine) TextPositions() []float64 { return e.text }

// Progress reports the raw morph progress in [0, 1].
func (e *Engine) Progress() float64 { return e.progress }

// Ease reports the smoothstepped progress used for blending.
func (e *Engine) Ease() float64 { return smoothstep(e.progress) }

// Color reports the current displayed material color.
func (e *Engine) Color() colorful.Color { return e.color }

// Count reports the active particle count.
func (e *Engine) Count() int { return e.count }

// Text reports the current target text.
func (e *Engine) Text() string { return e.textStr }

// HasTextTarget reports whether the text target is usable as a morph target.
func (e *Engine) HasTextTarget() bool { return e.hasText }

// TextStats reports the sampling stats of the current text target.
func (e *Engine) TextStats() shape.TextStats { return e.textStats }

// PointSize reports the visual particle size hint for the renderer.
func (e *Engine) PointSize() float64 { return e.cfg.PointSize }

// smoothstep eases progress with zero velocity at both endpoints.
func smoothstep(p float64) float64 { return p * p * (3 - 2*p) }

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
