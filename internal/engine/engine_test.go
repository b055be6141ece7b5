package engine

import (
	"errors"
	"math"
	"slices"
	"testing"

	colorful "github.com/lucasb-eyer/go-colorful"

	"morphcloud/internal/core"
	"morphcloud/internal/shape"
)

// blockRasterizer renders every input as a fixed solid square so engine
// tests get a non-degenerate text target without touching a real font.
type blockRasterizer struct{}

func (blockRasterizer) Rasterize(string) (*shape.Bitmap, error) {
	bm := shape.NewBitmap(16, 16)
	for y := 4; y < 12; y++ {
		for x := 4; x < 12; x++ {
			bm.Set(x, y, 255)
		}
	}
	return bm, nil
}

func newTestEngine(t *testing.T, count int, ras shape.Rasterizer) *Engine {
	t.Helper()
	cfg := DefaultConfig()
	cfg.ParticleCount = count
	cfg.Seed = 42
	if ras != nil {
		cfg.Rasterizer = ras
	}
	return New(cfg)
}

func testInput(delta float64, morphing bool) core.FrameInput {
	return core.FrameInput{
		Delta:       delta,
		Morphing:    morphing,
		TargetColor: colorful.Color{R: 1, G: 1, B: 1},
	}
}

func TestProgressConvergesAndSnaps(t *testing.T) {
	eng := newTestEngine(t, 200, blockRasterizer{})
	eng.SetText("block")
	if !eng.HasTextTarget() {
		t.Fatal("block rasterizer should produce a usable text target")
	}

	const dt = 1.0 / 60
	snapped := -1
	prev := eng.Progress()
	for i := 0; i < 600; i++ {
		in := testInput(dt, true)
		in.Elapsed = float64(i) * dt
		eng.Tick(in)
		p := eng.Progress()
		if p < 0 || p > 1 {
			t.Fatalf("tick %d: progress %f escaped [0,1]", i, p)
		}
		if p < prev {
			t.Fatalf("tick %d: progress moved backwards (%f -> %f) while relaxing to 1", i, prev, p)
		}
		prev = p
		if p == 1 {
			snapped = i
			break
		}
	}
	if snapped < 0 {
		t.Fatalf("progress never snapped to 1 within 600 ticks, ended at %f", eng.Progress())
	}
	if ease := eng.Ease(); ease != 1 {
		t.Fatalf("ease at terminal progress = %f, want 1", ease)
	}
}

func TestTerminalStateIdempotent(t *testing.T) {
	eng := newTestEngine(t, 100, blockRasterizer{})
	eng.SetText("block")

	for i := 0; i < 600 && eng.Progress() != 1; i++ {
		eng.Tick(testInput(1.0/60, true))
	}
	if eng.Progress() != 1 {
		t.Fatalf("setup failed to converge, progress %f", eng.Progress())
	}

	for i := 0; i < 10; i++ {
		eng.Tick(testInput(1.0/60, true))
		if eng.Progress() != 1 {
			t.Fatalf("tick %d after snap moved progress to %f, want exactly 1", i, eng.Progress())
		}
	}

	// Dropping the morph request must relax back down and snap to exactly 0.
	for i := 0; i < 600 && eng.Progress() != 0; i++ {
		eng.Tick(testInput(1.0/60, false))
	}
	if eng.Progress() != 0 {
		t.Fatalf("progress never snapped back to 0, ended at %f", eng.Progress())
	}
	eng.Tick(testInput(1.0/60, false))
	if eng.Progress() != 0 {
		t.Fatalf("progress left 0 after snap, got %f", eng.Progress())
	}
}

func TestProgressNeverOvershoots(t *testing.T) {
	eng := newTestEngine(t, 50, blockRasterizer{})
	eng.SetText("block")

	// One enormous delta saturates the relaxation factor at 1 and must land
	// exactly on the target, not past it.
	eng.Tick(testInput(10, true))
	if eng.Progress() != 1 {
		t.Fatalf("saturated step progress = %f, want exactly 1", eng.Progress())
	}
	eng.Tick(testInput(10, false))
	if eng.Progress() != 0 {
		t.Fatalf("saturated step back progress = %f, want exactly 0", eng.Progress())
	}
}

func TestPausedTickMutatesNothing(t *testing.T) {
	eng := newTestEngine(t, 100, blockRasterizer{})
	eng.SetText("block")
	eng.Tick(testInput(1.0/60, true))

	pos := append([]float64(nil), eng.Positions()...)
	colors := append([]float64(nil), eng.Colors()...)
	progress := eng.Progress()
	material := eng.Color()

	in := testInput(1.0/60, true)
	in.Paused = true
	in.TargetColor = colorful.Color{R: 1, G: 0, B: 0}
	res := eng.Tick(in)

	if res.PositionsDirty || res.ColorsDirty {
		t.Fatalf("paused tick reported dirty buffers: %+v", res)
	}
	if eng.Progress() != progress {
		t.Fatalf("paused tick moved progress %f -> %f", progress, eng.Progress())
	}
	if !slices.Equal(pos, eng.Positions()) {
		t.Fatal("paused tick mutated the display buffer")
	}
	if !slices.Equal(colors, eng.Colors()) {
		t.Fatal("paused tick mutated the color buffer")
	}
	if eng.Color() != material {
		t.Fatal("paused tick chased the target color")
	}
}

func TestDegenerateTextNeverMorphs(t *testing.T) {
	eng := newTestEngine(t, 100, nil)

	for _, text := range []string{"", "   ", "\t\n"} {
		eng.SetText(text)
		if eng.HasTextTarget() {
			t.Fatalf("text %q should be a degenerate target", text)
		}
		for i := 0; i < 30; i++ {
			eng.Tick(testInput(1.0/60, true))
		}
		if eng.Progress() != 0 {
			t.Fatalf("text %q: morphing toward a degenerate target moved progress to %f", text, eng.Progress())
		}
	}

	for _, v := range eng.TextPositions() {
		if v != 0 {
			t.Fatalf("degenerate text target holds non-zero coordinate %f", v)
		}
	}
}

func TestBufferMismatchSkipsFrame(t *testing.T) {
	eng := newTestEngine(t, 100, blockRasterizer{})
	eng.SetText("block")
	eng.Tick(testInput(1.0/60, true))

	pos := append([]float64(nil), eng.Positions()...)
	progress := eng.Progress()

	// Simulate a half-applied resize: the text target is one particle short.
	eng.text = eng.text[:len(eng.text)-3]
	res := eng.Tick(testInput(1.0/60, true))

	if res.PositionsDirty || res.ColorsDirty {
		t.Fatalf("mismatched tick reported dirty buffers: %+v", res)
	}
	if eng.Progress() != progress {
		t.Fatalf("mismatched tick moved progress %f -> %f", progress, eng.Progress())
	}
	if !slices.Equal(pos, eng.Positions()) {
		t.Fatal("mismatched tick wrote the display buffer")
	}

	// A completed regeneration restores the invariant and ticking resumes.
	eng.SetText("block")
	res = eng.Tick(testInput(1.0/60, true))
	if !res.PositionsDirty {
		t.Fatal("tick after regeneration should resume updating")
	}
	if eng.Progress() <= progress {
		t.Fatalf("progress stalled after regeneration: %f", eng.Progress())
	}
}

func TestConfigureRejectsInvalidCount(t *testing.T) {
	eng := newTestEngine(t, 100, blockRasterizer{})

	for _, count := range []int{0, -5} {
		if err := eng.Configure(count); !errors.Is(err, ErrInvalidCount) {
			t.Fatalf("Configure(%d) error = %v, want ErrInvalidCount", count, err)
		}
		if eng.Count() != 100 {
			t.Fatalf("rejected Configure(%d) changed count to %d", count, eng.Count())
		}
		if len(eng.Positions()) != 300 {
			t.Fatalf("rejected Configure(%d) resized buffers to %d", count, len(eng.Positions()))
		}
	}
}

func TestConfigureRegeneratesAllBuffersTogether(t *testing.T) {
	eng := newTestEngine(t, 100, blockRasterizer{})
	eng.SetText("block")

	if err := eng.Configure(250); err != nil {
		t.Fatalf("Configure(250) failed: %v", err)
	}

	want := 3 * 250
	if len(eng.SpherePositions()) != want || len(eng.TextPositions()) != want ||
		len(eng.Positions()) != want || len(eng.Colors()) != want {
		t.Fatalf("buffer lengths after resize: sphere=%d text=%d display=%d colors=%d, want all %d",
			len(eng.SpherePositions()), len(eng.TextPositions()), len(eng.Positions()), len(eng.Colors()), want)
	}
	if !slices.Equal(eng.Positions(), eng.SpherePositions()) {
		t.Fatal("display buffer should start on the sphere after a resize")
	}
	if !eng.HasTextTarget() {
		t.Fatal("resize should re-sample the current text target")
	}
	for _, c := range eng.Colors() {
		if c != 1 {
			t.Fatalf("color buffer should reset to white, found %f", c)
		}
	}
}

func TestSetTextSwapsTargetMidMorph(t *testing.T) {
	eng := newTestEngine(t, 100, blockRasterizer{})
	eng.SetText("block")
	for i := 0; i < 10; i++ {
		eng.Tick(testInput(1.0/60, true))
	}
	if p := eng.Progress(); p <= 0 || p >= 1 {
		t.Fatalf("setup expected a mid-morph state, progress %f", p)
	}

	before := append([]float64(nil), eng.TextPositions()...)
	eng.SetText("other")

	if len(eng.TextPositions()) != len(before) {
		t.Fatalf("text target length changed: %d -> %d", len(before), len(eng.TextPositions()))
	}
	if slices.Equal(before, eng.TextPositions()) {
		t.Fatal("SetText should re-sample the target (jitter alone makes clouds differ)")
	}

	// The tick after the swap keeps advancing against the new target.
	progress := eng.Progress()
	res := eng.Tick(testInput(1.0/60, true))
	if !res.PositionsDirty {
		t.Fatal("tick after SetText should update buffers")
	}
	if eng.Progress() <= progress {
		t.Fatalf("progress stalled after target swap: %f", eng.Progress())
	}
}

func TestColorChaseApproachesTarget(t *testing.T) {
	eng := newTestEngine(t, 50, nil)

	red := colorful.Color{R: 1, G: 0, B: 0}
	prevG := eng.Color().G
	for i := 0; i < 60; i++ {
		in := testInput(0.1, false)
		in.TargetColor = red
		eng.Tick(in)
		g := eng.Color().G
		if g > prevG+1e-12 {
			t.Fatalf("tick %d: green channel moved away from target (%f -> %f)", i, prevG, g)
		}
		prevG = g
	}
	c := eng.Color()
	if math.Abs(c.R-1) > 0.01 || c.G > 0.01 || c.B > 0.01 {
		t.Fatalf("color after chase = %+v, want ~{1 0 0}", c)
	}
}

func TestResetRestoresInitialState(t *testing.T) {
	eng := newTestEngine(t, 100, blockRasterizer{})
	eng.SetText("block")
	for i := 0; i < 30; i++ {
		in := testInput(1.0/60, true)
		in.TargetColor = colorful.Color{R: 0, G: 1, B: 0}
		in.Elapsed = float64(i) / 60
		eng.Tick(in)
	}

	eng.Reset(0)

	if eng.Progress() != 0 {
		t.Fatalf("progress after reset = %f, want 0", eng.Progress())
	}
	if eng.rotationY != 0 {
		t.Fatalf("rotation after reset = %f, want 0", eng.rotationY)
	}
	if !slices.Equal(eng.Positions(), eng.SpherePositions()) {
		t.Fatal("display buffer after reset should sit on the sphere")
	}
	for _, c := range eng.Colors() {
		if c != 1 {
			t.Fatalf("color buffer after reset holds %f, want 1", c)
		}
	}
	if eng.Color() != (colorful.Color{R: 1, G: 1, B: 1}) {
		t.Fatalf("material color after reset = %+v, want white", eng.Color())
	}
	if !eng.HasTextTarget() {
		t.Fatal("reset should re-sample the current text")
	}
}

func TestSphereHoldEndToEnd(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ParticleCount = 500
	cfg.Seed = 7
	cfg.Rasterizer = blockRasterizer{}
	eng := New(cfg)

	// No SetText call: the target stays degenerate and the cloud must hold
	// the sphere exactly, noise-free, whatever the morph flag says.
	for i := 0; i < 120; i++ {
		in := testInput(1.0/60, true)
		in.Elapsed = float64(i) / 60
		eng.Tick(in)
	}

	pos := eng.Positions()
	for i := 0; i < eng.Count(); i++ {
		norm := math.Sqrt(pos[3*i]*pos[3*i] + pos[3*i+1]*pos[3*i+1] + pos[3*i+2]*pos[3*i+2])
		if math.Abs(norm-cfg.Radius) > 1e-9 {
			t.Fatalf("particle %d drifted off the sphere: norm %f, want %f", i, norm, cfg.Radius)
		}
	}
}

func TestTextFormationEndToEnd(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ParticleCount = 1000
	cfg.Seed = 7
	eng := New(cfg)
	eng.SetText("HI")
	if !eng.HasTextTarget() {
		t.Fatal("rasterizing HI should produce a usable target")
	}

	const dt = 1.0 / 60
	for i := 0; i < 600 && eng.Progress() != 1; i++ {
		in := testInput(dt, true)
		in.Elapsed = float64(i) * dt
		eng.Tick(in)
	}
	if eng.Progress() != 1 {
		t.Fatalf("morph never completed, progress %f", eng.Progress())
	}
	if eng.Ease() != 1 {
		t.Fatalf("ease = %f, want 1", eng.Ease())
	}

	// At terminal progress the display buffer equals the text target, whose
	// points stay inside the rasterized bitmap mapped to world units, plus
	// the documented jitter margin.
	stats := eng.TextStats()
	if stats.Degenerate() {
		t.Fatal("text stats unexpectedly degenerate")
	}
	scale := shape.TextSpan / float64(stats.BitmapW)
	maxX := shape.TextSpan/2 + 0.11
	maxY := float64(stats.BitmapH)/2*scale + 0.11
	maxZ := 0.11

	pos := eng.Positions()
	for i := 0; i < eng.Count(); i++ {
		x, y, z := pos[3*i], pos[3*i+1], pos[3*i+2]
		if math.Abs(x) > maxX || math.Abs(y) > maxY || math.Abs(z) > maxZ {
			t.Fatalf("particle %d escaped the glyph region: (%f, %f, %f)", i, x, y, z)
		}
	}

	// The formed glyph must actually differ from the sphere target.
	if slices.Equal(eng.Positions(), eng.SpherePositions()) {
		t.Fatal("display buffer still equals the sphere after a full morph")
	}
}

func TestTransitionNoiseOnlyMidMorph(t *testing.T) {
	eng := newTestEngine(t, 100, blockRasterizer{})
	eng.SetText("block")

	// Mid-transition the displayed positions must deviate from the clean
	// blend of the two targets.
	for i := 0; i < 8; i++ {
		eng.Tick(testInput(1.0/60, true))
	}
	p := eng.Progress()
	if p <= 0 || p >= 1 {
		t.Fatalf("expected mid-morph progress, got %f", p)
	}
	ease := eng.Ease()
	sphere, text, pos := eng.SpherePositions(), eng.TextPositions(), eng.Positions()
	deviated := false
	for i := range pos {
		blend := sphere[i]*(1-ease) + text[i]*ease
		if math.Abs(pos[i]-blend) > 1e-9 {
			deviated = true
			break
		}
	}
	if !deviated {
		t.Fatal("mid-morph positions show no transition scatter")
	}

	// At the endpoints the blend is exact.
	for i := 0; i < 600 && eng.Progress() != 1; i++ {
		eng.Tick(testInput(1.0/60, true))
	}
	pos = eng.Positions()
	for i := range pos {
		if pos[i] != text[i] {
			t.Fatalf("terminal position %d = %f, want text target %f", i, pos[i], text[i])
		}
	}
}

func TestRotationSpinsAndWobbles(t *testing.T) {
	eng := newTestEngine(t, 50, blockRasterizer{})

	var lastY float64
	for i := 0; i < 30; i++ {
		in := testInput(1.0/60, false)
		in.Elapsed = float64(i) / 60
		res := eng.Tick(in)
		if i > 0 && res.Rotation.Y <= lastY {
			t.Fatalf("tick %d: idle spin did not advance (%f -> %f)", i, lastY, res.Rotation.Y)
		}
		lastY = res.Rotation.Y
	}

	// Pointer tilt shifts both axes on top of spin and wobble.
	in := testInput(1.0/60, false)
	in.Elapsed = 0.5
	in.Pointer = core.Pointer{X: 1, Y: 1}
	res := eng.Tick(in)
	base := eng.rotationY
	if math.Abs(res.Rotation.Y-(base+0.15)) > 1e-9 {
		t.Fatalf("pointer x tilt: rotation y = %f, want %f", res.Rotation.Y, base+0.15)
	}
	wobble := math.Sin(0.5*0.5) * 0.1
	if math.Abs(res.Rotation.X-(wobble+0.15)) > 1e-9 {
		t.Fatalf("pointer y tilt: rotation x = %f, want %f", res.Rotation.X, wobble+0.15)
	}
}
