//go:build ebiten

package app

import (
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	colorful "github.com/lucasb-eyer/go-colorful"

	"morphcloud/internal/core"
	"morphcloud/internal/engine"
	"morphcloud/internal/render"
	"morphcloud/internal/ui"
)

// Game adapts the particle engine to the ebiten.Game interface: it owns the
// frame clock, translates input into core.FrameInput, and decides per frame
// whether the painter must re-upload pixels or can reuse the previous frame.
type Game struct {
	eng     *engine.Engine
	painter *render.CloudPainter
	hud     *ui.HUD
	overlay *ui.Overlay
	clock   *core.FrameClock
	theme   *ui.ThemeCycler

	width  int
	height int
	scale  int
	seed   int64

	paused   bool
	morphing bool

	textMode bool
	editText []rune
	prevText string

	pointer  core.Pointer
	last     core.TickResult
	needBlit bool
	drawnRot core.Rotation

	runeBuf []rune
}

// New constructs a Game from cfg, sanitizing it in place so callers size the
// window from the same dimensions the game runs with. The color string must
// parse as a hex color.
func New(cfg *Config) (*Game, error) {
	base, err := colorful.Hex(cfg.Color)
	if err != nil {
		return nil, fmt.Errorf("app: parse color %q: %w", cfg.Color, err)
	}
	cfg.Sanitize()

	ec := engine.DefaultConfig()
	ec.ParticleCount = cfg.Count
	ec.PointSize = cfg.PointSize
	ec.Seed = cfg.Seed
	eng := engine.New(ec)
	eng.SetText(cfg.Text)

	painter := render.NewCloudPainter(cfg.Width, cfg.Height)
	theme := ui.NewThemeCycler(base, cfg.CycleRate)
	if cfg.Cycle {
		theme.Toggle()
	}

	return &Game{
		eng:      eng,
		painter:  painter,
		hud:      ui.NewHUD(eng, HUDWidth),
		overlay:  ui.NewOverlay(eng, painter.Camera(), cfg.Scale),
		clock:    core.NewFrameClock(),
		theme:    theme,
		width:    cfg.Width,
		height:   cfg.Height,
		scale:    cfg.Scale,
		seed:     cfg.Seed,
		morphing: true,
		needBlit: true,
	}, nil
}

// Reset returns the cloud to its initial state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.eng.Reset(seed)
	g.needBlit = true
}

// Update handles input, advances the frame clock and ticks the engine.
func (g *Game) Update() error {
	if g.textMode {
		g.updateTextEntry()
	} else {
		if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
			return ebiten.Termination
		}
		if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
			g.paused = !g.paused
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyM) {
			g.morphing = !g.morphing
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyT) {
			g.textMode = true
			g.prevText = g.eng.Text()
			g.editText = append(g.editText[:0], []rune(g.prevText)...)
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyR) {
			g.Reset(g.seed)
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyS) {
			g.Reset(time.Now().UnixNano())
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyC) {
			g.theme.Toggle()
		}
	}

	g.pointer = g.cursorPointer()
	if g.overlay != nil {
		g.overlay.Update()
	}
	if g.hud != nil {
		g.hud.Update(g.width*g.scale, g.status())
	}

	delta, elapsed := g.clock.Tick()
	res := g.eng.Tick(core.FrameInput{
		Delta:       delta,
		Elapsed:     elapsed,
		Pointer:     g.pointer,
		Morphing:    g.morphing,
		Paused:      g.paused,
		TargetColor: g.theme.Tick(delta),
	})
	g.last = res
	if res.PositionsDirty || res.ColorsDirty {
		g.needBlit = true
	}
	return nil
}

// updateTextEntry drives text mode: printable characters append, backspace
// auto-repeats, Enter commits and Escape restores the previous text. Every
// edit retargets the engine immediately so the cloud chases the draft.
func (g *Game) updateTextEntry() {
	g.runeBuf = ebiten.AppendInputChars(g.runeBuf[:0])
	changed := false
	for _, r := range g.runeBuf {
		if r < ' ' {
			continue
		}
		g.editText = append(g.editText, r)
		changed = true
	}
	if repeatTriggered(ebiten.KeyBackspace) && len(g.editText) > 0 {
		g.editText = g.editText[:len(g.editText)-1]
		changed = true
	}
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter):
		g.textMode = false
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		g.textMode = false
		g.editText = append(g.editText[:0], []rune(g.prevText)...)
		changed = true
	}
	if changed {
		g.eng.SetText(string(g.editText))
	}
}

// repeatTriggered reports a key press with keyboard-style auto repeat: once on
// the initial press, then every fourth frame after a 24-frame hold.
func repeatTriggered(key ebiten.Key) bool {
	d := inpututil.KeyPressDuration(key)
	return d == 1 || (d >= 24 && (d-24)%4 == 0)
}

// cursorPointer maps the cursor into normalized pointer space: the view
// center is the origin, x grows right, y grows up, both clamped to [-1, 1].
// A cursor over the HUD panel pins to the right edge instead of extending
// the range.
func (g *Game) cursorPointer() core.Pointer {
	mx, my := ebiten.CursorPosition()
	w := float64(g.width * g.scale)
	h := float64(g.height * g.scale)
	return core.Pointer{
		X: clampUnit(2*float64(mx)/w - 1),
		Y: clampUnit(1 - 2*float64(my)/h),
	}
}

func clampUnit(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}

func (g *Game) status() ui.Status {
	return ui.Status{
		TextMode: g.textMode,
		Editing:  string(g.editText),
		Morphing: g.morphing,
		Paused:   g.paused,
		Cycling:  g.theme.Enabled(),
	}
}

// Draw renders the cloud and the UI chrome. The pixel buffer is refilled only
// when the engine reported dirty buffers or the rotation moved since the last
// upload; otherwise the previous frame is redrawn as-is.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.needBlit || g.last.Rotation != g.drawnRot {
		g.painter.Blit(screen, g.eng.Positions(), g.eng.Colors(), g.eng.Color(), g.last.Rotation, g.eng.PointSize(), g.scale)
		g.drawnRot = g.last.Rotation
		g.needBlit = false
	} else {
		g.painter.Redraw(screen, g.scale)
	}
	if g.overlay != nil {
		g.overlay.Draw(screen, g.pointer)
	}
	if g.hud != nil {
		g.hud.Draw(screen, g.width*g.scale, g.height*g.scale)
	}
}

// Layout returns the logical screen size: the scaled view plus the HUD panel.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width*g.scale + HUDWidth, g.height * g.scale
}
