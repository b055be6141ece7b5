//go:build ebiten

package ui

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"morphcloud/internal/core"
	"morphcloud/internal/engine"
	"morphcloud/internal/render"
)

// Overlay draws optional debugging visuals on top of the cloud view:
// an F1 stats block with a morph progress bar and a Digit1 crosshair on the
// projected pointer light.
type Overlay struct {
	eng   Engine
	cam   render.Camera
	scale int

	showStats bool
	showLight bool

	pixel *ebiten.Image
}

// NewOverlay constructs an overlay over the given engine and camera.
func NewOverlay(eng Engine, cam render.Camera, scale int) *Overlay {
	o := &Overlay{eng: eng, cam: cam, scale: scale}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update toggles the overlay layers.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		o.showStats = !o.showStats
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showLight = !o.showLight
	}
}

// Draw renders the enabled layers onto the screen.
func (o *Overlay) Draw(screen *ebiten.Image, pointer core.Pointer) {
	if o.showLight {
		o.drawLightMarker(screen, pointer)
	}
	if o.showStats {
		o.drawStats(screen)
	}
}

func (o *Overlay) drawStats(screen *ebiten.Image) {
	const (
		blockX     = 8
		blockY     = 8
		lineStep   = 14
		barWidth   = 140.0
		barHeight  = 6.0
		textInk    = 230
		shadeAlpha = 150
	)

	stats := o.eng.TextStats()
	lines := []string{
		fmt.Sprintf("progress %.3f  ease %.3f", o.eng.Progress(), o.eng.Ease()),
		fmt.Sprintf("particles %d", o.eng.Count()),
		fmt.Sprintf("glyph %dx%d  edges %d  fill %d", stats.BitmapW, stats.BitmapH, stats.EdgeCount, stats.FillCount),
		fmt.Sprintf("tps %.1f", ebiten.ActualTPS()),
	}

	face := basicfont.Face7x13
	// Backing shade keeps the block readable over a bright cloud.
	shadeH := float64(len(lines)*lineStep) + barHeight + 18
	o.drawRect(screen, blockX-4, blockY-4, barWidth+16, shadeH, color.RGBA{A: shadeAlpha})

	y := blockY + 10
	for _, line := range lines {
		text.Draw(screen, line, face, blockX, y, color.RGBA{R: textInk, G: textInk, B: textInk, A: 255})
		y += lineStep
	}

	// Progress bar under the text rows.
	barY := float64(y - 6)
	o.drawRect(screen, blockX, barY, barWidth, barHeight, color.RGBA{R: 60, G: 62, B: 70, A: 255})
	fill := clamp01(o.eng.Progress()) * barWidth
	o.drawRect(screen, blockX, barY, fill, barHeight, color.RGBA{R: 120, G: 200, B: 255, A: 255})
}

// drawLightMarker projects the pointer light probe with the cloud camera and
// marks it with a crosshair. The probe tracks the screen, not the rotating
// cloud, so no rotation is applied.
func (o *Overlay) drawLightMarker(screen *ebiten.Image, pointer core.Pointer) {
	lx, ly, lz := engine.LightWorldPoint(pointer)
	sx, sy, _, ok := o.cam.Project(lx, ly, lz)
	if !ok {
		return
	}
	scale := float64(o.scale)
	if scale <= 0 {
		scale = 1
	}
	cx := sx * scale
	cy := sy * scale

	const armLength = 9.0
	col := color.RGBA{R: 255, G: 220, B: 120, A: 220}
	o.drawLine(screen, cx-armLength, cy, cx+armLength, cy, 1.5, col)
	o.drawLine(screen, cx, cy-armLength, cx, cy+armLength, 1.5, col)
}

func (o *Overlay) drawRect(screen *ebiten.Image, x, y, w, h float64, col color.RGBA) {
	if o.pixel == nil || w <= 0 || h <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(x, y)
	op.ColorM.Scale(float64(col.R)/255.0, float64(col.G)/255.0, float64(col.B)/255.0, float64(col.A)/255.0)
	screen.DrawImage(o.pixel, op)
}

func (o *Overlay) drawLine(screen *ebiten.Image, x1, y1, x2, y2, thickness float64, col color.RGBA) {
	if o.pixel == nil || thickness <= 0 {
		return
	}
	dx := x2 - x1
	dy := y2 - y1
	length := math.Hypot(dx, dy)
	if length <= 1e-4 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, thickness)
	op.GeoM.Translate(0, -thickness/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(x1, y1)
	op.ColorM.Scale(float64(col.R)/255.0, float64(col.G)/255.0, float64(col.B)/255.0, float64(col.A)/255.0)
	screen.DrawImage(o.pixel, op)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
