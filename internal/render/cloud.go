//go:build ebiten

package render

import (
	"github.com/hajimehoshi/ebiten/v2"
	colorful "github.com/lucasb-eyer/go-colorful"

	"morphcloud/internal/core"
)

// CloudPainter keeps one RGBA image the size of the logical view and redraws
// the particle cloud into it, uploading the buffer once per Blit.
type CloudPainter struct {
	cam Camera
	img *ebiten.Image
	buf []byte
}

// NewCloudPainter allocates a painter with the default camera for a w×h view.
func NewCloudPainter(w, h int) *CloudPainter {
	cp := &CloudPainter{cam: DefaultCamera(w, h), buf: make([]byte, 4*w*h)}
	cp.img = ebiten.NewImage(w, h)
	return cp
}

// Camera exposes the projection parameters so overlays can place markers in
// the same view.
func (cp *CloudPainter) Camera() Camera { return cp.cam }

// Blit refills the backing buffer from the particle state, uploads it, and
// draws the image scaled into dst.
func (cp *CloudPainter) Blit(dst *ebiten.Image, positions, intensities []float64, material colorful.Color, rot core.Rotation, pointSize float64, scale int) {
	fillCloudRGBA(cp.buf, cp.cam, positions, intensities, material, rot, pointSize)
	cp.img.ReplacePixels(cp.buf)
	cp.draw(dst, scale)
}

// Redraw draws the last uploaded frame again without touching the buffer,
// for frames where nothing was reported dirty.
func (cp *CloudPainter) Redraw(dst *ebiten.Image, scale int) {
	cp.draw(dst, scale)
}

func (cp *CloudPainter) draw(dst *ebiten.Image, scale int) {
	if scale <= 0 {
		scale = 1
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(cp.img, op)
}

// Size returns the dimensions of the underlying image.
func (cp *CloudPainter) Size() (int, int) { return cp.cam.W, cp.cam.H }
