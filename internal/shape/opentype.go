package shape

import (
	"fmt"
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	// glyphPixelSize is the rasterization size in pixels, large enough that
	// the sampling stride still resolves letterforms.
	glyphPixelSize = 128
	// bitmapPadding is the margin in pixels around the measured text extents.
	bitmapPadding = 16
)

// FontRasterizer renders text white-on-black through an OpenType face, sized
// tightly around the measured extents plus a fixed padding margin.
type FontRasterizer struct {
	face font.Face
	pad  int
}

// NewFontRasterizer parses the provided TTF bytes and prepares a face at the
// given pixel size.
func NewFontRasterizer(ttf []byte, pixels float64) (*FontRasterizer, error) {
	f, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("shape: parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    pixels,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("shape: build face: %w", err)
	}
	return &FontRasterizer{face: face, pad: bitmapPadding}, nil
}

// DefaultRasterizer returns a rasterizer on the embedded Go Bold face at the
// standard glyph size. The bold weight keeps strokes wide enough to survive
// strided sampling.
func DefaultRasterizer() *FontRasterizer {
	r, err := NewFontRasterizer(gobold.TTF, glyphPixelSize)
	if err != nil {
		// The embedded face is known-good; failing to parse it is a build
		// defect, not a runtime condition.
		panic(err)
	}
	return r
}

// Rasterize draws text centered on a tight black bitmap and returns the
// single-channel result. Text with no visible coverage (including the empty
// string) yields a bitmap with no pixel above zero.
func (fr *FontRasterizer) Rasterize(text string) (*Bitmap, error) {
	bounds, _ := font.BoundString(fr.face, text)
	w := (bounds.Max.X - bounds.Min.X).Ceil() + 2*fr.pad
	h := (bounds.Max.Y - bounds.Min.Y).Ceil() + 2*fr.pad

	img := image.NewGray(image.Rect(0, 0, w, h))
	d := &font.Drawer{
		Dst:  img,
		Src:  image.White,
		Face: fr.face,
		// Offsetting the dot by the bound minimum puts the ink exactly pad
		// pixels from every bitmap edge, which centers it.
		Dot: fixed.Point26_6{
			X: fixed.I(fr.pad) - bounds.Min.X,
			Y: fixed.I(fr.pad) - bounds.Min.Y,
		},
	}
	d.DrawString(text)

	return &Bitmap{W: w, H: h, pix: img.Pix}, nil
}
