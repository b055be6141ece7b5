package shape

// Rasterizer renders a line of text into a single-channel occupancy bitmap.
// Implementations draw light-on-dark: covered pixels carry high values. Any
// backend satisfying this contract is substitutable for the font-based one.
type Rasterizer interface {
	Rasterize(text string) (*Bitmap, error)
}

// Bitmap stores a W×H grid of 8-bit coverage values in row-major order.
type Bitmap struct {
	W, H int
	pix  []uint8
}

// NewBitmap allocates a zero-filled (black) bitmap.
func NewBitmap(w, h int) *Bitmap {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &Bitmap{W: w, H: h, pix: make([]uint8, w*h)}
}

// Pix exposes the backing slice so callers can read/write values directly.
func (b *Bitmap) Pix() []uint8 { return b.pix }

// Index returns the linear slice index for coordinates (x, y).
func (b *Bitmap) Index(x, y int) int { return y*b.W + x }

// At returns the coverage value at (x, y).
func (b *Bitmap) At(x, y int) uint8 { return b.pix[y*b.W+x] }

// Set writes the coverage value at (x, y).
func (b *Bitmap) Set(x, y int, v uint8) { b.pix[y*b.W+x] = v }
