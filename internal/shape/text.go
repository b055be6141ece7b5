package shape

import (
	"fmt"
	"strings"

	"morphcloud/pkg/core"
)

// Text sampling tunables. These encode the look of the effect; they are
// artistic values, not derived quantities.
const (
	// TextSpan is the world-unit width the full bitmap maps onto.
	TextSpan = 18.0
	// sampleStride is the pixel step between candidate samples. Must stay
	// ≥2 so the edge test can look one stride in each direction.
	sampleStride = 2
	// inkThreshold is the channel value a pixel must exceed to count as
	// coverage. Low enough to admit the anti-aliased glyph fringe.
	inkThreshold = 96
	// edgeJitter and fillJitter are the world-unit jitter magnitudes for
	// outline and interior points. The outline stays sharp; the fill is
	// loosened enough to mask the sampling grid.
	edgeJitter = 0.05
	fillJitter = 0.2
)

// glyphSample is a classified bitmap pixel. Samples live only between
// rasterization and point assignment.
type glyphSample struct {
	x, y   int
	isEdge bool
}

// TextStats summarizes the last text sampling pass for HUDs and probes.
type TextStats struct {
	EdgeCount int
	FillCount int
	BitmapW   int
	BitmapH   int
}

// Degenerate reports whether the pass produced no usable candidates.
func (s TextStats) Degenerate() bool { return s.EdgeCount+s.FillCount == 0 }

// SampleText renders text through the rasterizer and distributes count
// particles over the glyph coverage, outline pixels first so legibility
// degrades gracefully under small particle budgets. Degenerate input (blank
// text or no covered pixels) yields an all-zero slice and empty stats; a
// rasterizer failure additionally returns the error.
//
// The set of underlying sample coordinates is deterministic for a given
// bitmap, but the per-class shuffle and the per-point jitter draw from rng,
// so repeated calls with identical inputs return different, shape-equivalent
// clouds.
func SampleText(r Rasterizer, text string, count int, rng *core.RNG) ([]float64, TextStats, error) {
	if count <= 0 {
		return nil, TextStats{}, nil
	}
	pts := make([]float64, 3*count)
	if strings.TrimSpace(text) == "" {
		return pts, TextStats{}, nil
	}

	bm, err := r.Rasterize(text)
	if err != nil {
		return pts, TextStats{}, fmt.Errorf("shape: rasterize %q: %w", text, err)
	}
	if bm == nil || bm.W <= 0 || bm.H <= 0 {
		return pts, TextStats{}, nil
	}

	edges, fill := classify(bm)
	if len(edges)+len(fill) == 0 {
		return pts, TextStats{}, nil
	}
	rng.Shuffle(len(edges), func(i, j int) { edges[i], edges[j] = edges[j], edges[i] })
	rng.Shuffle(len(fill), func(i, j int) { fill[i], fill[j] = fill[j], fill[i] })
	candidates := append(edges, fill...)

	// Uniform scale: the full bitmap width spans TextSpan world units.
	// Offsets center the glyphs at the origin; bitmap y grows downward,
	// world y grows upward; the glyph plane sits at z=0 before jitter.
	scale := TextSpan / float64(bm.W)
	halfW := float64(bm.W) / 2
	halfH := float64(bm.H) / 2
	for i := 0; i < count; i++ {
		s := candidates[i%len(candidates)]
		mag := fillJitter
		if s.isEdge {
			mag = edgeJitter
		}
		pts[3*i+0] = (float64(s.x)-halfW)*scale + rng.Jitter(mag)
		pts[3*i+1] = -(float64(s.y)-halfH)*scale + rng.Jitter(mag)
		pts[3*i+2] = rng.Jitter(mag)
	}

	stats := TextStats{
		EdgeCount: len(edges),
		FillCount: len(fill),
		BitmapW:   bm.W,
		BitmapH:   bm.H,
	}
	return pts, stats, nil
}

// classify walks the bitmap on the sampling stride and splits covered pixels
// into outline and interior sets. A covered pixel is outline when any
// stride-distant 4-neighbour falls below the ink threshold.
func classify(bm *Bitmap) (edges, fill []glyphSample) {
	for y := sampleStride; y < bm.H-sampleStride; y += sampleStride {
		for x := sampleStride; x < bm.W-sampleStride; x += sampleStride {
			if bm.At(x, y) <= inkThreshold {
				continue
			}
			isEdge := bm.At(x-sampleStride, y) < inkThreshold ||
				bm.At(x+sampleStride, y) < inkThreshold ||
				bm.At(x, y-sampleStride) < inkThreshold ||
				bm.At(x, y+sampleStride) < inkThreshold
			s := glyphSample{x: x, y: y, isEdge: isEdge}
			if isEdge {
				edges = append(edges, s)
			} else {
				fill = append(fill, s)
			}
		}
	}
	return edges, fill
}
