package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"math"
	"os"

	colorful "github.com/lucasb-eyer/go-colorful"

	"morphcloud/internal/core"
	"morphcloud/internal/engine"
	"morphcloud/internal/shape"
)

func main() {
	text := flag.String("text", "GO", "text target to probe")
	count := flag.Int("count", 8000, "number of particles")
	seed := flag.Int64("seed", 1337, "seed for deterministic runs")
	ticks := flag.Int("ticks", 600, "maximum ticks to simulate")
	dt := flag.Float64("dt", 1.0/60, "seconds per simulated tick")
	radius := flag.Float64("radius", 3.5, "sphere target radius")
	speed := flag.Float64("speed", 2.5, "morph speed in progress units per second")
	falloff := flag.Float64("falloff", 25, "pointer light falloff")
	rasterOut := flag.String("raster", "", "write the glyph bitmap as a PNG to this path and exit")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	if *verbose {
		engine.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	if *rasterOut != "" {
		if err := dumpRaster(*text, *rasterOut); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	cfg := engine.DefaultConfig()
	cfg.ParticleCount = *count
	cfg.Radius = *radius
	cfg.MorphSpeed = *speed
	cfg.LightFalloff = *falloff
	cfg.Seed = *seed
	eng := engine.New(cfg)
	eng.SetText(*text)

	stats := eng.TextStats()
	fmt.Printf("Text %q: bitmap %dx%d, %d edge + %d fill candidates\n",
		*text, stats.BitmapW, stats.BitmapH, stats.EdgeCount, stats.FillCount)
	if !eng.HasTextTarget() {
		fmt.Println("Degenerate target: the cloud holds the sphere.")
		return
	}

	// Park the pointer off-center so the intensity range exercises the
	// distance falloff instead of reporting a uniform cloud.
	pointer := core.Pointer{X: 0.3, Y: -0.2}
	white := colorful.Color{R: 1, G: 1, B: 1}

	settled := 0
	elapsed := 0.0
	for i := 1; i <= *ticks; i++ {
		elapsed += *dt
		eng.Tick(core.FrameInput{
			Delta:       *dt,
			Elapsed:     elapsed,
			Pointer:     pointer,
			Morphing:    true,
			TargetColor: white,
		})
		if eng.Progress() >= 1 {
			settled = i
			break
		}
	}
	if settled == 0 {
		fmt.Printf("Morph incomplete after %d ticks (progress %.4f)\n", *ticks, eng.Progress())
	} else {
		fmt.Printf("Morph settled after %d ticks (%.2fs simulated)\n", settled, float64(settled)*(*dt))
	}

	minX, maxX := axisRange(eng.Positions(), 0)
	minY, maxY := axisRange(eng.Positions(), 1)
	minZ, maxZ := axisRange(eng.Positions(), 2)
	fmt.Printf("Bounds: x [%.2f, %.2f]  y [%.2f, %.2f]  z [%.2f, %.2f]\n",
		minX, maxX, minY, maxY, minZ, maxZ)

	lo, hi := axisRange(eng.Colors(), 0)
	fmt.Printf("Intensity: [%.3f, %.3f] with pointer at (%.2f, %.2f)\n", lo, hi, pointer.X, pointer.Y)
}

// axisRange scans one component of an xyz-interleaved slice.
func axisRange(values []float64, axis int) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for i := axis; i < len(values); i += 3 {
		if values[i] < lo {
			lo = values[i]
		}
		if values[i] > hi {
			hi = values[i]
		}
	}
	return lo, hi
}

func dumpRaster(text, path string) error {
	bm, err := shape.DefaultRasterizer().Rasterize(text)
	if err != nil {
		return fmt.Errorf("rasterize %q: %w", text, err)
	}
	img := &image.Gray{Pix: bm.Pix(), Stride: bm.W, Rect: image.Rect(0, 0, bm.W, bm.H)}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Printf("Wrote %dx%d bitmap to %s\n", bm.W, bm.H, path)
	return nil
}
