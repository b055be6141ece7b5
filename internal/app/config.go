package app

import "flag"

// HUDWidth is the pixel width of the control panel docked right of the view.
const HUDWidth = 230

// Config represents the command-line parameters for the application.
type Config struct {
	Count     int
	Text      string
	PointSize float64
	Color     string
	Cycle     bool
	CycleRate float64
	Width     int
	Height    int
	Scale     int
	TPS       int
	Seed      int64
	Verbose   bool
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Count:     8000,
		Text:      "GO",
		PointSize: 2,
		Color:     "#66ccff",
		CycleRate: 24,
		Width:     480,
		Height:    360,
		Scale:     2,
		TPS:       60,
		Seed:      1337,
	}
}

// Sanitize substitutes defaults for non-positive window and timing values.
// Flag parsing accepts zero and negative numbers; the window and the tick
// rate must be sized from positive ones.
func (c *Config) Sanitize() {
	def := NewConfig()
	if c.Width <= 0 {
		c.Width = def.Width
	}
	if c.Height <= 0 {
		c.Height = def.Height
	}
	if c.Scale <= 0 {
		c.Scale = def.Scale
	}
	if c.TPS <= 0 {
		c.TPS = def.TPS
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Count, "count", c.Count, "number of particles")
	fs.StringVar(&c.Text, "text", c.Text, "morph target text")
	fs.Float64Var(&c.PointSize, "size", c.PointSize, "particle point size")
	fs.StringVar(&c.Color, "color", c.Color, "target material color as a hex string")
	fs.BoolVar(&c.Cycle, "cycle", c.Cycle, "start with hue cycling enabled")
	fs.Float64Var(&c.CycleRate, "cycle-rate", c.CycleRate, "hue cycling rate in degrees per second")
	fs.IntVar(&c.Width, "width", c.Width, "logical view width in pixels")
	fs.IntVar(&c.Height, "height", c.Height, "logical view height in pixels")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for cloud reset")
	fs.BoolVar(&c.Verbose, "v", c.Verbose, "enable debug logging")
}
