package main

import (
	"flag"

	"github.com/talgya/mini-atlas/internal/noise"
	"github.com/talgya/mini-atlas/internal/world"
)

// Flags holds the command-line parameters. Values set on the command line
// override the config file and environment.
type Flags struct {
	ConfigPath  string
	Seed        int64
	Width       int
	Height      int
	Spacing     float64
	Sites       int
	Relaxations int
	Kernel      string
	Bias        float64
	Verbose     bool
}

// NewFlags returns Flags populated with the generation defaults.
func NewFlags() *Flags {
	def := world.DefaultGenConfig()
	return &Flags{
		Seed:        def.Seed,
		Width:       def.Width,
		Height:      def.Height,
		Spacing:     def.MinSpacing,
		Relaxations: def.Relaxations,
		Kernel:      def.Kernel.String(),
	}
}

// Bind attaches the flags to the provided FlagSet.
func (f *Flags) Bind(fs *flag.FlagSet) {
	fs.StringVar(&f.ConfigPath, "config", f.ConfigPath, "YAML config file (defaults to $ATLAS_CONFIG)")
	fs.Int64Var(&f.Seed, "seed", f.Seed, "map seed, 0 for a random one")
	fs.IntVar(&f.Width, "width", f.Width, "canvas width")
	fs.IntVar(&f.Height, "height", f.Height, "canvas height")
	fs.Float64Var(&f.Spacing, "spacing", f.Spacing, "minimum distance between sites")
	fs.IntVar(&f.Sites, "sites", f.Sites, "target site count; overrides the spacing unless -spacing is also set")
	fs.IntVar(&f.Relaxations, "relax", f.Relaxations, "Lloyd relaxation passes")
	fs.StringVar(&f.Kernel, "kernel", f.Kernel, "noise kernel: simplex or perlin")
	fs.Float64Var(&f.Bias, "bias", f.Bias, "elevation bias added to every site")
	fs.BoolVar(&f.Verbose, "v", f.Verbose, "debug logging")
}

// Apply copies every flag explicitly set on fs into cfg. Setting -sites
// without -spacing drops the configured spacing so the site count is used.
func (f *Flags) Apply(fs *flag.FlagSet, cfg *world.GenConfig) error {
	var err error
	set := make(map[string]bool)
	fs.Visit(func(fl *flag.Flag) {
		set[fl.Name] = true
		switch fl.Name {
		case "seed":
			cfg.Seed = f.Seed
		case "width":
			cfg.Width = f.Width
		case "height":
			cfg.Height = f.Height
		case "spacing":
			cfg.MinSpacing = f.Spacing
		case "sites":
			cfg.SiteCount = f.Sites
		case "relax":
			cfg.Relaxations = f.Relaxations
		case "bias":
			cfg.ElevationBias = f.Bias
		case "kernel":
			var k noise.Kernel
			if k, err = noise.ParseKernel(f.Kernel); err == nil {
				cfg.Kernel = k
			}
		}
	})
	if set["sites"] && !set["spacing"] {
		cfg.MinSpacing = 0
	}
	return err
}
