// Command atlasgen generates a procedural atlas and logs a summary of it.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/talgya/mini-atlas/internal/config"
	"github.com/talgya/mini-atlas/internal/features"
	"github.com/talgya/mini-atlas/internal/world"
)

func main() {
	flags := NewFlags()
	fs := flag.NewFlagSet("atlasgen", flag.ExitOnError)
	flags.Bind(fs)
	fs.Parse(os.Args[1:])

	level := slog.LevelInfo
	if flags.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	if err := run(flags, fs); err != nil {
		slog.Error("generation failed", "error", err)
		os.Exit(1)
	}
}

func run(flags *Flags, fs *flag.FlagSet) error {
	file, err := config.Load(flags.ConfigPath)
	if err != nil {
		return err
	}
	cfg, err := file.GenConfig()
	if err != nil {
		return err
	}
	if err := flags.Apply(fs, &cfg); err != nil {
		return err
	}

	slog.Info("generating atlas", "width", cfg.Width, "height", cfg.Height, "seed", cfg.Seed, "kernel", cfg.Kernel)
	atlas, err := world.Generate(cfg)
	if err != nil {
		return err
	}

	counts := atlas.ClassCounts()
	for _, c := range []features.TriangleClass{features.ClassLand, features.ClassWater, features.ClassCoast} {
		slog.Info("triangles", "class", c, "count", counts[c])
	}

	closed := 0
	for _, l := range atlas.Features.Coast.Loops {
		if l.Closed {
			closed++
		}
	}
	slog.Info("coastline", "loops", len(atlas.Features.Coast.Loops), "closed", closed)
	slog.Info("rivers", "roots", len(atlas.Features.Rivers.Roots), "largest", atlas.LargestRiver())
	for i, r := range atlas.Features.Ranges {
		slog.Info("mountain range", "index", i, "sites", len(r.Sites),
			"bounds", fmt.Sprintf("%.0f,%.0f..%.0f,%.0f", r.Bounds.MinX, r.Bounds.MinY, r.Bounds.MaxX, r.Bounds.MaxY))
	}

	slog.Info("atlas ready",
		"run", atlas.RunID,
		"seed", atlas.Config.Seed,
		"sites", atlas.Mesh.NumSites(),
		"land_sites", atlas.LandSites(),
	)
	return nil
}
