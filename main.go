package main

import (
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"time"

	"github.com/df07/go-optics-bench/internal/injector"
	"github.com/df07/go-optics-bench/pkg/bench"
	"github.com/df07/go-optics-bench/pkg/core"
	"github.com/df07/go-optics-bench/pkg/log"
	"github.com/df07/go-optics-bench/pkg/optics"
)

// options holds the parsed command line
type options struct {
	bench   string
	config  string
	rays    int
	seed    int64
	seedSet bool
	demo    string
	verbose bool
	traces  int // Traces printed after a bench run
}

func main() {
	// Parse command line flags
	benchName := flag.String("bench", "txi-sxr", "Bench preset: "+strings.Join(bench.PresetNames(), ", "))
	configPath := flag.String("config", "", "YAML bench description (overrides -bench)")
	rays := flag.Int("rays", 500, "Number of rays to trace")
	seed := flag.Int64("seed", 1, "Bench seed (overrides the seed of a -config file)")
	demo := flag.String("demo", "bench", "Demo: 'vector', 'collimator', 'flatmirror' or 'bench'")
	verbose := flag.Bool("verbose", false, "Log mirror diagnostics at debug level")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	// Show help if requested
	if *help {
		fmt.Println("Optical Bench Ray Tracer")
		fmt.Println("Usage: optics-bench [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Available benches:")
		fmt.Println("  txi-sxr - TXI soft X-ray branch (PC2S, M1K3, M2K3, PC1K3, PC2K3)")
		fmt.Println("  txi-hxr - TXI hard X-ray branch (PC1H, M1L0, M1L1, PC1L1, PC2L1)")
		fmt.Println()
		fmt.Println("Example bench descriptions are in configs/")
		return
	}

	opts := options{
		bench:   *benchName,
		config:  *configPath,
		rays:    *rays,
		seed:    *seed,
		demo:    *demo,
		verbose: *verbose,
		traces:  5,
	}
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			opts.seedSet = true
		}
	})

	if err := run(opts, os.Stdout); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func run(opts options, out io.Writer) error {
	level := log.LevelInfo
	if opts.verbose {
		level = log.LevelDebug
	}

	switch opts.demo {
	case "vector":
		return vectorDemo(out)
	case "collimator":
		return collimatorDemo(out)
	case "flatmirror":
		logger := injector.InitializeLogger(level)
		defer func() { _ = logger.Sync() }()
		return flatMirrorDemo(out, opts.seed, logger)
	case "bench":
		return benchDemo(out, opts, level)
	default:
		return fmt.Errorf("unknown demo %q", opts.demo)
	}
}

// vectorDemo prints the basic vector operations
func vectorDemo(out io.Writer) error {
	v1 := core.NewVec3(1, 2, 3)
	v2 := core.NewVec3(0.1, 0.2, 0.3)

	fmt.Fprintf(out, "%v + %v = %v\n", v1, v2, v1.Add(v2))
	fmt.Fprintf(out, "%v - %v = %v\n", v1, v2, v1.Subtract(v2))
	fmt.Fprintf(out, "%v . %v = %g\n", v1, v2, v1.Dot(v2))
	fmt.Fprintf(out, "%v x %v = %v\n", v1, v2, v1.Cross(v2))

	r := 0.5
	fmt.Fprintf(out, "%v * %g = %v\n", v1, r, v1.Multiply(r))
	divided, err := v1.Divide(r)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%v / %g = %v\n", v1, r, divided)

	angle := core.Deg2Rad(90.0)
	fmt.Fprintf(out, "%v rotate 90-deg X = %v\n", v2, v2.RotateX(angle))
	fmt.Fprintf(out, "%v rotate 90-deg Y = %v\n", v2, v2.RotateY(angle))
	fmt.Fprintf(out, "%v rotate 90-deg Z = %v\n", v2, v2.RotateZ(angle))
	fmt.Fprintf(out, "%v x %v = %v\n", v1, v2.RotateX(angle), v1.Cross(v2.RotateX(angle)))

	normalized, err := v2.Normalized()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Normalized %v = %v\n", v2, normalized)

	v3 := core.NewVec3(1, -1, 0)
	v4 := core.NewVec3(0, 2, 0)
	reflected, err := v3.Reflect(v4)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%v reflect from %v = %v\n", v3, v4, reflected)
	return nil
}

// collimatorDemo sends one ray through two collimators at different tilts
func collimatorDemo(out io.Writer) error {
	direction, err := core.NewVec3(1, 1, 0).Normalized()
	if err != nil {
		return err
	}
	in := core.NewRay(core.NewVec3(0, 0, 0), direction)
	fmt.Fprintf(out, "Input Ray: %v\n\n", in)

	setups := []struct {
		center, normal core.Vec3
	}{
		{core.NewVec3(3, 0, 0), direction},
		{core.NewVec3(2, 0, 0), core.NewVec3(1, 0, 0)},
	}

	for _, s := range setups {
		c, err := optics.NewCollimator("PC", s.center, s.normal, 1, 3)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Collimator: %v %v %g %g\n", c.Center, c.Normal, c.InnerRadius, c.OuterRadius)

		ray, err := c.Transport(in)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Output Ray: %v\n\n", ray)
	}
	return nil
}

// flatMirrorDemo folds a +Z ray on a mirror with ±0.1 rad rotation jitter
func flatMirrorDemo(out io.Writer, seed int64, logger log.Logger) error {
	in := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 1))
	fmt.Fprintf(out, "Input Ray: %v\n\n", in)

	m, err := optics.NewFlatMirror(optics.FlatMirrorConfig{
		Name:           "M",
		Length:         1.0,
		Width:          0.1,
		Thickness:      0.1,
		Center:         core.NewVec3(0, 0, 1.5),
		Normal:         core.NewVec3(1, 0, -1),
		Orientation:    optics.XPlus,
		RotationJitter: optics.Range{Lo: -0.1, Hi: 0.1},
		Seed:           seed,
		Verbose:        true,
		Logger:         logger,
	})
	if err != nil {
		return err
	}

	ray, err := m.Transport(in)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Output Ray: %v\n", ray)
	fmt.Fprintf(out, "Deflection: %.4f rad\n", math.Acos(math.Min(1, ray.Direction.Dot(in.Direction))))
	return nil
}

// benchDemo traces rays through the selected bench and prints the statistics
func benchDemo(out io.Writer, opts options, level log.Level) error {
	app, err := injector.InitializeApp(level, bench.Selection{
		Preset:     opts.bench,
		ConfigPath: opts.config,
		Seed:       opts.seed,
		SeedSet:    opts.seedSet,
		Verbose:    opts.verbose,
	})
	if err != nil {
		return err
	}
	defer func() { _ = app.Logger.Sync() }()
	b := app.Bench

	fmt.Fprintf(out, "Bench %s:", b.Name)
	for _, o := range b.Optics {
		fmt.Fprintf(out, " %s", o.Name())
	}
	fmt.Fprintln(out)

	startTime := time.Now()
	stats, traces, err := b.Run(opts.rays)
	if err != nil {
		app.Logger.Error("bench run failed", log.Err(err))
		return err
	}
	fmt.Fprintf(out, "Traced in %v\n", time.Since(startTime))
	fmt.Fprintln(out, stats)

	for i, rec := range traces {
		if i == opts.traces {
			break
		}
		status := "transmitted"
		if !rec.Transmitted() {
			status = "stopped by " + rec.StoppedBy
		}
		fmt.Fprintf(out, "\nTrace %s (%s)\n", rec.ID, status)
		for _, p := range rec.Points {
			fmt.Fprintf(out, "  %v\n", p)
		}
	}
	return nil
}
