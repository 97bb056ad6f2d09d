package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
	"github.com/df07/go-sphere-pathtracer/pkg/scene"
)

// errUnknownFormat is returned for output formats other than ppm and png
var errUnknownFormat = errors.New("unknown output format")

// Config holds the parsed command line options
type Config struct {
	SceneType string
	Width     int
	Samples   int
	MaxDepth  int
	Seed      int64
	Format    string
	Output    string // "-" writes to stdout, "" picks output/<scene>/render_<timestamp>.<format>
	Help      bool
}

func main() {
	config, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		os.Exit(2)
	}

	if config.Help {
		printHelp(os.Stdout)
		return
	}

	if err := run(config, os.Stdout, renderer.NewDefaultLogger(os.Stderr)); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newFlagSet registers every command line option on a fresh flag set bound to config
func newFlagSet(config *Config, out io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("pathtracer", flag.ContinueOnError)
	fs.SetOutput(out)

	fs.StringVar(&config.SceneType, "scene", "default", "Scene type: "+strings.Join(scene.Names(), ", "))
	fs.IntVar(&config.Width, "width", 0, "Image width in pixels (0 = scene default)")
	fs.IntVar(&config.Samples, "samples", 0, "Samples per pixel (0 = scene default)")
	fs.IntVar(&config.MaxDepth, "depth", 0, "Maximum ray bounce depth (0 = scene default)")
	fs.Int64Var(&config.Seed, "seed", 42, "Random seed for sampling and scene generation")
	fs.StringVar(&config.Format, "format", "ppm", "Output format: 'ppm' or 'png'")
	fs.StringVar(&config.Output, "out", "-", "Output file ('-' for stdout, empty for output/<scene>/)")
	fs.BoolVar(&config.Help, "help", false, "Show help information")
	return fs
}

// parseFlags parses the command line into a Config
func parseFlags(args []string, errOut io.Writer) (Config, error) {
	var config Config
	if err := newFlagSet(&config, errOut).Parse(args); err != nil {
		return Config{}, err
	}
	if config.Format != "ppm" && config.Format != "png" {
		err := fmt.Errorf("%w: %q", errUnknownFormat, config.Format)
		fmt.Fprintln(errOut, err)
		return Config{}, err
	}
	return config, nil
}

func printHelp(w io.Writer) {
	fmt.Fprintln(w, "Sphere Path Tracer")
	fmt.Fprintln(w, "Usage: pathtracer [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	var config Config
	newFlagSet(&config, w).PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Available scenes:")
	for _, info := range scene.ListScenes() {
		fmt.Fprintf(w, "  %-8s - %s\n", info.ID, info.Description)
	}
}

// createScene builds the named scene with the command line overrides applied
func createScene(config Config) (*scene.Scene, error) {
	sc, err := scene.Create(config.SceneType, config.Seed, geometry.CameraConfig{Width: config.Width})
	if err != nil {
		return nil, err
	}

	sc.SamplingConfig = scene.MergeSamplingConfig(sc.SamplingConfig, scene.SamplingConfig{
		SamplesPerPixel: config.Samples,
		MaxDepth:        config.MaxDepth,
	})
	return sc, nil
}

// run renders the configured scene and writes the image
func run(config Config, stdout io.Writer, logger core.Logger) error {
	sc, err := createScene(config)
	if err != nil {
		return err
	}

	raytracer := renderer.NewRaytracer(sc, logger)
	logger.Printf("Rendering %s scene at %dx%d, %d samples, depth %d...\n",
		config.SceneType, raytracer.Width(), raytracer.Height(),
		sc.SamplingConfig.SamplesPerPixel, sc.SamplingConfig.MaxDepth)

	startTime := time.Now()
	img, stats := raytracer.RenderPass(core.NewSeededSampler(config.Seed))
	logger.Printf("Render completed in %v (%d samples)\n", time.Since(startTime), stats.TotalSamples)

	if config.Output == "-" {
		return encodeImage(stdout, img, config.Format)
	}

	filename := config.Output
	if filename == "" {
		outputDir := filepath.Join("output", config.SceneType)
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
		timestamp := time.Now().Format("20060102_150405")
		filename = filepath.Join(outputDir, fmt.Sprintf("render_%s.%s", timestamp, config.Format))
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer file.Close()

	if err := encodeImage(file, img, config.Format); err != nil {
		return err
	}
	logger.Printf("Render saved as %s\n", filename)
	return nil
}

// encodeImage writes img in the requested format
func encodeImage(w io.Writer, img image.Image, format string) error {
	switch format {
	case "ppm":
		return renderer.WritePPM(w, img)
	case "png":
		if err := png.Encode(w, img); err != nil {
			return fmt.Errorf("encode png: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", errUnknownFormat, format)
	}
}
