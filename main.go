package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/df07/go-sphere-pathtracer/pkg/imageio"
	"github.com/df07/go-sphere-pathtracer/pkg/integrator"
	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
	"github.com/df07/go-sphere-pathtracer/pkg/scene"
)

// Config holds the parsed command line options
type Config struct {
	SceneType      string
	Width          int
	Samples        int
	MaxDepth       int
	Workers        int
	Seed           int64
	IntegratorType string
	Output         string
	Help           bool
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// run parses args, renders the selected scene and writes the image
func run(args []string, stdout, stderr io.Writer) error {
	config, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	if config.Help {
		showHelp(stdout)
		return nil
	}

	// Image data may go to stdout, so progress always goes to stderr
	logger := renderer.NewWriterLogger(stderr)

	selectedScene, err := createScene(config.SceneType)
	if err != nil {
		return err
	}
	applyOverrides(selectedScene, config)
	if err := selectedScene.Validate(); err != nil {
		return err
	}

	integ, err := createIntegrator(config.IntegratorType, selectedScene)
	if err != nil {
		return err
	}

	logger.Printf("Rendering scene %q (%d spheres) with the %s integrator\n",
		selectedScene.Name, selectedScene.GetPrimitiveCount(), config.IntegratorType)

	raytracer := renderer.NewRaytracer(selectedScene.World, selectedScene.Camera, integ, selectedScene.SamplingConfig, logger)
	img, stats, err := raytracer.RenderPass()
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}
	logger.Printf("Average luminance: %.3f, %.1f samples per pixel\n",
		renderer.CalculateAverageLuminance(img), stats.AverageSamples())
	if stats.NonFiniteSamples > 0 {
		logger.Printf("%.4f%% of samples were non-finite\n",
			100*float64(stats.NonFiniteSamples)/float64(stats.TotalSamples))
	}

	if config.Output == "-" {
		return imageio.WritePPM(stdout, img)
	}
	if err := imageio.Save(config.Output, img); err != nil {
		return err
	}
	logger.Printf("Render saved as %s\n", config.Output)
	return nil
}

// newFlagSet defines the command line flags, storing values into config
func newFlagSet(config *Config, output io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("pathtracer", flag.ContinueOnError)
	fs.SetOutput(output)

	fs.StringVar(&config.SceneType, "scene", "default", "Scene name or path to a .json scene file")
	fs.IntVar(&config.Width, "width", 0, "Image width in pixels; height follows the camera aspect ratio (0 = scene default)")
	fs.IntVar(&config.Samples, "samples", 0, "Samples per pixel (0 = scene default)")
	fs.IntVar(&config.MaxDepth, "depth", 0, "Maximum ray bounce depth (0 = scene default)")
	fs.IntVar(&config.Workers, "workers", 0, "Number of parallel workers (0 = CPU count)")
	fs.Int64Var(&config.Seed, "seed", 0, "Base random seed (0 = scene default)")
	fs.StringVar(&config.IntegratorType, "integrator", "recursive", "Integrator: 'recursive' or 'iterative'")
	fs.StringVar(&config.Output, "out", "-", "Output file (.ppm or .png); '-' writes PPM to stdout")
	fs.BoolVar(&config.Help, "help", false, "Show help information")
	return fs
}

// parseFlags parses command line flags into a Config
func parseFlags(args []string, output io.Writer) (Config, error) {
	config := Config{}
	fs := newFlagSet(&config, output)

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if fs.NArg() > 0 {
		return Config{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if config.Width < 0 || config.Samples < 0 || config.MaxDepth < 0 || config.Workers < 0 {
		return Config{}, errors.New("width, samples, depth and workers must not be negative")
	}
	return config, nil
}

// showHelp displays usage information
func showHelp(w io.Writer) {
	fmt.Fprintln(w, "Sphere Path Tracer")
	fmt.Fprintln(w, "Usage: pathtracer [options]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	newFlagSet(&Config{}, w).PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Available scenes:")
	for _, info := range scene.ListScenes() {
		fmt.Fprintf(w, "  %-10s - %s\n", info.Name, info.Description)
	}
	fmt.Fprintln(w, "  <file>.json - Scene description file")
}

// createScene creates a scene based on the scene type string
func createScene(sceneType string) (*scene.Scene, error) {
	if sceneType == "" {
		return nil, fmt.Errorf("%w: empty scene name", scene.ErrUnknownScene)
	}
	return scene.NewSceneByName(sceneType)
}

// applyOverrides merges command line settings into the scene's sampling config
func applyOverrides(s *scene.Scene, config Config) {
	if config.Width > 0 {
		s.SetWidth(config.Width)
	}
	s.SamplingConfig = renderer.MergeSamplingConfig(s.SamplingConfig, renderer.SamplingConfig{
		SamplesPerPixel: config.Samples,
		MaxDepth:        config.MaxDepth,
		NumWorkers:      config.Workers,
		Seed:            config.Seed,
	})
}

// createIntegrator creates the radiance estimator for the scene
func createIntegrator(integratorType string, s *scene.Scene) (integrator.Integrator, error) {
	switch integratorType {
	case "recursive":
		return integrator.NewPathTracingIntegrator(s.SamplingConfig.MaxDepth, s.Background), nil
	case "iterative":
		return integrator.NewIterativePathTracingIntegrator(s.SamplingConfig.MaxDepth, s.Background), nil
	default:
		return nil, fmt.Errorf("unknown integrator type %q", integratorType)
	}
}
