package renderer

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/integrator"
)

// Raytracer renders a world through a camera into an image
type Raytracer struct {
	world      geometry.Shape
	camera     *Camera
	integrator integrator.Integrator
	config     SamplingConfig
	logger     core.Logger
}

// NewRaytracer creates a new raytracer.
// The sampling config is the source of the bounce limit: integrators that
// implement integrator.DepthLimited are set to config.MaxDepth.
func NewRaytracer(world geometry.Shape, camera *Camera, integratorInst integrator.Integrator, config SamplingConfig, logger core.Logger) *Raytracer {
	if logger == nil {
		logger = NewDefaultLogger()
	}
	if limited, ok := integratorInst.(integrator.DepthLimited); ok {
		limited.SetMaxDepth(config.MaxDepth)
	}
	return &Raytracer{
		world:      world,
		camera:     camera,
		integrator: integratorInst,
		config:     config,
		logger:     logger,
	}
}

// RenderPass renders the full image without cancellation
func (rt *Raytracer) RenderPass() (*image.RGBA, RenderStats, error) {
	return rt.RenderPassContext(context.Background())
}

// RenderPassContext renders the full image. Tiles are distributed over a worker
// pool; each tile uses its own seeded generator so the output does not depend on
// the number of workers or on scheduling. Tiles not yet started when ctx is
// cancelled are skipped and the context error is returned.
func (rt *Raytracer) RenderPassContext(ctx context.Context) (*image.RGBA, RenderStats, error) {
	if err := rt.config.Validate(); err != nil {
		return nil, RenderStats{}, err
	}
	if rt.camera == nil {
		return nil, RenderStats{}, fmt.Errorf("%w: no camera", ErrInvalidConfig)
	}
	if rt.world == nil || rt.integrator == nil {
		return nil, RenderStats{}, fmt.Errorf("%w: no world or integrator", ErrInvalidConfig)
	}

	startTime := time.Now()
	img := image.NewRGBA(image.Rect(0, 0, rt.config.Width, rt.config.Height))
	tiles := NewTileGrid(rt.config.Width, rt.config.Height, rt.config.TileSize, rt.config.Seed)

	tileRenderer := NewTileRenderer(rt.world, rt.camera, rt.integrator, rt.config)
	pool := NewWorkerPool(tileRenderer, rt.config.NumWorkers, len(tiles))

	rt.logger.Printf("Rendering %dx%d at %d samples per pixel (%d tiles, %d workers)...\n",
		rt.config.Width, rt.config.Height, rt.config.SamplesPerPixel, len(tiles), pool.GetNumWorkers())

	pool.Start()
	for taskID, tile := range tiles {
		pool.SubmitTask(TileTask{Context: ctx, Tile: tile, TaskID: taskID, Image: img})
	}

	stats := RenderStats{Workers: pool.GetNumWorkers()}
	var firstErr error
	for range tiles {
		result, ok := pool.GetResult()
		if !ok {
			break
		}
		if result.Error != nil && firstErr == nil {
			firstErr = fmt.Errorf("tile %d: %w", result.TaskID, result.Error)
		}
		stats.Merge(result.Stats)
	}
	pool.Stop()

	stats.Duration = time.Since(startTime)
	if firstErr != nil {
		rt.logger.Printf("Render stopped after %d of %d tiles: %v\n", stats.TilesRendered, len(tiles), firstErr)
		return nil, stats, firstErr
	}

	if stats.NonFiniteSamples > 0 {
		rt.logger.Printf("Warning: %d non-finite samples were counted as black\n", stats.NonFiniteSamples)
	}
	rt.logger.Printf("Rendered %d pixels, %d samples in %v\n", stats.TotalPixels, stats.TotalSamples, stats.Duration)

	return img, stats, nil
}
