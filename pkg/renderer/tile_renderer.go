package renderer

import (
	"image"
	"image/color"
	"math"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/integrator"
)

// TileRenderer handles the actual rendering of individual tiles using an integrator
type TileRenderer struct {
	world      geometry.Shape
	camera     *Camera
	integrator integrator.Integrator
	config     SamplingConfig
}

// NewTileRenderer creates a new tile renderer with the given world, camera and integrator
func NewTileRenderer(world geometry.Shape, camera *Camera, integratorInst integrator.Integrator, config SamplingConfig) *TileRenderer {
	return &TileRenderer{
		world:      world,
		camera:     camera,
		integrator: integratorInst,
		config:     config,
	}
}

// RenderTileBounds renders pixels within bounds into img.
// Bounds are in image coordinates; the camera's t axis runs bottom to top, so
// image row y is camera row height-1-y. Tiles never overlap, so concurrent calls
// with disjoint bounds may share img.
func (tr *TileRenderer) RenderTileBounds(bounds image.Rectangle, img *image.RGBA, sampler core.Sampler) RenderStats {
	stats := RenderStats{TotalPixels: bounds.Dx() * bounds.Dy(), TilesRendered: 1}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		j := tr.config.Height - 1 - y
		for i := bounds.Min.X; i < bounds.Max.X; i++ {
			var ps PixelStats
			tr.samplePixel(i, j, &ps, sampler)

			img.SetRGBA(i, y, QuantizeColor(ps.ColorAccum, ps.SampleCount))
			stats.TotalSamples += ps.SampleCount
			stats.NonFiniteSamples += ps.NonFinite
		}
	}

	return stats
}

// samplePixel takes SamplesPerPixel jittered samples of pixel (i, j)
func (tr *TileRenderer) samplePixel(i, j int, ps *PixelStats, sampler core.Sampler) {
	width := float64(tr.config.Width)
	height := float64(tr.config.Height)

	for sample := 0; sample < tr.config.SamplesPerPixel; sample++ {
		jitter := sampler.Get2D()
		s := (float64(i) + jitter.X) / width
		t := (float64(j) + jitter.Y) / height

		ray := tr.camera.GetRay(s, t, sampler)
		ps.AddSample(tr.integrator.RayColor(ray, tr.world, sampler))
	}
}

// QuantizeColor converts a sum of samples to an 8-bit pixel: average, gamma 2,
// clamp to [0, 0.999] and scale by 256. NaN channels become 0.
func QuantizeColor(sum core.Vec3, samples int) color.RGBA {
	if samples <= 0 {
		return color.RGBA{A: 255}
	}

	c := sum.Multiply(1.0 / float64(samples)).GammaCorrect(2.0)

	return color.RGBA{
		R: quantizeChannel(c.X),
		G: quantizeChannel(c.Y),
		B: quantizeChannel(c.Z),
		A: 255,
	}
}

func quantizeChannel(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	return uint8(256 * max(0.0, min(0.999, v)))
}
