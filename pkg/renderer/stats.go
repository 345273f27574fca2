package renderer

import (
	"image"
	"time"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels      int           // Total number of pixels rendered
	TotalSamples     int           // Total number of samples taken
	NonFiniteSamples int           // Samples discarded as NaN or infinite
	TilesRendered    int           // Number of tiles completed
	Workers          int           // Number of workers used
	Duration         time.Duration // Wall time of the render
}

// Merge adds the counters of another stats record
func (rs *RenderStats) Merge(other RenderStats) {
	rs.TotalPixels += other.TotalPixels
	rs.TotalSamples += other.TotalSamples
	rs.NonFiniteSamples += other.NonFiniteSamples
	rs.TilesRendered += other.TilesRendered
}

// AverageSamples returns the mean number of samples per pixel
func (rs RenderStats) AverageSamples() float64 {
	if rs.TotalPixels == 0 {
		return 0
	}
	return float64(rs.TotalSamples) / float64(rs.TotalPixels)
}

// PixelStats accumulates the samples of a single pixel
type PixelStats struct {
	ColorAccum  core.Vec3 // RGB sum of finite samples
	SampleCount int       // Number of samples taken
	NonFinite   int       // Samples counted as black because they were NaN or infinite
}

// AddSample adds a new color sample to the pixel statistics.
// A non-finite sample contributes black so it cannot poison the average.
func (ps *PixelStats) AddSample(color core.Vec3) {
	ps.SampleCount++
	if !color.IsFinite() {
		ps.NonFinite++
		return
	}
	ps.ColorAccum = ps.ColorAccum.Add(color)
}

// GetColor returns the current average color for this pixel
func (ps *PixelStats) GetColor() core.Vec3 {
	if ps.SampleCount == 0 {
		return core.Vec3{}
	}
	return ps.ColorAccum.Multiply(1.0 / float64(ps.SampleCount))
}

// CalculateAverageLuminance returns the mean Rec. 709 luminance of an image in [0, 1]
func CalculateAverageLuminance(img image.Image) float64 {
	bounds := img.Bounds()
	pixels := bounds.Dx() * bounds.Dy()
	if pixels == 0 {
		return 0
	}

	total := 0.0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			total += core.NewVec3(float64(r), float64(g), float64(b)).Divide(0xffff).Luminance()
		}
	}
	return total / float64(pixels)
}
