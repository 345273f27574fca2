package renderer

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/integrator"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
)

func TestQuantizeColor(t *testing.T) {
	tests := []struct {
		name     string
		sum      core.Vec3
		samples  int
		expected color.RGBA
	}{
		{"gamma and truncation", core.NewVec3(1.0, 0.25, 0), 1, color.RGBA{255, 128, 0, 255}},
		{"averages samples", core.NewVec3(4.0, 1.0, 0), 4, color.RGBA{255, 128, 0, 255}},
		{"clamps above one", core.NewVec3(9, 9, 9), 1, color.RGBA{255, 255, 255, 255}},
		{"clamps negative", core.NewVec3(-1, -1, -1), 1, color.RGBA{0, 0, 0, 255}},
		{"nan becomes zero", core.NewVec3(math.NaN(), 1, 0), 1, color.RGBA{0, 255, 0, 255}},
		{"no samples", core.NewVec3(1, 1, 1), 0, color.RGBA{0, 0, 0, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := QuantizeColor(tt.sum, tt.samples)
			if got != tt.expected {
				t.Errorf("QuantizeColor(%v, %d) = %v, expected %v", tt.sum, tt.samples, got, tt.expected)
			}
		})
	}
}

func TestPixelStatsNonFiniteSamplesCountAsBlack(t *testing.T) {
	var ps PixelStats
	ps.AddSample(core.NewVec3(1, 1, 1))
	ps.AddSample(core.NewVec3(math.NaN(), 0, 0))
	ps.AddSample(core.NewVec3(math.Inf(1), 0, 0))
	ps.AddSample(core.NewVec3(1, 1, 1))

	if ps.SampleCount != 4 || ps.NonFinite != 2 {
		t.Fatalf("Expected 4 samples with 2 non-finite, got %d and %d", ps.SampleCount, ps.NonFinite)
	}
	if !vecNear(ps.GetColor(), core.NewVec3(0.5, 0.5, 0.5), 1e-12) {
		t.Errorf("Expected average 0.5, got %v", ps.GetColor())
	}
}

func TestTileRendererConstantIntegrator(t *testing.T) {
	config := SamplingConfig{Width: 4, Height: 3, SamplesPerPixel: 3, MaxDepth: 1, TileSize: 2}
	camera := NewCamera(forwardCameraConfig())
	mock := &MockIntegrator{returnColor: core.NewVec3(0.25, 0.25, 0.25)}
	tr := NewTileRenderer(geometry.NewList(), camera, mock, config)

	img := image.NewRGBA(image.Rect(0, 0, config.Width, config.Height))
	bounds := image.Rect(1, 1, 3, 3)
	stats := tr.RenderTileBounds(bounds, img, core.NewSeededSampler(42))

	if stats.TotalPixels != 4 || stats.TotalSamples != 12 {
		t.Errorf("Expected 4 pixels and 12 samples, got %d and %d", stats.TotalPixels, stats.TotalSamples)
	}

	// Only pixels inside the bounds are written
	for y := 0; y < config.Height; y++ {
		for x := 0; x < config.Width; x++ {
			got := img.RGBAAt(x, y)
			inside := image.Pt(x, y).In(bounds)
			if inside && got != (color.RGBA{128, 128, 128, 255}) {
				t.Errorf("Pixel (%d,%d) = %v, expected gray", x, y, got)
			}
			if !inside && got != (color.RGBA{}) {
				t.Errorf("Pixel (%d,%d) outside bounds was written: %v", x, y, got)
			}
		}
	}
}

// TestTileRendererNormalSphere renders a 2x2 image with one sample at each
// pixel center. Only the top-right pixel sees the sphere.
func TestTileRendererNormalSphere(t *testing.T) {
	config := SamplingConfig{Width: 2, Height: 2, SamplesPerPixel: 1, MaxDepth: 1, TileSize: 2}
	camera := NewCamera(forwardCameraConfig())
	world := geometry.NewList(
		geometry.NewSphere(core.NewVec3(0.5, 0.5, -1), 0.25, material.NewNormalShade()),
	)
	integ := integrator.NewPathTracingIntegrator(config.MaxDepth, integrator.DefaultBackground())
	tr := NewTileRenderer(world, camera, integ, config)

	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	tr.RenderTileBounds(img.Bounds(), img, fixedSampler{value: 0.5})

	tests := []struct {
		name     string
		x, y     int
		expected color.RGBA
	}{
		{"top left sky", 0, 0, color.RGBA{206, 227, 255, 255}},
		{"top right sphere", 1, 0, color.RGBA{139, 139, 243, 255}},
		{"bottom left sky", 0, 1, color.RGBA{236, 244, 255, 255}},
		{"bottom right sky", 1, 1, color.RGBA{236, 244, 255, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := img.RGBAAt(tt.x, tt.y)
			if got != tt.expected {
				t.Errorf("Pixel (%d,%d) = %v, expected %v", tt.x, tt.y, got, tt.expected)
			}
		})
	}
}

func TestNewTileGrid(t *testing.T) {
	tiles := NewTileGrid(70, 40, 32, 7)

	if len(tiles) != 6 {
		t.Fatalf("Expected 3x2 = 6 tiles, got %d", len(tiles))
	}

	covered := make(map[image.Point]int)
	for i, tile := range tiles {
		if tile.ID != i {
			t.Errorf("Expected tile %d to have ID %d, got %d", i, i, tile.ID)
		}
		for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
			for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
				covered[image.Pt(x, y)]++
			}
		}
	}

	if len(covered) != 70*40 {
		t.Errorf("Expected every pixel covered, got %d of %d", len(covered), 70*40)
	}
	for p, n := range covered {
		if n != 1 {
			t.Fatalf("Pixel %v covered %d times", p, n)
		}
	}

	// Edge tiles are clipped to the image
	last := tiles[len(tiles)-1].Bounds
	if last != image.Rect(64, 32, 70, 40) {
		t.Errorf("Expected last tile clipped to (64,32)-(70,40), got %v", last)
	}
}

func TestTileSeedsAreDeterministic(t *testing.T) {
	a := NewTileGrid(64, 64, 32, 42)
	b := NewTileGrid(64, 64, 32, 42)

	for i := range a {
		if a[i].Random.Int63() != b[i].Random.Int63() {
			t.Errorf("Tile %d generators differ for the same seed", i)
		}
	}

	first := NewTile(0, image.Rect(0, 0, 1, 1), 42).Random.Int63()
	second := NewTile(1, image.Rect(0, 0, 1, 1), 42).Random.Int63()
	if first == second {
		t.Error("Expected different tiles to use different seeds")
	}
}
