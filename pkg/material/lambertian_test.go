package material

import (
	"math/rand"
	"testing"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

func TestLambertian_NeverDegenerate(t *testing.T) {
	albedo := core.NewVec3(0.5, 0.7, 0.9)
	lambertian := NewLambertian(albedo)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	normals := []core.Vec3{
		core.NewVec3(0, 0, 1),
		core.NewVec3(0, -1, 0),
		core.NewVec3(1, 1, 1).Unit(),
	}
	ray := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))

	for _, normal := range normals {
		hit := HitRecord{Point: core.NewVec3(0, 0, 0), Normal: normal, FrontFace: true}
		for i := 0; i < 1000; i++ {
			scatter, didScatter := lambertian.Scatter(ray, hit, sampler)
			if !didScatter {
				t.Fatal("Lambertian should always scatter")
			}
			if scatter.Scattered.Direction.NearZero() {
				t.Fatalf("Degenerate scatter direction for normal %v", normal)
			}
			if scatter.Attenuation != albedo {
				t.Fatalf("Expected attenuation %v, got %v", albedo, scatter.Attenuation)
			}
			if scatter.Scattered.Origin != hit.Point {
				t.Fatalf("Scattered ray should start at the hit point, got %v", scatter.Scattered.Origin)
			}
		}
	}
}

func TestLambertian_CancelledDirectionFallsBackToNormal(t *testing.T) {
	lambertian := NewLambertian(core.NewVec3(0.8, 0.8, 0.8))
	normal := core.NewVec3(0, 1, 0)
	hit := HitRecord{Point: core.NewVec3(1, 2, 3), Normal: normal, FrontFace: true}

	// Maps to the unit-ball point (0, -0.5, 0), whose unit vector cancels the normal
	sampler := tripleSampler{sample3D: core.NewVec3(0.5, 0.25, 0.5)}

	scatter, didScatter := lambertian.Scatter(core.NewRay(core.NewVec3(1, 3, 3), core.NewVec3(0, -1, 0)), hit, sampler)
	if !didScatter {
		t.Fatal("Lambertian should always scatter")
	}
	if scatter.Scattered.Direction != normal {
		t.Errorf("Expected fallback direction %v, got %v", normal, scatter.Scattered.Direction)
	}
}

func TestLambertian_Hemisphere(t *testing.T) {
	lambertian := NewLambertian(core.NewVec3(0.8, 0.8, 0.8))
	sampler := core.NewSeededSampler(7)
	normal := core.NewVec3(0, 0, 1)
	hit := HitRecord{Normal: normal, FrontFace: true}

	for i := 0; i < 1000; i++ {
		scatter, _ := lambertian.Scatter(core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1)), hit, sampler)
		// normal + unit vector never points below the tangent plane
		if scatter.Scattered.Direction.Dot(normal) < 0 {
			t.Fatalf("Scatter direction %v below the surface", scatter.Scattered.Direction)
		}
	}
}

func TestLambertian_TexturedAlbedo(t *testing.T) {
	even := core.NewVec3(1, 1, 1)
	odd := core.NewVec3(0, 0, 0)
	lambertian := NewTexturedLambertian(NewChecker(even, odd, 1.0))
	sampler := core.NewSeededSampler(1)
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))

	tests := []struct {
		point    core.Vec3
		expected core.Vec3
	}{
		{core.NewVec3(0.5, 0.5, 0.5), even},
		{core.NewVec3(1.5, 0.5, 0.5), odd},
		{core.NewVec3(-0.5, 0.5, 0.5), odd},
		{core.NewVec3(1.5, 1.5, 0.5), even},
	}

	for _, tt := range tests {
		hit := HitRecord{Point: tt.point, Normal: core.NewVec3(0, 1, 0), FrontFace: true}
		scatter, _ := lambertian.Scatter(ray, hit, sampler)
		if scatter.Attenuation != tt.expected {
			t.Errorf("At %v expected %v, got %v", tt.point, tt.expected, scatter.Attenuation)
		}
	}
}
