package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/integrator"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
)

// ErrInvalidScene is returned for scene descriptions that cannot be built
var ErrInvalidScene = errors.New("invalid scene description")

// Vec3 is a JSON triple: [x, y, z]
type Vec3 [3]float64

func (v Vec3) toCore() core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

// File is the JSON representation of a scene
type File struct {
	Name       string          `json:"name"`
	Camera     CameraFile      `json:"camera"`
	Sampling   SamplingFile    `json:"sampling"`
	Background *BackgroundFile `json:"background,omitempty"`
	Materials  []MaterialFile  `json:"materials"`
	Spheres    []SphereFile    `json:"spheres"`
}

// CameraFile describes the viewpoint. Zero fields fall back to defaults.
type CameraFile struct {
	LookFrom      Vec3    `json:"look_from"`
	LookAt        Vec3    `json:"look_at"`
	Up            *Vec3   `json:"up,omitempty"`
	VFov          float64 `json:"vfov"`
	AspectRatio   float64 `json:"aspect_ratio"`
	Aperture      float64 `json:"aperture"`
	FocusDistance float64 `json:"focus_distance"`
}

// SamplingFile overrides the default sampling settings
type SamplingFile struct {
	Width           int   `json:"width"`
	SamplesPerPixel int   `json:"samples_per_pixel"`
	MaxDepth        int   `json:"max_depth"`
	Seed            int64 `json:"seed"`
}

// BackgroundFile is the sky gradient
type BackgroundFile struct {
	Top    Vec3 `json:"top"`
	Bottom Vec3 `json:"bottom"`
}

// MaterialFile describes one material, referenced by spheres through its ID
type MaterialFile struct {
	ID   string `json:"id"`
	Type string `json:"type"` // lambertian, checker, metal, dielectric, emissive, normal

	Albedo Vec3    `json:"albedo"`
	Fuzz   float64 `json:"fuzz"` // metal
	IOR    float64 `json:"ior"`  // dielectric
	Emit   Vec3    `json:"emit"` // emissive

	Even  Vec3    `json:"even"` // checker
	Odd   Vec3    `json:"odd"`
	Scale float64 `json:"scale"`
}

// SphereFile is a sphere with a material reference
type SphereFile struct {
	Center   Vec3    `json:"center"`
	Radius   float64 `json:"radius"`
	Material string  `json:"material"`
}

// Load reads a scene from a JSON file
func Load(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scene: %w", err)
	}
	defer f.Close()

	s, err := Decode(f)
	if err != nil {
		return nil, err
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

// Decode reads a JSON scene description and builds the scene
func Decode(r io.Reader) (*Scene, error) {
	var file File
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&file); err != nil {
		return nil, fmt.Errorf("decode scene: %w", err)
	}
	return file.Build()
}

// Build converts the file representation into a renderable scene
func (f *File) Build() (*Scene, error) {
	cameraConfig := renderer.CameraConfig{
		Center:        f.Camera.LookFrom.toCore(),
		LookAt:        f.Camera.LookAt.toCore(),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          f.Camera.VFov,
		AspectRatio:   f.Camera.AspectRatio,
		Aperture:      f.Camera.Aperture,
		FocusDistance: f.Camera.FocusDistance,
	}
	if f.Camera.Up != nil {
		cameraConfig.Up = f.Camera.Up.toCore()
	}
	if cameraConfig.VFov == 0 {
		cameraConfig.VFov = 90
	}
	if cameraConfig.AspectRatio == 0 {
		cameraConfig.AspectRatio = 16.0 / 9.0
	}
	if err := cameraConfig.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidScene, err)
	}

	samplingConfig := renderer.MergeSamplingConfig(renderer.DefaultSamplingConfig(), renderer.SamplingConfig{
		Width:           f.Sampling.Width,
		SamplesPerPixel: f.Sampling.SamplesPerPixel,
		MaxDepth:        f.Sampling.MaxDepth,
		Seed:            f.Sampling.Seed,
	})

	background := integrator.DefaultBackground()
	if f.Background != nil {
		background = integrator.Background{Top: f.Background.Top.toCore(), Bottom: f.Background.Bottom.toCore()}
	}

	s := newScene(f.Name, cameraConfig, samplingConfig, background)
	s.SetWidth(samplingConfig.Width)

	materials := make(map[string]material.Material, len(f.Materials))
	for i, mf := range f.Materials {
		if mf.ID == "" {
			return nil, fmt.Errorf("%w: material %d has no id", ErrInvalidScene, i)
		}
		if _, exists := materials[mf.ID]; exists {
			return nil, fmt.Errorf("%w: duplicate material id %q", ErrInvalidScene, mf.ID)
		}
		mat, err := mf.build()
		if err != nil {
			return nil, err
		}
		materials[mf.ID] = mat
	}

	for i, sf := range f.Spheres {
		mat, ok := materials[sf.Material]
		if !ok {
			return nil, fmt.Errorf("%w: sphere %d references unknown material %q", ErrInvalidScene, i, sf.Material)
		}
		s.World.Add(geometry.NewSphere(sf.Center.toCore(), sf.Radius, mat))
	}

	return s, nil
}

func (mf MaterialFile) build() (material.Material, error) {
	switch mf.Type {
	case "lambertian":
		return material.NewLambertian(mf.Albedo.toCore()), nil
	case "checker":
		scale := mf.Scale
		if scale == 0 {
			scale = 1
		}
		return material.NewTexturedLambertian(material.NewChecker(mf.Even.toCore(), mf.Odd.toCore(), scale)), nil
	case "metal":
		return material.NewMetal(mf.Albedo.toCore(), mf.Fuzz), nil
	case "dielectric":
		if mf.IOR <= 0 {
			return nil, fmt.Errorf("%w: dielectric %q needs a positive ior", ErrInvalidScene, mf.ID)
		}
		return material.NewDielectric(mf.IOR), nil
	case "emissive":
		return material.NewEmissive(mf.Emit.toCore()), nil
	case "normal":
		return material.NewNormalShade(), nil
	default:
		return nil, fmt.Errorf("%w: material %q has unknown type %q", ErrInvalidScene, mf.ID, mf.Type)
	}
}
