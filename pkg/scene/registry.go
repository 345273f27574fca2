package scene

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/df07/go-sphere-pathtracer/pkg/renderer"
)

// ErrUnknownScene is returned when a scene name is not registered
var ErrUnknownScene = errors.New("unknown scene")

// SceneInfo describes a built-in scene
type SceneInfo struct {
	Name        string
	Description string
}

var builtInScenes = map[string]struct {
	description string
	create      func(...renderer.CameraConfig) *Scene
}{
	"default":    {"Diffuse, hollow glass and gold spheres on a ground sphere", NewDefaultScene},
	"spheregrid": {"10x10 grid of colored spheres on a checkered ground", NewSphereGridScene},
}

// ListScenes returns the built-in scenes sorted by name
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtInScenes))
	for name, entry := range builtInScenes {
		scenes = append(scenes, SceneInfo{Name: name, Description: entry.description})
	}
	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].Name < scenes[j].Name
	})
	return scenes
}

// NewSceneByName creates a built-in scene, or loads a JSON scene when name ends in .json
func NewSceneByName(name string, cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	if strings.EqualFold(filepath.Ext(name), ".json") {
		return Load(name)
	}

	entry, ok := builtInScenes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	return entry.create(cameraOverrides...), nil
}
