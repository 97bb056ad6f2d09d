package scene

import (
	"errors"
	"fmt"

	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
)

// ErrUnknownScene is returned when a scene name is not registered
var ErrUnknownScene = errors.New("unknown scene")

// SceneInfo represents a built-in scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Optional description
	Seeded      bool   `json:"seeded"`      // Whether the layout depends on the seed
}

type sceneFactory func(seed int64, cameraOverrides ...geometry.CameraConfig) (*Scene, error)

type registeredScene struct {
	info    SceneInfo
	factory sceneFactory
}

// Listed in display order
var builtinScenes = []registeredScene{
	{
		info: SceneInfo{
			ID:          "default",
			DisplayName: "Default",
			Description: "Diffuse, hollow glass and gold spheres on a yellow ground",
		},
		factory: func(_ int64, overrides ...geometry.CameraConfig) (*Scene, error) {
			return NewDefaultScene(overrides...)
		},
	},
	{
		info: SceneInfo{
			ID:          "fov",
			DisplayName: "Field of View",
			Description: "Two touching spheres framed by a 90 degree field of view",
		},
		factory: func(_ int64, overrides ...geometry.CameraConfig) (*Scene, error) {
			return NewFOVScene(overrides...)
		},
	},
	{
		info: SceneInfo{
			ID:          "cover",
			DisplayName: "Random Spheres",
			Description: "Hundreds of random small spheres with depth of field",
			Seeded:      true,
		},
		factory: NewCoverScene,
	},
	{
		info: SceneInfo{
			ID:          "spheregrid",
			DisplayName: "Sphere Grid",
			Description: "A grid of metal spheres colored across hue and chroma",
		},
		factory: func(_ int64, overrides ...geometry.CameraConfig) (*Scene, error) {
			return NewSphereGridScene(overrides...)
		},
	},
}

// ListScenes returns metadata for every built-in scene
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtinScenes))
	for _, s := range builtinScenes {
		scenes = append(scenes, s.info)
	}
	return scenes
}

// Names returns the IDs of every built-in scene
func Names() []string {
	names := make([]string, 0, len(builtinScenes))
	for _, s := range builtinScenes {
		names = append(names, s.info.ID)
	}
	return names
}

// Create builds the named scene. Seed only affects seeded scenes.
func Create(name string, seed int64, cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	for _, s := range builtinScenes {
		if s.info.ID == name {
			sc, err := s.factory(seed, cameraOverrides...)
			if err != nil {
				return nil, fmt.Errorf("create scene %q: %w", name, err)
			}
			return sc, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
}
