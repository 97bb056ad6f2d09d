package scene

import (
	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
)

// NewDefaultScene creates three spheres on a large ground sphere: diffuse in the
// middle, a hollow glass shell on the left and polished gold on the right
func NewDefaultScene(cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	defaultCameraConfig := geometry.DefaultCameraConfig()
	defaultCameraConfig.Width = 400
	defaultCameraConfig.AspectRatio = 16.0 / 9.0

	// Apply any overrides using the reusable merge function
	cameraConfig := defaultCameraConfig
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(defaultCameraConfig, cameraOverrides[0])
	}

	s, err := NewScene(cameraConfig, SamplingConfig{
		SamplesPerPixel: 100,
		MaxDepth:        50,
	})
	if err != nil {
		return nil, err
	}

	materialGround := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))
	materialCenter := material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))
	materialGlass := material.NewDielectric(1.5)
	materialGold := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.0)

	// The glass material is shared by the outer and the inverted inner surface
	err = s.addSpheres([]sphereSpec{
		{core.NewVec3(0, -100.5, -1), 100, materialGround},
		{core.NewVec3(0, 0, -1), 0.5, materialCenter},
		{core.NewVec3(-1, 0, -1), 0.5, materialGlass},
		{core.NewVec3(-1, 0, -1), -0.4, materialGlass},
		{core.NewVec3(1, 0, -1), 0.5, materialGold},
	})
	if err != nil {
		return nil, err
	}

	return s, nil
}
