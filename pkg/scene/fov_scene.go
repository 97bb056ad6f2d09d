package scene

import (
	"math"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
)

// NewFOVScene creates two touching spheres that exactly fill a 90 degree field of view
func NewFOVScene(cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	defaultCameraConfig := geometry.DefaultCameraConfig()
	defaultCameraConfig.Width = 400
	defaultCameraConfig.AspectRatio = 16.0 / 9.0

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

	r := math.Cos(math.Pi / 4)
	err = s.addSpheres([]sphereSpec{
		{core.NewVec3(-r, 0, -1), r, material.NewLambertian(core.NewVec3(0, 0, 1))},
		{core.NewVec3(r, 0, -1), r, material.NewLambertian(core.NewVec3(1, 0, 0))},
	})
	if err != nil {
		return nil, err
	}

	return s, nil
}
