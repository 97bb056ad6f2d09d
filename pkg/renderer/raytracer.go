package renderer

import (
	"image"
	"image/color"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/integrator"
	"github.com/df07/go-sphere-pathtracer/pkg/scene"
)

// Raytracer handles the rendering process
type Raytracer struct {
	scene      *scene.Scene
	width      int
	height     int
	config     scene.SamplingConfig
	integrator integrator.Integrator
	logger     core.Logger
}

// NewRaytracer creates a raytracer for the scene's camera and sampling configuration
func NewRaytracer(sc *scene.Scene, logger core.Logger) *Raytracer {
	return &Raytracer{
		scene:      sc,
		width:      sc.Camera.ImageWidth(),
		height:     sc.Camera.ImageHeight(),
		config:     sc.SamplingConfig,
		integrator: integrator.NewPathTracingIntegrator(sc.SamplingConfig),
		logger:     logger,
	}
}

// SetIntegrator replaces the light transport algorithm
func (rt *Raytracer) SetIntegrator(integrator integrator.Integrator) {
	rt.integrator = integrator
}

// Width returns the image width in pixels
func (rt *Raytracer) Width() int { return rt.width }

// Height returns the image height in pixels
func (rt *Raytracer) Height() int { return rt.height }

// RenderPass renders every pixel with SamplesPerPixel samples, top row first.
// All randomness is drawn from sampler, so a seeded sampler gives a
// reproducible image.
func (rt *Raytracer) RenderPass(sampler core.Sampler) (*image.RGBA, RenderStats) {
	img := image.NewRGBA(image.Rect(0, 0, rt.width, rt.height))
	camera := rt.scene.Camera

	for j := 0; j < rt.height; j++ {
		rt.logger.Printf("Scanlines remaining: %d\n", rt.height-j)
		for i := 0; i < rt.width; i++ {
			img.SetRGBA(i, j, rt.renderPixel(camera, i, j, sampler))
		}
	}
	rt.logger.Printf("Done.\n")

	totalPixels := rt.width * rt.height
	stats := RenderStats{
		TotalPixels:      totalPixels,
		TotalSamples:     totalPixels * rt.config.SamplesPerPixel,
		AverageSamples:   float64(rt.config.SamplesPerPixel),
		MaxDepth:         rt.config.MaxDepth,
		AverageLuminance: CalculateAverageLuminance(img),
	}
	return img, stats
}

// renderPixel accumulates all samples of pixel (i, j) and encodes the result
func (rt *Raytracer) renderPixel(camera *geometry.Camera, i, j int, sampler core.Sampler) color.RGBA {
	var ps PixelStats
	for sample := 0; sample < rt.config.SamplesPerPixel; sample++ {
		ray := camera.GetRay(i, j, sampler)
		ps.AddSample(rt.integrator.RayColor(ray, rt.scene, sampler))
	}
	return EncodeColor(ps.ColorAccum, ps.SampleCount)
}
