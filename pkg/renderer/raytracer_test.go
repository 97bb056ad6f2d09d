package renderer

import (
	"bytes"
	"strings"
	"testing"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/geometry"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
	"github.com/df07/go-sphere-pathtracer/pkg/scene"
)

// constantSampler returns the same value for every draw
type constantSampler struct {
	value float64
}

func (c constantSampler) Get1D() float64   { return c.value }
func (c constantSampler) Get2D() core.Vec2 { return core.NewVec2(c.value, c.value) }
func (c constantSampler) Get3D() core.Vec3 { return core.NewVec3(c.value, c.value, c.value) }

// MockIntegrator records every camera ray and returns a fixed color
type MockIntegrator struct {
	color core.Vec3
	rays  []core.Ray
}

func (m *MockIntegrator) RayColor(ray core.Ray, sc *scene.Scene, sampler core.Sampler) core.Vec3 {
	m.rays = append(m.rays, ray)
	return m.color
}

func createTestScene(t *testing.T, width, samples, depth int) *scene.Scene {
	t.Helper()
	cameraConfig := geometry.DefaultCameraConfig()
	cameraConfig.Width = width
	sc, err := scene.NewScene(cameraConfig, scene.SamplingConfig{SamplesPerPixel: samples, MaxDepth: depth})
	if err != nil {
		t.Fatalf("NewScene failed: %v", err)
	}
	return sc
}

func TestRaytracer_EmptySceneEndToEnd(t *testing.T) {
	sc := createTestScene(t, 2, 1, 1)
	var log bytes.Buffer
	raytracer := NewRaytracer(sc, NewDefaultLogger(&log))

	img, stats := raytracer.RenderPass(constantSampler{value: 0.5})

	var out bytes.Buffer
	if err := WritePPM(&out, img); err != nil {
		t.Fatalf("WritePPM failed: %v", err)
	}

	// Pixel centers sit at (±5, ±5, -10), so the sky is sampled at y = ±5/sqrt(150)
	expected := "P3\n2 2\n255\n" +
		"206 227 255\n206 227 255\n" +
		"236 244 255\n236 244 255\n"
	if out.String() != expected {
		t.Errorf("Unexpected image:\n%s\nexpected:\n%s", out.String(), expected)
	}

	expectedLog := "Scanlines remaining: 2\nScanlines remaining: 1\nDone.\n"
	if log.String() != expectedLog {
		t.Errorf("Expected progress log %q, got %q", expectedLog, log.String())
	}

	if stats.TotalPixels != 4 || stats.TotalSamples != 4 || stats.AverageSamples != 1 || stats.MaxDepth != 1 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
}

func TestRaytracer_ZeroDepthRendersBlack(t *testing.T) {
	sc := createTestScene(t, 4, 3, 0)
	raytracer := NewRaytracer(sc, NewDefaultLogger(&bytes.Buffer{}))

	img, stats := raytracer.RenderPass(core.NewSeededSampler(1))
	for y := 0; y < img.Bounds().Dy(); y++ {
		for x := 0; x < img.Bounds().Dx(); x++ {
			c := img.RGBAAt(x, y)
			if c.R != 0 || c.G != 0 || c.B != 0 || c.A != 255 {
				t.Fatalf("Expected opaque black at (%d, %d), got %v", x, y, c)
			}
		}
	}
	if stats.AverageLuminance != 0 {
		t.Errorf("Expected zero luminance, got %v", stats.AverageLuminance)
	}
}

func TestRaytracer_SamplesPerPixel(t *testing.T) {
	sc := createTestScene(t, 3, 5, 2)
	raytracer := NewRaytracer(sc, NewDefaultLogger(&bytes.Buffer{}))
	mock := &MockIntegrator{color: core.NewVec3(0.25, 0.25, 0.25)}
	raytracer.SetIntegrator(mock)

	img, stats := raytracer.RenderPass(constantSampler{value: 0.5})

	if len(mock.rays) != 3*3*5 {
		t.Fatalf("Expected %d camera rays, got %d", 3*3*5, len(mock.rays))
	}
	if stats.TotalSamples != 45 {
		t.Errorf("Expected 45 samples, got %d", stats.TotalSamples)
	}

	// sqrt(0.25) = 0.5 encodes to 128
	if c := img.RGBAAt(1, 1); c.R != 128 || c.G != 128 || c.B != 128 {
		t.Errorf("Expected gray 128, got %v", c)
	}

	// The first five rays belong to the upper-left pixel
	for _, ray := range mock.rays[:5] {
		target := ray.Origin.Add(ray.Direction)
		if target.Subtract(sc.Camera.PixelCenter(0, 0)).Length() > 1e-9 {
			t.Errorf("Expected first pixel to be upper-left, got ray through %v", target)
		}
	}
	// Rows are rendered top first
	last := mock.rays[len(mock.rays)-1]
	if target := last.Origin.Add(last.Direction); target.Subtract(sc.Camera.PixelCenter(2, 2)).Length() > 1e-9 {
		t.Errorf("Expected last pixel to be lower-right, got ray through %v", target)
	}
}

func TestRaytracer_Deterministic(t *testing.T) {
	sc, err := scene.NewDefaultScene(geometry.CameraConfig{Width: 16})
	if err != nil {
		t.Fatalf("NewDefaultScene failed: %v", err)
	}
	sc.SamplingConfig = scene.SamplingConfig{SamplesPerPixel: 4, MaxDepth: 5}

	render := func(seed int64) string {
		var out bytes.Buffer
		img, _ := NewRaytracer(sc, NewDefaultLogger(&bytes.Buffer{})).RenderPass(core.NewSeededSampler(seed))
		if err := WritePPM(&out, img); err != nil {
			t.Fatalf("WritePPM failed: %v", err)
		}
		return out.String()
	}

	first := render(42)
	if second := render(42); first != second {
		t.Error("Same seed should produce identical images")
	}
	if third := render(43); first == third {
		t.Error("Different seeds should produce different images")
	}
	if !strings.HasPrefix(first, "P3\n16 9\n255\n") {
		t.Errorf("Unexpected header: %q", first[:20])
	}
}

func TestRaytracer_DiffuseSphereDarkensCenter(t *testing.T) {
	sc := createTestScene(t, 5, 50, 10)
	if err := sc.AddSphere(core.NewVec3(0, 0, -10), 5, material.NewLambertian(core.NewVec3(0.1, 0.1, 0.1))); err != nil {
		t.Fatalf("AddSphere failed: %v", err)
	}

	img, _ := NewRaytracer(sc, NewDefaultLogger(&bytes.Buffer{})).RenderPass(core.NewSeededSampler(3))

	center := img.RGBAAt(2, 2)
	corner := img.RGBAAt(0, 0)
	if center.R >= corner.R {
		t.Errorf("Expected dark sphere center %v to be darker than sky corner %v", center, corner)
	}
}
