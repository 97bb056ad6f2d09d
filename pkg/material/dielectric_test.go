package material

import (
	"math"
	"testing"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
)

func TestDielectricBasicBehavior(t *testing.T) {
	// Create a glass material (refractive index of 1.5)
	glass := NewDielectric(1.5)

	rayDirection := core.NewVec3(1, -1, 0).Normalize() // 45-degree angle
	ray := core.NewRay(core.NewVec3(0, 1, 0), rayDirection)

	hit := HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 1, 0), // Normal pointing up
		T:         1.0,
		FrontFace: true,
		Material:  glass,
	}

	expectedAttenuation := core.NewVec3(1.0, 1.0, 1.0)
	hasReflection := false
	hasRefraction := false

	for seed := int64(0); seed < 1000 && (!hasReflection || !hasRefraction); seed++ {
		result, scattered := glass.Scatter(ray, hit, newTestSampler(seed))
		if !scattered {
			t.Fatal("Dielectric should always scatter")
		}
		if result.Attenuation != expectedAttenuation {
			t.Fatalf("Expected attenuation %v, got %v", expectedAttenuation, result.Attenuation)
		}

		// Reflection leaves upward, refraction continues downward
		if result.Scattered.Direction.Y > 0 {
			hasReflection = true
		} else {
			hasRefraction = true
		}
	}

	// Reflection probability at 45 degrees is roughly 5%, so 1000 seeds see both
	if !hasRefraction || !hasReflection {
		t.Errorf("Expected both outcomes, reflection: %t, refraction: %t", hasReflection, hasRefraction)
	}
}

func TestDielectricRefractionBendsTowardNormal(t *testing.T) {
	glass := NewDielectric(1.5)
	rayDirection := core.NewVec3(1, -1, 0).Normalize()
	ray := core.NewRay(core.NewVec3(-1, 1, 0), rayDirection)
	hit := HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 1, 0),
		FrontFace: true,
	}

	// A draw of 0.99 is above the reflectance, forcing refraction
	sampler := &sequenceSampler{values: []float64{0.99}}
	result, _ := glass.Scatter(ray, hit, sampler)

	out := result.Scattered.Direction
	sinIn := math.Sqrt(0.5)
	sinOut := math.Abs(out.X) / out.Length()
	if math.Abs(sinOut-sinIn/1.5) > 1e-9 {
		t.Errorf("Snell's law violated: expected sin %v, got %v", sinIn/1.5, sinOut)
	}
	if out.Y >= 0 {
		t.Errorf("Refracted ray should continue below the surface, got %v", out)
	}
}

func TestDielectricTotalInternalReflection(t *testing.T) {
	glass := NewDielectric(1.5)

	// Ray going from glass to air at a shallow angle
	rayDirection := core.NewVec3(1, -0.1, 0).Normalize()
	ray := core.NewRay(core.NewVec3(0, 0, 0), rayDirection)

	// Back face hit: normal already flipped to face the ray
	hit := HitRecord{
		Point:     core.NewVec3(0, 0, 0),
		Normal:    core.NewVec3(0, 1, 0),
		T:         1.0,
		FrontFace: false,
		Material:  glass,
	}

	cosTheta := -rayDirection.Dot(hit.Normal)
	sinTheta := math.Sqrt(1.0 - cosTheta*cosTheta)
	if 1.5*sinTheta <= 1.0 {
		t.Fatalf("Test setup error: this angle should cause total internal reflection")
	}

	// Even a draw that would otherwise refract must reflect
	for _, draw := range []float64{0.0, 0.5, 0.999} {
		sampler := &sequenceSampler{values: []float64{draw}}
		result, scattered := glass.Scatter(ray, hit, sampler)
		if !scattered {
			t.Fatal("Dielectric should always scatter")
		}

		expected := core.Reflect(rayDirection, hit.Normal)
		if result.Scattered.Direction.Subtract(expected).Length() > 1e-12 {
			t.Errorf("Expected reflection %v, got %v", expected, result.Scattered.Direction)
		}
	}
}

func TestReflectance(t *testing.T) {
	ratio := 1.0 / 1.5
	r0 := math.Pow((1-ratio)/(1+ratio), 2)

	if got := Reflectance(1.0, ratio); math.Abs(got-r0) > 1e-12 {
		t.Errorf("Reflectance at normal incidence should be r0=%v, got %v", r0, got)
	}
	if got := Reflectance(0.0, ratio); math.Abs(got-1.0) > 1e-12 {
		t.Errorf("Reflectance at grazing incidence should be 1, got %v", got)
	}

	// Monotonically increasing as the angle approaches grazing
	previous := Reflectance(1.0, ratio)
	for cosine := 0.99; cosine >= 0; cosine -= 0.01 {
		current := Reflectance(cosine, ratio)
		if current < previous {
			t.Fatalf("Reflectance decreased at cos=%v: %v < %v", cosine, current, previous)
		}
		previous = current
	}
}

func TestSetFaceNormal(t *testing.T) {
	outward := core.NewVec3(0, 0, 1)

	tests := []struct {
		name           string
		direction      core.Vec3
		expectedFront  bool
		expectedNormal core.Vec3
	}{
		{"ray from outside", core.NewVec3(0, 0, -1), true, outward},
		{"ray from inside", core.NewVec3(0, 0, 1), false, outward.Negate()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var hit HitRecord
			hit.SetFaceNormal(core.NewRay(core.NewVec3(0, 0, 0), tt.direction), outward)
			if hit.FrontFace != tt.expectedFront {
				t.Errorf("Expected front face %t, got %t", tt.expectedFront, hit.FrontFace)
			}
			if hit.Normal != tt.expectedNormal {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, hit.Normal)
			}
			if tt.direction.Dot(hit.Normal) >= 0 {
				t.Errorf("Normal %v should face against the ray", hit.Normal)
			}
		})
	}
}
