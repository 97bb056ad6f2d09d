package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-sphere-pathtracer/pkg/core"
	"github.com/df07/go-sphere-pathtracer/pkg/material"
)

// recordingShape returns a fixed hit and remembers the interval it was queried with
type recordingShape struct {
	t           float64
	queriedTMax []float64
}

func (r *recordingShape) Hit(ray core.Ray, tMin, tMax float64) (*material.HitRecord, bool) {
	r.queriedTMax = append(r.queriedTMax, tMax)
	if r.t < tMin || r.t > tMax {
		return nil, false
	}
	return &material.HitRecord{T: r.t, Point: ray.At(r.t)}, true
}

func TestShapeList_Empty(t *testing.T) {
	list := NewShapeList()
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	hit, isHit := list.Hit(ray, 0.001, math.Inf(1))
	if isHit || hit != nil {
		t.Errorf("Empty list should never hit, got %+v", hit)
	}
	if list.Len() != 0 {
		t.Errorf("Expected empty list, got %d shapes", list.Len())
	}
}

func TestShapeList_ClosestHitIsOrderIndependent(t *testing.T) {
	near := mustSphere(t, core.NewVec3(0, 0, -3), 1.0)
	far := mustSphere(t, core.NewVec3(0, 0, -3.5), 1.0) // overlaps near
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))

	orders := map[string][]Shape{
		"near first": {near, far},
		"far first":  {far, near},
	}

	for name, shapes := range orders {
		t.Run(name, func(t *testing.T) {
			list := NewShapeList(shapes...)
			hit, isHit := list.Hit(ray, 0.001, math.Inf(1))
			if !isHit {
				t.Fatal("Expected hit")
			}
			if math.Abs(hit.T-2) > 1e-9 {
				t.Errorf("Expected closest hit at t=2, got %v", hit.T)
			}
		})
	}
}

func TestShapeList_NarrowsInterval(t *testing.T) {
	first := &recordingShape{t: 5}
	second := &recordingShape{t: 3}
	third := &recordingShape{t: 4}

	list := NewShapeList(first, second)
	list.Add(third)

	hit, isHit := list.Hit(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0)), 0.001, 100)
	if !isHit || hit.T != 3 {
		t.Fatalf("Expected closest hit at t=3, got %+v", hit)
	}

	// Each member is queried with the closest t found so far
	expected := []float64{100, 5, 3}
	for i, shape := range []*recordingShape{first, second, third} {
		if shape.queriedTMax[0] != expected[i] {
			t.Errorf("Shape %d queried with tMax %v, expected %v", i, shape.queriedTMax[0], expected[i])
		}
	}
	if list.Len() != 3 || len(list.Shapes()) != 3 {
		t.Errorf("Expected 3 shapes, got %d", list.Len())
	}
}

func TestShapeList_RespectsTMin(t *testing.T) {
	list := NewShapeList(&recordingShape{t: 0.0005}, &recordingShape{t: 2})
	hit, isHit := list.Hit(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0)), 0.001, 100)
	if !isHit || hit.T != 2 {
		t.Errorf("Expected hit at t=2 past the self-intersection epsilon, got %+v", hit)
	}
}
