package tracking

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/philipparndt/goruler/pkg/geometry"
)

func unitBox() geometry.BoundingBox {
	bbox := geometry.NewBoundingBox()
	bbox.Extend(geometry.NewVector3(0, 0, 0))
	bbox.Extend(geometry.NewVector3(1, 1, 1))
	return bbox
}

func TestNewCameraFramesBox(t *testing.T) {
	c := NewCamera(unitBox())

	assert.Equal(t, geometry.NewVector3(0.5, 0.5, 0.5), c.Target)
	assert.InDelta(t, 2.0, c.Distance, 1e-12)
	assert.True(t, c.Position.ApproxEqual(geometry.NewVector3(0.5, 0.5, 2.5), 1e-12), "got %v", c.Position)
}

func TestCameraProjectsTargetToCenter(t *testing.T) {
	c := NewCamera(unitBox())

	x, y, depth, ok := c.Project(c.Target, 800, 600)

	assert.True(t, ok)
	assert.InDelta(t, 400, x, 1e-9)
	assert.InDelta(t, 300, y, 1e-9)
	assert.InDelta(t, 2.0, depth, 1e-12)
}

func TestCameraProjectOrientation(t *testing.T) {
	c := NewCamera(unitBox())

	rightX, _, _, _ := c.Project(c.Target.Add(geometry.NewVector3(0.1, 0, 0)), 800, 600)
	_, upY, _, _ := c.Project(c.Target.Add(geometry.NewVector3(0, 0.1, 0)), 800, 600)

	assert.Greater(t, rightX, 400.0, "+X goes right on screen")
	assert.Less(t, upY, 300.0, "+Y goes up on screen")
}

func TestCameraRejectsPointsBehind(t *testing.T) {
	c := NewCamera(unitBox())

	_, _, _, ok := c.Project(c.Position.Add(geometry.NewVector3(0, 0, 1)), 800, 600)

	assert.False(t, ok)
}

func TestCameraRotateClampsPitch(t *testing.T) {
	c := NewCamera(unitBox())

	c.Rotate(10, 0)
	assert.InDelta(t, math.Pi/2-0.1, c.RotationX, 1e-12)

	c.Rotate(-20, 0)
	assert.InDelta(t, -(math.Pi/2 - 0.1), c.RotationX, 1e-12)
	assert.InDelta(t, c.Distance, c.Position.Distance(c.Target), 1e-9)
}

func TestCameraZoomKeepsMinimumDistance(t *testing.T) {
	c := NewCamera(unitBox())

	c.Zoom(-0.5)
	assert.InDelta(t, 1.0, c.Distance, 1e-12)

	c.Zoom(-1)
	assert.Equal(t, minDistance, c.Distance)
}

func TestCameraPixelsPerMeter(t *testing.T) {
	c := NewCamera(unitBox())

	ppm := c.PixelsPerMeter(2, 600)

	assert.InDelta(t, 300/(2*math.Tan(math.Pi/8)), ppm, 1e-9)
	assert.Zero(t, c.PixelsPerMeter(0, 600))
}
