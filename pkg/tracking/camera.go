package tracking

import (
	"math"

	"github.com/philipparndt/goruler/pkg/geometry"
)

const (
	nearPlane   = 0.001 // meters
	minDistance = 0.01
)

// Camera is a perspective camera orbiting a target point
type Camera struct {
	Position  geometry.Vector3
	Target    geometry.Vector3
	Up        geometry.Vector3
	FOV       float64 // Vertical field of view in radians
	Distance  float64
	RotationX float64 // Pitch
	RotationY float64 // Yaw
}

// NewCamera positions a camera in front of the box, far enough to see all of it
func NewCamera(bbox geometry.BoundingBox) *Camera {
	distance := math.Max(bbox.MaxDimension()*2.0, minDistance)
	c := &Camera{
		Target:   bbox.Center(),
		Up:       geometry.NewVector3(0, 1, 0),
		FOV:      math.Pi / 4,
		Distance: distance,
	}
	c.UpdatePosition()
	return c
}

// UpdatePosition recomputes the position from the orbit angles
func (c *Camera) UpdatePosition() {
	x := c.Distance * math.Cos(c.RotationX) * math.Sin(c.RotationY)
	y := c.Distance * math.Sin(c.RotationX)
	z := c.Distance * math.Cos(c.RotationX) * math.Cos(c.RotationY)

	c.Position = c.Target.Add(geometry.NewVector3(x, y, z))
}

// Rotate orbits the camera by the given angles
func (c *Camera) Rotate(deltaX, deltaY float64) {
	c.RotationX += deltaX
	c.RotationY += deltaY

	// Stay clear of the poles where Up and the view direction align
	maxAngle := math.Pi/2 - 0.1
	c.RotationX = math.Max(-maxAngle, math.Min(maxAngle, c.RotationX))

	c.UpdatePosition()
}

// Zoom scales the orbit distance by (1 + delta)
func (c *Camera) Zoom(delta float64) {
	c.Distance = math.Max(c.Distance*(1.0+delta), minDistance)
	c.UpdatePosition()
}

func (c *Camera) basis() (forward, right, up geometry.Vector3) {
	forward = c.Target.Sub(c.Position).Normalize()
	right = forward.Cross(c.Up).Normalize()
	up = right.Cross(forward).Normalize()
	return forward, right, up
}

// Project maps a world point to screen pixels. depth is the distance along
// the view direction; ok is false for points behind the near plane.
func (c *Camera) Project(point geometry.Vector3, width, height float64) (x, y, depth float64, ok bool) {
	forward, right, up := c.basis()

	relative := point.Sub(c.Position)
	cx := relative.Dot(right)
	cy := relative.Dot(up)
	depth = relative.Dot(forward)
	if depth <= nearPlane {
		return 0, 0, depth, false
	}

	aspect := width / height
	fovScale := math.Tan(c.FOV / 2)

	x = (cx/(depth*fovScale*aspect))*(width/2) + width/2
	y = (-cy/(depth*fovScale))*(height/2) + height/2
	return x, y, depth, true
}

// PixelsPerMeter returns how many vertical pixels one meter covers at depth
func (c *Camera) PixelsPerMeter(depth, height float64) float64 {
	if depth <= nearPlane {
		return 0
	}
	return (height / 2) / (depth * math.Tan(c.FOV/2))
}
