// Package scan loads a scanned scene into the feature-point cloud the
// tracker hit-tests against.
package scan

import "github.com/philipparndt/goruler/pkg/geometry"

// Cloud is a set of distinct feature points in world-space meters
type Cloud struct {
	Name   string
	Points []geometry.Vector3
	Bounds geometry.BoundingBox

	seen map[geometry.Vector3]struct{}
}

// NewCloud creates an empty cloud
func NewCloud(name string) *Cloud {
	return &Cloud{
		Name:   name,
		Bounds: geometry.NewBoundingBox(),
		seen:   make(map[geometry.Vector3]struct{}),
	}
}

// Add inserts p unless the cloud already holds it. It reports whether p was new.
func (c *Cloud) Add(p geometry.Vector3) bool {
	if _, ok := c.seen[p]; ok {
		return false
	}
	c.seen[p] = struct{}{}
	c.Points = append(c.Points, p)
	c.Bounds.Extend(p)
	return true
}

// Len returns the number of feature points
func (c *Cloud) Len() int {
	return len(c.Points)
}
