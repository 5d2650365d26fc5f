package geometry

import "math"

// BoundingBox is an axis-aligned box. A box created with NewBoundingBox is
// empty until the first Extend.
type BoundingBox struct {
	Min Vector3
	Max Vector3
}

// NewBoundingBox returns an empty bounding box
func NewBoundingBox() BoundingBox {
	inf := math.Inf(1)
	return BoundingBox{
		Min: NewVector3(inf, inf, inf),
		Max: NewVector3(-inf, -inf, -inf),
	}
}

// Extend grows the box to contain p
func (b *BoundingBox) Extend(p Vector3) {
	b.Min = b.Min.Min(p)
	b.Max = b.Max.Max(p)
}

// IsEmpty reports whether no point has been added
func (b BoundingBox) IsEmpty() bool {
	return b.Min.X > b.Max.X
}

// Center returns the middle of the box
func (b BoundingBox) Center() Vector3 {
	if b.IsEmpty() {
		return Vector3{}
	}
	return b.Min.Add(b.Max).Mul(0.5)
}

// Size returns the edge lengths of the box
func (b BoundingBox) Size() Vector3 {
	if b.IsEmpty() {
		return Vector3{}
	}
	return b.Max.Sub(b.Min)
}

// MaxDimension returns the longest edge of the box
func (b BoundingBox) MaxDimension() float64 {
	s := b.Size()
	return math.Max(s.X, math.Max(s.Y, s.Z))
}
