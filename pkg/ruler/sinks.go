package ruler

import "github.com/philipparndt/goruler/pkg/geometry"

// ScreenPoint is a 2D input location in viewport pixels
type ScreenPoint struct {
	X, Y float64
}

// HitTester resolves a screen location to a tracked world point
type HitTester interface {
	HitTest(at ScreenPoint) (geometry.Vector3, bool)
}

// HitTestFunc adapts a function to HitTester
type HitTestFunc func(at ScreenPoint) (geometry.Vector3, bool)

// HitTest calls f(at)
func (f HitTestFunc) HitTest(at ScreenPoint) (geometry.Vector3, bool) {
	return f(at)
}

// MarkerSink renders the visible marker for each accepted point
type MarkerSink interface {
	ShowMarker(p geometry.Vector3)
	RemoveMarkers(points []geometry.Vector3)
}

// LabelSink renders the distance label
type LabelSink interface {
	ShowLabel(d LabelDescriptor)
	RemoveLabel(d LabelDescriptor)
}
