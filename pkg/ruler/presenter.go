package ruler

import (
	"fmt"

	"github.com/philipparndt/goruler/pkg/geometry"
)

const (
	// CentimetersPerMeter converts tracking units to the displayed unit
	CentimetersPerMeter = 100.0

	// LabelScale shrinks text geometry, which is generated at a much larger
	// default size than the real-world scene.
	LabelScale = 0.01
)

// LabelOffset moves the label up and to the left of the end marker so it
// does not sit on the point itself.
var LabelOffset = geometry.NewVector3(-0.01, 0.01, 0)

// LabelDescriptor is everything a renderer needs to show a distance readout
type LabelDescriptor struct {
	Text     string
	Anchor   geometry.Vector3
	Scale    geometry.Vector3
	Distance float64 // meters
}

// Presenter turns a marker pair into a label descriptor. It is stateless.
type Presenter struct{}

// Distance returns the straight-line distance between start and end in meters
func Distance(start, end geometry.Vector3) float64 {
	return start.Distance(end)
}

// FormatDistance renders a distance in meters as centimeter label text
func FormatDistance(meters float64) string {
	return fmt.Sprintf("Distance: %.2fcm", meters*CentimetersPerMeter)
}

// Present builds the label for the pair. The label is anchored to end.
func (Presenter) Present(start, end geometry.Vector3) LabelDescriptor {
	d := Distance(start, end)
	return LabelDescriptor{
		Text:     FormatDistance(d),
		Anchor:   end.Add(LabelOffset),
		Scale:    geometry.NewVector3(LabelScale, LabelScale, LabelScale),
		Distance: d,
	}
}

// PresentSet builds the label for a full marker set. It returns false when
// the set does not hold a pair.
func (p Presenter) PresentSet(set *PointMarkerSet) (LabelDescriptor, bool) {
	start, end, ok := set.Pair()
	if !ok {
		return LabelDescriptor{}, false
	}
	return p.Present(start, end), true
}
