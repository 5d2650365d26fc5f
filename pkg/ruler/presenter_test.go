package ruler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/goruler/pkg/geometry"
	"github.com/philipparndt/goruler/pkg/ruler"
)

func TestPresentUnitDistance(t *testing.T) {
	label := ruler.Presenter{}.Present(pA, pB)

	assert.Equal(t, "Distance: 100.00cm", label.Text)
	assert.InDelta(t, 1.0, label.Distance, 1e-12)
}

func TestPresentCoincidentPoints(t *testing.T) {
	label := ruler.Presenter{}.Present(pA, pA)

	assert.Equal(t, "Distance: 0.00cm", label.Text)
	assert.Zero(t, label.Distance)
}

func TestPresentSmallDistance(t *testing.T) {
	label := ruler.Presenter{}.Present(pA, geometry.NewVector3(0, 0, 0.02))

	assert.Equal(t, "Distance: 2.00cm", label.Text)
}

func TestPresentDiagonal(t *testing.T) {
	start := geometry.NewVector3(0.1, 0.2, -0.3)
	end := geometry.NewVector3(0.1+0.03, 0.2+0.04, -0.3)

	label := ruler.Presenter{}.Present(start, end)

	assert.Equal(t, "Distance: 5.00cm", label.Text)
	assert.InDelta(t, 0.05, label.Distance, 1e-12)
}

func TestPresentIsSymmetricInDistance(t *testing.T) {
	start := geometry.NewVector3(0.12, -0.4, 1.5)
	end := geometry.NewVector3(-0.3, 0.25, 1.1)
	p := ruler.Presenter{}

	forward := p.Present(start, end)
	backward := p.Present(end, start)

	assert.Equal(t, forward.Distance, backward.Distance)
	assert.Equal(t, forward.Text, backward.Text)
	assert.NotEqual(t, forward.Anchor, backward.Anchor)
}

func TestPresentLabelPlacement(t *testing.T) {
	end := geometry.NewVector3(0.5, 1.25, -2)

	label := ruler.Presenter{}.Present(pA, end)

	assert.InDelta(t, end.X-0.01, label.Anchor.X, 1e-12)
	assert.InDelta(t, end.Y+0.01, label.Anchor.Y, 1e-12)
	assert.Equal(t, end.Z, label.Anchor.Z)
	assert.Equal(t, geometry.NewVector3(0.01, 0.01, 0.01), label.Scale)
}

func TestPresentSetRequiresPair(t *testing.T) {
	var set ruler.PointMarkerSet
	p := ruler.Presenter{}

	_, ok := p.PresentSet(&set)
	assert.False(t, ok)

	set.Add(pA)
	_, ok = p.PresentSet(&set)
	assert.False(t, ok)

	set.Add(pB)
	label, ok := p.PresentSet(&set)
	require.True(t, ok)
	assert.Equal(t, p.Present(pA, pB), label)
}

func TestFormatDistance(t *testing.T) {
	tests := []struct {
		meters float64
		want   string
	}{
		{0, "Distance: 0.00cm"},
		{0.1234, "Distance: 12.34cm"},
		{1, "Distance: 100.00cm"},
		{2.5, "Distance: 250.00cm"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ruler.FormatDistance(tt.meters))
	}
}
