package replay

import (
	"fmt"
	"io"

	"github.com/philipparndt/goruler/pkg/geometry"
	"github.com/philipparndt/goruler/pkg/ruler"
)

// ConsoleSink prints every marker and label side effect, one per line
type ConsoleSink struct {
	w io.Writer
}

// NewConsoleSink writes to w
func NewConsoleSink(w io.Writer) *ConsoleSink {
	return &ConsoleSink{w: w}
}

func (c *ConsoleSink) ShowMarker(p geometry.Vector3) {
	fmt.Fprintf(c.w, "  + marker %s\n", p)
}

func (c *ConsoleSink) RemoveMarkers(points []geometry.Vector3) {
	for _, p := range points {
		fmt.Fprintf(c.w, "  - marker %s\n", p)
	}
}

func (c *ConsoleSink) ShowLabel(d ruler.LabelDescriptor) {
	fmt.Fprintf(c.w, "  + label  %q at %s scale %.2f\n", d.Text, d.Anchor, d.Scale.X)
}

func (c *ConsoleSink) RemoveLabel(d ruler.LabelDescriptor) {
	fmt.Fprintf(c.w, "  - label  %q\n", d.Text)
}

// scriptedHit answers the next hit test from the current step
type scriptedHit struct {
	step Step
}

func (h scriptedHit) HitTest(ruler.ScreenPoint) (geometry.Vector3, bool) {
	return h.step.Point, h.step.Op == OpTap
}

// Summary counts what a replay did
type Summary struct {
	Taps         int
	Misses       int
	Measurements int
}

// Run feeds steps to session, writing a header per step to w
func Run(steps []Step, session *ruler.Session, w io.Writer) Summary {
	var sum Summary
	for _, step := range steps {
		switch step.Op {
		case OpTap, OpMiss:
			fmt.Fprintf(w, "line %d: %s\n", step.Line, step.Op)
			state, ok := session.HandleTap(scriptedHit{step: step}, ruler.ScreenPoint{})
			if !ok {
				sum.Misses++
				fmt.Fprintf(w, "  ignored, %s\n", session.Phase())
				continue
			}
			sum.Taps++
			if state.Complete() {
				sum.Measurements++
			}
		case OpClear:
			fmt.Fprintf(w, "line %d: clear\n", step.Line)
			session.Teardown()
		}
	}
	return sum
}
