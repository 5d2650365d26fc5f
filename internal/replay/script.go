// Package replay drives a headless measuring session from a tap script.
//
// A script has one step per line:
//
//	tap <x> <y> <z>   the tracker resolved a tap to this world point (meters)
//	miss              the tracker found nothing under the tap
//	clear             the view was torn down
//
// Blank lines and lines starting with # are ignored.
package replay

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/philipparndt/goruler/pkg/geometry"
)

// Op is a script step kind
type Op int

const (
	OpTap Op = iota
	OpMiss
	OpClear
)

func (o Op) String() string {
	switch o {
	case OpTap:
		return "tap"
	case OpMiss:
		return "miss"
	case OpClear:
		return "clear"
	default:
		return fmt.Sprintf("op(%d)", int(o))
	}
}

// Step is one parsed script line
type Step struct {
	Line  int
	Op    Op
	Point geometry.Vector3
}

// Parse reads a script
func Parse(r io.Reader) ([]Step, error) {
	var steps []Step
	scanner := bufio.NewScanner(r)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		step := Step{Line: lineNo}
		switch strings.ToLower(fields[0]) {
		case "tap":
			if len(fields) != 4 {
				return nil, fmt.Errorf("line %d: tap needs x y z, got %d values", lineNo, len(fields)-1)
			}
			var c [3]float64
			for i := range c {
				v, err := strconv.ParseFloat(fields[i+1], 64)
				if err != nil {
					return nil, fmt.Errorf("line %d: invalid coordinate %q", lineNo, fields[i+1])
				}
				c[i] = v
			}
			step.Op = OpTap
			step.Point = geometry.NewVector3(c[0], c[1], c[2])
			if !step.Point.IsFinite() {
				return nil, fmt.Errorf("line %d: non-finite point %s", lineNo, step.Point)
			}
		case "miss":
			step.Op = OpMiss
		case "clear":
			step.Op = OpClear
		default:
			return nil, fmt.Errorf("line %d: unknown step %q", lineNo, fields[0])
		}
		if step.Op != OpTap && len(fields) > 1 {
			return nil, fmt.Errorf("line %d: %s takes no arguments", lineNo, step.Op)
		}
		steps = append(steps, step)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading script: %w", err)
	}
	return steps, nil
}
