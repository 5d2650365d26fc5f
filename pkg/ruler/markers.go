// Package ruler implements the two-point measuring core: a bounded marker
// set, the distance presenter and the session that connects them to the
// tracking and rendering sinks.
package ruler

import "github.com/philipparndt/goruler/pkg/geometry"

// MarkerCapacity is the number of markers a measurement needs.
const MarkerCapacity = 2

// SetState reports the outcome of PointMarkerSet.Add
type SetState struct {
	Size      int                // Markers held after the add (1 or 2)
	Cleared   bool               // Whether a full reset happened before the insert
	Discarded []geometry.Vector3 // Markers dropped by the reset, in insertion order
}

// Complete reports whether the add completed a pair
func (s SetState) Complete() bool {
	return s.Size == MarkerCapacity
}

// PointMarkerSet holds at most two markers in insertion order. Adding to a
// full set drops both markers before inserting, so every third tap starts a
// fresh measurement. The zero value is an empty set.
type PointMarkerSet struct {
	points [MarkerCapacity]geometry.Vector3
	n      int
}

// Add inserts p, resetting the set first when it is already full
func (s *PointMarkerSet) Add(p geometry.Vector3) SetState {
	var state SetState
	if s.n >= MarkerCapacity {
		state.Cleared = true
		state.Discarded = s.Markers()
		s.Clear()
	}

	s.points[s.n] = p
	s.n++
	state.Size = s.n
	return state
}

// Clear removes all markers
func (s *PointMarkerSet) Clear() {
	s.points = [MarkerCapacity]geometry.Vector3{}
	s.n = 0
}

// Len returns the number of markers held
func (s *PointMarkerSet) Len() int {
	return s.n
}

// Markers returns a copy of the markers in insertion order
func (s *PointMarkerSet) Markers() []geometry.Vector3 {
	out := make([]geometry.Vector3, s.n)
	copy(out, s.points[:s.n])
	return out
}

// Pair returns the start and end markers when the set is full
func (s *PointMarkerSet) Pair() (start, end geometry.Vector3, ok bool) {
	if s.n != MarkerCapacity {
		return geometry.Vector3{}, geometry.Vector3{}, false
	}
	return s.points[0], s.points[1], true
}

// Phase returns the measurement phase implied by the marker count
func (s *PointMarkerSet) Phase() Phase {
	return Phase(s.n)
}

// Phase is the state of a measurement
type Phase int

const (
	PhaseEmpty    Phase = iota // No markers
	PhasePartial               // Start marker placed
	PhaseComplete              // Pair placed, label shown
)

func (p Phase) String() string {
	switch p {
	case PhaseEmpty:
		return "empty"
	case PhasePartial:
		return "partial"
	case PhaseComplete:
		return "complete"
	default:
		return "unknown"
	}
}
