package ruler

import (
	"github.com/philipparndt/goruler/pkg/geometry"
	"go.uber.org/zap"
)

// Session owns one marker set and the single live label. Taps are handled
// to completion on the caller's goroutine; a Session is not safe for
// concurrent use.
type Session struct {
	markers   PointMarkerSet
	presenter Presenter
	label     *LabelDescriptor

	markerSink MarkerSink
	labelSink  LabelSink
	logger     *zap.Logger
	metrics    sessionMetrics
}

// Option configures a Session
type Option func(*Session)

// WithLogger sets the session logger
func WithLogger(logger *zap.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMarkerSink sets where markers are rendered
func WithMarkerSink(sink MarkerSink) Option {
	return func(s *Session) {
		s.markerSink = sink
	}
}

// WithLabelSink sets where the distance label is rendered
func WithLabelSink(sink LabelSink) Option {
	return func(s *Session) {
		s.labelSink = sink
	}
}

// NewSession creates an empty session. Without sinks the session runs
// headless.
func NewSession(opts ...Option) *Session {
	s := &Session{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	s.metrics = newSessionMetrics(s.logger)
	return s
}

// HandleTap hit-tests at and feeds the resulting point to the session.
// A miss leaves the session unchanged and returns false.
func (s *Session) HandleTap(tester HitTester, at ScreenPoint) (SetState, bool) {
	p, ok := tester.HitTest(at)
	if !ok {
		s.metrics.tapMissed()
		s.logger.Debug("tap missed", zap.Float64("x", at.X), zap.Float64("y", at.Y))
		return SetState{Size: s.markers.Len()}, false
	}
	return s.AddPoint(p), true
}

// AddPoint accepts a tracked point
func (s *Session) AddPoint(p geometry.Vector3) SetState {
	s.metrics.tapAccepted()

	state := s.markers.Add(p)
	if state.Cleared {
		s.logger.Debug("measurement reset", zap.Int("discarded", len(state.Discarded)))
		if s.markerSink != nil {
			s.markerSink.RemoveMarkers(state.Discarded)
		}
		s.swapLabel(nil)
	}

	if s.markerSink != nil {
		s.markerSink.ShowMarker(p)
	}
	s.logger.Debug("marker placed",
		zap.Stringer("point", p),
		zap.Stringer("phase", s.markers.Phase()))

	if label, ok := s.presenter.PresentSet(&s.markers); ok {
		s.swapLabel(&label)
		s.metrics.measured(label.Distance)
		s.logger.Info("measurement completed",
			zap.Float64("distance_cm", label.Distance*CentimetersPerMeter),
			zap.String("label", label.Text))
	}
	return state
}

// swapLabel replaces the live label with next, removing the old one from
// the sink first. A nil next only removes.
func (s *Session) swapLabel(next *LabelDescriptor) {
	if s.label != nil && s.labelSink != nil {
		s.labelSink.RemoveLabel(*s.label)
	}
	s.label = next
	if next != nil && s.labelSink != nil {
		s.labelSink.ShowLabel(*next)
	}
}

// Markers returns the current markers in insertion order
func (s *Session) Markers() []geometry.Vector3 {
	return s.markers.Markers()
}

// Phase returns the current measurement phase
func (s *Session) Phase() Phase {
	return s.markers.Phase()
}

// Label returns the live label, if any
func (s *Session) Label() (LabelDescriptor, bool) {
	if s.label == nil {
		return LabelDescriptor{}, false
	}
	return *s.label, true
}

// Teardown removes every marker and the live label from the sinks. The
// session is empty afterwards and can be reused.
func (s *Session) Teardown() {
	if s.markers.Len() > 0 && s.markerSink != nil {
		s.markerSink.RemoveMarkers(s.markers.Markers())
	}
	s.markers.Clear()
	s.swapLabel(nil)
	s.logger.Debug("session torn down")
}
