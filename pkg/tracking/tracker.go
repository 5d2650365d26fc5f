// Package tracking is the desktop tracking collaborator: it owns the camera
// pose over a scanned scene and resolves taps to feature points.
package tracking

import (
	"math"

	"go.uber.org/zap"

	"github.com/philipparndt/goruler/pkg/geometry"
	"github.com/philipparndt/goruler/pkg/ruler"
	"github.com/philipparndt/goruler/pkg/scan"
)

// Tracker hit-tests screen locations against a feature-point cloud. It is
// driven from the UI goroutine only.
type Tracker struct {
	cloud     *scan.Cloud
	camera    *Camera
	width     float64
	height    float64
	tolerance float64
	running   bool
	logger    *zap.Logger
}

var _ ruler.HitTester = (*Tracker)(nil)

// NewTracker creates a paused tracker over cloud. tolerance is the hit
// radius in pixels.
func NewTracker(cloud *scan.Cloud, tolerance float64, logger *zap.Logger) *Tracker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Tracker{
		cloud:     cloud,
		camera:    NewCamera(cloud.Bounds),
		tolerance: tolerance,
		logger:    logger,
	}
}

// Start begins tracking. Hit tests only succeed while running.
func (t *Tracker) Start() {
	if !t.running {
		t.running = true
		t.logger.Info("tracking started",
			zap.String("scene", t.cloud.Name),
			zap.Int("feature_points", t.cloud.Len()))
	}
}

// Pause stops tracking
func (t *Tracker) Pause() {
	if t.running {
		t.running = false
		t.logger.Info("tracking paused")
	}
}

// Running reports whether the tracker is started
func (t *Tracker) Running() bool {
	return t.running
}

// Camera returns the live camera
func (t *Tracker) Camera() *Camera {
	return t.camera
}

// Cloud returns the tracked feature points
func (t *Tracker) Cloud() *scan.Cloud {
	return t.cloud
}

// SetCloud swaps in a reloaded scene and re-frames the camera
func (t *Tracker) SetCloud(cloud *scan.Cloud) {
	t.cloud = cloud
	t.camera = NewCamera(cloud.Bounds)
	t.logger.Info("scene replaced",
		zap.String("scene", cloud.Name),
		zap.Int("feature_points", cloud.Len()))
}

// SetViewport sets the screen size in pixels
func (t *Tracker) SetViewport(width, height float64) {
	t.width = width
	t.height = height
}

// Viewport returns the screen size in pixels
func (t *Tracker) Viewport() (width, height float64) {
	return t.width, t.height
}

// Project maps a world point to the screen
func (t *Tracker) Project(p geometry.Vector3) (ruler.ScreenPoint, float64, bool) {
	if t.width <= 0 || t.height <= 0 {
		return ruler.ScreenPoint{}, 0, false
	}
	x, y, depth, ok := t.camera.Project(p, t.width, t.height)
	return ruler.ScreenPoint{X: x, Y: y}, depth, ok
}

// PixelsPerMeter returns the screen scale at depth
func (t *Tracker) PixelsPerMeter(depth float64) float64 {
	return t.camera.PixelsPerMeter(depth, t.height)
}

// HitTest returns the feature point nearest to at on screen, within the
// tolerance. Among equally close points the one nearest the camera wins.
func (t *Tracker) HitTest(at ruler.ScreenPoint) (geometry.Vector3, bool) {
	if !t.running {
		return geometry.Vector3{}, false
	}

	var (
		best      geometry.Vector3
		bestDist  = math.MaxFloat64
		bestDepth = math.MaxFloat64
		found     bool
	)
	for _, p := range t.cloud.Points {
		screen, depth, ok := t.Project(p)
		if !ok {
			continue
		}
		dist := math.Hypot(screen.X-at.X, screen.Y-at.Y)
		if dist > t.tolerance {
			continue
		}
		if dist < bestDist || (dist == bestDist && depth < bestDepth) {
			best, bestDist, bestDepth, found = p, dist, depth, true
		}
	}

	if found {
		t.logger.Debug("hit test",
			zap.Stringer("point", best),
			zap.Float64("screen_distance", bestDist))
	}
	return best, found
}
