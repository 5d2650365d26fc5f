// Package viewer is the fyne rendering collaborator. SceneView draws the
// tracked feature points, the measurement markers and the distance label,
// and forwards taps to the measuring session.
package viewer

import (
	"image/color"
	"math"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/philipparndt/goruler/pkg/geometry"
	"github.com/philipparndt/goruler/pkg/ruler"
	"github.com/philipparndt/goruler/pkg/tracking"
)

const (
	markerRadius      = 0.005 // meters
	minMarkerPixels   = 3
	featurePointPx    = 2
	labelGlyphHeight  = 1.0 // unscaled text geometry height, scene units
	minLabelTextSize  = 11
	maxLabelTextSize  = 48
	rotateSensitivity = 0.01
	zoomSensitivity   = 0.001
)

var (
	backgroundColor   = color.NRGBA{R: 15, G: 18, B: 25, A: 255}
	featurePointColor = color.NRGBA{R: 255, G: 220, B: 0, A: 200}
	markerColor       = color.NRGBA{R: 255, G: 0, B: 0, A: 255}
	labelColor        = color.NRGBA{R: 255, G: 0, B: 0, A: 255}
)

// SceneView renders the tracked scene. It implements ruler.MarkerSink and
// ruler.LabelSink and must only be used from the fyne main goroutine.
type SceneView struct {
	widget.BaseWidget

	tracker           *tracking.Tracker
	session           *ruler.Session
	showFeaturePoints bool
	markers           []geometry.Vector3
	label             *ruler.LabelDescriptor
	isDragging        bool
	onChange          func()
}

var (
	_ ruler.MarkerSink = (*SceneView)(nil)
	_ ruler.LabelSink  = (*SceneView)(nil)
	_ fyne.Tappable    = (*SceneView)(nil)
	_ fyne.Draggable   = (*SceneView)(nil)
	_ fyne.Scrollable  = (*SceneView)(nil)
)

// NewSceneView creates a view over tracker
func NewSceneView(tracker *tracking.Tracker, showFeaturePoints bool) *SceneView {
	v := &SceneView{
		tracker:           tracker,
		showFeaturePoints: showFeaturePoints,
	}
	v.ExtendBaseWidget(v)
	return v
}

// SetSession sets the session that receives taps
func (v *SceneView) SetSession(s *ruler.Session) {
	v.session = s
}

// SetOnChange sets a callback invoked after every handled tap
func (v *SceneView) SetOnChange(fn func()) {
	v.onChange = fn
}

// SetShowFeaturePoints toggles the feature-point debug overlay
func (v *SceneView) SetShowFeaturePoints(show bool) {
	v.showFeaturePoints = show
	v.Refresh()
}

// ShowMarker draws a marker at p
func (v *SceneView) ShowMarker(p geometry.Vector3) {
	v.markers = append(v.markers, p)
	v.Refresh()
}

// RemoveMarkers erases the markers at points
func (v *SceneView) RemoveMarkers(points []geometry.Vector3) {
	for _, p := range points {
		for i, m := range v.markers {
			if m == p {
				v.markers = append(v.markers[:i], v.markers[i+1:]...)
				break
			}
		}
	}
	v.Refresh()
}

// ShowLabel replaces the drawn label with d
func (v *SceneView) ShowLabel(d ruler.LabelDescriptor) {
	v.label = &d
	v.Refresh()
}

// RemoveLabel erases d if it is the drawn label
func (v *SceneView) RemoveLabel(d ruler.LabelDescriptor) {
	if v.label != nil && *v.label == d {
		v.label = nil
		v.Refresh()
	}
}

// Tapped forwards the tap location to the session
func (v *SceneView) Tapped(event *fyne.PointEvent) {
	if v.isDragging || v.session == nil {
		return
	}
	v.session.HandleTap(v.tracker, ruler.ScreenPoint{
		X: float64(event.Position.X),
		Y: float64(event.Position.Y),
	})
	if v.onChange != nil {
		v.onChange()
	}
}

// Dragged orbits the camera
func (v *SceneView) Dragged(event *fyne.DragEvent) {
	v.isDragging = true
	v.tracker.Camera().Rotate(
		float64(event.Dragged.DY)*rotateSensitivity,
		float64(-event.Dragged.DX)*rotateSensitivity,
	)
	v.Refresh()
}

// DragEnd ends an orbit gesture
func (v *SceneView) DragEnd() {
	v.isDragging = false
}

// Scrolled zooms the camera
func (v *SceneView) Scrolled(event *fyne.ScrollEvent) {
	v.tracker.Camera().Zoom(-float64(event.Scrolled.DY) * zoomSensitivity)
	v.Refresh()
}

// CreateRenderer creates the renderer for the widget
func (v *SceneView) CreateRenderer() fyne.WidgetRenderer {
	r := &sceneRenderer{
		view:       v,
		background: canvas.NewRectangle(backgroundColor),
	}
	r.rebuild()
	return r
}

// sceneRenderer implements fyne.WidgetRenderer
type sceneRenderer struct {
	view       *SceneView
	background *canvas.Rectangle
	objects    []fyne.CanvasObject
}

func (r *sceneRenderer) Layout(size fyne.Size) {
	r.view.tracker.SetViewport(float64(size.Width), float64(size.Height))
	r.background.Resize(size)
	r.rebuild()
}

func (r *sceneRenderer) MinSize() fyne.Size {
	return fyne.NewSize(400, 400)
}

func (r *sceneRenderer) Refresh() {
	r.rebuild()
	canvas.Refresh(r.view)
}

func (r *sceneRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *sceneRenderer) Destroy() {}

// rebuild projects every scene object into fresh canvas objects
func (r *sceneRenderer) rebuild() {
	v := r.view
	objects := []fyne.CanvasObject{r.background}

	if v.showFeaturePoints {
		for _, p := range v.tracker.Cloud().Points {
			if dot, ok := r.dot(p, featurePointPx, featurePointColor); ok {
				objects = append(objects, dot)
			}
		}
	}

	for _, p := range v.markers {
		at, depth, ok := v.tracker.Project(p)
		if !ok {
			continue
		}
		radius := math.Max(minMarkerPixels, markerRadius*v.tracker.PixelsPerMeter(depth))
		objects = append(objects, circleAt(at, radius, markerColor))
	}

	if v.label != nil {
		if text, ok := r.labelText(*v.label); ok {
			objects = append(objects, text)
		}
	}

	r.objects = objects
}

func (r *sceneRenderer) dot(p geometry.Vector3, radius float64, c color.Color) (fyne.CanvasObject, bool) {
	at, _, ok := r.view.tracker.Project(p)
	if !ok {
		return nil, false
	}
	return circleAt(at, radius, c), true
}

func circleAt(at ruler.ScreenPoint, radius float64, c color.Color) *canvas.Circle {
	circle := canvas.NewCircle(c)
	size := float32(radius * 2)
	circle.Resize(fyne.NewSize(size, size))
	circle.Move(fyne.NewPos(float32(at.X-radius), float32(at.Y-radius)))
	return circle
}

// labelText places the label with its baseline at the anchor. The text
// height follows the label scale, clamped to stay readable.
func (r *sceneRenderer) labelText(d ruler.LabelDescriptor) (*canvas.Text, bool) {
	at, depth, ok := r.view.tracker.Project(d.Anchor)
	if !ok {
		return nil, false
	}

	size := d.Scale.Y * labelGlyphHeight * r.view.tracker.PixelsPerMeter(depth)
	size = math.Max(minLabelTextSize, math.Min(maxLabelTextSize, size))

	text := canvas.NewText(d.Text, labelColor)
	text.TextSize = float32(size)
	text.TextStyle = fyne.TextStyle{Bold: true}
	text.Resize(text.MinSize())
	text.Move(fyne.NewPos(float32(at.X), float32(at.Y)-text.MinSize().Height))
	return text, true
}
