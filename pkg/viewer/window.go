package viewer

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/philipparndt/goruler/pkg/ruler"
	"github.com/philipparndt/goruler/pkg/scan"
	"github.com/philipparndt/goruler/pkg/tracking"
)

// Options configures the desktop window
type Options struct {
	Title             string
	Width, Height     float32
	HitTolerance      float64
	ShowFeaturePoints bool
}

// Window hosts the scene view and the measurement side panel
type Window struct {
	app     fyne.App
	window  fyne.Window
	tracker *tracking.Tracker
	session *ruler.Session
	view    *SceneView
	panel   *MeasurementPanel
	logger  *zap.Logger
}

// NewWindow creates the window for cloud inside a
func NewWindow(a fyne.App, cloud *scan.Cloud, opts Options, logger *zap.Logger) *Window {
	if logger == nil {
		logger = zap.NewNop()
	}
	w := a.NewWindow(opts.Title)

	tracker := tracking.NewTracker(cloud, opts.HitTolerance, logger)
	view := NewSceneView(tracker, opts.ShowFeaturePoints)
	session := ruler.NewSession(
		ruler.WithLogger(logger),
		ruler.WithMarkerSink(view),
		ruler.WithLabelSink(view),
	)
	view.SetSession(session)

	win := &Window{
		app:     a,
		window:  w,
		tracker: tracker,
		session: session,
		view:    view,
		panel:   NewMeasurementPanel(),
		logger:  logger,
	}
	view.SetOnChange(win.updatePanel)

	a.Lifecycle().SetOnEnteredForeground(win.enteredForeground)
	a.Lifecycle().SetOnExitedForeground(win.exitedForeground)
	w.SetOnClosed(win.closed)

	win.setupUI(opts)
	win.updatePanel()
	w.Resize(fyne.NewSize(opts.Width, opts.Height))
	return win
}

func (w *Window) setupUI(opts Options) {
	clearButton := widget.NewButton("Clear Measurement", func() {
		w.session.Teardown()
		w.updatePanel()
	})

	featureCheck := widget.NewCheck("Show Feature Points", w.view.SetShowFeaturePoints)
	featureCheck.SetChecked(opts.ShowFeaturePoints)

	instructions := widget.NewLabel(
		"Instructions:\n" +
			"• Click a feature point to place a marker\n" +
			"• Place 2 markers to measure\n" +
			"• A third marker starts a new measurement\n" +
			"• Drag to rotate, scroll to zoom",
	)
	instructions.Wrapping = fyne.TextWrapWord

	infoPanel := container.NewVBox(
		w.panel.sceneLabel,
		widget.NewSeparator(),
		widget.NewLabel("Measurement:"),
		widget.NewSeparator(),
		w.panel.point1Label,
		w.panel.point2Label,
		w.panel.distanceLabel,
		widget.NewSeparator(),
		featureCheck,
		widget.NewSeparator(),
		instructions,
		widget.NewSeparator(),
		clearButton,
	)

	infoScroll := container.NewVScroll(infoPanel)
	infoScroll.SetMinSize(fyne.NewSize(300, 0))

	w.window.SetContent(container.NewBorder(nil, nil, nil, infoScroll, w.view))
}

// Reload swaps in a new scanned scene. Markers placed in the old scene
// are torn down. Must run on the fyne main goroutine.
func (w *Window) Reload(cloud *scan.Cloud) {
	w.session.Teardown()
	w.tracker.SetCloud(cloud)
	w.view.Refresh()
	w.updatePanel()
	w.logger.Info("scene reloaded", zap.String("scene", cloud.Name), zap.Int("points", cloud.Len()))
}

// ShowAndRun shows the window and blocks until the app quits
func (w *Window) ShowAndRun() {
	w.tracker.Start()
	w.window.ShowAndRun()
}

// Tracking follows the app being in front. The session is left alone, so
// a measurement survives switching away and back.
func (w *Window) enteredForeground() {
	w.tracker.Start()
}

func (w *Window) exitedForeground() {
	w.tracker.Pause()
}

func (w *Window) closed() {
	w.session.Teardown()
	w.tracker.Pause()
}

func (w *Window) updatePanel() {
	w.panel.Update(w.tracker.Cloud(), w.session)
}

// MeasurementPanel lists the placed points and the measured distance
type MeasurementPanel struct {
	sceneLabel    *widget.Label
	point1Label   *widget.Label
	point2Label   *widget.Label
	distanceLabel *widget.Label
}

// NewMeasurementPanel creates an empty panel
func NewMeasurementPanel() *MeasurementPanel {
	p := &MeasurementPanel{
		sceneLabel:    widget.NewLabel(""),
		point1Label:   widget.NewLabel(""),
		point2Label:   widget.NewLabel(""),
		distanceLabel: widget.NewLabel(""),
	}
	p.distanceLabel.TextStyle = fyne.TextStyle{Bold: true}
	return p
}

// Update refreshes the panel from the session state
func (p *MeasurementPanel) Update(cloud *scan.Cloud, session *ruler.Session) {
	p.sceneLabel.SetText(fmt.Sprintf("Scene: %s\nFeature points: %d", cloud.Name, cloud.Len()))

	markers := session.Markers()
	switch len(markers) {
	case 0:
		p.point1Label.SetText("Point 1: Not selected")
		p.point2Label.SetText("Point 2: Not selected")
	case 1:
		p.point1Label.SetText("Point 1: " + markers[0].String())
		p.point2Label.SetText("Point 2: Click to select")
	default:
		p.point1Label.SetText("Point 1: " + markers[0].String())
		p.point2Label.SetText("Point 2: " + markers[1].String())
	}

	if label, ok := session.Label(); ok {
		p.distanceLabel.SetText(label.Text)
	} else {
		p.distanceLabel.SetText("Distance: -")
	}
}
