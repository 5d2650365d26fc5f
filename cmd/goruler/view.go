package main

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/philipparndt/goruler/pkg/scan"
	"github.com/philipparndt/goruler/pkg/viewer"
	"github.com/philipparndt/goruler/pkg/watcher"
)

var viewCmd = &cobra.Command{
	Use:   "view <scene.stl>",
	Short: "Open a scanned scene and measure interactively",
	Long: `Open a scanned scene in a window. Click two feature points to measure
the distance between them. Drag to rotate, scroll to zoom.`,
	Args: cobra.ExactArgs(1),
	RunE: runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)
}

func runView(cmd *cobra.Command, args []string) error {
	path := args[0]

	cloud, err := scan.Load(path, cfg.Scene.UnitsPerMeter)
	if err != nil {
		return err
	}
	logger.Info("scene loaded", zap.String("scene", cloud.Name), zap.Int("points", cloud.Len()))

	win := viewer.NewWindow(app.New(), cloud, viewer.Options{
		Title:             fmt.Sprintf("goruler - %s", cloud.Name),
		Width:             cfg.Window.Width,
		Height:            cfg.Window.Height,
		HitTolerance:      cfg.Tracking.HitTolerance,
		ShowFeaturePoints: cfg.Tracking.ShowFeaturePoints,
	}, logger)

	if cfg.Scene.Watch {
		fw, err := watchScene(path, win)
		if err != nil {
			return err
		}
		defer fw.Close()
	}

	win.ShowAndRun()
	return nil
}

func watchScene(path string, win *viewer.Window) (*watcher.FileWatcher, error) {
	fw, err := watcher.NewFileWatcher(cfg.Scene.Debounce, logger)
	if err != nil {
		return nil, err
	}

	err = fw.Watch([]string{path}, func(changed string) {
		cloud, err := scan.Load(changed, cfg.Scene.UnitsPerMeter)
		if err != nil {
			logger.Warn("keeping previous scene", zap.String("path", changed), zap.Error(err))
			return
		}
		fyne.Do(func() {
			win.Reload(cloud)
		})
	})
	if err != nil {
		_ = fw.Close()
		return nil, err
	}

	fw.Start()
	return fw, nil
}
