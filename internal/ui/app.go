package ui

import (
	"fmt"
	"log"

	"DoodlePad/internal/config"
	"DoodlePad/internal/export"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
)

func RunApp(cfg config.Config) error {
	opts, err := cfg.SurfaceOptions()
	if err != nil {
		return fmt.Errorf("surface options: %w", err)
	}
	root, err := cfg.ExportRoot()
	if err != nil {
		return err
	}
	sink := export.Dir{Root: root}
	log.Printf("[APP] Saving doodles under %s", sink.Path(export.Request{Location: cfg.Export.Location}))

	myApp := app.New()
	myWindow := myApp.NewWindow(cfg.Window.Title)
	myWindow.Resize(fyne.NewSize(float32(cfg.Window.Width), float32(cfg.Window.Height)))

	// Create the drawing widget
	doodle := NewDoodleWidget(opts)

	// Create the toolbar and pass it a reference to the widget
	toolbar := NewToolbar(doodle, myWindow, sink)

	// Set up the main layout
	content := container.NewBorder(toolbar, nil, nil, nil, doodle)

	myWindow.SetContent(content)
	myWindow.ShowAndRun()
	return nil
}
