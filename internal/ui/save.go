package ui

import (
	"log"

	"DoodlePad/internal/export"
)

// saveDoodle exports the drawing through sink and reports the outcome in
// the status bar. The canvas is blank afterwards either way.
func saveDoodle(d *DoodleWidget, sink export.Opener) {
	name, err := d.Save(sink)
	if err != nil {
		log.Printf("[SAVE] Error saving doodle: %v", err)
		d.SetStatus("Error with Doodle save")
		return
	}
	log.Printf("[SAVE] Saved %s", name)
	d.SetStatus("Doodle saved")
}
