package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"DoodlePad/internal/config"
	"DoodlePad/internal/surface"
	"DoodlePad/internal/ui"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	debug := flag.Bool("debug", false, "log every stroke event")
	flag.Parse()

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	surface.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("[CONFIG] %v", err)
	}
	log.Printf("Starting DoodlePad (pen %s, width %v, export %s)", cfg.Pen.Color, cfg.Pen.Width, cfg.Export.Format)

	if err := ui.RunApp(cfg); err != nil {
		log.Fatalf("[APP] %v", err)
	}
}
