// Package config loads DoodlePad settings from a YAML file layered over
// built-in defaults.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"DoodlePad/internal/export"
	"DoodlePad/internal/state"
	"DoodlePad/internal/surface"

	"gopkg.in/yaml.v3"
)

type Window struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
}

type Pen struct {
	Color string  `yaml:"color"`
	Width float64 `yaml:"width"`
}

type Eraser struct {
	Width float64 `yaml:"width"`
}

type Canvas struct {
	Background string  `yaml:"background"`
	Tolerance  float64 `yaml:"tolerance"`
}

type Export struct {
	Format         string `yaml:"format"`
	Quality        int    `yaml:"quality"`
	Prefix         string `yaml:"prefix"`
	Location       string `yaml:"location"`
	Dir            string `yaml:"dir"` // root for Location; empty means the home directory
	ClearOnFailure bool   `yaml:"clear_on_failure"`
}

type Config struct {
	Window Window `yaml:"window"`
	Pen    Pen    `yaml:"pen"`
	Eraser Eraser `yaml:"eraser"`
	Canvas Canvas `yaml:"canvas"`
	Export Export `yaml:"export"`
}

func Default() Config {
	return Config{
		Window: Window{Title: "DoodlePad", Width: 1024, Height: 768},
		Pen:    Pen{Color: state.Black.String(), Width: surface.DefaultWidth},
		Eraser: Eraser{Width: surface.DefaultEraserWidth},
		Canvas: Canvas{Background: state.White.String(), Tolerance: surface.DefaultTolerance},
		Export: Export{
			Format:         string(export.JPEG),
			Quality:        100,
			Prefix:         "Doodle",
			Location:       "Download/DoodleApp",
			ClearOnFailure: true,
		},
	}
}

// Load reads path over the defaults. An empty path yields the defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := Parse(bytes.NewReader(data))
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML from r over the defaults and validates the result.
// Unknown keys are rejected.
func Parse(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d must be positive", c.Window.Width, c.Window.Height))
	}
	if _, err := state.ParseARGB(c.Pen.Color); err != nil {
		errs = append(errs, fmt.Errorf("pen.color: %w", err))
	}
	if c.Pen.Width <= 0 {
		errs = append(errs, fmt.Errorf("pen.width %v must be positive", c.Pen.Width))
	}
	if c.Eraser.Width <= 0 {
		errs = append(errs, fmt.Errorf("eraser.width %v must be positive", c.Eraser.Width))
	}
	if bg, err := state.ParseARGB(c.Canvas.Background); err != nil {
		errs = append(errs, fmt.Errorf("canvas.background: %w", err))
	} else if bg.A() != 0xFF {
		errs = append(errs, fmt.Errorf("canvas.background %s must be opaque", bg))
	}
	if c.Canvas.Tolerance <= 0 {
		errs = append(errs, fmt.Errorf("canvas.tolerance %v must be positive", c.Canvas.Tolerance))
	}
	if _, err := export.ParseFormat(c.Export.Format); err != nil {
		errs = append(errs, fmt.Errorf("export.format: %w", err))
	}
	if c.Export.Quality < 1 || c.Export.Quality > 100 {
		errs = append(errs, fmt.Errorf("export.quality %d must be within 1..100", c.Export.Quality))
	}
	if c.Export.Prefix == "" || filepath.Base(c.Export.Prefix) != c.Export.Prefix {
		errs = append(errs, fmt.Errorf("export.prefix %q must be a plain file name", c.Export.Prefix))
	}
	return errors.Join(errs...)
}

// SurfaceOptions converts a validated config into surface options.
func (c Config) SurfaceOptions() (surface.Options, error) {
	pen, err := state.ParseARGB(c.Pen.Color)
	if err != nil {
		return surface.Options{}, fmt.Errorf("pen.color: %w", err)
	}
	bg, err := state.ParseARGB(c.Canvas.Background)
	if err != nil {
		return surface.Options{}, fmt.Errorf("canvas.background: %w", err)
	}
	format, err := export.ParseFormat(c.Export.Format)
	if err != nil {
		return surface.Options{}, fmt.Errorf("export.format: %w", err)
	}

	opts := surface.DefaultOptions()
	opts.Tolerance = c.Canvas.Tolerance
	opts.Background = bg
	opts.Pen = state.Style{Color: pen, Width: c.Pen.Width}
	opts.EraserWidth = c.Eraser.Width
	opts.Export = export.Settings{
		Format:   format,
		Quality:  c.Export.Quality,
		Prefix:   c.Export.Prefix,
		Location: c.Export.Location,
	}
	opts.ClearOnFailedExport = c.Export.ClearOnFailure
	return opts, nil
}

// ExportRoot resolves the directory exports are stored under.
func (c Config) ExportRoot() (string, error) {
	if c.Export.Dir != "" {
		return c.Export.Dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve export dir: %w", err)
	}
	return home, nil
}
