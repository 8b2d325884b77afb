/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package export writes the current drawing as PNG, SVG or PDF.
//
// Every exporter sizes its output to the painted bounds of the shapes (stroke
// widths included) plus an optional margin, and translates the drawing so that
// the top-left of those bounds lands on the origin. Exports are read-only with
// respect to the document.
package export

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"graphio/internal/config"
	"graphio/internal/document"
	"graphio/internal/vector"
)

// ErrEmptyDrawing is returned when there is nothing to export.
var ErrEmptyDrawing = errors.New("drawing is empty")

// Options controls every exporter. Zero values give a 1:1 transparent export.
//
//nolint:revive // keep fields explicit for clarity
type Options struct {
	Scale      float64      // PNG pixels per canvas unit; <= 0 means 1
	Margin     float64      // extra canvas units around the drawing
	Background vector.Color // A == 0 means transparent (white for PDF)
	Title      string       // PDF document title
}

// FromConfig maps the user export settings onto Options.
func FromConfig(c config.ExportConfig) Options {
	o := Options{Scale: c.Scale, Margin: c.Margin}
	if bg, ok := c.BackgroundColor(); ok {
		o.Background = bg
	}
	return o
}

func (o Options) scale() float64 {
	if o.Scale <= 0 || math.IsNaN(o.Scale) || math.IsInf(o.Scale, 0) {
		return 1
	}
	return o.Scale
}

// page is the exported area in canvas units.
type page struct {
	X, Y, W, H float64
}

func layout(shapes []*vector.Shape, o Options) (page, error) {
	b, ok := document.Bounds(shapes)
	if !ok {
		return page{}, ErrEmptyDrawing
	}
	m := max(o.Margin, 0)
	return page{
		X: float64(b.X) - m,
		Y: float64(b.Y) - m,
		W: float64(b.W) + 2*m,
		H: float64(b.H) + 2*m,
	}, nil
}

// at maps a canvas point into page coordinates.
func (p page) at(pt vector.Pt) (float64, float64) {
	return float64(pt.X) - p.X, float64(pt.Y) - p.Y
}

// Format identifies an output file type.
type Format string

const (
	FormatPNG Format = "png"
	FormatSVG Format = "svg"
	FormatPDF Format = "pdf"
)

// Formats lists the supported formats.
var Formats = []Format{FormatPNG, FormatSVG, FormatPDF}

// ParseFormat accepts a format name or a file extension with or without the dot.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "."))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown export format: %q", s)
}

// FormatFromPath derives the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// Save writes shapes to path in the format implied by its extension,
// creating parent directories as needed.
func Save(path string, shapes []*vector.Shape, opt Options) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	return SaveAs(path, f, shapes, opt)
}

// SaveAs writes shapes to path in the given format.
func SaveAs(path string, f Format, shapes []*vector.Shape, opt Options) error {
	switch f {
	case FormatPNG:
		return SavePNG(path, shapes, opt)
	case FormatSVG:
		return SaveSVG(path, shapes, opt)
	case FormatPDF:
		return SavePDF(path, shapes, opt)
	}
	return fmt.Errorf("unknown export format: %q", f)
}

// writeFile streams an encoder into a temp file next to path, syncs it and
// renames it over path. On failure the temp file is removed and an existing
// file at path is left untouched.
func writeFile(path string, write func(f *os.File) error) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	f, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create %s: %w", filepath.Base(path), err)
	}
	temp := f.Name()
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(temp)
		}
	}()
	if err := write(f); err != nil {
		return err
	}
	if err := f.Sync(); err != nil {
		return fmt.Errorf("sync %s: %w", filepath.Base(path), err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", filepath.Base(path), err)
	}
	if err := os.Chmod(temp, 0o644); err != nil {
		return err
	}
	// rename does not replace an existing file on Windows
	if _, statErr := os.Stat(path); statErr == nil {
		_ = os.Remove(path)
	}
	if err := os.Rename(temp, path); err != nil {
		return fmt.Errorf("replace %s: %w", filepath.Base(path), err)
	}
	return nil
}
