/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"fmt"
	"path/filepath"
	"strings"

	"graphio/internal/vector"
)

// PresetName represents a named export preset.
type PresetName string

const (
	PresetWeb   PresetName = "web"
	PresetPrint PresetName = "print"
)

// ParsePreset accepts "web" or "print".
func ParsePreset(s string) (PresetName, error) {
	switch p := PresetName(strings.ToLower(strings.TrimSpace(s))); p {
	case PresetWeb, PresetPrint:
		return p, nil
	}
	return "", fmt.Errorf("unknown preset: %q", s)
}

// BatchOptions controls writing one drawing in several formats at once.
//
// Files are named <Name>.<format> inside OutDir. The preset picks the
// formats when Formats is empty and sets the PNG scale when Options.Scale
// is zero: web writes png and svg at 1x, print writes pdf and png at 2x.
//
//nolint:revive // keep fields explicit for clarity
type BatchOptions struct {
	Preset  PresetName
	Formats []string // allowed: png, svg, pdf; empty means preset defaults
	OutDir  string
	Name    string // base file name; "drawing" when empty
	Options Options
}

// BatchExport writes every requested format and returns the written paths.
func BatchExport(shapes []*vector.Shape, opt BatchOptions) ([]string, error) {
	if len(shapes) == 0 {
		return nil, ErrEmptyDrawing
	}
	formats := opt.Formats
	if len(formats) == 0 {
		formats = presetDefaultFormats(opt.Preset)
	}
	name := opt.Name
	if name == "" {
		name = "drawing"
	}
	o := opt.Options
	if o.Scale == 0 {
		o.Scale = presetScale(opt.Preset)
	}

	var written []string
	for _, raw := range formats {
		f, err := ParseFormat(raw)
		if err != nil {
			return written, err
		}
		out := filepath.Join(opt.OutDir, name+"."+string(f))
		if err := SaveAs(out, f, shapes, o); err != nil {
			return written, fmt.Errorf("%s: %w", f, err)
		}
		written = append(written, out)
	}
	return written, nil
}

func presetDefaultFormats(p PresetName) []string {
	switch p {
	case PresetWeb:
		return []string{"png", "svg"}
	case PresetPrint:
		return []string{"pdf", "png"}
	default:
		return []string{"png"}
	}
}

func presetScale(p PresetName) float64 {
	if p == PresetPrint {
		return 2
	}
	return 1
}
