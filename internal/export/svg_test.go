/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/srwiley/oksvg"

	"graphio/internal/vector"
)

func TestWriteSVGParsesBack(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSVG(&buf, sample(), Options{}); err != nil {
		t.Fatalf("write: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"<rect", "<ellipse", "<polyline", "stroke-linecap:round", "stroke:#000000"} {
		if !strings.Contains(out, want) {
			t.Errorf("svg missing %q", want)
		}
	}
	icon, err := oksvg.ReadIconStream(strings.NewReader(out), oksvg.WarnErrorMode)
	if err != nil {
		t.Fatalf("oksvg parse: %v\n%s", err, out)
	}
	if icon.ViewBox.W != 62 || icon.ViewBox.H != 32 {
		t.Fatalf("viewBox = %vx%v, want 62x32", icon.ViewBox.W, icon.ViewBox.H)
	}
	if n := len(icon.SVGPaths); n < len(sample()) {
		t.Fatalf("parsed %d paths, want at least %d", n, len(sample()))
	}
}

func TestWriteSVGOpacityAndBackground(t *testing.T) {
	st := vector.Stroke{Color: vector.Color{R: 255, A: 128}, Width: 3}
	s := vector.NewBox(vector.KindRectangle, vector.Pt{}, vector.Pt{X: 4, Y: 4}, st)
	var buf bytes.Buffer
	if err := WriteSVG(&buf, []*vector.Shape{s}, Options{Background: vector.White}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "stroke-opacity:0.502") {
		t.Errorf("missing stroke opacity in %s", out)
	}
	if !strings.Contains(out, "fill:#ffffff") {
		t.Errorf("missing background in %s", out)
	}
}

func TestWriteSVGDegenerateBoxes(t *testing.T) {
	st := vector.Stroke{Color: vector.Black, Width: 3}
	shapes := []*vector.Shape{
		vector.NewBox(vector.KindRectangle, vector.Pt{X: 1, Y: 1}, vector.Pt{X: 1, Y: 1}, st),
		vector.NewBox(vector.KindEllipse, vector.Pt{X: 5, Y: 8}, vector.Pt{X: 15, Y: 8}, st),
		vector.NewBox(vector.KindEllipse, vector.Pt{X: 10.2, Y: 10.2}, vector.Pt{X: 10.6, Y: 10.6}, st),
	}
	var buf bytes.Buffer
	if err := WriteSVG(&buf, shapes, Options{}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if strings.Contains(out, `width="0.00"`) || strings.Contains(out, `rx="0.00"`) {
		t.Fatalf("zero-size element written:\n%s", out)
	}
	// bounds start at (-0.5, -0.5): the point box lands on (1.5, 1.5)
	for _, want := range []string{
		`<circle cx="1.50" cy="1.50" r="1.50"`,
		`<line x1="5.50" y1="8.50" x2="15.50" y2="8.50"`,
		`rx="0.20" ry="0.20"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("svg missing %s in\n%s", want, out)
		}
	}
	icon, err := oksvg.ReadIconStream(strings.NewReader(out), oksvg.WarnErrorMode)
	if err != nil {
		t.Fatalf("oksvg parse: %v", err)
	}
	if n := len(icon.SVGPaths); n != len(shapes) {
		t.Fatalf("parsed %d paths, want %d", n, len(shapes))
	}
}
