/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package gesture

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

func TestSchemaCompiles(t *testing.T) {
	if _, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(Schema())); err != nil {
		t.Fatalf("schema: %v", err)
	}
}

func TestLoadSampleScript(t *testing.T) {
	s, err := Load(filepath.Join("testdata", "house.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.Name != "house" || s.Settings == nil || s.Settings.Width != 4 {
		t.Fatalf("unexpected header %+v", s)
	}
	if len(s.Steps) != 12 {
		t.Fatalf("steps = %d, want 12", len(s.Steps))
	}
	if s.Steps[0].Op() != OpPress || s.Steps[0].Line != 8 {
		t.Fatalf("first step = %v at line %d", s.Steps[0].Op(), s.Steps[0].Line)
	}
	if s.Steps[5].Op() != OpStroke || len(s.Steps[5].Stroke) != 3 {
		t.Fatalf("roof step = %+v", s.Steps[5])
	}
	if got := s.Steps[5].Stroke[1]; got != (Point{50, 10}) {
		t.Fatalf("roof apex = %v", got)
	}
}

func TestParseRejects(t *testing.T) {
	cases := map[string]string{
		"empty":          ``,
		"not yaml":       "steps: [",
		"missing steps":  "name: x\n",
		"unknown key":    "steps: []\nlayers: 2\n",
		"two actions":    "steps:\n  - press: [1, 1]\n    release: [1, 1]\n",
		"empty step":     "steps:\n  - {}\n",
		"short point":    "steps:\n  - press: [1]\n",
		"bad color":      "steps:\n  - color: red\n",
		"unknown tool":   "steps:\n  - tool: lasso\n",
		"zero undo":      "steps:\n  - undo: 0\n",
		"string width":   "steps:\n  - width: wide\n",
		"empty stroke":   "steps:\n  - stroke: []\n",
		"bad settings":   "settings: {tool: spray}\nsteps: []\n",
		"unknown action": "steps:\n  - erase: [1, 1]\n",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse([]byte(src)); !errors.Is(err, ErrInvalidScript) {
				t.Fatalf("err = %v, want ErrInvalidScript", err)
			}
		})
	}
}

func TestParseToolAliases(t *testing.T) {
	src := "settings: {tool: Oval}\nsteps:\n  - tool: rect\n  - tool: pen\n  - tool: freehand\n"
	s, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("aliases rejected: %v", err)
	}
	if len(s.Steps) != 3 || s.Settings.Tool != "Oval" {
		t.Fatalf("script = %+v", s)
	}

	_, err = Parse([]byte("name: x\nsteps:\n  - tool: rect\n  - tool: lasso\n"))
	if !errors.Is(err, ErrInvalidScript) {
		t.Fatalf("err = %v, want ErrInvalidScript", err)
	}
	if !strings.Contains(err.Error(), "step 2 (line 4)") || !strings.Contains(err.Error(), `unknown tool "lasso"`) {
		t.Fatalf("error should locate the tool step: %v", err)
	}
}

func TestParseReportsSchemaField(t *testing.T) {
	_, err := Parse([]byte("steps:\n  - color: blue\n"))
	if err == nil || !strings.Contains(err.Error(), "steps.0.color") {
		t.Fatalf("error should name the field: %v", err)
	}
}

func TestScriptRoundTripsThroughYAML(t *testing.T) {
	w := 7
	in := Script{Name: "rt", Steps: []Step{{Tool: "ellipse"}, {Width: &w}, {Stroke: []Point{{1, 2}, {3, 4}}}, {Undo: 2}}}
	data, err := yaml.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	out, err := Parse(data)
	if err != nil {
		t.Fatalf("parse marshalled script: %v\n%s", err, data)
	}
	ops := []Op{OpTool, OpWidth, OpStroke, OpUndo}
	for i, op := range ops {
		if out.Steps[i].Op() != op {
			t.Errorf("step %d op = %v, want %v", i, out.Steps[i].Op(), op)
		}
	}
}
