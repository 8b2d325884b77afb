/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package gesture replays scripted pointer gestures through an editor, so a
// drawing can be produced without a window.
//
// A script is a YAML document:
//
//	name: two boxes
//	settings: {tool: rectangle, color: "#ff0000", width: 4}
//	steps:
//	  - press: [10, 10]
//	  - move: [40, 30]
//	  - release: [40, 30]
//	  - tool: brush
//	  - stroke: [[0, 0], [5, 0], [5, 5]]
//	  - undo: 1
//
// Each step holds exactly one action. A stroke is shorthand for a press on
// its first point, a move to every later point and a release on the last one.
package gesture

import (
	"fmt"

	"graphio/internal/vector"
)

// Script is a parsed gesture script.
type Script struct {
	Name     string    `yaml:"name,omitempty"`
	Settings *Settings `yaml:"settings,omitempty"`
	Steps    []Step    `yaml:"steps"`
}

// Settings are applied before the first step.
type Settings struct {
	Tool  string `yaml:"tool,omitempty"`
	Color string `yaml:"color,omitempty"`
	Width int    `yaml:"width,omitempty"`
}

// Point is an [x, y] pair.
type Point [2]float32

func (p Point) Pt() vector.Pt { return vector.Pt{X: p[0], Y: p[1]} }

// Op names the action a step performs.
type Op uint8

const (
	OpNone Op = iota
	OpTool
	OpColor
	OpWidth
	OpPress
	OpMove
	OpRelease
	OpStroke
	OpUndo
	OpRedo
)

var opNames = [...]string{"none", "tool", "color", "width", "press", "move", "release", "stroke", "undo", "redo"}

func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return fmt.Sprintf("op(%d)", uint8(o))
}

// Step is a single scripted action. Exactly one field is set.
type Step struct {
	Tool    string  `yaml:"tool,omitempty"`
	Color   string  `yaml:"color,omitempty"`
	Width   *int    `yaml:"width,omitempty"`
	Press   *Point  `yaml:"press,omitempty"`
	Move    *Point  `yaml:"move,omitempty"`
	Release *Point  `yaml:"release,omitempty"`
	Stroke  []Point `yaml:"stroke,omitempty"`
	Undo    int     `yaml:"undo,omitempty"`
	Redo    int     `yaml:"redo,omitempty"`

	Line int `yaml:"-"` // 1-based line in the source, 0 when built in code
}

// Op reports the action of the step.
func (s Step) Op() Op {
	switch {
	case s.Tool != "":
		return OpTool
	case s.Color != "":
		return OpColor
	case s.Width != nil:
		return OpWidth
	case s.Press != nil:
		return OpPress
	case s.Move != nil:
		return OpMove
	case s.Release != nil:
		return OpRelease
	case len(s.Stroke) > 0:
		return OpStroke
	case s.Undo > 0:
		return OpUndo
	case s.Redo > 0:
		return OpRedo
	}
	return OpNone
}

// Error is a script problem with its position.
type Error struct {
	Step    int // 1-based, 0 for document-level problems
	Line    int
	Message string
}

func (e Error) Error() string {
	switch {
	case e.Step > 0 && e.Line > 0:
		return fmt.Sprintf("step %d (line %d): %s", e.Step, e.Line, e.Message)
	case e.Step > 0:
		return fmt.Sprintf("step %d: %s", e.Step, e.Message)
	case e.Line > 0:
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}
