/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package editor

import (
	"fmt"
	"strings"

	"graphio/internal/vector"
)

// Tool is the shape-creation mode selected by the user.
type Tool uint8

const (
	ToolBrush Tool = iota
	ToolRectangle
	ToolEllipse
)

// Tools lists every tool in toolbar order.
var Tools = []Tool{ToolBrush, ToolRectangle, ToolEllipse}

func (t Tool) String() string {
	switch t {
	case ToolBrush:
		return "brush"
	case ToolRectangle:
		return "rectangle"
	case ToolEllipse:
		return "ellipse"
	default:
		return fmt.Sprintf("tool(%d)", uint8(t))
	}
}

// ParseTool accepts the names produced by String plus the short forms "rect" and "pen".
func ParseTool(s string) (Tool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "brush", "pen", "freehand":
		return ToolBrush, nil
	case "rectangle", "rect":
		return ToolRectangle, nil
	case "ellipse", "oval":
		return ToolEllipse, nil
	}
	return ToolBrush, fmt.Errorf("unknown tool %q", s)
}

// Stroke width limits, matching the width slider.
const (
	MinStrokeWidth     = 1
	MaxStrokeWidth     = 50
	DefaultStrokeWidth = 3
)

// Settings is the drawing state chosen by the user: tool, stroke color and
// width. The host owns it and hands the editor a pointer; it is read when a
// gesture starts.
type Settings struct {
	Tool  Tool
	Color vector.Color
	Width int
}

// DefaultSettings returns a white brush of width 3.
func DefaultSettings() Settings {
	return Settings{Tool: ToolBrush, Color: vector.White, Width: DefaultStrokeWidth}
}

// ClampWidth maps any integer onto the supported width range.
func ClampWidth(w int) int {
	return min(max(w, MinStrokeWidth), MaxStrokeWidth)
}

func (s Settings) stroke() vector.Stroke {
	return vector.Stroke{Color: s.Color, Width: float32(ClampWidth(s.Width))}
}
