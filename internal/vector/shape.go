/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package vector

import "fmt"

// Kind tags the variant held by a Shape.
type Kind uint8

const (
	KindFreehand Kind = iota
	KindRectangle
	KindEllipse
)

func (k Kind) String() string {
	switch k {
	case KindFreehand:
		return "freehand"
	case KindRectangle:
		return "rectangle"
	case KindEllipse:
		return "ellipse"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Shape is a committed drawable primitive. Fields are unexported so a shape
// cannot change after construction; accessors hand out copies.
//
// A freehand shape holds at least one point. Rectangles and ellipses hold the
// two gesture corners (start, end) in the order they were given.
type Shape struct {
	kind   Kind
	points []Pt
	stroke Stroke
}

// NewBox builds a rectangle or ellipse spanning start and end.
// Zero-area boxes are valid.
func NewBox(kind Kind, start, end Pt, s Stroke) *Shape {
	if kind != KindRectangle && kind != KindEllipse {
		panic(fmt.Sprintf("vector: NewBox called with %v", kind))
	}
	return &Shape{kind: kind, points: []Pt{start, end}, stroke: s.normalized()}
}

func (s *Shape) Kind() Kind      { return s.kind }
func (s *Shape) Stroke() Stroke  { return s.stroke }
func (s *Shape) Points() []Pt    { return append([]Pt(nil), s.points...) }
func (s *Shape) PointCount() int { return len(s.points) }

// Corners returns the gesture start and end of a rectangle or ellipse.
// For freehand paths it returns the first and last points.
func (s *Shape) Corners() (start, end Pt) {
	return s.points[0], s.points[len(s.points)-1]
}

// Box returns the normalized box of a rectangle or ellipse, and the point
// bounds of a freehand path.
func (s *Shape) Box() Rect {
	if s.kind == KindFreehand {
		return boundsOf(s.points)
	}
	return RectFromPoints(s.points[0], s.points[1])
}

// Bounds returns the painted extent: the geometric box grown by half the
// stroke width on each side.
func (s *Shape) Bounds() Rect {
	hw := s.stroke.Width / 2
	return s.Box().Inset(-hw, -hw)
}

// Equal reports whether two shapes have the same kind, geometry and stroke.
func (s *Shape) Equal(o *Shape) bool {
	if s == o {
		return true
	}
	if s == nil || o == nil || s.kind != o.kind || s.stroke != o.stroke || len(s.points) != len(o.points) {
		return false
	}
	for i := range s.points {
		if s.points[i] != o.points[i] {
			return false
		}
	}
	return true
}

func (s *Shape) String() string {
	return fmt.Sprintf("%v%v stroke=%s/%g", s.kind, s.points, s.stroke.Color.Hex(), s.stroke.Width)
}

// Builder accumulates a freehand path during a brush gesture.
type Builder struct {
	points []Pt
	stroke Stroke
	done   bool
}

// NewBrush starts a freehand path at p. Brush strokes are painted with round
// caps and joins.
func NewBrush(p Pt, s Stroke) *Builder {
	s = s.normalized()
	s.Cap, s.Join = CapRound, JoinRound
	return &Builder{points: []Pt{p}, stroke: s}
}

// Extend appends a point. Calling it after Finalize is a programming error.
func (b *Builder) Extend(p Pt) {
	if b.done {
		panic("vector: Extend after Finalize")
	}
	b.points = append(b.points, p)
}

// Len returns the number of points collected so far.
func (b *Builder) Len() int { return len(b.points) }

// Preview returns an immutable snapshot of the path collected so far.
func (b *Builder) Preview() *Shape {
	return &Shape{kind: KindFreehand, points: append([]Pt(nil), b.points...), stroke: b.stroke}
}

// Finalize returns the committed shape. The builder cannot be extended afterwards.
func (b *Builder) Finalize() *Shape {
	if b.done {
		panic("vector: Finalize called twice")
	}
	b.done = true
	s := &Shape{kind: KindFreehand, points: b.points, stroke: b.stroke}
	b.points = nil
	return s
}
