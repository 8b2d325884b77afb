/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package document holds the drawing: an ordered list of committed shapes
// where insertion order is z-order (later shapes are painted on top).
package document

import (
	"errors"
	"fmt"

	"graphio/internal/vector"
)

// ErrOutOfRange reports an index outside the document. A correct history never
// produces it; seeing it means a document/history invariant was broken.
var ErrOutOfRange = errors.New("document index out of range")

// Document is not safe for concurrent use; all mutation happens on the UI thread.
type Document struct {
	shapes []*vector.Shape
}

func New() *Document { return &Document{} }

// Append adds s on top of the drawing and returns its position.
func (d *Document) Append(s *vector.Shape) int {
	if s == nil {
		panic("document: Append(nil)")
	}
	d.shapes = append(d.shapes, s)
	return len(d.shapes) - 1
}

// RemoveAt removes and returns the shape at index i.
func (d *Document) RemoveAt(i int) (*vector.Shape, error) {
	if i < 0 || i >= len(d.shapes) {
		return nil, fmt.Errorf("remove %d of %d: %w", i, len(d.shapes), ErrOutOfRange)
	}
	s := d.shapes[i]
	copy(d.shapes[i:], d.shapes[i+1:])
	d.shapes[len(d.shapes)-1] = nil
	d.shapes = d.shapes[:len(d.shapes)-1]
	return s, nil
}

// At returns the shape at index i.
func (d *Document) At(i int) (*vector.Shape, error) {
	if i < 0 || i >= len(d.shapes) {
		return nil, fmt.Errorf("shape %d of %d: %w", i, len(d.shapes), ErrOutOfRange)
	}
	return d.shapes[i], nil
}

func (d *Document) Len() int { return len(d.shapes) }

// Snapshot returns the shapes in paint order. The slice is freshly allocated;
// shapes themselves are immutable and shared.
func (d *Document) Snapshot() []*vector.Shape {
	return append([]*vector.Shape(nil), d.shapes...)
}

// Bounds returns the union of the painted extents of all shapes and false
// when the document is empty.
func (d *Document) Bounds() (vector.Rect, bool) {
	return Bounds(d.shapes)
}

// Bounds returns the union of the painted extents of shapes.
func Bounds(shapes []*vector.Shape) (vector.Rect, bool) {
	if len(shapes) == 0 {
		return vector.Rect{}, false
	}
	r := shapes[0].Bounds()
	for _, s := range shapes[1:] {
		r = r.Union(s.Bounds())
	}
	return r, true
}
