/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package document

import (
	"fmt"

	"graphio/internal/undo"
	"graphio/internal/vector"
)

var _ undo.Command = (*AddShape)(nil)

// AddShape is the reversible command that puts a committed shape into a document.
type AddShape struct {
	doc   *Document
	shape *vector.Shape
	index int
}

func NewAddShape(doc *Document, s *vector.Shape) *AddShape {
	return &AddShape{doc: doc, shape: s, index: -1}
}

// Shape returns the shape this command adds.
func (c *AddShape) Shape() *vector.Shape { return c.shape }

func (c *AddShape) Name() string {
	switch c.shape.Kind() {
	case vector.KindFreehand:
		return "Brush Stroke"
	case vector.KindRectangle:
		return "Add Rectangle"
	case vector.KindEllipse:
		return "Add Ellipse"
	}
	return "Add Item"
}

// Redo appends the shape. In a linear history everything above it has been
// undone, so it lands on the same position it had before.
func (c *AddShape) Redo() error {
	if c.index >= 0 {
		return fmt.Errorf("add shape already applied at %d: %w", c.index, ErrOutOfRange)
	}
	c.index = c.doc.Append(c.shape)
	return nil
}

// Undo removes the shape from the position recorded by Redo.
func (c *AddShape) Undo() error {
	cur, err := c.doc.At(c.index)
	if err != nil {
		return err
	}
	if cur != c.shape {
		return fmt.Errorf("shape at %d is not the one added: %w", c.index, ErrOutOfRange)
	}
	if _, err := c.doc.RemoveAt(c.index); err != nil {
		return err
	}
	c.index = -1
	return nil
}
