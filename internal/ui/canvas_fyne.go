//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package ui

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"graphio/internal/editor"
	"graphio/internal/export"
	"graphio/internal/vector"
)

// DrawingCanvas shows the committed shapes plus the live preview and feeds
// primary-button pointer events to the editor. Canvas units are Fyne units.
type DrawingCanvas struct {
	widget.BaseWidget

	ed      *editor.Editor
	pressed bool
	last    vector.Pt

	// OnError receives commit failures reported on release.
	OnError func(error)
}

var (
	_ fyne.Draggable     = (*DrawingCanvas)(nil)
	_ desktop.Mouseable  = (*DrawingCanvas)(nil)
	_ desktop.Hoverable  = (*DrawingCanvas)(nil)
	_ desktop.Cursorable = (*DrawingCanvas)(nil)
)

func NewDrawingCanvas(ed *editor.Editor) *DrawingCanvas {
	c := &DrawingCanvas{ed: ed}
	c.ExtendBaseWidget(c)
	return c
}

func (c *DrawingCanvas) CreateRenderer() fyne.WidgetRenderer {
	r := canvas.NewRaster(c.paint)
	return &drawingRenderer{c: c, raster: r, objects: []fyne.CanvasObject{r}}
}

// paint rasterizes the current frame at the output pixel density.
func (c *DrawingCanvas) paint(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, max(w, 1), max(h, 1)))
	size := c.Size()
	if w <= 0 || h <= 0 || size.Width <= 0 {
		return img
	}
	scale := float64(w) / float64(size.Width)
	xf := func(p vector.Pt) (float64, float64) { return float64(p.X) * scale, float64(p.Y) * scale }
	r := export.NewRasterizer(img)
	for _, s := range c.ed.Frame() {
		r.Stroke(s, xf, scale)
	}
	return img
}

func toPt(p fyne.Position) vector.Pt { return vector.Pt{X: p.X, Y: p.Y} }

// Pointer events: MouseDown opens the gesture. Being Draggable makes the
// driver route Dragged, DragEnd and MouseUp back to this widget even when
// the pointer is released over another one. A plain hover with the primary
// button up while a gesture is open means the release went elsewhere, so
// the gesture ends at the last known point.
func (c *DrawingCanvas) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	c.pressed = true
	c.last = toPt(e.Position)
	c.ed.PointerPress(c.last)
}

func (c *DrawingCanvas) MouseUp(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	c.release(toPt(e.Position))
}

func (c *DrawingCanvas) Dragged(e *fyne.DragEvent) {
	c.move(toPt(e.Position))
}

func (c *DrawingCanvas) DragEnd() {
	c.release(c.last)
}

func (c *DrawingCanvas) MouseIn(*desktop.MouseEvent) {}

func (c *DrawingCanvas) MouseMoved(e *desktop.MouseEvent) {
	if !c.pressed {
		return
	}
	if e.Button&desktop.MouseButtonPrimary == 0 {
		c.release(c.last)
		return
	}
	c.move(toPt(e.Position))
}

func (c *DrawingCanvas) MouseOut() {}

func (c *DrawingCanvas) move(p vector.Pt) {
	if !c.pressed {
		return
	}
	c.last = p
	c.ed.PointerMove(p)
}

func (c *DrawingCanvas) release(p vector.Pt) {
	if !c.pressed {
		return
	}
	c.pressed = false
	if err := c.ed.PointerRelease(p); err != nil && c.OnError != nil {
		c.OnError(err)
	}
}

func (c *DrawingCanvas) Cursor() desktop.Cursor { return desktop.CrosshairCursor }

type drawingRenderer struct {
	c       *DrawingCanvas
	raster  *canvas.Raster
	objects []fyne.CanvasObject
}

func (r *drawingRenderer) Destroy()                     {}
func (r *drawingRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *drawingRenderer) MinSize() fyne.Size           { return fyne.NewSize(320, 240) }
func (r *drawingRenderer) Refresh()                     { canvas.Refresh(r.raster) }

func (r *drawingRenderer) Layout(size fyne.Size) {
	r.raster.Move(fyne.NewPos(0, 0))
	r.raster.Resize(size)
}

func toColor(c vector.Color) color.NRGBA { return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A} }

func fromColor(c color.Color) vector.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return vector.Color{R: n.R, G: n.G, B: n.B, A: n.A}
}
