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

// These tests exercise the drawing canvas without opening a window. They are
// gated behind the "fyne" build tag so headless CI does not need Fyne.
// To run locally:
//
//	go test -tags fyne ./internal/ui
package ui

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"

	"graphio/internal/config"
	"graphio/internal/editor"
	"graphio/internal/vector"
)

func mouse(x, y float32, b desktop.MouseButton) *desktop.MouseEvent {
	return &desktop.MouseEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)}, Button: b}
}

func TestDrawingCanvasForwardsGesture(t *testing.T) {
	s := NewSession(config.Defaults(), nil)
	dc := NewDrawingCanvas(s.Editor)

	dc.MouseMoved(mouse(1, 1, 0)) // hover without press
	dc.MouseDown(mouse(0, 0, desktop.MouseButtonPrimary))
	dc.MouseMoved(mouse(5, 0, desktop.MouseButtonPrimary))
	dc.MouseMoved(mouse(5, 5, desktop.MouseButtonPrimary))
	dc.MouseUp(mouse(5, 5, desktop.MouseButtonPrimary))

	shapes := s.Editor.CurrentShapes()
	if len(shapes) != 1 || shapes[0].PointCount() != 3 {
		t.Fatalf("shapes = %v", shapes)
	}
}

func drag(x, y float32) *fyne.DragEvent {
	return &fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)}}
}

func TestDrawingCanvasDragGesture(t *testing.T) {
	s := NewSession(config.Defaults(), nil)
	dc := NewDrawingCanvas(s.Editor)

	dc.MouseDown(mouse(0, 0, desktop.MouseButtonPrimary))
	dc.Dragged(drag(5, 0))
	dc.Dragged(drag(5, 5))
	// the driver may deliver both for one release
	dc.DragEnd()
	dc.MouseUp(mouse(5, 5, desktop.MouseButtonPrimary))

	shapes := s.Editor.CurrentShapes()
	if len(shapes) != 1 || shapes[0].PointCount() != 3 {
		t.Fatalf("shapes = %v", shapes)
	}
	if s.Editor.State() != editor.Idle {
		t.Fatalf("state = %v, want Idle", s.Editor.State())
	}
}

func TestDrawingCanvasMissedReleaseEndsGesture(t *testing.T) {
	s := NewSession(config.Defaults(), nil)
	dc := NewDrawingCanvas(s.Editor)

	dc.MouseDown(mouse(0, 0, desktop.MouseButtonPrimary))
	dc.MouseMoved(mouse(4, 0, desktop.MouseButtonPrimary))
	dc.MouseOut()
	// released over another widget; the pointer comes back with no button held
	dc.MouseIn(mouse(9, 9, 0))
	dc.MouseMoved(mouse(9, 9, 0))
	dc.MouseMoved(mouse(12, 9, 0))

	if s.Editor.State() != editor.Idle {
		t.Fatalf("state = %v, want Idle", s.Editor.State())
	}
	shapes := s.Editor.CurrentShapes()
	if len(shapes) != 1 {
		t.Fatalf("got %d shapes, want 1", len(shapes))
	}
	want := []vector.Pt{{X: 0, Y: 0}, {X: 4, Y: 0}}
	got := shapes[0].Points()
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Fatalf("points = %v, want %v", got, want)
	}

	// the next gesture starts fresh
	dc.MouseDown(mouse(20, 20, desktop.MouseButtonPrimary))
	dc.MouseUp(mouse(20, 20, desktop.MouseButtonPrimary))
	if n := s.Editor.ShapeCount(); n != 2 {
		t.Fatalf("shape count = %d, want 2", n)
	}
	if got := s.Editor.CurrentShapes()[1].PointCount(); got != 1 {
		t.Fatalf("second stroke has %d points, want 1", got)
	}
}

func TestDrawingCanvasIgnoresSecondaryButton(t *testing.T) {
	s := NewSession(config.Defaults(), nil)
	dc := NewDrawingCanvas(s.Editor)
	dc.MouseDown(mouse(0, 0, desktop.MouseButtonSecondary))
	dc.MouseUp(mouse(3, 3, desktop.MouseButtonSecondary))
	if s.Editor.State() != editor.Idle || s.Editor.ShapeCount() != 0 {
		t.Fatalf("secondary button must not draw")
	}
}

func TestDrawingCanvasPaint(t *testing.T) {
	s := NewSession(config.Defaults(), nil)
	s.Editor.SetToolMode(editor.ToolRectangle)
	s.Editor.SetStrokeWidth(4)
	s.Editor.PointerPress(vector.Pt{X: 10, Y: 10})
	if err := s.Editor.PointerRelease(vector.Pt{X: 50, Y: 30}); err != nil {
		t.Fatal(err)
	}
	a := test.NewApp()
	defer a.Quit()
	dc := NewDrawingCanvas(s.Editor)
	dc.Resize(fyne.NewSize(100, 50))

	// 2x pixel density
	img := dc.paint(200, 100)
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 100 {
		t.Fatalf("bounds = %v", b)
	}
	if _, _, _, a := img.At(60, 20).RGBA(); a == 0 {
		t.Errorf("top edge not painted at 2x")
	}
	if _, _, _, a := img.At(60, 40).RGBA(); a != 0 {
		t.Errorf("rectangle interior painted")
	}
}

func TestDrawingCanvasReportsCommitErrors(t *testing.T) {
	var got error
	dc := NewDrawingCanvas(NewSession(config.Defaults(), nil).Editor)
	dc.OnError = func(err error) { got = err }
	dc.MouseUp(mouse(1, 1, desktop.MouseButtonPrimary))
	if got != nil {
		t.Fatalf("release without press must not report: %v", got)
	}
}

func TestColorConversionRoundTrip(t *testing.T) {
	c := vector.Color{R: 10, G: 20, B: 30, A: 200}
	if got := fromColor(toColor(c)); got != c {
		t.Fatalf("round trip = %+v", got)
	}
}
