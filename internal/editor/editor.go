/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package editor turns pointer gestures into committed shapes.
//
// An Editor owns the drawing document and its undo history and runs a small
// state machine over press/move/release events:
//
//	Idle --press--> DrawingBrush        (tool = brush; path starts at the press point)
//	Idle --press--> DrawingShape        (tool = rectangle/ellipse; start point recorded)
//	DrawingBrush --move--> DrawingBrush (point appended to the preview path)
//	DrawingShape --move--> DrawingShape (preview end point follows the pointer)
//	Drawing* --release--> Idle          (one AddShape command executed)
//
// Only the release commits; previews never touch the document or the history.
// All methods must be called from one goroutine.
package editor

import (
	"errors"
	"log/slog"

	"graphio/internal/document"
	applog "graphio/internal/log"
	"graphio/internal/undo"
	"graphio/internal/vector"
)

// State is the gesture state of the editor.
type State uint8

const (
	Idle State = iota
	DrawingBrush
	DrawingShape
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case DrawingBrush:
		return "drawing-brush"
	case DrawingShape:
		return "drawing-shape"
	}
	return "unknown"
}

// Options configures a new Editor.
type Options struct {
	// Settings is shared with the host; nil means a fresh DefaultSettings.
	Settings *Settings
	History  undo.Config
	// OnChange is called whenever the document or the live preview changes.
	OnChange func()
}

type Editor struct {
	settings *Settings
	doc      *document.Document
	history  *undo.History
	log      *slog.Logger
	onChange func()

	state State
	// gesture in progress
	brush    *vector.Builder
	boxKind  vector.Kind
	boxStyle vector.Stroke
	start    vector.Pt
	current  vector.Pt
}

func New(opts Options) *Editor {
	s := opts.Settings
	if s == nil {
		d := DefaultSettings()
		s = &d
	}
	return &Editor{
		settings: s,
		doc:      document.New(),
		history:  undo.New(opts.History),
		log:      applog.WithComponent("editor"),
		onChange: opts.OnChange,
	}
}

// Settings returns the shared settings the editor reads at gesture start.
func (e *Editor) Settings() *Settings { return e.settings }

func (e *Editor) SetToolMode(t Tool) {
	e.settings.Tool = t
	e.log.Debug("tool selected", slog.String("tool", t.String()))
}

func (e *Editor) SetStrokeColor(c vector.Color) { e.settings.Color = c }

// SetStrokeWidth clamps w into [MinStrokeWidth, MaxStrokeWidth].
func (e *Editor) SetStrokeWidth(w int) { e.settings.Width = ClampWidth(w) }

func (e *Editor) State() State { return e.state }

// PointerPress starts a gesture with the current tool and style. A press
// while a gesture is already running is ignored.
func (e *Editor) PointerPress(p vector.Pt) {
	if e.state != Idle {
		e.log.Debug("press ignored during gesture", slog.String("state", e.state.String()))
		return
	}
	style := e.settings.stroke()
	e.start, e.current = p, p
	switch e.settings.Tool {
	case ToolRectangle, ToolEllipse:
		e.boxKind = vector.KindRectangle
		if e.settings.Tool == ToolEllipse {
			e.boxKind = vector.KindEllipse
		}
		e.boxStyle = style
		e.state = DrawingShape
	default:
		e.brush = vector.NewBrush(p, style)
		e.state = DrawingBrush
	}
	e.changed()
}

// PointerMove updates the live preview. Moves while idle are ignored.
func (e *Editor) PointerMove(p vector.Pt) {
	switch e.state {
	case DrawingBrush:
		e.brush.Extend(p)
	case DrawingShape:
		e.current = p
	default:
		return
	}
	e.changed()
}

// PointerRelease ends the gesture and commits exactly one shape, even when
// the pointer never moved. Releases while idle are ignored.
func (e *Editor) PointerRelease(p vector.Pt) error {
	var s *vector.Shape
	switch e.state {
	case DrawingBrush:
		// the release point repeats the last move; the path ends there
		s = e.brush.Finalize()
	case DrawingShape:
		s = vector.NewBox(e.boxKind, e.start, p, e.boxStyle)
	default:
		return nil
	}
	e.resetGesture()
	return e.commit(s)
}

func (e *Editor) resetGesture() {
	e.state = Idle
	e.brush = nil
}

func (e *Editor) commit(s *vector.Shape) error {
	cmd := document.NewAddShape(e.doc, s)
	if err := e.history.Execute(cmd); err != nil {
		e.log.Error("commit failed", slog.String("shape", s.Kind().String()), slog.Any("err", err))
		e.changed()
		return err
	}
	e.log.Debug("shape committed",
		slog.String("shape", s.Kind().String()),
		slog.Int("points", s.PointCount()),
		slog.Int("shapes", e.doc.Len()),
	)
	e.changed()
	return nil
}

// Undo reverts the last committed shape. undo.ErrNothingToUndo is returned
// (and not logged as a failure) when the history is empty.
func (e *Editor) Undo() error {
	return e.step("undo", e.history.Undo, undo.ErrNothingToUndo)
}

// Redo re-applies the last undone shape, or returns undo.ErrNothingToRedo.
func (e *Editor) Redo() error {
	return e.step("redo", e.history.Redo, undo.ErrNothingToRedo)
}

func (e *Editor) step(op string, fn func() error, nothing error) error {
	l := applog.WithOperation(e.log, op)
	if err := fn(); err != nil {
		if errors.Is(err, nothing) {
			l.Debug(err.Error())
			return err
		}
		l.Error("history step failed", slog.Any("err", err))
		return err
	}
	l.Debug("history step", slog.Int("shapes", e.doc.Len()), slog.Int("cursor", e.history.Cursor()))
	e.changed()
	return nil
}

func (e *Editor) CanUndo() bool    { return e.history.CanUndo() }
func (e *Editor) CanRedo() bool    { return e.history.CanRedo() }
func (e *Editor) UndoName() string { return e.history.UndoName() }
func (e *Editor) RedoName() string { return e.history.RedoName() }
func (e *Editor) ShapeCount() int  { return e.doc.Len() }
func (e *Editor) HistoryLen() int  { return e.history.Len() }

// CurrentShapes returns the committed shapes in paint order.
func (e *Editor) CurrentShapes() []*vector.Shape { return e.doc.Snapshot() }

// Preview returns the shape being drawn, or nil when idle.
func (e *Editor) Preview() *vector.Shape {
	switch e.state {
	case DrawingBrush:
		return e.brush.Preview()
	case DrawingShape:
		return vector.NewBox(e.boxKind, e.start, e.current, e.boxStyle)
	}
	return nil
}

// Frame returns the committed shapes followed by the preview, if any.
// Renderers draw it as a whole.
func (e *Editor) Frame() []*vector.Shape {
	shapes := e.doc.Snapshot()
	if p := e.Preview(); p != nil {
		shapes = append(shapes, p)
	}
	return shapes
}

func (e *Editor) changed() {
	if e.onChange != nil {
		e.onChange()
	}
}
