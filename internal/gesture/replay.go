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
	"fmt"
	"log/slog"

	"graphio/internal/editor"
	applog "graphio/internal/log"
	"graphio/internal/undo"
	"graphio/internal/vector"
)

// Result summarizes a replay.
type Result struct {
	Steps   int  // steps executed
	Commits int  // shapes committed by releases
	Undos   int  // successful undo steps
	Redos   int  // successful redo steps
	Skipped int  // undo/redo requests with nothing to act on
	Open    bool // the script ended in the middle of a gesture
}

// Replay drives e through every step of s. Running out of history on undo
// or redo is counted in Result.Skipped; any other editor error stops the
// replay and is returned with the step position.
func Replay(e *editor.Editor, s *Script) (Result, error) {
	l := applog.WithComponent("gesture")
	var res Result
	if s == nil {
		return res, fmt.Errorf("%w: nil script", ErrInvalidScript)
	}
	if err := applySettings(e, s.Settings); err != nil {
		return res, err
	}
	for i, step := range s.Steps {
		if err := apply(e, step, &res); err != nil {
			pos := Error{Step: i + 1, Line: step.Line, Message: step.Op().String()}
			l.Error("replay stopped", slog.String("at", pos.Error()), slog.Any("err", err))
			return res, fmt.Errorf("%s: %w", pos, err)
		}
		res.Steps++
	}
	res.Open = e.State() != editor.Idle
	l.Info("script replayed",
		slog.String("name", s.Name),
		slog.Int("steps", res.Steps),
		slog.Int("commits", res.Commits),
		slog.Int("shapes", e.ShapeCount()),
		slog.Bool("open", res.Open),
	)
	return res, nil
}

func applySettings(e *editor.Editor, st *Settings) error {
	if st == nil {
		return nil
	}
	if st.Tool != "" {
		t, err := editor.ParseTool(st.Tool)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidScript, err)
		}
		e.SetToolMode(t)
	}
	if st.Color != "" {
		c, err := vector.ParseHex(st.Color)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidScript, err)
		}
		e.SetStrokeColor(c)
	}
	if st.Width != 0 {
		e.SetStrokeWidth(st.Width)
	}
	return nil
}

func apply(e *editor.Editor, step Step, res *Result) error {
	switch step.Op() {
	case OpTool:
		t, err := editor.ParseTool(step.Tool)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidScript, err)
		}
		e.SetToolMode(t)
	case OpColor:
		c, err := vector.ParseHex(step.Color)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidScript, err)
		}
		e.SetStrokeColor(c)
	case OpWidth:
		e.SetStrokeWidth(*step.Width)
	case OpPress:
		e.PointerPress(step.Press.Pt())
	case OpMove:
		e.PointerMove(step.Move.Pt())
	case OpRelease:
		return release(e, step.Release.Pt(), res)
	case OpStroke:
		pts := step.Stroke
		e.PointerPress(pts[0].Pt())
		for _, p := range pts[1:] {
			e.PointerMove(p.Pt())
		}
		return release(e, pts[len(pts)-1].Pt(), res)
	case OpUndo:
		return repeat(step.Undo, e.Undo, undo.ErrNothingToUndo, &res.Undos, res)
	case OpRedo:
		return repeat(step.Redo, e.Redo, undo.ErrNothingToRedo, &res.Redos, res)
	default:
		return fmt.Errorf("%w: step has no action", ErrInvalidScript)
	}
	return nil
}

func release(e *editor.Editor, p vector.Pt, res *Result) error {
	drawing := e.State() != editor.Idle
	if err := e.PointerRelease(p); err != nil {
		return err
	}
	if drawing {
		res.Commits++
	}
	return nil
}

func repeat(n int, fn func() error, nothing error, done *int, res *Result) error {
	for range n {
		err := fn()
		switch {
		case err == nil:
			*done++
		case errors.Is(err, nothing):
			res.Skipped++
		default:
			return err
		}
	}
	return nil
}
