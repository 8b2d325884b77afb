/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package undo implements a linear command history with undo/redo.
package undo

import (
	"errors"
	"fmt"
)

var (
	// ErrNothingToUndo is returned by Undo when no applied command remains.
	ErrNothingToUndo = errors.New("nothing to undo")
	// ErrNothingToRedo is returned by Redo when no undone command remains.
	ErrNothingToRedo = errors.New("nothing to redo")
)

// Command is one reversible mutation. Redo applies it (including the first
// time it is executed), Undo reverts it.
type Command interface {
	Name() string
	Redo() error
	Undo() error
}

// Config controls depth caps and change notification.
type Config struct {
	// MaxDepth limits the number of applied commands kept (0 means unlimited).
	// The oldest entries are dropped and can no longer be undone.
	MaxDepth int
	// OnChange is called after every successful Execute, Undo or Redo.
	OnChange func()
}

// History is a classic linear undo stack: cmds[:cursor] are applied,
// cmds[cursor:] are undone and available for redo.
// It is not safe for concurrent use.
type History struct {
	cfg    Config
	cmds   []Command
	cursor int
}

func New(cfg Config) *History {
	if cfg.MaxDepth < 0 {
		cfg.MaxDepth = 0
	}
	return &History{cfg: cfg}
}

// Execute applies cmd and records it at the cursor, discarding any undone suffix.
// If cmd fails to apply, the history is left untouched.
func (h *History) Execute(cmd Command) error {
	if err := cmd.Redo(); err != nil {
		return fmt.Errorf("execute %s: %w", cmd.Name(), err)
	}
	// Any new change invalidates redo
	clear(h.cmds[h.cursor:])
	h.cmds = append(h.cmds[:h.cursor], cmd)
	h.cursor++
	h.enforceCaps()
	h.changed()
	return nil
}

// Undo reverts the command before the cursor.
func (h *History) Undo() error {
	if h.cursor == 0 {
		return ErrNothingToUndo
	}
	cmd := h.cmds[h.cursor-1]
	if err := cmd.Undo(); err != nil {
		return fmt.Errorf("undo %s: %w", cmd.Name(), err)
	}
	h.cursor--
	h.changed()
	return nil
}

// Redo re-applies the command at the cursor.
func (h *History) Redo() error {
	if h.cursor == len(h.cmds) {
		return ErrNothingToRedo
	}
	cmd := h.cmds[h.cursor]
	if err := cmd.Redo(); err != nil {
		return fmt.Errorf("redo %s: %w", cmd.Name(), err)
	}
	h.cursor++
	h.changed()
	return nil
}

func (h *History) CanUndo() bool { return h.cursor > 0 }
func (h *History) CanRedo() bool { return h.cursor < len(h.cmds) }

// Len returns the number of recorded commands, applied and undone.
func (h *History) Len() int { return len(h.cmds) }

// Cursor returns the number of applied commands.
func (h *History) Cursor() int { return h.cursor }

// UndoName names the command Undo would revert, or "" if none.
func (h *History) UndoName() string {
	if h.cursor == 0 {
		return ""
	}
	return h.cmds[h.cursor-1].Name()
}

// RedoName names the command Redo would re-apply, or "" if none.
func (h *History) RedoName() string {
	if h.cursor == len(h.cmds) {
		return ""
	}
	return h.cmds[h.cursor].Name()
}

func (h *History) enforceCaps() {
	if h.cfg.MaxDepth <= 0 || h.cursor <= h.cfg.MaxDepth {
		return
	}
	// drop the oldest extras; Execute has already truncated the redo suffix
	toDrop := h.cursor - h.cfg.MaxDepth
	h.cmds = append([]Command{}, h.cmds[toDrop:]...)
	h.cursor -= toDrop
}

func (h *History) changed() {
	if h.cfg.OnChange != nil {
		h.cfg.OnChange()
	}
}
