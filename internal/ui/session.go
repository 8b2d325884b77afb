/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package ui

import (
	"fmt"
	"log/slog"
	"strings"

	"graphio/internal/config"
	"graphio/internal/editor"
	"graphio/internal/export"
	applog "graphio/internal/log"
	"graphio/internal/undo"
)

// Options configures Run.
type Options struct {
	Config config.AppConfig
}

// Session is one drawing: the editor, the settings it shares with the
// toolbar and dock, and the export options, all derived from the user config.
// It holds no Fyne state so the window and the CLI build on the same wiring.
type Session struct {
	Settings *editor.Settings
	Editor   *editor.Editor
	Export   export.Options

	cfg   config.AppConfig
	start editor.Settings // settings at startup, to tell user changes apart
	theme string
	log   *slog.Logger
}

// NewSession creates an empty drawing. Invalid tool names in cfg fall back
// to the brush; onChange may be nil.
func NewSession(cfg config.AppConfig, onChange func()) *Session {
	l := applog.WithComponent("session")
	st := editor.DefaultSettings()
	if t, err := editor.ParseTool(cfg.Drawing.Tool); err == nil {
		st.Tool = t
	} else if cfg.Drawing.Tool != "" {
		l.Warn("unknown tool in config", slog.String("tool", cfg.Drawing.Tool))
	}
	st.Color = cfg.Drawing.StrokeColor()
	st.Width = editor.ClampWidth(cfg.Drawing.Width)

	s := &Session{
		Settings: &st,
		Export:   export.FromConfig(cfg.Export),
		cfg:      cfg,
		start:    st,
		theme:    cfg.General.Theme,
		log:      l,
	}
	s.Editor = editor.New(editor.Options{
		Settings: s.Settings,
		History:  undo.Config{MaxDepth: cfg.History.MaxDepth},
		OnChange: onChange,
	})
	return s
}

// SavePrefs writes the tool, color, width and theme choices made during
// this session over the user config file. Everything else, including
// values that only came from the environment, is taken from the file.
func (s *Session) SavePrefs() error {
	base, err := config.LoadFile()
	if err != nil {
		s.log.Warn("config file unreadable, saving over defaults", slog.Any("err", err))
	}
	st := s.Settings
	if st.Tool != s.start.Tool {
		base.Drawing.Tool = st.Tool.String()
	}
	if st.Color != s.start.Color {
		base.Drawing.Color = st.Color.Hex()
	}
	if st.Width != s.start.Width {
		base.Drawing.Width = st.Width
	}
	if s.cfg.General.Theme != s.theme {
		base.General.Theme = s.cfg.General.Theme
	}
	if err := config.Save(base); err != nil {
		s.log.Error("save config failed", slog.Any("err", err))
		return err
	}
	return nil
}

// DarkTheme reports whether the dark variant is configured.
func (s *Session) DarkTheme() bool { return !strings.EqualFold(s.cfg.General.Theme, "light") }

// SetDarkTheme records the theme choice for SavePrefs.
func (s *Session) SetDarkTheme(dark bool) {
	s.cfg.General.Theme = "light"
	if dark {
		s.cfg.General.Theme = "dark"
	}
}

// ExportTo writes the committed shapes to path in the format implied by its
// extension.
func (s *Session) ExportTo(path string) error {
	shapes := s.Editor.CurrentShapes()
	if err := export.Save(path, shapes, s.Export); err != nil {
		s.log.Error("export failed", slog.String("path", path), slog.Any("err", err))
		return err
	}
	s.log.Info("exported", slog.String("path", path), slog.Int("shapes", len(shapes)))
	return nil
}

// Status is the one-line summary shown under the canvas.
func (s *Session) Status() string {
	e := s.Editor
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s  width %d  |  %d shapes", titleCase(s.Settings.Tool.String()), s.Settings.Color.Hex(), s.Settings.Width, e.ShapeCount())
	if e.CanUndo() {
		fmt.Fprintf(&b, "  |  undo: %s", e.UndoName())
	}
	if e.CanRedo() {
		fmt.Fprintf(&b, "  |  redo: %s", e.RedoName())
	}
	return b.String()
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
