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
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/layout"
	fstorage "fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"graphio/internal/crash"
	"graphio/internal/editor"
	applog "graphio/internal/log"
	"graphio/internal/undo"
	"graphio/internal/version"
)

// Run opens the drawing window and blocks until it is closed.
func Run(opts Options) error {
	l := applog.WithComponent("ui")
	l.Info("starting UI", slog.String("version", version.String()))

	var (
		dc     *DrawingCanvas
		sess   *Session
		status = widget.NewLabel("Ready")
	)
	sess = NewSession(opts.Config, func() {
		if dc != nil {
			dc.Refresh()
		}
		status.SetText(sess.Status())
	})
	defer crash.Recover(sess.Editor.CurrentShapes)

	fyneApp := app.NewWithID("io.graphio.app")
	applyTheme(fyneApp, sess.DarkTheme())
	w := fyneApp.NewWindow(version.Name)
	// Restore window size from preferences (with sane minimums)
	prefs := fyneApp.Preferences()
	winW := max(prefs.IntWithFallback("window.width", 1024), 640)
	winH := max(prefs.IntWithFallback("window.height", 720), 480)
	w.Resize(fyne.NewSize(float32(winW), float32(winH)))

	dc = NewDrawingCanvas(sess.Editor)
	dc.OnError = func(err error) { dialog.ShowError(err, w) }
	refreshStatus := func() { status.SetText(sess.Status()) }

	// Toolbar: tool mode and theme
	toolNames := make([]string, len(editor.Tools))
	for i, t := range editor.Tools {
		toolNames[i] = titleCase(t.String())
	}
	toolRadio := widget.NewRadioGroup(toolNames, func(v string) {
		t, err := editor.ParseTool(v)
		if err != nil {
			return
		}
		sess.Editor.SetToolMode(t)
		refreshStatus()
	})
	toolRadio.Horizontal = true
	toolRadio.Required = true
	toolRadio.SetSelected(titleCase(sess.Settings.Tool.String()))
	darkCheck := widget.NewCheck("Dark theme", func(on bool) {
		sess.SetDarkTheme(on)
		applyTheme(fyneApp, on)
		l.Info("theme changed", slog.Bool("dark", on))
	})
	darkCheck.SetChecked(sess.DarkTheme())
	toolbar := container.NewHBox(widget.NewLabel("Tool:"), toolRadio, layout.NewSpacer(), darkCheck)

	// Dock: stroke width and color
	widthLabel := widget.NewLabel(fmt.Sprintf("Width: %d", sess.Settings.Width))
	slider := widget.NewSlider(editor.MinStrokeWidth, editor.MaxStrokeWidth)
	slider.Step = 1
	slider.SetValue(float64(sess.Settings.Width))
	slider.OnChanged = func(v float64) {
		sess.Editor.SetStrokeWidth(int(math.Round(v)))
		widthLabel.SetText(fmt.Sprintf("Width: %d", sess.Settings.Width))
		refreshStatus()
	}
	swatch := canvas.NewRectangle(toColor(sess.Settings.Color))
	swatch.SetMinSize(fyne.NewSize(64, 24))
	swatch.StrokeColor = color.NRGBA{R: 128, G: 128, B: 128, A: 255}
	swatch.StrokeWidth = 1
	colorBtn := widget.NewButton("Color…", func() {
		picker := dialog.NewColorPicker("Stroke Color", "Choose the color for new shapes", func(c color.Color) {
			vc := fromColor(c)
			sess.Editor.SetStrokeColor(vc)
			swatch.FillColor = toColor(vc)
			swatch.Refresh()
			refreshStatus()
		}, w)
		picker.Advanced = true
		picker.SetColor(toColor(sess.Settings.Color))
		picker.Show()
	})
	dock := container.NewVBox(
		widget.NewLabelWithStyle("Stroke", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widthLabel, slider,
		widget.NewSeparator(),
		swatch, colorBtn,
	)

	w.SetContent(container.NewBorder(toolbar, status, nil, container.NewPadded(dock), dc))

	// Menus
	exportItem := func(label, ext string) *fyne.MenuItem {
		return fyne.NewMenuItem(label, func() {
			l.Info("menu: export", slog.String("format", ext))
			showExportDialog(w, sess, ext, status)
		})
	}
	savePNGItem := exportItem("Save PNG…", ".png")
	savePNGItem.Shortcut = &desktop.CustomShortcut{KeyName: fyne.KeyS, Modifier: fyne.KeyModifierShortcutDefault}
	fileMenu := fyne.NewMenu("File", savePNGItem, exportItem("Export SVG…", ".svg"), exportItem("Export PDF…", ".pdf"))

	historyStep := func(op string, fn func() error, nothing error) {
		if err := fn(); err != nil {
			if errors.Is(err, nothing) {
				status.SetText(fmt.Sprintf("Nothing to %s", strings.ToLower(op)))
				return
			}
			dialog.ShowError(err, w)
		}
	}
	undoItem := fyne.NewMenuItem("Undo", func() { historyStep("Undo", sess.Editor.Undo, undo.ErrNothingToUndo) })
	redoItem := fyne.NewMenuItem("Redo", func() { historyStep("Redo", sess.Editor.Redo, undo.ErrNothingToRedo) })
	undoItem.Shortcut = &desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierShortcutDefault}
	redoItem.Shortcut = &desktop.CustomShortcut{KeyName: fyne.KeyY, Modifier: fyne.KeyModifierShortcutDefault}
	editMenu := fyne.NewMenu("Edit", undoItem, redoItem)

	aboutItem := fyne.NewMenuItem("About", func() {
		dialog.ShowInformation("About "+version.Name,
			fmt.Sprintf("%s %s\nA minimal drawing application.\nSession %s", version.Name, version.String(), applog.Session()), w)
	})
	helpMenu := fyne.NewMenu("Help", aboutItem)
	w.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, helpMenu))
	for _, item := range []*fyne.MenuItem{savePNGItem, undoItem, redoItem} {
		action := item.Action
		w.Canvas().AddShortcut(item.Shortcut, func(fyne.Shortcut) { action() })
	}

	w.SetOnClosed(func() {
		sz := w.Canvas().Size()
		prefs.SetInt("window.width", int(sz.Width))
		prefs.SetInt("window.height", int(sz.Height))
		_ = sess.SavePrefs() // logged by the session
		l.Info("window closed", slog.Int("shapes", sess.Editor.ShapeCount()))
	})

	refreshStatus()
	w.ShowAndRun()
	return nil
}

func showExportDialog(w fyne.Window, sess *Session, ext string, status *widget.Label) {
	if sess.Editor.ShapeCount() == 0 {
		dialog.ShowInformation("Export", "Nothing to export: the drawing is empty.", w)
		return
	}
	d := dialog.NewFileSave(func(uc fyne.URIWriteCloser, err error) {
		if err != nil {
			dialog.ShowError(err, w)
			return
		}
		if uc == nil {
			return
		}
		path := uc.URI().Path()
		_ = uc.Close()
		if !strings.EqualFold(filepath.Ext(path), ext) {
			path += ext
		}
		if err := sess.ExportTo(path); err != nil {
			dialog.ShowError(err, w)
			return
		}
		status.SetText("Saved " + filepath.Base(path))
	}, w)
	d.SetFileName("drawing" + ext)
	d.SetFilter(fstorage.NewExtensionFileFilter([]string{ext}))
	d.Show()
}

// variantTheme pins the default theme to one variant.
type variantTheme struct {
	fyne.Theme
	variant fyne.ThemeVariant
}

func (t variantTheme) Color(n fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	return t.Theme.Color(n, t.variant)
}

func applyTheme(a fyne.App, dark bool) {
	v := theme.VariantLight
	if dark {
		v = theme.VariantDark
	}
	a.Settings().SetTheme(variantTheme{Theme: theme.DefaultTheme(), variant: v})
}
