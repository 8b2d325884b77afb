/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"graphio/internal/config"
	"graphio/internal/crash"
	"graphio/internal/export"
	"graphio/internal/gesture"
	applog "graphio/internal/log"
	"graphio/internal/ui"
	"graphio/internal/version"

	"gopkg.in/yaml.v3"
)

func usage(w io.Writer) {
	_, _ = fmt.Fprintf(w, "%s %s\n\n", version.Name, version.String())
	_, _ = fmt.Fprintln(w, "Usage:")
	_, _ = fmt.Fprintln(w, "  graphio [ui]                                  Launch the drawing window (build with -tags fyne)")
	_, _ = fmt.Fprintln(w, "  graphio version|-v|--version                  Show version")
	_, _ = fmt.Fprintln(w, "  graphio render [flags] <script.yaml> <out>    Replay a gesture script and export the drawing")
	_, _ = fmt.Fprintln(w, "        <out> ending in .png, .svg or .pdf picks the format; with -preset it is a directory")
	_, _ = fmt.Fprintln(w, "  graphio schema                                Print the gesture script JSON schema")
	_, _ = fmt.Fprintln(w, "  graphio config                                Print the effective configuration")
}

func main() {
	cfg, cfgErr := config.Load()
	applog.Init(applog.Options{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		AddSource: cfg.Logging.Source,
		File:      cfg.Logging.File,
	})
	l := applog.WithComponent("cli")
	if cfgErr != nil {
		l.Warn("config load failed, using defaults", slog.Any("err", cfgErr))
	}
	defer crash.Recover(nil)

	os.Exit(run(os.Args[1:], cfg, os.Stdout, os.Stderr))
}

func run(args []string, cfg config.AppConfig, stdout, stderr io.Writer) int {
	l := applog.WithComponent("cli")
	cmd := "ui"
	if len(args) > 0 {
		cmd, args = args[0], args[1:]
	}
	l.Debug("start", slog.String("cmd", cmd), slog.Int("args", len(args)))

	switch cmd {
	case "version", "--version", "-v":
		_, _ = fmt.Fprintln(stdout, version.Name)
		_, _ = fmt.Fprintln(stdout, version.String())
		return 0
	case "ui":
		if err := ui.Run(ui.Options{Config: cfg}); err != nil {
			_, _ = fmt.Fprintln(stderr, "Error:", err)
			return 1
		}
		return 0
	case "render":
		return render(args, cfg, stdout, stderr)
	case "schema":
		_, _ = stdout.Write(gesture.Schema())
		return 0
	case "config":
		path, _ := config.ConfigPath()
		_, _ = fmt.Fprintf(stdout, "# %s\n", path)
		if err := writeYAML(stdout, cfg); err != nil {
			_, _ = fmt.Fprintln(stderr, "Error:", err)
			return 1
		}
		return 0
	case "help", "-h", "--help":
		usage(stdout)
		return 0
	}
	_, _ = fmt.Fprintln(stderr, "unknown command:", cmd)
	usage(stderr)
	return 2
}

func render(args []string, cfg config.AppConfig, stdout, stderr io.Writer) int {
	l := applog.WithComponent("cli")
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.SetOutput(stderr)
	preset := fs.String("preset", "", "write several formats into <out> as a directory: web or print")
	scale := fs.Float64("scale", 0, "PNG pixels per canvas unit (0 keeps the configured scale)")
	margin := fs.Float64("margin", -1, "space around the drawing (negative keeps the configured margin)")
	background := fs.String("background", "", "background color as #rrggbb[aa]; \"none\" for transparent")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 2 {
		_, _ = fmt.Fprintln(stderr, "render requires <script.yaml> and <out>")
		usage(stderr)
		return 2
	}
	scriptPath, out := fs.Arg(0), fs.Arg(1)

	switch bg := strings.TrimSpace(*background); bg {
	case "":
	case "none":
		cfg.Export.Background = ""
	default:
		cfg.Export.Background = bg
	}
	if *scale > 0 {
		cfg.Export.Scale = *scale
	}
	if *margin >= 0 {
		cfg.Export.Margin = *margin
	}

	script, err := gesture.Load(scriptPath)
	if err != nil {
		l.Error("load script failed", slog.String("path", scriptPath), slog.Any("err", err))
		_, _ = fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	sess := ui.NewSession(cfg, nil)
	defer crash.Recover(sess.Editor.CurrentShapes)

	res, err := gesture.Replay(sess.Editor, script)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	if res.Open {
		l.Warn("script ends inside a gesture; the unfinished shape is not exported")
	}

	if *preset != "" {
		p, err := export.ParsePreset(*preset)
		if err != nil {
			_, _ = fmt.Fprintln(stderr, "Error:", err)
			return 2
		}
		o := sess.Export
		if *scale <= 0 {
			o.Scale = 0 // preset default
		}
		name := strings.TrimSuffix(filepath.Base(scriptPath), filepath.Ext(scriptPath))
		paths, err := export.BatchExport(sess.Editor.CurrentShapes(), export.BatchOptions{
			Preset:  p,
			OutDir:  out,
			Name:    name,
			Options: o,
		})
		for _, path := range paths {
			_, _ = fmt.Fprintln(stdout, "Wrote", path)
		}
		if err != nil {
			_, _ = fmt.Fprintln(stderr, "Error:", err)
			return 1
		}
		return 0
	}

	if err := sess.ExportTo(out); err != nil {
		_, _ = fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	_, _ = fmt.Fprintf(stdout, "Wrote %s (%d shapes)\n", out, sess.Editor.ShapeCount())
	return 0
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
