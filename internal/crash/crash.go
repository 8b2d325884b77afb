/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package crash turns an unrecovered panic into a report file plus an
// emergency SVG copy of the drawing, then exits with status 2.
package crash

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"time"

	"graphio/internal/export"
	applog "graphio/internal/log"
	"graphio/internal/vector"
	"graphio/internal/version"
)

// exitFn is used to allow testing of Recover without terminating the test process.
var exitFn = os.Exit

// reportDir is where reports and emergency drawings go.
var reportDir = os.TempDir

// Snapshot returns the shapes to rescue. It may be nil.
type Snapshot func() []*vector.Shape

// Recover captures a panic, logs it with a stack trace, writes a crash report
// and tries to save the drawing as SVG next to it.
//
// Usage: defer crash.Recover(ed.CurrentShapes)
func Recover(snapshot Snapshot) {
	r := recover()
	if r == nil {
		return
	}
	l := applog.WithComponent("crash")
	stack := debug.Stack()
	l.Error("panic recovered", slog.Any("panic", r), slog.String("stack", string(stack)))

	stamp := time.Now().Format("20060102-150405")
	reportPath, err := writeReport(stamp, r, stack)
	if err != nil {
		l.Error("write crash report failed", slog.Any("err", err), slog.String("path", reportPath))
	}
	if path, err := saveDrawing(stamp, snapshot); err != nil {
		l.Error("emergency save failed", slog.Any("err", err))
	} else if path != "" {
		l.Info("emergency drawing written", slog.String("path", path))
		if _, err := fmt.Fprintf(os.Stderr, "Your drawing was saved to: %s\n", path); err != nil {
			l.Error("failed to write crash message to stderr", slog.Any("err", err))
		}
	}

	if _, err := fmt.Fprintf(os.Stderr, "A fatal error occurred. A crash report was saved to: %s\n", reportPath); err != nil {
		l.Error("failed to write crash message to stderr", slog.Any("err", err))
	}
	if _, err := fmt.Fprintf(os.Stderr, "Version: %s\nOS/Arch: %s/%s\n", version.String(), runtime.GOOS, runtime.GOARCH); err != nil {
		l.Error("failed to write version info to stderr", slog.Any("err", err))
	}
	// Exit with a non-zero code to indicate failure in CLI context.
	exitFn(2)
}

func writeReport(stamp string, panicVal any, stack []byte) (string, error) {
	dir := reportDir()
	path := filepath.Join(dir, fmt.Sprintf("crash-%s.log", stamp))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return path, err
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return path, err
	}
	defer func() {
		if err := f.Close(); err != nil {
			applog.WithComponent("crash").Error("failed to close crash report file", slog.Any("err", err), slog.String("path", path))
		}
	}()

	var buf bytes.Buffer
	_, _ = fmt.Fprintf(&buf, "%s Crash Report\n", version.Name)
	_, _ = fmt.Fprintf(&buf, "Timestamp: %s\n", time.Now().Format(time.RFC3339))
	_, _ = fmt.Fprintf(&buf, "Version: %s\n", version.String())
	_, _ = fmt.Fprintf(&buf, "Session: %s\n", applog.Session())
	_, _ = fmt.Fprintf(&buf, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	_, _ = fmt.Fprintf(&buf, "\nPanic: %v\n\n", panicVal)
	_, _ = fmt.Fprintf(&buf, "Stack:\n%s\n", string(stack))

	if _, err := f.Write(buf.Bytes()); err != nil {
		return path, err
	}
	_ = f.Sync()
	return path, nil
}

// saveDrawing writes the snapshot as SVG. An empty or missing snapshot
// writes nothing and returns an empty path.
func saveDrawing(stamp string, snapshot Snapshot) (path string, err error) {
	if snapshot == nil {
		return "", nil
	}
	// the document may be what panicked
	defer func() {
		if r := recover(); r != nil {
			path, err = "", fmt.Errorf("snapshot panicked: %v", r)
		}
	}()
	shapes := snapshot()
	if len(shapes) == 0 {
		return "", nil
	}
	path = filepath.Join(reportDir(), fmt.Sprintf("crash-%s.svg", stamp))
	if err := export.SaveSVG(path, shapes, export.Options{}); err != nil {
		return "", err
	}
	return path, nil
}
