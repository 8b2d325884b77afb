/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"graphio/internal/vector"
)

// AppConfig is the user-editable configuration persisted to a YAML file in the user scope.
// Environment variables are treated as read-only overrides at runtime.
//
// config_version: bump when the structure changes in a backward-incompatible way.

type GeneralConfig struct {
	Theme string `yaml:"theme"` // "dark" | "light"
}

// DrawingConfig holds the settings a new session starts with.
type DrawingConfig struct {
	Tool  string `yaml:"tool"`  // brush | rectangle | ellipse
	Color string `yaml:"color"` // #rrggbb or #rrggbbaa
	Width int    `yaml:"width"`
}

type HistoryConfig struct {
	MaxDepth int `yaml:"max_depth"` // 0 = unlimited
}

type ExportConfig struct {
	Scale      float64 `yaml:"scale"`      // PNG pixels per canvas unit
	Background string  `yaml:"background"` // empty = transparent
	Margin     float64 `yaml:"margin"`     // extra space around the drawing
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

type AppConfig struct {
	ConfigVersion int           `yaml:"config_version"`
	General       GeneralConfig `yaml:"general"`
	Drawing       DrawingConfig `yaml:"drawing"`
	History       HistoryConfig `yaml:"history"`
	Export        ExportConfig  `yaml:"export"`
	Logging       LoggingConfig `yaml:"logging"`
}

// Defaults returns the application defaults.
func Defaults() AppConfig {
	return AppConfig{
		ConfigVersion: 1,
		General:       GeneralConfig{Theme: "dark"},
		Drawing:       DrawingConfig{Tool: "brush", Color: "#ffffff", Width: 3},
		History:       HistoryConfig{MaxDepth: 0},
		Export:        ExportConfig{Scale: 1, Background: "", Margin: 0},
		Logging:       LoggingConfig{Level: "info", Format: "console"},
	}
}

// Env var names used as overrides.
const (
	EnvConfigPath   = "GRAPHIO_CONFIG"
	EnvTheme        = "GRAPHIO_THEME"
	EnvTool         = "GRAPHIO_TOOL"
	EnvColor        = "GRAPHIO_COLOR"
	EnvWidth        = "GRAPHIO_WIDTH"
	EnvHistoryDepth = "GRAPHIO_HISTORY_DEPTH"
	EnvLogLevel     = "GRAPHIO_LOG_LEVEL"
	EnvLogFormat    = "GRAPHIO_LOG_FORMAT"
	EnvLogSource    = "GRAPHIO_LOG_SOURCE"
	EnvLogFile      = "GRAPHIO_LOG_FILE"
)

// ConfigPath returns the per-user config file path. GRAPHIO_CONFIG wins when set.
func ConfigPath() (string, error) {
	if p := strings.TrimSpace(os.Getenv(EnvConfigPath)); p != "" {
		return p, nil
	}
	base, err := os.UserConfigDir()
	if err != nil || base == "" {
		return "", errors.New("cannot resolve config directory")
	}
	return filepath.Join(base, "graphio", "config.yaml"), nil
}

// Load reads the user config file (if present), applies defaults, and merges environment overrides.
// A missing file is not an error; a malformed one is reported together with the defaults.
func Load() (AppConfig, error) {
	cfg, err := LoadFile()
	applyEnvOverrides(&cfg)
	return cfg, err
}

// LoadFile returns the defaults merged with the user config file, without
// environment overrides. Use it as the base when writing preferences back so
// that one-off env settings are not persisted.
func LoadFile() (AppConfig, error) {
	cfg := Defaults()
	path, err := ConfigPath()
	if err != nil {
		return cfg, err
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		var fileCfg AppConfig
		if uerr := yaml.Unmarshal(data, &fileCfg); uerr != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, uerr)
		}
		mergeInto(&cfg, &fileCfg)
	case !errors.Is(err, os.ErrNotExist):
		return cfg, fmt.Errorf("read %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the user config YAML.
func Save(cfg AppConfig) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func mergeInto(dst *AppConfig, src *AppConfig) {
	if src.ConfigVersion != 0 {
		dst.ConfigVersion = src.ConfigVersion
	}
	if v := lowerTrim(src.General.Theme); v != "" {
		dst.General.Theme = v
	}
	if v := lowerTrim(src.Drawing.Tool); v != "" {
		dst.Drawing.Tool = v
	}
	if v := strings.TrimSpace(src.Drawing.Color); v != "" {
		dst.Drawing.Color = v
	}
	if src.Drawing.Width > 0 {
		dst.Drawing.Width = src.Drawing.Width
	}
	if src.History.MaxDepth > 0 {
		dst.History.MaxDepth = src.History.MaxDepth
	}
	if src.Export.Scale > 0 {
		dst.Export.Scale = src.Export.Scale
	}
	if v := strings.TrimSpace(src.Export.Background); v != "" {
		dst.Export.Background = v
	}
	if src.Export.Margin > 0 {
		dst.Export.Margin = src.Export.Margin
	}
	if v := lowerTrim(src.Logging.Level); v != "" {
		dst.Logging.Level = v
	}
	if v := lowerTrim(src.Logging.Format); v != "" {
		dst.Logging.Format = v
	}
	dst.Logging.Source = src.Logging.Source
	if v := strings.TrimSpace(src.Logging.File); v != "" {
		dst.Logging.File = v
	}
}

func applyEnvOverrides(cfg *AppConfig) {
	if v := lowerTrim(os.Getenv(EnvTheme)); v != "" {
		cfg.General.Theme = v
	}
	if v := lowerTrim(os.Getenv(EnvTool)); v != "" {
		cfg.Drawing.Tool = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvColor)); v != "" {
		cfg.Drawing.Color = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvWidth)); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Drawing.Width = n
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvHistoryDepth)); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.History.MaxDepth = n
		}
	}
	if v := lowerTrim(os.Getenv(EnvLogLevel)); v != "" {
		cfg.Logging.Level = v
	}
	if v := lowerTrim(os.Getenv(EnvLogFormat)); v != "" {
		cfg.Logging.Format = v
	}
	if v := lowerTrim(os.Getenv(EnvLogSource)); v != "" {
		cfg.Logging.Source = v == "1" || v == "true" || v == "on" || v == "yes"
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

func lowerTrim(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// StrokeColor parses the configured drawing color, falling back to white.
func (d DrawingConfig) StrokeColor() vector.Color {
	c, err := vector.ParseHex(d.Color)
	if err != nil {
		return vector.White
	}
	return c
}

// BackgroundColor parses the export background; ok is false for transparent.
func (e ExportConfig) BackgroundColor() (vector.Color, bool) {
	if strings.TrimSpace(e.Background) == "" {
		return vector.Transparent, false
	}
	c, err := vector.ParseHex(e.Background)
	if err != nil {
		return vector.Transparent, false
	}
	return c, true
}
