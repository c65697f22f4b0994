package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// ColorMode selects when text output is colored.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Config captures the axctl settings that may be set in a file.
type Config struct {
	Indent   int
	MaxDepth int
	Color    ColorMode
	LogLevel string
	LogDir   string
}

const (
	defaultConfigPath = "~/.config/axctl/config.toml"
	defaultIndent     = 2
	defaultLogLevel   = "info"
)

// Default returns the settings used when no config file exists.
func Default() Config {
	return Config{
		Indent:   defaultIndent,
		Color:    ColorAuto,
		LogLevel: defaultLogLevel,
	}
}

// Load locates and parses the axctl config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		Indent   *int   `toml:"indent"`
		MaxDepth *int   `toml:"max_depth"`
		Color    string `toml:"color"`
		LogLevel string `toml:"log_level"`
		LogDir   string `toml:"log_dir"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if raw.Indent != nil {
		if *raw.Indent < 0 {
			return Config{}, fmt.Errorf("parse config: indent must not be negative, got %d", *raw.Indent)
		}
		cfg.Indent = *raw.Indent
	}
	if raw.MaxDepth != nil {
		if *raw.MaxDepth < 0 {
			return Config{}, fmt.Errorf("parse config: max_depth must not be negative, got %d", *raw.MaxDepth)
		}
		cfg.MaxDepth = *raw.MaxDepth
	}

	switch mode := ColorMode(strings.ToLower(strings.TrimSpace(raw.Color))); mode {
	case "":
	case ColorAuto, ColorAlways, ColorNever:
		cfg.Color = mode
	default:
		return Config{}, fmt.Errorf("parse config: unknown color mode %q", raw.Color)
	}

	if lvl := strings.TrimSpace(raw.LogLevel); lvl != "" {
		cfg.LogLevel = lvl
	}
	if dir := strings.TrimSpace(raw.LogDir); dir != "" {
		cfg.LogDir = mustExpand(dir)
	}

	return cfg, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
