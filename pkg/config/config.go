// Package config holds the assembler's environment defaults. Command-line
// flags are applied on top of the values read here.
package config

import (
	"fmt"
	"strings"

	"github.com/xyproto/env/v2"
)

const (
	EnvListing   = "SAYOASM_LISTING"
	EnvColor     = "SAYOASM_COLOR"
	EnvOutputDir = "SAYOASM_OUTPUT_DIR"
	EnvRaw       = "SAYOASM_RAW"
)

type ColorMode int

const (
	ColorAuto ColorMode = iota
	ColorAlways
	ColorNever
)

func (m ColorMode) String() string {
	switch m {
	case ColorAlways:
		return "always"
	case ColorNever:
		return "never"
	}
	return "auto"
}

// ParseColorMode accepts auto, always or never in any case. The empty
// string means auto.
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return ColorAuto, nil
	case "always":
		return ColorAlways, nil
	case "never":
		return ColorNever, nil
	}
	return ColorAuto, fmt.Errorf("invalid color mode %q (want auto, always or never)", s)
}

type Config struct {
	Listing   bool
	Color     ColorMode
	OutputDir string
	Raw       bool
}

// FromEnv reads the SAYOASM_* variables. Unset variables leave the zero value.
func FromEnv() (Config, error) {
	color, err := ParseColorMode(env.Str(EnvColor, "auto"))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", EnvColor, err)
	}
	return Config{
		Listing:   env.Bool(EnvListing),
		Color:     color,
		OutputDir: env.Str(EnvOutputDir),
		Raw:       env.Bool(EnvRaw),
	}, nil
}

// UseColor decides whether diagnostics get ANSI colours on a stream.
func (c Config) UseColor(isTerminal bool) bool {
	switch c.Color {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}
	return isTerminal
}
