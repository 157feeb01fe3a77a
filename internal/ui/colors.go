package ui

import (
	"fmt"
	"strings"
)

// ANSI color and style constants for CLI output
const (
	ColorReset = "\033[0m"
	ColorBold  = "\033[1m"
	ColorDim   = "\033[2m"

	ColorCyan   = "\033[36m"
	ColorGreen  = "\033[32m"
	ColorYellow = "\033[33m"
	ColorRed    = "\033[31m"
)

func Bold(s string) string {
	return ColorBold + s + ColorReset
}

func Success(s string) string {
	return ColorGreen + s + ColorReset
}

func Warning(s string) string {
	return ColorYellow + s + ColorReset
}

func Error(s string) string {
	return ColorRed + s + ColorReset
}

// Field renders an aligned "label: value" line with a dimmed label
func Field(label string, value any) string {
	pad := 12 - len(label)
	if pad < 1 {
		pad = 1
	}
	return fmt.Sprintf("  %s%s:%s%s%v", ColorDim, label, ColorReset, strings.Repeat(" ", pad), value)
}
