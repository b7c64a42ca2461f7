package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette:
// - Accent (soft purple #A78BFA, or the configured color): rule names, paths
// - Muted (gray): hints, secondary info
// - Status is carried by unicode symbols, not color

const defaultAccent = "#A78BFA"

var (
	accentColor = defaultAccent

	// Accent style for rule names, file paths, highlights
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(defaultAccent))

	// Muted style for secondary info and hints
	Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))

	// Bold style for emphasis
	Bold = lipgloss.NewStyle().Bold(true)
)

// ConfigureTheme applies the [ui] accent setting. "none", "off", "default"
// and invalid values turn the accent color off.
func ConfigureTheme(accent string) {
	color, ok := normalizeAccentColor(accent)
	if !ok {
		accentColor = ""
		Accent = lipgloss.NewStyle()
		return
	}
	accentColor = color
	Accent = lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

// AccentColor returns the active accent color, if any.
func AccentColor() (string, bool) {
	return accentColor, accentColor != ""
}

// normalizeAccentColor accepts ANSI codes 0-255 and #RGB / #RRGGBB hex.
func normalizeAccentColor(raw string) (string, bool) {
	v := strings.TrimSpace(raw)
	switch strings.ToLower(v) {
	case "", "none", "off", "default":
		return "", false
	}

	if n, err := strconv.Atoi(v); err == nil {
		if n < 0 || n > 255 {
			return "", false
		}
		return strconv.Itoa(n), true
	}

	if !strings.HasPrefix(v, "#") {
		return "", false
	}
	hex := strings.ToLower(v[1:])
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return "", false
	}
	if _, err := strconv.ParseUint(hex, 16, 32); err != nil {
		return "", false
	}
	return "#" + hex, true
}
