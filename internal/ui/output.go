package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Status symbols
const (
	SymbolSuccess = "✓"
	SymbolError   = "✗"
	SymbolWarning = "⚠"
	SymbolInfo    = "ℹ"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

func status(symbol string, style lipgloss.Style, msg string) string {
	return style.Render(symbol) + " " + msg
}

// Success prefixes msg with a green check mark.
func Success(msg string) string { return status(SymbolSuccess, successStyle, msg) }

// Successf is Success with formatting.
func Successf(format string, args ...any) string { return Success(fmt.Sprintf(format, args...)) }

// Error prefixes msg with a red cross.
func Error(msg string) string { return status(SymbolError, errorStyle, msg) }

// Errorf is Error with formatting.
func Errorf(format string, args ...any) string { return Error(fmt.Sprintf(format, args...)) }

// Warning prefixes msg with a yellow warning sign.
func Warning(msg string) string { return status(SymbolWarning, warningStyle, msg) }

// Warningf is Warning with formatting.
func Warningf(format string, args ...any) string { return Warning(fmt.Sprintf(format, args...)) }

// Info prefixes msg with an accent info sign.
func Info(msg string) string { return status(SymbolInfo, Accent, msg) }

// Header renders a section header.
func Header(msg string) string {
	return Bold.Render(msg)
}

// FilePath renders a project-relative file path.
func FilePath(path string) string {
	return Accent.Render(path)
}

// RuleName renders a rule name or sync item name.
func RuleName(name string) string {
	return Accent.Render(name)
}

// Hint renders secondary text.
func Hint(msg string) string {
	return Muted.Render(msg)
}

// Count renders "(n noun)" with the noun agreeing with n.
func Count(n int, singular, plural string) string {
	if n == 1 {
		return fmt.Sprintf("(%d %s)", n, singular)
	}
	return fmt.Sprintf("(%d %s)", n, plural)
}

// ErrorWarningCounts renders "(2 errors, 1 warning)", leaving out a zero
// count unless both are zero.
func ErrorWarningCounts(errors, warnings int) string {
	var parts []string
	if errors > 0 {
		parts = append(parts, fmt.Sprintf("%d %s", errors, pluralize("error", errors)))
	}
	if warnings > 0 || errors == 0 {
		parts = append(parts, fmt.Sprintf("%d %s", warnings, pluralize("warning", warnings)))
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func pluralize(singular string, count int) string {
	if count == 1 {
		return singular
	}
	return singular + "s"
}
