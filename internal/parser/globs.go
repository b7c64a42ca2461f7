package parser

import "strings"

// GlobSeparator joins normalized glob patterns.
const GlobSeparator = ","

// NormalizeGlobs trims every comma-separated pattern and rejoins them, so
// "a.py, b.py" and "a.py,b.py" store identically. Empty segments are dropped.
func NormalizeGlobs(globs string) string {
	if strings.TrimSpace(globs) == "" {
		return ""
	}
	parts := strings.Split(globs, GlobSeparator)
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, GlobSeparator)
}

// SplitGlobs returns the individual patterns of a glob list.
func SplitGlobs(globs string) []string {
	n := NormalizeGlobs(globs)
	if n == "" {
		return nil
	}
	return strings.Split(n, GlobSeparator)
}
