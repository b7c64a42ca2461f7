package cli

import (
	"path/filepath"
	"strings"

	"github.com/aidanlsb/agentsync/internal/model"
)

// displayRel shows p relative to root with forward slashes.
func displayRel(root, p string) string {
	if rel, err := filepath.Rel(root, p); err == nil && !strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(rel)
	}
	return p
}

// targetsLabel renders a rule's targets for tables.
func targetsLabel(targets []string) string {
	if len(targets) == 0 {
		return model.TargetAll
	}
	for _, t := range targets {
		if t == model.TargetAll {
			return "all"
		}
	}
	return strings.Join(targets, ",")
}
