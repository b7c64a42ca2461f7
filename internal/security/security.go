// Package security guards every filesystem write whose path is derived from
// rule names, tool names, or configured base directories.
package security

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrPathTraversal is matched by every *PathTraversalError.
var ErrPathTraversal = errors.New("path traversal")

// PathTraversalError reports a target that resolves outside of its base.
type PathTraversalError struct {
	Base   string
	Target string
}

func (e *PathTraversalError) Error() string {
	return fmt.Sprintf("path traversal detected: %s escapes %s", e.Target, e.Base)
}

func (e *PathTraversalError) Is(target error) bool {
	return target == ErrPathTraversal
}

// BaseError is returned when the base directory itself cannot be resolved.
// It is an environment problem, not a traversal attempt.
type BaseError struct {
	Base string
	Err  error
}

func (e *BaseError) Error() string {
	return fmt.Sprintf("resolve base directory %s: %v", e.Base, e.Err)
}

func (e *BaseError) Unwrap() error { return e.Err }

// ValidateWithin checks that target, after resolving symlinks, lives inside base.
//
// base must exist. target may not exist yet: its nearest existing ancestor is
// resolved and the missing components are re-appended. Containment is decided
// per path segment, so "/base-evil" is not inside "/base".
func ValidateWithin(base, target string) error {
	realBase, err := resolveExisting(base)
	if err != nil {
		return &BaseError{Base: base, Err: err}
	}

	realTarget, err := resolvePartial(target)
	if err != nil {
		return fmt.Errorf("resolve target %s: %w", target, err)
	}

	if !contains(realBase, realTarget) {
		return &PathTraversalError{Base: base, Target: target}
	}
	return nil
}

// ValidateRelative rejects absolute paths and any ".." segment. It does not
// touch the filesystem.
func ValidateRelative(p string) error {
	if filepath.IsAbs(p) || strings.HasPrefix(p, "/") || strings.HasPrefix(p, `\`) {
		return &PathTraversalError{Base: ".", Target: p}
	}
	for _, seg := range splitSegments(p) {
		if seg == ".." {
			return &PathTraversalError{Base: ".", Target: p}
		}
	}
	return nil
}

// ValidateBaseDirs checks the configured list of project base directories.
// Absolute entries are accepted as-is; relative entries must not climb.
func ValidateBaseDirs(dirs []string) error {
	if len(dirs) == 0 {
		return errors.New("baseDirs must contain at least one directory")
	}
	for i, d := range dirs {
		if strings.TrimSpace(d) == "" {
			return fmt.Errorf("baseDirs[%d] is empty", i)
		}
		if filepath.IsAbs(d) {
			continue
		}
		if err := ValidateRelative(d); err != nil {
			return fmt.Errorf("baseDirs[%d]: %w", i, err)
		}
	}
	return nil
}

func resolveExisting(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}

// resolvePartial canonicalizes p even when its tail does not exist yet.
func resolvePartial(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", err
	}

	var missing []string
	cur := abs
	for {
		if _, err := os.Lstat(cur); err == nil {
			break
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			break
		}
		missing = append(missing, filepath.Base(cur))
		cur = parent
	}

	resolved, err := filepath.EvalSymlinks(cur)
	if err != nil {
		return "", err
	}
	for i := len(missing) - 1; i >= 0; i-- {
		resolved = filepath.Join(resolved, missing[i])
	}
	return filepath.Clean(resolved), nil
}

func contains(base, target string) bool {
	if target == base {
		return true
	}
	prefix := base
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	return strings.HasPrefix(target, prefix)
}

func splitSegments(p string) []string {
	return strings.FieldsFunc(p, func(r rune) bool {
		return r == '/' || r == '\\'
	})
}
