// Package rulesync projects canonical rules into tool directories and imports
// a tool's rules back into the canonical directory.
//
// A run reads both sides from scratch, classifies every item as added,
// updated, or skipped by comparing bytes, and writes atomically. Errors for a
// single rule are collected in the Outcome and never stop the run.
package rulesync

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/aidanlsb/agentsync/internal/atomicfile"
	"github.com/aidanlsb/agentsync/internal/convert"
	"github.com/aidanlsb/agentsync/internal/model"
	"github.com/aidanlsb/agentsync/internal/paths"
)

// ErrCanonicalSource is returned when asked to import canonical rules into
// themselves.
var ErrCanonicalSource = errors.New("cannot sync from agentsync to itself")

// Options control a sync run.
type Options struct {
	// DryRun classifies every item but writes nothing.
	DryRun bool
	// Verbose raises per-item trace lines from debug to info.
	Verbose bool
	// Logger receives the per-item trace. Nil discards it.
	Logger *zap.Logger
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

func (o Options) trace(msg string, fields ...zap.Field) {
	if o.Verbose {
		o.logger().Info(msg, fields...)
		return
	}
	o.logger().Debug(msg, fields...)
}

type action string

const (
	actionAdd    action = "add"
	actionUpdate action = "update"
	actionSkip   action = "skip"
)

// ToTools writes every canonical rule under root to each tool in tools that
// the rule targets. Items are named "<rule> (<tool>)".
func ToTools(root string, tools []model.Tool, opts Options) (*Outcome, error) {
	files, err := paths.Discover(root, model.ToolCanonical)
	if err != nil {
		return nil, fmt.Errorf("discover canonical rules: %w", err)
	}

	out := &Outcome{}
	for _, file := range files {
		name, err := paths.RuleName(model.ToolCanonical, file)
		if err != nil {
			out.fail(filepath.Base(file), err)
			continue
		}

		doc, err := readDocument(root, model.ToolCanonical, file)
		if err != nil {
			out.fail(name, err)
			continue
		}

		for _, tool := range tools {
			item := fmt.Sprintf("%s (%s)", name, tool)
			if !doc.Frontmatter.TargetsTool(tool) {
				opts.trace("rule not targeted at tool", zap.String("rule", name), zap.String("tool", string(tool)))
				continue
			}
			text, err := convert.RenderForTool(tool, doc)
			if err != nil {
				out.fail(item, err)
				continue
			}
			if err := place(root, tool, name, text, item, out, opts); err != nil {
				out.fail(item, err)
			}
		}
	}
	return out, nil
}

// FromTool imports every rule in tool's directory under root into the
// canonical directory, replacing canonical rules of the same name.
func FromTool(root string, tool model.Tool, opts Options) (*Outcome, error) {
	if tool == model.ToolCanonical {
		return nil, ErrCanonicalSource
	}
	if paths.Dir(tool) == "" {
		return nil, &model.UnknownToolError{Name: string(tool)}
	}

	files, err := paths.Discover(root, tool)
	if err != nil {
		return nil, fmt.Errorf("discover %s rules: %w", tool, err)
	}

	out := &Outcome{}
	for _, file := range files {
		name, err := paths.RuleName(tool, file)
		if err != nil {
			out.fail(filepath.Base(file), err)
			continue
		}

		doc, err := readDocument(root, tool, file)
		if err != nil {
			out.fail(name, err)
			continue
		}

		if err := place(root, model.ToolCanonical, name, doc.Serialize(), name, out, opts); err != nil {
			out.fail(name, err)
		}
	}
	return out, nil
}

// readDocument reads file in tool's format and converts it to canonical.
func readDocument(root string, tool model.Tool, file string) (model.Document[model.CanonicalRule], error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return model.Document[model.CanonicalRule]{}, fmt.Errorf("read %s: %w", file, err)
	}
	return convert.ParseAsCanonical(tool, displayPath(root, file), string(data))
}

// place validates the destination, classifies the change, and writes it
// unless this is a dry run.
func place(root string, tool model.Tool, name, text, item string, out *Outcome, opts Options) error {
	dest, err := paths.RulePath(root, tool, name)
	if err != nil {
		return err
	}

	act, err := classify(dest, []byte(text))
	if err != nil {
		return err
	}

	if act != actionSkip && !opts.DryRun {
		if err := atomicfile.WriteFile(dest, []byte(text), 0); err != nil {
			return fmt.Errorf("write %s: %w", displayPath(root, dest), err)
		}
	}

	opts.trace("rule synced",
		zap.String("item", item),
		zap.String("action", string(act)),
		zap.String("path", displayPath(root, dest)),
		zap.Bool("dry_run", opts.DryRun),
	)
	out.record(item, act)
	return nil
}

func classify(dest string, content []byte) (action, error) {
	existing, err := os.ReadFile(dest)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return actionAdd, nil
		}
		return "", fmt.Errorf("read %s: %w", dest, err)
	}
	if bytes.Equal(existing, content) {
		return actionSkip, nil
	}
	return actionUpdate, nil
}

func displayPath(root, p string) string {
	if rel, err := filepath.Rel(root, p); err == nil {
		return filepath.ToSlash(rel)
	}
	return p
}
