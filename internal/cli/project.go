package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/aidanlsb/agentsync/internal/config"
	"github.com/aidanlsb/agentsync/internal/model"
	"github.com/aidanlsb/agentsync/internal/resolver"
)

// projectContext is an initialized project resolved from --root.
type projectContext struct {
	Root    string
	Project *config.Project
	Tools   []model.Tool
}

// loadProject loads agentsync.json from the resolved root. Errors are
// already formatted for the current output mode.
func loadProject() (*projectContext, error) {
	root, err := config.FindProjectRoot(getRoot())
	if err != nil {
		return nil, handleError(errorCode(err), err, "Run 'agentsync init' to create agentsync.json")
	}
	p, err := config.LoadProject(config.ProjectPath(root))
	if err != nil {
		return nil, handleError(errorCode(err), err, "")
	}
	tools, err := p.EnabledTools()
	if err != nil {
		return nil, handleError(errorCode(err), err, "")
	}
	logger.Debug("loaded project", zap.String("root", root), zap.Strings("tools", p.Tools), zap.Strings("base_dirs", p.BaseDirs))
	return &projectContext{Root: root, Project: p, Tools: tools}, nil
}

// Roots returns the base directories of the project, each with its own
// .agentsync/rules.
func (pc *projectContext) Roots() []string {
	return pc.Project.Roots(pc.Root)
}

// ruleSet is the canonical rules of one base directory. Label is empty when
// the project has a single base directory.
type ruleSet struct {
	Label    string
	Root     string
	Resolver *resolver.Resolver
}

// displayName prefixes rule with the base directory label, the same way
// sync names its items.
func (s ruleSet) displayName(rule string) string {
	if s.Label == "" {
		return rule
	}
	return s.Label + ": " + rule
}

// loadRuleSets reads the canonical rules of every base directory.
func loadRuleSets(projectRoot string, roots []string) ([]ruleSet, error) {
	sets := make([]ruleSet, 0, len(roots))
	for _, root := range roots {
		r, err := resolver.Load(root)
		if err != nil {
			return nil, err
		}
		label := ""
		if len(roots) > 1 {
			label = rootLabel(projectRoot, root)
		}
		sets = append(sets, ruleSet{Label: label, Root: root, Resolver: r})
	}
	return sets, nil
}

// findRule looks name up in every base directory. "<dir>: <rule>" selects a
// base directory explicitly; otherwise a name found in more than one base
// directory is ambiguous.
func findRule(sets []ruleSet, name string) (ruleSet, resolver.Rule, error) {
	if label, rest, ok := strings.Cut(name, ":"); ok {
		for _, s := range sets {
			if s.Label != "" && s.Label == strings.TrimSpace(label) {
				rule, err := s.Resolver.Find(rest)
				return s, rule, err
			}
		}
	}

	var (
		hitSet  ruleSet
		hitRule resolver.Rule
		matches []string
	)
	for _, s := range sets {
		rule, err := s.Resolver.Find(name)
		if err != nil {
			var notFound *resolver.NotFoundError
			if errors.As(err, &notFound) {
				continue
			}
			return s, rule, err
		}
		hitSet, hitRule = s, rule
		matches = append(matches, s.displayName(rule.Name))
	}
	switch len(matches) {
	case 0:
		return ruleSet{}, resolver.Rule{}, &resolver.NotFoundError{Name: strings.TrimSpace(name)}
	case 1:
		return hitSet, hitRule, nil
	}
	sort.Strings(matches)
	return ruleSet{}, resolver.Rule{}, &resolver.AmbiguousError{Name: strings.TrimSpace(name), Matches: matches}
}

func invalidRuleWarnings(sets []ruleSet) []Warning {
	var out []Warning
	for _, s := range sets {
		for _, err := range s.Resolver.Invalid {
			out = append(out, Warning{Code: WarnInvalidRule, Message: err.Error()})
		}
	}
	return out
}

// baseDirFor picks the base directory new rules go to. dir names one of the
// configured base directories; without it the project has to have a single
// base directory or list "." among them.
func (pc *projectContext) baseDirFor(dir string) (string, error) {
	roots := pc.Roots()
	if dir != "" {
		want := filepath.Clean(dir)
		if !filepath.IsAbs(want) {
			want = filepath.Join(pc.Root, filepath.FromSlash(dir))
		}
		for _, root := range roots {
			if root == want {
				return root, nil
			}
		}
		return "", fmt.Errorf("%s is not a base directory in agentsync.json (%s)", dir, strings.Join(pc.Project.BaseDirs, ", "))
	}
	if len(roots) == 1 {
		return roots[0], nil
	}
	for _, root := range roots {
		if root == filepath.Clean(pc.Root) {
			return root, nil
		}
	}
	return "", fmt.Errorf("agentsync.json lists several base directories (%s)", strings.Join(pc.Project.BaseDirs, ", "))
}
