// Package resolver answers which canonical rules apply to a file, and finds
// rules by loosely typed names.
package resolver

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/aidanlsb/agentsync/internal/convert"
	"github.com/aidanlsb/agentsync/internal/model"
	"github.com/aidanlsb/agentsync/internal/parser"
	"github.com/aidanlsb/agentsync/internal/paths"
	"github.com/aidanlsb/agentsync/internal/slugs"
)

// Rule is a canonical rule known to the resolver.
type Rule struct {
	Name     string
	Path     string
	Document model.Document[model.CanonicalRule]
}

// Match is one rule's answer for a file.
type Match struct {
	Rule string `json:"rule"`
	Mode string `json:"mode"`
	// Pattern is the glob that matched, for glob rules.
	Pattern string `json:"pattern,omitempty"`
	// OnRequest is set for manual and intelligent rules, which apply only
	// when the user or the model asks for them.
	OnRequest bool `json:"on_request"`
}

// Resolver holds the canonical rules of one project root.
type Resolver struct {
	rules  []Rule
	byName map[string]int
	bySlug map[string][]int

	// Invalid lists rule files that could not be parsed.
	Invalid []error
}

// New creates a resolver over rules.
func New(rules []Rule) *Resolver {
	r := &Resolver{
		byName: make(map[string]int),
		bySlug: make(map[string][]int),
	}
	for _, rule := range rules {
		r.add(rule)
	}
	return r
}

func (r *Resolver) add(rule Rule) {
	i := len(r.rules)
	r.rules = append(r.rules, rule)
	r.byName[rule.Name] = i
	s := slugs.RuleSlug(rule.Name)
	r.bySlug[s] = append(r.bySlug[s], i)
}

// Load reads every canonical rule under root. Unparsable rules are recorded
// in Invalid and skipped.
func Load(root string) (*Resolver, error) {
	files, err := paths.Discover(root, model.ToolCanonical)
	if err != nil {
		return nil, err
	}
	r := New(nil)
	for _, file := range files {
		name, err := paths.RuleName(model.ToolCanonical, file)
		if err != nil {
			r.Invalid = append(r.Invalid, err)
			continue
		}
		data, err := os.ReadFile(file)
		if err != nil {
			r.Invalid = append(r.Invalid, fmt.Errorf("failed to read %s: %w", file, err))
			continue
		}
		doc, err := model.ParseCanonical(file, string(data))
		if err != nil {
			r.Invalid = append(r.Invalid, err)
			continue
		}
		r.add(Rule{Name: name, Path: file, Document: doc})
	}
	return r, nil
}

// Rules returns the loaded rules in name order.
func (r *Resolver) Rules() []Rule {
	out := make([]Rule, len(r.rules))
	copy(out, r.rules)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// NotFoundError is returned by Find when no rule matches.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("rule '%s' not found", e.Name)
}

// AmbiguousError is returned by Find when several rules share a slug.
type AmbiguousError struct {
	Name    string
	Matches []string
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("rule '%s' is ambiguous: %s", e.Name, strings.Join(e.Matches, ", "))
}

// Find returns the rule called name. Exact names win; otherwise names are
// compared by slug, so "Python Style" finds python-style.
func (r *Resolver) Find(name string) (Rule, error) {
	name = strings.TrimSuffix(strings.TrimSpace(name), ".md")
	if i, ok := r.byName[name]; ok {
		return r.rules[i], nil
	}
	hits := r.bySlug[slugs.RuleSlug(name)]
	switch len(hits) {
	case 0:
		return Rule{}, &NotFoundError{Name: name}
	case 1:
		return r.rules[hits[0]], nil
	}
	var names []string
	for _, i := range hits {
		names = append(names, r.rules[i].Name)
	}
	sort.Strings(names)
	return Rule{}, &AmbiguousError{Name: name, Matches: names}
}

// Which reports the rules that apply to file, a slash-separated path relative
// to the project root. When tool is set, rules that do not target it are
// skipped and activation is read from the tool's own projection of the rule.
func (r *Resolver) Which(file string, tool model.Tool) []Match {
	file = strings.TrimPrefix(path.Clean(filepath.ToSlash(file)), "./")

	var out []Match
	for _, rule := range r.Rules() {
		fm := rule.Document.Frontmatter
		if tool != "" && !fm.TargetsTool(tool) {
			continue
		}
		a := ActivationFor(tool, fm)
		m := Match{Rule: rule.Name, Mode: a.Mode.String()}
		switch a.Mode {
		case model.ModeAlwaysOn:
			out = append(out, m)
		case model.ModeGlob:
			if p, ok := matchGlobs(a.Globs, file); ok {
				m.Pattern = p
				out = append(out, m)
			}
		default:
			m.OnRequest = true
			out = append(out, m)
		}
	}
	return out
}

// ActivationFor returns the activation a tool sees for a canonical rule. An
// empty tool reads the canonical rule directly.
func ActivationFor(tool model.Tool, r model.CanonicalRule) model.Activation {
	switch tool {
	case model.ToolCursor:
		return convert.InferCursor(convert.CanonicalToCursor(r))
	case model.ToolWindsurf:
		return convert.InferWindsurf(convert.CanonicalToWindsurf(r))
	case model.ToolCopilot:
		return convert.InferCopilot(convert.CanonicalToCopilot(r))
	default:
		return convert.InferCanonical(r)
	}
}

// matchGlobs returns the first pattern matching file. Patterns without a
// slash also match against the base name.
func matchGlobs(globs, file string) (string, bool) {
	base := path.Base(file)
	for _, p := range parser.SplitGlobs(globs) {
		if ok, _ := doublestar.Match(p, file); ok {
			return p, true
		}
		if !strings.Contains(p, "/") {
			if ok, _ := doublestar.Match(p, base); ok {
				return p, true
			}
		}
	}
	return "", false
}
