// Package commands is the central registry of agentsync CLI command
// metadata. The CLI takes help text, argument completion and flag
// descriptions from here.
package commands

// Meta defines metadata for a CLI command.
type Meta struct {
	Name        string     // Command name (e.g., "sync", "add")
	Description string     // Short description
	LongDesc    string     // Long description (for --help)
	Args        []ArgMeta  // Positional arguments
	Flags       []FlagMeta // Command flags
	Examples    []string   // Usage examples
	Mutating    bool       // Writes files in the project
}

// ArgMeta defines a positional argument.
type ArgMeta struct {
	Name        string // Argument name
	Description string // Description
	Required    bool   // Is this argument required?
	DynamicComp string // Dynamic completion type (one of the Comp constants)
}

// FlagMeta defines a command flag.
type FlagMeta struct {
	Name        string   // Flag name (e.g., "from", "dry-run")
	Short       string   // Short flag (e.g., "n" for -n)
	Description string   // Description
	Type        FlagType // Type of flag
	DynamicComp string   // Dynamic completion type for the flag value
}

// FlagType represents the type of a flag.
type FlagType string

const (
	FlagTypeString FlagType = "string"
	FlagTypeBool   FlagType = "bool"
)

// Dynamic completion types.
const (
	CompRules    = "rules"
	CompTools    = "tools"
	CompTopics   = "topics"
	CompFiles    = "files"
	CompModes    = "modes"
	CompBaseDirs = "basedirs"
)

// Registry holds all registered commands.
var Registry = map[string]Meta{
	"init": {
		Name:        "init",
		Description: "Initialize agentsync in the project",
		LongDesc: `Creates agentsync.json and the .agentsync/rules directory.

If rules already exist in tool directories they are listed, and on a terminal
you are asked which tool to import them from. Use --from to import without
asking.`,
		Flags: []FlagMeta{
			{Name: "from", Description: "Import existing rules from a tool (cursor, windsurf, copilot)", Type: FlagTypeString, DynamicComp: CompTools},
		},
		Examples: []string{
			"agentsync init",
			"agentsync init --from cursor",
		},
		Mutating: true,
	},
	"sync": {
		Name:        "sync",
		Description: "Sync canonical rules to every configured tool",
		LongDesc: `Writes each rule under .agentsync/rules to the rule directory of every
configured tool the rule targets. Files whose content would not change are
skipped, and a rule that fails is reported without stopping the others.

With --from, rules are imported from one tool's directory into
.agentsync/rules instead. On a terminal you are asked before existing
canonical rules are overwritten. Every base directory in agentsync.json is synced as
its own root.`,
		Flags: []FlagMeta{
			{Name: "from", Description: "Import rules from a tool into .agentsync/rules", Type: FlagTypeString, DynamicComp: CompTools},
			{Name: "dry-run", Short: "n", Description: "Show what would change without writing", Type: FlagTypeBool},
		},
		Examples: []string{
			"agentsync sync",
			"agentsync sync --dry-run",
			"agentsync sync --from cursor",
		},
		Mutating: true,
	},
	"add": {
		Name:        "add",
		Description: "Create a new canonical rule",
		LongDesc: `Creates .agentsync/rules/<name>.md from a template with every tool override
filled in, so the rule is ready to edit and sync.

Names are kebab-case: lowercase letters, digits and hyphens. Without flags the
rule is intelligent: the assistant decides from its description.

The rule goes to the project's base directory. When agentsync.json lists
several base directories and "." is not one of them, pick one with --dir.`,
		Args: []ArgMeta{
			{Name: "name", Description: "Rule name in kebab-case", Required: true},
		},
		Flags: []FlagMeta{
			{Name: "description", Short: "d", Description: "Rule description (used by intelligent rules)", Type: FlagTypeString},
			{Name: "mode", Description: "Activation mode: always_on, manual, intelligent, glob", Type: FlagTypeString, DynamicComp: CompModes},
			{Name: "globs", Description: "Comma-separated file patterns (implies --mode glob)", Type: FlagTypeString},
			{Name: "dir", Description: "Base directory from agentsync.json to add the rule to", Type: FlagTypeString, DynamicComp: CompBaseDirs},
		},
		Examples: []string{
			"agentsync add python-style --globs \"**/*.py\"",
			"agentsync add commit-messages --mode always_on",
			"agentsync add api-design -d \"REST API conventions\"",
			"agentsync add api-style --dir services/api",
		},
		Mutating: true,
	},
	"list": {
		Name:        "list",
		Description: "List canonical rules",
		LongDesc:    `Lists the rules under .agentsync/rules with their activation mode, targets and title.`,
	},
	"show": {
		Name:        "show",
		Description: "Show a rule and how each tool will activate it",
		LongDesc: `Prints a canonical rule's activation in each tool followed by its body.
The body is rendered as markdown unless --raw is given or stdout is not a
terminal. Names are matched loosely, so "Python Style" finds python-style.

When agentsync.json lists several base directories, a rule name found in
more than one of them is ambiguous; name it as "<dir>: <rule>".`,
		Args: []ArgMeta{
			{Name: "name", Description: "Rule name", Required: true, DynamicComp: CompRules},
		},
		Flags: []FlagMeta{
			{Name: "raw", Description: "Print the body without markdown rendering", Type: FlagTypeBool},
		},
	},
	"check": {
		Name:        "check",
		Description: "Validate canonical and tool rule files",
		LongDesc: `Checks every rule file for problems that would break or change a sync:
malformed headers, unknown targets, invalid glob patterns, header content the
tools would read differently, empty bodies and missing titles.

Exits non-zero on errors, or on warnings with --strict.`,
		Flags: []FlagMeta{
			{Name: "strict", Description: "Treat warnings as errors", Type: FlagTypeBool},
		},
	},
	"which": {
		Name:        "which",
		Description: "Show which rules apply to a file",
		LongDesc: `Lists the canonical rules that apply when an assistant works on <file>.
Always-on rules and glob rules whose patterns match are listed as applying.
Manual and intelligent rules are listed as available on request.

With --tool, each rule is read the way that tool sees it, and rules not
targeted at the tool are left out.`,
		Args: []ArgMeta{
			{Name: "file", Description: "File path, relative to the working directory", Required: true, DynamicComp: CompFiles},
		},
		Flags: []FlagMeta{
			{Name: "tool", Description: "Evaluate rules as this tool sees them", Type: FlagTypeString, DynamicComp: CompTools},
		},
		Examples: []string{
			"agentsync which src/app.py",
			"agentsync which src/app.py --tool copilot",
		},
	},
	"docs": {
		Name:        "docs",
		Description: "Read the bundled guides",
		LongDesc:    `Lists the bundled guides, or prints one of them.`,
		Args: []ArgMeta{
			{Name: "topic", Description: "Guide to print", DynamicComp: CompTopics},
		},
		Flags: []FlagMeta{
			{Name: "raw", Description: "Print the guide without markdown rendering", Type: FlagTypeBool},
		},
	},
	"version": {
		Name:        "version",
		Description: "Show agentsync version and build information",
	},
}

// IsMutating reports whether the named command writes project files.
func IsMutating(name string) bool {
	return Registry[name].Mutating
}

// Use builds a cobra Use string from the command's arguments.
func (m Meta) Use() string {
	use := m.Name
	for _, arg := range m.Args {
		if arg.Required {
			use += " <" + arg.Name + ">"
		} else {
			use += " [" + arg.Name + "]"
		}
	}
	return use
}
