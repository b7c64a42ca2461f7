package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/aidanlsb/agentsync/internal/commands"
	"github.com/aidanlsb/agentsync/internal/config"
	"github.com/aidanlsb/agentsync/internal/model"
	"github.com/aidanlsb/agentsync/internal/resolver"
)

// syncRegistryMetadata copies help text from the command registry onto the
// cobra tree and registers completions for arguments and flags.
func syncRegistryMetadata(root *cobra.Command) {
	for _, cmd := range root.Commands() {
		meta, ok := commands.Registry[cmd.Name()]
		if !ok {
			continue
		}
		applyRegistryMetadata(cmd, meta)
	}
}

func applyRegistryMetadata(cmd *cobra.Command, meta commands.Meta) {
	// Use stays in the CLI so Args validation and the usage line agree.
	if meta.Description != "" {
		cmd.Short = meta.Description
	}
	if meta.LongDesc != "" || len(meta.Examples) > 0 {
		cmd.Long = buildLongDesc(meta)
	}

	usage := make(map[string]string, len(meta.Flags))
	for _, flag := range meta.Flags {
		usage[flag.Name] = flag.Description
	}
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if desc, ok := usage[f.Name]; ok && desc != "" {
			f.Usage = desc
		}
	})

	if cmd.ValidArgsFunction == nil && len(meta.Args) > 0 {
		if comp := meta.Args[0].DynamicComp; comp != "" {
			cmd.ValidArgsFunction = completeFirstArg(comp)
		}
	}
	for _, flag := range meta.Flags {
		if flag.DynamicComp == "" || cmd.Flags().Lookup(flag.Name) == nil {
			continue
		}
		// Registering twice fails; Execute may run more than once in tests.
		_ = cmd.RegisterFlagCompletionFunc(flag.Name, completionFunc(flag.DynamicComp))
	}
}

func buildLongDesc(meta commands.Meta) string {
	longDesc := meta.Description
	if meta.LongDesc != "" {
		longDesc = meta.LongDesc
	}
	if len(meta.Examples) == 0 {
		return longDesc
	}

	var b strings.Builder
	b.WriteString(longDesc)
	b.WriteString("\n\nExamples:\n")
	for _, ex := range meta.Examples {
		b.WriteString("  ")
		b.WriteString(ex)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

type completer func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective)

func completeFirstArg(comp string) completer {
	inner := completionFunc(comp)
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return inner(cmd, args, toComplete)
	}
}

func completionFunc(comp string) completer {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		var candidates []string
		switch comp {
		case commands.CompFiles:
			return nil, cobra.ShellCompDirectiveDefault
		case commands.CompTools:
			candidates = model.ToolNames()
		case commands.CompModes:
			for _, m := range []model.Mode{model.ModeAlwaysOn, model.ModeManual, model.ModeIntelligent, model.ModeGlob} {
				candidates = append(candidates, m.String())
			}
		case commands.CompTopics:
			topics, err := docsTopics()
			if err != nil {
				return nil, cobra.ShellCompDirectiveError
			}
			for _, t := range topics {
				candidates = append(candidates, t.ID)
			}
		case commands.CompRules:
			root, p := completionProject()
			roots := []string{root}
			if p != nil {
				roots = p.Roots(root)
			}
			seen := make(map[string]bool)
			for _, dir := range roots {
				r, err := resolver.Load(dir)
				if err != nil {
					return nil, cobra.ShellCompDirectiveError
				}
				for _, rule := range r.Rules() {
					if !seen[rule.Name] {
						seen[rule.Name] = true
						candidates = append(candidates, rule.Name)
					}
				}
			}
		case commands.CompBaseDirs:
			if _, p := completionProject(); p != nil {
				candidates = p.BaseDirs
			}
		}
		return filterPrefix(candidates, toComplete), cobra.ShellCompDirectiveNoFileComp
	}
}

// completionRoot is the project root for completion requests, which run
// without the root command's pre-run hook.
func completionRoot() string {
	if rootFlag != "" {
		return rootFlag
	}
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}

// completionProject loads agentsync.json from the completion root. The
// project is nil when it is missing or invalid.
func completionProject() (string, *config.Project) {
	root := completionRoot()
	p, err := config.LoadProject(config.ProjectPath(root))
	if err != nil {
		return root, nil
	}
	return root, p
}

func filterPrefix(candidates []string, prefix string) []string {
	var out []string
	for _, c := range candidates {
		if strings.HasPrefix(c, prefix) {
			out = append(out, c)
		}
	}
	return out
}
