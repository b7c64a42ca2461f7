package cli

import (
	"reflect"
	"sort"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/aidanlsb/agentsync/internal/commands"
)

func TestCommandFlagsMatchRegistry(t *testing.T) {
	for _, cmd := range rootCmd.Commands() {
		meta, ok := commands.Registry[cmd.Name()]
		if !ok {
			continue
		}
		t.Run(cmd.Name(), func(t *testing.T) {
			cliFlags := make(map[string]string)
			cmd.LocalFlags().VisitAll(func(flag *pflag.Flag) {
				if flag.Name == "help" {
					return
				}
				cliFlags[flag.Name] = flag.Shorthand
			})

			registryFlags := make(map[string]string, len(meta.Flags))
			for _, flag := range meta.Flags {
				registryFlags[flag.Name] = flag.Short
			}

			for name, short := range cliFlags {
				want, ok := registryFlags[name]
				if !ok {
					t.Errorf("CLI flag %q is missing from registry metadata", name)
					continue
				}
				if short != want {
					t.Errorf("flag %q shorthand = %q, registry has %q", name, short, want)
				}
			}
			for name := range registryFlags {
				if _, ok := cliFlags[name]; !ok {
					t.Errorf("registry flag %q is missing from CLI command", name)
				}
			}
		})
	}
}

func TestRegistryFlagTypesMatchCLI(t *testing.T) {
	for name, meta := range commands.Registry {
		cmd, _, err := rootCmd.Find([]string{name})
		if err != nil || cmd == rootCmd {
			t.Errorf("registry command %q is not in the CLI tree", name)
			continue
		}
		for _, flag := range meta.Flags {
			f := cmd.Flags().Lookup(flag.Name)
			if f == nil {
				continue
			}
			if got := f.Value.Type(); got != string(flag.Type) {
				t.Errorf("%s --%s is %s in the CLI, registry says %s", name, flag.Name, got, flag.Type)
			}
		}
	}
}

func TestEveryCommandHasRegistryMetadata(t *testing.T) {
	var missing []string
	for _, cmd := range rootCmd.Commands() {
		switch cmd.Name() {
		case "completion", "help":
			continue
		}
		if _, ok := commands.Registry[cmd.Name()]; !ok {
			missing = append(missing, cmd.Name())
		}
	}
	if len(missing) > 0 {
		t.Fatalf("commands without registry metadata: %v", missing)
	}
}

func TestRegistryUseMatchesCLI(t *testing.T) {
	for _, cmd := range rootCmd.Commands() {
		meta, ok := commands.Registry[cmd.Name()]
		if !ok {
			continue
		}
		if cmd.Use != meta.Use() {
			t.Errorf("Use = %q, registry builds %q", cmd.Use, meta.Use())
		}
	}
}

func TestSyncRegistryMetadataAppliesHelp(t *testing.T) {
	syncRegistryMetadata(rootCmd)

	cmd, _, err := rootCmd.Find([]string{"which"})
	if err != nil {
		t.Fatal(err)
	}
	if cmd.Short != commands.Registry["which"].Description {
		t.Errorf("Short = %q", cmd.Short)
	}
	if !strings.Contains(cmd.Long, "Examples:\n  agentsync which src/app.py") {
		t.Errorf("Long is missing examples:\n%s", cmd.Long)
	}
	if got := cmd.Flags().Lookup("tool").Usage; got != commands.Registry["which"].Flags[0].Description {
		t.Errorf("--tool usage = %q", got)
	}
}

func TestCompletionCandidates(t *testing.T) {
	tests := []struct {
		comp       string
		toComplete string
		want       []string
	}{
		{commands.CompTools, "", []string{"copilot", "cursor", "windsurf"}},
		{commands.CompTools, "c", []string{"copilot", "cursor"}},
		{commands.CompModes, "", []string{"always_on", "glob", "intelligent", "manual"}},
		{commands.CompTopics, "mo", []string{"modes"}},
	}
	for _, tc := range tests {
		got, directive := completionFunc(tc.comp)(rootCmd, nil, tc.toComplete)
		if directive != cobra.ShellCompDirectiveNoFileComp {
			t.Errorf("%s: directive = %v", tc.comp, directive)
		}
		sort.Strings(got)
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("%s(%q) = %v, want %v", tc.comp, tc.toComplete, got, tc.want)
		}
	}

	if _, directive := completionFunc(commands.CompFiles)(rootCmd, nil, ""); directive != cobra.ShellCompDirectiveDefault {
		t.Errorf("file completion should fall back to the shell")
	}
}

func TestCompleteRuleNames(t *testing.T) {
	root := t.TempDir()
	if _, err := runCLI(t, root, "init"); err != nil {
		t.Fatal(err)
	}
	if _, err := runCLI(t, root, "add", "python-style", "--globs", "**/*.py"); err != nil {
		t.Fatal(err)
	}
	if _, err := runCLI(t, root, "add", "commit-messages", "--mode", "always_on"); err != nil {
		t.Fatal(err)
	}

	resetGlobals()
	rootFlag = root
	t.Cleanup(resetGlobals)

	got, _ := completeFirstArg(commands.CompRules)(rootCmd, nil, "py")
	if !reflect.DeepEqual(got, []string{"python-style"}) {
		t.Errorf("rule completion = %v", got)
	}
	if got, _ := completeFirstArg(commands.CompRules)(rootCmd, []string{"x"}, ""); got != nil {
		t.Errorf("second argument should not complete, got %v", got)
	}
}
