package app

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/qlsh/quick-launcher/internal/entry"
	"github.com/qlsh/quick-launcher/internal/executor"
	"github.com/qlsh/quick-launcher/internal/logging/events"
	"github.com/qlsh/quick-launcher/internal/search"
	"github.com/qlsh/quick-launcher/internal/stats"
	"github.com/qlsh/quick-launcher/internal/store"
	"github.com/qlsh/quick-launcher/internal/template"
)

// Exit codes for the direct execution path. A successful run exits with the
// command's own status.
const (
	ExitStoreFailure = 1
	ExitConfigError  = 2
	ExitNotFound     = 3
	ExitSpawnFailure = 4
	ExitCancelled    = 5
)

// RunDirect executes a single entry by alias without entering the UI and
// returns the process exit code.
func RunDirect(cfg Config, alias string) int {
	events.App.DirectRun(alias)
	st, err := store.Open(cfg.DataDir)
	if err != nil {
		color.Red("Error: %v", err)
		return ExitStoreFailure
	}
	entries, warnings := st.LoadAll()
	for _, warning := range warnings {
		color.Yellow("Warning: %s", warning)
	}
	e, ok := entries[alias]
	if !ok {
		color.Red("Error: no entry named %q", alias)
		suggestAliases(entries, alias)
		return ExitNotFound
	}

	command := e.Command
	if e.Kind == entry.Template {
		resolved, ok := promptPlaceholders(e)
		if !ok {
			return ExitCancelled
		}
		command = resolved
	}

	exec := executor.New(executor.NewShellLauncher(), cfg.DangerPatterns)
	warnings = exec.Warnings(command)
	for _, warning := range warnings {
		color.Yellow("Warning: %s", warning)
	}
	if len(warnings) > 0 && !cfg.DryRun {
		if !confirmDanger() {
			fmt.Println("Cancelled")
			return ExitCancelled
		}
	}
	chained := e.Kind == entry.Chain
	result := exec.Execute(command, chained, cfg.DryRun)
	if result.DryRun {
		fmt.Printf("Dry run: %s\n", command)
		for i, segment := range result.Segments {
			if len(result.Segments) > 1 {
				fmt.Printf("  %d. %s\n", i+1, segment)
			}
		}
		return 0
	}

	usage := stats.Load(cfg.DataDir)
	usage.Record(alias)
	if err := usage.Save(); err != nil {
		color.Yellow("Warning: could not save usage stats: %v", err)
	}

	switch {
	case result.Err != nil:
		color.Red("Error: %v", result.Err)
		return ExitSpawnFailure
	case result.FirstFailed >= 0:
		if len(result.Segments) > 1 {
			color.Red("Error: %s exited %d at step %d (%s); remaining steps skipped",
				alias, result.ExitCode, result.FirstFailed+1, result.Segments[result.FirstFailed])
		} else {
			color.Red("Error: %s exited %d", alias, result.ExitCode)
		}
		return result.ExitCode
	default:
		if cfg.Verbose {
			color.Green("%s finished", alias)
		}
		return 0
	}
}

// promptPlaceholders collects placeholder values on stdin. Empty input takes
// the declared default; without one the same prompt repeats. EOF cancels.
func promptPlaceholders(e *entry.Entry) (string, bool) {
	names := e.PlaceholderNames()
	values := make(map[string]string, len(names))
	reader := bufio.NewScanner(os.Stdin)
	for _, name := range names {
		events.Template.Prompt(e.Alias, name)
		def, hasDefault := e.DefaultFor(name)
		for {
			if hasDefault && def != "" {
				fmt.Printf("Value for {%s} [%s]: ", name, def)
			} else {
				fmt.Printf("Value for {%s}: ", name)
			}
			if !reader.Scan() {
				fmt.Println()
				events.Template.Cancelled(e.Alias)
				return "", false
			}
			value := strings.TrimSpace(reader.Text())
			if value == "" {
				if hasDefault && def != "" {
					value = def
				} else {
					color.Yellow("A value for {%s} is required.", name)
					continue
				}
			}
			values[name] = value
			break
		}
	}
	resolved, err := template.Resolve(e.Command, values)
	if err != nil {
		color.Red("Error: %v", err)
		return "", false
	}
	events.Template.Resolved(e.Alias, len(names))
	return resolved, true
}

// confirmDanger asks before running a command that matched a destructive
// pattern. Anything but an explicit yes declines; EOF declines too.
func confirmDanger() bool {
	fmt.Print("Are you sure you want to run this? (y/N): ")
	reader := bufio.NewScanner(os.Stdin)
	if !reader.Scan() {
		fmt.Println()
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(reader.Text()))
	return answer == "y" || answer == "yes"
}

// suggestAliases prints near matches for a mistyped alias.
func suggestAliases(entries map[string]*entry.Entry, alias string) {
	all := make([]*entry.Entry, 0, len(entries))
	for _, e := range entries {
		all = append(all, e)
	}
	var suggestions []string
	for _, match := range search.RankAll(all, alias) {
		suggestions = append(suggestions, match.Entry.Alias)
		if len(suggestions) == 3 {
			break
		}
	}
	if len(suggestions) > 0 {
		fmt.Printf("Did you mean: %s\n", strings.Join(suggestions, ", "))
	}
}
