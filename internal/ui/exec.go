package ui

import (
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/qlsh/quick-launcher/internal/entry"
	"github.com/qlsh/quick-launcher/internal/executor"
	"github.com/qlsh/quick-launcher/internal/logging/events"
)

type execFinishedMsg struct {
	alias  string
	result executor.Result
}

// shellExec adapts an executor invocation to tea.ExecCommand so Bubble Tea
// releases the terminal while the command runs. The launcher writes to the
// inherited stdio, so the Set* hooks are intentionally inert.
type shellExec struct {
	run    func() executor.Result
	result *executor.Result
}

func (c *shellExec) Run() error {
	*c.result = c.run()
	return nil
}

func (c *shellExec) SetStdin(io.Reader)  {}
func (c *shellExec) SetStdout(io.Writer) {}
func (c *shellExec) SetStderr(io.Writer) {}

// launchSelected starts execution of the entry under the cursor. Templates
// detour through the placeholder form first.
func (m *Model) launchSelected(dryRun bool) tea.Cmd {
	selected, ok := m.nav.Selected()
	if !ok {
		return nil
	}
	events.UI.Confirm(m.nav.Mode.String(), selected.Alias, m.nav.Query)
	if selected.Kind == entry.Template {
		names := selected.PlaceholderNames()
		if len(names) > 0 {
			m.startPlaceholderForm(selected, dryRun)
			return nil
		}
	}
	return m.runEntry(selected, selected.Command, dryRun)
}

// runEntry executes the final command text for an entry. Dry runs resolve
// inline and never leave the UI loop; real runs suspend it via tea.Exec.
// Only a Chain is split at the operator: a resolved template is one segment.
func (m *Model) runEntry(e *entry.Entry, command string, dryRun bool) tea.Cmd {
	if dryRun {
		result := m.exec.Execute(command, e.Kind == entry.Chain, true)
		m.lastResult = &result
		m.errMsg = ""
		m.forceClearInfo()
		return nil
	}
	if warnings := m.exec.Warnings(command); len(warnings) > 0 {
		m.startDangerConfirm(e, command, warnings)
		return nil
	}
	return m.executeEntry(e, command)
}

// executeEntry suspends the UI and spawns the command. The caller has already
// resolved placeholders and confirmed any danger warnings.
func (m *Model) executeEntry(e *entry.Entry, command string) tea.Cmd {
	chained := e.Kind == entry.Chain
	m.errMsg = ""
	m.forceClearInfo()
	alias := e.Alias
	holder := &executor.Result{}
	cmd := &shellExec{
		run:    func() executor.Result { return m.exec.Execute(command, chained, false) },
		result: holder,
	}
	return tea.Exec(cmd, func(error) tea.Msg {
		return execFinishedMsg{alias: alias, result: *holder}
	})
}

func (m *Model) handleExecFinishedMsg(msg tea.Msg) tea.Cmd {
	finished, ok := msg.(execFinishedMsg)
	if !ok {
		return nil
	}
	result := finished.result
	m.lastResult = &result
	m.usage.Record(finished.alias)
	if err := m.usage.Save(); err != nil {
		events.Store.Corrupt("stats", err)
	}
	switch {
	case result.Err != nil:
		m.errMsg = result.Err.Error()
	case result.FirstFailed >= 0:
		failed := result.Segments[result.FirstFailed]
		if len(result.Segments) > 1 {
			m.errMsg = fmt.Sprintf("%s exited %d at step %d (%s); remaining steps skipped",
				finished.alias, result.ExitCode, result.FirstFailed+1, failed)
		} else {
			m.errMsg = fmt.Sprintf("%s exited %d", finished.alias, result.ExitCode)
		}
	default:
		m.errMsg = ""
		if m.verbose {
			m.setInfo(fmt.Sprintf("%s finished (%s)", finished.alias, describeSegments(result)))
		} else {
			m.setInfo(fmt.Sprintf("%s finished", finished.alias))
		}
	}
	return nil
}

func describeSegments(result executor.Result) string {
	if len(result.Segments) <= 1 {
		return "1 command"
	}
	return fmt.Sprintf("%d commands", len(result.Segments))
}

// dangerNotice returns an advisory line when the command matches a known
// destructive pattern. Advisory only: execution is never blocked.
func (m *Model) dangerNotice(command string) string {
	warnings := m.exec.Warnings(command)
	if len(warnings) == 0 {
		return ""
	}
	return "⚠ " + strings.Join(warnings, "; ")
}
