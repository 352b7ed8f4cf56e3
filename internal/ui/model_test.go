package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/qlsh/quick-launcher/internal/entry"
	"github.com/qlsh/quick-launcher/internal/executor"
	"github.com/qlsh/quick-launcher/internal/stats"
	"github.com/qlsh/quick-launcher/internal/store"
)

type recLauncher struct {
	ran []string
}

func (r *recLauncher) Run(segment string) (int, error) {
	r.ran = append(r.ran, segment)
	return 0, nil
}

func newTestModel(t *testing.T) (*Model, *recLauncher) {
	t.Helper()
	dir := t.TempDir()
	st, err := store.Open(dir)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	seed := []*entry.Entry{
		{Alias: "backup", Kind: entry.Link, Command: "tar czf backup.tar.gz ."},
		{Alias: "deploy", Kind: entry.Chain, Command: "git pull && make deploy"},
		{Alias: "logs", Kind: entry.Link, Command: "tail -f app.log"},
		{
			Alias:        "clone",
			Kind:         entry.Template,
			Command:      "git clone {repo} && cd {project}",
			Placeholders: []entry.Placeholder{{Name: "project", Default: "app"}},
		},
	}
	entries := make(map[string]*entry.Entry, len(seed))
	for _, e := range seed {
		if err := st.Put(e); err != nil {
			t.Fatalf("put %s: %v", e.Alias, err)
		}
		entries[e.Alias] = e
	}
	launcher := &recLauncher{}
	m := NewModel(st, entries, stats.Load(dir), executor.New(launcher, nil), Options{
		Width:   80,
		Height:  24,
		Preview: true,
	})
	return m, launcher
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func sendKeys(m *Model, msgs ...tea.Msg) tea.Cmd {
	var last tea.Cmd
	for _, msg := range msgs {
		_, last = m.Update(msg)
	}
	return last
}

func emitsQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	switch msg := cmd().(type) {
	case tea.QuitMsg:
		return true
	case tea.BatchMsg:
		for _, sub := range msg {
			if emitsQuit(sub) {
				return true
			}
		}
	}
	return false
}

func TestTypingFiltersTheList(t *testing.T) {
	m, _ := newTestModel(t)
	sendKeys(m, keyRunes("d"), keyRunes("e"), keyRunes("p"))
	if m.nav.Query != "dep" {
		t.Fatalf("expected query dep, got %q", m.nav.Query)
	}
	if len(m.nav.Matches) != 1 || m.nav.Matches[0].Entry.Alias != "deploy" {
		t.Fatalf("unexpected matches: %#v", m.nav.Matches)
	}
}

func TestTabSwitchesMode(t *testing.T) {
	m, _ := newTestModel(t)
	sendKeys(m, tea.KeyMsg{Type: tea.KeyTab})
	if !m.nav.Mode.Templates() {
		t.Fatal("tab should switch to template mode")
	}
	if len(m.nav.Matches) != 1 || m.nav.Matches[0].Entry.Alias != "clone" {
		t.Fatalf("unexpected template matches: %#v", m.nav.Matches)
	}
	sendKeys(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.nav.Mode.Templates() {
		t.Fatal("tab should switch back to command mode")
	}
}

func TestDigitJumpSelectsWhenQueryEmpty(t *testing.T) {
	m, _ := newTestModel(t)
	sendKeys(m, keyRunes("2"))
	if m.nav.Query != "" {
		t.Fatalf("digit must not enter the query, got %q", m.nav.Query)
	}
	if m.nav.Cursor != 1 {
		t.Fatalf("expected cursor on row 2, got %d", m.nav.Cursor)
	}
}

func TestDigitTypesIntoActiveQuery(t *testing.T) {
	m, _ := newTestModel(t)
	sendKeys(m, keyRunes("a"), keyRunes("2"))
	if m.nav.Query != "a2" {
		t.Fatalf("digit should extend a non-empty query, got %q", m.nav.Query)
	}
}

func TestDigitPastMatchCountIsIgnored(t *testing.T) {
	m, _ := newTestModel(t)
	before := m.nav.Cursor
	sendKeys(m, keyRunes("9"))
	if m.nav.Cursor != before {
		t.Fatalf("out-of-range digit moved the cursor to %d", m.nav.Cursor)
	}
}

func TestEscapeClearsQueryThenQuits(t *testing.T) {
	m, _ := newTestModel(t)
	sendKeys(m, keyRunes("x"))
	cmd := sendKeys(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.nav.Query != "" {
		t.Fatalf("first escape should clear the query, got %q", m.nav.Query)
	}
	if emitsQuit(cmd) {
		t.Fatal("first escape must not quit while a query is active")
	}
	cmd = sendKeys(m, tea.KeyMsg{Type: tea.KeyEsc})
	if !emitsQuit(cmd) {
		t.Fatal("second escape should quit")
	}
}

func TestArrowNavigationClampsWithoutWrap(t *testing.T) {
	m, _ := newTestModel(t)
	sendKeys(m, tea.KeyMsg{Type: tea.KeyUp})
	if m.nav.Cursor != 0 {
		t.Fatalf("up at the top should clamp, got %d", m.nav.Cursor)
	}
	for i := 0; i < 10; i++ {
		sendKeys(m, tea.KeyMsg{Type: tea.KeyDown})
	}
	if m.nav.Cursor != len(m.nav.Matches)-1 {
		t.Fatalf("down at the bottom should clamp, got %d", m.nav.Cursor)
	}
}

func TestAddFormCreatesEntry(t *testing.T) {
	m, _ := newTestModel(t)
	m.startAddForm()
	if m.mode != ModeEntryForm {
		t.Fatal("add form should be active")
	}
	sendKeys(m, keyRunes("serve"))
	sendKeys(m, tea.KeyMsg{Type: tea.KeyEnter})
	sendKeys(m, keyRunes("python -m http.server"))
	sendKeys(m, tea.KeyMsg{Type: tea.KeyEnter})
	sendKeys(m, keyRunes("serve cwd"))
	sendKeys(m, tea.KeyMsg{Type: tea.KeyEnter})
	sendKeys(m, keyRunes("web"))
	sendKeys(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.mode != ModeBrowse {
		t.Fatalf("form should close after submit, mode %v", m.mode)
	}
	created, ok := m.entries["serve"]
	if !ok {
		t.Fatal("entry not created")
	}
	if created.Kind != entry.Link {
		t.Fatalf("plain command should infer link, got %s", created.Kind)
	}
	if created.Description != "serve cwd" || len(created.Tags) != 1 || created.Tags[0] != "web" {
		t.Fatalf("unexpected record: %#v", created)
	}
	persisted, _ := m.store.LoadAll()
	if _, ok := persisted["serve"]; !ok {
		t.Fatal("entry not persisted")
	}
}

func TestAddFormInfersChainAndTemplate(t *testing.T) {
	if inferKind("git pull && make build", false) != entry.Chain {
		t.Fatal("&& should infer chain")
	}
	if inferKind("echo {msg}", false) != entry.Template {
		t.Fatal("placeholder should infer template")
	}
	if inferKind("ls", true) != entry.Template {
		t.Fatal("template mode should infer template")
	}
	if inferKind("ls", false) != entry.Link {
		t.Fatal("plain command should infer link")
	}
}

func TestAddFormRejectsDuplicateAlias(t *testing.T) {
	m, _ := newTestModel(t)
	m.startAddForm()
	sendKeys(m, keyRunes("deploy"))
	sendKeys(m, tea.KeyMsg{Type: tea.KeyEnter})
	sendKeys(m, keyRunes("true"))
	for i := 0; i < 3; i++ {
		sendKeys(m, tea.KeyMsg{Type: tea.KeyEnter})
	}
	if m.errMsg == "" {
		t.Fatal("duplicate alias should surface an error")
	}
}

func TestTemplateDryRunPromptsAndNeverSpawns(t *testing.T) {
	m, launcher := newTestModel(t)
	sendKeys(m, tea.KeyMsg{Type: tea.KeyTab})
	sendKeys(m, tea.KeyMsg{Type: tea.KeyCtrlD})
	if m.mode != ModePlaceholderForm {
		t.Fatalf("expected placeholder form, mode %v", m.mode)
	}
	sendKeys(m, keyRunes("github.com/acme/app"))
	sendKeys(m, tea.KeyMsg{Type: tea.KeyEnter})
	// empty submit takes the declared default for {project}
	sendKeys(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.mode != ModeBrowse {
		t.Fatalf("form should close, mode %v", m.mode)
	}
	if len(launcher.ran) != 0 {
		t.Fatalf("dry run spawned: %#v", launcher.ran)
	}
	if m.lastResult == nil || !m.lastResult.DryRun {
		t.Fatal("expected a dry-run result")
	}
	if m.lastResult.Command != "git clone github.com/acme/app && cd app" {
		t.Fatalf("unexpected resolved command %q", m.lastResult.Command)
	}
}

func TestResolvedTemplateStaysOneSegment(t *testing.T) {
	m, _ := newTestModel(t)
	sendKeys(m, tea.KeyMsg{Type: tea.KeyTab})
	sendKeys(m, tea.KeyMsg{Type: tea.KeyCtrlD})
	sendKeys(m, keyRunes("x"))
	sendKeys(m, tea.KeyMsg{Type: tea.KeyEnter})
	sendKeys(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.lastResult == nil {
		t.Fatal("expected a dry-run result")
	}
	// the && in the resolved text is payload, not a chain operator
	if len(m.lastResult.Segments) != 1 {
		t.Fatalf("resolved template must be one segment, got %#v", m.lastResult.Segments)
	}
	if m.lastResult.Segments[0] != "git clone x && cd app" {
		t.Fatalf("unexpected segment %q", m.lastResult.Segments[0])
	}
}

func TestDryRunViewListsChainSegments(t *testing.T) {
	m, launcher := newTestModel(t)
	m.nav.SetQuery("deploy", 6)
	sendKeys(m, tea.KeyMsg{Type: tea.KeyCtrlD})
	if len(launcher.ran) != 0 {
		t.Fatalf("dry run spawned: %#v", launcher.ran)
	}
	view := m.View()
	if !strings.Contains(view, "Dry run: git pull && make deploy") {
		t.Fatalf("view missing dry-run summary:\n%s", view)
	}
	if !strings.Contains(view, "1. git pull") || !strings.Contains(view, "2. make deploy") {
		t.Fatalf("view missing segment boundaries:\n%s", view)
	}
}

func TestPlaceholderFormRepromptsWithoutDefault(t *testing.T) {
	m, _ := newTestModel(t)
	sendKeys(m, tea.KeyMsg{Type: tea.KeyTab})
	m.startPlaceholderForm(m.entries["clone"], true)
	// {repo} has no default: an empty submit must re-prompt
	sendKeys(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.mode != ModePlaceholderForm {
		t.Fatal("form must stay open until a value is supplied")
	}
	if m.placeholderForm.err == "" {
		t.Fatal("expected a required-value message")
	}
}

func TestPlaceholderFormEscapeCancels(t *testing.T) {
	m, launcher := newTestModel(t)
	m.startPlaceholderForm(m.entries["clone"], false)
	sendKeys(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.mode != ModeBrowse {
		t.Fatal("escape should cancel the form")
	}
	if len(launcher.ran) != 0 {
		t.Fatalf("cancelled form spawned: %#v", launcher.ran)
	}
}

func TestRemoveConfirm(t *testing.T) {
	m, _ := newTestModel(t)
	m.startRemoveConfirm()
	if m.mode != ModeConfirmRemove {
		t.Fatal("confirm should be active")
	}
	target := m.confirmTarget
	sendKeys(m, keyRunes("y"))
	if _, ok := m.entries[target]; ok {
		t.Fatalf("%s should be removed", target)
	}
	persisted, _ := m.store.LoadAll()
	if _, ok := persisted[target]; ok {
		t.Fatalf("%s still in store", target)
	}
}

func TestRemoveConfirmAnyOtherKeyCancels(t *testing.T) {
	m, _ := newTestModel(t)
	m.startRemoveConfirm()
	target := m.confirmTarget
	sendKeys(m, keyRunes("n"))
	if m.mode != ModeBrowse {
		t.Fatal("confirm should close on cancel")
	}
	if _, ok := m.entries[target]; !ok {
		t.Fatalf("%s should survive a cancelled confirm", target)
	}
}

func TestDangerousCommandAsksBeforeRunning(t *testing.T) {
	m, launcher := newTestModel(t)
	m.entries["wipe"] = &entry.Entry{Alias: "wipe", Kind: entry.Link, Command: "rm -rf /tmp/scratch"}
	m.refreshEntries()
	m.nav.SetQuery("wipe", 4)
	sendKeys(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.mode != ModeConfirmDanger {
		t.Fatalf("destructive command should ask first, mode %v", m.mode)
	}
	if len(launcher.ran) != 0 {
		t.Fatalf("command ran before confirmation: %#v", launcher.ran)
	}
	sendKeys(m, keyRunes("n"))
	if m.mode != ModeBrowse {
		t.Fatal("declining should return to browse")
	}
	if len(launcher.ran) != 0 {
		t.Fatalf("declined command still ran: %#v", launcher.ran)
	}
	sendKeys(m, tea.KeyMsg{Type: tea.KeyEnter})
	cmd := sendKeys(m, keyRunes("y"))
	if cmd == nil {
		t.Fatal("accepting should hand off to execution")
	}
}

func TestExecFinishedReportsFailedSegment(t *testing.T) {
	m, _ := newTestModel(t)
	m.handleExecFinishedMsg(execFinishedMsg{
		alias: "deploy",
		result: executor.Result{
			Command:     "git pull && make deploy",
			Segments:    []string{"git pull", "make deploy"},
			ExitCode:    2,
			FirstFailed: 1,
		},
	})
	if m.errMsg == "" {
		t.Fatal("failed chain should surface an error")
	}
	if m.usage.Count("deploy") != 1 {
		t.Fatal("execution should still count toward usage")
	}
}

func TestExecFinishedSuccessSetsInfo(t *testing.T) {
	m, _ := newTestModel(t)
	m.handleExecFinishedMsg(execFinishedMsg{
		alias: "logs",
		result: executor.Result{
			Command:     "tail -f app.log",
			Segments:    []string{"tail -f app.log"},
			FirstFailed: -1,
		},
	})
	if m.errMsg != "" {
		t.Fatalf("unexpected error: %s", m.errMsg)
	}
	if m.currentInfo() == "" {
		t.Fatal("expected a success message")
	}
}

func TestEditFormRenamesAlias(t *testing.T) {
	m, _ := newTestModel(t)
	m.nav.SetQuery("logs", 4)
	m.startEditForm()
	if m.entryForm == nil || m.entryForm.editing != "logs" {
		t.Fatalf("edit form should target logs, got %+v", m.entryForm)
	}
	f := m.entryForm
	f.inputs[fieldAlias].SetValue("taillog")
	for i := 0; i < fieldCount; i++ {
		sendKeys(m, tea.KeyMsg{Type: tea.KeyEnter})
	}
	if _, ok := m.entries["logs"]; ok {
		t.Fatal("old alias should be gone after rename")
	}
	renamed, ok := m.entries["taillog"]
	if !ok {
		t.Fatal("renamed entry missing")
	}
	if renamed.Kind != entry.Link {
		t.Fatalf("kind must survive the edit, got %s", renamed.Kind)
	}
}

func TestEditFormKeepsDefaultsAndCreated(t *testing.T) {
	m, _ := newTestModel(t)
	created := m.entries["clone"].Created
	sendKeys(m, tea.KeyMsg{Type: tea.KeyTab})
	m.startEditForm()
	if m.entryForm == nil || m.entryForm.editing != "clone" {
		t.Fatalf("edit form should target clone, got %+v", m.entryForm)
	}
	for i := 0; i < fieldCount; i++ {
		sendKeys(m, tea.KeyMsg{Type: tea.KeyEnter})
	}
	edited, ok := m.entries["clone"]
	if !ok {
		t.Fatal("edited entry missing")
	}
	def, declared := edited.DefaultFor("project")
	if !declared || def != "app" {
		t.Fatalf("placeholder default lost on edit: got %q, want %q", def, "app")
	}
	if !edited.Created.Equal(created) {
		t.Fatalf("creation timestamp rewritten: %v != %v", edited.Created, created)
	}
	persisted, _ := m.store.LoadAll()
	if def, _ := persisted["clone"].DefaultFor("project"); def != "app" {
		t.Fatalf("persisted default lost: got %q", def)
	}
}
