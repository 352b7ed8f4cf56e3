package state

import (
	"testing"

	"github.com/qlsh/quick-launcher/internal/entry"
)

func testEntries() []*entry.Entry {
	return []*entry.Entry{
		{Alias: "backup", Kind: entry.Link, Command: "tar czf backup.tar.gz ."},
		{Alias: "deploy", Kind: entry.Chain, Command: "git pull && make deploy"},
		{Alias: "logs", Kind: entry.Link, Command: "tail -f app.log"},
		{Alias: "git-setup", Kind: entry.Template, Command: "git clone {repo}"},
	}
}

func TestNewNavStartsInCommandMode(t *testing.T) {
	n := NewNav(testEntries(), true)
	if n.Mode != CommandMode {
		t.Fatalf("expected command mode, got %v", n.Mode)
	}
	if len(n.Matches) != 3 {
		t.Fatalf("expected 3 command entries, got %d", len(n.Matches))
	}
	if n.Cursor != 0 {
		t.Fatalf("expected cursor at 0, got %d", n.Cursor)
	}
}

func TestSwitchModeResetsQueryAndCursor(t *testing.T) {
	n := NewNav(testEntries(), true)
	n.SetQuery("log", 3)
	n.Cursor = 0
	n.SwitchMode()
	if n.Mode != TemplateMode {
		t.Fatalf("expected template mode, got %v", n.Mode)
	}
	if n.Query != "" || n.QueryCursor != 0 {
		t.Fatalf("query should reset on mode switch, got %q/%d", n.Query, n.QueryCursor)
	}
	if len(n.Matches) != 1 || n.Matches[0].Entry.Alias != "git-setup" {
		t.Fatalf("unexpected template matches: %#v", n.Matches)
	}
	if n.Cursor != 0 {
		t.Fatalf("cursor should reset, got %d", n.Cursor)
	}
}

func TestSwitchToActiveModeIsIdempotent(t *testing.T) {
	n := NewNav(testEntries(), true)
	n.SetQuery("dep", 3)
	n.SwitchTo(CommandMode)
	if n.Query != "dep" {
		t.Fatalf("switching to the active mode must not clear the query, got %q", n.Query)
	}
}

func TestCursorClampsAtEdges(t *testing.T) {
	n := NewNav(testEntries(), true)
	if n.MoveCursorUp() {
		t.Fatal("cursor at the first row must not move up")
	}
	n.MoveCursorDown()
	n.MoveCursorDown()
	if n.Cursor != 2 {
		t.Fatalf("expected cursor at last row, got %d", n.Cursor)
	}
	if n.MoveCursorDown() {
		t.Fatal("cursor at the last row must not wrap")
	}
	if n.Cursor != 2 {
		t.Fatalf("cursor moved past the end: %d", n.Cursor)
	}
}

func TestSetQueryFiltersAndRestoresCursor(t *testing.T) {
	n := NewNav(testEntries(), true)
	n.Cursor = 2
	n.SetQuery("deploy", 6)
	if len(n.Matches) != 1 || n.Matches[0].Entry.Alias != "deploy" {
		t.Fatalf("unexpected matches: %#v", n.Matches)
	}
	if n.Cursor != 0 {
		t.Fatalf("cursor should jump to top on filter, got %d", n.Cursor)
	}
	n.SetQuery("", 0)
	if n.Cursor != 2 {
		t.Fatalf("cursor should restore after clearing, got %d", n.Cursor)
	}
	if n.LastCursor != -1 {
		t.Fatalf("last cursor should reset, got %d", n.LastCursor)
	}
}

func TestSetQueryNoMatches(t *testing.T) {
	n := NewNav(testEntries(), true)
	n.SetQuery("zzzzzz", 6)
	if len(n.Matches) != 0 {
		t.Fatalf("expected no matches, got %#v", n.Matches)
	}
	if _, ok := n.Selected(); ok {
		t.Fatal("no selection should exist with an empty match list")
	}
}

func TestInsertAndDeleteQueryText(t *testing.T) {
	n := NewNav(testEntries(), true)
	if !n.InsertQueryText("lg") {
		t.Fatal("expected insert to succeed")
	}
	n.QueryCursor = 1
	if !n.InsertQueryText("o") {
		t.Fatal("expected insert in middle to succeed")
	}
	if n.Query != "log" {
		t.Fatalf("expected query \"log\", got %q", n.Query)
	}
	if !n.DeleteQueryRuneBackward() {
		t.Fatal("expected delete to succeed")
	}
	if n.Query != "lg" || n.QueryCursor != 1 {
		t.Fatalf("unexpected query state %q/%d", n.Query, n.QueryCursor)
	}
}

func TestDeleteQueryWordBackward(t *testing.T) {
	n := NewNav(testEntries(), true)
	n.SetQuery("tail app", 8)
	if !n.DeleteQueryWordBackward() {
		t.Fatal("expected word delete to succeed")
	}
	if n.Query != "tail " {
		t.Fatalf("expected %q, got %q", "tail ", n.Query)
	}
}

func TestSelectIndexBounds(t *testing.T) {
	n := NewNav(testEntries(), true)
	if !n.SelectIndex(2) {
		t.Fatal("index 2 should be selectable")
	}
	if n.Cursor != 2 {
		t.Fatalf("cursor not moved, got %d", n.Cursor)
	}
	if n.SelectIndex(3) {
		t.Fatal("index past the match list must be rejected")
	}
	if n.Cursor != 2 {
		t.Fatalf("rejected selection moved the cursor to %d", n.Cursor)
	}
}

func TestSelectedReturnsEntryUnderCursor(t *testing.T) {
	n := NewNav(testEntries(), true)
	n.Cursor = 1
	selected, ok := n.Selected()
	if !ok {
		t.Fatal("expected a selection")
	}
	if selected.Alias != "deploy" {
		t.Fatalf("unexpected selection %s", selected.Alias)
	}
}

func TestUpdateEntriesKeepsQuery(t *testing.T) {
	n := NewNav(testEntries(), true)
	n.SetQuery("log", 3)
	extra := append(testEntries(), &entry.Entry{Alias: "log-rotate", Kind: entry.Link, Command: "logrotate -f"})
	n.UpdateEntries(extra)
	if len(n.Matches) != 2 {
		t.Fatalf("expected re-rank against new catalogue, got %d matches", len(n.Matches))
	}
}

func TestEnsureCursorVisibleScrollsViewport(t *testing.T) {
	entries := make([]*entry.Entry, 0, 20)
	for i := 0; i < 20; i++ {
		entries = append(entries, &entry.Entry{
			Alias:   string(rune('a'+i)) + "-cmd",
			Kind:    entry.Link,
			Command: "true",
		})
	}
	n := NewNav(entries, true)
	n.Cursor = 15
	n.EnsureCursorVisible(5)
	if n.Cursor < n.ViewportOffset || n.Cursor > n.ViewportOffset+4 {
		t.Fatalf("cursor %d outside viewport starting at %d", n.Cursor, n.ViewportOffset)
	}
	n.Cursor = 0
	n.EnsureCursorVisible(5)
	if n.ViewportOffset != 0 {
		t.Fatalf("viewport should scroll back to 0, got %d", n.ViewportOffset)
	}
}

func TestTogglePreview(t *testing.T) {
	n := NewNav(testEntries(), true)
	if n.TogglePreview() {
		t.Fatal("expected preview off after first toggle")
	}
	if !n.TogglePreview() {
		t.Fatal("expected preview back on")
	}
}
