// Package state holds the navigation state for the launcher list: the active
// mode, the live filter query, the ranked matches, and the cursor. All
// mutation happens on the UI goroutine; nothing here is safe for concurrent
// use and nothing needs to be.
package state

import (
	"github.com/qlsh/quick-launcher/internal/entry"
	"github.com/qlsh/quick-launcher/internal/search"
)

// Mode selects which slice of the catalogue is navigable.
type Mode int

const (
	// CommandMode shows link and chain entries.
	CommandMode Mode = iota
	// TemplateMode shows template entries.
	TemplateMode
)

func (m Mode) String() string {
	if m == TemplateMode {
		return "templates"
	}
	return "commands"
}

// Templates reports whether the mode shows template entries.
func (m Mode) Templates() bool { return m == TemplateMode }

// Toggle returns the other mode.
func (m Mode) Toggle() Mode {
	if m == TemplateMode {
		return CommandMode
	}
	return TemplateMode
}

// Nav encapsulates list navigation state: mode, query, matches, cursor, and
// viewport.
type Nav struct {
	Mode           Mode
	Full           []*entry.Entry
	Matches        []search.Match
	Query          string
	QueryCursor    int
	Cursor         int
	LastCursor     int
	ViewportOffset int
	Preview        bool
}

// NewNav constructs navigation state over the given entries.
func NewNav(entries []*entry.Entry, preview bool) *Nav {
	n := &Nav{
		Mode:       CommandMode,
		LastCursor: -1,
		Preview:    preview,
	}
	n.UpdateEntries(entries)
	return n
}

// UpdateEntries refreshes the backing catalogue and re-ranks the current
// query against it, keeping the cursor in range.
func (n *Nav) UpdateEntries(entries []*entry.Entry) {
	n.Full = append([]*entry.Entry(nil), entries...)
	n.applyQuery()
}

// SwitchMode toggles between command and template mode. The query and cursor
// reset so the new mode starts from a clean list.
func (n *Nav) SwitchMode() {
	n.SwitchTo(n.Mode.Toggle())
}

// SwitchTo activates the given mode. Switching to the active mode is a no-op
// and in particular does not clear the query.
func (n *Nav) SwitchTo(mode Mode) {
	if n.Mode == mode {
		return
	}
	n.Mode = mode
	n.Query = ""
	n.QueryCursor = 0
	n.Cursor = 0
	n.LastCursor = -1
	n.ViewportOffset = 0
	n.applyQuery()
}

// Selected returns the entry under the cursor, if any.
func (n *Nav) Selected() (*entry.Entry, bool) {
	if n.Cursor < 0 || n.Cursor >= len(n.Matches) {
		return nil, false
	}
	return n.Matches[n.Cursor].Entry, true
}

// SelectIndex moves the cursor to idx when it names a visible match.
func (n *Nav) SelectIndex(idx int) bool {
	if idx < 0 || idx >= len(n.Matches) {
		return false
	}
	n.Cursor = idx
	return true
}

// TogglePreview flips preview visibility and reports the new state.
func (n *Nav) TogglePreview() bool {
	n.Preview = !n.Preview
	return n.Preview
}

// applyQuery re-ranks the catalogue for the current mode and query and clamps
// the cursor and viewport to the result.
func (n *Nav) applyQuery() {
	n.Matches = search.Rank(n.Full, n.Query, n.Mode.Templates())
	if len(n.Matches) == 0 {
		n.Cursor = 0
		n.ViewportOffset = 0
		return
	}
	if n.Cursor < 0 {
		n.Cursor = 0
	}
	if n.Cursor >= len(n.Matches) {
		n.Cursor = len(n.Matches) - 1
	}
	if n.ViewportOffset > len(n.Matches)-1 {
		n.ViewportOffset = 0
	}
}
