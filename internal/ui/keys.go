package ui

import (
	"fmt"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/qlsh/quick-launcher/internal/logging/events"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if m.mode != ModeBrowse {
		return nil
	}
	if keyMsg.Type == tea.KeyTab {
		m.switchMode()
		return nil
	}
	if m.handleTextInput(keyMsg) {
		return nil
	}
	if key := keyMsg.String(); len(key) == 1 && key[0] >= '1' && key[0] <= '9' && m.nav.Query == "" {
		m.selectDigit(int(key[0] - '0'))
		return nil
	}
	switch keyMsg.String() {
	case "ctrl+c":
		return tea.Quit
	case "esc":
		return m.handleEscapeKey()
	case "enter":
		return m.launchSelected(false)
	case "ctrl+d":
		return m.launchSelected(true)
	case "ctrl+y":
		m.copySelectedCommand()
	case "ctrl+p":
		visible := m.nav.TogglePreview()
		events.UI.PreviewToggle(visible)
		m.syncViewport()
	case "ctrl+n":
		m.startAddForm()
	case "ctrl+t":
		m.startEditForm()
	case "ctrl+x":
		m.startRemoveConfirm()
	case "up":
		m.moveCursorUp()
	case "down":
		m.moveCursorDown()
	case "pgup":
		m.moveCursorPageUp()
	case "pgdown":
		m.moveCursorPageDown()
	case "home":
		m.moveCursorHome()
	case "end":
		m.moveCursorEnd()
	}
	return nil
}

// handleEscapeKey clears an active query; with nothing to clear it quits.
func (m *Model) handleEscapeKey() tea.Cmd {
	if m.nav.Query != "" {
		before := m.nav.QueryCursorPos()
		m.nav.SetQuery("", 0)
		m.noteFilterCursorChange(before)
		m.errMsg = ""
		m.forceClearInfo()
		events.Filter.Cleared(m.nav.Mode.String())
		m.syncViewport()
		return nil
	}
	return tea.Quit
}

func (m *Model) switchMode() {
	m.nav.SwitchMode()
	m.errMsg = ""
	m.forceClearInfo()
	m.lastResult = nil
	events.UI.ModeSwitch(m.nav.Mode.String(), len(m.nav.Matches))
	m.syncViewport()
}

// selectDigit jumps the cursor to the nth visible row. Out-of-range digits
// are ignored.
func (m *Model) selectDigit(n int) {
	idx := m.nav.ViewportOffset + n - 1
	if max := m.maxVisibleItems(); max > 0 && n > max {
		return
	}
	if !m.nav.SelectIndex(idx) {
		return
	}
	events.UI.Cursor(m.nav.Mode.String(), m.nav.Cursor)
	m.syncViewport()
}

func (m *Model) copySelectedCommand() {
	selected, ok := m.nav.Selected()
	if !ok {
		return
	}
	err := clipboard.WriteAll(selected.Command)
	events.UI.ClipboardCopy(selected.Alias, err)
	if err != nil {
		m.errMsg = fmt.Sprintf("clipboard copy failed: %v", err)
		return
	}
	m.errMsg = ""
	m.setInfo(fmt.Sprintf("Copied %s to clipboard", selected.Alias))
}

func (m *Model) moveCursorUp() {
	if m.nav.MoveCursorUp() {
		events.UI.Cursor(m.nav.Mode.String(), m.nav.Cursor)
	}
	m.syncViewport()
}

func (m *Model) moveCursorDown() {
	if m.nav.MoveCursorDown() {
		events.UI.Cursor(m.nav.Mode.String(), m.nav.Cursor)
	}
	m.syncViewport()
}

func (m *Model) moveCursorPageUp() {
	if m.nav.MoveCursorPageUp(m.maxVisibleItems()) {
		events.UI.Cursor(m.nav.Mode.String(), m.nav.Cursor)
	}
	m.syncViewport()
}

func (m *Model) moveCursorPageDown() {
	if m.nav.MoveCursorPageDown(m.maxVisibleItems()) {
		events.UI.Cursor(m.nav.Mode.String(), m.nav.Cursor)
	}
	m.syncViewport()
}

func (m *Model) moveCursorHome() {
	if m.nav.MoveCursorHome() {
		events.UI.Cursor(m.nav.Mode.String(), m.nav.Cursor)
	}
	m.syncViewport()
}

func (m *Model) moveCursorEnd() {
	if m.nav.MoveCursorEnd() {
		events.UI.Cursor(m.nav.Mode.String(), m.nav.Cursor)
	}
	m.syncViewport()
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	m.syncViewport()
	return nil
}
