package ui

import (
	"unicode"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/qlsh/quick-launcher/internal/logging/events"
)

func (m *Model) updateFilterCursorModel(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.filterCursor, cmd = m.filterCursor.Update(msg)
	return cmd
}

func (m *Model) noteFilterCursorChange(before int) {
	if before != m.nav.QueryCursorPos() {
		m.filterCursorDirty = true
	}
}

// handleTextInput routes query-editing keys. Digits only reach the query when
// it is non-empty; on an empty query they jump-select instead.
func (m *Model) handleTextInput(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "ctrl+u":
		if m.nav.Query == "" {
			return false
		}
		before := m.nav.QueryCursorPos()
		m.nav.SetQuery("", 0)
		m.noteFilterCursorChange(before)
		m.forceClearInfo()
		m.errMsg = ""
		events.Filter.Cleared(m.nav.Mode.String())
		m.syncViewport()
		return true
	case "ctrl+w":
		before := m.nav.QueryCursorPos()
		if !m.nav.DeleteQueryWordBackward() {
			return false
		}
		m.noteFilterCursorChange(before)
		m.forceClearInfo()
		m.errMsg = ""
		events.Filter.WordBackspace(m.nav.Mode.String(), m.nav.Query)
		m.syncViewport()
		return true
	case "ctrl+a":
		before := m.nav.QueryCursorPos()
		if !m.nav.MoveQueryCursorStart() {
			return false
		}
		m.noteFilterCursorChange(before)
		events.Filter.Cursor(m.nav.Mode.String(), m.nav.QueryCursor)
		return true
	case "ctrl+e":
		before := m.nav.QueryCursorPos()
		if !m.nav.MoveQueryCursorEnd() {
			return false
		}
		m.noteFilterCursorChange(before)
		events.Filter.Cursor(m.nav.Mode.String(), m.nav.QueryCursor)
		return true
	}
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyCtrlH:
		return m.removeQueryRune()
	case tea.KeyRunes:
		if msg.Alt {
			return false
		}
		if len(msg.Runes) == 0 {
			return false
		}
		for _, r := range msg.Runes {
			if unicode.IsControl(r) {
				return false
			}
			if unicode.IsSpace(r) {
				return false
			}
		}
		if m.nav.Query == "" && len(msg.Runes) == 1 && msg.Runes[0] >= '1' && msg.Runes[0] <= '9' {
			return false
		}
		return m.appendToQuery(string(msg.Runes))
	case tea.KeySpace:
		if m.nav.Query == "" {
			return false
		}
		return m.appendToQuery(" ")
	case tea.KeyLeft:
		before := m.nav.QueryCursorPos()
		if !m.nav.MoveQueryCursorRuneBackward() {
			return false
		}
		m.noteFilterCursorChange(before)
		events.Filter.Cursor(m.nav.Mode.String(), m.nav.QueryCursor)
		return true
	case tea.KeyRight:
		before := m.nav.QueryCursorPos()
		if !m.nav.MoveQueryCursorRuneForward() {
			return false
		}
		m.noteFilterCursorChange(before)
		events.Filter.Cursor(m.nav.Mode.String(), m.nav.QueryCursor)
		return true
	}
	return false
}

func (m *Model) appendToQuery(text string) bool {
	if text == "" {
		return false
	}
	before := m.nav.QueryCursorPos()
	if !m.nav.InsertQueryText(text) {
		return false
	}
	m.noteFilterCursorChange(before)
	m.forceClearInfo()
	m.errMsg = ""
	events.Filter.Append(m.nav.Mode.String(), m.nav.Query)
	m.syncViewport()
	return true
}

func (m *Model) removeQueryRune() bool {
	before := m.nav.QueryCursorPos()
	if !m.nav.DeleteQueryRuneBackward() {
		return false
	}
	m.noteFilterCursorChange(before)
	m.forceClearInfo()
	m.errMsg = ""
	events.Filter.Backspace(m.nav.Mode.String(), m.nav.Query)
	m.syncViewport()
	return true
}

func (m *Model) filterPrompt() string {
	render := func(style *lipgloss.Style, value string) string {
		if style == nil || value == "" {
			return value
		}
		return style.Render(value)
	}
	if styles.Cursor != nil {
		m.filterCursor.Style = styles.Cursor.Copy()
	}
	if styles.Filter != nil {
		m.filterCursor.TextStyle = styles.Filter.Copy()
	} else {
		m.filterCursor.TextStyle = lipgloss.Style{}
	}
	prompt := "» "
	if styles.FilterPrompt != nil {
		prompt = styles.FilterPrompt.Render(prompt)
	}
	text := m.nav.Query
	if text == "" {
		placeholder := "(type to search)"
		runes := []rune(placeholder)
		var caretRune string
		var rest string
		if len(runes) > 0 {
			caretRune = string(runes[0])
			rest = string(runes[1:])
		}
		if styles.FilterPlaceholder != nil {
			m.filterCursor.TextStyle = styles.FilterPlaceholder.Copy()
		}
		caret := m.renderFilterCursor(caretRune)
		return prompt + caret + render(styles.FilterPlaceholder, rest)
	}
	runes := []rune(text)
	pos := m.nav.QueryCursorPos()
	if pos < 0 {
		pos = 0
	}
	if pos > len(runes) {
		pos = len(runes)
	}
	before := render(styles.Filter, string(runes[:pos]))
	var caretRune string
	if pos < len(runes) {
		caretRune = string(runes[pos])
	} else {
		caretRune = " "
	}
	caret := m.renderFilterCursor(caretRune)
	var after string
	if pos < len(runes) {
		after = render(styles.Filter, string(runes[pos+1:]))
	}
	return prompt + before + caret + after
}

func (m *Model) renderFilterCursor(char string) string {
	if char == "" {
		char = " "
	}
	m.filterCursor.SetChar(char)

	base := m.filterCursor.TextStyle.Copy()
	base = base.Inline(true)

	if m.filterCursor.Blink {
		return base.Render(char)
	}

	if styles.Cursor != nil {
		cursorStyle := styles.Cursor.Copy().Inline(true)
		base = base.Inherit(cursorStyle).Blink(false)
		return base.Render(char)
	}

	return base.Reverse(true).Render(char)
}
