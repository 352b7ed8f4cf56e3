package state

import (
	"strings"
	"unicode"
)

// SetQuery updates the filter query and cursor position. Typing the first
// rune of a query remembers the browse cursor; clearing the query restores
// it when the old selection is still visible.
func (n *Nav) SetQuery(query string, cursor int) {
	trimmed := strings.TrimSpace(query)
	prevTrimmed := strings.TrimSpace(n.Query)
	restore := -1
	n.Query = query
	runes := []rune(n.Query)
	if cursor < 0 {
		cursor = 0
	}
	if cursor > len(runes) {
		cursor = len(runes)
	}
	n.QueryCursor = cursor
	if trimmed != "" {
		if prevTrimmed == "" {
			n.LastCursor = n.Cursor
		}
		n.Cursor = 0
	} else if prevTrimmed != "" {
		restore = n.LastCursor
	}
	n.applyQuery()
	if trimmed == "" && prevTrimmed != "" {
		if restore >= 0 && restore < len(n.Matches) {
			n.Cursor = restore
		} else if len(n.Matches) > 0 {
			n.Cursor = 0
		}
		n.LastCursor = -1
	}
}

// QueryCursorPos returns the rune offset of the query cursor.
func (n *Nav) QueryCursorPos() int {
	runes := []rune(n.Query)
	if n.QueryCursor < 0 {
		return 0
	}
	if n.QueryCursor > len(runes) {
		return len(runes)
	}
	return n.QueryCursor
}

// InsertQueryText inserts text into the query at the cursor position.
func (n *Nav) InsertQueryText(text string) bool {
	if text == "" {
		return false
	}
	insert := []rune(text)
	if len(insert) == 0 {
		return false
	}
	runes := []rune(n.Query)
	pos := n.QueryCursorPos()
	updated := make([]rune, 0, len(runes)+len(insert))
	updated = append(updated, runes[:pos]...)
	updated = append(updated, insert...)
	updated = append(updated, runes[pos:]...)
	n.SetQuery(string(updated), pos+len(insert))
	return true
}

// DeleteQueryRuneBackward deletes a rune before the query cursor.
func (n *Nav) DeleteQueryRuneBackward() bool {
	runes := []rune(n.Query)
	pos := n.QueryCursorPos()
	if pos == 0 || len(runes) == 0 {
		return false
	}
	updated := append(runes[:pos-1], runes[pos:]...)
	n.SetQuery(string(updated), pos-1)
	return true
}

// DeleteQueryWordBackward deletes the word preceding the cursor.
func (n *Nav) DeleteQueryWordBackward() bool {
	runes := []rune(n.Query)
	pos := n.QueryCursorPos()
	if pos == 0 || len(runes) == 0 {
		return false
	}
	i := pos
	for i > 0 && unicode.IsSpace(runes[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(runes[i-1]) {
		i--
	}
	updated := append(runes[:i], runes[pos:]...)
	n.SetQuery(string(updated), i)
	return true
}

// ClearQuery resets the query, reporting whether anything changed.
func (n *Nav) ClearQuery() bool {
	if n.Query == "" {
		return false
	}
	n.SetQuery("", 0)
	return true
}

// MoveQueryCursorStart moves the query cursor to the start.
func (n *Nav) MoveQueryCursorStart() bool {
	if n.QueryCursorPos() == 0 {
		return false
	}
	n.QueryCursor = 0
	return true
}

// MoveQueryCursorEnd moves the query cursor to the end.
func (n *Nav) MoveQueryCursorEnd() bool {
	end := len([]rune(n.Query))
	if n.QueryCursorPos() == end {
		return false
	}
	n.QueryCursor = end
	return true
}

// MoveQueryCursorRuneBackward moves the query cursor one rune backward.
func (n *Nav) MoveQueryCursorRuneBackward() bool {
	if n.QueryCursorPos() == 0 {
		return false
	}
	n.QueryCursor = n.QueryCursorPos() - 1
	return true
}

// MoveQueryCursorRuneForward moves the query cursor one rune forward.
func (n *Nav) MoveQueryCursorRuneForward() bool {
	runes := []rune(n.Query)
	pos := n.QueryCursorPos()
	if pos >= len(runes) {
		return false
	}
	n.QueryCursor = pos + 1
	return true
}
