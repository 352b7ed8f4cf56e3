package state

// MoveCursorUp moves the selection one row up, stopping at the first row.
func (n *Nav) MoveCursorUp() bool {
	return n.moveCursorBy(-1)
}

// MoveCursorDown moves the selection one row down, stopping at the last row.
func (n *Nav) MoveCursorDown() bool {
	return n.moveCursorBy(1)
}

// MoveCursorHome moves the cursor to the first item.
func (n *Nav) MoveCursorHome() bool {
	if len(n.Matches) == 0 {
		n.Cursor = 0
		return false
	}
	old := n.Cursor
	n.Cursor = 0
	return old != n.Cursor
}

// MoveCursorEnd moves the cursor to the last item.
func (n *Nav) MoveCursorEnd() bool {
	total := len(n.Matches)
	if total == 0 {
		n.Cursor = 0
		return false
	}
	old := n.Cursor
	n.Cursor = total - 1
	return old != n.Cursor
}

// MoveCursorPageUp moves the cursor up by the given page size.
func (n *Nav) MoveCursorPageUp(maxVisible int) bool {
	return n.moveCursorBy(-n.pageSize(maxVisible))
}

// MoveCursorPageDown moves the cursor down by the given page size.
func (n *Nav) MoveCursorPageDown(maxVisible int) bool {
	return n.moveCursorBy(n.pageSize(maxVisible))
}

func (n *Nav) moveCursorBy(delta int) bool {
	if len(n.Matches) == 0 {
		n.Cursor = 0
		return false
	}
	old := n.Cursor
	if n.Cursor < 0 {
		n.Cursor = 0
	}
	n.Cursor += delta
	if n.Cursor < 0 {
		n.Cursor = 0
	}
	if n.Cursor >= len(n.Matches) {
		n.Cursor = len(n.Matches) - 1
	}
	return n.Cursor != old
}

func (n *Nav) pageSize(maxVisible int) int {
	total := len(n.Matches)
	if total == 0 {
		return 0
	}
	size := maxVisible
	if size <= 0 || size > total {
		size = total
	}
	if size < 1 {
		size = 1
	}
	return size
}

// EnsureCursorVisible adjusts the viewport offset so the cursor stays visible.
func (n *Nav) EnsureCursorVisible(maxVisible int) {
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
	if maxVisible <= 0 {
		n.ViewportOffset = 0
		return
	}
	maxOffset := len(n.Matches) - maxVisible
	if maxOffset < 0 {
		maxOffset = 0
	}
	if n.ViewportOffset > maxOffset {
		n.ViewportOffset = maxOffset
	}
	if n.ViewportOffset < 0 {
		n.ViewportOffset = 0
	}
	if n.Cursor < n.ViewportOffset {
		n.ViewportOffset = n.Cursor
	}
	upper := n.ViewportOffset + maxVisible - 1
	if n.Cursor > upper {
		n.ViewportOffset = n.Cursor - maxVisible + 1
		if n.ViewportOffset < 0 {
			n.ViewportOffset = 0
		}
		if n.ViewportOffset > maxOffset {
			n.ViewportOffset = maxOffset
		}
	}
}
