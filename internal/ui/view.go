package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"

	"github.com/qlsh/quick-launcher/internal/entry"
	"github.com/qlsh/quick-launcher/internal/search"
)

const maxAliasColumn = 20

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
	raw           bool // text contains ANSI escapes; skip style wrapping, use ANSI-aware truncation
}

// View implements tea.Model.
func (m *Model) View() string {
	switch m.mode {
	case ModeEntryForm:
		if m.entryForm != nil {
			return m.viewEntryForm()
		}
	case ModePlaceholderForm:
		if m.placeholderForm != nil {
			return m.viewPlaceholderForm()
		}
	case ModeConfirmRemove:
		if m.confirmTarget != "" {
			return m.viewConfirmRemove()
		}
	case ModeConfirmDanger:
		if m.pendingEntry != nil {
			return m.viewConfirmDanger()
		}
	}
	return m.viewBrowse()
}

func (m *Model) viewBrowse() string {
	lines := make([]styledLine, 0, 16)
	lines = append(lines, styledLine{text: m.modeHeader(), raw: true})
	m.syncViewport()
	matches := m.nav.Matches
	start := 0
	display := matches
	if maxItems := m.maxVisibleItems(); maxItems > 0 && len(display) > maxItems {
		start = m.nav.ViewportOffset
		if start < 0 {
			start = 0
		}
		if start+maxItems > len(display) {
			start = len(display) - maxItems
			if start < 0 {
				start = 0
			}
			m.nav.ViewportOffset = start
		}
		display = display[start : start+maxItems]
	}
	if len(matches) == 0 {
		msg := "(no entries)"
		if m.nav.Query != "" {
			msg = fmt.Sprintf("No matches for %q", m.nav.Query)
		}
		lines = append(lines, styledLine{text: msg, style: styles.Info})
	} else {
		aliasW := aliasColumnWidth(display)
		for i, match := range display {
			idx := start + i
			lines = append(lines, m.buildItemLine(match.Entry, idx, aliasW))
		}
	}
	if m.nav.Preview {
		if selected, ok := m.nav.Selected(); ok {
			lines = append(lines, styledLine{})
			lines = append(lines, m.previewLines(selected)...)
		}
	}
	if result := m.resultLines(); len(result) > 0 {
		lines = append(lines, styledLine{})
		lines = append(lines, result...)
	}
	if info := m.currentInfo(); info != "" {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: info, style: styles.Info})
	}
	if m.showFooter {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: footerText, style: styles.Footer})
	}
	lines = limitHeight(lines, m.height-2, m.width)
	lines = applyWidth(lines, m.width)

	var statusLine styledLine
	if m.errMsg != "" {
		statusLine = styledLine{text: fmt.Sprintf("Error: %s", m.errMsg), style: styles.Error}
	}
	bottomLines := []styledLine{
		statusLine,
		{text: m.filterPrompt(), raw: true},
	}
	bottomLines = applyWidth(bottomLines, m.width)
	lines = append(lines, bottomLines...)
	return renderLines(lines)
}

const footerText = "↑/↓ move  enter run  ctrl+d dry run  tab mode  ctrl+n add  ctrl+t edit  ctrl+x remove  ctrl+y copy  ctrl+p preview  esc quit"

func (m *Model) modeHeader() string {
	var commands, templates string
	if m.nav.Mode.Templates() {
		commands = styles.ModeInactive.Render("commands")
		templates = styles.ModeActive.Render("templates")
	} else {
		commands = styles.ModeActive.Render("commands")
		templates = styles.ModeInactive.Render("templates")
	}
	count := styles.Header.Render(fmt.Sprintf(" %d entries", len(m.nav.Matches)))
	return commands + templates + count
}

// buildItemLine renders one list row: digit shortcut, kind glyph, padded
// alias, description.
func (m *Model) buildItemLine(e *entry.Entry, idx int, aliasW int) styledLine {
	indicator := "▌"
	lineStyle := styles.Item
	indicatorStyle := styles.ItemIndicator
	if idx == m.nav.Cursor {
		indicatorStyle = styles.SelectedItemIndicator
		lineStyle = styles.SelectedItem
	}
	digit := "  "
	if m.nav.Query == "" {
		if n := idx - m.nav.ViewportOffset + 1; n >= 1 && n <= 9 {
			digit = fmt.Sprintf("%d ", n)
		}
	}
	alias := e.Alias
	if pad := aliasW - runewidth.StringWidth(alias); pad > 0 {
		alias += strings.Repeat(" ", pad)
	}
	text := indicator + " " + digit + e.Kind.Glyph() + " " + alias + "  " + e.Description
	if m.width > 0 {
		if pad := m.width - len([]rune(text)); pad > 0 {
			text += strings.Repeat(" ", pad)
		}
	}
	return styledLine{
		text:          text,
		style:         lineStyle,
		prefixStyle:   indicatorStyle,
		highlightFrom: 1, // just the ▌ character
	}
}

func aliasColumnWidth(matches []search.Match) int {
	w := 0
	for _, match := range matches {
		if aw := runewidth.StringWidth(match.Entry.Alias); aw > w {
			w = aw
		}
	}
	if w > maxAliasColumn {
		w = maxAliasColumn
	}
	return w
}

// previewLines builds the detail block for the selected entry.
func (m *Model) previewLines(e *entry.Entry) []styledLine {
	lines := make([]styledLine, 0, 8)
	lines = append(lines, styledLine{text: fmt.Sprintf("%s %s", e.Kind.Glyph(), e.Alias), style: styles.PreviewTitle})
	lines = append(lines, styledLine{text: "  " + e.Command, style: styles.PreviewBody})
	if notice := m.dangerNotice(e.Command); notice != "" {
		lines = append(lines, styledLine{text: "  " + notice, style: styles.Warning})
	}
	if e.Description != "" {
		lines = append(lines, styledLine{text: "  " + e.Description, style: styles.PreviewBody})
	}
	if len(e.Tags) > 0 {
		lines = append(lines, styledLine{text: "  tags: " + strings.Join(e.Tags, ", "), style: styles.PreviewLabel})
	}
	if names := e.PlaceholderNames(); len(names) > 0 {
		parts := make([]string, len(names))
		for i, name := range names {
			if def, ok := e.DefaultFor(name); ok && def != "" {
				parts[i] = fmt.Sprintf("{%s}=%s", name, def)
			} else {
				parts[i] = fmt.Sprintf("{%s}", name)
			}
		}
		lines = append(lines, styledLine{text: "  placeholders: " + strings.Join(parts, " "), style: styles.PreviewLabel})
	}
	if count := m.usage.Count(e.Alias); count > 0 {
		lines = append(lines, styledLine{text: fmt.Sprintf("  used %d times", count), style: styles.PreviewLabel})
	}
	return lines
}

func (m *Model) viewEntryForm() string {
	f := m.entryForm
	lines := []string{styles.FormTitle.Render(f.title), ""}
	for i := range f.inputs {
		label := f.fieldLabel(i)
		if i == f.focus {
			label = "> " + label
		} else {
			label = "  " + label
		}
		lines = append(lines, styles.FormLabel.Render(label))
		lines = append(lines, "  "+f.inputs[i].View())
	}
	if f.err != "" {
		lines = append(lines, "", styles.Error.Render(f.err))
	}
	lines = append(lines, "", styles.Footer.Render("enter next/save  tab move  esc cancel"))
	return strings.Join(lines, "\n")
}

func (m *Model) viewPlaceholderForm() string {
	f := m.placeholderForm
	title := fmt.Sprintf("%s: %s", f.entry.Alias, f.entry.Command)
	prompt := fmt.Sprintf("Value for {%s} (%d/%d)", f.current(), f.index+1, len(f.names))
	lines := []string{
		styles.FormTitle.Render(title),
		"",
		styles.FormLabel.Render(prompt),
		f.input.View(),
	}
	if f.err != "" {
		lines = append(lines, "", styles.Error.Render(f.err))
	}
	lines = append(lines, "", styles.Footer.Render("enter accept  esc cancel"))
	return strings.Join(lines, "\n")
}

// resultLines summarises the most recent execution. A dry run lists the
// resolved text and, for chains, the segment boundaries; warnings carried on
// the result are repeated so they outlive the confirm screen.
func (m *Model) resultLines() []styledLine {
	r := m.lastResult
	if r == nil {
		return nil
	}
	lines := make([]styledLine, 0, len(r.Segments)+2)
	if r.DryRun {
		lines = append(lines, styledLine{text: "Dry run: " + r.Command, style: styles.PreviewTitle})
		if len(r.Segments) > 1 {
			for i, segment := range r.Segments {
				lines = append(lines, styledLine{text: fmt.Sprintf("  %d. %s", i+1, segment), style: styles.PreviewBody})
			}
		}
	}
	for _, warning := range r.Warnings {
		lines = append(lines, styledLine{text: "  ⚠ " + warning, style: styles.Warning})
	}
	return lines
}

func (m *Model) viewConfirmDanger() string {
	lines := []string{
		styles.FormTitle.Render(fmt.Sprintf("Run %s?", m.pendingEntry.Alias)),
		"",
		styles.PreviewBody.Render("  " + m.pendingCommand),
	}
	for _, warning := range m.pendingWarnings {
		lines = append(lines, styles.Warning.Render("  ⚠ "+warning))
	}
	lines = append(lines, "", styles.Footer.Render("y/enter run  any other key cancel"))
	return strings.Join(lines, "\n")
}

func (m *Model) viewConfirmRemove() string {
	lines := []string{
		styles.FormTitle.Render(fmt.Sprintf("Remove %s?", m.confirmTarget)),
		"",
		styles.Footer.Render("y/enter remove  any other key cancel"),
	}
	return strings.Join(lines, "\n")
}

func (m *Model) maxVisibleItems() int {
	if m.height <= 0 {
		return -1
	}
	used := 3 // mode header + bottom bar (error/status + filter prompt)
	if result := m.resultLines(); len(result) > 0 {
		used += 1 + len(result)
	}
	if info := m.currentInfo(); info != "" {
		used += 2
	}
	if m.showFooter {
		used += 2
	}
	if m.nav.Preview {
		if selected, ok := m.nav.Selected(); ok {
			used += 1 + len(m.previewLines(selected))
		}
	}
	remain := m.height - used
	if remain < 1 {
		return 1
	}
	return remain
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			w := lipgloss.Width(text)
			if w > width {
				text = truncate.StringWithTail(text, uint(width-1), "…")
			}
		} else {
			text = truncateText(text, width)
		}
		result[i] = styledLine{
			text:          text,
			style:         line.style,
			prefixStyle:   line.prefixStyle,
			highlightFrom: line.highlightFrom,
			raw:           line.raw,
		}
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			out[i] = text
			continue
		}
		runes := []rune(text)
		if line.highlightFrom > 0 && line.highlightFrom < len(runes) {
			head := string(runes[:line.highlightFrom])
			tail := string(runes[line.highlightFrom:])
			if line.prefixStyle != nil {
				head = line.prefixStyle.Render(head)
			}
			if line.style != nil {
				tail = line.style.Render(tail)
			}
			text = head + tail
		} else if line.style != nil {
			text = line.style.Render(text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width == 1 {
		return string(runes[:1])
	}
	return string(runes[:width-1]) + "…"
}
