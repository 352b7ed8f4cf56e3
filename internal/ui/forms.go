package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/qlsh/quick-launcher/internal/entry"
	"github.com/qlsh/quick-launcher/internal/logging/events"
	"github.com/qlsh/quick-launcher/internal/template"
)

const (
	fieldAlias = iota
	fieldCommand
	fieldDescription
	fieldTags
	fieldCount
)

// entryForm collects the fields for a new or edited entry. The kind is never
// asked for: it is inferred from the command text and the active mode on add,
// and preserved on edit.
type entryForm struct {
	inputs    []textinput.Model
	focus     int
	editing   string // original alias when editing, "" when adding
	kind      entry.Kind
	templates bool // form opened from template mode
	err       string
	title     string
}

func newAddForm(templates bool) *entryForm {
	f := &entryForm{
		inputs:    buildEntryInputs(nil),
		templates: templates,
		title:     "New Entry",
	}
	f.inputs[f.focus].Focus()
	return f
}

func newEditForm(e *entry.Entry) *entryForm {
	f := &entryForm{
		inputs:  buildEntryInputs(e),
		editing: e.Alias,
		kind:    e.Kind,
		title:   fmt.Sprintf("Edit %s", e.Alias),
	}
	f.inputs[f.focus].Focus()
	return f
}

func buildEntryInputs(e *entry.Entry) []textinput.Model {
	inputs := make([]textinput.Model, fieldCount)

	alias := textinput.New()
	alias.Placeholder = "alias"
	alias.CharLimit = 64

	command := textinput.New()
	command.Placeholder = "command"
	command.CharLimit = 512

	description := textinput.New()
	description.Placeholder = "description (optional)"
	description.CharLimit = 128

	tags := textinput.New()
	tags.Placeholder = "tags, comma separated (optional)"
	tags.CharLimit = 128

	if e != nil {
		alias.SetValue(e.Alias)
		command.SetValue(e.Command)
		description.SetValue(e.Description)
		tags.SetValue(strings.Join(e.Tags, ", "))
	}

	inputs[fieldAlias] = alias
	inputs[fieldCommand] = command
	inputs[fieldDescription] = description
	inputs[fieldTags] = tags
	return inputs
}

func (f *entryForm) fieldLabel(idx int) string {
	switch idx {
	case fieldAlias:
		return "Alias"
	case fieldCommand:
		return "Command"
	case fieldDescription:
		return "Description"
	case fieldTags:
		return "Tags"
	}
	return ""
}

func (f *entryForm) setFocus(idx int) tea.Cmd {
	if idx < 0 {
		idx = fieldCount - 1
	}
	if idx >= fieldCount {
		idx = 0
	}
	for i := range f.inputs {
		f.inputs[i].Blur()
	}
	f.focus = idx
	return f.inputs[f.focus].Focus()
}

// Update drives the form. The returned booleans report submission and
// cancellation respectively.
func (f *entryForm) Update(msg tea.Msg) (tea.Cmd, bool, bool) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEsc:
			return nil, false, true
		case tea.KeyTab, tea.KeyDown:
			return f.setFocus(f.focus + 1), false, false
		case tea.KeyShiftTab, tea.KeyUp:
			return f.setFocus(f.focus - 1), false, false
		case tea.KeyEnter:
			if f.focus < fieldCount-1 {
				return f.setFocus(f.focus + 1), false, false
			}
			if err := f.validate(); err != "" {
				f.err = err
				return nil, false, false
			}
			f.err = ""
			return nil, true, false
		}
	}
	updated, cmd := f.inputs[f.focus].Update(msg)
	f.inputs[f.focus] = updated
	return cmd, false, false
}

func (f *entryForm) value(idx int) string {
	return strings.TrimSpace(f.inputs[idx].Value())
}

func (f *entryForm) validate() string {
	if err := entry.ValidateAlias(f.value(fieldAlias)); err != nil {
		return err.Error()
	}
	if f.value(fieldCommand) == "" {
		return "command must not be empty"
	}
	return ""
}

// Entry builds the resulting record.
func (f *entryForm) Entry() *entry.Entry {
	command := f.value(fieldCommand)
	kind := f.kind
	if f.editing == "" {
		kind = inferKind(command, f.templates)
	}
	var tags []string
	for _, tag := range strings.Split(f.value(fieldTags), ",") {
		if trimmed := strings.TrimSpace(tag); trimmed != "" {
			tags = append(tags, trimmed)
		}
	}
	return &entry.Entry{
		Alias:       f.value(fieldAlias),
		Kind:        kind,
		Command:     command,
		Description: f.value(fieldDescription),
		Tags:        tags,
	}
}

// inferKind decides the entry kind for a new record: templates come from
// template mode or placeholder markers, chains from the && operator.
func inferKind(command string, templates bool) entry.Kind {
	if templates || len(template.ExtractPlaceholders(command)) > 0 {
		return entry.Template
	}
	if strings.Contains(command, "&&") {
		return entry.Chain
	}
	return entry.Link
}

// placeholderForm prompts for one placeholder value at a time, in the order
// they appear in the command. An empty submission falls back to the declared
// default; with no default the same prompt is asked again.
type placeholderForm struct {
	entry  *entry.Entry
	names  []string
	values map[string]string
	index  int
	input  textinput.Model
	dryRun bool
	err    string
}

func newPlaceholderForm(e *entry.Entry, dryRun bool) *placeholderForm {
	f := &placeholderForm{
		entry:  e,
		names:  e.PlaceholderNames(),
		values: make(map[string]string),
		dryRun: dryRun,
	}
	f.input = textinput.New()
	f.input.CharLimit = 256
	f.input.Focus()
	f.preparePrompt()
	return f
}

func (f *placeholderForm) current() string {
	return f.names[f.index]
}

func (f *placeholderForm) preparePrompt() {
	name := f.current()
	f.input.SetValue("")
	if def, ok := f.entry.DefaultFor(name); ok && def != "" {
		f.input.Placeholder = fmt.Sprintf("%s (default: %s)", name, def)
	} else {
		f.input.Placeholder = name
	}
	events.Template.Prompt(f.entry.Alias, name)
}

func (f *placeholderForm) Update(msg tea.Msg) (tea.Cmd, bool, bool) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEsc:
			events.Template.Cancelled(f.entry.Alias)
			return nil, false, true
		case tea.KeyEnter:
			value := strings.TrimSpace(f.input.Value())
			name := f.current()
			if value == "" {
				def, ok := f.entry.DefaultFor(name)
				if !ok || def == "" {
					f.err = fmt.Sprintf("a value for {%s} is required", name)
					return nil, false, false
				}
				value = def
			}
			f.err = ""
			f.values[name] = value
			if f.index+1 < len(f.names) {
				f.index++
				f.preparePrompt()
				return nil, false, false
			}
			return nil, true, false
		}
	}
	updated, cmd := f.input.Update(msg)
	f.input = updated
	return cmd, false, false
}

// Resolve substitutes the collected values into the command.
func (f *placeholderForm) Resolve() (string, error) {
	resolved, err := template.Resolve(f.entry.Command, f.values)
	if err != nil {
		return "", err
	}
	events.Template.Resolved(f.entry.Alias, len(f.names))
	return resolved, nil
}

func (m *Model) startAddForm() {
	m.entryForm = newAddForm(m.nav.Mode.Templates())
	m.mode = ModeEntryForm
	m.errMsg = ""
	m.forceClearInfo()
}

func (m *Model) startEditForm() {
	selected, ok := m.nav.Selected()
	if !ok {
		return
	}
	m.entryForm = newEditForm(selected)
	m.mode = ModeEntryForm
	m.errMsg = ""
	m.forceClearInfo()
}

func (m *Model) startPlaceholderForm(e *entry.Entry, dryRun bool) {
	m.placeholderForm = newPlaceholderForm(e, dryRun)
	m.mode = ModePlaceholderForm
	m.errMsg = ""
	m.forceClearInfo()
}

// startDangerConfirm interposes a confirmation before a command that matched
// a destructive pattern. The match is advisory; the user decides.
func (m *Model) startDangerConfirm(e *entry.Entry, command string, warnings []string) {
	m.pendingEntry = e
	m.pendingCommand = command
	m.pendingWarnings = warnings
	m.mode = ModeConfirmDanger
	m.errMsg = ""
	m.forceClearInfo()
}

func (m *Model) startRemoveConfirm() {
	selected, ok := m.nav.Selected()
	if !ok {
		return
	}
	m.confirmTarget = selected.Alias
	m.mode = ModeConfirmRemove
	m.errMsg = ""
	m.forceClearInfo()
}

func (m *Model) handleEntryForm(msg tea.Msg) (bool, tea.Cmd) {
	if m.entryForm == nil {
		return false, nil
	}
	cmd, done, cancel := m.entryForm.Update(msg)
	if cancel {
		m.entryForm = nil
		m.mode = ModeBrowse
		return true, cmd
	}
	if done {
		form := m.entryForm
		m.entryForm = nil
		m.mode = ModeBrowse
		record := form.Entry()
		if orig, ok := m.entries[form.editing]; form.editing != "" && ok {
			// edits replace form fields only; placeholder defaults and the
			// creation timestamp carry over from the stored record
			record.Placeholders = append([]entry.Placeholder(nil), orig.Placeholders...)
			record.Created = orig.Created
		}
		if form.editing == "" {
			if _, exists := m.entries[record.Alias]; exists {
				m.errMsg = fmt.Sprintf("alias %s already exists", record.Alias)
				return true, cmd
			}
		} else if record.Alias != form.editing {
			if _, exists := m.entries[record.Alias]; exists {
				m.errMsg = fmt.Sprintf("alias %s already exists", record.Alias)
				return true, cmd
			}
		}
		if err := m.store.Put(record); err != nil {
			m.errMsg = err.Error()
			return true, cmd
		}
		if form.editing != "" && form.editing != record.Alias {
			if err := m.store.Delete(form.editing); err != nil {
				m.errMsg = err.Error()
			}
			delete(m.entries, form.editing)
			m.usage.Forget(form.editing)
		}
		m.entries[record.Alias] = record
		m.refreshEntries()
		if form.editing == "" {
			m.setInfo(fmt.Sprintf("Added %s", record.Alias))
		} else {
			m.setInfo(fmt.Sprintf("Updated %s", record.Alias))
		}
		return true, cmd
	}
	return true, cmd
}

func (m *Model) handlePlaceholderForm(msg tea.Msg) (bool, tea.Cmd) {
	if m.placeholderForm == nil {
		return false, nil
	}
	cmd, done, cancel := m.placeholderForm.Update(msg)
	if cancel {
		m.placeholderForm = nil
		m.mode = ModeBrowse
		return true, cmd
	}
	if done {
		form := m.placeholderForm
		m.placeholderForm = nil
		m.mode = ModeBrowse
		resolved, err := form.Resolve()
		if err != nil {
			m.errMsg = err.Error()
			return true, cmd
		}
		return true, m.runEntry(form.entry, resolved, form.dryRun)
	}
	return true, cmd
}

func (m *Model) handleConfirmDanger(msg tea.Msg) (bool, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return true, nil
	}
	e, command := m.pendingEntry, m.pendingCommand
	m.pendingEntry = nil
	m.pendingCommand = ""
	m.pendingWarnings = nil
	m.mode = ModeBrowse
	if e == nil {
		return true, nil
	}
	switch keyMsg.String() {
	case "y", "Y", "enter":
		return true, m.executeEntry(e, command)
	default:
		m.setInfo("Cancelled")
		return true, nil
	}
}

func (m *Model) handleConfirmRemove(msg tea.Msg) (bool, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return true, nil
	}
	switch keyMsg.String() {
	case "y", "Y", "enter":
		alias := m.confirmTarget
		m.confirmTarget = ""
		m.mode = ModeBrowse
		if err := m.store.Delete(alias); err != nil {
			m.errMsg = err.Error()
			return true, nil
		}
		delete(m.entries, alias)
		m.usage.Forget(alias)
		m.refreshEntries()
		m.setInfo(fmt.Sprintf("Removed %s", alias))
		return true, nil
	default:
		m.confirmTarget = ""
		m.mode = ModeBrowse
		return true, nil
	}
}
