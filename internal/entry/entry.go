package entry

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Kind identifies how an entry's command text is interpreted at execution
// time. The set is closed: every consumer switches over all three cases.
type Kind string

const (
	// Link runs as a single process invocation.
	Link Kind = "link"
	// Chain is a sequence of `&&`-joined segments executed in order with
	// short-circuit on the first failure.
	Chain Kind = "chain"
	// Template contains {name} placeholders resolved interactively before
	// execution.
	Template Kind = "template"
)

// Valid reports whether k is one of the three known kinds.
func (k Kind) Valid() bool {
	switch k {
	case Link, Chain, Template:
		return true
	}
	return false
}

// Glyph returns the single-cell marker used when listing entries.
func (k Kind) Glyph() string {
	switch k {
	case Chain:
		return "⛓"
	case Template:
		return "◇"
	default:
		return "→"
	}
}

// Placeholder is one {name} marker in a template command, optionally carrying
// a default value offered when the user submits an empty response.
type Placeholder struct {
	Name    string `json:"name"`
	Default string `json:"default,omitempty"`
}

// Entry is a stored, user-named command.
type Entry struct {
	Alias        string        `json:"alias"`
	Kind         Kind          `json:"kind"`
	Command      string        `json:"command"`
	Description  string        `json:"description,omitempty"`
	Tags         []string      `json:"tags"`
	Placeholders []Placeholder `json:"placeholders,omitempty"`
	Created      time.Time     `json:"created"`
}

var aliasPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// ValidateAlias checks the alias charset shared by entries and templates.
func ValidateAlias(alias string) error {
	alias = strings.TrimSpace(alias)
	if alias == "" {
		return fmt.Errorf("alias must not be empty")
	}
	if !aliasPattern.MatchString(alias) {
		return fmt.Errorf("alias %q may only contain letters, numbers, hyphens and underscores", alias)
	}
	return nil
}

// Validate checks the invariants a stored entry must satisfy.
func (e *Entry) Validate() error {
	if err := ValidateAlias(e.Alias); err != nil {
		return err
	}
	if !e.Kind.Valid() {
		return fmt.Errorf("entry %q has unknown kind %q", e.Alias, e.Kind)
	}
	if strings.TrimSpace(e.Command) == "" {
		return fmt.Errorf("entry %q has an empty command", e.Alias)
	}
	return nil
}

// SearchFields returns the searchable fields in match-priority order:
// alias, description, tags, command.
func (e *Entry) SearchFields() []string {
	fields := make([]string, 0, 3+len(e.Tags))
	fields = append(fields, e.Alias, e.Description)
	fields = append(fields, e.Tags...)
	fields = append(fields, e.Command)
	return fields
}

// PlaceholderNames returns the placeholder names in declaration order.
func (e *Entry) PlaceholderNames() []string {
	names := make([]string, len(e.Placeholders))
	for i, p := range e.Placeholders {
		names[i] = p.Name
	}
	return names
}

// DefaultFor looks up the default value for a declared placeholder name.
// The second return reports declaration, not presence of a default.
func (e *Entry) DefaultFor(name string) (string, bool) {
	for _, p := range e.Placeholders {
		if p.Name == name {
			return p.Default, true
		}
	}
	return "", false
}

// Clone returns a deep copy so callers can mutate drafts without touching
// the stored entry.
func (e *Entry) Clone() *Entry {
	dup := *e
	dup.Tags = append([]string(nil), e.Tags...)
	dup.Placeholders = append([]Placeholder(nil), e.Placeholders...)
	return &dup
}

// MatchesMode reports whether the entry belongs to the command class
// (links and chains) or the template class.
func (e *Entry) MatchesMode(templates bool) bool {
	if templates {
		return e.Kind == Template
	}
	return e.Kind == Link || e.Kind == Chain
}
