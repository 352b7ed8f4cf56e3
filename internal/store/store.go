// Package store persists launcher entries as one JSON record per alias in a
// diskv-backed directory. The store is the only shared mutable resource in
// the launcher: it is loaded once at startup and rewritten record-by-record
// after each mutation. Unreadable records are skipped with a surfaced
// warning, never a crash.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/peterbourgon/diskv/v3"

	"github.com/qlsh/quick-launcher/internal/entry"
	"github.com/qlsh/quick-launcher/internal/logging/events"
	"github.com/qlsh/quick-launcher/internal/template"
)

const entriesDir = "entries"

// Store reads and writes Entry records keyed by alias.
type Store struct {
	d        *diskv.Diskv
	basePath string
}

// Open prepares a store rooted at dataDir, creating directories as needed.
func Open(dataDir string) (*Store, error) {
	basePath := filepath.Join(dataDir, entriesDir)
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	d := diskv.New(diskv.Options{
		BasePath:     basePath,
		Transform:    func(string) []string { return nil },
		CacheSizeMax: 1024 * 1024, // 1MB
	})
	return &Store{d: d, basePath: basePath}, nil
}

// LoadAll reads every record. Corrupt or invalid records are skipped and
// reported as warnings so the launcher can keep running with what loaded.
func (s *Store) LoadAll() (map[string]*entry.Entry, []string) {
	entries := make(map[string]*entry.Entry)
	var warnings []string
	for key := range s.d.Keys(nil) {
		e, err := s.read(key)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("skipping %s: %v", key, err))
			events.Store.Corrupt(key, err)
			continue
		}
		entries[e.Alias] = e
	}
	events.Store.Loaded(len(entries), len(warnings))
	return entries, warnings
}

func (s *Store) read(key string) (*entry.Entry, error) {
	data, err := s.d.Read(key)
	if err != nil {
		return nil, err
	}
	var e entry.Entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	if e.Alias == "" {
		e.Alias = key
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return &e, nil
}

// Put validates and writes one entry. For templates the placeholder list is
// recomputed from the command text so it always equals the set of {name}
// markers; defaults survive by name.
func (s *Store) Put(e *entry.Entry) error {
	if err := e.Validate(); err != nil {
		return err
	}
	record := e.Clone()
	if record.Kind == entry.Template {
		record.Placeholders = recomputePlaceholders(record)
	} else {
		record.Placeholders = nil
	}
	if record.Created.IsZero() {
		record.Created = time.Now().UTC()
	}
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	if err := s.d.Write(record.Alias, data); err != nil {
		return fmt.Errorf("store: write %s: %w", record.Alias, err)
	}
	*e = *record
	events.Store.Saved(record.Alias)
	return nil
}

// Delete removes the record for alias. Missing records are not an error.
func (s *Store) Delete(alias string) error {
	if !s.d.Has(alias) {
		return nil
	}
	if err := s.d.Erase(alias); err != nil {
		return fmt.Errorf("store: erase %s: %w", alias, err)
	}
	events.Store.Removed(alias)
	return nil
}

// SaveAll rewrites the whole document: every given entry is written and any
// record absent from the map is erased. Used by import-style operations.
func (s *Store) SaveAll(entries map[string]*entry.Entry) error {
	keep := make(map[string]struct{}, len(entries))
	aliases := make([]string, 0, len(entries))
	for alias := range entries {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	for _, alias := range aliases {
		if err := s.Put(entries[alias]); err != nil {
			return err
		}
		keep[alias] = struct{}{}
	}
	for key := range s.d.Keys(nil) {
		if _, ok := keep[key]; !ok {
			if err := s.Delete(key); err != nil {
				return err
			}
		}
	}
	return nil
}

func recomputePlaceholders(e *entry.Entry) []entry.Placeholder {
	names := template.ExtractPlaceholders(e.Command)
	if len(names) == 0 {
		return nil
	}
	defaults := make(map[string]string, len(e.Placeholders))
	for _, p := range e.Placeholders {
		if p.Default != "" {
			defaults[p.Name] = p.Default
		}
	}
	placeholders := make([]entry.Placeholder, len(names))
	for i, name := range names {
		placeholders[i] = entry.Placeholder{Name: name, Default: defaults[name]}
	}
	return placeholders
}
