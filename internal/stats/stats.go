// Package stats tracks per-alias usage counts and last-used timestamps in a
// single JSON document. Stats are best-effort: a missing or unreadable file
// degrades to empty stats and save errors are reported, never fatal.
package stats

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"
)

const fileName = "stats.json"

// Stats aggregates usage data for stored entries.
type Stats struct {
	UsageCount map[string]int       `json:"usage_count"`
	LastUsed   map[string]time.Time `json:"last_used"`

	path string
}

// Load reads the stats document under dataDir, falling back to empty stats
// when the file is missing or unreadable.
func Load(dataDir string) *Stats {
	s := &Stats{
		UsageCount: make(map[string]int),
		LastUsed:   make(map[string]time.Time),
		path:       filepath.Join(dataDir, fileName),
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return s
	}
	var decoded Stats
	if err := json.Unmarshal(data, &decoded); err != nil {
		return s
	}
	if decoded.UsageCount != nil {
		s.UsageCount = decoded.UsageCount
	}
	if decoded.LastUsed != nil {
		s.LastUsed = decoded.LastUsed
	}
	return s
}

// Record notes one execution of alias.
func (s *Stats) Record(alias string) {
	s.UsageCount[alias]++
	s.LastUsed[alias] = time.Now().UTC()
}

// Count returns how often alias has been run.
func (s *Stats) Count(alias string) int {
	return s.UsageCount[alias]
}

// Forget drops all data for a removed alias.
func (s *Stats) Forget(alias string) {
	delete(s.UsageCount, alias)
	delete(s.LastUsed, alias)
}

// Save writes the document atomically via a temp file rename.
func (s *Stats) Save() error {
	if s.path == "" {
		return errors.New("stats: no path configured")
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
