// Package history persists the query history popup's entries (spec.md
// §3's HistoryEntry, §4.7's fuzzy-filtered popup): an append-only,
// deduplicated-on-load JSON log in the directory passed to Open (jiq's
// config directory, when opened by the TUI).
//
// Grounded on _examples/rcourtman-Pulse's internal/alerts/history.go:
// same shape (a JSON-encoded slice under a data directory, loaded once at
// startup, rewritten via a rename-based backup before each save so a
// failed write can't corrupt the existing file), simplified from that
// file's retry-with-backoff loop to a single backup-then-write-then-clean
// sequence since history loss here is a UX annoyance, not an alerting
// outage.
package history

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// Entry mirrors spec.md §3's HistoryEntry.
type Entry struct {
	Query      string    `json:"query"`
	Timestamp  time.Time `json:"timestamp"`
	UsageCount int       `json:"usage_count"`
}

const fileName = "history.json"
const backupSuffix = ".backup"

// Store owns the in-memory history log and its on-disk file.
type Store struct {
	path    string
	entries []Entry
}

// Open loads history.json from dir, deduplicating by query text (the most
// recent timestamp and summed usage count win). dir is created if it does
// not already exist. A missing or malformed file yields an empty Store,
// never an error, consistent with history being best-effort UX state.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	s := &Store{path: filepath.Join(dir, fileName)}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return s, nil
	}
	var raw []Entry
	if err := json.Unmarshal(data, &raw); err != nil {
		return s, nil
	}
	s.entries = dedupe(raw)
	return s, nil
}

func dedupe(raw []Entry) []Entry {
	byQuery := map[string]Entry{}
	for _, e := range raw {
		existing, ok := byQuery[e.Query]
		if !ok {
			byQuery[e.Query] = e
			continue
		}
		existing.UsageCount += e.UsageCount
		if e.Timestamp.After(existing.Timestamp) {
			existing.Timestamp = e.Timestamp
		}
		byQuery[e.Query] = existing
	}
	out := make([]Entry, 0, len(byQuery))
	for _, e := range byQuery {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	return out
}

// Record appends a query execution, bumping UsageCount and Timestamp if
// the query is already present rather than duplicating it.
func (s *Store) Record(query string, at time.Time) {
	query = strings.TrimSpace(query)
	if query == "" {
		return
	}
	for i := range s.entries {
		if s.entries[i].Query == query {
			s.entries[i].UsageCount++
			s.entries[i].Timestamp = at
			s.moveToFront(i)
			return
		}
	}
	s.entries = append([]Entry{{Query: query, Timestamp: at, UsageCount: 1}}, s.entries...)
}

func (s *Store) moveToFront(i int) {
	e := s.entries[i]
	s.entries = append(s.entries[:i], s.entries[i+1:]...)
	s.entries = append([]Entry{e}, s.entries...)
}

// All returns every entry, most recent first.
func (s *Store) All() []Entry {
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// FuzzyFilter returns entries whose query contains every rune of typed, in
// order but not necessarily contiguously, matching the popup's
// incremental-filter behavior (spec.md §4.7).
func (s *Store) FuzzyFilter(typed string) []Entry {
	if typed == "" {
		return s.All()
	}
	var out []Entry
	for _, e := range s.entries {
		if fuzzyMatch(e.Query, typed) {
			out = append(out, e)
		}
	}
	return out
}

func fuzzyMatch(text, pattern string) bool {
	textRunes := []rune(strings.ToLower(text))
	patternRunes := []rune(strings.ToLower(pattern))
	ti := 0
	for _, pr := range patternRunes {
		found := false
		for ; ti < len(textRunes); ti++ {
			if textRunes[ti] == pr {
				found = true
				ti++
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Save writes the current entries to disk, backing up the previous file
// first and restoring it if the write fails.
func (s *Store) Save() error {
	data, err := json.Marshal(s.entries)
	if err != nil {
		return err
	}

	backupPath := s.path + backupSuffix
	backedUp := false
	if _, err := os.Stat(s.path); err == nil {
		if err := os.Rename(s.path, backupPath); err == nil {
			backedUp = true
		}
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		if backedUp {
			os.Rename(backupPath, s.path)
		}
		return err
	}
	if backedUp {
		os.Remove(backupPath)
	}
	return nil
}
