// Package snippets persists named, reusable queries (spec.md §3's Snippet
// entity, §4.7's snippet popup CRUD) as a single TOML file under the
// user's config directory, written atomically via a temp-file-then-rename
// so a crash mid-write never corrupts the existing file.
package snippets

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"
)

// Snippet mirrors spec.md §3's Snippet entity.
type Snippet struct {
	ID          string `toml:"id"`
	Name        string `toml:"name"`
	Query       string `toml:"query"`
	Description string `toml:"description,omitempty"`
}

type document struct {
	Snippets []Snippet `toml:"snippet"`
}

const fileName = "snippets.toml"

// Store owns the in-memory snippet list and its on-disk file.
type Store struct {
	path string
	list []Snippet
}

// Open loads snippets.toml from dir, creating dir if needed. A missing or
// malformed file yields an empty, usable Store rather than an error.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	s := &Store{path: filepath.Join(dir, fileName)}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return s, nil
	}
	var doc document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return s, nil
	}
	s.list = doc.Snippets
	return s, nil
}

// All returns every snippet, sorted by name.
func (s *Store) All() []Snippet {
	out := make([]Snippet, len(s.list))
	copy(out, s.list)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Get returns the snippet with the given id.
func (s *Store) Get(id string) (Snippet, bool) {
	for _, sn := range s.list {
		if sn.ID == id {
			return sn, true
		}
	}
	return Snippet{}, false
}

// Create adds a new snippet with a fresh id and returns it.
func (s *Store) Create(name, query, description string) Snippet {
	sn := Snippet{ID: uuid.NewString(), Name: name, Query: query, Description: description}
	s.list = append(s.list, sn)
	return sn
}

// Update replaces the query and the description of an existing snippet
// ("update from current query"); the name is left unchanged. Returns
// false if id is unknown.
func (s *Store) Update(id, query, description string) bool {
	for i := range s.list {
		if s.list[i].ID == id {
			s.list[i].Query = query
			s.list[i].Description = description
			return true
		}
	}
	return false
}

// Delete removes the snippet with id, returning false if it was not found.
func (s *Store) Delete(id string) bool {
	for i, sn := range s.list {
		if sn.ID == id {
			s.list = append(s.list[:i], s.list[i+1:]...)
			return true
		}
	}
	return false
}

// Save atomically rewrites the snippets file: write to a temp file in the
// same directory, then rename over the original so readers never observe
// a partial write.
func (s *Store) Save() error {
	data, err := toml.Marshal(document{Snippets: s.list})
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".snippets-*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("rename snippet file into place: %w", err)
	}
	return nil
}
