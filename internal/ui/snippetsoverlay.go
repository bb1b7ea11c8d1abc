package ui

import "github.com/jiqtui/jiq/internal/snippets"

// SnippetMode distinguishes the popup's browse list from its create/edit
// name-entry form (spec.md §4.7).
type SnippetMode int

const (
	SnippetBrowse SnippetMode = iota
	SnippetCreate
	SnippetEdit
)

// SnippetsOverlay is the popup's view state over an internal/snippets.Store.
type SnippetsOverlay struct {
	Visible  bool
	Mode     SnippetMode
	Selected int
	// NameInput holds the in-progress name while creating or renaming.
	NameInput string
	// editID is the snippet being edited in SnippetEdit mode.
	editID string

	list []snippets.Snippet
}

// Open shows the popup in browse mode over the current list.
func (s *SnippetsOverlay) Open(store *snippets.Store) {
	s.Visible = true
	s.Mode = SnippetBrowse
	s.Selected = 0
	s.list = store.All()
}

// Close hides the popup, discarding any in-progress name entry.
func (s *SnippetsOverlay) Close() {
	s.Visible = false
	s.Mode = SnippetBrowse
	s.NameInput = ""
	s.editID = ""
}

// List returns the current browse list.
func (s *SnippetsOverlay) List() []snippets.Snippet {
	return s.list
}

// SelectNext/SelectPrev move the browse highlight with saturating bounds.
func (s *SnippetsOverlay) SelectNext() {
	if s.Selected < len(s.list)-1 {
		s.Selected++
	}
}

func (s *SnippetsOverlay) SelectPrev() {
	if s.Selected > 0 {
		s.Selected--
	}
}

// Selected snippet for Enter-to-load, if any.
func (s *SnippetsOverlay) SelectedSnippet() (snippets.Snippet, bool) {
	if s.Selected < 0 || s.Selected >= len(s.list) {
		return snippets.Snippet{}, false
	}
	return s.list[s.Selected], true
}

// BeginCreate switches to the name-entry form for a brand new snippet.
func (s *SnippetsOverlay) BeginCreate() {
	s.Mode = SnippetCreate
	s.NameInput = ""
	s.editID = ""
}

// BeginEdit switches to the name-entry form pre-filled with an existing
// snippet's name, so Enter renames-and-updates it in place.
func (s *SnippetsOverlay) BeginEdit(sn snippets.Snippet) {
	s.Mode = SnippetEdit
	s.NameInput = sn.Name
	s.editID = sn.ID
}

// TypeRune/Backspace edit NameInput while in a create/edit form.
func (s *SnippetsOverlay) TypeRune(r rune) {
	s.NameInput += string(r)
}

func (s *SnippetsOverlay) Backspace() {
	runes := []rune(s.NameInput)
	if len(runes) == 0 {
		return
	}
	s.NameInput = string(runes[:len(runes)-1])
}

// Confirm commits the pending create/edit against currentQuery, persists
// the store, refreshes the browse list, and returns to browse mode. It is
// a no-op (returns false) if NameInput is empty.
func (s *SnippetsOverlay) Confirm(store *snippets.Store, currentQuery string) bool {
	if s.NameInput == "" {
		return false
	}
	switch s.Mode {
	case SnippetCreate:
		store.Create(s.NameInput, currentQuery, "")
	case SnippetEdit:
		store.Update(s.editID, currentQuery, "")
	default:
		return false
	}
	_ = store.Save()
	s.list = store.All()
	s.Mode = SnippetBrowse
	s.NameInput = ""
	s.editID = ""
	return true
}

// DeleteSelected removes the highlighted snippet and persists the store.
func (s *SnippetsOverlay) DeleteSelected(store *snippets.Store) bool {
	sn, ok := s.SelectedSnippet()
	if !ok {
		return false
	}
	if !store.Delete(sn.ID) {
		return false
	}
	_ = store.Save()
	s.list = store.All()
	if s.Selected >= len(s.list) && s.Selected > 0 {
		s.Selected--
	}
	return true
}
