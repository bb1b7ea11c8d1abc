package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jiqtui/jiq/internal/ai"
	"github.com/jiqtui/jiq/internal/editor"
	"github.com/jiqtui/jiq/internal/search"
)

// onKey implements spec.md §4.1 step 3's routing: global keys first, then
// overlay precedence (help > snippets > search > history/autocomplete >
// input/results), matching the "consumed: bool short-circuit" pattern
// spec.md §9 recommends for shared UI state.
func (m *Model) onKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if cmd, handled := m.handleGlobalKey(msg); handled {
		return m, cmd
	}

	switch {
	case m.help.Visible:
		m.handleHelpKey(msg)
	case m.snippetsOv.Visible:
		m.handleSnippetsKey(msg)
	case m.searchS.Phase != search.Hidden:
		m.handleSearchKey(msg)
	case m.historyOv.Visible:
		m.handleHistoryKey(msg)
	case m.autocomplete.Visible:
		m.handleAutocompleteKey(msg)
	default:
		m.handleMainKey(msg)
	}

	m.recomputeAutocomplete()
	m.recomputeTooltip()
	return m, nil
}

// handleGlobalKey processes keys that apply regardless of overlay state
// (spec.md §4.1: "Certain keys are global regardless of overlays").
func (m *Model) handleGlobalKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		m.ExitAction = ExitSilent
		return tea.Quit, true
	case "ctrl+q":
		m.quitting = true
		m.ExitAction = ExitPrintQuery
		m.ExitText = m.editorBuf.Text()
		return tea.Quit, true
	}
	return nil, false
}

func (m *Model) handleHelpKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "?", "f1":
		m.help.Close()
	case "tab", "right", "l":
		m.help.NextTab()
	case "shift+tab", "left", "h":
		m.help.PrevTab()
	case "down", "j":
		m.help.ScrollDown()
	case "up", "k":
		m.help.ScrollUp()
	case "esc":
		m.help.Close()
	case "1":
		m.help.JumpTab(1)
	case "2":
		m.help.JumpTab(2)
	case "3":
		m.help.JumpTab(3)
	case "4":
		m.help.JumpTab(4)
	case "5":
		m.help.JumpTab(5)
	case "6":
		m.help.JumpTab(6)
	case "7":
		m.help.JumpTab(7)
	}
}

func (m *Model) handleSnippetsKey(msg tea.KeyMsg) {
	if m.snippetsOv.Mode != SnippetBrowse {
		switch msg.Type {
		case tea.KeyEnter:
			m.snippetsOv.Confirm(m.snippetsStore, m.editorBuf.Text())
		case tea.KeyEsc:
			m.snippetsOv.Mode = SnippetBrowse
		case tea.KeyBackspace:
			m.snippetsOv.Backspace()
		case tea.KeyRunes:
			for _, r := range msg.Runes {
				m.snippetsOv.TypeRune(r)
			}
		}
		return
	}

	switch msg.String() {
	case "esc":
		m.snippetsOv.Close()
	case "down", "j":
		m.snippetsOv.SelectNext()
	case "up", "k":
		m.snippetsOv.SelectPrev()
	case "enter", "tab":
		if sn, ok := m.snippetsOv.SelectedSnippet(); ok {
			m.applySuggestionText(sn.Query)
			m.snippetsOv.Close()
		}
	case "n":
		m.snippetsOv.BeginCreate()
	case "e":
		if sn, ok := m.snippetsOv.SelectedSnippet(); ok {
			m.snippetsOv.BeginEdit(sn)
		}
	case "d":
		m.snippetsOv.DeleteSelected(m.snippetsStore)
	case "u":
		if sn, ok := m.snippetsOv.SelectedSnippet(); ok {
			m.snippetsStore.Update(sn.ID, m.editorBuf.Text(), sn.Description)
			_ = m.snippetsStore.Save()
			m.snippetsOv.Open(m.snippetsStore)
		}
	}
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyEsc:
		m.searchS.Close()
		return
	case tea.KeyEnter:
		m.searchS.Confirm()
		return
	}

	if !m.searchEditing() {
		switch msg.String() {
		case "n":
			m.searchS.NextMatch()
		case "N":
			m.searchS.PrevMatch()
		case "ctrl+f", "/":
			m.searchS.Open()
		}
		return
	}

	switch msg.Type {
	case tea.KeyBackspace:
		runes := []rune(m.searchS.Query)
		if len(runes) > 0 {
			text, _ := m.queryState.DisplayResult()
			m.searchS.SetQuery(string(runes[:len(runes)-1]), text)
		}
	case tea.KeyRunes:
		text, _ := m.queryState.DisplayResult()
		m.searchS.SetQuery(m.searchS.Query+string(msg.Runes), text)
	}
}

func (m *Model) searchEditing() bool {
	return m.searchS.Phase == search.Editing
}

func (m *Model) handleHistoryKey(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyEsc:
		m.historyOv.Close()
		return
	case tea.KeyEnter, tea.KeyTab:
		if e, ok := m.historyOv.SelectedEntry(); ok {
			m.applySuggestionText(e.Query)
		}
		m.historyOv.Close()
		return
	case tea.KeyBackspace:
		m.historyOv.Backspace(m.historyStore)
		return
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			m.historyOv.TypeRune(m.historyStore, r)
		}
		return
	}
	switch msg.String() {
	case "down":
		m.historyOv.SelectNext()
	case "up":
		m.historyOv.SelectPrev()
	}
}

func (m *Model) handleAutocompleteKey(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyTab:
		if sug, ok := m.autocomplete.Current(); ok {
			m.acceptAutocomplete(sug.Text)
		}
		return
	case tea.KeyEsc:
		m.autocomplete.Dismiss()
		return
	case tea.KeyDown:
		m.autocomplete.SelectNext()
		return
	case tea.KeyUp:
		m.autocomplete.SelectPrev()
		return
	}
	m.handleMainKey(msg)
}

// acceptAutocomplete replaces the field-path segment currently being
// completed with suggestion, rather than the whole query (autocomplete
// only ever proposes the next path segment, unlike a full AI/history/
// snippet suggestion which replaces the entire query text).
func (m *Model) acceptAutocomplete(suggestionText string) {
	text := m.editorBuf.Text()
	cursor := m.editorBuf.Cursor()
	path, _ := splitPathPrefix(text, cursor)
	newText := path + suggestionText
	m.editorBuf.SetText(newText)
	m.autocomplete.Dismiss()
	m.debouncer.Bump(time.Now())
}

func (m *Model) handleMainKey(msg tea.KeyMsg) {
	if m.handleAIKey(msg) {
		return
	}

	switch msg.String() {
	case "ctrl+a":
		if !m.cfg.AI.Enabled {
			m.notify.Show("AI suggestions disabled for this session (--no-ai)", NotifyWarning, time.Now())
			return
		}
		m.aiState.Toggle()
		return
	case "ctrl+e":
		m.errorOverlayVisible = !m.errorOverlayVisible
		return
	case "ctrl+f", "/":
		if m.editorBuf.Mode() != editor.Insert {
			m.searchS.Open()
			return
		}
	case "?", "f1":
		m.help.Toggle(m.focus)
		return
	case "ctrl+y":
		m.CopyResult()
		return
	case "q":
		if m.editorBuf.Mode() != editor.Insert {
			m.quitting = true
			m.ExitAction = ExitSilent
			return
		}
	case "enter":
		m.quitting = true
		m.ExitAction = ExitPrintResult
		if text, ok := m.queryState.DisplayResult(); ok {
			m.ExitText = text
		}
		return
	case "ctrl+h":
		m.historyOv.Open(m.historyStore)
		return
	case "ctrl+t":
		m.snippetsOv.Open(m.snippetsStore)
		return
	case "esc":
		if m.editorBuf.Mode() == editor.Insert {
			m.editorBuf.EnterNormal()
		}
		return
	}

	m.handleEditorKey(msg)
}

// handleAIKey consumes suggestion-selection keys while the AI popup is
// showing structured suggestions (spec.md §4.3's "Selection and
// application"), returning true if it handled the key.
func (m *Model) handleAIKey(msg tea.KeyMsg) bool {
	if m.aiState.Visibility != ai.Showing {
		return false
	}
	switch msg.String() {
	case "alt+1", "alt+2", "alt+3", "alt+4", "alt+5":
		idx := int(msg.String()[len(msg.String())-1] - '1')
		if sug, ok := m.aiState.SelectDirect(idx); ok {
			m.applySuggestionText(sug.Query)
		}
		return true
	case "alt+down", "alt+j":
		m.aiState.SelectNext()
		return true
	case "alt+up", "alt+k":
		m.aiState.SelectPrev()
		return true
	}
	return false
}

func (m *Model) handleEditorKey(msg tea.KeyMsg) {
	buf := m.editorBuf

	if buf.Mode() == editor.Insert {
		switch msg.Type {
		case tea.KeyEsc:
			buf.EnterNormal()
		case tea.KeyBackspace:
			buf.Backspace()
			m.debouncer.Bump(time.Now())
		case tea.KeyDelete:
			buf.Delete()
			m.debouncer.Bump(time.Now())
		case tea.KeyLeft:
			buf.MoveLeft()
		case tea.KeyRight:
			buf.MoveRight()
		case tea.KeyRunes:
			for _, r := range msg.Runes {
				buf.InsertRune(r)
			}
			m.debouncer.Bump(time.Now())
		case tea.KeySpace:
			buf.InsertRune(' ')
			m.debouncer.Bump(time.Now())
		}
		return
	}

	// Normal/Operator/CharSearch/TextObject modes.
	switch msg.Type {
	case tea.KeyCtrlR:
		buf.Redo()
		return
	case tea.KeyLeft:
		buf.MoveLeft()
		return
	case tea.KeyRight:
		buf.MoveRight()
		return
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			if feedNormalKey(buf, &m.normalPending, r) {
				m.debouncer.Bump(time.Now())
			}
		}
	}
}
