package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jiqtui/jiq/internal/ai"
	"github.com/jiqtui/jiq/internal/clipboard"
	"github.com/jiqtui/jiq/internal/config"
	"github.com/jiqtui/jiq/internal/editor"
	"github.com/jiqtui/jiq/internal/history"
	"github.com/jiqtui/jiq/internal/jsonmodel"
	"github.com/jiqtui/jiq/internal/logging"
	"github.com/jiqtui/jiq/internal/prompt"
	"github.com/jiqtui/jiq/internal/query"
	"github.com/jiqtui/jiq/internal/search"
	"github.com/jiqtui/jiq/internal/snippets"
	"github.com/jiqtui/jiq/internal/stats"
)

// ExitAction distinguishes Model.Run's three terminal behaviors (spec.md
// §6's CLI exit contract): silent quit, print-the-query, print-the-result.
type ExitAction int

const (
	ExitSilent ExitAction = iota
	ExitPrintQuery
	ExitPrintResult
)

// Model is the top-level bubbletea program: the single owner of every
// piece of UI state, wiring the query and AI pipelines together per
// spec.md §4.1. It follows diff_model.go's shape (Model holds all
// state, Update dispatches by message type, View composes lipgloss
// blocks) generalized from a one-shot diff review to jiq's long-running
// loop with two background pipelines instead of one. The input JSON is
// loaded before the Model is built; no file-loader events reach Update.
type Model struct {
	cfg    config.Config
	logger *logging.Logger

	input      []byte
	editorBuf  *editor.Buffer
	tokens     query.TokenSource
	debouncer  *query.Debouncer
	executor   *query.Executor
	queryState query.State

	analyzer    *jsonmodel.Analyzer
	tooltipText string
	statsS      stats.State
	clipboard   clipboard.Writer

	aiState    *ai.State
	aiWorker   *ai.Worker
	aiOut      chan ai.Response
	aiQueryTag string // hash of the query text the last AI request was for

	autocomplete AutocompleteState
	help         HelpState
	historyOv    HistoryOverlay
	snippetsOv   SnippetsOverlay
	searchS      *search.State
	notify       NotificationState

	historyStore  *history.Store
	snippetsStore *snippets.Store

	focus Focus

	errorOverlayVisible bool

	width, height int
	layout        LayoutRegions

	normalPending normalPending

	quitting   bool
	ExitAction ExitAction
	ExitText   string

	aiRespChan <-chan ai.Response
}

// NewModel constructs a Model ready to run, with input already validated
// JSON (spec.md §6: "validated before entering the TUI").
func NewModel(cfg config.Config, logger *logging.Logger, input []byte, binary string) *Model {
	analyzer := jsonmodel.New()
	_ = analyzer.Analyze(input)

	m := &Model{
		cfg:           cfg,
		logger:        logger,
		input:         input,
		editorBuf:     editor.NewBuffer(),
		debouncer:     query.NewDebouncer(time.Duration(cfg.Debounce.WindowMS) * time.Millisecond),
		executor:      query.NewExecutor(binary),
		analyzer:      analyzer,
		clipboard:     clipboard.System{},
		aiState:       ai.NewState(),
		searchS:       search.New(),
		historyStore:  mustOpenHistory(),
		snippetsStore: mustOpenSnippets(),
		focus:         FocusInput,
	}

	if provider := ai.NewProvider(cfg); provider != nil {
		m.aiOut = make(chan ai.Response, 8)
		m.aiWorker = ai.NewWorker(provider, m.aiOut)
	}

	return m
}

func mustOpenHistory() *history.Store {
	dir, err := historyDir()
	if err != nil {
		s, _ := history.Open("")
		return s
	}
	s, _ := history.Open(dir)
	return s
}

func mustOpenSnippets() *snippets.Store {
	path, err := config.Path()
	if err != nil {
		s, _ := snippets.Open("")
		return s
	}
	dir := path[:len(path)-len("config.toml")]
	s, _ := snippets.Open(dir)
	return s
}

// historyDir returns jiq's config directory (the one holding
// config.toml), so history is stored beside the config file.
func historyDir() (string, error) {
	p, err := config.Path()
	if err != nil {
		return "", err
	}
	return p[:len(p)-len("config.toml")], nil
}

func (m *Model) Init() tea.Cmd {
	return tickCmd()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout.Recompute(m.width, m.height)
		return m, nil

	case tickMsg:
		return m.onTick(time.Time(msg))

	case queryResultMsg:
		return m.onQueryResult(query.Result(msg))

	case aiResponseMsg:
		return m.onAIResponse(ai.Response(msg))

	case tea.KeyMsg:
		return m.onKey(msg)

	case tea.MouseMsg:
		return m.onMouse(msg)
	}
	return m, nil
}

func (m *Model) onTick(now time.Time) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{tickCmd()}

	if m.debouncer.Ready(now, m.editorBuf.Text()) {
		cmds = append(cmds, m.dispatchQuery(now))
	}

	m.notify.Expire(now)

	if m.quitting {
		return m, tea.Quit
	}
	return m, tea.Batch(cmds...)
}

// dispatchQuery implements spec.md §4.2's per-dispatch steps 1-4.
func (m *Model) dispatchQuery(now time.Time) tea.Cmd {
	queryText := m.editorBuf.Text()
	m.debouncer.MarkSubmitted(queryText)
	tok := m.tokens.Next()
	m.queryState.QueryText = queryText
	m.queryState.Pending = true

	ch := m.executor.Run(context.Background(), tok, queryText, m.input)
	return waitForQueryResult(ch)
}

func (m *Model) onQueryResult(r query.Result) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	if r.Token >= m.tokens.Current() {
		m.queryState.Apply(r)
		if r.Ok() {
			m.statsS.Compute(r.Output)
			m.historyStore.Record(m.queryState.QueryText, time.Now())
		}
		cmds = append(cmds, m.maybeTriggerAI(r)...)
	}
	return m, tea.Batch(cmds...)
}

// maybeTriggerAI implements spec.md §4.3's trigger rule: query execution
// completed, the query text changed since the last AI request, and the
// popup is visible and a provider is configured.
func (m *Model) maybeTriggerAI(r query.Result) []tea.Cmd {
	if m.aiWorker == nil || !m.cfg.AI.Enabled || !m.cfg.Configured() {
		return nil
	}
	if m.aiState.Visibility == ai.Hidden {
		return nil
	}
	tag := m.queryState.QueryText
	if tag == m.aiQueryTag {
		return nil
	}
	m.aiQueryTag = tag

	ctx := m.buildPromptContext(r)
	text := prompt.Build(ctx)

	tok := ai.NewCancelToken(context.Background())
	reqID := m.aiState.BeginRequest(tok)
	m.aiWorker.Submit(ai.Request{Prompt: text, RequestID: reqID, Cancel: tok})

	if m.aiRespChan == nil {
		m.aiRespChan = m.aiOut
		return []tea.Cmd{waitForAIResponse(m.aiOut)}
	}
	return nil
}

func (m *Model) buildPromptContext(r query.Result) prompt.Context {
	ctx := prompt.Context{
		Query:        m.queryState.QueryText,
		Cursor:       m.editorBuf.Cursor(),
		InputSample:  m.input,
		WordBudget:   m.cfg.AI.WordLimit,
		RootType:     m.analyzer.RootType(),
		TopLevelKeys: m.analyzer.TopLevelKeys(),
		Schema:       m.analyzer.Schema(prompt.SchemaDepthBudget(len(m.input))),
	}
	if elemType, count, ok := m.analyzer.RootElement(); ok {
		ctx.ElementType = elemType
		ctx.ElementCount = count
	}
	if r.Ok() {
		ctx.Output = r.Output
		ctx.IsEmptyResult = strings.TrimSpace(r.Output) == ""
	} else {
		ctx.Err = r.Err
		if m.queryState.HasSuccessfulResult {
			ctx.BaseQuery = m.queryState.QueryText
			ctx.BaseQueryResult = m.queryState.LastSuccessfulResult
		}
	}
	if s, ok := m.statsS.Display(); ok {
		ctx.RootType = s
	}
	return ctx
}

func (m *Model) onAIResponse(r ai.Response) (tea.Model, tea.Cmd) {
	switch r.Event.Kind {
	case ai.EventChunk:
		m.aiState.ApplyChunk(r.RequestID, r.Event.Text)
	case ai.EventComplete:
		m.aiState.ApplyComplete(r.RequestID)
	case ai.EventCancelled:
		m.aiState.ApplyCancelled(r.RequestID)
	case ai.EventError:
		m.aiState.ApplyError(r.Event.Err)
	}
	if m.aiRespChan != nil {
		return m, waitForAIResponse(m.aiOut)
	}
	return m, nil
}

func (m *Model) onMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress {
		return m, nil
	}
	pane := m.layout.PaneAt(msg.X, msg.Y)
	switch pane {
	case "input":
		m.focus = FocusInput
	case "results":
		m.focus = FocusResults
	}
	return m, nil
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	inputStyle := borderOKStyle
	if !m.queryState.ResultOK && m.queryState.ResultErr != "" {
		inputStyle = borderErrorStyle
	}
	inputLine := inputStyle.Render(m.editorBuf.Text())
	if m.tooltipText != "" {
		inputLine = lipgloss.JoinHorizontal(lipgloss.Top, inputLine, fieldTypeTagStyle.Render(" "+m.tooltipText))
	}

	body := m.renderResults()

	statsLine := m.renderStatsBar()

	view := lipgloss.JoinVertical(lipgloss.Left, inputLine, body, statsLine)

	if overlay := m.renderTopOverlay(); overlay != "" {
		view = lipgloss.JoinVertical(lipgloss.Left, view, overlay)
	}
	if n, ok := m.notify.Current(); ok {
		view = lipgloss.JoinVertical(lipgloss.Left, view, m.renderNotification(n))
	}
	return view
}

func (m *Model) renderResults() string {
	text, ok := m.queryState.DisplayResult()
	if !ok {
		return dimItemStyle.Render("(no result yet)")
	}
	if m.errorOverlayVisible && m.queryState.ResultErr != "" {
		return m.renderErrorOverlay()
	}
	if m.searchS.Phase != search.Hidden {
		return m.renderSearchHighlighted(text)
	}
	return text
}

const errorOverlayMaxLines = 10

func (m *Model) renderErrorOverlay() string {
	lines := strings.Split(m.queryState.ResultErr, "\n")
	truncated := false
	if len(lines) > errorOverlayMaxLines {
		lines = lines[:errorOverlayMaxLines]
		truncated = true
	}
	body := strings.Join(lines, "\n")
	if truncated {
		body += "\n…"
	}
	return overlayBorderStyle.Render(errorTextStyle.Render(body))
}

func (m *Model) renderSearchHighlighted(text string) string {
	lines := strings.Split(text, "\n")
	cur, hasCur := m.searchS.Current()
	byLine := map[int][]search.Match{}
	for _, mt := range m.searchS.Matches {
		byLine[mt.Line] = append(byLine[mt.Line], mt)
	}

	var b strings.Builder
	for i, line := range lines {
		runes := []rune(line)
		matches := byLine[i]
		if len(matches) == 0 {
			b.WriteString(line)
		} else {
			pos := 0
			for _, mt := range matches {
				b.WriteString(string(runes[pos:mt.Col]))
				seg := string(runes[mt.Col : mt.Col+mt.Len])
				if hasCur && mt == cur {
					b.WriteString(searchCurrentMatchStyle.Render(seg))
				} else {
					b.WriteString(searchOtherMatchStyle.Render(seg))
				}
				pos = mt.Col + mt.Len
			}
			b.WriteString(string(runes[pos:]))
		}
		if i < len(lines)-1 {
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(m.renderSearchBar())
	return b.String()
}

func (m *Model) renderSearchBar() string {
	return "/" + m.searchS.Query + " " + m.searchS.CountDisplay()
}

func (m *Model) renderStatsBar() string {
	if s, ok := m.statsS.Display(); ok {
		return statsBarStyle.Render(s)
	}
	return statsBarStyle.Render("")
}

func (m *Model) renderNotification(n Notification) string {
	switch n.Style {
	case NotifyWarning:
		return notifyWarningStyle.Render(n.Message)
	case NotifyError:
		return notifyErrorStyle.Render(n.Message)
	default:
		return notifyInfoStyle.Render(n.Message)
	}
}

// renderTopOverlay implements spec.md §4.1's overlay precedence for
// rendering (the same ordering onKey uses for input consumption): help
// wins, then snippets, then history/autocomplete, then the AI popup.
func (m *Model) renderTopOverlay() string {
	switch {
	case m.help.Visible:
		return m.renderHelp()
	case m.snippetsOv.Visible:
		return m.renderSnippets()
	case m.historyOv.Visible:
		return m.renderHistory()
	case m.autocomplete.Visible && !SuppressedByAI(m.aiState.Visibility != ai.Hidden):
		return m.renderAutocomplete()
	case m.aiState.Visibility != ai.Hidden:
		return m.renderAI()
	default:
		return ""
	}
}

func (m *Model) renderHelp() string {
	title := titleStyle.Render(fmt.Sprintf("Help: %s", m.help.Active.String()))
	return overlayBorderStyle.Render(title)
}

func (m *Model) renderSnippets() string {
	var b strings.Builder
	for i, sn := range m.snippetsOv.List() {
		line := sn.Name + "  " + dimItemStyle.Render(sn.Query)
		if i == m.snippetsOv.Selected {
			line = selectedItemStyle.Render(sn.Name) + "  " + dimItemStyle.Render(sn.Query)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return overlayBorderStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func (m *Model) renderHistory() string {
	var b strings.Builder
	b.WriteString("history> " + m.historyOv.Filter + "\n")
	for i, e := range m.historyOv.Matches() {
		line := e.Query
		if i == m.historyOv.Selected {
			line = selectedItemStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return overlayBorderStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func (m *Model) renderAutocomplete() string {
	var b strings.Builder
	for i, sug := range m.autocomplete.Suggestions {
		tag := ""
		if sug.Type != nil {
			tag = " " + fieldTypeTagStyle.Render(sug.Type.String())
		}
		line := sug.Text + tag
		if i == m.autocomplete.Selected {
			line = selectedItemStyle.Render(sug.Text) + tag
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return overlayBorderStyle.Render(strings.TrimRight(b.String(), "\n"))
}

func (m *Model) renderAI() string {
	switch m.aiState.Visibility {
	case ai.Loading:
		text := m.aiState.Response
		if text == "" {
			text = m.aiState.PreviousResponse
		}
		return overlayBorderStyle.Render(dimItemStyle.Render("thinking…\n") + text)
	case ai.ErrorShown:
		return overlayBorderStyle.Render(errorTextStyle.Render(m.aiState.ErrMessage))
	case ai.Showing:
		return overlayBorderStyle.Render(m.renderSuggestions())
	default:
		if !m.cfg.AI.Enabled {
			return overlayBorderStyle.Render(dimItemStyle.Render("AI disabled for this session"))
		}
		if !m.cfg.Configured() {
			return overlayBorderStyle.Render(dimItemStyle.Render("AI not configured"))
		}
		return overlayBorderStyle.Render(dimItemStyle.Render("Press Ctrl+A to ask for suggestions"))
	}
}

func (m *Model) renderSuggestions() string {
	var b strings.Builder
	for i, s := range m.aiState.Suggestions {
		style := suggestionNextStyle
		switch s.Type {
		case ai.Fix:
			style = suggestionFixStyle
		case ai.Optimize:
			style = suggestionOptimizeStyle
		}
		line := fmt.Sprintf("%d. %s", i+1, style.Render(s.Query))
		if i == m.aiState.SelectionIndex && m.aiState.Navigating {
			line = selectedItemStyle.Render(line)
		}
		b.WriteString(line)
		if s.Description != "" {
			b.WriteString("\n   " + dimItemStyle.Render(s.Description))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// applySuggestionText replaces the editor's query with text, matching
// spec.md §4.3's "Applying a suggestion" contract: cursor at end, mode
// preserved, autocomplete hidden, selection cleared.
func (m *Model) applySuggestionText(text string) {
	mode := m.editorBuf.Mode()
	m.editorBuf.SetText(text)
	if mode == editor.Insert {
		m.editorBuf.EnterInsert()
	} else {
		m.editorBuf.EnterNormal()
	}
	m.autocomplete.Dismiss()
	m.aiState.ApplySuggestion()
	m.debouncer.Bump(time.Now())
}

// recomputeAutocomplete implements spec.md §4.1 step 4: recompute
// suggestions whenever the query or cursor moved.
func (m *Model) recomputeAutocomplete() {
	if SuppressedByAI(m.aiState.Visibility != ai.Hidden) {
		m.autocomplete.Dismiss()
		return
	}
	text := m.editorBuf.Text()
	cursor := m.editorBuf.Cursor()
	path, prefix := splitPathPrefix(text, cursor)
	sugs := m.analyzer.ContextualFieldSuggestions(path, prefix)
	if wc, ok := m.analyzer.WildcardSuggestion(path); ok {
		sugs = append(sugs, wc)
	}
	m.autocomplete.SetSuggestions(sugs)
}

// recomputeTooltip implements spec.md §4.1 step 4's "recompute tooltip":
// the field-type hint for whatever path is typed so far, gated on
// `[tooltip] auto_show` (spec.md §6).
func (m *Model) recomputeTooltip() {
	if !m.cfg.Tooltip.AutoShow {
		m.tooltipText = ""
		return
	}
	text := m.editorBuf.Text()
	cursor := m.editorBuf.Cursor()
	path, _ := splitPathPrefix(text, cursor)
	if path == "" {
		m.tooltipText = ""
		return
	}
	ft, ok := m.analyzer.TypeAtPath(path)
	if !ok {
		m.tooltipText = ""
		return
	}
	m.tooltipText = ft.String()
}

// splitPathPrefix splits query text at cursor into the path already typed
// and the partial field-name prefix being completed, on the last '.'.
func splitPathPrefix(text string, cursor int) (path, prefix string) {
	runes := []rune(text)
	if cursor > len(runes) {
		cursor = len(runes)
	}
	upto := string(runes[:cursor])
	idx := strings.LastIndex(upto, ".")
	if idx < 0 {
		return "", upto
	}
	return upto[:idx], upto[idx+1:]
}

// CopyResult copies the currently displayed result to the clipboard
// (spec.md §6's clipboard adapter).
func (m *Model) CopyResult() {
	if text, ok := m.queryState.DisplayResult(); ok {
		if err := m.clipboard.Write(text); err != nil {
			m.notify.Show("clipboard: "+err.Error(), NotifyWarning, time.Now())
		} else {
			m.notify.Show("copied", NotifyInfo, time.Now())
		}
	}
}
