package query

// Result is the outcome of one query-engine invocation.
type Result struct {
	Token  Token
	Output string
	Err    string // non-empty on failure; mutually exclusive with a successful Output
}

// Ok reports whether the run succeeded.
func (r Result) Ok() bool { return r.Err == "" }

// State mirrors spec.md §3's QueryState entity.
//
// Invariant: LastSuccessfulResult is updated exactly when a run
// finishes Ok; it is never cleared on error, so the results pane
// never flashes to empty on a transient syntax error.
type State struct {
	QueryText string

	// Result is the most recent outcome, success or failure.
	ResultOK     bool
	ResultOutput string
	ResultErr    string

	LastSuccessfulResult             string
	LastSuccessfulResultUnformatted  string
	HasSuccessfulResult              bool

	Pending bool
}

// Apply folds a Result carrying the current token into State. Callers
// must check the token against the current TokenSource before calling
// Apply — Apply itself does not re-validate staleness, it assumes the
// caller already discarded stale results (Testable Property 2).
func (s *State) Apply(r Result) {
	s.Pending = false
	if r.Ok() {
		s.ResultOK = true
		s.ResultOutput = r.Output
		s.ResultErr = ""
		s.LastSuccessfulResult = r.Output
		s.LastSuccessfulResultUnformatted = r.Output
		s.HasSuccessfulResult = true
		return
	}
	s.ResultOK = false
	s.ResultErr = r.Err
	// ResultOutput and LastSuccessfulResult are deliberately untouched.
}

// DisplayResult returns what the results pane should render: the fresh
// output on success, or the cached last-good result while an error is
// being signalled via the border/overlay (Testable Property 3).
func (s *State) DisplayResult() (text string, hasResult bool) {
	if s.HasSuccessfulResult {
		return s.LastSuccessfulResult, true
	}
	return "", false
}
