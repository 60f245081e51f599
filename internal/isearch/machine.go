package isearch

import (
	"context"
	"strings"
)

// DefaultPageSize is the page size used when none is configured.
const DefaultPageSize = 25

// Phase is the widget-level state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseTyping
	PhaseLoadingFirstPage
	PhaseShowingResults
	PhaseLoadingMore
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseTyping:
		return "typing"
	case PhaseLoadingFirstPage:
		return "loading_first_page"
	case PhaseShowingResults:
		return "showing_results"
	case PhaseLoadingMore:
		return "loading_more"
	case PhaseError:
		return "error"
	default:
		return "idle"
	}
}

// Result is one fetched page, already reduced to items and a next-page flag.
type Result[T any] struct {
	Items   []T
	HasMore bool
}

// FetchFunc fetches one page. Pages are 1-based.
type FetchFunc[T any] func(ctx context.Context, req Request) (Result[T], error)

// Response pairs a fetch outcome with the request that produced it.
type Response[T any] struct {
	Request Request
	Items   []T
	HasMore bool
	Err     error
}

// SelectEvent is emitted once per committed selection.
type SelectEvent[T any] struct {
	Item     T
	Selected []T
	Input    string
}

// State is a point-in-time copy of a widget.
type State[T any] struct {
	Query       string
	Settled     string
	HasSettled  bool
	Phase       Phase
	Items       []T
	Page        int
	Loading     bool
	LoadingMore bool
	Error       string
	HasMore     bool
	Selected    []T
	PanelOpen   bool
}

// Settings are the per-widget knobs that differ between call sites.
type Settings[T any] struct {
	PageSize      int
	Multi         bool
	MaxSelections int
	LimitMessage  string
	InputMode     InputMode
	FetchOnOpen   bool
	Key           func(T) string
	Label         func(T) string
}

func (s Settings[T]) withDefaults() Settings[T] {
	if s.PageSize <= 0 {
		s.PageSize = DefaultPageSize
	}
	if s.MaxSelections > 0 {
		s.Multi = true
	}
	if s.Key == nil {
		s.Key = defaultKey[T]
	}
	if s.Label == nil {
		s.Label = defaultLabel[T]
	}
	return s
}

// Machine is the state machine of one search widget. It is not safe for
// concurrent use; drivers call it from a single goroutine.
type Machine[T any] struct {
	settings Settings[T]

	raw         string
	debounceGen uint64
	settled     string
	hasSettled  bool
	active      string

	acc   *Accumulator[T]
	coord *Coordinator
	sel   *Selection[T]

	phase     Phase
	panelOpen bool
	failed    *Request
}

// NewMachine builds an idle machine.
func NewMachine[T any](settings Settings[T]) *Machine[T] {
	settings = settings.withDefaults()
	return &Machine[T]{
		settings: settings,
		acc:      NewAccumulator[T](),
		coord:    NewCoordinator(settings.PageSize),
		sel:      NewSelection(settings.Key, settings.Multi, settings.MaxSelections, settings.LimitMessage),
	}
}

// QueryChanged records a keystroke and returns the debounce generation the
// driver must hand back to Settle.
func (m *Machine[T]) QueryChanged(raw string) uint64 {
	m.raw = raw
	m.debounceGen++
	m.panelOpen = true
	if m.phase == PhaseIdle {
		m.phase = PhaseTyping
	}
	return m.debounceGen
}

// Settle applies the settled query for generation gen. A new query resets
// the accumulator before the first-page request is issued. An empty query
// closes the panel, unless FetchOnOpen asks for the unfiltered list; that
// list is refetched and the panel is left as it was.
func (m *Machine[T]) Settle(gen uint64) (Request, bool) {
	if gen != m.debounceGen {
		return Request{}, false
	}
	value := m.raw
	query := strings.TrimSpace(value)
	same := m.hasSettled && strings.TrimSpace(m.settled) == query
	m.settled, m.hasSettled = value, true

	if query == "" && !m.settings.FetchOnOpen {
		m.coord.Cancel()
		m.acc.Reset()
		m.active = ""
		m.failed = nil
		m.phase = PhaseIdle
		m.panelOpen = false
		return Request{}, false
	}

	if same && m.coord.State() != FetchError && (m.acc.Loaded() || m.coord.InFlight()) {
		m.phase = m.restPhase()
		return Request{}, false
	}

	m.acc.Reset()
	m.active = query
	m.failed = nil
	if query != "" {
		m.panelOpen = true
	}
	m.phase = PhaseLoadingFirstPage
	return m.coord.Begin(query, 1), true
}

// SentinelVisible handles the last rendered row coming into view.
func (m *Machine[T]) SentinelVisible() (Request, bool) {
	if m.phase != PhaseShowingResults || !m.acc.Loaded() || !m.coord.CanLoadMore() {
		return Request{}, false
	}
	page := m.acc.Advance()
	m.phase = PhaseLoadingMore
	return m.coord.Begin(m.active, page), true
}

// Resolve applies a fetch outcome. It returns ErrStaleResponse for a
// superseded request and leaves state untouched in that case. Fetch errors
// are recorded in the state, not returned.
func (m *Machine[T]) Resolve(resp Response[T]) error {
	if err := m.coord.Accept(resp.Request); err != nil {
		return err
	}
	req := resp.Request
	if resp.Err != nil {
		m.coord.Fail(resp.Err)
		m.failed = &req
		if req.First() {
			m.phase = PhaseError
		} else {
			m.acc.Rewind()
			m.phase = m.restPhase()
		}
		return nil
	}
	if err := m.acc.AppendPage(req.Page, resp.Items); err != nil {
		m.coord.Fail(err)
		m.acc.Rewind()
		m.phase = m.restPhase()
		return err
	}
	m.coord.Succeed(resp.HasMore)
	m.failed = nil
	m.phase = m.restPhase()
	return nil
}

// Select commits item, closes the panel and updates the input text. The
// accumulated results stay so reopening shows them without a refetch.
// Picking an item that is already selected returns ErrAlreadySelected and
// leaves everything as it was.
func (m *Machine[T]) Select(item T) (SelectEvent[T], error) {
	added, err := m.sel.Select(item)
	if err != nil {
		return SelectEvent[T]{}, err
	}
	if !added {
		return SelectEvent[T]{}, ErrAlreadySelected
	}
	switch m.settings.InputMode {
	case InputClear:
		m.raw = ""
	case InputFill:
		m.raw = m.settings.Label(item)
	}
	// Any pending debounce belongs to text the user no longer sees.
	m.debounceGen++
	m.panelOpen = false
	m.phase = PhaseIdle
	return SelectEvent[T]{Item: item, Selected: m.sel.Items(), Input: m.raw}, nil
}

// Deselect removes key from a multi selection.
func (m *Machine[T]) Deselect(key string) bool {
	return m.sel.Remove(key)
}

// ClearSelection drops every committed item.
func (m *Machine[T]) ClearSelection() {
	m.sel.Clear()
}

// Blur closes the panel and keeps everything else.
func (m *Machine[T]) Blur() {
	m.panelOpen = false
	m.phase = PhaseIdle
}

// Open shows the panel. With FetchOnOpen and nothing loaded, it issues the
// first-page request for the current settled query, which may be empty.
func (m *Machine[T]) Open() (Request, bool) {
	m.panelOpen = true
	if m.acc.Loaded() || m.coord.InFlight() {
		m.phase = m.restPhase()
		return Request{}, false
	}
	if !m.settings.FetchOnOpen {
		m.phase = m.restPhase()
		return Request{}, false
	}
	query := strings.TrimSpace(m.settled)
	m.acc.Reset()
	m.active = query
	m.failed = nil
	m.phase = PhaseLoadingFirstPage
	return m.coord.Begin(query, 1), true
}

// Retry re-issues the last failed request.
func (m *Machine[T]) Retry() (Request, bool) {
	if m.failed == nil || m.coord.InFlight() {
		return Request{}, false
	}
	failed := *m.failed
	m.failed = nil
	m.panelOpen = true
	if failed.First() {
		m.acc.Reset()
		m.active = failed.Query
		m.phase = PhaseLoadingFirstPage
		return m.coord.Begin(failed.Query, 1), true
	}
	page := m.acc.Advance()
	m.phase = PhaseLoadingMore
	return m.coord.Begin(m.active, page), true
}

// DismissError hides the current error message.
func (m *Machine[T]) DismissError() {
	m.coord.DismissError()
	if m.phase == PhaseError {
		m.phase = m.restPhase()
	}
}

// Cancel supersedes any in-flight request and pending debounce.
func (m *Machine[T]) Cancel() {
	m.debounceGen++
	m.coord.Cancel()
	if m.phase == PhaseLoadingFirstPage || m.phase == PhaseLoadingMore || m.phase == PhaseTyping {
		m.phase = m.restPhase()
	}
}

func (m *Machine[T]) Raw() string { return m.raw }
func (m *Machine[T]) Generation() uint64 { return m.debounceGen }
func (m *Machine[T]) Phase() Phase { return m.phase }
func (m *Machine[T]) PanelOpen() bool { return m.panelOpen }
func (m *Machine[T]) InFlight() bool { return m.coord.InFlight() }
func (m *Machine[T]) Settings() Settings[T] { return m.settings }
func (m *Machine[T]) Label(item T) string { return m.settings.Label(item) }
func (m *Machine[T]) Key(item T) string { return m.settings.Key(item) }
func (m *Machine[T]) IsSelected(item T) bool { return m.sel.Contains(m.settings.Key(item)) }
func (m *Machine[T]) Len() int { return m.acc.Len() }
func (m *Machine[T]) Selected() []T { return m.sel.Items() }
func (m *Machine[T]) Current() (T, bool) { return m.sel.Current() }
func (m *Machine[T]) SelectedKeys() []string { return m.sel.Keys() }
func (m *Machine[T]) ActiveQuery() string { return m.active }
func (m *Machine[T]) Coordinator() *Coordinator { return m.coord }

// Snapshot copies the current state.
func (m *Machine[T]) Snapshot() State[T] {
	return State[T]{
		Query:       m.raw,
		Settled:     m.settled,
		HasSettled:  m.hasSettled,
		Phase:       m.phase,
		Items:       m.acc.Items(),
		Page:        m.acc.LoadedPages(),
		Loading:     m.coord.Loading(),
		LoadingMore: m.coord.LoadingMore(),
		Error:       m.coord.Err(),
		HasMore:     m.coord.HasMore(),
		Selected:    m.sel.Items(),
		PanelOpen:   m.panelOpen,
	}
}

// Item returns the accumulated item at index i.
func (m *Machine[T]) Item(i int) (T, bool) {
	var zero T
	if i < 0 || i >= m.acc.Len() {
		return zero, false
	}
	return m.acc.items[i], true
}

func (m *Machine[T]) restPhase() Phase {
	switch {
	case m.coord.Loading():
		return PhaseLoadingFirstPage
	case m.coord.LoadingMore():
		return PhaseLoadingMore
	case !m.panelOpen:
		return PhaseIdle
	case m.acc.Loaded():
		return PhaseShowingResults
	case m.coord.State() == FetchError:
		return PhaseError
	default:
		return PhaseIdle
	}
}
