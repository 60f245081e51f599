package ui

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravitrone/rxmart/internal/isearch"
)

const testPageSize = 10

type testDrug struct {
	ID   string
	Name string
}

func (d testDrug) SearchKey() string   { return d.ID }
func (d testDrug) SearchLabel() string { return d.Name }

// fakeCatalog serves deterministic pages: total items per query, failing
// the first fail calls.
type fakeCatalog struct {
	mu       sync.Mutex
	total    int
	fail     int
	requests []isearch.Request
}

func (f *fakeCatalog) fetch(_ context.Context, req isearch.Request) (isearch.Result[testDrug], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.fail > 0 {
		f.fail--
		return isearch.Result[testDrug]{}, errors.New("upstream unavailable")
	}
	start := (req.Page - 1) * testPageSize
	end := min(start+testPageSize, f.total)
	items := make([]testDrug, 0, testPageSize)
	for i := start; i < end; i++ {
		items = append(items, testDrug{
			ID:   fmt.Sprintf("%s-%d", req.Query, i),
			Name: fmt.Sprintf("%s %d", req.Query, i),
		})
	}
	return isearch.Result[testDrug]{Items: items, HasMore: end < f.total}, nil
}

func (f *fakeCatalog) pages() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]int, len(f.requests))
	for i, r := range f.requests {
		out[i] = r.Page
	}
	return out
}

func (f *fakeCatalog) queries() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.requests))
	for i, r := range f.requests {
		out[i] = r.Query
	}
	return out
}

func immediateTick(_ time.Duration, fn func(time.Time) tea.Msg) tea.Cmd {
	return func() tea.Msg { return fn(time.Now()) }
}

func newTestPicker(t *testing.T, cat *fakeCatalog, settings isearch.Settings[testDrug]) PickerModel[testDrug] {
	t.Helper()
	settings.PageSize = testPageSize
	m := NewPicker(PickerOptions[testDrug]{
		Title:    "Products",
		Settings: settings,
		Fetch:    cat.fetch,
		Detail:   func(d testDrug) string { return "tablet" },
	})
	m.tick = immediateTick
	m.SetSize(100, 40)
	m, cmd := m.Focus()
	m, _ = drive(t, m, cmd)
	return m
}

// collect runs cmd and flattens batches. Spinner ticks are dropped so the
// drive loop terminates.
func collect(t *testing.T, cmd tea.Cmd) []tea.Msg {
	t.Helper()
	if cmd == nil {
		return nil
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	var msg tea.Msg
	select {
	case msg = <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("command did not return")
	}

	switch msg := msg.(type) {
	case nil, spinner.TickMsg:
		return nil
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, collect(t, c)...)
		}
		return out
	default:
		return []tea.Msg{msg}
	}
}

// drive feeds debounce and page messages back into the picker until it is
// quiet and returns everything else it emitted.
func drive[T any](t *testing.T, m PickerModel[T], cmd tea.Cmd) (PickerModel[T], []tea.Msg) {
	t.Helper()
	queue := collect(t, cmd)
	var out []tea.Msg
	for len(queue) > 0 {
		msg := queue[0]
		queue = queue[1:]
		switch msg.(type) {
		case pickerDebounceMsg, pickerPageMsg[T]:
			var next tea.Cmd
			m, next = m.Update(msg)
			queue = append(queue, collect(t, next)...)
		default:
			out = append(out, msg)
		}
	}
	return m, out
}

func key(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

func runeKey(r rune) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}} }

// typeText sends every keystroke before any debounce fires.
func typeText[T any](t *testing.T, m PickerModel[T], text string) (PickerModel[T], []tea.Msg) {
	t.Helper()
	cmds := make([]tea.Cmd, 0, len(text))
	for _, r := range text {
		var cmd tea.Cmd
		m, cmd = m.Update(runeKey(r))
		cmds = append(cmds, cmd)
	}
	return drive(t, m, tea.Batch(cmds...))
}

func press[T any](t *testing.T, m PickerModel[T], msg tea.KeyMsg) (PickerModel[T], []tea.Msg) {
	t.Helper()
	m, cmd := m.Update(msg)
	return drive(t, m, cmd)
}

func TestPickerBurstOfKeystrokesFetchesOnce(t *testing.T) {
	cat := &fakeCatalog{total: 3}
	m := newTestPicker(t, cat, isearch.Settings[testDrug]{})

	m, _ = typeText(t, m, "para")

	assert.Equal(t, []string{"para"}, cat.queries())
	assert.Equal(t, 3, m.Machine().Len())
	assert.Equal(t, isearch.PhaseShowingResults, m.Machine().Phase())
	assert.Contains(t, m.View(), "para 0")
	assert.Contains(t, m.View(), "3 results")
}

func TestPickerWhitespaceOnlyQueryDoesNotFetch(t *testing.T) {
	cat := &fakeCatalog{total: 3}
	m := newTestPicker(t, cat, isearch.Settings[testDrug]{})

	m, _ = typeText(t, m, "   ")

	assert.Empty(t, cat.queries())
	assert.False(t, m.Machine().PanelOpen())
}

func TestPickerAutoLoadsWhenLastRowIsVisible(t *testing.T) {
	cat := &fakeCatalog{total: 35}
	m := newTestPicker(t, cat, isearch.Settings[testDrug]{})

	m, _ = typeText(t, m, "amox")
	assert.Equal(t, []int{1, 2}, cat.pages())
	assert.Equal(t, 20, m.Machine().Len())
	assert.Contains(t, m.View(), "20 loaded")

	for i := 0; i < 18; i++ {
		m, _ = press(t, m, key(tea.KeyDown))
	}
	assert.Equal(t, []int{1, 2}, cat.pages())

	m, _ = press(t, m, key(tea.KeyDown))
	assert.Equal(t, []int{1, 2, 3}, cat.pages())
	assert.Equal(t, 30, m.Machine().Len())
	assert.Equal(t, 19, m.list.Cursor())
}

func TestPickerStopsLoadingWhenExhausted(t *testing.T) {
	cat := &fakeCatalog{total: 12}
	m := newTestPicker(t, cat, isearch.Settings[testDrug]{})

	m, _ = typeText(t, m, "ibu")
	for i := 0; i < 15; i++ {
		m, _ = press(t, m, key(tea.KeyDown))
	}

	assert.Equal(t, []int{1, 2}, cat.pages())
	assert.Equal(t, 12, m.Machine().Len())
	assert.Contains(t, m.View(), "12 results")
}

func TestPickerDiscardsStaleResponse(t *testing.T) {
	cat := &fakeCatalog{total: 3}
	m := newTestPicker(t, cat, isearch.Settings[testDrug]{})
	m, _ = typeText(t, m, "para")
	before := m.Machine().Len()

	stale := pickerPageMsg[testDrug]{id: m.id, resp: isearch.Response[testDrug]{
		Request: isearch.Request{Token: 0, Query: "pa", Page: 1},
		Items:   []testDrug{{ID: "x", Name: "stale"}},
	}}
	m, cmd := m.Update(stale)

	assert.Nil(t, cmd)
	assert.Equal(t, 1, m.discarded)
	assert.Equal(t, before, m.Machine().Len())
	assert.NotContains(t, m.View(), "stale")
}

func TestPickerIgnoresMessagesForOtherPickers(t *testing.T) {
	cat := &fakeCatalog{total: 3}
	m := newTestPicker(t, cat, isearch.Settings[testDrug]{})
	m.Machine().QueryChanged("para")

	m, cmd := m.Update(pickerDebounceMsg{id: m.id + 1000, gen: m.Machine().Generation()})

	assert.Nil(t, cmd)
	assert.Empty(t, cat.queries())
}

func TestPickerFirstPageErrorThenRetry(t *testing.T) {
	cat := &fakeCatalog{total: 3, fail: 1}
	m := newTestPicker(t, cat, isearch.Settings[testDrug]{})

	m, _ = typeText(t, m, "para")
	assert.Equal(t, isearch.PhaseError, m.Machine().Phase())
	assert.Contains(t, m.View(), "Search failed")
	assert.Contains(t, m.View(), "upstream unavailable")

	m, _ = press(t, m, key(tea.KeyCtrlR))

	assert.Equal(t, []string{"para", "para"}, cat.queries())
	assert.Equal(t, 3, m.Machine().Len())
	assert.NotContains(t, m.View(), "Search failed")
}

func TestPickerSingleSelectFillsInputAndClosesPanel(t *testing.T) {
	cat := &fakeCatalog{total: 3}
	m := newTestPicker(t, cat, isearch.Settings[testDrug]{InputMode: isearch.InputFill})
	m, _ = typeText(t, m, "para")
	m, _ = press(t, m, key(tea.KeyDown))

	m, msgs := press(t, m, key(tea.KeyEnter))

	require.Len(t, msgs, 1)
	sel, ok := msgs[0].(pickerSelectedMsg)
	require.True(t, ok)
	assert.Equal(t, "para 1", sel.label)
	assert.False(t, sel.multi)
	assert.Equal(t, "para 1", m.input.Value())
	assert.False(t, m.Machine().PanelOpen())
	require.Len(t, m.Selected(), 1)
	assert.Equal(t, "para-1", m.Selected()[0].ID)
}

func TestPickerMultiSelectEnforcesCap(t *testing.T) {
	cat := &fakeCatalog{total: 5}
	m := newTestPicker(t, cat, isearch.Settings[testDrug]{
		MaxSelections: 2,
		LimitMessage:  "You can pick up to 2 filters.",
	})

	for i := 0; i < 2; i++ {
		m, _ = typeText(t, m, "vit")
		for j := 0; j < i; j++ {
			m, _ = press(t, m, key(tea.KeyDown))
		}
		var msgs []tea.Msg
		m, msgs = press(t, m, key(tea.KeyEnter))
		require.Len(t, msgs, 1)
		assert.IsType(t, pickerSelectedMsg{}, msgs[0])
	}
	assert.Contains(t, m.View(), "Selected (2/2)")

	m, _ = typeText(t, m, "vit")
	m, _ = press(t, m, key(tea.KeyDown))
	m, _ = press(t, m, key(tea.KeyDown))
	m, msgs := press(t, m, key(tea.KeyEnter))

	require.Len(t, msgs, 1)
	warn, ok := msgs[0].(pickerWarningMsg)
	require.True(t, ok)
	assert.Equal(t, "You can pick up to 2 filters.", warn.text)
	assert.Len(t, m.Selected(), 2)
}

func TestPickerEnterOnSelectedRowSendsNothing(t *testing.T) {
	cat := &fakeCatalog{total: 5}
	m := newTestPicker(t, cat, isearch.Settings[testDrug]{MaxSelections: 5})
	m, _ = typeText(t, m, "vit")
	m, msgs := press(t, m, key(tea.KeyEnter))
	require.Len(t, msgs, 1)

	m, _ = typeText(t, m, "vit")
	m, msgs = press(t, m, key(tea.KeyEnter))

	assert.Empty(t, msgs)
	assert.True(t, m.Machine().PanelOpen())
	require.Len(t, m.Selected(), 1)
	assert.Equal(t, "vit-0", m.Selected()[0].ID)
}

func TestPickerBackspaceOnEmptyInputRemovesLastChip(t *testing.T) {
	cat := &fakeCatalog{total: 5}
	m := newTestPicker(t, cat, isearch.Settings[testDrug]{Multi: true})
	m, _ = typeText(t, m, "vit")
	m, _ = press(t, m, key(tea.KeyEnter))
	m, _ = typeText(t, m, "zinc")
	m, _ = press(t, m, key(tea.KeyEnter))
	require.Len(t, m.Selected(), 2)
	require.Equal(t, "", m.input.Value())

	m, _ = press(t, m, key(tea.KeyBackspace))

	require.Len(t, m.Selected(), 1)
	assert.Equal(t, "vit-0", m.Selected()[0].ID)
}

func TestPickerEscClosesPanelThenClearsInput(t *testing.T) {
	cat := &fakeCatalog{total: 3}
	m := newTestPicker(t, cat, isearch.Settings[testDrug]{})
	m, _ = typeText(t, m, "para")
	require.True(t, m.Machine().PanelOpen())

	m, _ = press(t, m, key(tea.KeyEsc))
	assert.False(t, m.Machine().PanelOpen())
	assert.Equal(t, "para", m.input.Value())

	m, _ = press(t, m, key(tea.KeyEsc))
	assert.Equal(t, "", m.input.Value())
	assert.Equal(t, 0, m.Machine().Len())
}

func TestPickerFetchOnOpenLoadsWithoutTyping(t *testing.T) {
	cat := &fakeCatalog{total: 4}
	m := newTestPicker(t, cat, isearch.Settings[testDrug]{Multi: true, FetchOnOpen: true})

	assert.Equal(t, []string{""}, cat.queries())
	assert.Equal(t, 4, m.Machine().Len())
	assert.True(t, m.Machine().PanelOpen())
}

func TestPickerFetchOnOpenClearingQueryRestoresBrowseList(t *testing.T) {
	cat := &fakeCatalog{total: 4}
	m := newTestPicker(t, cat, isearch.Settings[testDrug]{MaxSelections: 5, FetchOnOpen: true})
	m, _ = typeText(t, m, "vit")
	require.Equal(t, "vit-0", mustItem(t, m, 0).ID)

	for range "vit" {
		m, _ = press(t, m, key(tea.KeyBackspace))
	}

	queries := cat.queries()
	assert.Equal(t, "", queries[len(queries)-1])
	assert.True(t, m.Machine().PanelOpen())
	assert.Equal(t, 4, m.Machine().Len())
	assert.Equal(t, "-0", mustItem(t, m, 0).ID)
}

func TestPickerFetchOnOpenEscClearKeepsPanelClosed(t *testing.T) {
	cat := &fakeCatalog{total: 4}
	m := newTestPicker(t, cat, isearch.Settings[testDrug]{MaxSelections: 5, FetchOnOpen: true})
	m, _ = typeText(t, m, "vit")

	m, _ = press(t, m, key(tea.KeyEsc))
	m, _ = press(t, m, key(tea.KeyEsc))

	assert.Equal(t, "", m.input.Value())
	assert.False(t, m.Machine().PanelOpen())
	assert.Equal(t, 4, m.Machine().Len())

	m, _ = press(t, m, key(tea.KeyDown))
	assert.True(t, m.Machine().PanelOpen())
	assert.Equal(t, []string{"", "vit", ""}, cat.queries())
}

func mustItem(t *testing.T, m PickerModel[testDrug], i int) testDrug {
	t.Helper()
	item, ok := m.Machine().Item(i)
	require.True(t, ok)
	return item
}

func TestPickerWithoutFetcherShowsError(t *testing.T) {
	m := NewPicker(PickerOptions[testDrug]{Title: "Products"})
	m.tick = immediateTick
	m.SetSize(100, 40)
	m, _ = m.Focus()

	m, _ = typeText(t, m, "para")

	assert.Equal(t, isearch.PhaseError, m.Machine().Phase())
	assert.Contains(t, m.View(), isearch.ErrNoFetcher.Error())
}

func TestPickerBlurClosesPanelAndIgnoresKeys(t *testing.T) {
	cat := &fakeCatalog{total: 3}
	m := newTestPicker(t, cat, isearch.Settings[testDrug]{})
	m, _ = typeText(t, m, "para")

	m = m.Blur()
	m, cmd := m.Update(runeKey('x'))

	assert.Nil(t, cmd)
	assert.False(t, m.Focused())
	assert.False(t, m.Machine().PanelOpen())
	assert.Equal(t, "para", m.input.Value())
}
