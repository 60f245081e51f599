package ui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/gravitrone/rxmart/internal/isearch"
	"github.com/gravitrone/rxmart/internal/ui/components"
)

// --- Messages ---

type pickerDebounceMsg struct {
	id  int64
	gen uint64
}

type pickerPageMsg[T any] struct {
	id   int64
	resp isearch.Response[T]
}

type pickerSelectedMsg struct {
	id    int64
	label string
	count int
	multi bool
}

type pickerWarningMsg struct {
	id   int64
	text string
}

var pickerSeq atomic.Int64

const defaultPickerRows = 10

// PickerOptions configure a PickerModel.
type PickerOptions[T any] struct {
	Title       string
	Placeholder string
	Settings    isearch.Settings[T]
	Debounce    time.Duration
	Fetch       isearch.FetchFunc[T]
	// Detail renders the second column of a result row.
	Detail func(T) string
	// Describe renders the committed item below a closed panel.
	Describe func(T) []components.TableRow
	Rows     int
	Logger   *zap.Logger
}

// PickerModel is a search-as-you-type picker over one paginated endpoint.
type PickerModel[T any] struct {
	id       int64
	title    string
	machine  *isearch.Machine[T]
	fetch    isearch.FetchFunc[T]
	detail   func(T) string
	describe func(T) []components.TableRow
	debounce time.Duration
	tick     func(time.Duration, func(time.Time) tea.Msg) tea.Cmd
	logger   *zap.Logger

	input   textinput.Model
	spinner spinner.Model
	list    *components.List
	cancel  context.CancelFunc
	focused bool

	discarded int
	width     int
	height    int
}

// NewPicker builds an unfocused picker.
func NewPicker[T any](opts PickerOptions[T]) PickerModel[T] {
	input := textinput.New()
	input.Prompt = "> "
	input.Placeholder = opts.Placeholder
	input.CharLimit = 120
	input.PromptStyle = AccentStyle
	input.Cursor.SetMode(cursor.CursorStatic)

	spin := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(AccentStyle),
	)

	rows := opts.Rows
	if rows <= 0 {
		rows = defaultPickerRows
	}
	debounce := opts.Debounce
	if debounce <= 0 {
		debounce = isearch.DefaultDebounce
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return PickerModel[T]{
		id:       pickerSeq.Add(1),
		title:    opts.Title,
		machine:  isearch.NewMachine(opts.Settings),
		fetch:    opts.Fetch,
		detail:   opts.Detail,
		describe: opts.Describe,
		debounce: debounce,
		tick:     tea.Tick,
		logger:   logger,
		input:    input,
		spinner:  spin,
		list:     components.NewList(rows),
	}
}

func (m PickerModel[T]) Init() tea.Cmd {
	return nil
}

// Focus gives the picker the keyboard and opens its panel.
func (m PickerModel[T]) Focus() (PickerModel[T], tea.Cmd) {
	m.focused = true
	cmd := m.input.Focus()
	if req, ok := m.machine.Open(); ok {
		return m, tea.Batch(cmd, m.start(req))
	}
	return m, cmd
}

// Blur releases the keyboard and closes the panel.
func (m PickerModel[T]) Blur() PickerModel[T] {
	m.focused = false
	m.input.Blur()
	m.machine.Blur()
	return m
}

// SetSize records the terminal size.
func (m *PickerModel[T]) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.input.Width = components.BoxContentWidth(width) - 4
}

func (m PickerModel[T]) Update(msg tea.Msg) (PickerModel[T], tea.Cmd) {
	switch msg := msg.(type) {
	case pickerDebounceMsg:
		if msg.id != m.id {
			return m, nil
		}
		req, ok := m.machine.Settle(msg.gen)
		if ok {
			m.syncList(true)
			return m, m.start(req)
		}
		if !m.machine.InFlight() {
			m.cancelFetch()
		}
		m.syncList(true)
		return m, nil

	case pickerPageMsg[T]:
		if msg.id != m.id {
			return m, nil
		}
		return m.resolve(msg.resp)

	case spinner.TickMsg:
		if !m.loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if !m.focused {
			return m, nil
		}
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m PickerModel[T]) handleKey(msg tea.KeyMsg) (PickerModel[T], tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Retry):
		if req, ok := m.machine.Retry(); ok {
			return m, m.start(req)
		}
		return m, nil
	case key.Matches(msg, keys.Down):
		if !m.machine.PanelOpen() {
			if req, ok := m.machine.Open(); ok {
				return m, m.start(req)
			}
			return m, nil
		}
		m.list.Down()
		return m, m.checkSentinel()
	case key.Matches(msg, keys.Up):
		m.list.Up()
		return m, nil
	case key.Matches(msg, keys.Select):
		if !m.machine.PanelOpen() {
			return m, nil
		}
		item, ok := m.machine.Item(m.list.Cursor())
		if !ok {
			return m, nil
		}
		return m.selectItem(item)
	case key.Matches(msg, keys.Back):
		if m.machine.PanelOpen() {
			m.machine.Blur()
			return m, nil
		}
		if m.input.Value() != "" {
			m.input.SetValue("")
			gen := m.machine.QueryChanged("")
			m.machine.Blur()
			return m, m.debounceCmd(gen)
		}
		return m, nil
	case key.Matches(msg, keys.RemoveLast) && m.input.Value() == "" && m.machine.Settings().Multi:
		selected := m.machine.SelectedKeys()
		if len(selected) > 0 {
			m.machine.Deselect(selected[len(selected)-1])
		}
		return m, nil
	}

	prev := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if value := m.input.Value(); value != prev {
		gen := m.machine.QueryChanged(value)
		return m, tea.Batch(cmd, m.debounceCmd(gen))
	}
	return m, cmd
}

func (m PickerModel[T]) selectItem(item T) (PickerModel[T], tea.Cmd) {
	ev, err := m.machine.Select(item)
	id := m.id
	if errors.Is(err, isearch.ErrAlreadySelected) {
		return m, nil
	}
	if err != nil {
		m.logger.Debug("selection rejected", zap.Error(err))
		text := err.Error()
		return m, func() tea.Msg { return pickerWarningMsg{id: id, text: text} }
	}
	m.input.SetValue(ev.Input)
	m.input.CursorEnd()
	label := m.machine.Label(item)
	count := len(ev.Selected)
	multi := m.machine.Settings().Multi
	return m, func() tea.Msg {
		return pickerSelectedMsg{id: id, label: label, count: count, multi: multi}
	}
}

func (m PickerModel[T]) resolve(resp isearch.Response[T]) (PickerModel[T], tea.Cmd) {
	err := m.machine.Resolve(resp)
	switch {
	case errors.Is(err, isearch.ErrStaleResponse):
		m.discarded++
		m.logger.Debug("stale response discarded",
			zap.Uint64("token", resp.Request.Token),
			zap.String("query", resp.Request.Query),
			zap.Int("page", resp.Request.Page),
		)
		return m, nil
	case err != nil:
		m.logger.Warn("page rejected", zap.Int("page", resp.Request.Page), zap.Error(err))
	case resp.Err != nil:
		m.logger.Debug("fetch failed", zap.String("query", resp.Request.Query), zap.Error(resp.Err))
	}
	if !m.machine.InFlight() {
		m.cancelFetch()
	}
	m.syncList(resp.Request.First())
	if resp.Err == nil && err == nil {
		return m, m.checkSentinel()
	}
	return m, nil
}

// checkSentinel loads the next page once the last row is inside the window.
func (m *PickerModel[T]) checkSentinel() tea.Cmd {
	if !m.sentinelInView() {
		return nil
	}
	req, ok := m.machine.SentinelVisible()
	if !ok {
		return nil
	}
	return m.start(req)
}

func (m PickerModel[T]) sentinelInView() bool {
	return m.list.LastRowVisible()
}

func (m *PickerModel[T]) start(req isearch.Request) tea.Cmd {
	m.cancelFetch()
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.logger.Debug("fetch page",
		zap.Uint64("token", req.Token),
		zap.String("query", req.Query),
		zap.Int("page", req.Page),
	)

	id, fetch := m.id, m.fetch
	run := func() tea.Msg {
		if fetch == nil {
			return pickerPageMsg[T]{id: id, resp: isearch.Response[T]{Request: req, Err: isearch.ErrNoFetcher}}
		}
		res, err := fetch(ctx, req)
		return pickerPageMsg[T]{id: id, resp: isearch.Response[T]{
			Request: req,
			Items:   res.Items,
			HasMore: res.HasMore,
			Err:     err,
		}}
	}
	return tea.Batch(run, m.spinner.Tick)
}

func (m *PickerModel[T]) cancelFetch() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
}

func (m PickerModel[T]) debounceCmd(gen uint64) tea.Cmd {
	id := m.id
	return m.tick(m.debounce, func(time.Time) tea.Msg {
		return pickerDebounceMsg{id: id, gen: gen}
	})
}

func (m PickerModel[T]) loading() bool {
	c := m.machine.Coordinator()
	return c.Loading() || c.LoadingMore()
}

func (m *PickerModel[T]) syncList(reset bool) {
	if reset {
		m.list.Reset(m.machine.Len())
		return
	}
	m.list.Grow(m.machine.Len())
}

// Selected returns every committed item.
func (m PickerModel[T]) Selected() []T { return m.machine.Selected() }

// Machine exposes the underlying state machine.
func (m PickerModel[T]) Machine() *isearch.Machine[T] { return m.machine }

// Focused reports whether the picker owns the keyboard.
func (m PickerModel[T]) Focused() bool { return m.focused }

// AtTop reports whether up should leave the picker.
func (m PickerModel[T]) AtTop() bool {
	return !m.machine.PanelOpen() || m.list.Cursor() == 0
}

// --- View ---

func (m PickerModel[T]) View() string {
	var b strings.Builder
	b.WriteString(m.input.View())

	if chips := m.renderChips(); chips != "" {
		b.WriteString("\n")
		b.WriteString(chips)
	}
	b.WriteString("\n\n")

	if m.machine.PanelOpen() {
		b.WriteString(m.renderPanel())
	} else {
		b.WriteString(m.renderClosed())
	}

	return components.Indent(components.TitledBox(m.title, b.String(), m.width), 1)
}

func (m PickerModel[T]) renderChips() string {
	settings := m.machine.Settings()
	if !settings.Multi {
		return ""
	}
	selected := m.machine.Selected()
	if len(selected) == 0 {
		return ""
	}
	labels := make([]string, len(selected))
	for i, item := range selected {
		labels[i] = components.SanitizeOneLine(m.machine.Label(item))
	}
	count := fmt.Sprintf("%d", len(selected))
	if settings.MaxSelections > 0 {
		count = fmt.Sprintf("%d/%d", len(selected), settings.MaxSelections)
	}
	return MutedStyle.Render("Selected ("+count+"): ") + ChipStyle.Render(strings.Join(labels, ", "))
}

func (m PickerModel[T]) renderPanel() string {
	state := m.machine.Snapshot()
	switch {
	case state.Phase == isearch.PhaseLoadingFirstPage:
		return m.spinner.View() + MutedStyle.Render(" Searching...")
	case state.Phase == isearch.PhaseError && len(state.Items) == 0:
		return components.ErrorBox("Search failed", state.Error+"\n\nctrl+r to retry", m.width-4)
	case len(state.Items) == 0 && state.HasSettled && strings.TrimSpace(state.Settled) != "" && state.Phase != isearch.PhaseTyping:
		return MutedStyle.Render("No matches.")
	case len(state.Items) == 0:
		return MutedStyle.Render("Type to search.")
	}

	tableWidth := components.BoxContentWidth(m.width)
	if tableWidth <= 0 {
		tableWidth = 60
	}
	multi := m.machine.Settings().Multi
	cols := make([]components.TableColumn, 0, 3)
	if multi {
		cols = append(cols, components.TableColumn{Header: "", Width: 3})
	}
	nameWidth := tableWidth / 2
	cols = append(cols,
		components.TableColumn{Header: "Name", Width: nameWidth},
		components.TableColumn{Header: "Detail", Width: tableWidth - nameWidth},
	)

	start, end := m.list.Window()
	rows := make([][]string, 0, end-start)
	active := -1
	for abs := start; abs < end; abs++ {
		item, ok := m.machine.Item(abs)
		if !ok {
			continue
		}
		detail := ""
		if m.detail != nil {
			detail = m.detail(item)
		}
		row := []string{components.SanitizeOneLine(m.machine.Label(item)), components.SanitizeOneLine(detail)}
		if multi {
			mark := "[ ]"
			if m.machine.IsSelected(item) {
				mark = "[x]"
			}
			row = append([]string{mark}, row...)
		}
		rows = append(rows, row)
		if abs == m.list.Cursor() {
			active = len(rows) - 1
		}
	}

	var b strings.Builder
	b.WriteString(components.TableGridWithActiveRow(cols, rows, tableWidth, active))
	b.WriteString("\n")
	b.WriteString(m.renderFooter(state))
	return b.String()
}

func (m PickerModel[T]) renderFooter(state isearch.State[T]) string {
	switch {
	case state.LoadingMore:
		return "  " + m.spinner.View() + MutedStyle.Render(" Loading more...")
	case state.Error != "":
		return "  " + ErrorStyle.Render("Couldn't load more: ") + MutedStyle.Render(components.SanitizeOneLine(state.Error)+" · ctrl+r to retry")
	case state.HasMore:
		return "  " + MutedStyle.Render(fmt.Sprintf("%d loaded · ↓ for more", len(state.Items)))
	default:
		return "  " + MutedStyle.Render(fmt.Sprintf("%d results", len(state.Items)))
	}
}

func (m PickerModel[T]) renderClosed() string {
	current, ok := m.machine.Current()
	if ok && m.describe != nil && !m.machine.Settings().Multi {
		return components.Table("Selected", m.describe(current), m.width-4)
	}
	if m.focused {
		return MutedStyle.Render("Type to search, ↓ to browse.")
	}
	return MutedStyle.Render("↓ to search.")
}
