package ui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravitrone/rxmart/internal/isearch"
)

func newTestPickModel(t *testing.T, cat *fakeCatalog, settings isearch.Settings[testDrug]) pickModel[testDrug] {
	t.Helper()
	settings.PageSize = testPageSize
	p := newPickModel(PickerOptions[testDrug]{
		Title:    "Products",
		Settings: settings,
		Fetch:    cat.fetch,
	})
	p.picker.tick = immediateTick
	model, _ := p.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return model.(pickModel[testDrug])
}

// pickStep forwards msg and replays picker traffic through the model.
func pickStep(t *testing.T, p pickModel[testDrug], msg tea.Msg) (pickModel[testDrug], []tea.Msg) {
	t.Helper()
	model, cmd := p.Update(msg)
	p = model.(pickModel[testDrug])
	var out []tea.Msg
	queue := collect(t, cmd)
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		switch next.(type) {
		case tea.QuitMsg:
			out = append(out, next)
			continue
		}
		model, cmd = p.Update(next)
		p = model.(pickModel[testDrug])
		queue = append(queue, collect(t, cmd)...)
	}
	return p, out
}

func pickType(t *testing.T, p pickModel[testDrug], text string) pickModel[testDrug] {
	t.Helper()
	for _, r := range text {
		p, _ = pickStep(t, p, runeKey(r))
	}
	return p
}

func TestPickSingleSelectionQuits(t *testing.T) {
	cat := &fakeCatalog{total: 3}
	p := newTestPickModel(t, cat, isearch.Settings[testDrug]{})
	p = pickType(t, p, "para")

	p, out := pickStep(t, p, key(tea.KeyEnter))

	require.Len(t, out, 1)
	assert.IsType(t, tea.QuitMsg{}, out[0])
	res := p.result()
	assert.False(t, res.Cancelled)
	require.Len(t, res.Selected, 1)
	assert.Equal(t, "para-0", res.Selected[0].ID)
	assert.Empty(t, p.View())
}

func TestPickMultiFinishesOnCtrlD(t *testing.T) {
	cat := &fakeCatalog{total: 5}
	p := newTestPickModel(t, cat, isearch.Settings[testDrug]{Multi: true})
	p = pickType(t, p, "vit")
	p, out := pickStep(t, p, key(tea.KeyEnter))
	assert.Empty(t, out)
	assert.Contains(t, p.View(), "ctrl+d")

	p, out = pickStep(t, p, key(tea.KeyCtrlD))

	require.Len(t, out, 1)
	res := p.result()
	require.Len(t, res.Selected, 1)
	assert.Equal(t, "vit-0", res.Selected[0].ID)
}

func TestPickCapWarningIsShown(t *testing.T) {
	cat := &fakeCatalog{total: 5}
	p := newTestPickModel(t, cat, isearch.Settings[testDrug]{MaxSelections: 1, LimitMessage: "One filter only."})
	p = pickType(t, p, "vit")
	p, _ = pickStep(t, p, key(tea.KeyEnter))
	p = pickType(t, p, "zinc")

	p, _ = pickStep(t, p, key(tea.KeyEnter))

	assert.Equal(t, "One filter only.", p.warning)
	assert.Contains(t, p.View(), "One filter only.")
	assert.Len(t, p.picker.Selected(), 1)
}

func TestPickCtrlCCancels(t *testing.T) {
	cat := &fakeCatalog{total: 3}
	p := newTestPickModel(t, cat, isearch.Settings[testDrug]{})
	p = pickType(t, p, "para")

	p, out := pickStep(t, p, key(tea.KeyCtrlC))

	require.Len(t, out, 1)
	assert.True(t, p.result().Cancelled)
	assert.Empty(t, p.result().Selected)
}

func TestPickEscOnEmptyClosedPickerCancels(t *testing.T) {
	cat := &fakeCatalog{total: 3}
	p := newTestPickModel(t, cat, isearch.Settings[testDrug]{})

	p, out := pickStep(t, p, key(tea.KeyEsc))
	assert.Empty(t, out)
	assert.False(t, p.picker.Machine().PanelOpen())

	p, out = pickStep(t, p, key(tea.KeyEsc))
	require.Len(t, out, 1)
	assert.True(t, p.result().Cancelled)
}
