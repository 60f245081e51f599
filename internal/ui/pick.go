package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/gravitrone/rxmart/internal/ui/components"
)

// PickResult is what a standalone picker run produced.
type PickResult[T any] struct {
	Selected  []T
	Cancelled bool
}

// pickModel runs one picker full screen. Single pickers finish on the first
// selection; multi pickers finish on ctrl+d.
type pickModel[T any] struct {
	picker    PickerModel[T]
	initCmd   tea.Cmd
	warning   string
	done      bool
	cancelled bool
	width     int
}

func newPickModel[T any](opts PickerOptions[T]) pickModel[T] {
	picker, cmd := NewPicker(opts).Focus()
	return pickModel[T]{picker: picker, initCmd: cmd}
}

func (p pickModel[T]) Init() tea.Cmd {
	return p.initCmd
}

func (p pickModel[T]) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.picker.SetSize(msg.Width, msg.Height)
		return p, nil
	case pickerSelectedMsg:
		p.warning = ""
		if !msg.multi {
			p.done = true
			p.picker.cancelFetch()
			return p, tea.Quit
		}
		return p, nil
	case pickerWarningMsg:
		p.warning = msg.text
		return p, nil
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.ForceQuit):
			p.cancelled = true
			p.picker.cancelFetch()
			return p, tea.Quit
		case key.Matches(msg, keys.Done):
			p.done = true
			p.picker.cancelFetch()
			return p, tea.Quit
		case key.Matches(msg, keys.Back) && !p.picker.machine.PanelOpen() && p.picker.input.Value() == "":
			p.cancelled = len(p.picker.Selected()) == 0
			p.done = !p.cancelled
			return p, tea.Quit
		}
	}
	var cmd tea.Cmd
	p.picker, cmd = p.picker.Update(msg)
	return p, cmd
}

func (p pickModel[T]) View() string {
	if p.done || p.cancelled {
		return ""
	}
	hints := []string{hint(keys.Up), hint(keys.Select), hint(keys.Back), hint(keys.Retry)}
	if p.picker.machine.Settings().Multi {
		hints = append(hints, hint(keys.Done))
	}
	hints = append(hints, hintAs(keys.ForceQuit, "Cancel"))

	var b strings.Builder
	b.WriteString(p.picker.View())
	b.WriteString("\n\n")
	b.WriteString(components.StatusBar(hints, p.width))
	if p.warning != "" {
		b.WriteString("\n\n")
		b.WriteString(components.TitledBox("Warning", p.warning, p.width))
	}
	return b.String()
}

func (p pickModel[T]) result() PickResult[T] {
	if p.cancelled {
		return PickResult[T]{Cancelled: true}
	}
	return PickResult[T]{Selected: p.picker.Selected()}
}

// RunPicker runs a picker until the user commits or cancels.
func RunPicker[T any](opts PickerOptions[T], progOpts ...tea.ProgramOption) (PickResult[T], error) {
	prog := tea.NewProgram(newPickModel(opts), progOpts...)
	final, err := prog.Run()
	if err != nil {
		return PickResult[T]{}, fmt.Errorf("picker: %w", err)
	}
	model, ok := final.(pickModel[T])
	if !ok {
		return PickResult[T]{}, fmt.Errorf("picker: unexpected model %T", final)
	}
	return model.result(), nil
}
