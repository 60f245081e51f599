package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/gravitrone/rxmart/internal/ui/components"
)

// keyMap lists every binding the console reacts to. Hints in the status bar
// are rendered from the same bindings so they cannot drift.
type keyMap struct {
	ForceQuit key.Binding
	Quit      key.Binding
	Help      key.Binding
	NextTab   key.Binding
	PrevTab   key.Binding
	TabLeft   key.Binding
	TabRight  key.Binding
	TabJump   key.Binding

	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Back   key.Binding
	Retry  key.Binding

	RemoveLast   key.Binding
	ClearFilters key.Binding
	Done         key.Binding

	Confirm key.Binding
	Cancel  key.Binding
}

var keys = keyMap{
	ForceQuit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "Quit")),
	Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "Quit")),
	Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "Help")),
	NextTab:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "Next tab")),
	PrevTab:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "Previous tab")),
	TabLeft:   key.NewBinding(key.WithKeys("left"), key.WithHelp("←/→", "Tabs")),
	TabRight:  key.NewBinding(key.WithKeys("right"), key.WithHelp("←/→", "Tabs")),
	TabJump:   key.NewBinding(key.WithKeys("1", "2", "3", "4", "5"), key.WithHelp("1-5", "Jump")),

	Up:     key.NewBinding(key.WithKeys("up", "ctrl+p"), key.WithHelp("↑/↓", "Move")),
	Down:   key.NewBinding(key.WithKeys("down", "ctrl+n"), key.WithHelp("↓", "Search")),
	Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "Select")),
	Back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "Close")),
	Retry:  key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "Retry")),

	RemoveLast:   key.NewBinding(key.WithKeys("backspace"), key.WithHelp("⌫", "Remove last")),
	ClearFilters: key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "Clear")),
	Done:         key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "Done")),

	Confirm: key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "Confirm")),
	Cancel:  key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "Cancel")),
}

// hint renders b for the status bar.
func hint(b key.Binding) string {
	h := b.Help()
	return components.Hint(h.Key, h.Desc)
}

// hintAs renders b with a different description.
func hintAs(b key.Binding, desc string) string {
	return components.Hint(b.Help().Key, desc)
}
