package modes

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings shared by the workflow screens.
type KeyMap struct {
	// Navigation
	Submit    key.Binding
	NextField key.Binding
	PrevField key.Binding
	Back      key.Binding
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding

	// Resolutions while no text field has focus
	Do       key.Binding
	Schedule key.Binding
	Discard  key.Binding
	OptionA  key.Binding
	OptionB  key.Binding

	// Resolutions while a text field has focus
	CommitSchedule key.Binding
	CommitDiscard  key.Binding

	// Importance answers
	Yes key.Binding
	No  key.Binding

	// Control
	Pause   key.Binding
	Reset   key.Binding
	Another key.Binding
	Copy    key.Binding
}

// Keys provides the default bindings.
var Keys = KeyMap{
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "continue"),
	),
	NextField: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next field"),
	),
	PrevField: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "prev field"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "favour first"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "favour second"),
	),
	Do: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "do it"),
	),
	Schedule: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "schedule"),
	),
	Discard: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "discard"),
	),
	OptionA: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "option A"),
	),
	OptionB: key.NewBinding(
		key.WithKeys("b"),
		key.WithHelp("b", "option B"),
	),
	CommitSchedule: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("ctrl+s", "schedule"),
	),
	CommitDiscard: key.NewBinding(
		key.WithKeys("ctrl+x"),
		key.WithHelp("ctrl+x", "discard"),
	),
	Yes: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "yes"),
	),
	No: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "no"),
	),
	Pause: key.NewBinding(
		key.WithKeys(" ", "p"),
		key.WithHelp("space", "pause/resume"),
	),
	Reset: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("ctrl+r", "start over"),
	),
	Another: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "filter another"),
	),
	Copy: key.NewBinding(
		key.WithKeys("c"),
		key.WithHelp("c", "copy recap"),
	),
}

// WithHelp returns a copy of b with a different help description.
func WithHelp(b key.Binding, desc string) key.Binding {
	return key.NewBinding(
		key.WithKeys(b.Keys()...),
		key.WithHelp(b.Help().Key, desc),
	)
}
