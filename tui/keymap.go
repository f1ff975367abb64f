package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// keymap defines the keys of the state view.
type keymap struct {
	quit, forceQuit,
	playPause,
	resetZoom,
	lock,
	showHelp key.Binding
}

func newKeymap() *keymap {
	return &keymap{
		quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		forceQuit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+d"),
			key.WithHelp("ctrl+c", "quit"),
		),
		playPause: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "play/pause"),
		),
		resetZoom: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset zoom"),
		),
		lock: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "lock controls"),
		),
		showHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k *keymap) ShortHelp() []key.Binding {
	return []key.Binding{k.playPause, k.resetZoom, k.lock, k.quit, k.showHelp}
}

// FullHelp implements help.KeyMap.
func (k *keymap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.playPause, k.resetZoom, k.lock},
		{k.quit, k.forceQuit, k.showHelp},
	}
}
