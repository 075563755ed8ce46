package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the application
type KeyMap struct {
	// Navigation
	Prev key.Binding
	Next key.Binding
	Home key.Binding
	End  key.Binding

	// Playback
	Play       key.Binding
	Mute       key.Binding
	Like       key.Binding
	Info       key.Binding
	FullScreen key.Binding
	Open       key.Binding

	// Actions
	Search key.Binding
	Help   key.Binding
	Escape key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Prev: key.NewBinding(
			key.WithKeys("k", "up", "pgup"),
			key.WithHelp("k/↑", "previous"),
		),
		Next: key.NewBinding(
			key.WithKeys("j", "down", "pgdown"),
			key.WithHelp("j/↓", "next"),
		),
		Home: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "first clip"),
		),
		End: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "last clip"),
		),
		Play: key.NewBinding(
			key.WithKeys(" ", "space", "enter"),
			key.WithHelp("space", "play/pause"),
		),
		Mute: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mute"),
		),
		Like: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "like"),
		),
		Info: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "info"),
		),
		FullScreen: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "full screen"),
		),
		Open: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open in player"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "jump to"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "close"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns the bindings shown in the footer
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Play, k.Mute, k.Like, k.Search, k.Help, k.Quit}
}

// FullHelp returns the bindings shown in the help overlay
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.Home, k.End, k.Search},
		{k.Play, k.Mute, k.Like, k.Info, k.FullScreen},
		{k.Open, k.Escape, k.Help, k.Quit},
	}
}
