package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/typetest/internal/model"
)

type keyMap struct {
	Restart    key.Binding
	ToggleMode key.Binding
	NextLength key.Binding
	CycleText  key.Binding
	CycleLevel key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Restart:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "restart")),
		ToggleMode: key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "mode")),
		NextLength: key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "length")),
		CycleText:  key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "text")),
		CycleLevel: key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("ctrl+g", "difficulty")),
		Quit:       key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Restart, k.ToggleMode, k.NextLength, k.CycleText, k.CycleLevel, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// toEngineKeys converts a terminal key message into engine key events.
func toEngineKeys(msg tea.KeyMsg) []model.Key {
	switch msg.Type {
	case tea.KeyBackspace:
		return []model.Key{model.BackspaceKey()}
	case tea.KeySpace:
		return []model.Key{model.RuneKey(' ')}
	case tea.KeyRunes:
		if msg.Alt {
			return nil
		}
		keys := make([]model.Key, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			keys = append(keys, model.RuneKey(r))
		}
		return keys
	default:
		return nil
	}
}
