package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"

	"github.com/sandeepkv93/schrosk/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpView() string {
	bindings := m.helpBindings()
	var plain []string
	for _, kb := range m.listBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		ManualView: m.manual.View(),
		Bindings:   plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: bindings,
			full:  [][]key.Binding{bindings},
		}),
	})
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.Palette, Action: "command palette"},
		{Key: m.Keys.Help, Action: "manual"},
		{Key: m.Keys.Quit, Action: "quit"},
	}
}

func (m Model) listBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.Add + "/a", Action: "add a state"},
		{Key: "j/k", Action: "move selection"},
		{Key: "h/l", Action: "probability -/+ 0.01"},
		{Key: "H/L", Action: "probability -/+ 0.10"},
		{Key: "space/" + m.Keys.Collapse, Action: "collapse (Φ)"},
		{Key: m.Keys.Reset, Action: "reset collapse count"},
		{Key: m.Keys.Animation, Action: "toggle animations"},
	}
}

func (m Model) helpBindings() []key.Binding {
	out := make([]key.Binding, 0, len(m.globalBindings()))
	for _, kb := range m.globalBindings() {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
