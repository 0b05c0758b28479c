package update

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/schrosk/internal/controller"
)

func (m Model) handleInputKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.Capturing = false
		m.addInput.Blur()
		m.Status = StatusBar{Text: "list mode"}
		return m
	case "enter":
		m = m.addTask(m.addInput.Value())
		m.addInput.SetValue("")
		return m
	}
	var cmd tea.Cmd
	m.addInput, cmd = m.addInput.Update(msg)
	_ = cmd
	return m
}

func (m Model) addTask(text string) Model {
	task, err := m.ctrl.Add(context.Background(), text)
	if errors.Is(err, controller.ErrEmptyText) {
		m.Status = StatusBar{Text: "empty state ignored"}
		return m
	}
	m.Cursor = 0
	if err != nil {
		return m.reportError(fmt.Errorf("save new state: %w", err))
	}
	m.Status = StatusBar{Text: fmt.Sprintf("state created: %s", task.Text)}
	return m
}
