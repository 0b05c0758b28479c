package update

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/schrosk/internal/commands"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Palette.Active = false
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Blur()
		m.Status = StatusBar{Text: "command palette closed"}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m, nil
		}
		var cmd tea.Cmd
		m.commandInput, cmd = m.commandInput.Update(msg)
		_ = cmd
		m.Palette.Input = m.commandInput.Value()
	}
	return m, nil
}

func (m Model) executePaletteCommand() (Model, tea.Cmd) {
	raw := strings.TrimSpace(m.Palette.Input)
	m.Palette.Active = false
	m.Palette.Input = ""
	m.commandInput.SetValue("")
	m.commandInput.Blur()

	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}

	var followUp tea.Cmd
	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			m = m.addTask(a.Text)
			if m.Status.IsError {
				return commands.Result{}, errors.New(m.Status.Text)
			}
			return commands.Result{Message: fmt.Sprintf("added: %s", a.Text)}, nil
		},
		Prob: func(p commands.ProbArgs) (commands.Result, error) {
			task, ok := m.selectedTask()
			if !ok {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "no state selected"}
			}
			if m.Rows[task.ID].Collapsing() {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "state is collapsing"}
			}
			m = m.setProbability(task, p.Value)
			if m.Status.IsError {
				return commands.Result{}, errors.New(m.Status.Text)
			}
			updated, _ := m.ctrl.Task(task.ID)
			return commands.Result{Message: fmt.Sprintf("probability %.2f", updated.Probability)}, nil
		},
		Collapse: func() (commands.Result, error) {
			task, ok := m.selectedTask()
			if !ok {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "no state selected"}
			}
			m, followUp = m.startCollapse(task.ID)
			return commands.Result{Message: m.Status.Text}, nil
		},
		Reset: func() (commands.Result, error) {
			m = m.resetCollapseCount()
			if m.Status.IsError {
				return commands.Result{}, errors.New(m.Status.Text)
			}
			return commands.Result{Message: "collapse count reset"}, nil
		},
		Help: func() (commands.Result, error) {
			m.HelpVisible = !m.HelpVisible
			return commands.Result{Message: "manual toggled"}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.notify("Command Failed", err.Error(), "error")
		return m, followUp
	}
	m.Status = StatusBar{Text: res.Message}
	m.notify("Command", res.Message, "info")
	return m, followUp
}
