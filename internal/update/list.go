package update

import (
	"context"
	"fmt"
	"math"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/schrosk/internal/model"
)

const (
	fineStep   = 0.01
	coarseStep = 0.10
)

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.ctrl.Tasks())-1 {
			m.Cursor++
		}
	case "left", "h":
		return m.nudgeProbability(-fineStep), nil
	case "right", "l":
		return m.nudgeProbability(fineStep), nil
	case "H":
		return m.nudgeProbability(-coarseStep), nil
	case "L":
		return m.nudgeProbability(coarseStep), nil
	case " ", "enter", m.Keys.Collapse:
		return m.collapseSelected()
	}
	return m, nil
}

func (m Model) selectedTask() (model.Task, bool) {
	tasks := m.ctrl.Tasks()
	if m.Cursor < 0 || m.Cursor >= len(tasks) {
		return model.Task{}, false
	}
	return tasks[m.Cursor], true
}

// selectTask moves the cursor onto id if it is still listed.
func (m *Model) selectTask(id string) {
	for i, t := range m.ctrl.Tasks() {
		if t.ID == id {
			m.Cursor = i
			return
		}
	}
}

func (m *Model) clampCursor() {
	n := len(m.ctrl.Tasks())
	if m.Cursor >= n {
		m.Cursor = n - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}
}

func (m Model) nudgeProbability(delta float64) Model {
	task, ok := m.selectedTask()
	if !ok {
		return m
	}
	return m.setProbability(task, roundToStep(task.Probability+delta))
}

// setProbability clamps value before handing it to the controller. Sliders
// of collapsing rows are locked.
func (m Model) setProbability(task model.Task, value float64) Model {
	if m.Rows[task.ID].Collapsing() {
		m.Status = StatusBar{Text: "state is collapsing"}
		return m
	}
	next := model.ClampProbability(value)
	if next == task.Probability {
		return m
	}
	if err := m.ctrl.SetProbability(context.Background(), task.ID, next); err != nil {
		return m.reportError(fmt.Errorf("save probability: %w", err))
	}
	m.Status = StatusBar{Text: fmt.Sprintf("probability %.2f", next)}
	return m
}

func (m Model) resetCollapseCount() Model {
	if err := m.ctrl.ResetCollapseCount(context.Background()); err != nil {
		return m.reportError(fmt.Errorf("save collapse count: %w", err))
	}
	m.Status = StatusBar{Text: "collapse count reset"}
	return m
}

func roundToStep(v float64) float64 {
	return math.Round(v*100) / 100
}
