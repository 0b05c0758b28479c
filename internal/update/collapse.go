package update

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/schrosk/internal/log"
	"github.com/sandeepkv93/schrosk/internal/model"
	"github.com/sandeepkv93/schrosk/internal/scheduler"
)

func (m Model) collapseSelected() (tea.Model, tea.Cmd) {
	task, ok := m.selectedTask()
	if !ok {
		return m, nil
	}
	return m.startCollapse(task.ID)
}

// startCollapse moves the row into its collapsing phase and arms the
// removal timer. Triggering a row that is already collapsing does nothing.
func (m Model) startCollapse(taskID string) (Model, tea.Cmd) {
	row, ok := m.Rows[taskID]
	if !ok {
		row = model.NewCollapseRow(taskID)
	}
	if !row.Trigger(m.random, m.now()) {
		return m, nil
	}
	m.Rows[taskID] = row
	m.Status = StatusBar{Text: fmt.Sprintf("collapsing: %s", row.Label)}
	m.notify("Collapse", string(row.Label), "info")

	cmds := []tea.Cmd{m.armCollapse(row)}
	if !m.spinning {
		m.spinning = true
		cmds = append(cmds, m.spinner.Tick)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) armCollapse(row *model.CollapseRow) tea.Cmd {
	taskID := row.TaskID
	if m.Scheduler != nil {
		err := m.Scheduler.Schedule(scheduler.Event{
			ID:     collapseEventID(taskID),
			TaskID: taskID,
			FireAt: row.DueAt(m.collapseDelay),
		})
		if err == nil {
			return nil
		}
		log.Warnf("schedule collapse of %s: %v", taskID, err)
	}
	return tea.Tick(m.collapseDelay, func(time.Time) tea.Msg {
		return CollapseDueMsg{TaskID: taskID}
	})
}

// completeCollapse removes the task once its delay has elapsed. A fire for
// a row or task that no longer exists is ignored.
func (m Model) completeCollapse(taskID string) Model {
	row, ok := m.Rows[taskID]
	if !ok || !row.Collapsing() {
		return m
	}
	delete(m.Rows, taskID)
	if _, exists := m.ctrl.Task(taskID); !exists {
		return m
	}
	selected, hasSelection := m.selectedTask()
	err := m.ctrl.Remove(context.Background(), taskID)
	if hasSelection && selected.ID != taskID {
		m.selectTask(selected.ID)
	}
	m.clampCursor()
	if err != nil {
		return m.reportError(fmt.Errorf("save collapse: %w", err))
	}
	m.Status = StatusBar{Text: fmt.Sprintf("state observed (%d collapsed)", m.ctrl.CollapseCount())}
	return m
}

func (m *Model) teardownRows() {
	for id := range m.Rows {
		if m.Scheduler != nil {
			m.Scheduler.Cancel(collapseEventID(id))
		}
		delete(m.Rows, id)
	}
}

func (m Model) anyCollapsing() bool {
	for _, row := range m.Rows {
		if row.Collapsing() {
			return true
		}
	}
	return false
}

func collapseEventID(taskID string) string {
	return "collapse:" + taskID
}

func waitForCollapseCmd(ch <-chan scheduler.Event) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return CollapseDueMsg{TaskID: ev.TaskID, fromScheduler: true}
	}
}
